// internal/memory/memory.go
// Package memory samples the resident memory of the running process.
package memory

import (
	"errors"

	"github.com/mwiater/tokbench/internal/logging"
)

// ErrUnavailable is returned by platforms without a resident memory source.
var ErrUnavailable = errors.New("resident memory reading unavailable on this platform")

const bytesPerMB = 1024 * 1024

// Reading is a point-in-time resident memory measurement in megabytes.
type Reading struct {
	ResidentMB float64
	PeakMB     float64
}

// readResident returns current and peak resident bytes for this process.
var readResident = residentBytes

// Sample reads resident memory. Failures are logged and reported as a zero Reading.
func Sample() Reading {
	rss, peak, err := readResident()
	if err != nil {
		logging.LogEvent("[MEMORY] resident memory unavailable: %v", err)
		return Reading{}
	}
	return Reading{
		ResidentMB: float64(rss) / bytesPerMB,
		PeakMB:     float64(peak) / bytesPerMB,
	}
}
