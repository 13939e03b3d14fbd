// internal/metrics/percentile.go
package metrics

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	// ErrNoSamples is returned when a percentile is requested over no samples.
	ErrNoSamples = errors.New("no latency samples")
	// ErrPercentileRange is returned for a percentile rank outside [0, 100].
	ErrPercentileRange = errors.New("percentile rank out of range")
)

// Percentile returns the sample at rank p (0-100) using floor-index selection on an
// ascending copy of samples. The input slice is left in its original order.
func Percentile(samples []float64, p float64) (float64, error) {
	if len(samples) == 0 {
		return 0, ErrNoSamples
	}
	if math.IsNaN(p) || p < 0 || p > 100 {
		return 0, fmt.Errorf("%w: %v", ErrPercentileRange, p)
	}

	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	index := int(math.Floor(float64(len(sorted)) * p / 100))
	if index > len(sorted)-1 {
		index = len(sorted) - 1
	}
	return sorted[index], nil
}
