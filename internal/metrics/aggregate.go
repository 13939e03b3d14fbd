// internal/metrics/aggregate.go
// Package metrics reduces timed runs into throughput and latency percentiles.
package metrics

import (
	"errors"
	"fmt"
	"time"
)

// ErrZeroDuration is returned when throughput is requested over no elapsed time.
var ErrZeroDuration = errors.New("total duration is zero")

const bytesPerMB = 1024 * 1024

// Input is everything needed to aggregate one mode's run.
type Input struct {
	Total  time.Duration
	Tokens uint64
	// Bytes is the number of corpus bytes fed through the pipeline during Total.
	Bytes int64
	// Latencies are per-call samples in milliseconds.
	Latencies []float64
}

// RunMetrics are the derived figures for one benchmark mode.
type RunMetrics struct {
	TokensPerSecond float64
	MBPerSecond     float64
	P50             float64
	P95             float64
	P99             float64
	// MeanLatency is the arithmetic mean of the samples, in milliseconds.
	MeanLatency float64
}

// Aggregate computes throughput and latency percentiles for in.
func Aggregate(in Input) (RunMetrics, error) {
	seconds := in.Total.Seconds()
	if in.Total <= 0 || seconds <= 0 {
		return RunMetrics{}, ErrZeroDuration
	}

	p50, err := Percentile(in.Latencies, 50)
	if err != nil {
		return RunMetrics{}, fmt.Errorf("p50: %w", err)
	}
	p95, err := Percentile(in.Latencies, 95)
	if err != nil {
		return RunMetrics{}, fmt.Errorf("p95: %w", err)
	}
	p99, err := Percentile(in.Latencies, 99)
	if err != nil {
		return RunMetrics{}, fmt.Errorf("p99: %w", err)
	}

	return RunMetrics{
		TokensPerSecond: float64(in.Tokens) / seconds,
		MBPerSecond:     (float64(in.Bytes) / bytesPerMB) / seconds,
		P50:             p50,
		P95:             p95,
		P99:             p99,
		MeanLatency:     mean(in.Latencies),
	}, nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
