// internal/timing/timing.go
// Package timing runs measured operations and records one latency sample per call.
package timing

import (
	"errors"
	"math"
	"runtime"
	"time"
)

// ErrDurationOverflow is returned when the accumulated run time no longer fits in a time.Duration.
var ErrDurationOverflow = errors.New("accumulated duration overflows time.Duration")

// ErrNoSubjects is returned by WarmUp when there is nothing to call.
var ErrNoSubjects = errors.New("no subjects to measure")

var (
	now   = time.Now
	since = time.Since
)

// Mode describes what one timed call is and how its output is counted.
type Mode[S, O any] struct {
	// Name labels the mode in logs and reports.
	Name string
	// Prepare builds the call argument from a subject. It runs before the timer starts.
	Prepare func(S) S
	// Call is the measured operation.
	Call func(S) (O, error)
	// Tokens counts the tokens in a successful result.
	Tokens func(O) int
}

// Result is the raw outcome of a timed run.
type Result struct {
	Iterations uint64
	Calls      uint64
	Failures   uint64
	Tokens     uint64
	Total      time.Duration
	// Latencies holds one sample per call in milliseconds, in call order.
	Latencies []float64
	// FirstErr is the first error returned by the measured operation, if any.
	FirstErr error
}

// Run calls mode.Call once per subject, iterations times over, timing each call.
//
// A failed call still contributes its latency; only its token count is skipped.
func Run[S, O any](iterations uint64, mode Mode[S, O], subjects []S) (Result, error) {
	res := Result{Iterations: iterations}
	if n := uint64(len(subjects)); n > 0 && iterations <= math.MaxInt32/n {
		res.Latencies = make([]float64, 0, iterations*n)
	}

	for i := uint64(0); i < iterations; i++ {
		for _, subject := range subjects {
			arg := subject
			if mode.Prepare != nil {
				arg = mode.Prepare(subject)
			}

			start := now()
			out, err := mode.Call(arg)
			elapsed := since(start)
			runtime.KeepAlive(out)

			res.Calls++
			res.Latencies = append(res.Latencies, Milliseconds(elapsed))
			total, ok := addDuration(res.Total, elapsed)
			if !ok {
				return res, ErrDurationOverflow
			}
			res.Total = total

			if err != nil {
				res.Failures++
				if res.FirstErr == nil {
					res.FirstErr = err
				}
				continue
			}
			if mode.Tokens != nil {
				res.Tokens += uint64(mode.Tokens(out))
			}
		}
	}
	return res, nil
}

// WarmUp runs whole iterations over subjects until window has elapsed, discarding
// the results. At least one iteration always runs. It returns the mean wall time
// of one iteration.
func WarmUp[S, O any](window time.Duration, mode Mode[S, O], subjects []S) (time.Duration, uint64, error) {
	if len(subjects) == 0 {
		return 0, 0, ErrNoSubjects
	}

	var iterations uint64
	start := now()
	for {
		for _, subject := range subjects {
			arg := subject
			if mode.Prepare != nil {
				arg = mode.Prepare(subject)
			}
			out, _ := mode.Call(arg)
			runtime.KeepAlive(out)
		}
		iterations++
		if since(start) >= window {
			break
		}
	}
	return since(start) / time.Duration(iterations), iterations, nil
}

// PlanIterations picks how many iterations a timed run needs: at least sampleSize,
// and enough to fill window given the per-iteration estimate. A non-zero limit
// caps the result. The result is never below one.
func PlanIterations(sampleSize uint64, window, estimate time.Duration, limit uint64) uint64 {
	planned := sampleSize
	if window > 0 && estimate > 0 {
		needed := uint64(math.Ceil(float64(window) / float64(estimate)))
		if needed > planned {
			planned = needed
		}
	}
	if limit > 0 && planned > limit {
		planned = limit
	}
	if planned == 0 {
		planned = 1
	}
	return planned
}

// Milliseconds converts d to fractional milliseconds.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// addDuration adds b to a, reporting false instead of wrapping on overflow.
func addDuration(a, b time.Duration) (time.Duration, bool) {
	if b > 0 && a > math.MaxInt64-b {
		return a, false
	}
	if b < 0 && a < math.MinInt64-b {
		return a, false
	}
	return a + b, true
}
