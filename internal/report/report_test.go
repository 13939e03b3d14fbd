package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/mwiater/tokbench/internal/memory"
	"github.com/mwiater/tokbench/internal/metrics"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func sampleSummary() Summary {
	return Summary{
		Corpus:   CorpusInfo{Path: "data/test.txt", Lines: 12345, Batches: 13, BatchSize: 1000, Bytes: 2 * 1024 * 1024},
		Encoding: "cl100k_base",
		Single: &ModeReport{
			Name:       "single",
			Iterations: 20,
			Calls:      246900,
			Tokens:     5000000,
			Total:      2500 * time.Millisecond,
			Metrics:    &metrics.RunMetrics{TokensPerSecond: 2000000, MBPerSecond: 16, P50: 0.0101, P95: 0.02, P99: 0.05, MeanLatency: 0.012},
		},
		Memory: memory.Reading{ResidentMB: 123.456, PeakMB: 150},
	}
}

func TestRenderSingleModeOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleSummary()))
	out := buf.String()

	for _, want := range []string{
		"Tokenizer Benchmark",
		"Corpus:      data/test.txt (12,345 lines, 2.0 MiB)",
		"Encoding:    cl100k_base",
		"Batch Size:  1000 (13 batches)",
		">>> single encode",
		"Calls:              246,900",
		"Tokens/sec:       2000000.00",
		"MB/sec:           16.00",
		"P50:              0.0101",
		"P99:              0.0500",
		"Memory Usage: 123.46 MB (peak 150.00 MB)",
	} {
		require.Contains(t, out, want)
	}
	require.NotContains(t, out, ">>> batch encode")
}

func TestRenderModeWithoutMetrics(t *testing.T) {
	s := sampleSummary()
	s.Batch = &ModeReport{
		Name:         "batch",
		Iterations:   1,
		Calls:        1,
		Failures:     1,
		FirstFailure: errors.New("encode batch: disallowed special token"),
		Err:          metrics.ErrZeroDuration,
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, s))
	out := buf.String()

	require.Contains(t, out, ">>> single encode")
	require.Contains(t, out, ">>> batch encode")
	require.Contains(t, out, "Failures:           1")
	require.Contains(t, out, "First Failure:      encode batch: disallowed special token")
	require.Contains(t, out, "Metrics unavailable: total duration is zero")
	require.Equal(t, 1, strings.Count(out, "Tokens/sec:"))
}

func TestRenderNoModes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Summary{Corpus: CorpusInfo{Path: "empty.txt", Batches: 1, BatchSize: 10}}))
	out := buf.String()
	require.NotContains(t, out, "encode")
	require.Contains(t, out, "Memory Usage: 0.00 MB (peak 0.00 MB)")
}
