// internal/benchmark/benchmark.go
// Package benchmark drives a tokenizer pipeline over a corpus and reports its performance.
package benchmark

import (
	"errors"
	"fmt"
	"io"
	"log"
	"runtime"
	"strings"

	"github.com/mwiater/tokbench/internal/appconfig"
	"github.com/mwiater/tokbench/internal/corpus"
	"github.com/mwiater/tokbench/internal/logging"
	"github.com/mwiater/tokbench/internal/memory"
	"github.com/mwiater/tokbench/internal/metrics"
	"github.com/mwiater/tokbench/internal/pipeline"
	"github.com/mwiater/tokbench/internal/report"
	"github.com/mwiater/tokbench/internal/timing"
)

var (
	loadCorpus     = corpus.Load
	newPipeline    = pipeline.New
	sampleMemory   = memory.Sample
	collectGarbage = runtime.GC
	renderReport   = report.Render
)

// Run measures the configured pipeline over the corpus in each of modes, in order,
// and writes the report to out. An empty modes list runs the configured modes.
//
// Load failures abort before any timing. A failure inside one mode is reported in
// that mode's section and does not stop the others.
func Run(cfg *appconfig.Config, modes []string, out io.Writer) error {
	if cfg == nil {
		return errors.New("benchmark: config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(modes) == 0 {
		modes = cfg.EnabledModes()
	}

	c, err := loadCorpus(cfg.CorpusPath(), cfg.BatchSizeOrDefault())
	if err != nil {
		return err
	}
	logging.LogEvent("[CORPUS] %s: %d lines, %d batches of %d, %d bytes", c.Path, c.Lines(), len(c.Batches), c.BatchSize, c.Bytes)

	p, err := newPipeline(pipeline.Options{
		Encoding:      cfg.EncodingName(),
		Normalization: cfg.Normalization,
		BatchWorkers:  cfg.BatchWorkers,
		AllowSpecial:  cfg.AllowSpecial,
	})
	if err != nil {
		return err
	}
	log.Printf("Running benchmark modes: %s", strings.Join(modes, ", "))

	summary := report.Summary{
		Corpus: report.CorpusInfo{
			Path:      c.Path,
			Lines:     c.Lines(),
			Batches:   len(c.Batches),
			BatchSize: c.BatchSize,
			Bytes:     c.Bytes,
		},
		Encoding: cfg.EncodingName(),
	}

	for _, mode := range modes {
		switch mode {
		case appconfig.ModeSingle:
			summary.Single = measure(cfg, c, SingleMode(p), c.Units)
		case appconfig.ModeBatch:
			summary.Batch = measure(cfg, c, BatchMode(p), c.Batches)
		default:
			return fmt.Errorf("unknown benchmark mode %q", mode)
		}
	}

	summary.Memory = sampleMemory()
	return renderReport(out, summary)
}

// measure warms up, plans and times one mode, then aggregates its samples.
func measure[S, O any](cfg *appconfig.Config, c *corpus.Corpus, mode timing.Mode[S, O], subjects []S) *report.ModeReport {
	rep := &report.ModeReport{Name: mode.Name}

	estimate, warmed, err := timing.WarmUp(cfg.WarmUpWindow(), mode, subjects)
	if err != nil {
		rep.Err = fmt.Errorf("warm up: %w", err)
		logging.LogRunEvent(mode.Name, "error", rep.Err)
		return rep
	}
	iterations := timing.PlanIterations(cfg.Samples(), cfg.MeasurementWindow(), estimate, cfg.IterationLimit())
	logging.LogRunEvent(mode.Name, "start", map[string]any{
		"warmUpIterations":  warmed,
		"iterationEstimate": estimate.String(),
		"iterations":        iterations,
		"subjects":          len(subjects),
	})

	collectGarbage()
	res, err := timing.Run(iterations, mode, subjects)
	rep.Iterations = res.Iterations
	rep.Calls = res.Calls
	rep.Failures = res.Failures
	rep.Tokens = res.Tokens
	rep.Total = res.Total
	rep.FirstFailure = res.FirstErr
	if err != nil {
		rep.Err = err
		logging.LogRunEvent(mode.Name, "error", err)
		return rep
	}

	m, err := metrics.Aggregate(metrics.Input{
		Total:     res.Total,
		Tokens:    res.Tokens,
		Bytes:     c.Bytes * int64(res.Iterations),
		Latencies: res.Latencies,
	})
	if err != nil {
		rep.Err = err
		logging.LogRunEvent(mode.Name, "error", err)
		return rep
	}
	rep.Metrics = &m

	logging.LogRunEvent(mode.Name, "done", map[string]any{
		"calls":    res.Calls,
		"failures": res.Failures,
		"total":    res.Total.String(),
	})
	return rep
}
