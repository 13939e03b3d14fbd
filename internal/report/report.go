// internal/report/report.go
// Package report renders benchmark results as a console summary.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mwiater/tokbench/internal/memory"
	"github.com/mwiater/tokbench/internal/metrics"
)

const ruleWidth = 80

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	errorText    = color.New(color.FgRed).SprintFunc()
	warnText     = color.New(color.FgYellow).SprintFunc()
)

// CorpusInfo describes the corpus a run was measured on.
type CorpusInfo struct {
	Path      string
	Lines     int
	Batches   int
	BatchSize int
	Bytes     int64
}

// ModeReport holds the outcome of one benchmark mode.
type ModeReport struct {
	Name       string
	Iterations uint64
	Calls      uint64
	Failures   uint64
	Tokens     uint64
	Total      time.Duration
	// Metrics is nil when aggregation failed; Err then says why.
	Metrics *metrics.RunMetrics
	Err     error
	// FirstFailure is the first pipeline error seen during the timed run.
	FirstFailure error
}

// Summary is everything rendered for one benchmark run. A nil mode was not run.
type Summary struct {
	Corpus   CorpusInfo
	Encoding string
	Single   *ModeReport
	Batch    *ModeReport
	Memory   memory.Reading
}

// Render writes s to w.
func Render(w io.Writer, s Summary) error {
	var b strings.Builder

	b.WriteString(strings.Repeat("=", ruleWidth) + "\n")
	b.WriteString(titleStyle.Render("Tokenizer Benchmark") + "\n")
	b.WriteString(strings.Repeat("=", ruleWidth) + "\n")
	fmt.Fprintf(&b, "Corpus:      %s (%s lines, %s)\n", s.Corpus.Path, humanize.Comma(int64(s.Corpus.Lines)), humanize.IBytes(uint64(max(s.Corpus.Bytes, 0))))
	if s.Encoding != "" {
		fmt.Fprintf(&b, "Encoding:    %s\n", s.Encoding)
	}
	fmt.Fprintf(&b, "Batch Size:  %d (%s batches)\n", s.Corpus.BatchSize, humanize.Comma(int64(s.Corpus.Batches)))

	for _, mode := range []*ModeReport{s.Single, s.Batch} {
		if mode == nil {
			continue
		}
		writeMode(&b, mode)
	}

	b.WriteString("\n" + strings.Repeat("-", ruleWidth) + "\n")
	fmt.Fprintf(&b, "Memory Usage: %.2f MB (peak %.2f MB)\n", s.Memory.ResidentMB, s.Memory.PeakMB)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeMode(b *strings.Builder, m *ModeReport) {
	b.WriteString("\n" + strings.Repeat("-", ruleWidth) + "\n")
	b.WriteString(sectionStyle.Render(fmt.Sprintf(">>> %s encode", m.Name)) + "\n")
	b.WriteString(strings.Repeat("-", ruleWidth) + "\n")

	fmt.Fprintf(b, "  Iterations:         %d\n", m.Iterations)
	fmt.Fprintf(b, "  Calls:              %s\n", humanize.Comma(int64(m.Calls)))
	if m.Failures > 0 {
		fmt.Fprintf(b, "  Failures:           %s\n", warnText(humanize.Comma(int64(m.Failures))))
		if m.FirstFailure != nil {
			fmt.Fprintf(b, "  First Failure:      %s\n", warnText(m.FirstFailure.Error()))
		}
	} else {
		fmt.Fprintln(b, "  Failures:           0")
	}
	fmt.Fprintf(b, "  Total Tokens:       %s\n", humanize.Comma(int64(m.Tokens)))
	fmt.Fprintf(b, "  Total Time:         %s\n", m.Total.Round(time.Microsecond))

	if m.Metrics == nil {
		reason := "not computed"
		if m.Err != nil {
			reason = m.Err.Error()
		}
		fmt.Fprintf(b, "  %s\n", errorText("Metrics unavailable: "+reason))
		return
	}

	fmt.Fprintln(b, "\n  Throughput:")
	fmt.Fprintf(b, "    Tokens/sec:       %.2f\n", m.Metrics.TokensPerSecond)
	fmt.Fprintf(b, "    MB/sec:           %.2f\n", m.Metrics.MBPerSecond)

	fmt.Fprintln(b, "\n  Latency (ms):")
	fmt.Fprintf(b, "    Mean:             %.4f\n", m.Metrics.MeanLatency)
	fmt.Fprintf(b, "    P50:              %.4f\n", m.Metrics.P50)
	fmt.Fprintf(b, "    P95:              %.4f\n", m.Metrics.P95)
	fmt.Fprintf(b, "    P99:              %.4f\n", m.Metrics.P99)
}
