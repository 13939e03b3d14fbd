package appconfig

import (
	"fmt"
	"io"
	"strings"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		def := Default()
		cfg = &def
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Corpus:           %s\n", cfg.CorpusPath())
	fmt.Fprintf(out, "  Encoding:         %s\n", cfg.EncodingName())
	fmt.Fprintf(out, "  Normalization:    %s\n", cfg.Normalization)
	fmt.Fprintf(out, "  Batch Size:       %d\n", cfg.BatchSizeOrDefault())
	fmt.Fprintf(out, "  Batch Workers:    %d\n", cfg.BatchWorkers)
	fmt.Fprintf(out, "  Allow Special:    %v\n", cfg.AllowSpecial)
	fmt.Fprintf(out, "  Sample Size:      %d\n", cfg.Samples())
	fmt.Fprintf(out, "  Measurement Time: %s\n", cfg.MeasurementWindow())
	fmt.Fprintf(out, "  Warm-up Time:     %s\n", cfg.WarmUpWindow())
	if limit := cfg.IterationLimit(); limit > 0 {
		fmt.Fprintf(out, "  Max Iterations:   %d\n", limit)
	} else {
		fmt.Fprintln(out, "  Max Iterations:   unbounded")
	}
	fmt.Fprintf(out, "  Modes:            %s\n", strings.Join(cfg.EnabledModes(), ", "))
	fmt.Fprintf(out, "  Debug:            %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Log File:         %s\n", cfg.LogFilePath())
}
