// internal/commands/benchmark.go
package tokbench

import (
	"time"

	"github.com/mwiater/tokbench/internal/appconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// benchmarkCmd groups benchmark-related CLI commands.
var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Group commands for running benchmarks",
}

func init() {
	rootCmd.AddCommand(benchmarkCmd)

	flags := benchmarkCmd.PersistentFlags()
	flags.String("corpus", appconfig.DefaultCorpusPath, "corpus file, one unit per line")
	flags.String("encoding", appconfig.DefaultEncoding, "tokenizer encoding name")
	flags.String("normalization", "none", "unicode normalization before encoding (none, nfc, nfd, nfkc, nfkd)")
	flags.Int("batch-size", 1000, "lines per batch call")
	flags.Int("batch-workers", 0, "concurrent encoders inside one batch call (0 = sequential)")
	flags.Bool("allow-special", false, "encode special tokens instead of failing on them")
	flags.Int("sample-size", 20, "minimum timed iterations per mode")
	flags.Duration("measurement-time", 5*time.Second, "minimum wall-clock window of each timed run")
	flags.Duration("warm-up-time", 3*time.Second, "untimed warm-up window before each timed run")
	flags.Int("max-iterations", 0, "cap on timed iterations per mode (0 = unbounded)")

	for key, flag := range map[string]string{
		"corpus":           "corpus",
		"encoding":         "encoding",
		"normalization":    "normalization",
		"batch_size":       "batch-size",
		"batch_workers":    "batch-workers",
		"allow_special":    "allow-special",
		"sample_size":      "sample-size",
		"measurement_time": "measurement-time",
		"warm_up_time":     "warm-up-time",
		"max_iterations":   "max-iterations",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}
