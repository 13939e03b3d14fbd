package tokbench

import (
	"errors"
	"io"

	"github.com/mwiater/tokbench/internal/benchmark"
)

var runModes = benchmark.Run

func runBenchmark(out io.Writer, modes []string) error {
	cfg := GetConfig()
	if cfg == nil {
		return errors.New("configuration not loaded")
	}
	return runModes(cfg, modes, out)
}
