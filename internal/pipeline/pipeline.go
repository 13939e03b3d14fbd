// internal/pipeline/pipeline.go
// Package pipeline defines the tokenizer capability the harness measures and the
// adapters that satisfy it.
package pipeline

import (
	"fmt"

	"github.com/mwiater/tokbench/internal/corpus"
)

// Encoding is the output of tokenizing one unit.
type Encoding struct {
	IDs []int
}

// TokenCount returns the number of tokens in the encoding.
func (e Encoding) TokenCount() int {
	return len(e.IDs)
}

// Pipeline is any tokenizer that can encode single units and batches of units.
type Pipeline interface {
	Encode(unit corpus.Unit) (Encoding, error)
	EncodeBatch(batch corpus.Batch) ([]Encoding, error)
}

// EncodeError reports a failed pipeline call.
type EncodeError struct {
	Op  string
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// Options selects and configures the pipeline stages.
type Options struct {
	Encoding      string
	Normalization string
	BatchWorkers  int
	AllowSpecial  bool
}

// New builds the configured pipeline: an optional normalizer in front of the
// BPE encoding. A missing or unknown encoding is a load error.
func New(opts Options) (Pipeline, error) {
	form, enabled, err := ParseForm(opts.Normalization)
	if err != nil {
		return nil, err
	}

	base, err := NewTiktoken(opts.Encoding, opts.AllowSpecial, opts.BatchWorkers)
	if err != nil {
		return nil, &corpus.LoadError{Resource: "encoding", Path: opts.Encoding, Err: err}
	}
	if !enabled {
		return base, nil
	}
	return Normalize(base, form), nil
}

// TokenTotal sums the token counts of encodings.
func TokenTotal(encodings []Encoding) int {
	total := 0
	for _, enc := range encodings {
		total += enc.TokenCount()
	}
	return total
}
