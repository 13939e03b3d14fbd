package benchmark

import (
	"slices"

	"github.com/mwiater/tokbench/internal/appconfig"
	"github.com/mwiater/tokbench/internal/corpus"
	"github.com/mwiater/tokbench/internal/pipeline"
	"github.com/mwiater/tokbench/internal/timing"
)

// SingleMode times one Encode call per corpus line.
func SingleMode(p pipeline.Pipeline) timing.Mode[corpus.Unit, pipeline.Encoding] {
	return timing.Mode[corpus.Unit, pipeline.Encoding]{
		Name:   appconfig.ModeSingle,
		Call:   p.Encode,
		Tokens: pipeline.Encoding.TokenCount,
	}
}

// BatchMode times one EncodeBatch call per batch. Each call gets its own copy of
// the batch, made before the timer starts.
func BatchMode(p pipeline.Pipeline) timing.Mode[corpus.Batch, []pipeline.Encoding] {
	return timing.Mode[corpus.Batch, []pipeline.Encoding]{
		Name:    appconfig.ModeBatch,
		Prepare: slices.Clone[corpus.Batch],
		Call:    p.EncodeBatch,
		Tokens:  pipeline.TokenTotal,
	}
}
