// internal/corpus/corpus.go
// Package corpus reads line-delimited text corpora and groups their lines into batches.
package corpus

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// Unit is one line of the corpus, the smallest input handed to a pipeline.
type Unit string

// Batch is an ordered group of units encoded in a single pipeline call.
type Batch []Unit

// Corpus holds the ordered units of a corpus file together with its batches.
type Corpus struct {
	Path      string
	Units     []Unit
	Batches   []Batch
	Bytes     int64
	BatchSize int
}

// ErrInvalidUTF8 is returned when the corpus bytes are not valid UTF-8.
var ErrInvalidUTF8 = errors.New("corpus is not valid UTF-8")

// ErrInvalidBatchSize is returned when batches are requested with a non-positive capacity.
var ErrInvalidBatchSize = errors.New("batch size must be greater than zero")

// LoadError reports a resource that could not be loaded before a run starts.
type LoadError struct {
	Resource string
	Path     string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s %q: %v", e.Resource, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads the corpus at path and splits it into batches of batchSize units.
func Load(path string, batchSize int) (*Corpus, error) {
	if batchSize <= 0 {
		return nil, ErrInvalidBatchSize
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Resource: "corpus", Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return nil, &LoadError{Resource: "corpus", Path: path, Err: ErrInvalidUTF8}
	}

	units, err := Read(bytes.NewReader(data))
	if err != nil {
		return nil, &LoadError{Resource: "corpus", Path: path, Err: err}
	}

	batches, err := Batches(units, batchSize)
	if err != nil {
		return nil, err
	}

	return &Corpus{
		Path:      path,
		Units:     units,
		Batches:   batches,
		Bytes:     int64(len(data)),
		BatchSize: batchSize,
	}, nil
}

// Read splits r into units, one per line. A trailing carriage return is dropped.
func Read(r io.Reader) ([]Unit, error) {
	var units []Unit
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		units = append(units, Unit(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return units, nil
}

// Batches groups units into consecutive batches of at most size units.
//
// The first batch exists before any unit is added, so an empty input yields a
// single empty batch rather than none.
func Batches(units []Unit, size int) ([]Batch, error) {
	if size <= 0 {
		return nil, ErrInvalidBatchSize
	}

	batches := make([]Batch, 1, len(units)/size+1)
	batches[0] = make(Batch, 0, min(size, len(units)))
	for _, unit := range units {
		last := len(batches) - 1
		if len(batches[last]) >= size {
			batches = append(batches, make(Batch, 0, min(size, len(units))))
			last++
		}
		batches[last] = append(batches[last], unit)
	}
	return batches, nil
}

// Lines returns the number of units in the corpus.
func (c *Corpus) Lines() int {
	if c == nil {
		return 0
	}
	return len(c.Units)
}
