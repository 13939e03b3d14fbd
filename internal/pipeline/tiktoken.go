package pipeline

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/mwiater/tokbench/internal/corpus"
	"github.com/pkoukk/tiktoken-go"
	"golang.org/x/sync/errgroup"
)

// DefaultEncoding is the BPE encoding used when none is configured.
const DefaultEncoding = "cl100k_base"

// bpeEncoder is the subset of *tiktoken.Tiktoken the adapter calls.
type bpeEncoder interface {
	Encode(text string, allowedSpecial []string, disallowedSpecial []string) []int
	SpecialTokenRegex(disallowedSpecialSet map[string]any) *regexp2.Regexp
}

// knownSpecialTokens are the special tokens tiktoken-go defines across its encodings.
var knownSpecialTokens = []string{
	tiktoken.ENDOFTEXT,
	tiktoken.FIM_PREFIX,
	tiktoken.FIM_MIDDLE,
	tiktoken.FIM_SUFFIX,
	tiktoken.ENDOFPROMPT,
}

// specialTokens returns the known special tokens that enc encodes differently
// when they are allowed.
func specialTokens(enc bpeEncoder) map[string]any {
	set := map[string]any{}
	for _, tok := range knownSpecialTokens {
		if !slices.Equal(enc.Encode(tok, []string{tok}, nil), enc.Encode(tok, nil, nil)) {
			set[tok] = true
		}
	}
	return set
}

var getEncoding = func(name string) (bpeEncoder, error) {
	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, err
	}
	return enc, nil
}

// Tiktoken adapts a tiktoken BPE encoding to Pipeline.
type Tiktoken struct {
	name           string
	enc            bpeEncoder
	allowedSpecial []string
	// disallowed matches special tokens that fail an encode; nil when all are allowed.
	disallowed *regexp2.Regexp
	workers    int
}

// NewTiktoken loads the named encoding. With allowSpecial, special tokens in the
// text are encoded as such; otherwise text containing them fails to encode.
// Batches are split over workers goroutines when workers > 1.
func NewTiktoken(name string, allowSpecial bool, workers int) (*Tiktoken, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultEncoding
	}
	enc, err := getEncoding(name)
	if err != nil {
		return nil, err
	}
	t := &Tiktoken{name: name, enc: enc, workers: workers}
	if allowSpecial {
		t.allowedSpecial = []string{"all"}
	} else if set := specialTokens(enc); len(set) > 0 {
		t.disallowed = enc.SpecialTokenRegex(set)
	}
	return t, nil
}

// Name returns the encoding name.
func (t *Tiktoken) Name() string { return t.name }

// Encode tokenizes a single unit. Panics raised by the encoder become EncodeErrors.
func (t *Tiktoken) Encode(unit corpus.Unit) (enc Encoding, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &EncodeError{Op: "encode", Err: fmt.Errorf("%v", r)}
		}
	}()
	if t.disallowed != nil {
		if m, _ := t.disallowed.FindStringMatch(string(unit)); m != nil {
			return Encoding{}, &EncodeError{Op: "encode", Err: fmt.Errorf("text contains disallowed special token %s", m.String())}
		}
	}
	return Encoding{IDs: t.enc.Encode(string(unit), t.allowedSpecial, nil)}, nil
}

// EncodeBatch tokenizes every unit of batch, keeping batch order. The first
// failing unit fails the whole batch.
func (t *Tiktoken) EncodeBatch(batch corpus.Batch) ([]Encoding, error) {
	out := make([]Encoding, len(batch))
	if t.workers <= 1 || len(batch) < 2 {
		for i, unit := range batch {
			enc, err := t.Encode(unit)
			if err != nil {
				return nil, &EncodeError{Op: "encode batch", Err: err}
			}
			out[i] = enc
		}
		return out, nil
	}

	var g errgroup.Group
	g.SetLimit(t.workers)
	for i, unit := range batch {
		g.Go(func() error {
			enc, err := t.Encode(unit)
			if err != nil {
				return err
			}
			out[i] = enc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &EncodeError{Op: "encode batch", Err: err}
	}
	return out, nil
}
