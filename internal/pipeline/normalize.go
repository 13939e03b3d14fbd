package pipeline

import (
	"fmt"
	"strings"

	"github.com/mwiater/tokbench/internal/corpus"
	"golang.org/x/text/unicode/norm"
)

// ParseForm maps a normalization name to a Unicode form. "none" and "" disable
// normalization.
func ParseForm(name string) (norm.Form, bool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return 0, false, nil
	case "nfc":
		return norm.NFC, true, nil
	case "nfd":
		return norm.NFD, true, nil
	case "nfkc":
		return norm.NFKC, true, nil
	case "nfkd":
		return norm.NFKD, true, nil
	default:
		return 0, false, fmt.Errorf("unknown normalization %q (want none, nfc, nfd, nfkc or nfkd)", name)
	}
}

type normalized struct {
	next Pipeline
	form norm.Form
}

// Normalize puts a Unicode normalizer in front of next. Normalization is part of
// every measured call.
func Normalize(next Pipeline, form norm.Form) Pipeline {
	return normalized{next: next, form: form}
}

func (n normalized) Encode(unit corpus.Unit) (Encoding, error) {
	return n.next.Encode(corpus.Unit(n.form.String(string(unit))))
}

func (n normalized) EncodeBatch(batch corpus.Batch) ([]Encoding, error) {
	out := make(corpus.Batch, len(batch))
	for i, unit := range batch {
		out[i] = corpus.Unit(n.form.String(string(unit)))
	}
	return n.next.EncodeBatch(out)
}
