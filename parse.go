package parsley

import (
	"io"

	"github.com/alecthomas/parsley/sequence"
)

// Parse seq with p.
//
// A fresh data Context is created unless WithContext is given.
func Parse[I, T any](p Parser[I, T], seq sequence.Sequence[I], options ...Option) (T, error) {
	var zero T
	c, err := configure(options)
	if err != nil {
		return zero, err
	}
	r := p.Parse(seq, c.ctx)
	if err := sequenceErr(seq); err != nil {
		return zero, AnnotateError(seq.Consumed(), err)
	}
	if !r.OK() {
		return zero, r.Err()
	}
	if c.requireEnd && !seq.AtEnd() {
		return zero, Errorf(ErrTrailingInput, seq.Consumed(), "unexpected %s", peekString(seq))
	}
	return r.Value(), nil
}

// ParseString parses the runes of s with p.
func ParseString[T any](p Parser[rune, T], s string, options ...Option) (T, error) {
	return Parse(p, sequence.FromString(s), options...)
}

// ParseSlice parses items with p.
func ParseSlice[I, T any](p Parser[I, T], items []I, options ...Option) (T, error) {
	return Parse(p, sequence.FromSlice(items), options...)
}

// ParseReader parses the runes read from r with p.
func ParseReader[T any](p Parser[rune, T], r io.Reader, options ...Option) (T, error) {
	return Parse(p, sequence.FromReader(r), options...)
}

// ParseMulti evaluates p against seq and returns every alternative.
//
// RequireEnd discards alternatives that do not consume the entire input.
func ParseMulti[I, T any](p MultiParser[I, T], seq sequence.Sequence[I], options ...Option) (MultiResult[T], error) {
	c, err := configure(options)
	if err != nil {
		return nil, err
	}
	alts := p.ParseAll(seq, c.ctx)
	if err := sequenceErr(seq); err != nil {
		return nil, AnnotateError(seq.Consumed(), err)
	}
	if !c.requireEnd {
		return alts, nil
	}
	out := MultiResult[T]{}
	cp := seq.Checkpoint()
	for _, alt := range alts {
		for i := 0; i < alt.Consumed; i++ {
			_, _ = seq.Next()
		}
		if seq.AtEnd() {
			out = append(out, alt)
		}
		seq.Rewind(cp)
	}
	return out, nil
}

// Sequences backed by I/O report read errors via Err.
func sequenceErr[I any](seq sequence.Sequence[I]) error {
	if s, ok := seq.(interface{ Err() error }); ok {
		return s.Err()
	}
	return nil
}
