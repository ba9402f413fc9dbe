package parsley

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/alecthomas/parsley/sequence"
)

// Kinds of failure. Use errors.Is to test a Result's error against these.
var (
	// ErrEndOfInput is returned when an item was required but the sequence was exhausted.
	ErrEndOfInput = sequence.ErrEndOfInput
	// ErrPredicateNotSatisfied is returned when the input did not satisfy a parser's condition.
	ErrPredicateNotSatisfied = errors.New("predicate not satisfied")
	// ErrKeyNotFound is returned by GetData when the key is absent or has the wrong type.
	ErrKeyNotFound = errors.New("key not found")
	// ErrAmbiguity is returned when a selection over a MultiResult yields no single value.
	ErrAmbiguity = errors.New("ambiguous parse")
	// ErrComposition marks failures of a step within Then or Rule.
	ErrComposition = errors.New("composition failed")
	// ErrTrailingInput is returned by the top-level helpers when RequireEnd is set and input remains.
	ErrTrailingInput = errors.New("unexpected trailing input")
)

// Error represents a parse failure.
//
// The error will contain the offset, in items consumed, at which it was detected.
type Error interface {
	error
	// Unadorned message.
	Message() string
	// Offset the error occurred at.
	Offset() int
}

type parseError struct {
	kind    error
	message string
	offset  int
}

func (p *parseError) Error() string   { return fmt.Sprintf("offset %d: %s", p.offset, p.message) }
func (p *parseError) Message() string { return p.message }
func (p *parseError) Offset() int     { return p.offset }
func (p *parseError) Unwrap() error   { return p.kind }

// Errorf creates a new Error of the given kind at offset.
func Errorf(kind error, offset int, format string, args ...any) error {
	return &parseError{kind: kind, message: fmt.Sprintf(format, args...), offset: offset}
}

// AnnotateError wraps an existing error with an offset.
//
// If the existing error is already an Error it will be returned unmodified.
func AnnotateError(offset int, err error) error {
	var perr Error
	if errors.As(err, &perr) {
		return err
	}
	return &parseError{kind: err, message: err.Error(), offset: offset}
}

// compositionError records that step (1-based) of composite failed.
func compositionError(err error, step int, composite Node) error {
	return errors.Mark(errors.Wrapf(err, "step %d of %s", step, String(composite)), ErrComposition)
}
