package parsley

import (
	"fmt"

	"github.com/alecthomas/repr"
	"golang.org/x/exp/slices"
)

// Result of a single parse: either a success carrying a value and the number
// of items consumed, or a failure carrying an error.
type Result[T any] struct {
	value    T
	consumed int
	err      error
}

// Success creates a successful Result.
func Success[T any](value T, consumed int) Result[T] {
	return Result[T]{value: value, consumed: consumed}
}

// Failure creates a failed Result.
func Failure[T any](err error) Result[T] {
	if err == nil {
		panic("parsley: Failure requires a non-nil error")
	}
	return Result[T]{err: err}
}

// OK returns true if the parse succeeded.
func (r Result[T]) OK() bool { return r.err == nil }

// Value parsed, or the zero value of T on failure.
func (r Result[T]) Value() T { return r.value }

// Consumed returns the number of items the parse advanced. Always 0 on failure.
func (r Result[T]) Consumed() int { return r.consumed }

// Err returns the reason for failure, or nil.
func (r Result[T]) Err() error { return r.err }

// Reason returns the failure message, or "" on success.
func (r Result[T]) Reason() string {
	if r.err == nil {
		return ""
	}
	return r.err.Error()
}

// Get returns the value and error.
func (r Result[T]) Get() (T, error) { return r.value, r.err }

func (r Result[T]) String() string {
	if r.err != nil {
		return fmt.Sprintf("Failure(%s)", r.err)
	}
	return fmt.Sprintf("Success(%s, consumed=%d)", repr.String(r.value), r.consumed)
}

// An Alternative is one parse out of a MultiResult.
type Alternative[T any] struct {
	Value    T
	Consumed int
	// Data context writes made while producing this alternative, applied when it is selected.
	writes map[string]any
}

// Alt creates an Alternative.
func Alt[T any](value T, consumed int) Alternative[T] {
	return Alternative[T]{Value: value, Consumed: consumed}
}

// MultiResult is an ordered set of alternatives, most preferred first.
//
// An empty MultiResult means there was no valid parse.
type MultiResult[T any] []Alternative[T]

// Len returns the number of alternatives.
func (m MultiResult[T]) Len() int { return len(m) }

// Values of every alternative, in order.
func (m MultiResult[T]) Values() []T {
	out := make([]T, 0, len(m))
	for _, alt := range m {
		out = append(out, alt.Value)
	}
	return out
}

// Clone returns a copy of m that can be reordered without affecting m.
func (m MultiResult[T]) Clone() MultiResult[T] {
	return slices.Clone(m)
}
