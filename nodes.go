package parsley

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slices"

	"github.com/alecthomas/parsley/sequence"
)

// node holds the introspection state shared by every parser in this package.
type node struct {
	children []Node
}

func (n *node) Name() string     { return "" }
func (n *node) Children() []Node { return slices.Clone(n.children) }

// A leaf parser whose behaviour is a function of the sequence and context.
type primitive[I, T any] struct {
	node
	fragment string
	parse    func(seq sequence.Sequence[I], ctx *Context) Result[T]
}

func (p *primitive[I, T]) Describe([]string) string { return p.fragment }

func (p *primitive[I, T]) Parse(seq sequence.Sequence[I], ctx *Context) Result[T] {
	return p.parse(seq, ctx)
}

func leaf[I, T any](fragment string, parse func(seq sequence.Sequence[I], ctx *Context) Result[T]) Parser[I, T] {
	return &primitive[I, T]{fragment: fragment, parse: parse}
}

// inputError converts an error from the sequence into a failure at the current offset.
func inputError[I, T any](seq sequence.Sequence[I], err error) Result[T] {
	return Failure[T](AnnotateError(seq.Consumed(), err))
}

// Any matches any single item.
func Any[I any]() Parser[I, I] {
	return leaf(".", func(seq sequence.Sequence[I], ctx *Context) Result[I] {
		item, err := seq.Next()
		if err != nil {
			return inputError[I, I](seq, err)
		}
		return Success(item, 1)
	})
}

// End matches only at the end of input.
func End[I any]() Parser[I, Unit] {
	return leaf("END", func(seq sequence.Sequence[I], ctx *Context) Result[Unit] {
		if !seq.AtEnd() {
			return Failure[Unit](Errorf(ErrPredicateNotSatisfied, seq.Consumed(), "expected end of input but got %s", peekString(seq)))
		}
		return Success(Unit{}, 0)
	})
}

// IsEnd always succeeds, reporting whether the sequence is at its end.
func IsEnd[I any]() Parser[I, bool] {
	return leaf("END?", func(seq sequence.Sequence[I], ctx *Context) Result[bool] {
		return Success(seq.AtEnd(), 0)
	})
}

// Start matches only before anything has been consumed.
func Start[I any]() Parser[I, Unit] {
	return leaf("START", func(seq sequence.Sequence[I], ctx *Context) Result[Unit] {
		if seq.Consumed() != 0 {
			return Failure[Unit](Errorf(ErrPredicateNotSatisfied, seq.Consumed(), "expected start of input"))
		}
		return Success(Unit{}, 0)
	})
}

// Empty always succeeds without consuming anything.
func Empty[I any]() Parser[I, Unit] {
	return leaf("()", func(seq sequence.Sequence[I], ctx *Context) Result[Unit] {
		return Success(Unit{}, 0)
	})
}

// Fail never succeeds.
func Fail[I, T any]() Parser[I, T] {
	return leaf("FAIL", func(seq sequence.Sequence[I], ctx *Context) Result[T] {
		return Failure[T](Errorf(ErrPredicateNotSatisfied, seq.Consumed(), "fail"))
	})
}

// Peek returns the next item without consuming it.
func Peek[I any]() Parser[I, I] {
	return leaf("PEEK", func(seq sequence.Sequence[I], ctx *Context) Result[I] {
		item, err := seq.Peek()
		if err != nil {
			return inputError[I, I](seq, err)
		}
		return Success(item, 0)
	})
}

// Produce always succeeds without consuming, with the value returned by factory.
//
// factory is invoked each time the parser runs, not when it is built.
func Produce[I, T any](factory func(ctx *Context) T) Parser[I, T] {
	return leaf("PRODUCE", func(seq sequence.Sequence[I], ctx *Context) Result[T] {
		return Success(factory(ctx), 0)
	})
}

// Match a single item satisfying predicate.
func Match[I any](predicate func(item I) bool) Parser[I, I] {
	return leaf("MATCH", func(seq sequence.Sequence[I], ctx *Context) Result[I] {
		item, err := seq.Peek()
		if err != nil {
			return inputError[I, I](seq, err)
		}
		if !predicate(item) {
			return Failure[I](Errorf(ErrPredicateNotSatisfied, seq.Consumed(), "unexpected %s", quoteItem(item)))
		}
		_, _ = seq.Next()
		return Success(item, 1)
	})
}

// StartOfLine matches, without consuming, at the start of input or after a line break.
func StartOfLine() Parser[rune, Unit] {
	return leaf("BOL", func(seq sequence.Sequence[rune], ctx *Context) Result[Unit] {
		if prev, ok := seq.Previous(); ok && !isLineBreak(prev) {
			return Failure[Unit](Errorf(ErrPredicateNotSatisfied, seq.Consumed(), "expected start of line"))
		}
		return Success(Unit{}, 0)
	})
}

// EndOfLine matches, without consuming, before a line break or at the end of input.
func EndOfLine() Parser[rune, Unit] {
	return leaf("EOL", func(seq sequence.Sequence[rune], ctx *Context) Result[Unit] {
		next, err := seq.Peek()
		if errors.Is(err, ErrEndOfInput) {
			return Success(Unit{}, 0)
		} else if err != nil {
			return inputError[rune, Unit](seq, err)
		}
		if !isLineBreak(next) {
			return Failure[Unit](Errorf(ErrPredicateNotSatisfied, seq.Consumed(), "expected end of line but got %q", next))
		}
		return Success(Unit{}, 0)
	})
}

func isLineBreak(r rune) bool { return r == '\n' || r == '\r' }

// Literal matches items exactly, in order.
func Literal[I comparable](items ...I) Parser[I, []I] {
	items = slices.Clone(items)
	return leaf(quoteItems(items), func(seq sequence.Sequence[I], ctx *Context) Result[[]I] {
		cp := seq.Checkpoint()
		for _, expected := range items {
			item, err := seq.Next()
			if err != nil {
				seq.Rewind(cp)
				return inputError[I, []I](seq, err)
			}
			if item != expected {
				seq.Rewind(cp)
				return Failure[[]I](Errorf(ErrPredicateNotSatisfied, seq.Consumed(), "expected %s", quoteItems(items)))
			}
		}
		return Success(slices.Clone(items), len(items))
	})
}

// Text matches the runes of s.
func Text(s string) Parser[rune, string] {
	return Map(Literal([]rune(s)...), func(runes []rune) string { return string(runes) })
}

// Char matches the rune r.
func Char(r rune) Parser[rune, rune] {
	return Map(Literal(r), func(runes []rune) rune { return runes[0] })
}

func quoteItems[I any](items []I) string {
	w := &strings.Builder{}
	for _, item := range items {
		switch item := any(item).(type) {
		case rune:
			w.WriteRune(item)
		case byte:
			w.WriteByte(item)
		default:
			fmt.Fprint(w, item)
		}
	}
	return fmt.Sprintf("%q", w.String())
}

func quoteItem[I any](item I) string { return quoteItems([]I{item}) }

func peekString[I any](seq sequence.Sequence[I]) string {
	item, err := seq.Peek()
	if err != nil {
		return "end of input"
	}
	return quoteItem(item)
}
