package parsley

import (
	"strings"

	"github.com/alecthomas/parsley/sequence"
)

type multiPrimitive[I, T any] struct {
	node
	fragment string
	parse    func(seq sequence.Sequence[I], ctx *Context) MultiResult[T]
}

func (p *multiPrimitive[I, T]) Describe([]string) string { return p.fragment }

func (p *multiPrimitive[I, T]) ParseAll(seq sequence.Sequence[I], ctx *Context) MultiResult[T] {
	return p.parse(seq, ctx)
}

// ProduceMulti always yields one alternative per value returned by factory,
// in order, each consuming nothing.
func ProduceMulti[I, T any](factory func(ctx *Context) []T) MultiParser[I, T] {
	return &multiPrimitive[I, T]{fragment: "PRODUCE", parse: func(seq sequence.Sequence[I], ctx *Context) MultiResult[T] {
		values := factory(ctx)
		out := make(MultiResult[T], 0, len(values))
		for _, value := range values {
			out = append(out, Alt(value, 0))
		}
		return out
	}}
}

// FailMulti never yields any alternatives.
func FailMulti[I, T any]() MultiParser[I, T] {
	return &multiPrimitive[I, T]{fragment: "FAIL", parse: func(sequence.Sequence[I], *Context) MultiResult[T] {
		return nil
	}}
}

// <expr> | <expr> ...
type alternatives[I, T any] struct {
	node
	parsers []Parser[I, T]
}

// Alternatives tries every parser from the same position and yields each
// successful parse, in argument order.
func Alternatives[I, T any](parsers ...Parser[I, T]) MultiParser[I, T] {
	a := &alternatives[I, T]{parsers: parsers}
	for _, p := range parsers {
		a.children = append(a.children, p)
	}
	return a
}

func (a *alternatives[I, T]) Describe(children []string) string {
	return strings.Join(children, " | ")
}

func (a *alternatives[I, T]) ParseAll(seq sequence.Sequence[I], ctx *Context) MultiResult[T] {
	var out MultiResult[T]
	m := begin(seq, ctx)
	for _, p := range a.parsers {
		r := p.Parse(seq, ctx)
		if r.OK() {
			out = append(out, Alternative[T]{Value: r.Value(), Consumed: m.consumed(), writes: m.writes()})
		}
		m.rewind()
	}
	m.abandon()
	return out
}

// SELECT <expr>
type selection[I, T any] struct {
	node
	p    MultiParser[I, T]
	pick func(alts MultiResult[T], offset int) (Alternative[T], error)
}

func newSelection[I, T any](p MultiParser[I, T], pick func(alts MultiResult[T], offset int) (Alternative[T], error)) Parser[I, T] {
	return &selection[I, T]{node: node{children: []Node{p}}, p: p, pick: pick}
}

// Select evaluates p and lets selector choose, or derive, one alternative.
//
// The chosen alternative's consumption is applied to the sequence, and any
// data context writes it made are replayed. If selector returns false the
// parse fails with ErrAmbiguity.
func Select[I, T any](p MultiParser[I, T], selector func(alts MultiResult[T]) (Alternative[T], bool)) Parser[I, T] {
	return newSelection(p, func(alts MultiResult[T], offset int) (Alternative[T], error) {
		alt, ok := selector(alts)
		if !ok {
			return alt, Errorf(ErrAmbiguity, offset, "no alternative selected out of %d", len(alts))
		}
		return alt, nil
	})
}

// Single succeeds only if p yields exactly one alternative.
func Single[I, T any](p MultiParser[I, T]) Parser[I, T] {
	return newSelection(p, func(alts MultiResult[T], offset int) (Alternative[T], error) {
		if len(alts) != 1 {
			return Alternative[T]{}, Errorf(ErrAmbiguity, offset, "expected exactly one alternative but got %d", len(alts))
		}
		return alts[0], nil
	})
}

// First selects the most preferred alternative of p.
func First[I, T any](p MultiParser[I, T]) Parser[I, T] {
	return newSelection(p, func(alts MultiResult[T], offset int) (Alternative[T], error) {
		if len(alts) == 0 {
			return Alternative[T]{}, Errorf(ErrAmbiguity, offset, "no alternatives")
		}
		return alts[0], nil
	})
}

func (s *selection[I, T]) Describe(children []string) string { return "SELECT " + children[0] }

func (s *selection[I, T]) Parse(seq sequence.Sequence[I], ctx *Context) Result[T] {
	m := begin(seq, ctx)
	alts := s.p.ParseAll(seq, ctx)
	m.rewind()
	alt, err := s.pick(alts, seq.Consumed())
	if err != nil {
		m.abandon()
		return Failure[T](err)
	}
	for i := 0; i < alt.Consumed; i++ {
		if _, err := seq.Next(); err != nil {
			m.abandon()
			return inputError[I, T](seq, err)
		}
	}
	for key, value := range alt.writes {
		ctx.Set(key, value)
	}
	m.accept()
	return Success(alt.Value, m.consumed())
}
