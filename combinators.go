package parsley

import (
	"strings"

	"github.com/alecthomas/parsley/sequence"
)

// Nodes that render as their only child.
type transparentNode interface {
	transparent()
}

type step[I any] func(seq sequence.Sequence[I], ctx *Context) (any, error)

func stepOf[I, T any](p Parser[I, T]) step[I] {
	return func(seq sequence.Sequence[I], ctx *Context) (any, error) {
		return p.Parse(seq, ctx).Get()
	}
}

// as asserts v to T, treating nil as the zero value.
func as[T any](v any) T {
	t, _ := v.(T)
	return t
}

// <step> <step> ...
type rule[I, U any] struct {
	node
	steps   []step[I]
	combine func(values []any) U
}

func newRule[I, U any](combine func(values []any) U, children []Node, steps ...step[I]) *rule[I, U] {
	return &rule[I, U]{node: node{children: children}, steps: steps, combine: combine}
}

func (r *rule[I, U]) Describe(children []string) string { return strings.Join(children, " ") }

// Only the first step runs before the rule consumes input. A nullable first
// step is not followed through.
func (r *rule[I, U]) leftmost() []Node {
	if len(r.children) == 0 {
		return nil
	}
	return r.children[:1]
}

func (r *rule[I, U]) Parse(seq sequence.Sequence[I], ctx *Context) Result[U] {
	m := begin(seq, ctx)
	values := make([]any, 0, len(r.steps))
	for i, next := range r.steps {
		value, err := next(seq, ctx)
		if err != nil {
			m.abandon()
			return Failure[U](compositionError(err, i+1, r))
		}
		values = append(values, value)
	}
	m.accept()
	return Success(r.combine(values), m.consumed())
}

// Then matches first followed by second, returning second's value.
//
// If either fails the sequence is rewound to before first.
func Then[I, A, B any](first Parser[I, A], second Parser[I, B]) Parser[I, B] {
	return Rule2(first, second, func(_ A, b B) B { return b })
}

// Rule matches each parser in turn and combines their values.
//
// The match is all or nothing: if any parser fails the sequence is rewound
// to where the rule started.
func Rule[I, T, U any](combine func(values []T) U, parsers ...Parser[I, T]) Parser[I, U] {
	children := make([]Node, 0, len(parsers))
	steps := make([]step[I], 0, len(parsers))
	for _, p := range parsers {
		children = append(children, p)
		steps = append(steps, stepOf(p))
	}
	return newRule(func(values []any) U {
		typed := make([]T, len(values))
		for i, v := range values {
			typed[i] = as[T](v)
		}
		return combine(typed)
	}, children, steps...)
}

// Rule2 matches a then b and combines their values.
func Rule2[I, A, B, U any](a Parser[I, A], b Parser[I, B], combine func(A, B) U) Parser[I, U] {
	return newRule(func(v []any) U {
		return combine(as[A](v[0]), as[B](v[1]))
	}, []Node{a, b}, stepOf(a), stepOf(b))
}

// Rule3 matches a, b then c and combines their values.
func Rule3[I, A, B, C, U any](a Parser[I, A], b Parser[I, B], c Parser[I, C], combine func(A, B, C) U) Parser[I, U] {
	return newRule(func(v []any) U {
		return combine(as[A](v[0]), as[B](v[1]), as[C](v[2]))
	}, []Node{a, b, c}, stepOf(a), stepOf(b), stepOf(c))
}

// Rule4 matches a, b, c then d and combines their values.
func Rule4[I, A, B, C, D, U any](a Parser[I, A], b Parser[I, B], c Parser[I, C], d Parser[I, D], combine func(A, B, C, D) U) Parser[I, U] {
	return newRule(func(v []any) U {
		return combine(as[A](v[0]), as[B](v[1]), as[C](v[2]), as[D](v[3]))
	}, []Node{a, b, c, d}, stepOf(a), stepOf(b), stepOf(c), stepOf(d))
}

type mapper[I, T, U any] struct {
	node
	p Parser[I, T]
	f func(T) U
}

// Map transforms the value of a successful parse.
func Map[I, T, U any](p Parser[I, T], f func(T) U) Parser[I, U] {
	return &mapper[I, T, U]{node: node{children: []Node{p}}, p: p, f: f}
}

func (m *mapper[I, T, U]) transparent()                      {}
func (m *mapper[I, T, U]) Describe(children []string) string { return children[0] }

func (m *mapper[I, T, U]) Parse(seq sequence.Sequence[I], ctx *Context) Result[U] {
	r := m.p.Parse(seq, ctx)
	if !r.OK() {
		return Failure[U](r.Err())
	}
	return Success(m.f(r.Value()), r.Consumed())
}

// <expr>*
type repeat[I, T any] struct {
	node
	p Parser[I, T]
}

// Repeat matches p as many times as possible, including zero.
//
// Repetition stops at the first failure, or at a match that consumes nothing.
func Repeat[I, T any](p Parser[I, T]) Parser[I, []T] {
	return &repeat[I, T]{node: node{children: []Node{p}}, p: p}
}

func (r *repeat[I, T]) Describe(children []string) string { return children[0] + "*" }

func (r *repeat[I, T]) Parse(seq sequence.Sequence[I], ctx *Context) Result[[]T] {
	m := begin(seq, ctx)
	out := []T{}
	for {
		attempt := begin(seq, ctx)
		res := r.p.Parse(seq, ctx)
		if !res.OK() || attempt.consumed() == 0 {
			attempt.abandon()
			break
		}
		attempt.accept()
		out = append(out, res.Value())
	}
	m.accept()
	return Success(out, m.consumed())
}

// [ <expr> ]
type optional[I, T any] struct {
	node
	p Parser[I, T]
}

// Optional matches p, or succeeds with the zero value of T without consuming.
func Optional[I, T any](p Parser[I, T]) Parser[I, T] {
	return &optional[I, T]{node: node{children: []Node{p}}, p: p}
}

func (o *optional[I, T]) Describe(children []string) string { return children[0] + "?" }

func (o *optional[I, T]) Parse(seq sequence.Sequence[I], ctx *Context) Result[T] {
	m := begin(seq, ctx)
	r := o.p.Parse(seq, ctx)
	if !r.OK() {
		m.abandon()
		var zero T
		return Success(zero, 0)
	}
	m.accept()
	return Success(r.Value(), m.consumed())
}

// Ref is a forward reference to a parser that is not yet built.
//
// It is the only way to express a recursive grammar:
//
//	expr := Forward[rune, int]()
//	group := Rule3(Char('('), expr, Char(')'), ...)
//	expr.Set(...group...)
type Ref[I, T any] struct {
	node
	target Parser[I, T]
}

var _ Parser[rune, int] = &Ref[rune, int]{}

// Forward creates an unresolved reference. Call Set before parsing.
func Forward[I, T any]() *Ref[I, T] {
	return &Ref[I, T]{}
}

// Set the parser this reference resolves to. It may only be called once.
func (r *Ref[I, T]) Set(p Parser[I, T]) {
	if r.target != nil {
		panic("parsley: forward reference set twice")
	}
	r.target = p
	r.children = []Node{p}
}

// Resolved returns true once Set has been called.
func (r *Ref[I, T]) Resolved() bool { return r.target != nil }

func (r *Ref[I, T]) transparent() {}

func (r *Ref[I, T]) Describe(children []string) string {
	if len(children) == 0 {
		return "<unresolved>"
	}
	return children[0]
}

func (r *Ref[I, T]) Parse(seq sequence.Sequence[I], ctx *Context) Result[T] {
	if r.target == nil {
		panic("parsley: parse through unresolved forward reference")
	}
	return r.target.Parse(seq, ctx)
}
