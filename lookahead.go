package parsley

import (
	"fmt"

	"github.com/alecthomas/parsley/sequence"
)

// lookahead runs p and then restores both the sequence and the context.
func lookahead[I, T any](p Parser[I, T], seq sequence.Sequence[I], ctx *Context) Result[T] {
	m := begin(seq, ctx)
	r := p.Parse(seq, ctx)
	m.abandon()
	return r
}

// <expr> (?= <expr>) | <expr> (?! <expr>)
type followedBy[I, T, L any] struct {
	node
	p      Parser[I, T]
	ahead  Parser[I, L]
	negate bool
}

// FollowedBy matches p only if ahead matches immediately after it.
//
// ahead never consumes input or leaves data behind. If it does not match the
// sequence is rewound to before p.
func FollowedBy[I, T, L any](p Parser[I, T], ahead Parser[I, L]) Parser[I, T] {
	return &followedBy[I, T, L]{node: node{children: []Node{p, ahead}}, p: p, ahead: ahead}
}

// NotFollowedBy matches p only if ahead does not match immediately after it.
func NotFollowedBy[I, T, L any](p Parser[I, T], ahead Parser[I, L]) Parser[I, T] {
	return &followedBy[I, T, L]{node: node{children: []Node{p, ahead}}, p: p, ahead: ahead, negate: true}
}

func (f *followedBy[I, T, L]) Describe(children []string) string {
	op := "?="
	if f.negate {
		op = "?!"
	}
	return fmt.Sprintf("%s (%s %s)", children[0], op, children[1])
}

func (f *followedBy[I, T, L]) leftmost() []Node { return f.children[:1] }

func (f *followedBy[I, T, L]) Parse(seq sequence.Sequence[I], ctx *Context) Result[T] {
	m := begin(seq, ctx)
	r := f.p.Parse(seq, ctx)
	if !r.OK() {
		m.abandon()
		return r
	}
	offset := seq.Consumed()
	matched := lookahead(f.ahead, seq, ctx).OK()
	if matched == f.negate {
		m.abandon()
		if f.negate {
			return Failure[T](Errorf(ErrPredicateNotSatisfied, offset, "unexpected %s", String(f.ahead)))
		}
		return Failure[T](Errorf(ErrPredicateNotSatisfied, offset, "expected %s", String(f.ahead)))
	}
	m.accept()
	return Success(r.Value(), m.consumed())
}

// (?= <expr>)
type positiveLookahead[I, T any] struct {
	node
	p Parser[I, T]
}

// PositiveLookahead matches if p matches, but never consumes input or keeps
// data context writes.
func PositiveLookahead[I, T any](p Parser[I, T]) Parser[I, T] {
	return &positiveLookahead[I, T]{node: node{children: []Node{p}}, p: p}
}

func (p *positiveLookahead[I, T]) Describe(children []string) string {
	return "(?= " + children[0] + ")"
}

func (p *positiveLookahead[I, T]) Parse(seq sequence.Sequence[I], ctx *Context) Result[T] {
	r := lookahead(p.p, seq, ctx)
	if !r.OK() {
		return r
	}
	return Success(r.Value(), 0)
}
