package parsley

import (
	"github.com/alecthomas/parsley/sequence"
)

// A Node in the parser graph.
//
// Every Parser and MultiParser is a Node. Node identity is pointer identity:
// two parsers built separately are distinct nodes even if they behave the same.
type Node interface {
	// Name assigned by Named, or "" if unnamed.
	Name() string
	// Children returns the parsers this node was composed from, in construction order.
	Children() []Node
	// Describe renders this node's own grammar fragment, given its rendered children.
	Describe(children []string) string
}

// A Parser produces a single Result from a Sequence of I.
//
// Parse must leave the sequence where it started when it fails, and must
// report the number of items it advanced when it succeeds. ctx must not be nil.
type Parser[I, T any] interface {
	Node
	Parse(seq sequence.Sequence[I], ctx *Context) Result[T]
}

// A MultiParser produces an ordered set of alternative parses.
//
// ParseAll leaves the sequence and the Context as it found them. Accepting one
// of the alternatives is the job of Select and friends.
type MultiParser[I, T any] interface {
	Node
	ParseAll(seq sequence.Sequence[I], ctx *Context) MultiResult[T]
}

// Unit is the placeholder value produced by parsers with nothing to return.
type Unit struct{}

// Named returns a parser that behaves exactly like p but carries name.
//
// Named parsers are rendered as their own production by BNF and referenced
// by name everywhere else.
func Named[I, T any](p Parser[I, T], name string) Parser[I, T] {
	return &named[I, T]{Parser: p, name: name}
}

// NamedMulti is Named for MultiParsers.
func NamedMulti[I, T any](p MultiParser[I, T], name string) MultiParser[I, T] {
	return &namedMulti[I, T]{MultiParser: p, name: name}
}

type named[I, T any] struct {
	Parser[I, T]
	name string
}

func (n *named[I, T]) Name() string { return n.name }
func (n *named[I, T]) unwrap() Node { return n.Parser }

type namedMulti[I, T any] struct {
	MultiParser[I, T]
	name string
}

func (n *namedMulti[I, T]) Name() string { return n.name }
func (n *namedMulti[I, T]) unwrap() Node { return n.MultiParser }

// CanMatch reports whether p matches at the current position of seq.
//
// It is Parse with the value discarded, so a successful match advances seq.
func CanMatch[I, T any](p Parser[I, T], seq sequence.Sequence[I], ctx *Context) bool {
	return p.Parse(seq, ctx).OK()
}

// Matches reports whether p matches a prefix of items.
func Matches[I, T any](p Parser[I, T], items []I) bool {
	return CanMatch(p, sequence.FromSlice(items), NewContext())
}
