// Package grammars contains example grammars built with parsley.
package grammars

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slices"

	"github.com/alecthomas/parsley"
)

// Grammar is a named, runnable example grammar.
type Grammar struct {
	Name        string
	Description string
	Root        parsley.Node
	parse       func(r io.Reader, options ...parsley.Option) (any, error)
}

// Parse r with the grammar.
func (g Grammar) Parse(r io.Reader, options ...parsley.Option) (any, error) {
	return g.parse(r, options...)
}

func register[T any](name, description string, p parsley.Parser[rune, T]) Grammar {
	return Grammar{
		Name:        name,
		Description: description,
		Root:        p,
		parse: func(r io.Reader, options ...parsley.Option) (any, error) {
			return parsley.ParseReader(p, r, options...)
		},
	}
}

// All bundled grammars, sorted by name.
func All() []Grammar {
	out := []Grammar{
		register("arithmetic", "Infix arithmetic over floats.", Arithmetic()),
		register("ini", "INI files with [sections] and key = value properties.", INI()),
		register("words", "Run-together words split into the fewest dictionary words.", Words()),
	}
	slices.SortFunc(out, func(a, b Grammar) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Find a bundled grammar by name.
func Find(name string) (Grammar, error) {
	for _, g := range All() {
		if g.Name == name {
			return g, nil
		}
	}
	return Grammar{}, errors.Newf("unknown grammar %q", name)
}
