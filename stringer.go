package parsley

import (
	"strings"
)

type stringer struct {
	active map[Node]bool
}

// String renders n on a single line.
//
// Named descendants are rendered by name and cycles through unnamed nodes as "...".
func String(n Node) string {
	s := &stringer{active: map[Node]bool{}}
	return s.visit(n, true)
}

func (s *stringer) visit(n Node, root bool) string {
	if name := n.Name(); name != "" && !root {
		return name
	}
	if s.active[n] {
		return "..."
	}
	s.active[n] = true
	defer delete(s.active, n)
	children := n.Children()
	rendered := make([]string, len(children))
	for i, c := range children {
		rendered[i] = group(n, s.visit(c, false))
	}
	return n.Describe(rendered)
}

// group parenthesises an inline child expansion that is not atomic, unless
// the parent renders as its child.
func group(parent Node, expansion string) string {
	if transparent(parent) || atomic(expansion) {
		return expansion
	}
	return "(" + expansion + ")"
}

// transparent returns true if n, or the node it names, renders as its only child.
func transparent(n Node) bool {
	for _, u := range unwrapped(n) {
		if _, ok := u.(transparentNode); ok {
			return true
		}
	}
	return false
}
