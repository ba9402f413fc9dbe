package parsley

import (
	"github.com/cockroachdb/errors"
)

// Visitor is called once for each node reachable by Walk. Calling next walks
// the node's children.
type Visitor func(n Node, next func() error) error

// Walk the parser graph rooted at n depth first, visiting each node once.
//
// Nodes are identified by identity, so cyclic graphs terminate.
func Walk(n Node, visitor Visitor) error {
	return walk(map[Node]bool{}, n, visitor)
}

func walk(seen map[Node]bool, n Node, visitor Visitor) error {
	if seen[n] {
		return nil
	}
	seen[n] = true
	return visitor(n, func() error {
		for _, c := range n.Children() {
			if err := walk(seen, c, visitor); err != nil {
				return err
			}
		}
		return nil
	})
}

// Validate checks that every forward reference reachable from n has been
// resolved, and that no forward reference can reach itself before consuming
// input.
func Validate(n Node) error {
	var path []string
	return Walk(n, func(n Node, next func() error) error {
		if name := n.Name(); name != "" {
			path = append(path, name)
			defer func() { path = path[:len(path)-1] }()
		}
		ref := forwardRef(n)
		if ref == nil {
			return next()
		}
		if !ref.Resolved() {
			return located("unresolved forward reference", path)
		}
		if cycle := leftCycle(n); cycle != nil {
			for _, c := range cycle {
				if name := c.Name(); name != "" {
					return errors.Newf("left recursion detected in %s", name)
				}
			}
			return located("left recursion detected", path)
		}
		return next()
	})
}

func located(msg string, path []string) error {
	if len(path) == 0 {
		return errors.New(msg)
	}
	return errors.Newf("%s in %s", msg, path[len(path)-1])
}

// unwrapped returns n followed by every node it names.
func unwrapped(n Node) []Node {
	out := []Node{n}
	for {
		w, ok := n.(interface{ unwrap() Node })
		if !ok {
			return out
		}
		n = w.unwrap()
		out = append(out, n)
	}
}

func forwardRef(n Node) interface{ Resolved() bool } {
	for _, u := range unwrapped(n) {
		if ref, ok := u.(interface{ Resolved() bool }); ok {
			return ref
		}
	}
	return nil
}

// leftmost returns the children n may run before it consumes any input.
func leftmost(n Node) []Node {
	for _, u := range unwrapped(n) {
		if l, ok := u.(interface{ leftmost() []Node }); ok {
			return l.leftmost()
		}
	}
	return n.Children()
}

// leftCycle returns a path of leftmost children leading from start back to
// itself, or nil if there is none.
func leftCycle(start Node) []Node {
	targets := map[Node]bool{}
	for _, u := range unwrapped(start) {
		targets[u] = true
	}
	seen := map[Node]bool{}
	path := []Node{start}
	var search func(n Node) bool
	search = func(n Node) bool {
		for _, c := range leftmost(n) {
			path = append(path, c)
			for _, u := range unwrapped(c) {
				if targets[u] {
					return true
				}
			}
			if !seen[c] {
				seen[c] = true
				if search(c) {
					return true
				}
			}
			path = path[:len(path)-1]
		}
		return false
	}
	if search(start) {
		return path
	}
	return nil
}
