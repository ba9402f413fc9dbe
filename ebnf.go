package parsley

import (
	"fmt"
	"strings"
)

// BNF renders the grammar reachable from root.
//
// Each production is rendered on its own line as "name := expansion", root
// first and then every referenced production in the order it was first
// referenced. Named parsers are always referenced by name. Unnamed nodes are
// expanded inline, except an unnamed root and unnamed nodes that close a
// cycle, which are given synthesized names "_1", "_2", ... in traversal order.
func BNF(root Node) string {
	r := &bnfRenderer{labels: map[Node]string{}, emitted: map[Node]bool{root: true}, expanding: map[Node]bool{}}
	r.labelProductions(root)
	r.queue = append(r.queue, root)
	out := []string{}
	for i := 0; i < len(r.queue); i++ {
		n := r.queue[i]
		out = append(out, fmt.Sprintf("%s := %s", r.labels[n], r.expand(n)))
	}
	return strings.Join(out, "\n")
}

type bnfRenderer struct {
	labels    map[Node]string
	anonymous int
	emitted   map[Node]bool
	expanding map[Node]bool
	queue     []Node
}

func (r *bnfRenderer) label(n Node) string {
	if label, ok := r.labels[n]; ok {
		return label
	}
	if name := n.Name(); name != "" {
		r.labels[n] = name
		return name
	}
	r.anonymous++
	r.labels[n] = fmt.Sprintf("_%d", r.anonymous)
	return r.labels[n]
}

func (r *bnfRenderer) expand(n Node) string {
	children := n.Children()
	rendered := make([]string, len(children))
	for i, c := range children {
		rendered[i] = r.reference(n, c)
	}
	return n.Describe(rendered)
}

func (r *bnfRenderer) reference(parent, child Node) string {
	// An unlabelled node reached again while it is still being expanded inline
	// closes a cycle that labelProductions did not see.
	if _, ok := r.labels[child]; !ok && r.expanding[child] {
		r.label(child)
	}
	if label, ok := r.labels[child]; ok {
		if !r.emitted[child] {
			r.emitted[child] = true
			r.queue = append(r.queue, child)
		}
		return label
	}
	r.expanding[child] = true
	defer delete(r.expanding, child)
	return group(parent, r.expand(child))
}

// labelProductions finds the nodes that must be rendered as their own
// production: the root, named nodes, and one node on each cycle found along
// the traversal that would otherwise contain no production. Cycles closed
// through nodes the traversal has already left are labelled while rendering.
func (r *bnfRenderer) labelProductions(root Node) {
	r.label(root)
	stack := []Node{}
	depth := map[Node]int{}
	// The visitor never returns an error.
	Walk(root, func(n Node, next func() error) error { // nolint: errcheck
		if n.Name() != "" {
			r.label(n)
		}
		depth[n] = len(stack)
		stack = append(stack, n)
		defer func() {
			stack = stack[:len(stack)-1]
			delete(depth, n)
		}()
		for _, c := range n.Children() {
			if d, ok := depth[c]; ok && !hasLabel(r.labels, stack[d:]) {
				r.label(c)
			}
		}
		return next()
	})
}

func hasLabel(labels map[Node]string, cycle []Node) bool {
	for _, n := range cycle {
		if _, ok := labels[n]; ok {
			return true
		}
	}
	return false
}
