package chart

import (
	"strings"

	"github.com/heartmarshall/myenglish-translit/internal/grammar"
)

// Node is one vertex of a parse tree. Terminal nodes carry the matched
// token in Symbol and have no children.
type Node struct {
	Symbol   grammar.Symbol
	Terminal bool
	// Rule is the ID of the grammar rule that expanded this node, or -1 for
	// terminals.
	Rule int
	// Start and End delimit the covered tokens [Start, End).
	Start, End int
	Children []int
}

// Tree is a derivation stored as an arena of nodes. Nodes are kept in
// pre-order: the root is Nodes[0] and terminals appear left to right.
// Each Tree owns its nodes; trees returned by one Parse share nothing.
type Tree struct {
	Nodes []Node
}

// Root returns the root node.
func (t *Tree) Root() Node { return t.Nodes[0] }

// Node returns the node at index i.
func (t *Tree) Node(i int) Node { return t.Nodes[i] }

// Frontier returns the terminal tokens of the tree in order.
func (t *Tree) Frontier() []string {
	var out []string
	for _, n := range t.Nodes {
		if n.Terminal {
			out = append(out, string(n.Symbol))
		}
	}
	return out
}

// PostOrder returns node indices so that every node comes after all of its
// children. The walk uses an explicit stack.
func (t *Tree) PostOrder() []int {
	if len(t.Nodes) == 0 {
		return nil
	}
	type frame struct {
		node, next int
	}
	order := make([]int, 0, len(t.Nodes))
	stack := []frame{{node: 0}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		children := t.Nodes[top.node].Children
		if top.next < len(children) {
			child := children[top.next]
			top.next++
			stack = append(stack, frame{node: child})
			continue
		}
		order = append(order, top.node)
		stack = stack[:len(stack)-1]
	}
	return order
}

// String renders the tree in bracketed form: (S (Syllable (CV (C K) ...))).
func (t *Tree) String() string {
	if len(t.Nodes) == 0 {
		return "()"
	}
	var b strings.Builder
	t.write(&b, 0)
	return b.String()
}

func (t *Tree) write(b *strings.Builder, i int) {
	n := t.Nodes[i]
	if n.Terminal {
		b.WriteString(string(n.Symbol))
		return
	}
	b.WriteByte('(')
	b.WriteString(string(n.Symbol))
	for _, c := range n.Children {
		b.WriteByte(' ')
		t.write(b, c)
	}
	b.WriteByte(')')
}
