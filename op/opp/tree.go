package opp

import (
	"github.com/npillmayer/opgo"
	"github.com/npillmayer/opgo/op"
)

// Node is a node of a derivation tree. Leaves are terminals carrying the
// input token; inner nodes are non-terminals carrying the rule reduced.
type Node struct {
	Symbol   *op.Symbol
	Rule     *op.Rule   // nil for terminals
	Token    opgo.Token // nil for non-terminals
	Span     opgo.Span
	Children []*Node
}

func leaf(A *op.Symbol, tok opgo.Token) *Node {
	return &Node{Symbol: A, Token: tok, Span: tok.Span()}
}

func inner(r *op.Rule, children []*Node) *Node {
	n := &Node{Symbol: r.LHS, Rule: r, Children: children}
	for _, ch := range children {
		n.Span = n.Span.Extend(ch.Span)
	}
	return n
}

// IsTerminal is true for leaf nodes.
func (n *Node) IsTerminal() bool {
	return n.Rule == nil
}

// Walk traverses the tree depth-first, calling pre before and post after
// visiting the children of a node. Either may be nil.
func (n *Node) Walk(pre, post func(n *Node, depth int)) {
	n.walk(pre, post, 0)
}

func (n *Node) walk(pre, post func(*Node, int), depth int) {
	if pre != nil {
		pre(n, depth)
	}
	for _, ch := range n.Children {
		ch.walk(pre, post, depth+1)
	}
	if post != nil {
		post(n, depth)
	}
}

// Leftmost returns the IDs of the rules of a leftmost derivation, i.e. in
// preorder of the tree.
func (n *Node) Leftmost() []int {
	var ids []int
	n.Walk(func(x *Node, _ int) {
		if !x.IsTerminal() {
			ids = append(ids, x.Rule.ID)
		}
	}, nil)
	return ids
}

// Postfix returns the tokens emitted by the rules of the tree, in postorder.
func (n *Node) Postfix() []string {
	var tokens []string
	n.Walk(nil, func(x *Node, _ int) {
		if !x.IsTerminal() && x.Rule.Emit != "" {
			tokens = append(tokens, x.Rule.Emit)
		}
	})
	return tokens
}
