package op

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/emirpasic/gods/utils"
)

// ErrCyclicGraph is returned if a precedence matrix does not admit
// precedence functions.
var ErrCyclicGraph = errors.New("precedence graph contains a cycle")

// Role tells which of the two precedence functions a graph node stands for.
type Role int8

// Entering nodes carry F (the terminal is left of a relation), Leaving nodes
// carry G (the terminal is right of a relation).
const (
	Entering Role = iota
	Leaving
)

func (r Role) String() string {
	if r == Entering {
		return "f"
	}
	return "g"
}

// === Precedence Function Graph =============================================

// FunctionGraph is a directed graph over nodes (terminal, role). An edge
// x → y demands that x receives a larger function value than y:
//
//    a > b   ⇒   f(a) → g(b)
//    a < b   ⇒   g(b) → f(a)
//    a = b   ⇒   f(a) and g(b) are merged into one node
//
// Merged nodes share a single edge set. Merging is done with a union-find
// structure, thus equality propagates transitively, independent of the order
// in which relations are visited.
type FunctionGraph struct {
	matrix    *PrecedenceMatrix
	terminals []*Symbol
	parent    []int                // union-find over 2n nodes
	edges     map[int]*treeset.Set // class representative → successor representatives
}

func nodeOf(t *Symbol, role Role) int {
	return 2*t.Value + int(role)
}

func (fg *FunctionGraph) nodeName(n int) string {
	return fmt.Sprintf("%s(%s)", Role(n%2), fg.terminals[n/2])
}

// BuildGraph constructs the precedence function graph for a matrix.
func BuildGraph(m *PrecedenceMatrix) *FunctionGraph {
	n := len(m.Terminals())
	fg := &FunctionGraph{
		matrix:    m,
		terminals: m.Terminals(),
		parent:    make([]int, 2*n),
		edges:     make(map[int]*treeset.Set),
	}
	for i := range fg.parent {
		fg.parent[i] = i
	}
	m.Each(func(a, b *Symbol, r Relation) { // merge first …
		if r == Equal {
			fg.union(nodeOf(a, Entering), nodeOf(b, Leaving))
		}
	})
	m.Each(func(a, b *Symbol, r Relation) { // … then connect merged nodes
		switch r {
		case Takes:
			fg.addEdge(nodeOf(a, Entering), nodeOf(b, Leaving))
		case Yields:
			fg.addEdge(nodeOf(b, Leaving), nodeOf(a, Entering))
		}
	})
	for i := range fg.parent { // compress paths, parent is read-only from now on
		fg.parent[i] = fg.find(i)
	}
	tracer().Debugf("precedence graph: %d nodes, %d classes", 2*n, len(fg.classes()))
	return fg
}

func (fg *FunctionGraph) find(x int) int {
	for fg.parent[x] != x {
		fg.parent[x] = fg.parent[fg.parent[x]] // path halving
		x = fg.parent[x]
	}
	return x
}

// classOf returns the representative of the class of node x. It may be used
// only after BuildGraph has compressed all paths.
func (fg *FunctionGraph) classOf(x int) int {
	return fg.parent[x]
}

func (fg *FunctionGraph) union(x, y int) {
	rx, ry := fg.find(x), fg.find(y)
	if rx == ry {
		return
	}
	if ry < rx {
		rx, ry = ry, rx
	}
	fg.parent[ry] = rx // smaller node number represents the class
}

func (fg *FunctionGraph) addEdge(from, to int) {
	rf, rt := fg.find(from), fg.find(to)
	succ, ok := fg.edges[rf]
	if !ok {
		succ = treeset.NewWith(utils.IntComparator)
		fg.edges[rf] = succ
	}
	succ.Add(rt)
}

func (fg *FunctionGraph) successors(class int) []int {
	succ, ok := fg.edges[class]
	if !ok {
		return nil
	}
	vals := succ.Values()
	r := make([]int, len(vals))
	for i, x := range vals {
		r[i] = x.(int)
	}
	return r
}

// classes returns the representatives of all node classes, in ascending order.
func (fg *FunctionGraph) classes() []int {
	var r []int
	for i := range fg.parent {
		if fg.classOf(i) == i {
			r = append(r, i)
		}
	}
	return r
}

// Merged is true if nodes (a, ra) and (b, rb) have been merged by an equality.
func (fg *FunctionGraph) Merged(a *Symbol, ra Role, b *Symbol, rb Role) bool {
	return fg.classOf(nodeOf(a, ra)) == fg.classOf(nodeOf(b, rb))
}

// HasEdge is true if there is an edge from the class of (a, ra) to the class of (b, rb).
func (fg *FunctionGraph) HasEdge(a *Symbol, ra Role, b *Symbol, rb Role) bool {
	succ, ok := fg.edges[fg.classOf(nodeOf(a, ra))]
	return ok && succ.Contains(fg.classOf(nodeOf(b, rb)))
}

// dfsFrame is a work item for the iterative depth-first searches.
type dfsFrame struct {
	node int
	succ []int
	next int
}

const (
	unvisited = iota
	onPath
	finished
)

// IsAcyclic checks for cycles.
func (fg *FunctionGraph) IsAcyclic() bool {
	return fg.findCycle() == nil
}

// findCycle does a depth-first traversal from every node, marking nodes on
// the active path. Reaching a node still on the active path signals a cycle,
// which is returned as a list of nodes.
func (fg *FunctionGraph) findCycle() []int {
	state := make([]int, len(fg.parent))
	for _, start := range fg.classes() {
		if state[start] != unvisited {
			continue
		}
		stack := arraystack.New()
		stack.Push(&dfsFrame{node: start, succ: fg.successors(start)})
		state[start] = onPath
		for !stack.Empty() {
			top, _ := stack.Peek()
			frame := top.(*dfsFrame)
			if frame.next == len(frame.succ) {
				state[frame.node] = finished
				stack.Pop()
				continue
			}
			s := frame.succ[frame.next]
			frame.next++
			switch state[s] {
			case onPath:
				return fg.cycleFrom(stack, s)
			case unvisited:
				state[s] = onPath
				stack.Push(&dfsFrame{node: s, succ: fg.successors(s)})
			}
		}
	}
	return nil
}

func (fg *FunctionGraph) cycleFrom(stack *arraystack.Stack, s int) []int {
	var path []int
	it := stack.Iterator() // iterates from top of stack downwards
	for it.Next() {
		n := it.Value().(*dfsFrame).node
		path = append([]int{n}, path...)
		if n == s {
			break
		}
	}
	return append(path, s)
}

// AssignFunctions computes the precedence functions: every node receives the
// length of the longest path starting from it. F(a) is the value of node
// f(a), G(a) is the value of node g(a). A cyclic graph is an error.
func (fg *FunctionGraph) AssignFunctions() (*PrecedenceFunctions, error) {
	if cycle := fg.findCycle(); cycle != nil {
		names := make([]string, len(cycle))
		for i, n := range cycle {
			names[i] = fg.nodeName(n)
		}
		tracer().Errorf("precedence graph is cyclic: %s", strings.Join(names, " → "))
		return nil, fmt.Errorf("%w: %s", ErrCyclicGraph, strings.Join(names, " → "))
	}
	dist := fg.longestPaths()
	n := len(fg.terminals)
	pf := &PrecedenceFunctions{
		terminals: fg.terminals,
		f:         make([]int, n),
		g:         make([]int, n),
		related:   make([]bool, n),
	}
	for _, t := range fg.terminals {
		pf.f[t.Value] = dist[fg.classOf(nodeOf(t, Entering))]
		pf.g[t.Value] = dist[fg.classOf(nodeOf(t, Leaving))]
	}
	pf.markRelated(fg.matrix)
	return pf, nil
}

// longestPaths computes the longest path from every class by a depth-first
// search with memoization. The graph has to be acyclic.
func (fg *FunctionGraph) longestPaths() map[int]int {
	dist := make(map[int]int)
	for _, start := range fg.classes() {
		if _, done := dist[start]; done {
			continue
		}
		stack := arraystack.New()
		stack.Push(&dfsFrame{node: start, succ: fg.successors(start)})
		for !stack.Empty() {
			top, _ := stack.Peek()
			frame := top.(*dfsFrame)
			if frame.next < len(frame.succ) {
				s := frame.succ[frame.next]
				frame.next++
				if _, done := dist[s]; !done {
					stack.Push(&dfsFrame{node: s, succ: fg.successors(s)})
				}
				continue
			}
			d := 0
			for _, s := range frame.succ {
				if dist[s]+1 > d {
					d = dist[s] + 1
				}
			}
			dist[frame.node] = d
			stack.Pop()
		}
	}
	return dist
}

// GraphViz exports the graph to the Graphviz Dot format. Merged nodes are
// drawn as a single node.
func (fg *FunctionGraph) GraphViz(w io.Writer) {
	io.WriteString(w, `digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fillcolor=white, fontname=Helvetica, fontsize=10];

`)
	members := make(map[int][]string)
	for i := range fg.parent {
		r := fg.classOf(i)
		members[r] = append(members[r], fg.nodeName(i))
	}
	for _, c := range fg.classes() {
		io.WriteString(w, fmt.Sprintf("n%03d [label=\"%s\"]\n", c, strings.Join(members[c], " | ")))
	}
	for _, c := range fg.classes() {
		for _, s := range fg.successors(c) {
			io.WriteString(w, fmt.Sprintf("n%03d -> n%03d\n", c, s))
		}
	}
	io.WriteString(w, "}\n")
}

// === Precedence Functions ==================================================

// PrecedenceFunctions is a compact representation of a precedence matrix by
// two integer functions F and G:
//
//    a < b  ⇔  F(a) < G(b)
//    a = b  ⇔  F(a) = G(b)
//    a > b  ⇔  F(a) > G(b)
//
// for every pair (a,b) with a relation defined in the matrix. Precedence
// functions are total for terminals taking part in at least one relation.
// Terminals without any relation (e.g., 'ε') stay unrelated.
type PrecedenceFunctions struct {
	terminals []*Symbol
	f, g      []int
	related   []bool
}

var _ Relations = (*PrecedenceFunctions)(nil)

// F returns the value of the entering function for terminal a.
func (pf *PrecedenceFunctions) F(a *Symbol) int {
	return pf.f[a.Value]
}

// G returns the value of the leaving function for terminal a.
func (pf *PrecedenceFunctions) G(a *Symbol) int {
	return pf.g[a.Value]
}

// Relation compares F(a) and G(b).
func (pf *PrecedenceFunctions) Relation(a, b *Symbol) Relation {
	if a == nil || b == nil || a.Value >= len(pf.f) || b.Value >= len(pf.g) {
		return NoRelation
	}
	if !pf.related[a.Value] || !pf.related[b.Value] {
		return NoRelation
	}
	switch fa, gb := pf.f[a.Value], pf.g[b.Value]; {
	case fa < gb:
		return Yields
	case fa > gb:
		return Takes
	}
	return Equal
}

// Terminals returns the terminals the functions are defined for.
func (pf *PrecedenceFunctions) Terminals() []*Symbol {
	return pf.terminals
}

func (pf *PrecedenceFunctions) markRelated(m *PrecedenceMatrix) {
	m.Each(func(a, b *Symbol, r Relation) {
		pf.related[a.Value] = true
		pf.related[b.Value] = true
	})
}
