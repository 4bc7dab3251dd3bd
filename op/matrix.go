package op

import (
	"fmt"
	"io"

	"github.com/npillmayer/opgo/op/sparse"
)

// === Precedence Relations ==================================================

// Relation is a precedence relation between two terminals.
type Relation int8

// Precedence relations. NoRelation means that two terminals are never
// adjacent in a sentential form; encountering them on a parse stack is an error.
const (
	NoRelation Relation = iota
	Yields              // a < b
	Equal               // a = b
	Takes               // a > b
)

func (r Relation) String() string {
	switch r {
	case Yields:
		return "<"
	case Equal:
		return "="
	case Takes:
		return ">"
	}
	return ""
}

// Relations is the interface a parse driver uses for precedence lookup.
// It is implemented by PrecedenceMatrix and PrecedenceFunctions.
type Relations interface {
	Relation(a, b *Symbol) Relation
}

// === Precedence Matrix =====================================================

// PrecedenceMatrix is a partial relation over pairs of terminals.
// It is built once per grammar and immutable afterwards.
type PrecedenceMatrix struct {
	terminals []*Symbol
	cells     *sparse.IntMatrix
	conflicts []Conflict
}

var _ Relations = (*PrecedenceMatrix)(nil)

// Conflict records a cell written twice with different relations. The later
// write wins. Overridden is true if the later write stems from an override.
type Conflict struct {
	A, B       *Symbol
	Previous   Relation
	Current    Relation
	Overridden bool
}

func (c Conflict) String() string {
	src := "structural"
	if c.Overridden {
		src = "override"
	}
	return fmt.Sprintf("(%s,%s): %s replaced by %s (%s)", c.A, c.B, c.Previous, c.Current, src)
}

// NewMatrix creates an empty precedence matrix over a list of terminals.
// Terminals are indexed by value.
func NewMatrix(terminals []*Symbol) *PrecedenceMatrix {
	n := len(terminals)
	return &PrecedenceMatrix{
		terminals: terminals,
		cells:     sparse.NewIntMatrix(n, n, int32(NoRelation)),
	}
}

// Relation returns the precedence relation between terminals a and b.
func (m *PrecedenceMatrix) Relation(a, b *Symbol) Relation {
	if a == nil || b == nil || a.Value >= len(m.terminals) || b.Value >= len(m.terminals) {
		return NoRelation
	}
	return Relation(m.cells.Value(a.Value, b.Value))
}

// Terminals returns the terminals spanning the matrix.
func (m *PrecedenceMatrix) Terminals() []*Symbol {
	return m.terminals
}

// Size returns the number of defined relations.
func (m *PrecedenceMatrix) Size() int {
	return m.cells.ValueCount()
}

// Each calls f for every defined relation, in row-major order.
func (m *PrecedenceMatrix) Each(f func(a, b *Symbol, r Relation)) {
	m.cells.Each(func(i, j int, v int32) {
		f(m.terminals[i], m.terminals[j], Relation(v))
	})
}

// Conflicts returns the cells which have been written with different relations.
func (m *PrecedenceMatrix) Conflicts() []Conflict {
	return m.conflicts
}

// Set writes a relation, replacing an earlier one.
func (m *PrecedenceMatrix) Set(a, b *Symbol, r Relation) {
	m.write(a, b, r, false)
}

func (m *PrecedenceMatrix) write(a, b *Symbol, r Relation, override bool) {
	old := Relation(m.cells.Set(a.Value, b.Value, int32(r)))
	if old != NoRelation && old != r {
		c := Conflict{A: a, B: b, Previous: old, Current: r, Overridden: override}
		m.conflicts = append(m.conflicts, c)
		if override {
			tracer().Debugf("precedence %s", c)
		} else {
			tracer().Infof("precedence conflict %s", c)
		}
	}
}

// BuildMatrix derives the precedence matrix from the structure of a grammar.
// For every pair of adjacent symbols X Y in a rule's body:
//
//    a b     ⇒  a = b
//    a B c   ⇒  a = c
//    a B     ⇒  a < t   for t ∈ Lt(B)
//    A b     ⇒  t > b   for t ∈ Rt(A)
//
// Afterwards the overrides (may be nil) are applied; an override always wins
// over a structurally derived relation.
func BuildMatrix(ga *GrammarAnalysis, ov *Overrides) *PrecedenceMatrix {
	g := ga.Grammar()
	m := NewMatrix(g.Terminals())
	for _, r := range g.Rules() {
		rhs := r.RHS()
		for i := 0; i < len(rhs)-1; i++ {
			X, Y := rhs[i], rhs[i+1]
			if X.IsTerminal() && Y.IsTerminal() {
				m.Set(X, Y, Equal)
			}
			if i+2 < len(rhs) && X.IsTerminal() && !Y.IsTerminal() && rhs[i+2].IsTerminal() {
				m.Set(X, rhs[i+2], Equal)
			}
			if X.IsTerminal() && !Y.IsTerminal() {
				for _, t := range ga.LeftTerminals(Y).Values() {
					m.Set(X, t, Yields)
				}
			}
			if !X.IsTerminal() && Y.IsTerminal() {
				for _, t := range ga.RightTerminals(X).Values() {
					m.Set(t, Y, Takes)
				}
			}
		}
	}
	tracer().Debugf("structural precedence matrix has %d entries", m.Size())
	if ov != nil {
		ov.apply(m, g)
	}
	return m
}

// MatrixAsHTML exports a precedence matrix in HTML-format.
func MatrixAsHTML(m *PrecedenceMatrix, title string, w io.Writer) {
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("<p>%s: %d relations</p>\n", title, m.Size()))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>")
	for _, b := range m.terminals {
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", b))
	}
	io.WriteString(w, "</tr>\n")
	for _, a := range m.terminals {
		io.WriteString(w, fmt.Sprintf("<tr><td bgcolor=#cccccc>%s</td>", a))
		for _, b := range m.terminals {
			td := "&nbsp;"
			if r := m.Relation(a, b); r != NoRelation {
				td = htmlRelation(r)
			}
			io.WriteString(w, "<td>"+td+"</td>")
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}

func htmlRelation(r Relation) string {
	switch r {
	case Yields:
		return "&lt;"
	case Takes:
		return "&gt;"
	}
	return r.String()
}
