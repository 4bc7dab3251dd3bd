package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/opgo/op"
	"github.com/npillmayer/opgo/op/opp"
	"github.com/pterm/pterm"
)

// matrixTable lays out a precedence matrix, one row per terminal. Empty
// cells have no relation.
func matrixTable(m *op.PrecedenceMatrix) pterm.TableData {
	header := []string{""}
	for _, b := range m.Terminals() {
		header = append(header, b.Name)
	}
	data := pterm.TableData{header}
	for _, a := range m.Terminals() {
		row := []string{a.Name}
		for _, b := range m.Terminals() {
			row = append(row, m.Relation(a, b).String())
		}
		data = append(data, row)
	}
	return data
}

// functionsTable lays out the values of the precedence functions. Terminals
// without relations are left out.
func functionsTable(pf *op.PrecedenceFunctions) pterm.TableData {
	data := pterm.TableData{{"", "f", "g"}}
	for _, a := range pf.Terminals() {
		if !hasRelation(pf, a) {
			continue
		}
		data = append(data, []string{a.Name, fmt.Sprintf("%d", pf.F(a)), fmt.Sprintf("%d", pf.G(a))})
	}
	return data
}

func hasRelation(pf *op.PrecedenceFunctions, a *op.Symbol) bool {
	for _, b := range pf.Terminals() {
		if pf.Relation(a, b) != op.NoRelation {
			return true
		}
	}
	return false
}

// stepsTable lays out the steps of a parse.
func stepsTable(steps []opp.Step) pterm.TableData {
	data := pterm.TableData{{"#", "stack", "rel", "input", "action"}}
	for i, s := range steps {
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			s.StackString(),
			s.Relation.String(),
			s.Lexeme,
			s.ActionString(),
		})
	}
	return data
}

// treeList flattens a derivation tree into a leveled list, as needed for
// pterm's tree printer.
func treeList(root *opp.Node) pterm.LeveledList {
	var ll pterm.LeveledList
	root.Walk(func(n *opp.Node, depth int) {
		text := n.Symbol.Name
		if n.IsTerminal() {
			text = fmt.Sprintf("%s  %q", text, n.Token.Lexeme())
		} else {
			text = fmt.Sprintf("%s  (%d)", text, n.Rule.ID)
		}
		ll = append(ll, pterm.LeveledListItem{Level: depth, Text: text})
	}, nil)
	return ll
}

func joinInts(ids []int) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(s, " ")
}
