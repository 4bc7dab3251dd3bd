/*
Package grammars provides ready-made operator grammars and a loader for
grammars written in EBNF.

Two grammars are predefined: the arithmetic grammar with left-recursive
operator rules, enclosed in block markers '!', and a right-recursive variant
suited for top-down recognition. Both are registered by name, together with
the precedence overrides a table generator should apply for them.

    g, ov, err := grammars.ByName("arithmetic")
    gen := op.NewTableGenerator(op.Analysis(g), op.WithOverrides(ov))

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammars

import (
	"fmt"
	"sort"

	"github.com/npillmayer/opgo/op"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'opgo.op'.
func tracer() tracing.Trace {
	return tracing.Select("opgo.op")
}

// Variables are the terminals the predefined grammars use as operands.
var Variables = []string{"a", "b", "c", "d", "x", "y"}

// Arithmetic creates the grammar for arithmetic expressions over variables,
// enclosed in block markers:
//
//     1: A  → ! B !
//     2: B  → B'
//     3: B' → T
//     4: B' → B' + T        ⇒ +
//     5: B' → B' - T        ⇒ -
//     6: T  → T'
//     7: T' → M
//     8: T' → T' * M        ⇒ *
//     9: T' → T' / M        ⇒ /
//    10: M  → a             ⇒ a
//        …
//    15: M  → y             ⇒ y
//    16: M  → ( B )
//
func Arithmetic() (*op.Grammar, error) {
	b := op.NewGrammarBuilder("Arithmetic")
	b.LHS("A").T("!").N("B").T("!").End()
	b.LHS("B").N("B'").End()
	b.LHS("B'").N("T").End()
	b.LHS("B'").N("B'").T("+").N("T").Emit("+").End()
	b.LHS("B'").N("B'").T("-").N("T").Emit("-").End()
	b.LHS("T").N("T'").End()
	b.LHS("T'").N("M").End()
	b.LHS("T'").N("T'").T("*").N("M").Emit("*").End()
	b.LHS("T'").N("T'").T("/").N("M").Emit("/").End()
	for _, v := range Variables {
		b.LHS("M").T(v).Emit(v).End()
	}
	b.LHS("M").T("(").N("B").T(")").End()
	return b.Grammar()
}

// RightRecursive creates a right-recursive grammar for sums and products of
// the variables a and b. Rule IDs are not in order of declaration:
//
//     1: A → ! B !
//     3: B → T + B          ⇒ +
//     2: B → T
//     5: T → M * T          ⇒ *
//     4: T → M
//     6: M → a              ⇒ a
//     7: M → b              ⇒ b
//     8: M → ( B )
//
func RightRecursive() (*op.Grammar, error) {
	b := op.NewGrammarBuilder("RightRecursive")
	b.LHS("A").T("!").N("B").T("!").ID(1).End()
	b.LHS("B").N("T").T("+").N("B").Emit("+").ID(3).End()
	b.LHS("B").N("T").ID(2).End()
	b.LHS("T").N("M").T("*").N("T").Emit("*").ID(5).End()
	b.LHS("T").N("M").ID(4).End()
	b.LHS("M").T("a").Emit("a").ID(6).End()
	b.LHS("M").T("b").Emit("b").ID(7).End()
	b.LHS("M").T("(").N("B").T(")").ID(8).End()
	return b.Grammar()
}

type entry struct {
	create    func() (*op.Grammar, error)
	overrides func() *op.Overrides
}

var registry = map[string]entry{
	"arithmetic": {Arithmetic, op.ArithmeticOverrides},
	"recursive":  {RightRecursive, op.BoundaryOverrides},
}

// Names returns the names of the predefined grammars, sorted.
func Names() []string {
	var names []string
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName creates a predefined grammar and returns it together with the
// overrides to apply for it.
func ByName(name string) (*op.Grammar, *op.Overrides, error) {
	e, ok := registry[name]
	if !ok {
		return nil, nil, fmt.Errorf("no predefined grammar named %q", name)
	}
	g, err := e.create()
	if err != nil {
		return nil, nil, err
	}
	tracer().Debugf("predefined grammar %s, hash %s", name, g.Hash())
	return g, e.overrides(), nil
}
