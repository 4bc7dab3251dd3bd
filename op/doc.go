/*
Package op implements the table construction for operator-precedence parsing.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Rules may carry an
ID (used in derivation traces) and a postfix token, which a parser emits
whenever it reduces the rule.

Example:

    b := op.NewGrammarBuilder("G")
    b.LHS("A").T("!").N("B").T("!").End()              // 1: A  ->  ! B !
    b.LHS("B").N("B").T("+").N("T").Emit("+").End()    // 2: B  ->  B + T
    b.LHS("B").N("T").End()                            // 3: B  ->  T
    b.LHS("T").T("a").Emit("a").End()                  // 4: T  ->  a
    g, err := b.Grammar()

Operator grammars have no empty right hand sides and no two adjacent
non-terminals in a right hand side. The builder will refuse other grammars.
Every grammar carries two reserved terminals: '#' marks the boundaries of the
input, 'ε' stands for input which does not map to any terminal.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. The analysis computes
for every non-terminal N the sets L(N) and R(N) of symbols which may appear
leftmost or rightmost in a derivation from N, and the terminal sets Lt(N) and
Rt(N), holding the leftmost and rightmost terminals derivable from N.

    ga := op.Analysis(g)
    fmt.Printf("Lt(B) = %v", ga.LeftTerminals(g.SymbolByName("B")))

    // Output:
    Lt(B) = { + a }

Table Construction

Using the grammar analysis as input, a table generator derives the
precedence matrix, applies explicit overrides (e.g., for arithmetic
operators) and, if requested, compacts the matrix into a pair of
precedence functions F and G (Floyd's method).

    gen := op.NewTableGenerator(ga, op.WithOverrides(op.ArithmeticOverrides()),
        op.WithFunctions(true))
    if err := gen.CreateTables(); err != nil {
        ...  // grammar does not admit precedence functions
    }

Either gen.Matrix() or gen.Functions() may then be handed to the parse driver
in package opp. Tables are immutable after construction and may be shared
between parsers.
___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package op

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'opgo.op'.
func tracer() tracing.Trace {
	return tracing.Select("opgo.op")
}
