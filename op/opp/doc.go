/*
Package opp provides an operator-precedence parser. Clients have to use the
tools of package op to prepare the precedence tables. The parser utilizes these
tables to drive a stack automaton, producing a derivation and a postfix
stream for a given input, provided through a scanner interface.

Usage

Clients construct an operator grammar and create precedence tables for it:

	g, _ := grammars.Arithmetic()
	gen := op.NewTableGenerator(op.Analysis(g), op.WithOverrides(op.ArithmeticOverrides()))
	if err := gen.CreateTables(); err != nil { … }

Either the precedence matrix or the precedence functions may drive the parser:

	p := opp.NewParser(g, gen.Matrix())
	result, err := p.ParseString("!a+b*c!")
	fmt.Println(result.Postfix)

	// Output:
	[a b c * +]

Parsing

The parser compares the topmost terminal on its stack with the lookahead
token. For '<' and '=' it shifts the lookahead, for '>' it reduces the longest
rule whose body matches the top of the stack. Non-terminals in a body match any
non-terminal on the stack; if the grammar derives the stack's non-terminal from
the expected one by chain rules (e.g., B ⇒ T ⇒ M), these rules are applied
implicitly and become part of the derivation. Rules consisting of a single
non-terminal never form a handle of their own.

The end-of-input marker '#' is never shifted. With '#' as lookahead the parser
reduces for '=' and '>', until the stack holds just the start symbol.

A parser is immutable after creation and may be used by concurrent
goroutines. Every call to Parse owns its private parse state.

Errors

Rejected input results in a *RejectError, wrapping one of ErrNoRelation,
ErrNoReducible or ErrIncomplete. The result returned alongside still carries
the parse steps up to the rejection, which is useful for diagnostics.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package opp

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'opgo.op'.
func tracer() tracing.Trace {
	return tracing.Select("opgo.op")
}
