package grammars

import (
	"fmt"
	"io"
	"sort"

	"github.com/npillmayer/opgo/op"
	"golang.org/x/exp/ebnf"
)

// FromEBNF reads an operator grammar in EBNF notation (as used in the Go
// language specification). Every alternative of a production becomes a rule;
// rules are numbered in order of appearance, and the first production names
// the start symbol.
//
//    A = "!" B "!" .
//    B = B "+" T | T .
//    T = "a" | "(" B ")" .
//
// Only names, tokens, sequences and alternatives are supported. Options,
// groups, repetitions and ranges are refused, as operator-precedence tables
// are derived from plain rules.
//
// A rule emits its terminal to the postfix stream if its body contains
// exactly one terminal. Rules with two or more terminals, e.g. bracketing
// rules, and chain rules emit nothing.
func FromEBNF(name string, r io.Reader) (*op.Grammar, error) {
	eg, err := ebnf.Parse(name, r)
	if err != nil {
		return nil, err
	}
	prods := make([]*ebnf.Production, 0, len(eg))
	for _, p := range eg {
		prods = append(prods, p)
	}
	sort.Slice(prods, func(i, j int) bool {
		return prods[i].Name.StringPos.Offset < prods[j].Name.StringPos.Offset
	})
	b := op.NewGrammarBuilder(name)
	for _, p := range prods {
		if p.Expr == nil {
			return nil, fmt.Errorf("%s: production %s is empty", p.Name.StringPos, p.Name.String)
		}
		for _, alt := range alternatives(p.Expr) {
			rb := b.LHS(p.Name.String)
			terminals := 0
			var last string
			for _, x := range sequence(alt) {
				switch sym := x.(type) {
				case *ebnf.Name:
					rb.N(sym.String)
				case *ebnf.Token:
					rb.T(sym.String)
					terminals++
					last = sym.String
				default:
					return nil, fmt.Errorf("%s: unsupported expression %T in production %s",
						x.Pos(), x, p.Name.String)
				}
			}
			if terminals == 1 {
				rb.Emit(last)
			}
			rb.End()
		}
	}
	g, err := b.Grammar()
	if err != nil {
		return nil, err
	}
	tracer().Infof("grammar %s loaded from EBNF: %d rules", g.Name, g.Size())
	return g, nil
}

func alternatives(x ebnf.Expression) []ebnf.Expression {
	if alt, ok := x.(ebnf.Alternative); ok {
		return alt
	}
	return []ebnf.Expression{x}
}

func sequence(x ebnf.Expression) []ebnf.Expression {
	if seq, ok := x.(ebnf.Sequence); ok {
		return seq
	}
	return []ebnf.Expression{x}
}
