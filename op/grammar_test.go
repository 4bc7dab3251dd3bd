package op

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// makeArithmetic creates the grammar for arithmetic expressions, enclosed in
// block markers '!':
//
//     A  → ! B !
//     B  → B'
//     B' → T | B' + T | B' - T
//     T  → T'
//     T' → M | T' * M | T' / M
//     M  → a | b | c | d | x | y | ( B )
//
func makeArithmetic(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Arithmetic")
	b.LHS("A").T("!").N("B").T("!").End()
	b.LHS("B").N("B'").End()
	b.LHS("B'").N("T").End()
	b.LHS("B'").N("B'").T("+").N("T").Emit("+").End()
	b.LHS("B'").N("B'").T("-").N("T").Emit("-").End()
	b.LHS("T").N("T'").End()
	b.LHS("T'").N("M").End()
	b.LHS("T'").N("T'").T("*").N("M").Emit("*").End()
	b.LHS("T'").N("T'").T("/").N("M").Emit("/").End()
	for _, v := range []string{"a", "b", "c", "d", "x", "y"} {
		b.LHS("M").T(v).Emit(v).End()
	}
	b.LHS("M").T("(").N("B").T(")").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("Cannot create arithmetic grammar: %v", err)
	}
	return g
}

func TestBuilderSymbols(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	g := makeArithmetic(t)
	if g.Boundary().Name != BoundaryName || g.Boundary().Value != 0 {
		t.Errorf("Expected boundary terminal '#' with value 0, is %v", g.Boundary())
	}
	if g.Empty().Name != EmptyName || g.Empty().Value != 1 {
		t.Errorf("Expected empty-result terminal with value 1, is %v", g.Empty())
	}
	if g.Start.Name != "A" {
		t.Errorf("Expected start symbol to be A, is %s", g.Start)
	}
	if len(g.NonTerminals()) != 6 {
		t.Errorf("Expected 6 non-terminals, have %d", len(g.NonTerminals()))
	}
	if len(g.Terminals()) != 15 { // 13 + reserved
		t.Errorf("Expected 15 terminals, have %d", len(g.Terminals()))
	}
	if g.Size() != 16 {
		t.Errorf("Expected 16 rules, have %d", g.Size())
	}
	plus := g.SymbolByName("+")
	if plus == nil || !plus.IsTerminal() {
		t.Fatalf("Expected '+' to be a terminal")
	}
	if g.Terminal(plus.TokenType()) != plus {
		t.Errorf("Expected terminal lookup by token type to find '+'")
	}
	if tt, ok := g.TokenTypeOf("+"); !ok || tt != plus.TokenType() {
		t.Errorf("Expected token type of '+' to be %d, is %d", plus.TokenType(), tt)
	}
	if r := g.RuleByID(4); r == nil || r.Emit != "+" || r.Len() != 3 {
		t.Errorf("Expected rule 4 to be B' ::= B' + T, is %v", r)
	}
	g.Dump()
}

func TestBuilderRestrictions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	invalid := map[string]func(b *GrammarBuilder){
		"adjacent": func(b *GrammarBuilder) {
			b.LHS("S").N("S").N("S").End()
			b.LHS("S").T("a").End()
		},
		"empty": func(b *GrammarBuilder) {
			b.LHS("S").End()
		},
		"undefined": func(b *GrammarBuilder) {
			b.LHS("S").T("a").N("X").End()
		},
		"reserved": func(b *GrammarBuilder) {
			b.LHS("S").T("#").End()
		},
		"mixed": func(b *GrammarBuilder) {
			b.LHS("S").T("a").End()
			b.LHS("a").T("b").End()
		},
		"duplicate id": func(b *GrammarBuilder) {
			b.LHS("S").T("a").ID(7).End()
			b.LHS("S").T("b").ID(7).End()
		},
	}
	for name, rules := range invalid {
		b := NewGrammarBuilder(name)
		rules(b)
		if _, err := b.Grammar(); err == nil {
			t.Errorf("Expected grammar '%s' to be refused", name)
		}
	}
}

func TestChainPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	g := makeArithmetic(t)
	path := g.ChainPath(g.SymbolByName("B"), g.SymbolByName("M"))
	var ids []int
	for _, r := range path {
		ids = append(ids, r.ID)
	}
	expected := []int{2, 3, 6, 7}
	if len(ids) != len(expected) {
		t.Fatalf("Expected chain B ⇒ M to use rules %v, is %v", expected, ids)
	}
	for i := range ids {
		if ids[i] != expected[i] {
			t.Errorf("Expected chain B ⇒ M to use rules %v, is %v", expected, ids)
		}
	}
	if g.ChainPath(g.SymbolByName("M"), g.SymbolByName("B")) != nil {
		t.Errorf("Expected no chain from M to B")
	}
}

func TestGrammarHash(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	h1, h2 := makeArithmetic(t).Hash(), makeArithmetic(t).Hash()
	if h1 == "" || h1 != h2 {
		t.Errorf("Expected equal grammars to have equal, non-empty hashes: %q vs %q", h1, h2)
	}
	b := NewGrammarBuilder("Other")
	b.LHS("S").T("a").End()
	g, _ := b.Grammar()
	if g.Hash() == h1 {
		t.Errorf("Expected different grammars to have different hashes")
	}
	if !strings.Contains(g.Rule(0).String(), "S ::= [a]") {
		t.Errorf("Unexpected rule format: %s", g.Rule(0))
	}
}
