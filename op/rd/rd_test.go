package rd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/npillmayer/opgo/op"
	"github.com/npillmayer/opgo/op/grammars"
	"github.com/npillmayer/opgo/op/opp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var valid = []string{
	"!a+b!", "!a*b!",
	"!(a+b)*(b+a)!", "!b*a+a*b!",
	"!(a+b)*a+b*a!", "!(a+b*a)*(b*b+a*(a+b+a))!",
}

var invalid = []string{
	"!a+*b!", "a+b*a+b",
	"a!b", "!a(b+a()!",
}

func makeRecognizer(t *testing.T) *Recognizer {
	g, err := grammars.RightRecursive()
	if err != nil {
		t.Fatal(err)
	}
	return NewRecognizer(g)
}

func TestRecognize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	rc := makeRecognizer(t)
	result, err := rc.ParseString("!(a+b)*a+b*a!")
	if err != nil {
		t.Fatal(err)
	}
	if d := fmt.Sprint(result.Derivation); d != "[1 3 5 8 3 4 6 2 4 7 4 6 2 5 7 4 6]" {
		t.Errorf("Unexpected derivation %s", d)
	}
	if p := fmt.Sprint(result.Postfix); p != "[a b + a * b a * +]" {
		t.Errorf("Unexpected postfix %s", p)
	}
	for _, input := range invalid {
		if _, err := rc.ParseString(input); err == nil {
			t.Errorf("Invalid input string recognized: '%s'", input)
		}
	}
}

func TestTrailingInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	rc := makeRecognizer(t)
	if _, err := rc.ParseString("!a!b"); !errors.Is(err, ErrTrailingInput) {
		t.Errorf("Expected trailing input to be detected, got %v", err)
	}
	if _, err := rc.ParseString("a!b"); !errors.Is(err, ErrNotRecognized) {
		t.Errorf("Expected 'a!b' not to be recognized, got %v", err)
	}
}

func TestLeftRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	b := op.NewGrammarBuilder("LeftRecursive")
	b.LHS("S").N("S").T("+").T("a").End()
	b.LHS("S").T("a").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	result, err := NewRecognizer(g).ParseString("a")
	if err != nil {
		t.Fatalf("Expected left-recursive rule to be skipped, got %v", err)
	}
	if len(result.Derivation) != 1 || result.Derivation[0] != 2 {
		t.Errorf("Expected derivation [2], have %v", result.Derivation)
	}
}

func TestSameAsOperatorPrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	rc := makeRecognizer(t)
	gen := op.NewTableGenerator(op.Analysis(rc.G), op.WithOverrides(op.BoundaryOverrides()),
		op.WithFunctions(true))
	if err := gen.CreateTables(); err != nil {
		t.Fatal(err)
	}
	for _, rel := range []op.Relations{gen.Matrix(), gen.Functions()} {
		p := opp.NewParser(rc.G, rel)
		for _, input := range valid {
			expected, err := rc.ParseString(input)
			if err != nil {
				t.Fatalf("Valid input string not recognized: '%s': %v", input, err)
			}
			result, err := p.ParseString(input)
			if err != nil {
				t.Errorf("Valid input string not accepted: '%s': %v", input, err)
				continue
			}
			if fmt.Sprint(result.Leftmost()) != fmt.Sprint(expected.Derivation) {
				t.Errorf("Derivations differ for '%s': %v vs %v", input,
					result.Leftmost(), expected.Derivation)
			}
			if fmt.Sprint(result.Postfix) != fmt.Sprint(expected.Postfix) {
				t.Errorf("Postfix differs for '%s': %v vs %v", input, result.Postfix, expected.Postfix)
			}
		}
		for _, input := range invalid {
			if _, err := p.ParseString(input); err == nil {
				t.Errorf("Invalid input string accepted: '%s'", input)
			}
		}
	}
}
