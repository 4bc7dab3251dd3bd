package opp

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/opgo/op"
	"github.com/npillmayer/opgo/op/grammars"
	"github.com/npillmayer/opgo/op/scanner/lexmach"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func makeParsers(t *testing.T) (*Parser, *Parser) {
	level := tracing.Select("opgo.op").GetTraceLevel()
	tracing.Select("opgo.op").SetTraceLevel(tracing.LevelInfo)
	defer tracing.Select("opgo.op").SetTraceLevel(level)
	g, err := grammars.Arithmetic()
	if err != nil {
		t.Fatal(err)
	}
	gen := op.NewTableGenerator(op.Analysis(g), op.WithOverrides(op.ArithmeticOverrides()),
		op.WithFunctions(true))
	if err = gen.CreateTables(); err != nil {
		t.Fatal(err)
	}
	return NewParser(g, gen.Matrix()), NewParser(g, gen.Functions())
}

func join(x interface{}) string {
	return strings.Trim(fmt.Sprint(x), "[]")
}

var accepted = []struct {
	input   string
	postfix string
}{
	{"!a!", "a"},
	{"!a+b*c!", "a b c * +"},
	{"!(a+b)*c!", "a b + c *"},
	{"!a*b+c!", "a b * c +"},
	{"!a-(b/c)*d!", "a b c / d * -"},
	{"! x * ( y + a ) !", "x y a + *"},
	{"!((a))!", "a"},
}

// --- the Tests -------------------------------------------------------------

func TestAccept(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	mparser, fparser := makeParsers(t)
	for _, p := range []*Parser{mparser, fparser} {
		for _, x := range accepted {
			result, err := p.ParseString(x.input)
			if err != nil {
				t.Errorf("Valid input string not accepted: '%s': %v", x.input, err)
				continue
			}
			if postfix := join(result.Postfix); postfix != x.postfix {
				t.Errorf("Expected postfix of '%s' to be %q, is %q", x.input, x.postfix, postfix)
			}
		}
	}
}

func TestDerivation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	p, _ := makeParsers(t)
	result, err := p.ParseString("!a+b!")
	if err != nil {
		t.Fatal(err)
	}
	if d := join(result.Derivation); d != "10 11 7 6 3 7 6 4 2 1" {
		t.Errorf("Unexpected order of reductions: %s", d)
	}
	if d := join(result.Leftmost()); d != "1 2 4 3 6 7 10 6 7 11" {
		t.Errorf("Unexpected leftmost derivation: %s", d)
	}
	if result.Tree.Span.From() != 0 || result.Tree.Span.To() != 5 {
		t.Errorf("Expected tree to span the whole input, spans %s", result.Tree.Span)
	}
}

func TestRuleChoice(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	for _, x := range []struct {
		fFirst     bool // declare F → a b before E → a b
		input      string
		derivation string
		postfix    string
	}{
		{false, "!ab!", "3 1", "E"}, // longest rule wins over E → b
		{true, "!ab!", "3 1", "F"},  // first declared wins among equal length
		{false, "!b!", "2 1", "b"},
	} {
		b := op.NewGrammarBuilder("Choice")
		b.LHS("S").T("!").N("E").T("!").End()
		b.LHS("E").T("b").Emit("b").End()
		if x.fFirst {
			b.LHS("F").T("a").T("b").Emit("F").End()
			b.LHS("E").T("a").T("b").Emit("E").End()
		} else {
			b.LHS("E").T("a").T("b").Emit("E").End()
			b.LHS("F").T("a").T("b").Emit("F").End()
		}
		g, err := b.Grammar()
		if err != nil {
			t.Fatal(err)
		}
		gen := op.NewTableGenerator(op.Analysis(g), op.WithOverrides(op.BoundaryOverrides()))
		if err = gen.CreateTables(); err != nil {
			t.Fatal(err)
		}
		result, err := NewParser(g, gen.Matrix()).ParseString(x.input)
		if err != nil {
			t.Errorf("Valid input string not accepted: '%s': %v", x.input, err)
			continue
		}
		if d := join(result.Derivation); d != x.derivation {
			t.Errorf("Expected reductions %s for '%s', have %s", x.derivation, x.input, d)
		}
		if p := join(result.Postfix); p != x.postfix {
			t.Errorf("Expected postfix %q for '%s', have %q", x.postfix, x.input, p)
		}
	}
}

func TestEqualPrecedenceGrouping(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	mparser, fparser := makeParsers(t)
	for _, p := range []*Parser{mparser, fparser} {
		for input, postfix := range map[string]string{
			"!d-c-b!": "d c b - -", // groups as d-(c-b)
			"!a-b+c!": "a b c + -",
			"!a/b*c!": "a b c * /",
		} {
			result, err := p.ParseString(input)
			if err != nil {
				t.Errorf("Valid input string not accepted: '%s': %v", input, err)
				continue
			}
			if x := join(result.Postfix); x != postfix {
				t.Errorf("Expected postfix of '%s' to be %q, is %q", input, postfix, x)
			}
		}
	}
}

func TestSteps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	p, _ := makeParsers(t)
	result, err := p.ParseString("!a+b!")
	if err != nil {
		t.Fatal(err)
	}
	steps := result.Steps
	if len(steps) != 10 {
		t.Fatalf("Expected 10 steps (5 shifts, 4 reductions, accept), have %d", len(steps))
	}
	if steps[0].Action != Shift || steps[0].Relation != op.Equal || steps[0].StackString() != "#" {
		t.Errorf("Unexpected first step %s", steps[0])
	}
	last := steps[len(steps)-1]
	if last.Action != Accept || last.StackString() != "# A" {
		t.Errorf("Unexpected last step %s", last)
	}
	for _, s := range steps {
		if s.Action == Reduce && s.Rule.ID == 4 && len(s.Chain) != 5 {
			t.Errorf("Expected reduction of rule 4 to apply 5 chain rules, step is %s", s)
		}
		t.Logf("%s", s)
	}
}

func TestReject(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	mparser, fparser := makeParsers(t)
	for _, x := range []struct {
		input   string
		mreason error // with matrix
		freason error // with functions
	}{
		{"!a+*b!", ErrNoReducible, ErrNoReducible},
		{"a!b", ErrNoRelation, ErrNoReducible},
		{"!a(b+a()!", ErrNoRelation, ErrNoReducible},
		{"!a+b", ErrNoRelation, ErrNoReducible},
		{"!a?b!", ErrNoRelation, ErrNoRelation},
	} {
		for p, reason := range map[*Parser]error{mparser: x.mreason, fparser: x.freason} {
			_, err := p.ParseString(x.input)
			if err == nil {
				t.Errorf("Invalid input string accepted: '%s'", x.input)
				continue
			}
			var rej *RejectError
			if !errors.As(err, &rej) || !errors.Is(err, reason) {
				t.Errorf("Expected '%s' to be rejected with %v, got %v", x.input, reason, err)
			}
		}
	}
	_, err := mparser.ParseString("a!b")
	if rej := err.(*RejectError); rej.Step != 0 || rej.Top.Name != "#" || rej.Lookahead.Name != "a" {
		t.Errorf("Expected 'a!b' to be rejected at the first lookup (#,a), got %v", err)
	}
}

func TestStuck(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	b := op.NewGrammarBuilder("Percent")
	b.LHS("S").T("!").N("E").T("!").End()
	b.LHS("E").T("a").T("%").T("b").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	gen := op.NewTableGenerator(op.Analysis(g), op.WithOverrides(op.BoundaryOverrides()))
	if err = gen.CreateTables(); err != nil {
		t.Fatal(err)
	}
	p := NewParser(g, gen.Matrix(), MaxSteps(3))
	defer func(f func() bool) { panicOnStuck = f }(panicOnStuck)
	panicOnStuck = func() bool { return false }
	_, err = p.ParseString("!a%b!")
	var rej *RejectError
	if !errors.As(err, &rej) || !errors.Is(err, ErrStuck) || rej.Step != 3 {
		t.Errorf("Expected parser to get stuck at step 3, got %v", err)
	}
	panicOnStuck = func() bool { return true }
	defer func() {
		msg := fmt.Sprint(recover())
		if !strings.HasSuffix(msg, "parser stuck after 3 steps, stack = # ! a %") {
			t.Errorf("Expected panic message to end with the stack, is %q", msg)
		}
	}()
	p.ParseString("!a%b!")
	t.Errorf("Expected stuck parser to panic")
}

func TestParserReuse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	p, _ := makeParsers(t)
	r1, err1 := p.ParseString("!(a+b)*c!")
	if _, err := p.ParseString("!a+*b!"); err == nil {
		t.Errorf("Expected invalid input to be rejected")
	}
	r2, err2 := p.ParseString("!(a+b)*c!")
	if err1 != nil || err2 != nil {
		t.Fatalf("Valid input string not accepted: %v, %v", err1, err2)
	}
	if join(r1.Derivation) != join(r2.Derivation) || join(r1.Postfix) != join(r2.Postfix) {
		t.Errorf("Expected parsing the same input twice to yield identical results")
	}
}

func TestConcurrentParses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	tracing.Select("opgo.op").SetTraceLevel(tracing.LevelError)
	_, p := makeParsers(t)
	results := make([]string, len(accepted)*8)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := p.ParseString(accepted[i%len(accepted)].input)
			if err == nil {
				results[i] = join(result.Postfix)
			}
		}(i)
	}
	wg.Wait()
	for i, postfix := range results {
		if expected := accepted[i%len(accepted)].postfix; postfix != expected {
			t.Errorf("Expected concurrent parse #%d to yield %q, is %q", i, expected, postfix)
		}
	}
}

func TestLexmachineScanner(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	p, _ := makeParsers(t)
	var names []string
	for _, A := range p.G.Terminals()[2:] {
		names = append(names, A.Name)
	}
	LM, err := lexmach.ForTerminals(names, p.G.TokenTypeOf)
	if err != nil {
		t.Fatal(err)
	}
	scan, _ := LM.Scanner("! a * (b - c) !")
	result, err := p.Parse(scan)
	if err != nil {
		t.Fatal(err)
	}
	if postfix := join(result.Postfix); postfix != "a b c - *" {
		t.Errorf("Expected postfix 'a b c - *', is %q", postfix)
	}
}
