package op

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func syntheticTerminals(names ...string) []*Symbol {
	var terms []*Symbol
	for i, name := range names {
		terms = append(terms, &Symbol{Name: name, Value: i, kind: terminalKind})
	}
	return terms
}

func TestFunctionValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	gen := makeTables(t, true)
	g, pf := gen.Grammar(), gen.Functions()
	if !gen.Graph().IsAcyclic() {
		t.Fatalf("Expected graph of arithmetic grammar to be acyclic")
	}
	expected := map[string][2]int{ // terminal → { F, G }
		"#": {0, 0}, "!": {0, 0},
		"+": {1, 1}, "-": {1, 1},
		"*": {2, 2}, "/": {2, 2},
		"a": {3, 3}, "y": {3, 3},
		"(": {0, 3}, ")": {3, 0},
	}
	for name, fg := range expected {
		A := g.SymbolByName(name)
		if pf.F(A) != fg[0] || pf.G(A) != fg[1] {
			t.Errorf("Expected F(%s)=%d, G(%s)=%d; have %d, %d", name, fg[0], name, fg[1],
				pf.F(A), pf.G(A))
		}
	}
	if !gen.Graph().Merged(g.SymbolByName("+"), Entering, g.SymbolByName("-"), Leaving) {
		t.Errorf("Expected f(+) and g(-) to be merged")
	}
	if !gen.Graph().HasEdge(g.SymbolByName("*"), Entering, g.SymbolByName("+"), Leaving) {
		t.Errorf("Expected edge f(*) → g(+)")
	}
}

func TestFunctionsMatchMatrix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	gen := makeTables(t, true)
	m, pf := gen.Matrix(), gen.Functions()
	n := 0
	m.Each(func(a, b *Symbol, r Relation) {
		if x := pf.Relation(a, b); x != r {
			t.Errorf("Expected functions to reproduce (%s,%s) = '%s', have '%s'", a, b, r, x)
		}
		n++
	})
	if n == 0 {
		t.Errorf("Expected matrix to have relations")
	}
	empty := gen.Grammar().Empty()
	if pf.Relation(empty, gen.Grammar().Boundary()) != NoRelation {
		t.Errorf("Expected unrelated terminal ε to stay unrelated")
	}
	if gen.Relations() != Relations(pf) {
		t.Errorf("Expected generator to hand out functions as relations")
	}
}

func TestCyclicGraph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	terms := syntheticTerminals("a", "b")
	a, b := terms[0], terms[1]
	m := NewMatrix(terms)
	m.Set(a, b, Takes)
	m.Set(b, a, Takes)
	m.Set(a, a, Equal)
	m.Set(b, b, Equal)
	fg := BuildGraph(m)
	if fg.IsAcyclic() {
		t.Errorf("Expected graph to be cyclic")
	}
	pf, err := fg.AssignFunctions()
	if pf != nil || !errors.Is(err, ErrCyclicGraph) {
		t.Errorf("Expected function assignment to fail with cycle, have %v", err)
	}
}

func TestCyclicGrammarHasNoRelations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	b := NewGrammarBuilder("Cyclic")
	b.LHS("S").T("a").T("b").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	ov := NewOverrides().Set("a", "b", Takes).Set("b", "a", Takes)
	ov.Group("a").Group("b")
	gen := NewTableGenerator(Analysis(g), WithOverrides(ov), WithFunctions(true))
	if err := gen.CreateTables(); !errors.Is(err, ErrCyclicGraph) {
		t.Fatalf("Expected table creation to fail with cycle, have %v", err)
	}
	if gen.Matrix() == nil {
		t.Errorf("Expected matrix to be available after failed function assignment")
	}
	if gen.Relations() != nil {
		t.Errorf("Expected no relations when requested functions could not be assigned")
	}
}

func TestOppositeRelationsAlone(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	terms := syntheticTerminals("a", "b")
	a, b := terms[0], terms[1]
	m := NewMatrix(terms)
	m.Set(a, b, Takes)
	m.Set(b, a, Takes)
	pf, err := BuildGraph(m).AssignFunctions()
	if err != nil {
		t.Fatalf("Expected a > b, b > a to admit functions, got %v", err)
	}
	if pf.Relation(a, b) != Takes || pf.Relation(b, a) != Takes {
		t.Errorf("Expected functions to reproduce a > b and b > a")
	}
}

func TestSelfLoop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	terms := syntheticTerminals("a", "b")
	a, b := terms[0], terms[1]
	m := NewMatrix(terms)
	m.Set(a, a, Equal)
	m.Set(b, b, Equal)
	m.Set(a, b, Equal)
	m.Set(b, a, Takes) // f(b) and g(a) have been merged
	if _, err := BuildGraph(m).AssignFunctions(); !errors.Is(err, ErrCyclicGraph) {
		t.Errorf("Expected edge within a merged node to be a cycle, have %v", err)
	}
}

func TestGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	gen := makeTables(t, true)
	var buf bytes.Buffer
	gen.Graph().GraphViz(&buf)
	dot := buf.String()
	if !strings.HasPrefix(dot, "digraph {") || !strings.Contains(dot, "f(+) | ") {
		t.Errorf("Unexpected GraphViz output:\n%s", dot)
	}
}

func TestConcurrentGraphInspection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	gen := makeTables(t, true)
	g, fg := gen.Grammar(), gen.Graph()
	plus, minus, star := g.SymbolByName("+"), g.SymbolByName("-"), g.SymbolByName("*")
	var wg sync.WaitGroup
	errs := make([]bool, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var buf bytes.Buffer
			fg.GraphViz(&buf)
			errs[i] = !fg.Merged(plus, Entering, minus, Leaving) ||
				!fg.HasEdge(star, Entering, plus, Leaving) || buf.Len() == 0
		}(i)
	}
	wg.Wait()
	for i, failed := range errs {
		if failed {
			t.Errorf("Expected inspection #%d of shared graph to see merged classes and edges", i)
		}
	}
}

func TestMissingFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	gen := makeTables(t, false)
	if gen.Relations() != Relations(gen.Matrix()) {
		t.Errorf("Expected generator to hand out the matrix without functions")
	}
}
