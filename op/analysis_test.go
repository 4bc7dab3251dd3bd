package op

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestTerminalClosure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	g := makeArithmetic(t)
	ga := Analysis(g)
	// sets print in order of terminal value, i.e. order of first use
	expected := map[string][2]string{ // N → { Lt(N), Rt(N) }
		"A":  {"{ ! }", "{ ! }"},
		"M":  {"{ a b c d x y ( }", "{ a b c d x y ) }"},
		"T'": {"{ * / a b c d x y ( }", "{ * / a b c d x y ) }"},
		"B":  {"{ + - * / a b c d x y ( }", "{ + - * / a b c d x y ) }"},
	}
	for name, sets := range expected {
		N := g.SymbolByName(name)
		if lt := ga.LeftTerminals(N).String(); lt != sets[0] {
			t.Errorf("Expected Lt(%s) = %s, is %s", name, sets[0], lt)
		}
		if rt := ga.RightTerminals(N).String(); rt != sets[1] {
			t.Errorf("Expected Rt(%s) = %s, is %s", name, sets[1], rt)
		}
	}
	if !ga.Leftmost(g.SymbolByName("B")).Contains(g.SymbolByName("M")) {
		t.Errorf("Expected M ∈ L(B)")
	}
}

func TestClosureInvariants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	g := makeArithmetic(t)
	ga := Analysis(g)
	for _, N := range g.NonTerminals() {
		if len(ga.LeftTerminals(N).NonTerminals()) > 0 || len(ga.RightTerminals(N).NonTerminals()) > 0 {
			t.Errorf("Expected Lt(%s) and Rt(%s) to hold terminals only", N, N)
		}
		for _, a := range ga.Leftmost(N).Terminals().Values() {
			if !ga.LeftTerminals(N).Contains(a) {
				t.Errorf("Expected Lt(%s) to contain %s ∈ L(%s)", N, a, N)
			}
		}
		for _, a := range ga.Rightmost(N).Terminals().Values() {
			if !ga.RightTerminals(N).Contains(a) {
				t.Errorf("Expected Rt(%s) to contain %s ∈ R(%s)", N, a, N)
			}
		}
	}
}

func TestClosureIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.op")
	defer teardown()
	//
	g := makeArithmetic(t)
	ga := Analysis(g)
	for name, pair := range map[string][2]closureSets{
		"L":  {ga.left, ga.left},
		"R":  {ga.right, ga.right},
		"Lt": {ga.leftT, ga.left},
		"Rt": {ga.rightT, ga.right},
	} {
		sets := pair[0].copy()
		if propagate(g, sets, pair[1]) {
			t.Errorf("Expected another pass over %s to change nothing", name)
		}
		if !sets.equals(pair[0]) {
			t.Errorf("Expected closure of %s to be a fixpoint", name)
		}
	}
}
