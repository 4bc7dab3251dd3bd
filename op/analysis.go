package op

// === Closure Sets ==========================================================

// closureSets maps non-terminals to sets of symbols.
type closureSets map[*Symbol]*SymbolSet

func newClosureSets(g *Grammar) closureSets {
	sets := make(closureSets, len(g.nonterminals))
	for _, N := range g.nonterminals {
		sets[N] = NewSymbolSet()
	}
	return sets
}

func (cs closureSets) copy() closureSets {
	c := make(closureSets, len(cs))
	for N, S := range cs {
		c[N] = S.Copy()
	}
	return c
}

func (cs closureSets) equals(other closureSets) bool {
	if len(cs) != len(other) {
		return false
	}
	for N, S := range cs {
		if !S.Equals(other[N]) {
			return false
		}
	}
	return true
}

// GrammarAnalysis holds the closure sets for a grammar:
//
//    L(N)  = { X | N ⇒+ X…}        R(N)  = { X | N ⇒+ …X }
//    Lt(N) = { a | N ⇒+ Ya…}       Rt(N) = { a | N ⇒+ …aY }
//
// with Y being either empty or a single non-terminal.
type GrammarAnalysis struct {
	g      *Grammar
	left   closureSets // L
	right  closureSets // R
	leftT  closureSets // Lt
	rightT closureSets // Rt
	passes int         // fixpoint passes needed, for debugging
}

// Analysis computes the closure sets for a grammar.
// Grammars are immutable, thus the analysis may be shared.
func Analysis(g *Grammar) *GrammarAnalysis {
	ga := &GrammarAnalysis{g: g}
	ga.left, ga.right = ga.symbolClosure()
	ga.leftT, ga.rightT = ga.terminalClosure()
	return ga
}

// Grammar returns the grammar this analysis is for.
func (ga *GrammarAnalysis) Grammar() *Grammar {
	return ga.g
}

// Leftmost returns L(N).
func (ga *GrammarAnalysis) Leftmost(N *Symbol) *SymbolSet {
	return ga.left[N]
}

// Rightmost returns R(N).
func (ga *GrammarAnalysis) Rightmost(N *Symbol) *SymbolSet {
	return ga.right[N]
}

// LeftTerminals returns Lt(N).
func (ga *GrammarAnalysis) LeftTerminals(N *Symbol) *SymbolSet {
	return ga.leftT[N]
}

// RightTerminals returns Rt(N).
func (ga *GrammarAnalysis) RightTerminals(N *Symbol) *SymbolSet {
	return ga.rightT[N]
}

// symbolClosure seeds L and R with the first and last symbol of every rule
// and iterates until a fixpoint is reached.
func (ga *GrammarAnalysis) symbolClosure() (closureSets, closureSets) {
	L, R := newClosureSets(ga.g), newClosureSets(ga.g)
	for _, r := range ga.g.rules {
		L[r.LHS].Add(r.rhs[0])
		R[r.LHS].Add(r.rhs[len(r.rhs)-1])
	}
	ga.passes = fixpoint(ga.g, L, L)
	ga.passes += fixpoint(ga.g, R, R)
	tracer().Debugf("L/R closure computed in %d passes", ga.passes)
	return L, R
}

// terminalClosure seeds Lt and Rt with the first and last terminal actually
// present in a rule's body and propagates them along the non-terminals in L and R.
func (ga *GrammarAnalysis) terminalClosure() (closureSets, closureSets) {
	Lt, Rt := newClosureSets(ga.g), newClosureSets(ga.g)
	for _, r := range ga.g.rules {
		if a := firstTerminal(r.rhs); a != nil {
			Lt[r.LHS].Add(a)
		}
		if a := lastTerminal(r.rhs); a != nil {
			Rt[r.LHS].Add(a)
		}
	}
	n := fixpoint(ga.g, Lt, ga.left)
	n += fixpoint(ga.g, Rt, ga.right)
	tracer().Debugf("Lt/Rt closure computed in %d passes", n)
	return Lt, Rt
}

// fixpoint calls propagate until a pass adds no new symbol. Sets only grow and
// the universe of symbols is finite, so this terminates.
func fixpoint(g *Grammar, sets, reach closureSets) int {
	passes := 1
	for propagate(g, sets, reach) {
		passes++
	}
	return passes
}

// propagate performs a single pass: for every non-terminal N and every
// non-terminal S ≠ N in reach(N), sets(S) is added to sets(N).
// It returns true if any set changed.
func propagate(g *Grammar, sets, reach closureSets) bool {
	changed := false
	for _, N := range g.nonterminals {
		for _, S := range reach[N].NonTerminals() {
			if S == N {
				continue
			}
			if sets[N].Union(sets[S]) {
				changed = true
			}
		}
	}
	return changed
}

func firstTerminal(rhs []*Symbol) *Symbol {
	for _, A := range rhs {
		if A.IsTerminal() {
			return A
		}
	}
	return nil
}

func lastTerminal(rhs []*Symbol) *Symbol {
	for i := len(rhs) - 1; i >= 0; i-- {
		if rhs[i].IsTerminal() {
			return rhs[i]
		}
	}
	return nil
}
