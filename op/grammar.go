package op

import (
	"bytes"
	"fmt"

	"github.com/cnf/structhash"
	"github.com/npillmayer/opgo"
)

// Names of the reserved terminals every grammar carries.
const (
	BoundaryName = "#" // marks both ends of the input
	EmptyName    = "ε" // stands for input not mapping to any terminal
)

// === Symbols ===============================================================

type symKind int8

const (
	terminalKind symKind = iota
	nonterminalKind
)

// Symbol is a symbol of an operator grammar, i.e. either a terminal or a
// non-terminal. Symbols are unique within a grammar and compared by identity.
type Symbol struct {
	Name  string
	Value int // serial value, unique within terminals resp. non-terminals
	kind  symKind
}

// IsTerminal returns true if this symbol represents a terminal.
func (A *Symbol) IsTerminal() bool {
	return A.kind == terminalKind
}

// TokenType returns the token type a scanner has to deliver for a terminal.
func (A *Symbol) TokenType() opgo.TokType {
	return opgo.TokType(A.Value)
}

func (A *Symbol) String() string {
	return A.Name
}

// === Rules =================================================================

// Rule is a production of an operator grammar. Rules are created by a
// GrammarBuilder and are immutable afterwards.
type Rule struct {
	ID     int     // identifies the rule in derivation traces
	Serial int     // order of declaration
	LHS    *Symbol // the head non-terminal
	Emit   string  // postfix token emitted on reduction, may be empty
	rhs    []*Symbol
}

// RHS returns the body of a rule. Clients must not modify it.
func (r *Rule) RHS() []*Symbol {
	return r.rhs
}

// Len returns the number of symbols of the rule's body.
func (r *Rule) Len() int {
	return len(r.rhs)
}

// IsChain is true for rules whose body consists of a single non-terminal.
func (r *Rule) IsChain() bool {
	return len(r.rhs) == 1 && !r.rhs[0].IsTerminal()
}

// HasTerminal is true if the body contains at least one terminal.
func (r *Rule) HasTerminal() bool {
	for _, A := range r.rhs {
		if A.IsTerminal() {
			return true
		}
	}
	return false
}

func (r *Rule) String() string {
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("%d: %s ::= [", r.ID, r.LHS.Name))
	for i, A := range r.rhs {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(A.Name)
	}
	b.WriteString("]")
	if r.Emit != "" {
		b.WriteString(" ⇒ " + r.Emit)
	}
	return b.String()
}

// === Grammar ===============================================================

// Grammar is a type for an operator grammar. Create one with a GrammarBuilder.
// The first rule's LHS is the start symbol.
//
// Terminal '#' always has value 0 and terminal 'ε' always has value 1.
type Grammar struct {
	Name         string
	Start        *Symbol
	terminals    []*Symbol
	nonterminals []*Symbol
	rules        []*Rule
	byLHS        map[*Symbol][]*Rule
	byName       map[string]*Symbol
	chains       map[*Symbol]map[*Symbol][]*Rule
}

// Boundary returns the reserved terminal marking the input boundaries.
func (g *Grammar) Boundary() *Symbol {
	return g.terminals[0]
}

// Empty returns the reserved terminal for input which maps to no terminal.
func (g *Grammar) Empty() *Symbol {
	return g.terminals[1]
}

// Rule returns the rule declared at position serial, or nil.
func (g *Grammar) Rule(serial int) *Rule {
	if serial < 0 || serial >= len(g.rules) {
		return nil
	}
	return g.rules[serial]
}

// RuleByID finds a rule by its ID, or returns nil.
func (g *Grammar) RuleByID(id int) *Rule {
	for _, r := range g.rules {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// Rules returns all rules in order of declaration.
func (g *Grammar) Rules() []*Rule {
	return g.rules
}

// RulesFor returns the rules with LHS N, in order of declaration.
func (g *Grammar) RulesFor(N *Symbol) []*Rule {
	return g.byLHS[N]
}

// Size returns the number of rules.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Terminals returns all terminals, ordered by value.
func (g *Grammar) Terminals() []*Symbol {
	return g.terminals
}

// NonTerminals returns all non-terminals, ordered by value.
func (g *Grammar) NonTerminals() []*Symbol {
	return g.nonterminals
}

// SymbolByName returns a grammar symbol, or nil.
func (g *Grammar) SymbolByName(name string) *Symbol {
	return g.byName[name]
}

// Terminal returns the terminal for a token type, or nil.
func (g *Grammar) Terminal(tt opgo.TokType) *Symbol {
	if tt < 0 || int(tt) >= len(g.terminals) {
		return nil
	}
	return g.terminals[tt]
}

// TokenTypeOf returns the token type for a terminal name. The reserved
// terminals are never found, as they cannot appear in the input.
func (g *Grammar) TokenTypeOf(name string) (opgo.TokType, bool) {
	if name == BoundaryName || name == EmptyName {
		return 0, false
	}
	if A := g.byName[name]; A != nil && A.IsTerminal() {
		return A.TokenType(), true
	}
	return 0, false
}

// EachTerminal iterates over all terminals of the grammar.
func (g *Grammar) EachTerminal(mapper func(A *Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, A := range g.terminals {
		r = append(r, mapper(A))
	}
	return r
}

// EachNonTerminal iterates over all non-terminals of the grammar.
func (g *Grammar) EachNonTerminal(mapper func(N *Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, N := range g.nonterminals {
		r = append(r, mapper(N))
	}
	return r
}

// ChainPath returns the shortest sequence of chain rules for a derivation
// from ⇒ X1 ⇒ … ⇒ to, outermost rule first. It returns nil if from equals to
// or if there is no such derivation.
func (g *Grammar) ChainPath(from, to *Symbol) []*Rule {
	if paths, ok := g.chains[from]; ok {
		return paths[to]
	}
	return nil
}

// Dump is a debugging helper, tracing all rules at debug level.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	tracer().Debugf("start symbol: %s", g.Start)
	for _, r := range g.rules {
		tracer().Debugf("%s", r)
	}
	tracer().Debugf("-------------------------------------------------------")
}

// Hash returns a fingerprint of the grammar's rules, suitable for recognizing
// tables built for the same grammar.
func (g *Grammar) Hash() string {
	type ruleDigest struct {
		ID   int
		LHS  string
		RHS  []string
		Emit string
	}
	digest := struct {
		Start string
		Rules []ruleDigest
	}{Start: g.Start.Name}
	for _, r := range g.rules {
		d := ruleDigest{ID: r.ID, LHS: r.LHS.Name, Emit: r.Emit}
		for _, A := range r.rhs {
			d.RHS = append(d.RHS, A.Name)
		}
		digest.Rules = append(digest.Rules, d)
	}
	h, err := structhash.Hash(digest, 1)
	if err != nil {
		tracer().Errorf("cannot hash grammar %s: %v", g.Name, err)
		return ""
	}
	return h
}

// computeChains does a breadth-first search over chain rules for every
// non-terminal. Rules are visited in order of declaration, which makes the
// paths deterministic.
func (g *Grammar) computeChains() {
	g.chains = make(map[*Symbol]map[*Symbol][]*Rule, len(g.nonterminals))
	for _, N := range g.nonterminals {
		paths := map[*Symbol][]*Rule{}
		queue := []*Symbol{N}
		for len(queue) > 0 {
			X := queue[0]
			queue = queue[1:]
			for _, r := range g.byLHS[X] {
				if !r.IsChain() {
					continue
				}
				Y := r.rhs[0]
				if _, seen := paths[Y]; seen || Y == N {
					continue
				}
				path := append(append([]*Rule(nil), paths[X]...), r)
				paths[Y] = path
				queue = append(queue, Y)
			}
		}
		g.chains[N] = paths
	}
}

// === Grammar Builder =======================================================

// GrammarBuilder is a helper for creating operator grammars.
//
//     b := op.NewGrammarBuilder("G")
//     b.LHS("M").T("(").N("B").T(")").ID(8).End()      // 8: M ->  ( B )
//     b.LHS("M").T("a").Emit("a").End()                // M ->  a, emits 'a'
//     g, err := b.Grammar()
//
type GrammarBuilder struct {
	name  string
	rules []*RuleBuilder
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	return &GrammarBuilder{name: gname}
}

// RuleBuilder collects the symbols of a single rule.
type RuleBuilder struct {
	gb    *GrammarBuilder
	lhs   string
	rhs   []symRef
	id    int
	hasID bool
	emit  string
}

type symRef struct {
	name     string
	terminal bool
}

// LHS starts a rule given the name of the left hand side non-terminal.
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	return &RuleBuilder{gb: gb, lhs: name}
}

// N appends a non-terminal to the right hand side of a rule.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.rhs = append(rb.rhs, symRef{name: name})
	return rb
}

// T appends a terminal to the right hand side of a rule.
func (rb *RuleBuilder) T(name string) *RuleBuilder {
	rb.rhs = append(rb.rhs, symRef{name: name, terminal: true})
	return rb
}

// Emit sets the postfix token to emit when the rule is reduced.
func (rb *RuleBuilder) Emit(token string) *RuleBuilder {
	rb.emit = token
	return rb
}

// ID sets the rule ID. Rules without explicit ID are numbered by
// order of declaration, starting at 1.
func (rb *RuleBuilder) ID(id int) *RuleBuilder {
	rb.id, rb.hasID = id, true
	return rb
}

// End completes a rule.
func (rb *RuleBuilder) End() {
	rb.gb.rules = append(rb.gb.rules, rb)
}

// Grammar returns the grammar built. It checks the restrictions of operator
// grammars and returns an error if the rules violate one of them.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if len(gb.rules) == 0 {
		return nil, fmt.Errorf("grammar %s has no rules", gb.name)
	}
	g := &Grammar{
		Name:   gb.name,
		byLHS:  make(map[*Symbol][]*Rule),
		byName: make(map[string]*Symbol),
	}
	g.addSymbol(BoundaryName, terminalKind)
	g.addSymbol(EmptyName, terminalKind)
	for _, rb := range gb.rules { // non-terminals first: order of appearance as LHS
		if rb.lhs == BoundaryName || rb.lhs == EmptyName {
			return nil, fmt.Errorf("reserved terminal %q used as LHS", rb.lhs)
		}
		g.addSymbol(rb.lhs, nonterminalKind)
	}
	for _, rb := range gb.rules {
		for _, ref := range rb.rhs {
			if !ref.terminal {
				continue
			}
			if ref.name == BoundaryName || ref.name == EmptyName {
				return nil, fmt.Errorf("reserved terminal %q used in rule for %s", ref.name, rb.lhs)
			}
			if A := g.byName[ref.name]; A != nil && !A.IsTerminal() {
				return nil, fmt.Errorf("symbol %q used as terminal and as non-terminal", ref.name)
			}
			g.addSymbol(ref.name, terminalKind)
		}
	}
	g.Start = g.byName[gb.rules[0].lhs]
	ids := map[int]int{}
	for serial, rb := range gb.rules {
		r, err := rb.makeRule(g, serial)
		if err != nil {
			return nil, err
		}
		if other, dup := ids[r.ID]; dup {
			return nil, fmt.Errorf("rule ID %d used for rules #%d and #%d", r.ID, other, serial)
		}
		ids[r.ID] = serial
		g.rules = append(g.rules, r)
		g.byLHS[r.LHS] = append(g.byLHS[r.LHS], r)
	}
	g.computeChains()
	tracer().Debugf("grammar %s: %d rules, %d terminals, %d non-terminals",
		g.Name, len(g.rules), len(g.terminals), len(g.nonterminals))
	return g, nil
}

func (rb *RuleBuilder) makeRule(g *Grammar, serial int) (*Rule, error) {
	if len(rb.rhs) == 0 {
		return nil, fmt.Errorf("rule #%d for %s has an empty right hand side", serial, rb.lhs)
	}
	r := &Rule{
		ID:     serial + 1,
		Serial: serial,
		LHS:    g.byName[rb.lhs],
		Emit:   rb.emit,
		rhs:    make([]*Symbol, len(rb.rhs)),
	}
	if rb.hasID {
		r.ID = rb.id
	}
	for i, ref := range rb.rhs {
		A := g.byName[ref.name]
		if A == nil || A.IsTerminal() != ref.terminal {
			return nil, fmt.Errorf("rule #%d for %s: non-terminal %q has no rules", serial, rb.lhs, ref.name)
		}
		if i > 0 && !A.IsTerminal() && !r.rhs[i-1].IsTerminal() {
			return nil, fmt.Errorf("rule #%d for %s: adjacent non-terminals %s %s",
				serial, rb.lhs, r.rhs[i-1], A)
		}
		r.rhs[i] = A
	}
	return r, nil
}

func (g *Grammar) addSymbol(name string, kind symKind) *Symbol {
	if A, ok := g.byName[name]; ok {
		return A
	}
	A := &Symbol{Name: name, kind: kind}
	if kind == terminalKind {
		A.Value = len(g.terminals)
		g.terminals = append(g.terminals, A)
	} else {
		A.Value = len(g.nonterminals)
		g.nonterminals = append(g.nonterminals, A)
	}
	g.byName[name] = A
	return A
}
