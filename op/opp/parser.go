package opp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/opgo"
	"github.com/npillmayer/opgo/op"
	"github.com/npillmayer/opgo/op/scanner"
)

// Parser is an operator-precedence parser. Create and initialize one with
// opp.NewParser(...).
type Parser struct {
	G          *op.Grammar
	rel        op.Relations
	candidates []*op.Rule // rules which may form a handle, in order of preference
	maxSteps   int
}

// Option configures a parser.
type Option func(p *Parser)

// MaxSteps limits the number of steps a parse may take. A value of 0 means
// no limit. Parses always terminate, so this is a debugging aid.
func MaxSteps(n int) Option {
	return func(p *Parser) {
		p.maxSteps = n
	}
}

// NewParser creates an operator-precedence parser for a grammar. rel is
// either the precedence matrix or the precedence functions of the grammar.
func NewParser(g *op.Grammar, rel op.Relations, opts ...Option) *Parser {
	p := &Parser{G: g, rel: rel}
	for _, r := range g.Rules() {
		if r.HasTerminal() {
			p.candidates = append(p.candidates, r)
		}
	}
	sort.SliceStable(p.candidates, func(i, j int) bool {
		ri, rj := p.candidates[i], p.candidates[j]
		if ri.Len() != rj.Len() {
			return ri.Len() > rj.Len()
		}
		return ri.Serial < rj.Serial
	})
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is the outcome of a parse. For rejected input only Steps is
// meaningful.
type Result struct {
	Derivation []int    // IDs of the rules in order of reduction
	Postfix    []string // postfix stream
	Steps      []Step   // trace of the parse
	Tree       *Node    // derivation tree
}

// Leftmost returns the IDs of the rules of the leftmost derivation.
func (r *Result) Leftmost() []int {
	if r.Tree == nil {
		return nil
	}
	return r.Tree.Leftmost()
}

// entry is an item on the parse stack.
type entry struct {
	sym  *op.Symbol
	node *Node
}

// parseState is private to a single call of Parse.
type parseState struct {
	stack     *arraylist.List
	lookahead opgo.Token
	la        *op.Symbol
	result    *Result
}

// ParseString parses a string, splitting it into single-rune tokens.
func (p *Parser) ParseString(input string) (*Result, error) {
	return p.Parse(scanner.RuneTokenizer("input", strings.NewReader(input), p.G.TokenTypeOf))
}

// Parse parses the tokens delivered by a scanner. It returns the result and,
// for input which is not accepted, a *RejectError.
func (p *Parser) Parse(scan scanner.Tokenizer) (*Result, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.G == nil || p.rel == nil {
		tracer().Errorf("operator-precedence parser not initialized")
		return nil, fmt.Errorf("operator-precedence parser not initialized")
	}
	st := &parseState{
		stack:  arraylist.New(),
		result: &Result{},
	}
	bottom := p.G.Boundary()
	st.stack.Add(entry{sym: bottom, node: &Node{Symbol: bottom}})
	p.advance(st, scan)
	for step := 0; ; step++ {
		if p.maxSteps > 0 && step >= p.maxSteps {
			stuck(fmt.Sprintf("parser stuck after %d steps, stack = %s", step, st.snapshot()))
			return st.result, p.reject(st, step, ErrStuck)
		}
		a := st.topTerminal()
		if a == bottom && st.la == bottom {
			return p.accept(st, step)
		}
		r := p.rel.Relation(a, st.la)
		tracer().Debugf("(%s,%s) = '%s'", a, st.la, r)
		switch {
		case r == op.NoRelation, r == op.Yields && st.la == bottom:
			p.record(st, r, Reject, nil, nil)
			return st.result, p.reject(st, step, ErrNoRelation)
		case r == op.Takes, r == op.Equal && st.la == bottom:
			if !p.reduce(st, r) {
				p.record(st, r, Reject, nil, nil)
				return st.result, p.reject(st, step, ErrNoReducible)
			}
		default:
			p.record(st, r, Shift, nil, nil)
			tracer().Debugf("shift %s", st.la)
			st.stack.Add(entry{sym: st.la, node: leaf(st.la, st.lookahead)})
			p.advance(st, scan)
		}
	}
}

// advance reads the next token and maps it to a terminal.
func (p *Parser) advance(st *parseState, scan scanner.Tokenizer) {
	st.lookahead = scan.NextToken()
	st.la = p.G.Terminal(st.lookahead.TokType())
	if st.la == nil {
		st.la = p.G.Empty()
	}
	tracer().Debugf("got token %q/%s from scanner", st.lookahead.Lexeme(), st.la)
}

// reduce finds the longest rule matching the top of the stack and replaces the
// matched symbols by the rule's LHS. Among rules of equal length, the one
// declared first wins.
func (p *Parser) reduce(st *parseState, rel op.Relation) bool {
	n := st.stack.Size()
	for _, r := range p.candidates {
		k := r.Len()
		if k >= n || !p.matches(st, r, n-k) {
			continue
		}
		children := make([]*Node, k)
		var chain []*op.Rule
		for i, X := range r.RHS() {
			e := st.at(n - k + i)
			node := e.node
			if !X.IsTerminal() && X != e.sym {
				path := p.G.ChainPath(X, e.sym)
				for j := len(path) - 1; j >= 0; j-- {
					node = inner(path[j], []*Node{node})
					st.result.Derivation = append(st.result.Derivation, path[j].ID)
					chain = append(chain, path[j])
				}
			}
			children[i] = node
		}
		p.record(st, rel, Reduce, r, chain)
		for i := 0; i < k; i++ {
			st.stack.Remove(st.stack.Size() - 1)
		}
		st.stack.Add(entry{sym: r.LHS, node: inner(r, children)})
		st.result.Derivation = append(st.result.Derivation, r.ID)
		tracer().Debugf("reduce %v", r)
		return true
	}
	return false
}

// matches checks if the body of r matches the stack from position from on.
// Terminals must match literally, non-terminals match any non-terminal.
func (p *Parser) matches(st *parseState, r *op.Rule, from int) bool {
	for i, X := range r.RHS() {
		A := st.at(from + i).sym
		if X.IsTerminal() != A.IsTerminal() || (X.IsTerminal() && X != A) {
			return false
		}
	}
	return true
}

// accept checks that the stack holds exactly the start symbol, possibly
// after applying chain rules.
func (p *Parser) accept(st *parseState, step int) (*Result, error) {
	if st.stack.Size() == 2 {
		top := st.at(1)
		if top.sym == p.G.Start || p.G.ChainPath(p.G.Start, top.sym) != nil {
			node := top.node
			path := p.G.ChainPath(p.G.Start, top.sym)
			for j := len(path) - 1; j >= 0; j-- {
				node = inner(path[j], []*Node{node})
				st.result.Derivation = append(st.result.Derivation, path[j].ID)
			}
			p.record(st, op.NoRelation, Accept, nil, path)
			st.result.Tree = node
			st.result.Postfix = node.Postfix()
			tracer().Infof("accept after %d steps, postfix = %v", step+1, st.result.Postfix)
			return st.result, nil
		}
	}
	p.record(st, op.NoRelation, Reject, nil, nil)
	return st.result, p.reject(st, step, ErrIncomplete)
}

func (p *Parser) reject(st *parseState, step int, reason error) error {
	err := &RejectError{
		Step:      step,
		Top:       st.topTerminal(),
		Lookahead: st.la,
		Span:      st.lookahead.Span(),
		Err:       reason,
	}
	tracer().Infof("%v", err)
	return err
}

func (p *Parser) record(st *parseState, rel op.Relation, a Action, r *op.Rule, chain []*op.Rule) {
	st.result.Steps = append(st.result.Steps, Step{
		Stack:     st.symbols(),
		Lookahead: st.la,
		Lexeme:    st.lookahead.Lexeme(),
		Relation:  rel,
		Action:    a,
		Rule:      r,
		Chain:     chain,
	})
}

// --- Stack helpers ---------------------------------------------------------

func (st *parseState) at(i int) entry {
	e, _ := st.stack.Get(i)
	return e.(entry)
}

// topTerminal returns the topmost terminal on the stack. The stack bottom is
// always a terminal.
func (st *parseState) topTerminal() *op.Symbol {
	for i := st.stack.Size() - 1; i >= 0; i-- {
		if A := st.at(i).sym; A.IsTerminal() {
			return A
		}
	}
	return nil
}

func (st *parseState) symbols() []*op.Symbol {
	syms := make([]*op.Symbol, st.stack.Size())
	for i := range syms {
		syms[i] = st.at(i).sym
	}
	return syms
}

func (st *parseState) snapshot() string {
	return Step{Stack: st.symbols()}.StackString()
}
