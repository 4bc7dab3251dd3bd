/*
Package rd provides a backtracking recursive-descent recognizer for operator
grammars. It serves as a reference for the operator-precedence parser of
package opp: for every sentence both accept, the recognizer's derivation
equals the leftmost derivation of the operator-precedence parser, and the
postfix streams are identical.

The recognizer tries the rules of a non-terminal in order of declaration.
If a rule fails, input position, derivation and postfix output are restored
and the next rule is tried. Once a non-terminal has been recognized, the choice
is final; there is no backtracking into a completed non-terminal. Input is
rejected if the start symbol cannot be recognized or if input remains after it.

Left-recursive rules cannot be recognized top-down. A rule is given up on as
soon as it would expand a non-terminal which is already being expanded at the
same input position.

    g, _ := grammars.RightRecursive()
    result, err := rd.NewRecognizer(g).ParseString("!a+b!")
    fmt.Println(result.Derivation)

    // Output:
    [1 3 4 6 2 4 7]

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package rd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/opgo/op"
	"github.com/npillmayer/opgo/op/scanner"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'opgo.op'.
func tracer() tracing.Trace {
	return tracing.Select("opgo.op")
}

// Reasons for not recognizing an input.
var (
	ErrNotRecognized = errors.New("start symbol not recognized")
	ErrTrailingInput = errors.New("input remaining")
)

// Recognizer is a backtracking top-down recognizer. It is immutable and may
// be shared between goroutines.
type Recognizer struct {
	G *op.Grammar
}

// NewRecognizer creates a recognizer for a grammar.
func NewRecognizer(g *op.Grammar) *Recognizer {
	return &Recognizer{G: g}
}

// Result is the outcome of a successful recognition.
type Result struct {
	Derivation []int    // IDs of the rules, leftmost derivation
	Postfix    []string // postfix stream
}

// ParseString recognizes a string, splitting it into single-rune tokens.
func (rc *Recognizer) ParseString(input string) (*Result, error) {
	return rc.Parse(scanner.RuneTokenizer("input", strings.NewReader(input), rc.G.TokenTypeOf))
}

// Parse recognizes the tokens delivered by a scanner.
func (rc *Recognizer) Parse(scan scanner.Tokenizer) (*Result, error) {
	var input []*op.Symbol
	for tok := scan.NextToken(); tok.TokType() != scanner.EOF; tok = scan.NextToken() {
		A := rc.G.Terminal(tok.TokType())
		if A == nil {
			A = rc.G.Empty()
		}
		input = append(input, A)
	}
	return rc.Recognize(input)
}

// frame is a choice point: a non-terminal being expanded, the alternative
// currently tried and the position within its body. pos, dlen and plen
// record the state to restore when switching to the next alternative.
type frame struct {
	N     *op.Symbol
	rules []*op.Rule
	alt   int
	idx   int
	pos   int
	dlen  int
	plen  int
}

func (f *frame) body() []*op.Symbol {
	return f.rules[f.alt].RHS()
}

type recognition struct {
	input  []*op.Symbol
	pos    int
	frames *arraystack.Stack
	result *Result
}

// Recognize recognizes a sequence of terminals.
func (rc *Recognizer) Recognize(input []*op.Symbol) (*Result, error) {
	rec := &recognition{
		input:  input,
		frames: arraystack.New(),
		result: &Result{},
	}
	rec.enter(rc.G, rc.G.Start)
	for !rec.frames.Empty() {
		f := rec.top()
		body := f.body()
		if f.idx == len(body) { // alternative completed
			if emit := f.rules[f.alt].Emit; emit != "" {
				rec.result.Postfix = append(rec.result.Postfix, emit)
			}
			rec.frames.Pop()
			continue
		}
		X := body[f.idx]
		ok := true
		switch {
		case X.IsTerminal() && rec.pos < len(input) && input[rec.pos] == X:
			rec.pos++
			f.idx++
		case X.IsTerminal():
			ok = rec.fail()
		case rec.active(X):
			tracer().Debugf("left recursion for %s at position %d", X, rec.pos)
			ok = rec.fail()
		default:
			f.idx++
			rec.enter(rc.G, X)
		}
		if !ok {
			tracer().Infof("input not recognized")
			return nil, ErrNotRecognized
		}
	}
	if rec.pos != len(input) {
		tracer().Infof("input remaining at position %d", rec.pos)
		return nil, fmt.Errorf("%w at position %d", ErrTrailingInput, rec.pos)
	}
	tracer().Debugf("recognized, derivation = %v", rec.result.Derivation)
	return rec.result, nil
}

func (rec *recognition) top() *frame {
	f, _ := rec.frames.Peek()
	return f.(*frame)
}

// enter pushes a choice point for N and starts with its first rule.
func (rec *recognition) enter(g *op.Grammar, N *op.Symbol) {
	f := &frame{
		N:     N,
		rules: g.RulesFor(N),
		pos:   rec.pos,
		dlen:  len(rec.result.Derivation),
		plen:  len(rec.result.Postfix),
	}
	rec.frames.Push(f)
	rec.result.Derivation = append(rec.result.Derivation, f.rules[0].ID)
}

// fail gives up the current alternative of the topmost choice point and
// switches to the next one. Choice points without further alternatives are
// removed, and failure propagates to the enclosing choice point. fail
// returns false if no choice point is left.
func (rec *recognition) fail() bool {
	for !rec.frames.Empty() {
		f := rec.top()
		rec.pos = f.pos
		rec.result.Derivation = rec.result.Derivation[:f.dlen]
		rec.result.Postfix = rec.result.Postfix[:f.plen]
		f.alt++
		if f.alt < len(f.rules) {
			f.idx = 0
			rec.result.Derivation = append(rec.result.Derivation, f.rules[f.alt].ID)
			return true
		}
		rec.frames.Pop()
	}
	return false
}

// active is true if N is currently being expanded at the input position.
func (rec *recognition) active(N *op.Symbol) bool {
	it := rec.frames.Iterator()
	for it.Next() {
		f := it.Value().(*frame)
		if f.N == N && f.pos == rec.pos {
			return true
		}
	}
	return false
}
