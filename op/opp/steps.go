package opp

import (
	"fmt"
	"strings"

	"github.com/npillmayer/opgo/op"
)

// Action is an action taken by the parser in a single step.
type Action int8

// Parser actions.
const (
	Shift Action = iota
	Reduce
	Accept
	Reject
)

func (a Action) String() string {
	switch a {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	}
	return "reject"
}

// Step records a single step of the parser: the stack before the step, the
// precedence relation consulted and the action taken. For reductions, Rule is
// the rule reduced, and Chain holds the chain rules applied implicitly,
// innermost first.
type Step struct {
	Stack     []*op.Symbol
	Lookahead *op.Symbol
	Lexeme    string
	Relation  op.Relation
	Action    Action
	Rule      *op.Rule
	Chain     []*op.Rule
}

// StackString returns the stack contents, bottom first.
func (s Step) StackString() string {
	syms := make([]string, len(s.Stack))
	for i, A := range s.Stack {
		syms[i] = A.Name
	}
	return strings.Join(syms, " ")
}

// ActionString describes the action, including the rules applied.
func (s Step) ActionString() string {
	if s.Action != Reduce || s.Rule == nil {
		return s.Action.String()
	}
	var ids []string
	for _, r := range s.Chain {
		ids = append(ids, fmt.Sprintf("%d", r.ID))
	}
	ids = append(ids, fmt.Sprintf("%d", s.Rule.ID))
	return fmt.Sprintf("reduce %s  (%s)", s.Rule.LHS, strings.Join(ids, " "))
}

func (s Step) String() string {
	rel := s.Relation.String()
	if rel == "" {
		rel = "?"
	}
	return fmt.Sprintf("[%s] %s %s ⇒ %s", s.StackString(), rel, s.Lookahead, s.ActionString())
}
