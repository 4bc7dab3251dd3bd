package opp

import (
	"errors"
	"fmt"

	"github.com/npillmayer/opgo"
	"github.com/npillmayer/opgo/op"
	"github.com/npillmayer/schuko/gconf"
)

// Reasons for rejecting an input.
var (
	ErrNoRelation  = errors.New("no precedence relation")
	ErrNoReducible = errors.New("no reducible production")
	ErrIncomplete  = errors.New("incomplete reduction")
	ErrStuck       = errors.New("parser exceeded step limit")
)

// RejectError is returned by the parser for input it does not accept.
type RejectError struct {
	Step      int        // index of the step which failed
	Top       *op.Symbol // topmost terminal on the stack
	Lookahead *op.Symbol // terminal of the lookahead token
	Span      opgo.Span  // input position of the lookahead token
	Err       error      // one of ErrNoRelation, ErrNoReducible, ErrIncomplete, ErrStuck
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("input rejected at step %d, (%s,%s) at %s: %v",
		e.Step, e.Top, e.Lookahead, e.Span, e.Err)
}

// Unwrap returns the reason for the rejection.
func (e *RejectError) Unwrap() error {
	return e.Err
}

// panicOnStuck reads configuration flag panic-on-parser-stuck.
var panicOnStuck = func() bool {
	return gconf.GetBool("panic-on-parser-stuck")
}

func stuck(msg string) {
	tracer().Errorf("%s", msg)
	if panicOnStuck() {
		panic(`Operator-precedence parser is stuck.

Configuration flag panic-on-parser-stuck is set to true. It is aimed at helping
to debug a parser and do a post-mortem of why it got stuck. However, if this is
a production environment and you did not expect this to panic, please unset
panic-on-parser-stuck to its default (false).

` + msg)
	}
}
