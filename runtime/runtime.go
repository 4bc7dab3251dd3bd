/*
Package runtime implements a stack machine for evaluating the postfix
streams (POLIZ) emitted by operator-precedence parsing.

Scopes and Symbol Tables

Variables are bound to numbers in scopes. Scopes link to a parent scope, so
a machine's global bindings may be shadowed for a single evaluation.

Stack Machine

A postfix stream is evaluated left to right. Operands are pushed onto an
operand stack; an operator pops its arguments and pushes its result.
Operands are variables bound in a scope or numeric literals.

The machine evaluates a stream exactly as given. Note that the operator
grammars of package grammars relate operators of the same group by '=', so
the parser groups chains of them from the right: "!d-c-b!" yields the
stream "d c b - -", i.e. d-(c-b). Use parentheses for left grouping.

    m := runtime.NewMachine()
    m.Globals.Bind("a", 2)
    m.Globals.Bind("b", 3)
    v, err := m.Eval([]string{"a", "b", "c", "*", "+"}) // error: c is undefined

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package runtime

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'opgo.runtime'.
func tracer() tracing.Trace {
	return tracing.Select("opgo.runtime")
}

// Evaluation errors.
var (
	ErrUndefined      = errors.New("undefined variable")
	ErrUnknownToken   = errors.New("unknown token")
	ErrStackUnderflow = errors.New("operand stack underflow")
	ErrResidue        = errors.New("operands left on stack")
	ErrDivisionByZero = errors.New("division by zero")
)

// Operator is an operation of the stack machine, taking Arity operands.
type Operator struct {
	Arity int
	Apply func(args []float64) (float64, error)
}

// Machine is a stack machine. Its operand stack is private to a single
// evaluation, thus a machine may evaluate streams concurrently as long as
// bindings are not changed.
type Machine struct {
	Globals   *Scope
	operators map[string]Operator
}

// Option configures a machine.
type Option func(m *Machine)

// WithOperator adds an operator or replaces a predefined one.
func WithOperator(token string, operator Operator) Option {
	return func(m *Machine) {
		m.operators[token] = operator
	}
}

// NewMachine creates a stack machine with operators + - * / and an empty
// global scope.
func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		Globals: NewScope("globals", nil),
		operators: map[string]Operator{
			"+": binary(func(x, y float64) (float64, error) { return x + y, nil }),
			"-": binary(func(x, y float64) (float64, error) { return x - y, nil }),
			"*": binary(func(x, y float64) (float64, error) { return x * y, nil }),
			"/": binary(func(x, y float64) (float64, error) {
				if y == 0 {
					return 0, ErrDivisionByZero
				}
				return x / y, nil
			}),
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func binary(f func(x, y float64) (float64, error)) Operator {
	return Operator{Arity: 2, Apply: func(args []float64) (float64, error) {
		return f(args[0], args[1])
	}}
}

// Eval evaluates a postfix stream with the global bindings.
func (m *Machine) Eval(postfix []string) (float64, error) {
	return m.EvalIn(m.Globals, postfix)
}

// EvalIn evaluates a postfix stream, resolving variables in scope and its
// parents. The stream must leave exactly one operand on the stack.
func (m *Machine) EvalIn(scope *Scope, postfix []string) (float64, error) {
	stack := arraystack.New()
	for i, token := range postfix {
		if operator, ok := m.operators[token]; ok {
			if stack.Size() < operator.Arity {
				return 0, m.fail(i, token, ErrStackUnderflow)
			}
			args := make([]float64, operator.Arity)
			for j := operator.Arity - 1; j >= 0; j-- {
				x, _ := stack.Pop()
				args[j] = x.(float64)
			}
			v, err := operator.Apply(args)
			if err != nil {
				return 0, m.fail(i, token, err)
			}
			tracer().Debugf("%s %v = %g", token, args, v)
			stack.Push(v)
			continue
		}
		v, err := m.operand(scope, token)
		if err != nil {
			return 0, m.fail(i, token, err)
		}
		stack.Push(v)
	}
	if stack.Size() != 1 {
		if stack.Empty() {
			return 0, fmt.Errorf("empty postfix stream: %w", ErrStackUnderflow)
		}
		return 0, fmt.Errorf("%d %w", stack.Size(), ErrResidue)
	}
	v, _ := stack.Pop()
	return v.(float64), nil
}

// operand resolves a variable or parses a numeric literal.
func (m *Machine) operand(scope *Scope, token string) (float64, error) {
	if tag, _ := scope.ResolveTag(token); tag != nil {
		if !tag.IsDefined() {
			return 0, ErrUndefined
		}
		return tag.Value, nil
	}
	if v, err := strconv.ParseFloat(token, 64); err == nil {
		return v, nil
	}
	if isName(token) {
		return 0, ErrUndefined
	}
	return 0, ErrUnknownToken
}

func (m *Machine) fail(pos int, token string, err error) error {
	tracer().Infof("evaluation failed at #%d %q: %v", pos, token, err)
	return fmt.Errorf("token #%d %q: %w", pos, token, err)
}

func isName(token string) bool {
	for i, r := range token {
		if !(r == '_' || r == '\'' && i > 0 || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' ||
			i > 0 && '0' <= r && r <= '9') {
			return false
		}
	}
	return token != ""
}
