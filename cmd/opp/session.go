package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/opgo/op"
	"github.com/npillmayer/opgo/op/grammars"
	"github.com/npillmayer/opgo/op/opp"
	"github.com/npillmayer/opgo/op/rd"
	"github.com/npillmayer/opgo/runtime"
)

// session bundles a grammar with its tables and the machinery to parse and
// evaluate input.
type session struct {
	G       *op.Grammar
	gen     *op.TableGenerator
	parser  *opp.Parser
	rd      *rd.Recognizer
	machine *runtime.Machine
}

// loadGrammar creates a predefined grammar or reads one from an EBNF file.
// Grammars from files get the arithmetic overrides; entries for operators
// the grammar lacks are skipped.
func loadGrammar(name string) (*op.Grammar, *op.Overrides, error) {
	for _, predef := range grammars.Names() {
		if name == predef {
			return grammars.ByName(name)
		}
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("grammar %q is neither predefined nor a readable file: %w", name, err)
	}
	defer f.Close()
	gname := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	g, err := grammars.FromEBNF(gname, f)
	if err != nil {
		return nil, nil, err
	}
	return g, op.ArithmeticOverrides(), nil
}

// newSession loads a grammar and creates its tables. If functions is set,
// the parser uses precedence functions, otherwise the matrix.
func newSession(grammar string, functions bool) (*session, error) {
	g, ov, err := loadGrammar(grammar)
	if err != nil {
		return nil, err
	}
	tracer().Infof("grammar %s, hash %s", g.Name, g.Hash())
	g.Dump()
	gen := op.NewTableGenerator(op.Analysis(g), op.WithOverrides(ov), op.WithFunctions(functions))
	if err := gen.CreateTables(); err != nil {
		return nil, err
	}
	for _, c := range gen.Matrix().Conflicts() {
		tracer().Infof("conflict %s", c)
	}
	s := &session{
		G:       g,
		gen:     gen,
		parser:  opp.NewParser(g, gen.Relations()),
		rd:      rd.NewRecognizer(g),
		machine: runtime.NewMachine(),
	}
	return s, nil
}

// bind parses assignments of the form name=value into the machine's globals.
func (s *session) bind(assignments map[string]string) error {
	for name, value := range assignments {
		var v float64
		if _, err := fmt.Sscanf(value, "%g", &v); err != nil {
			return fmt.Errorf("cannot bind %s to %q: %w", name, value, err)
		}
		s.machine.Globals.Bind(name, v)
	}
	return nil
}

// eval parses an input string and evaluates its postfix stream.
func (s *session) eval(input string) (float64, *opp.Result, error) {
	result, err := s.parser.ParseString(input)
	if err != nil {
		return 0, result, err
	}
	v, err := s.machine.Eval(result.Postfix)
	return v, result, err
}
