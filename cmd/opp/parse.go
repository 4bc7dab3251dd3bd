package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/opgo/op/opp"
	"github.com/npillmayer/opgo/op/scanner"
	"github.com/npillmayer/opgo/op/scanner/lexmach"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	steps *bool
	tree  *bool
	rd    *bool
	lexer *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <input>...",
		Short:   "Parse input strings",
		Example: `  opp parse --steps --tree '!a+b*c!'`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runParse,
	}
	parseFlags.steps = cmd.Flags().BoolP("steps", "s", false, "print the steps of the parser")
	parseFlags.tree = cmd.Flags().BoolP("tree", "t", false, "print the derivation tree")
	parseFlags.rd = cmd.Flags().Bool("rd", false, "compare with the recursive-descent recognizer")
	parseFlags.lexer = cmd.Flags().BoolP("lexer", "l", false,
		"tokenize with a lexer generated from the terminals, instead of single runes")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	s, err := newSession(*rootFlags.grammar, *rootFlags.functions)
	if err != nil {
		return err
	}
	failed := 0
	for _, input := range args {
		if !s.parse(input, *parseFlags.steps, *parseFlags.tree, *parseFlags.rd, *parseFlags.lexer) {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs rejected", failed, len(args))
	}
	return nil
}

// tokenizer creates a scanner for input, either splitting it into runes or
// using a lexer generated from the grammar's terminals.
func (s *session) tokenizer(input string, lexer bool) (scanner.Tokenizer, error) {
	if !lexer {
		return scanner.RuneTokenizer("input", strings.NewReader(input), s.G.TokenTypeOf), nil
	}
	var names []string
	for _, A := range s.G.Terminals()[2:] { // skip reserved terminals
		names = append(names, A.Name)
	}
	LM, err := lexmach.ForTerminals(names, s.G.TokenTypeOf)
	if err != nil {
		return nil, err
	}
	scan, err := LM.Scanner(input)
	if err != nil {
		return nil, err
	}
	return scan, nil
}

// parse parses a single input and reports the result.
func (s *session) parse(input string, steps, tree, withRD, lexer bool) bool {
	scan, err := s.tokenizer(input, lexer)
	if err != nil {
		pterm.Error.Println(err.Error())
		return false
	}
	result, err := s.parser.Parse(scan)
	if steps && result != nil {
		pterm.DefaultTable.WithHasHeader().WithData(stepsTable(result.Steps)).Render()
	}
	if err != nil {
		var rej *opp.RejectError
		if errors.As(err, &rej) {
			pterm.Error.Printf("%q rejected at step %d, position %s: %v\n", input, rej.Step, rej.Span, rej.Err)
		} else {
			pterm.Error.Printf("%q: %v\n", input, err)
		}
		if withRD {
			s.compare(input, nil)
		}
		return false
	}
	pterm.Success.Printf("%q accepted\n", input)
	pterm.Info.Printf("reductions %s\n", joinInts(result.Derivation))
	pterm.Info.Printf("leftmost   %s\n", joinInts(result.Leftmost()))
	pterm.Info.Printf("postfix    %v\n", result.Postfix)
	if tree {
		pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(treeList(result.Tree))).Render()
	}
	if withRD {
		return s.compare(input, result)
	}
	return true
}

// compare checks that the recursive-descent recognizer agrees with a parse.
// result is nil for rejected input.
func (s *session) compare(input string, result *opp.Result) bool {
	rdResult, err := s.rd.ParseString(input)
	switch {
	case err != nil && result == nil:
		pterm.Info.Printf("recursive descent rejects %q as well\n", input)
		return true
	case err != nil:
		pterm.Warning.Printf("recursive descent rejects %q: %v\n", input, err)
		return false
	case result == nil:
		pterm.Warning.Printf("recursive descent accepts %q, derivation %s\n", input,
			joinInts(rdResult.Derivation))
		return false
	}
	same := joinInts(rdResult.Derivation) == joinInts(result.Leftmost()) &&
		fmt.Sprint(rdResult.Postfix) == fmt.Sprint(result.Postfix)
	if same {
		pterm.Success.Println("recursive descent yields the same derivation")
	} else {
		pterm.Warning.Printf("recursive descent derivation %s, postfix %v\n",
			joinInts(rdResult.Derivation), rdResult.Postfix)
	}
	return same
}
