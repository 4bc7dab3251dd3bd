/*
Package lexmach provides an adapter to use the lexmachine scanner generator with
the parsers of opgo.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

The easiest way to get a scanner is to generate one from the terminals of a
grammar. Terminals looking like identifiers become keywords, all other
terminals become literals. Whitespace is skipped, and every other character
not matching a terminal is delivered as terminal 'ε'.

	names := []string{}
	for _, t := range g.Terminals()[2:] {
	    names = append(names, t.Name)
	}
	LM, err := lexmach.ForTerminals(names, g.TokenTypeOf)

Clients who need more liberty may initialize lexmachine themselves, providing
regular expressions for token classes, and use NewLMAdapter.

A scanner is instantiated for each concrete input sequence.
The scanner implements the scanner.Tokenizer interface.

	scan, err := LM.Scanner("!a+b*c!")
	if err != nil {
		// do error handling
	}

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach

import (
	"regexp"
	"strings"

	"github.com/npillmayer/opgo"
	"github.com/npillmayer/opgo/op/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'opgo.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("opgo.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("if", "for", …) and a
// map for translating token strings to their token types. init is called
// before literals and keywords are added; it is the place to add patterns
// for token classes.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string,
	tokenIds map[string]opgo.TokType) (*LMAdapter, error) {
	//
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	if init != nil {
		init(adapter.Lexer)
	}
	addTerminals(adapter.Lexer, literals, keywords, tokenIds)
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ForTerminals creates an adapter for a list of terminal names. Lexemes which
// do not match any terminal are delivered as scanner.Unknown. Token types are
// found using lookup.
func ForTerminals(terminals []string, lookup scanner.Lookup) (*LMAdapter, error) {
	var literals, keywords []string
	tokenIds := make(map[string]opgo.TokType, len(terminals))
	for _, name := range terminals {
		tt, ok := lookup(name)
		if !ok {
			continue
		}
		tokenIds[name] = tt
		if identifier.MatchString(name) {
			keywords = append(keywords, name)
		} else {
			literals = append(literals, name)
		}
	}
	adapter := &LMAdapter{Lexer: lexmachine.NewLexer()}
	adapter.Lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	addTerminals(adapter.Lexer, literals, keywords, tokenIds)
	adapter.Lexer.Add([]byte(`.`), MakeToken("ε", scanner.Unknown)) // must come last
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	tracer().Debugf("lexmachine DFA for %d literals and %d keywords", len(literals), len(keywords))
	return adapter, nil
}

func addTerminals(lexer *lexmachine.Lexer, literals, keywords []string, tokenIds map[string]opgo.TokType) {
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		lexer.Add([]byte(name), MakeToken(name, tokenIds[name]))
	}
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{s, logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// NextToken is part of the Tokenizer interface.
func (lms *LMScanner) NextToken() opgo.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return scanner.MakeDefaultToken(scanner.EOF, "", opgo.Span{})
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("token %d | %q", token.Type, token.Lexeme)
	return scanner.MakeDefaultToken(
		opgo.TokType(token.Type),
		string(token.Lexeme),
		opgo.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
	)
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id opgo.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(id), string(m.Bytes), m), nil
	}
}
