/*
Package scanner defines an interface for scanners to be used with the parsers
of package opgo.

Scanners deliver tokens whose token types are the serial values of a grammar's
terminals. End of input is signalled by the token type of the boundary
terminal '#', input which does not map to a terminal by the token type of
terminal 'ε'. Scanners need a Lookup to map lexemes to terminals; usually
this will be the grammar's TokenTypeOf method.

Two default scanner implementations are provided: (1) a thin wrapper over the
Go std lib 'text/scanner', either splitting input into Go-like tokens or into
single runes, and (2) an adapter for lexmachine, living in sub-package
`lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"

	"github.com/npillmayer/opgo"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'opgo.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("opgo.scanner")
}

// Token types every grammar reserves.
const (
	EOF     opgo.TokType = 0 // boundary terminal '#'
	Unknown opgo.TokType = 1 // terminal 'ε'
)

// Lookup maps a lexeme to the token type of a terminal.
type Lookup func(lexeme string) (opgo.TokType, bool)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() opgo.Token
	SetErrorHandler(func(error))
}

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer or RuneTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lookup Lookup
	Error  func(error) // error handler
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go
// language. Lexemes are mapped to terminals using lookup.
func GoTokenizer(sourceID string, input io.Reader, lookup Lookup, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{lookup: lookup}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// RuneTokenizer creates a tokenizer which delivers every non-space rune of
// the input as a token of its own.
func RuneTokenizer(sourceID string, input io.Reader, lookup Lookup) *DefaultTokenizer {
	return GoTokenizer(sourceID, input, lookup, SingleRunes(true))
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() opgo.Token {
	r := t.Scan()
	span := opgo.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)}
	if r == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
		return MakeDefaultToken(EOF, "", opgo.Span{})
	}
	lexeme := t.TokenText()
	typ, ok := t.lookup(lexeme)
	if !ok {
		tracer().Debugf("no terminal for %q at %s", lexeme, span)
		typ = Unknown
	}
	return MakeDefaultToken(typ, lexeme, span)
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the Go
// tokenizer as well as the LexMachine scanner.
type DefaultToken struct {
	kind   opgo.TokType
	lexeme string
	Val    interface{}
	span   opgo.Span
}

// MakeDefaultToken creates a token without value.
func MakeDefaultToken(typ opgo.TokType, lexeme string, span opgo.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

// TokType is part of interface opgo.Token.
func (t DefaultToken) TokType() opgo.TokType {
	return t.kind
}

// Value is part of interface opgo.Token.
func (t DefaultToken) Value() interface{} {
	return t.Val
}

// Lexeme is part of interface opgo.Token.
func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

// Span is part of interface opgo.Token.
func (t DefaultToken) Span() opgo.Span {
	return t.span
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("%q%s", t.lexeme, t.span)
}

// --- Scanner options for the default tokenizer -----------------------------

// Option configures a default tokenizer.
type Option func(t *DefaultTokenizer)

// SingleRunes sets or clears mode-flag SingleRunes: deliver every rune as a
// token of its own, instead of identifiers, numbers and strings.
func SingleRunes(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode = 0
		} else {
			t.Mode = scanner.GoTokens
		}
	}
}

// SkipComments sets or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.ScanComments | scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}
