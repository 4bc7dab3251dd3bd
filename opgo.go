package opgo

import "fmt"

// --- Tokens ----------------------------------------------------------------

// TokType is a category type for a Token. For operator-precedence parsing,
// token types are the serial values of a grammar's terminals.
type TokType int

// TokTypeStringer is a type to be provided by a scanner/grammar combination to be able
// to print out token categories.
type TokTypeStringer func(TokType) string

// Tokens represent input tokens. They are produced by a scanner and
// reflect terminals of an operator grammar.
//
// An example would be a token for the multiplication operator:
//
//    TokType = 9           // serial value of terminal '*' in the grammar
//    Lexeme  = "*"         // lexeme how it appeared in the input stream
//    Value   = nil         // operators carry no value
//    Span    = 3…4         // occured at position 3 in the input stream
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. Every
// node of a derivation tree tracks which input positions it covers.
// A span denotes a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is true for the zero span.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering both s and other.
// A null span is neutral.
func (s Span) Extend(other Span) Span {
	if s.IsNull() {
		return other
	}
	if other.IsNull() {
		return s
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
