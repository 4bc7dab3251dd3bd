package scanner

import (
	"strings"
	"testing"

	"github.com/npillmayer/opgo"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var terminals = map[string]opgo.TokType{
	"!": 2, "+": 3, "*": 4, "a": 5, "b": 6, "(": 7, ")": 8, "id": 9,
}

func lookup(lexeme string) (opgo.TokType, bool) {
	tt, ok := terminals[lexeme]
	return tt, ok
}

func collect(t Tokenizer) []opgo.Token {
	var tokens []opgo.Token
	for tok := t.NextToken(); tok.TokType() != EOF; tok = t.NextToken() {
		tokens = append(tokens, tok)
	}
	return tokens
}

func TestRuneTokenizer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.scanner")
	defer teardown()
	//
	input := "!a + b*(ab)!"
	tokens := collect(RuneTokenizer("test", strings.NewReader(input), lookup))
	expected := []opgo.TokType{2, 5, 3, 6, 4, 7, 5, 6, 8, 2}
	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, have %d", len(expected), len(tokens))
	}
	for i, tok := range tokens {
		if tok.TokType() != expected[i] {
			t.Errorf("Expected token #%d to be of type %d, is %d (%q)", i, expected[i],
				tok.TokType(), tok.Lexeme())
		}
	}
	if tokens[2].Span() != (opgo.Span{3, 4}) {
		t.Errorf("Expected '+' to span (3…4), is %s", tokens[2].Span())
	}
}

func TestUnknownInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.scanner")
	defer teardown()
	//
	tokens := collect(RuneTokenizer("test", strings.NewReader("a?b"), lookup))
	if len(tokens) != 3 || tokens[1].TokType() != Unknown {
		t.Errorf("Expected '?' to be delivered as unknown terminal, have %v", tokens)
	}
}

func TestGoTokenizer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opgo.scanner")
	defer teardown()
	//
	input := "id + (id * a) // comment"
	tokens := collect(GoTokenizer("test", strings.NewReader(input), lookup, SkipComments(true)))
	if len(tokens) != 7 {
		t.Fatalf("Expected 7 tokens, have %d: %v", len(tokens), tokens)
	}
	if tokens[0].TokType() != 9 || tokens[0].Lexeme() != "id" {
		t.Errorf("Expected first token to be 'id', is %q", tokens[0].Lexeme())
	}
}
