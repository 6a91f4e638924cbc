package lexer_test

import (
	"strings"
	"testing"

	"github.com/nihei9/vartanlite/internal/lexer"
)

func TestBuild_EmptyDefinitions(t *testing.T) {
	if _, err := lexer.Build(nil); err == nil {
		t.Fatalf("expected an error building a lexer with no definitions")
	}
}

func TestBuild_DuplicateName(t *testing.T) {
	defs := []lexer.Definition{
		{Name: "id", Regex: "[a-z]+"},
		{Name: "id", Regex: "[0-9]+"},
	}
	if _, err := lexer.Build(defs); err == nil {
		t.Fatalf("expected an error for a duplicate definition name")
	}
}

// TestTokenize_IDAndNum mirrors scenario S1: "id"/"num" definitions
// tokenizing a1, 0, teste2, 21.
func TestTokenize_IDAndNum(t *testing.T) {
	defs := []lexer.Definition{
		{Name: "id", Regex: "[a-zA-Z](([a-zA-Z]|[0-9])*)"},
		{Name: "num", Regex: "[0-9]+"},
	}
	l, err := lexer.Build(defs)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	tests := []struct {
		word string
		tag  string
	}{
		{"a1", "id"},
		{"0", "num"},
		{"teste2", "id"},
		{"21", "num"},
	}
	for _, tt := range tests {
		got := l.Tokenize(tt.word)
		if got.Tag != tt.tag {
			t.Errorf("Tokenize(%q) = tag %q, want %q", tt.word, got.Tag, tt.tag)
		}
	}
}

// TestTokenize_PriorityByDeclarationOrder mirrors scenario S2: two
// overlapping patterns "er1"/"er2" resolved by declaration order.
func TestTokenize_PriorityByDeclarationOrder(t *testing.T) {
	defs := []lexer.Definition{
		{Name: "er1", Regex: "a+b*"},
		{Name: "er2", Regex: "a*b+"},
	}
	l, err := lexer.Build(defs)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	// "aa" matches only er1 (a+b*).
	if got := l.Tokenize("aa"); got.Tag != "er1" {
		t.Errorf("Tokenize(\"aa\") = %q, want er1", got.Tag)
	}
	// "ab" matches both patterns in full: er1 wins by declaration order.
	if got := l.Tokenize("ab"); got.Tag != "er1" {
		t.Errorf("Tokenize(\"ab\") = %q, want er1", got.Tag)
	}
	// "bbbba" matches neither pattern to completion (trailing 'a' after
	// b's breaks both a+b* and a*b+): expect the error tag.
	if got := l.Tokenize("bbbba"); got.Tag != lexer.ErrorTag {
		t.Errorf("Tokenize(\"bbbba\") = %q, want error tag", got.Tag)
	}
}

func TestTokenize_Unrecognized(t *testing.T) {
	defs := []lexer.Definition{
		{Name: "id", Regex: "[a-z]+"},
	}
	l, err := lexer.Build(defs)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	got := l.Tokenize("@abc")
	if got.Tag != lexer.ErrorTag {
		t.Errorf("Tokenize(\"@abc\") = %q, want error tag", got.Tag)
	}
}

func TestScan_SkipsBlankAndCommentLines(t *testing.T) {
	defs := []lexer.Definition{
		{Name: "id", Regex: "[a-z]+"},
	}
	l, err := lexer.Build(defs)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	src := "# a comment\n\nabc def\n"
	tokens, err := l.Scan(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tokens))
	}
	if tokens[0].Lexeme != "abc" || tokens[1].Lexeme != "def" {
		t.Errorf("unexpected lexemes: %+v", tokens)
	}
	if tokens[0].Line != 3 || tokens[1].Line != 3 {
		t.Errorf("expected both tokens on line 3, got %+v", tokens)
	}
}
