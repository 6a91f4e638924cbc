package spec_test

import (
	"strings"
	"testing"

	"github.com/nihei9/vartanlite/internal/lexer"
	"github.com/nihei9/vartanlite/internal/spec"
)

func TestWriteThenReadTokens_RoundTrip(t *testing.T) {
	tokens := []lexer.Token{
		{Lexeme: "x", Tag: "id"},
		{Lexeme: "42", Tag: "num"},
	}
	var buf strings.Builder
	if err := spec.WriteTokens(&buf, tokens); err != nil {
		t.Fatalf("WriteTokens returned error: %v", err)
	}

	got, err := spec.ReadTokens(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("ReadTokens returned error: %v", err)
	}
	if len(got) != 2 || got[0].Lexeme != "x" || got[1].Lexeme != "42" {
		t.Fatalf("round-tripped tokens don't match: %+v", got)
	}
}

func TestWriteTokens_NormalizesUnicodeGlyphs(t *testing.T) {
	tokens := []lexer.Token{{Lexeme: "⊕", Tag: "op"}}
	var buf strings.Builder
	if err := spec.WriteTokens(&buf, tokens); err != nil {
		t.Fatalf("WriteTokens returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "<+, op>") {
		t.Fatalf("expected the Unicode glyph to normalize to '+', got %q", buf.String())
	}
}

func TestReadTokens_MalformedLine(t *testing.T) {
	_, err := spec.ReadTokens(strings.NewReader("not a token line\n"))
	if err == nil {
		t.Fatalf("expected an error for a malformed token line")
	}
}
