package spec

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/nihei9/vartanlite/internal/lexer"
)

// unicodeOperatorGlyphs maps distinguished internal renderings of operators
// (as some lexer definitions choose to spell multi-character operators
// using single Unicode code points internally, e.g. during regex
// authoring) back to their canonical ASCII spellings, per spec.md §6.
var unicodeOperatorGlyphs = map[string]string{
	"⊕": "+",
	"⊖": "-",
	"⊗": "*",
	"⊘": "/",
	"≥": ">=",
	"≤": "<=",
	"≡": "==",
	"≠": "!=",
	"≔": ":=",
}

// normalizeLexeme rewrites any Unicode operator glyph in lexeme back to its
// canonical ASCII spelling.
func normalizeLexeme(lexeme string) string {
	for glyph, ascii := range unicodeOperatorGlyphs {
		lexeme = strings.ReplaceAll(lexeme, glyph, ascii)
	}
	return lexeme
}

// WriteTokens writes tokens to w as one "<lexeme, tag>" per line, in
// source order, normalizing any internal Unicode operator glyph in each
// lexeme back to its canonical ASCII spelling on the way out.
func WriteTokens(w io.Writer, tokens []lexer.Token) error {
	bw := bufio.NewWriter(w)
	for _, tok := range tokens {
		if _, err := fmt.Fprintf(bw, "<%s, %s>\n", normalizeLexeme(tok.Lexeme), tok.Tag); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadTokens parses a token file: one "<lexeme, tag>" per line, leading/
// trailing whitespace around the comma permitted, '#'-prefixed lines
// ignored.
func ReadTokens(r io.Reader) ([]lexer.Token, error) {
	var tokens []lexer.Token
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		raw := strings.TrimSpace(sc.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		if !strings.HasPrefix(raw, "<") || !strings.HasSuffix(raw, ">") {
			return nil, fmt.Errorf("malformed token line: %q", raw)
		}
		inner := raw[1 : len(raw)-1]
		idx := strings.LastIndex(inner, ",")
		if idx < 0 {
			return nil, fmt.Errorf("malformed token line: %q", raw)
		}
		lexeme := strings.TrimSpace(inner[:idx])
		tag := strings.TrimSpace(inner[idx+1:])
		tokens = append(tokens, lexer.Token{Lexeme: lexeme, Tag: tag})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}
