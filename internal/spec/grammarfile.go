package spec

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/nihei9/vartanlite/internal/grammar"
	"github.com/nihei9/vartanlite/internal/specerr"
)

// epsilonGlyph is the literal ε token that, alone in a body, denotes an
// empty production (spec.md §6).
const epsilonGlyph = "ε"

// ReadGrammar parses a grammar file: one production per line, '#' comment
// and blank-line handling as for definitions; production format
// "<Head> ::= Body" (the head may be written with or without angle
// brackets); body atoms are whitespace-separated, "<X>" denotes a
// non-terminal X, any other run of non-space characters denotes a
// terminal, and a body consisting solely of the literal ε glyph denotes an
// empty production. A terminal containing whitespace or angle brackets may
// be quoted with quoteDelim (e.g. `"`). The first head defines the start
// symbol.
func ReadGrammar(r io.Reader, quoteDelim string) (*grammar.Grammar, error) {
	if quoteDelim == "" {
		quoteDelim = `"`
	}
	b := grammar.NewBuilder()

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}

		idx := strings.Index(raw, "::=")
		if idx < 0 {
			return nil, &specerr.InvalidProduction{Line: line, Cause: fmt.Errorf("missing '::='")}
		}
		headStr := strings.TrimSpace(raw[:idx])
		bodyStr := strings.TrimSpace(raw[idx+3:])
		if headStr == "" {
			return nil, &specerr.InvalidProduction{Line: line, Cause: fmt.Errorf("empty head")}
		}

		head := grammar.NonTerminal(stripAngleBrackets(headStr))

		atoms, err := splitAtoms(bodyStr, quoteDelim)
		if err != nil {
			return nil, &specerr.InvalidProduction{Line: line, Cause: err}
		}

		var body []grammar.Symbol
		if len(atoms) == 1 && atoms[0] == epsilonGlyph {
			body = nil
		} else {
			for _, a := range atoms {
				if a == "" {
					return nil, &specerr.InvalidProduction{Line: line, Cause: fmt.Errorf("empty atom in body")}
				}
				if strings.HasPrefix(a, "<") && strings.HasSuffix(a, ">") && len(a) >= 2 {
					body = append(body, grammar.NonTerminal(a[1:len(a)-1]))
				} else {
					body = append(body, grammar.Terminal(a))
				}
			}
		}

		b.AddProduction(head, body)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return b.Build()
}

func stripAngleBrackets(s string) string {
	if strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">") && len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}

// splitAtoms splits body on whitespace, honoring quoteDelim-delimited runs
// (which may themselves contain whitespace or angle brackets) as a single
// atom.
func splitAtoms(body string, quoteDelim string) ([]string, error) {
	var atoms []string
	i := 0
	for i < len(body) {
		for i < len(body) && isSpace(body[i]) {
			i++
		}
		if i >= len(body) {
			break
		}
		if strings.HasPrefix(body[i:], quoteDelim) {
			j := i + len(quoteDelim)
			end := strings.Index(body[j:], quoteDelim)
			if end < 0 {
				return nil, fmt.Errorf("unterminated quoted atom starting at %d", i)
			}
			atoms = append(atoms, body[j:j+end])
			i = j + end + len(quoteDelim)
			continue
		}
		j := i
		for j < len(body) && !isSpace(body[j]) {
			j++
		}
		atoms = append(atoms, body[i:j])
		i = j
	}
	return atoms, nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}
