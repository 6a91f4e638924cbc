// Package lexer implements the LexerBuilder of spec.md §4.4: compiling a
// set of named regular definitions into one prioritized DFA with a
// state→pattern map, and driving longest-match tokenization over it.
//
// Grounded on nihei9/vartan's grammar/lexical/compiler.go (per-pattern
// compile-then-union-then-determinize pipeline) and vartan's
// grammar/lexical/entry.go (ordered pattern-priority bookkeeping).
package lexer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/nihei9/vartanlite/internal/automaton"
	"github.com/nihei9/vartanlite/internal/regexast"
	"github.com/nihei9/vartanlite/internal/specerr"
)

// Definition is one named regular definition; the order of the slice is
// priority (earlier entries win ties), per spec.md §4.4 and §6.
type Definition struct {
	Name  string
	Regex string
}

// Lexer is the unified, prioritized DFA produced by Build, plus the
// bookkeeping needed for longest-match tokenization.
type Lexer struct {
	dfa          *automaton.Automaton
	acceptName   map[string]string // state -> winning pattern name
	priorityRank map[string]int    // pattern name -> declaration order
}

// Build compiles an ordered list of (name, regex) definitions into one
// prioritized DFA, per spec.md §4.4:
//
//  1. for each entry, RegexTree -> DirectDFA -> minimize, then rename every
//     state by prefixing with "name_", recording state -> name for every
//     accepting state;
//  2. fold all per-pattern DFAs with automaton.Union (left-associative);
//  3. determinize the result with back-mapping;
//  4. for each determinized state, resolve the winning pattern as the
//     first declared name reachable through an accepting original in its
//     back-mapped set; states with no reachable accepting original are
//     non-accepting.
func Build(defs []Definition) (*Lexer, error) {
	if len(defs) == 0 {
		return nil, specerr.ErrNoDefinitions
	}

	priorityRank := map[string]int{}
	var combined *automaton.Automaton
	// accByOriginalState maps a prefixed per-pattern state name to the
	// pattern name that accepts there, across every compiled pattern.
	accByOriginalState := map[string]string{}

	for i, def := range defs {
		if _, dup := priorityRank[def.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate definition name %q", specerr.ErrInvalidDefinition, def.Name)
		}
		priorityRank[def.Name] = i

		tree, err := regexast.Parse(def.Regex)
		if err != nil {
			return nil, fmt.Errorf("definition %q: %w", def.Name, err)
		}
		raw := automaton.DirectDFA(tree)
		min := automaton.Minimize(raw)
		renamed := renameStates(min, def.Name+"_")

		for s := range renamed.Finals {
			accByOriginalState[s] = def.Name
		}

		if combined == nil {
			combined = renamed
		} else {
			combined = automaton.Union(combined, renamed)
		}
	}

	det := automaton.Determinize(combined)

	acceptName := map[string]string{}
	for state, original := range det.BackMap {
		best := ""
		bestRank := -1
		for origState := range original {
			name, ok := accByOriginalState[origState]
			if !ok {
				continue
			}
			if best == "" || priorityRank[name] < bestRank {
				best = name
				bestRank = priorityRank[name]
			}
		}
		if best != "" {
			acceptName[state] = best
		}
	}

	return &Lexer{dfa: det.DFA, acceptName: acceptName, priorityRank: priorityRank}, nil
}

func renameStates(a *automaton.Automaton, prefix string) *automaton.Automaton {
	rename := func(s string) string { return prefix + s }
	out := automaton.New(rename(a.Initial))
	for s := range a.States {
		out.States[rename(s)] = struct{}{}
		out.Trans[rename(s)] = map[byte]map[string]struct{}{}
		out.Eps[rename(s)] = map[string]struct{}{}
	}
	for sym := range a.Alphabet {
		out.Alphabet[sym] = struct{}{}
	}
	for from, bySym := range a.Trans {
		for sym, dests := range bySym {
			for to := range dests {
				out.AddTransition(rename(from), sym, rename(to))
			}
		}
	}
	for from, tos := range a.Eps {
		for to := range tos {
			out.AddEpsilon(rename(from), rename(to))
		}
	}
	for f := range a.Finals {
		out.SetFinal(rename(f))
	}
	return out
}

// Token is the result of tokenizing one lexeme: (lexeme, tag), enriched
// with the source line it was found on (supplement from
// original_source/src/analisador_lexico.py; zero when a token stream is
// synthesized directly or read back from a token file). The line is not
// passed on to the parser: SyntaxError positions are token indices.
type Token struct {
	Lexeme string
	Tag    string
	Line   int
}

// ErrorTag is the tag emitted for a lexeme the unified DFA does not fully
// accept, per spec.md §4.4/§7 (a LexicalError: recorded, scanning
// continues).
const ErrorTag = "error!"

// Tokenize performs longest-match over the unified DFA from its single
// start state, per spec.md §4.4: scan characters, advance the current
// state via the (at most one) transition, and at each accepting state
// record the position and associated pattern name; break on the first
// missing transition. If the longest accepting position equals the last
// character of word, emits (word, pattern); otherwise (word, "error!").
func (l *Lexer) Tokenize(word string) Token {
	state := l.dfa.Initial
	longest := -1
	longestTag := ""
	for i := 0; i < len(word); i++ {
		next, ok := l.dfa.Step(state, word[i])
		if !ok {
			break
		}
		state = next
		if tag, accepting := l.acceptName[state]; accepting {
			longest = i
			longestTag = tag
		}
	}
	if longest == len(word)-1 {
		return Token{Lexeme: word, Tag: longestTag}
	}
	return Token{Lexeme: word, Tag: ErrorTag}
}

// Scan reads src as lines, skipping blank lines and lines whose first
// non-space character is '#', splits each remaining line on whitespace,
// and tokenizes every resulting lexeme, per spec.md §4.4's scanner driver.
func (l *Lexer) Scan(src io.Reader) ([]Token, error) {
	var tokens []Token
	sc := bufio.NewScanner(src)
	line := 0
	for sc.Scan() {
		line++
		raw := sc.Text()
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		for _, lexeme := range strings.Fields(trimmed) {
			tok := l.Tokenize(lexeme)
			tok.Line = line
			tokens = append(tokens, tok)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}
