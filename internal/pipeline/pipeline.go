// Package pipeline orchestrates the two halves of spec.md §2's component
// 11: definitions -> lexer -> tokens on one side, grammar -> parser on the
// other, then tokenize source -> feed parser -> report.
//
// Grounded on nihei9/vartan's cmd/vartan/compile.go and cmd/vartan/parse.go
// command-wiring idiom (read input, build, return the first error), with
// each pipeline run tagged by a google/uuid correlation id (dekarrin-tunaq
// is the pack repo that imports google/uuid) so diagnostics from
// concurrent or successive runs piped through long-lived tooling don't
// interleave ambiguously.
package pipeline

import (
	"io"

	"github.com/google/uuid"

	"github.com/nihei9/vartanlite/internal/driver"
	"github.com/nihei9/vartanlite/internal/grammar"
	"github.com/nihei9/vartanlite/internal/grammar/slr"
	"github.com/nihei9/vartanlite/internal/lexer"
	"github.com/nihei9/vartanlite/internal/logging"
	"github.com/nihei9/vartanlite/internal/spec"
	"github.com/nihei9/vartanlite/internal/symtab"
)

// RunID is a correlation id attached to log lines. BuildLexer, BuildParser
// and RunParser each draw a fresh one per call; RunParser's is also
// returned in its Report.
type RunID string

func newRunID() RunID {
	return RunID(uuid.NewString())
}

// BuildLexer runs §4.1-4.4: read a regular-definition file and compile it
// into a Lexer.
func BuildLexer(defsFile io.Reader) (*lexer.Lexer, error) {
	run := newRunID()
	defs, err := spec.ReadDefinitions(defsFile)
	if err != nil {
		return nil, err
	}
	logging.Event("lexer.definitions.read", "run", run, "count", len(defs))

	l, err := lexer.Build(defs)
	if err != nil {
		return nil, err
	}
	logging.Event("lexer.built", "run", run)
	return l, nil
}

// BuiltParser bundles the SLR table with the symbol table's view of which
// terminals are reserved words, so RunParser can fold identifier-like
// lexemes correctly.
type BuiltParser struct {
	Table         *slr.Table
	Grammar       *grammar.Grammar
	ReservedWords map[string]struct{}
}

// BuildParser runs §4.5-4.6: read a grammar file and compile it into an
// SLR table. Conflicts are logged but do not abort construction, per
// spec.md §7.
func BuildParser(grammarFile io.Reader, quoteDelim string) (*BuiltParser, error) {
	run := newRunID()
	g, err := spec.ReadGrammar(grammarFile, quoteDelim)
	if err != nil {
		return nil, err
	}
	logging.Event("parser.grammar.read", "run", run,
		"productions", len(g.Productions), "start", g.Start.Name)

	t, err := slr.Build(g)
	if err != nil {
		return nil, err
	}
	for _, c := range t.Conflicts {
		logging.Event("parser.conflict", "run", run, "state", c.State, "symbol", c.Symbol,
			"previous", c.Previous, "new", c.New)
	}
	logging.Event("parser.built", "run", run, "states", len(t.Collection.States), "conflicts", len(t.Conflicts))

	reserved := map[string]struct{}{}
	for term := range g.Terminals {
		if isWordLike(term.Name) {
			reserved[term.Name] = struct{}{}
		}
	}

	return &BuiltParser{Table: t, Grammar: g, ReservedWords: reserved}, nil
}

// isWordLike reports whether a terminal's name looks like an identifier
// lexeme (letters, digits, underscore, not starting with a digit) rather
// than punctuation (e.g. "+", "(", ";"). Reserved words such as "while"
// are word-like; operator/punctuation terminals are not.
func isWordLike(s string) bool {
	if s == "" {
		return false
	}
	first := s[0]
	if !((first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z') || first == '_') {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
		isDigit := c >= '0' && c <= '9'
		if !isLetter && !isDigit {
			return false
		}
	}
	return true
}

// Report is the human-facing outcome of running the parser over a token
// stream: either an accepted derivation or a syntax error, plus the
// symbol table built while folding the stream.
type Report struct {
	RunID      RunID
	Accepted   bool
	Derivation []grammar.Production
	Err        error
	Symbols    *symtab.Table
}

// RunParser folds lexer.Tokens through the symbol table (reserved-word
// identification) and drives the SLR table over the resulting terminal
// stream, per spec.md §4.7 and the "Reserved-word folding" scenario (S6).
func RunParser(bp *BuiltParser, tokens []lexer.Token, trace driver.Trace) *Report {
	run := newRunID()
	tab := symtab.New()

	tokStream := make([]driver.TokenStream, 0, len(tokens))
	for _, tok := range tokens {
		tag := tab.Categorize(tok.Lexeme, tok.Tag, func(lexeme string) bool {
			_, ok := bp.ReservedWords[lexeme]
			return ok
		})
		tokStream = append(tokStream, driver.TokenStream{Tag: tag, Lexeme: tok.Lexeme})
	}

	res, err := driver.Run(bp.Table, tokStream, trace)
	if err != nil {
		logging.Event("parser.run.error", "run", run, "error", err.Error())
		return &Report{RunID: run, Accepted: false, Err: err, Symbols: tab}
	}
	logging.Event("parser.run.accepted", "run", run, "steps", len(res.Derivation))
	return &Report{RunID: run, Accepted: true, Derivation: res.Derivation, Symbols: tab}
}

// Lexical runs the full scanner half of the pipeline: build a lexer from
// defsFile, scan src, and optionally write the resulting tokens to out.
func Lexical(defsFile, src io.Reader, out io.Writer) ([]lexer.Token, error) {
	l, err := BuildLexer(defsFile)
	if err != nil {
		return nil, err
	}
	tokens, err := l.Scan(src)
	if err != nil {
		return nil, err
	}
	if out != nil {
		if err := spec.WriteTokens(out, tokens); err != nil {
			return nil, err
		}
	}
	return tokens, nil
}

// Syntactic runs the full parser half of the pipeline: build a parser from
// grammarFile, read a token file, and drive the parser over it.
func Syntactic(grammarFile, tokensFile io.Reader, quoteDelim string) (*Report, error) {
	bp, err := BuildParser(grammarFile, quoteDelim)
	if err != nil {
		return nil, err
	}
	tokens, err := spec.ReadTokens(tokensFile)
	if err != nil {
		return nil, err
	}
	return RunParser(bp, tokens, nil), nil
}

// ExitCode maps a Report (or a fatal error from Lexical/BuildParser) onto
// the exit codes of spec.md §6: 0 on success, 1 on usage error or any
// reported failure.
func ExitCode(err error, report *Report) int {
	if err != nil {
		return 1
	}
	if report != nil && !report.Accepted {
		return 1
	}
	return 0
}
