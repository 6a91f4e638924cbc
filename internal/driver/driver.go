// Package driver implements the SLRDriver of spec.md §4.7: a synchronous
// shift/reduce/accept loop over a token stream, producing either a
// rightmost derivation or a precise syntax error.
//
// Grounded on original_source/src/slr/parser_slr.py (ParserSLR.parsear):
// same stack/derivation shape, same reduce-then-GOTO sequencing, same
// error report fields (position, token, state, expected set).
package driver

import (
	"github.com/nihei9/vartanlite/internal/grammar"
	"github.com/nihei9/vartanlite/internal/grammar/slr"
	"github.com/nihei9/vartanlite/internal/specerr"
)

// TokenStream is the minimal view the driver needs of a token: its
// terminal tag (after symbol-table folding) and the literal lexeme, for
// error reporting.
type TokenStream struct {
	Tag    string
	Lexeme string
}

// Trace, when non-nil, is invoked once per driver step, for an external
// caller to observe shift/reduce/accept steps (supplement from
// original_source's `historico` step history) without the core driver
// depending on any presentation layer.
type Trace func(step int, stack []int, action slr.Action)

// Result is the outcome of a successful parse: the rightmost derivation,
// recorded as the sequence of productions applied during reduces, in the
// order they were applied.
type Result struct {
	Derivation []grammar.Production
}

// Run drives the shift-reduce loop of spec.md §4.7 over tokens (a $-token
// is appended automatically if tokens does not already end with one).
// Returns the derivation on ACCEPT, or a *specerr.SyntaxError on the first
// ACTION miss. A GOTO miss after a reduce is an
// InternalInvariantViolation: a fatal, unrecoverable programmer error,
// since it indicates a corrupted table rather than a malformed input.
func Run(t *slr.Table, tokens []TokenStream, trace Trace) (*Result, error) {
	input := tokens
	if len(input) == 0 || input[len(input)-1].Tag != grammar.EOF.Name {
		input = append(append([]TokenStream{}, tokens...), TokenStream{Tag: grammar.EOF.Name, Lexeme: "$"})
	}

	stack := []int{0}
	pos := 0
	var derivation []grammar.Production

	step := 0
	for {
		step++
		top := stack[len(stack)-1]
		tok := input[pos]
		termSym := grammar.Terminal(tok.Tag)

		act, ok := t.Lookup(top, termSym)
		if !ok {
			var expected []string
			for _, s := range t.ExpectedTerminals(top) {
				expected = append(expected, s.Name)
			}
			return nil, &specerr.SyntaxError{
				Position: pos,
				Token:    tok.Tag,
				Lexeme:   tok.Lexeme,
				State:    top,
				Expected: expected,
			}
		}

		if trace != nil {
			trace(step, append([]int{}, stack...), act)
		}

		switch act.Kind {
		case slr.ActionShift:
			stack = append(stack, act.State)
			pos++

		case slr.ActionReduce:
			p, found := t.Productions[act.Prod]
			if !found {
				return nil, &specerr.InternalInvariantViolation{Detail: "reduce refers to an unknown production"}
			}
			n := len(p.Body)
			stack = stack[:len(stack)-n]

			top = stack[len(stack)-1]
			nextState, ok := t.LookupGoto(top, p.Head)
			if !ok {
				return nil, &specerr.InternalInvariantViolation{
					Detail: "GOTO miss after reduce: table is corrupted",
				}
			}
			stack = append(stack, nextState)
			derivation = append(derivation, p)

		case slr.ActionAccept:
			return &Result{Derivation: derivation}, nil
		}
	}
}
