package analysis_test

import (
	"testing"

	"github.com/nihei9/vartanlite/internal/grammar"
	"github.com/nihei9/vartanlite/internal/grammar/analysis"
)

// exprGrammar is the classic E -> E+T | T; T -> T*F | F; F -> (E) | id
// grammar used throughout the SLR scenarios.
func exprGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	E := grammar.NonTerminal("E")
	T := grammar.NonTerminal("T")
	F := grammar.NonTerminal("F")
	plus := grammar.Terminal("+")
	star := grammar.Terminal("*")
	lparen := grammar.Terminal("(")
	rparen := grammar.Terminal(")")
	id := grammar.Terminal("id")

	b := grammar.NewBuilder()
	b.AddProduction(E, []grammar.Symbol{E, plus, T})
	b.AddProduction(E, []grammar.Symbol{T})
	b.AddProduction(T, []grammar.Symbol{T, star, F})
	b.AddProduction(T, []grammar.Symbol{F})
	b.AddProduction(F, []grammar.Symbol{lparen, E, rparen})
	b.AddProduction(F, []grammar.Symbol{id})

	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	return g
}

func hasSymbols(s *analysis.Set, names ...string) bool {
	for _, n := range names {
		found := false
		for sym := range s.Symbols {
			if sym.Name == n {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func TestFirst_ExprGrammar(t *testing.T) {
	g := exprGrammar(t)
	a := analysis.New(g)

	E := grammar.NonTerminal("E")
	first := a.First(E)
	if !hasSymbols(first, "(", "id") {
		t.Fatalf("FIRST(E) = %+v, expected it to contain '(' and 'id'", first)
	}
	if first.Epsilon {
		t.Fatalf("FIRST(E) should not contain epsilon")
	}
}

func TestFollow_ExprGrammar(t *testing.T) {
	g := exprGrammar(t)
	a := analysis.New(g)

	E := grammar.NonTerminal("E")
	follow := a.Follow(E)
	if !hasSymbols(follow, "+", ")") {
		t.Fatalf("FOLLOW(E) = %+v, expected it to contain '+' and ')'", follow)
	}

	F := grammar.NonTerminal("F")
	followF := a.Follow(F)
	if !hasSymbols(followF, "+", "*", ")") {
		t.Fatalf("FOLLOW(F) = %+v, expected it to contain '+', '*', ')'", followF)
	}
}

func TestFollow_StartSymbolContainsEOF(t *testing.T) {
	g := exprGrammar(t)
	a := analysis.New(g)
	follow := a.Follow(g.Start)
	if !hasSymbols(follow, grammar.EOF.Name) {
		t.Fatalf("FOLLOW(start) should contain EOF, got %+v", follow)
	}
}

func TestFirst_NullableProduction(t *testing.T) {
	// S -> A b; A -> a | ε
	S := grammar.NonTerminal("S")
	A := grammar.NonTerminal("A")
	a := grammar.Terminal("a")
	bT := grammar.Terminal("b")

	bld := grammar.NewBuilder()
	bld.AddProduction(S, []grammar.Symbol{A, bT})
	bld.AddProduction(A, []grammar.Symbol{a})
	bld.AddProduction(A, nil)
	g, err := bld.Build()
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	an := analysis.New(g)
	firstA := an.First(A)
	if !firstA.Epsilon {
		t.Fatalf("FIRST(A) should contain epsilon since A -> ε is a production")
	}
	firstS := an.First(S)
	if !hasSymbols(firstS, "a", "b") {
		t.Fatalf("FIRST(S) = %+v, expected it to contain 'a' and 'b' (since A is nullable)", firstS)
	}
}
