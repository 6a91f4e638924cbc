// Package grammar implements the context-free grammar data model of
// spec.md §3: Symbol, Production, and the Grammar container, plus
// production lookup.
//
// Grounded on nihei9/vartan's grammar/symbol.go and grammar/production.go,
// simplified from vartan's bit-packed uint16 symbol encoding (which exists
// there to serialize compactly into vartan's own portable wire format,
// out of scope here) to a plain tagged struct, in the spirit of
// nihei9-9gram's simpler grammar/symbol.go.
package grammar

import "fmt"

// SymbolKind tags a Symbol as Terminal or NonTerminal.
type SymbolKind int

const (
	KindTerminal SymbolKind = iota
	KindNonTerminal
)

// Symbol is the tagged value of spec.md §3: either a Terminal or a
// NonTerminal, each carrying a name. EOF ("$") and Epsilon ("ε") are
// distinguished terminals.
type Symbol struct {
	Kind SymbolKind
	Name string
}

// Terminal and NonTerminal are the two constructors of Symbol.
func Terminal(name string) Symbol    { return Symbol{Kind: KindTerminal, Name: name} }
func NonTerminal(name string) Symbol { return Symbol{Kind: KindNonTerminal, Name: name} }

// Epsilon and EOF are the two distinguished terminals spec.md §3 names.
var (
	Epsilon = Terminal("ε")
	EOF     = Terminal("$")
)

func (s Symbol) IsTerminal() bool    { return s.Kind == KindTerminal }
func (s Symbol) IsNonTerminal() bool { return s.Kind == KindNonTerminal }
func (s Symbol) IsEpsilon() bool     { return s == Epsilon }
func (s Symbol) IsEOF() bool         { return s == EOF }

func (s Symbol) String() string {
	return s.Name
}

func (s Symbol) GoString() string {
	kind := "T"
	if s.IsNonTerminal() {
		kind = "N"
	}
	return fmt.Sprintf("%s(%s)", kind, s.Name)
}
