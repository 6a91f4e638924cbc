// Package symtab implements the symbol table of spec.md §3/§6: an ordered
// map from lexeme to entry, used to fold reserved-word lexemes into their
// terminal identity before the token stream reaches the parser.
//
// Grounded on original_source/src/tabela_simbolos.py (TabelaSimbolos):
// category constants, idempotent lookup-or-insert, insertion-ordered
// positions, and the Stats/Clear supplement recovered from
// estatisticas()/limpar() that spec.md's distilled §3 paragraph omitted.
package symtab

// Category is one of the lexical categories spec.md §3 names.
type Category string

const (
	CategoryReserved Category = "PR"
	CategoryID       Category = "ID"
	CategoryNumInt   Category = "NUM_INT"
	CategoryNumReal  Category = "NUM_REAL"
	CategoryLiteral  Category = "LIT"
)

// Entry is a SymbolTableEntry: (lexeme, category, position, type?, scope?).
type Entry struct {
	Lexeme   string
	Category Category
	Position int
	Type     string // optional; empty when unset
	Scope    string // optional; empty when unset
}

// Table is an insertion-ordered symbol table. Positions are assigned in
// insertion order starting at 0.
type Table struct {
	byLexeme map[string]*Entry
	order    []string
	next     int
}

func New() *Table {
	return &Table{byLexeme: map[string]*Entry{}}
}

// InsertReserved inserts a reserved-word lexeme with category PR if it is
// not already present, and returns its entry either way.
func (t *Table) InsertReserved(lexeme string) *Entry {
	if e, ok := t.byLexeme[lexeme]; ok {
		return e
	}
	return t.insert(lexeme, CategoryReserved)
}

// InsertReservedWords bulk-inserts a list of reserved words.
func (t *Table) InsertReservedWords(words []string) {
	for _, w := range words {
		t.InsertReserved(w)
	}
}

// Lookup is idempotent: a first call inserts lexeme (defaulting to category
// ID when category is empty) and returns the new entry; a second call with
// the same lexeme returns the same entry without advancing the position
// counter (spec.md §8 property 11).
func (t *Table) Lookup(lexeme string, category Category) *Entry {
	if e, ok := t.byLexeme[lexeme]; ok {
		return e
	}
	if category == "" {
		category = CategoryID
	}
	return t.insert(lexeme, category)
}

func (t *Table) insert(lexeme string, category Category) *Entry {
	e := &Entry{Lexeme: lexeme, Category: category, Position: t.next}
	t.byLexeme[lexeme] = e
	t.order = append(t.order, lexeme)
	t.next++
	return e
}

// Exists reports whether lexeme has an entry.
func (t *Table) Exists(lexeme string) bool {
	_, ok := t.byLexeme[lexeme]
	return ok
}

// Get returns the entry for lexeme, or nil if absent. Unlike Lookup, it
// never inserts.
func (t *Table) Get(lexeme string) *Entry {
	return t.byLexeme[lexeme]
}

// Entries returns every entry in insertion order.
func (t *Table) Entries() []*Entry {
	out := make([]*Entry, 0, len(t.order))
	for _, lex := range t.order {
		out = append(out, t.byLexeme[lex])
	}
	return out
}

// Categorize folds a scanned (lexeme, lexicalClass) pair into its terminal
// identity: a lexeme for which isReservedWord reports true folds to the
// lexeme itself; every other lexeme, punctuation included, keeps its
// lexical class name as the tag.
//
// reservedWords is the set of terminals the grammar declares that happen
// to look like identifiers (e.g. "while"); lexicalClass is the pattern
// name the lexer assigned (e.g. "id").
func (t *Table) Categorize(lexeme, lexicalClass string, isReservedWord func(string) bool) (tag string) {
	if isReservedWord(lexeme) {
		t.InsertReserved(lexeme)
		return lexeme
	}
	t.Lookup(lexeme, classToCategory(lexicalClass))
	return lexicalClass
}

func classToCategory(class string) Category {
	switch class {
	case "id":
		return CategoryID
	case "num", "num_int":
		return CategoryNumInt
	case "num_real":
		return CategoryNumReal
	case "literal", "lit":
		return CategoryLiteral
	default:
		return Category(class)
	}
}

// Stats returns the number of entries per category (supplement recovered
// from tabela_simbolos.py's estatisticas()).
func (t *Table) Stats() map[Category]int {
	out := map[Category]int{}
	for _, e := range t.byLexeme {
		out[e.Category]++
	}
	return out
}

// Clear empties the table and resets the position counter (supplement
// recovered from tabela_simbolos.py's limpar()).
func (t *Table) Clear() {
	t.byLexeme = map[string]*Entry{}
	t.order = nil
	t.next = 0
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.byLexeme)
}
