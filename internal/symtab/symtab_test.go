package symtab_test

import (
	"testing"

	"github.com/nihei9/vartanlite/internal/symtab"
)

func TestLookup_IdempotentPosition(t *testing.T) {
	tab := symtab.New()
	e1 := tab.Lookup("x", symtab.CategoryID)
	e2 := tab.Lookup("x", symtab.CategoryID)
	if e1.Position != e2.Position {
		t.Fatalf("second Lookup of the same lexeme advanced the position counter: %d vs %d", e1.Position, e2.Position)
	}
	if e1 != e2 {
		t.Fatalf("expected Lookup to return the same entry pointer for a repeated lexeme")
	}
}

func TestLookup_DefaultsToID(t *testing.T) {
	tab := symtab.New()
	e := tab.Lookup("foo", "")
	if e.Category != symtab.CategoryID {
		t.Fatalf("expected default category ID, got %v", e.Category)
	}
}

func TestInsertReserved_FoldsIntoPR(t *testing.T) {
	tab := symtab.New()
	tab.InsertReservedWords([]string{"while", "if"})
	e := tab.Get("while")
	if e == nil || e.Category != symtab.CategoryReserved {
		t.Fatalf("expected 'while' to be categorized PR, got %+v", e)
	}
}

// TestCategorize_ReservedWordFolding mirrors scenario S6.
func TestCategorize_ReservedWordFolding(t *testing.T) {
	tab := symtab.New()
	reserved := map[string]struct{}{"while": {}}
	isReserved := func(s string) bool {
		_, ok := reserved[s]
		return ok
	}

	tag := tab.Categorize("while", "id", isReserved)
	if tag != "while" {
		t.Fatalf("expected reserved word to fold to its own lexeme as the tag, got %q", tag)
	}
	e := tab.Get("while")
	if e == nil || e.Category != symtab.CategoryReserved {
		t.Fatalf("expected 'while' to be recorded as a reserved word, got %+v", e)
	}

	tag2 := tab.Categorize("total", "id", isReserved)
	if tag2 != "id" {
		t.Fatalf("expected a non-reserved identifier to keep its lexical class as the tag, got %q", tag2)
	}
}

func TestEntries_InsertionOrder(t *testing.T) {
	tab := symtab.New()
	tab.Lookup("b", symtab.CategoryID)
	tab.Lookup("a", symtab.CategoryID)
	entries := tab.Entries()
	if len(entries) != 2 || entries[0].Lexeme != "b" || entries[1].Lexeme != "a" {
		t.Fatalf("expected entries in insertion order [b,a], got %+v", entries)
	}
}

func TestStatsAndClear(t *testing.T) {
	tab := symtab.New()
	tab.InsertReserved("while")
	tab.Lookup("x", symtab.CategoryID)
	tab.Lookup("42", symtab.CategoryNumInt)

	stats := tab.Stats()
	if stats[symtab.CategoryReserved] != 1 || stats[symtab.CategoryID] != 1 || stats[symtab.CategoryNumInt] != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	tab.Clear()
	if tab.Len() != 0 {
		t.Fatalf("expected an empty table after Clear, got %d entries", tab.Len())
	}
	e := tab.Lookup("x", symtab.CategoryID)
	if e.Position != 0 {
		t.Fatalf("expected the position counter to reset after Clear, got %d", e.Position)
	}
}
