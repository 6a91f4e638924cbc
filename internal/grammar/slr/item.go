// Package slr implements the SLR(1) table builder of spec.md §4.6: grammar
// augmentation, LR(0) item closure and goto with insertion-order-preserving
// item sets, BFS canonical collection, and ACTION/GOTO construction with
// conflict detection that continues building a partial table.
//
// Grounded on nihei9/vartan's grammar/lr0.go (BFS canonical-collection
// shape) and grammar/lr0_item.go, adapted from vartan's kernel-only,
// sha256-hashed LALR(1) item sets to spec.md's full-closure SLR(1) item
// sets keyed by a sorted textual signature, with a parallel ordered slice
// preserving insertion order for derivation-correct iteration (spec.md §9's
// "frozen sets of items as dictionary keys" design note).
package slr

import (
	"fmt"
	"strings"

	"github.com/nihei9/vartanlite/internal/grammar"
)

// Item is an LR(0) item: (production, dot), immutable.
type Item struct {
	Prod grammar.Production
	Dot  int
}

func (it Item) SymbolAfterDot() (grammar.Symbol, bool) {
	if it.Dot >= len(it.Prod.Body) {
		return grammar.Symbol{}, false
	}
	return it.Prod.Body[it.Dot], true
}

func (it Item) IsComplete() bool {
	return it.Dot >= len(it.Prod.Body)
}

func (it Item) Advance() Item {
	return Item{Prod: it.Prod, Dot: it.Dot + 1}
}

func (it Item) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s -> ", it.Prod.Head.Name)
	for i, s := range it.Prod.Body {
		if i == it.Dot {
			b.WriteString("·")
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s.Name)
	}
	if it.Dot == len(it.Prod.Body) {
		b.WriteString("·")
	}
	return b.String()
}

// signature returns a canonical, order-independent key for a set of items,
// used for item-set equality/hashing (spec.md §9).
func signature(items []Item) string {
	strs := make([]string, len(items))
	for i, it := range items {
		strs[i] = fmt.Sprintf("%d:%d", it.Prod.Number, it.Dot)
	}
	// Sort for a canonical signature while keeping `items` itself in
	// insertion order for callers that need to iterate deterministically.
	sorted := append([]string{}, strs...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	return strings.Join(sorted, "|")
}

// ItemSet is an insertion-ordered set of LR(0) items: Items preserves the
// order items were added (required for derivation-correct closures and
// tests per spec.md §4.6), while the set is keyed for equality/membership
// by its canonical Signature.
type ItemSet struct {
	Items     []Item
	Signature string

	index map[string]struct{} // Prod.Number:Dot -> present, for O(1) membership
}

func newItemSet() *ItemSet {
	return &ItemSet{index: map[string]struct{}{}}
}

func (s *ItemSet) add(it Item) bool {
	key := fmt.Sprintf("%d:%d", it.Prod.Number, it.Dot)
	if _, ok := s.index[key]; ok {
		return false
	}
	s.index[key] = struct{}{}
	s.Items = append(s.Items, it)
	return true
}

func (s *ItemSet) finalize() {
	s.Signature = signature(s.Items)
}

// Closure computes closure(I) per spec.md §4.6: I, plus for every item
// A -> α·Bβ with B a nonterminal, every item B -> ·γ for each production
// B -> γ, iterated to a fixed point. New items are appended in
// first-occurrence order.
func Closure(g *grammar.Grammar, seed []Item) *ItemSet {
	set := newItemSet()
	var worklist []Item
	for _, it := range seed {
		if set.add(it) {
			worklist = append(worklist, it)
		}
	}
	for len(worklist) > 0 {
		it := worklist[0]
		worklist = worklist[1:]

		sym, ok := it.SymbolAfterDot()
		if !ok || sym.IsTerminal() {
			continue
		}
		for _, p := range g.ByHead(sym) {
			newItem := Item{Prod: p, Dot: 0}
			if set.add(newItem) {
				worklist = append(worklist, newItem)
			}
		}
	}
	set.finalize()
	return set
}

// Goto computes goto(I, X) = closure({A -> αX·β | (A -> α·Xβ) ∈ I}),
// iterating over I in insertion order.
func Goto(g *grammar.Grammar, I *ItemSet, X grammar.Symbol) *ItemSet {
	var seed []Item
	for _, it := range I.Items {
		sym, ok := it.SymbolAfterDot()
		if !ok || sym != X {
			continue
		}
		seed = append(seed, it.Advance())
	}
	if len(seed) == 0 {
		return nil
	}
	return Closure(g, seed)
}

// symbolsAfterDot returns, in first-occurrence order, the distinct symbols
// that appear immediately after a dot in I's items.
func symbolsAfterDot(I *ItemSet) []grammar.Symbol {
	seen := map[grammar.Symbol]struct{}{}
	var out []grammar.Symbol
	for _, it := range I.Items {
		sym, ok := it.SymbolAfterDot()
		if !ok {
			continue
		}
		if _, dup := seen[sym]; dup {
			continue
		}
		seen[sym] = struct{}{}
		out = append(out, sym)
	}
	return out
}
