// Package analysis computes FIRST and FOLLOW as monotone fixed points over
// a grammar.Grammar, per spec.md §4.5.
//
// Grounded on nihei9/vartan's grammar/first.go and grammar/follow.go:
// the same entry/mergeExceptEmpty accumulation shape, generalized from
// vartan's bit-packed symbol sets to grammar.Symbol sets, and cached as
// fields on the Analysis object rather than process-wide state (resolving
// the "global mutable caches" design note in spec.md §9).
package analysis

import "github.com/nihei9/vartanlite/internal/grammar"

// Set is a set of terminals, with an explicit "contains ε" flag, mirroring
// vartan's firstEntry.
type Set struct {
	Symbols map[grammar.Symbol]struct{}
	Epsilon bool
}

func newSet() *Set {
	return &Set{Symbols: map[grammar.Symbol]struct{}{}}
}

func (s *Set) add(sym grammar.Symbol) bool {
	if _, ok := s.Symbols[sym]; ok {
		return false
	}
	s.Symbols[sym] = struct{}{}
	return true
}

func (s *Set) addEpsilon() bool {
	if s.Epsilon {
		return false
	}
	s.Epsilon = true
	return true
}

func (s *Set) mergeExceptEpsilon(o *Set) bool {
	changed := false
	for sym := range o.Symbols {
		if s.add(sym) {
			changed = true
		}
	}
	return changed
}

// Analysis holds the cached FIRST and FOLLOW tables for one grammar.
// Invalidate (recompute a fresh Analysis) together when the grammar
// itself changes.
type Analysis struct {
	g      *grammar.Grammar
	first  map[grammar.Symbol]*Set
	follow map[grammar.Symbol]*Set
}

// New computes FIRST and FOLLOW for g and returns the cached Analysis.
func New(g *grammar.Grammar) *Analysis {
	a := &Analysis{g: g}
	a.computeFirst()
	a.computeFollow()
	return a
}

// First returns the cached FIRST set for a non-terminal.
func (a *Analysis) First(sym grammar.Symbol) *Set {
	if sym.IsTerminal() {
		s := newSet()
		if sym.IsEpsilon() {
			s.addEpsilon()
		} else {
			s.add(sym)
		}
		return s
	}
	return a.first[sym]
}

// Follow returns the cached FOLLOW set for a non-terminal.
func (a *Analysis) Follow(sym grammar.Symbol) *Set {
	return a.follow[sym]
}

// FirstOfSequence computes FIRST(α) for a symbol sequence, using the
// cached per-symbol FIRSTs, per spec.md §4.5.
func (a *Analysis) FirstOfSequence(seq []grammar.Symbol) *Set {
	result := newSet()
	if len(seq) == 0 {
		result.addEpsilon()
		return result
	}
	for _, sym := range seq {
		e := a.First(sym)
		result.mergeExceptEpsilon(e)
		if !e.Epsilon {
			return result
		}
	}
	result.addEpsilon()
	return result
}

func (a *Analysis) computeFirst() {
	a.first = map[grammar.Symbol]*Set{}
	for nt := range a.g.NonTerminals {
		a.first[nt] = newSet()
	}
	for {
		more := false
		for _, p := range a.g.Productions {
			acc := a.first[p.Head]
			if genProdFirst(a, acc, p) {
				more = true
			}
		}
		if !more {
			break
		}
	}
}

func genProdFirst(a *Analysis, acc *Set, p grammar.Production) bool {
	if p.IsEmpty() {
		return acc.addEpsilon()
	}
	changed := false
	for _, sym := range p.Body {
		if sym.IsTerminal() {
			if acc.add(sym) {
				changed = true
			}
			return changed
		}
		e := a.first[sym]
		if acc.mergeExceptEpsilon(e) {
			changed = true
		}
		if !e.Epsilon {
			return changed
		}
	}
	if acc.addEpsilon() {
		changed = true
	}
	return changed
}

func (a *Analysis) computeFollow() {
	a.follow = map[grammar.Symbol]*Set{}
	for nt := range a.g.NonTerminals {
		a.follow[nt] = newSet()
	}
	a.follow[a.g.Start].add(grammar.EOF)

	for {
		more := false
		for _, p := range a.g.Productions {
			for i, sym := range p.Body {
				if sym.IsTerminal() {
					continue
				}
				beta := p.Body[i+1:]
				firstBeta := a.FirstOfSequence(beta)
				followSym := a.follow[sym]

				if len(beta) > 0 {
					if followSym.mergeExceptEpsilon(firstBeta) {
						more = true
					}
				}
				if len(beta) == 0 || firstBeta.Epsilon {
					if followSym.mergeExceptEpsilon(a.follow[p.Head]) {
						more = true
					}
				}
			}
		}
		if !more {
			break
		}
	}
}
