package automaton

import (
	"fmt"
	"strings"

	"github.com/nihei9/vartanlite/internal/regexast"
)

// stateName canonicalizes a frozen position set into the "{p1,p2,...}"
// names required by spec.md §3 ("State: identified by a canonical name ...
// derived from a position-set").
func stateName(ps *regexast.PosSet) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range ps.Sorted() {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", p)
	}
	b.WriteByte('}')
	return b.String()
}

// DirectDFA builds a DFA directly from an annotated regex tree, per
// spec.md §4.2, without constructing an intermediate NFA: the initial state
// is firstpos(root); for each unmarked state T and input symbol a, U is the
// union of followpos(p) over every p in T whose leaf matches a; a state is
// accepting iff it contains the position of the augmented '#'.
//
// Edge case: if firstpos(root) is empty, returns a one-state DFA accepting
// iff the root is nullable, with an empty alphabet.
func DirectDFA(t *regexast.Tree) *Automaton {
	if t.Root.Firstpos.Empty() {
		initial := "{}"
		a := New(initial)
		if t.Root.Nullable {
			a.SetFinal(initial)
		}
		return a
	}

	initialName := stateName(t.Root.Firstpos)
	a := New(initialName)

	type pending struct {
		name string
		set  *regexast.PosSet
	}
	known := map[string]*regexast.PosSet{initialName: t.Root.Firstpos}
	worklist := []pending{{initialName, t.Root.Firstpos}}

	// Distinct leaf characters in the tree, excluding epsilon; '#' is
	// handled separately via the accepting check, not as an alphabet
	// symbol clients transition on out of an accepting state.
	alphabet := map[byte]struct{}{}
	for pos, leaf := range t.Leaves {
		if pos == t.EndPos {
			continue
		}
		alphabet[leaf.Char] = struct{}{}
	}

	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]

		if cur.set.Contains(t.EndPos) {
			a.SetFinal(cur.name)
		}

		for sym := range alphabet {
			u := regexast.NewPosSet()
			for _, p := range cur.set.Sorted() {
				leaf, ok := t.Leaves[p]
				if !ok || leaf.Char != sym {
					continue
				}
				u.AddAll(leaf.Followpos)
			}
			if u.Empty() {
				continue
			}
			uName := stateName(u)
			if _, seen := known[uName]; !seen {
				known[uName] = u
				worklist = append(worklist, pending{uName, u})
			}
			a.AddTransition(cur.name, sym, uName)
		}
	}

	return a
}
