package automaton

import (
	"fmt"
	"sort"
	"strings"
)

// Union builds union(A,B): a fresh initial state "q_union_k" (k chosen so
// the name is absent from both automata) with epsilon transitions to
// A.Initial and B.Initial, plus the union of states/transitions/finals/
// alphabets. The result is nondeterministic in general. Grounded on the
// nil-edge union construction in other_examples' nex nfa.go (OpAlternate).
func Union(a, b *Automaton) *Automaton {
	k := 0
	fresh := func() string {
		for {
			name := fmt.Sprintf("q_union_%d", k)
			k++
			if _, inA := a.States[name]; inA {
				continue
			}
			if _, inB := b.States[name]; inB {
				continue
			}
			return name
		}
	}
	initial := fresh()

	u := New(initial)
	copyInto(u, a)
	copyInto(u, b)
	u.AddEpsilon(initial, a.Initial)
	u.AddEpsilon(initial, b.Initial)
	return u
}

func copyInto(dst, src *Automaton) {
	for s := range src.States {
		dst.addState(s)
	}
	for sym := range src.Alphabet {
		dst.Alphabet[sym] = struct{}{}
	}
	for from, bySym := range src.Trans {
		for sym, dests := range bySym {
			for to := range dests {
				dst.AddTransition(from, sym, to)
			}
		}
	}
	for from, tos := range src.Eps {
		for to := range tos {
			dst.AddEpsilon(from, to)
		}
	}
	for f := range src.Finals {
		dst.SetFinal(f)
	}
}

// frozenName builds a canonical name for a subset of states by
// concatenating the sorted original state names, per spec.md §4.3's
// determinize rule ("name = concatenation of the sorted original state
// names").
func frozenName(subset map[string]struct{}) string {
	names := make([]string, 0, len(subset))
	for s := range subset {
		names = append(names, s)
	}
	sort.Strings(names)
	return strings.Join(names, "")
}

// DetResult is the result of Determinize: the deterministic automaton plus
// a back-mapping from each new (subset) state to the frozen set of
// original states it represents, preserving pattern priority across
// determinization (spec.md §9's "priority among patterns after
// determinization" note).
type DetResult struct {
	DFA     *Automaton
	BackMap map[string]map[string]struct{}
}

// Determinize performs subset construction with epsilon-closure, per
// spec.md §4.3.
func Determinize(a *Automaton) *DetResult {
	initialSubset := a.EpsilonClosure(map[string]struct{}{a.Initial: {}})
	initialName := frozenName(initialSubset)

	dfa := New(initialName)
	backMap := map[string]map[string]struct{}{initialName: initialSubset}

	known := map[string]map[string]struct{}{initialName: initialSubset}
	worklist := []string{initialName}

	for len(worklist) > 0 {
		name := worklist[0]
		worklist = worklist[1:]
		subset := known[name]

		if anyFinal(a, subset) {
			dfa.SetFinal(name)
		}

		for sym := range a.Alphabet {
			moved := a.Move(subset, sym)
			if len(moved) == 0 {
				continue
			}
			closure := a.EpsilonClosure(moved)
			closureName := frozenName(closure)
			if _, seen := known[closureName]; !seen {
				known[closureName] = closure
				backMap[closureName] = closure
				worklist = append(worklist, closureName)
			}
			dfa.AddTransition(name, sym, closureName)
		}
	}

	return &DetResult{DFA: dfa, BackMap: backMap}
}

func anyFinal(a *Automaton, subset map[string]struct{}) bool {
	for s := range subset {
		if a.IsFinal(s) {
			return true
		}
	}
	return false
}

// RemoveUnreachable retains only states reachable from Initial. No-op
// (returns an equivalent automaton) when already minimal in this respect.
func RemoveUnreachable(a *Automaton) *Automaton {
	reachable := a.Reachable(a.Initial)
	return filterStates(a, reachable)
}

// RemoveDead retains only states from which some final state is reachable.
func RemoveDead(a *Automaton) *Automaton {
	alive := map[string]struct{}{}
	for s := range a.States {
		if canReachFinal(a, s, map[string]struct{}{}) {
			alive[s] = struct{}{}
		}
	}
	return filterStates(a, alive)
}

func canReachFinal(a *Automaton, s string, visiting map[string]struct{}) bool {
	if a.IsFinal(s) {
		return true
	}
	if _, ok := visiting[s]; ok {
		return false
	}
	visiting[s] = struct{}{}
	for t := range a.Eps[s] {
		if canReachFinal(a, t, visiting) {
			return true
		}
	}
	for _, dests := range a.Trans[s] {
		for t := range dests {
			if canReachFinal(a, t, visiting) {
				return true
			}
		}
	}
	return false
}

func filterStates(a *Automaton, keep map[string]struct{}) *Automaton {
	out := New(a.Initial)
	for s := range keep {
		out.addState(s)
	}
	for sym := range a.Alphabet {
		out.Alphabet[sym] = struct{}{}
	}
	for from := range keep {
		for sym, dests := range a.Trans[from] {
			for to := range dests {
				if _, ok := keep[to]; ok {
					out.AddTransition(from, sym, to)
				}
			}
		}
		for to := range a.Eps[from] {
			if _, ok := keep[to]; ok {
				out.AddEpsilon(from, to)
			}
		}
	}
	for f := range a.Finals {
		if _, ok := keep[f]; ok {
			out.SetFinal(f)
		}
	}
	return out
}

// RemoveEquivalent requires a, already deterministic. It partitions states
// by Moore-style signature refinement: start with two blocks
// (finals/non-finals), refine by the block index of delta(s,a) for every a
// in the sorted alphabet, until stable. Each final block becomes one
// state; the initial state is the block containing the original initial;
// finals are the blocks containing any original final.
func RemoveEquivalent(a *Automaton) *Automaton {
	if !a.IsDeterministic() {
		panic("automaton.RemoveEquivalent: input must be deterministic")
	}

	states := a.SortedStates()
	alphabet := a.sortedAlphabet()

	blockOf := map[string]int{}
	for _, s := range states {
		if a.IsFinal(s) {
			blockOf[s] = 1
		} else {
			blockOf[s] = 0
		}
	}

	for {
		sig := map[string]string{}
		for _, s := range states {
			var b strings.Builder
			fmt.Fprintf(&b, "%d|", blockOf[s])
			for _, sym := range alphabet {
				to, ok := a.Step(s, sym)
				if !ok {
					fmt.Fprintf(&b, "-,")
					continue
				}
				fmt.Fprintf(&b, "%d,", blockOf[to])
			}
			sig[s] = b.String()
		}

		sigToBlock := map[string]int{}
		next := map[string]int{}
		nextID := 0
		for _, s := range states {
			sg := sig[s]
			id, ok := sigToBlock[sg]
			if !ok {
				id = nextID
				nextID++
				sigToBlock[sg] = id
			}
			next[s] = id
		}

		changed := false
		for _, s := range states {
			if next[s] != blockOf[s] {
				changed = true
			}
		}
		blockOf = next
		if !changed {
			break
		}
	}

	blockName := func(id int) string {
		return fmt.Sprintf("B%d", id)
	}

	out := New(blockName(blockOf[a.Initial]))
	for sym := range a.Alphabet {
		out.Alphabet[sym] = struct{}{}
	}
	seenTrans := map[string]map[byte]bool{}
	for _, s := range states {
		from := blockName(blockOf[s])
		if seenTrans[from] == nil {
			seenTrans[from] = map[byte]bool{}
		}
		for _, sym := range alphabet {
			if seenTrans[from][sym] {
				continue
			}
			to, ok := a.Step(s, sym)
			if !ok {
				continue
			}
			out.AddTransition(from, sym, blockName(blockOf[to]))
			seenTrans[from][sym] = true
		}
		if a.IsFinal(s) {
			out.SetFinal(from)
		}
	}
	return out
}

// Minimize composes remove_equivalent ∘ remove_dead ∘ remove_unreachable ∘
// determinize, in that order: determinization must precede equivalence
// refinement, and dead-state removal must precede equivalence refinement
// (otherwise dead states create spurious distinguishers), per spec.md §4.3.
func Minimize(a *Automaton) *Automaton {
	det := Determinize(a).DFA
	noUnreachable := RemoveUnreachable(det)
	noDead := RemoveDead(noUnreachable)
	return RemoveEquivalent(noDead)
}
