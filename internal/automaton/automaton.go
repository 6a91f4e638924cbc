// Package automaton implements the generic finite-automaton value type of
// spec.md §3 (states, alphabet, transitions, initial, finals), direct DFA
// construction from an annotated regex tree (§4.2), and the automaton
// operations of §4.3 (union, determinize, remove_unreachable, remove_dead,
// remove_equivalent, minimize).
//
// Grounded on nihei9/vartan's grammar/lexical/dfa/dfa.go for the
// followpos-driven worklist construction, and on the nex lexer generator's
// NFA-union-via-epsilon-edges approach (other_examples,
// liran-funaro/nex nfa.go) for union/determinize, generalized here to a
// named-state value type rather than vartan's fixed byte-indexed transition
// table (vartan bakes its DFA directly into a serializable table; spec.md's
// Automaton is an in-memory value manipulated by further operations).
package automaton

import (
	"fmt"
	"sort"
	"strings"
)

// Epsilon is the distinguished alphabet symbol denoting an epsilon
// transition. It is disjoint from every concrete input byte because it is
// carried out-of-band via the Eps transition map rather than occupying a
// byte value.
const Epsilon = -1

// Automaton is the value type of spec.md §3: states, alphabet (bytes
// 0..255), transitions mapping (state, symbol) to a set
// of destination states, an initial state, and a set of final states.
type Automaton struct {
	States   map[string]struct{}
	Alphabet map[byte]struct{}
	Trans    map[string]map[byte]map[string]struct{}
	Eps      map[string]map[string]struct{}
	Initial  string
	Finals   map[string]struct{}
}

// New returns an empty automaton with the given initial state registered.
func New(initial string) *Automaton {
	a := &Automaton{
		States:   map[string]struct{}{},
		Alphabet: map[byte]struct{}{},
		Trans:    map[string]map[byte]map[string]struct{}{},
		Eps:      map[string]map[string]struct{}{},
		Initial:  initial,
		Finals:   map[string]struct{}{},
	}
	a.addState(initial)
	return a
}

func (a *Automaton) addState(s string) {
	if _, ok := a.States[s]; ok {
		return
	}
	a.States[s] = struct{}{}
	a.Trans[s] = map[byte]map[string]struct{}{}
	a.Eps[s] = map[string]struct{}{}
}

func (a *Automaton) SetFinal(s string) {
	a.addState(s)
	a.Finals[s] = struct{}{}
}

func (a *Automaton) IsFinal(s string) bool {
	_, ok := a.Finals[s]
	return ok
}

// AddTransition records delta(from, sym) ∋ to, adding from/to/sym to the
// automaton's states/alphabet as needed.
func (a *Automaton) AddTransition(from string, sym byte, to string) {
	a.addState(from)
	a.addState(to)
	a.Alphabet[sym] = struct{}{}
	if a.Trans[from][sym] == nil {
		a.Trans[from][sym] = map[string]struct{}{}
	}
	a.Trans[from][sym][to] = struct{}{}
}

// AddEpsilon records an epsilon transition from -> to.
func (a *Automaton) AddEpsilon(from, to string) {
	a.addState(from)
	a.addState(to)
	a.Eps[from][to] = struct{}{}
}

// Move returns the set of states reachable from any state in from by a
// single transition on sym (no epsilon-closure applied).
func (a *Automaton) Move(from map[string]struct{}, sym byte) map[string]struct{} {
	out := map[string]struct{}{}
	for s := range from {
		for t := range a.Trans[s][sym] {
			out[t] = struct{}{}
		}
	}
	return out
}

// EpsilonClosure returns the set of states reachable from states via zero
// or more epsilon transitions.
func (a *Automaton) EpsilonClosure(states map[string]struct{}) map[string]struct{} {
	closure := map[string]struct{}{}
	var stack []string
	for s := range states {
		closure[s] = struct{}{}
		stack = append(stack, s)
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for t := range a.Eps[s] {
			if _, ok := closure[t]; !ok {
				closure[t] = struct{}{}
				stack = append(stack, t)
			}
		}
	}
	return closure
}

// Reachable returns every state reachable from start (not just its
// epsilon-closure: it follows both epsilon and labeled transitions).
func (a *Automaton) Reachable(start string) map[string]struct{} {
	seen := map[string]struct{}{start: {}}
	stack := []string{start}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for t := range a.Eps[s] {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				stack = append(stack, t)
			}
		}
		for _, dests := range a.Trans[s] {
			for t := range dests {
				if _, ok := seen[t]; !ok {
					seen[t] = struct{}{}
					stack = append(stack, t)
				}
			}
		}
	}
	return seen
}

// IsDeterministic reports whether the automaton has no epsilon transitions
// and every (state,symbol) transition set has at most one element.
func (a *Automaton) IsDeterministic() bool {
	for _, targets := range a.Eps {
		if len(targets) > 0 {
			return false
		}
	}
	for _, bySym := range a.Trans {
		for _, dests := range bySym {
			if len(dests) > 1 {
				return false
			}
		}
	}
	return true
}

// Step returns the single destination state of a deterministic transition,
// or ("", false) if none exists. Panics (programmer error) if the
// automaton is not deterministic at this cell.
func (a *Automaton) Step(from string, sym byte) (string, bool) {
	dests, ok := a.Trans[from][sym]
	if !ok || len(dests) == 0 {
		return "", false
	}
	if len(dests) > 1 {
		panic(fmt.Sprintf("automaton.Step: state %q is non-deterministic on %q", from, sym))
	}
	for t := range dests {
		return t, true
	}
	return "", false
}

// SortedStates returns the automaton's states in a stable, sorted order,
// for deterministic table dumps and tests.
func (a *Automaton) SortedStates() []string {
	out := make([]string, 0, len(a.States))
	for s := range a.States {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func (a *Automaton) sortedAlphabet() []byte {
	out := make([]byte, 0, len(a.Alphabet))
	for b := range a.Alphabet {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String renders a deterministic ASCII transition table, in the spirit of
// vartan's DFA dumps used for debugging.
func (a *Automaton) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "initial: %s\n", a.Initial)
	finals := make([]string, 0, len(a.Finals))
	for s := range a.Finals {
		finals = append(finals, s)
	}
	sort.Strings(finals)
	fmt.Fprintf(&b, "finals: %v\n", finals)
	for _, s := range a.SortedStates() {
		for _, sym := range a.sortedAlphabet() {
			dests := a.Trans[s][sym]
			if len(dests) == 0 {
				continue
			}
			var ds []string
			for d := range dests {
				ds = append(ds, d)
			}
			sort.Strings(ds)
			fmt.Fprintf(&b, "  %s --%q--> %v\n", s, sym, ds)
		}
		for t := range a.Eps[s] {
			fmt.Fprintf(&b, "  %s --eps--> %s\n", s, t)
		}
	}
	return b.String()
}
