package slr

import (
	"fmt"

	"github.com/nihei9/vartanlite/internal/grammar"
	"github.com/nihei9/vartanlite/internal/grammar/analysis"
	"github.com/nihei9/vartanlite/internal/specerr"
)

// ActionKind tags an Action as SHIFT, REDUCE, or ACCEPT.
type ActionKind int

const (
	ActionShift ActionKind = iota
	ActionReduce
	ActionAccept
)

// Action is the tagged value of spec.md §3: SHIFT(state) | REDUCE(production#) | ACCEPT.
type Action struct {
	Kind  ActionKind
	State int // valid for ActionShift
	Prod  int // valid for ActionReduce
}

func (a Action) String() string {
	switch a.Kind {
	case ActionShift:
		return fmt.Sprintf("shift %d", a.State)
	case ActionReduce:
		return fmt.Sprintf("reduce %d", a.Prod)
	default:
		return "accept"
	}
}

// Table is the SLRTable of spec.md §3: two partial maps, ACTION and GOTO,
// plus the recorded conflict list. Construction continues on conflict: the
// first-written action at a given (state,symbol) key is retained, per
// spec.md §4.6/§7's conflict policy.
type Table struct {
	Action map[actionKey]Action
	Goto   map[gotoKey]int

	Conflicts []*specerr.Conflict

	AugStart   grammar.Symbol
	StartProd  grammar.Production
	Collection *Collection

	// Productions maps a production number (0 for the augmented start) to
	// its Production, for the driver to resolve REDUCE actions without
	// re-scanning the canonical collection.
	Productions map[int]grammar.Production
}

type actionKey struct {
	State int
	Term  grammar.Symbol
}

type gotoKey struct {
	State int
	NT    grammar.Symbol
}

// Build constructs the augmented grammar's SLR table, per spec.md §4.6.
func Build(g *grammar.Grammar) (*Table, error) {
	augStart, startProd := Augment(g)
	col := BuildCollection(g, augStart, startProd)
	fa := analysis.New(g)

	t := &Table{
		Action:      map[actionKey]Action{},
		Goto:        map[gotoKey]int{},
		AugStart:    augStart,
		StartProd:   startProd,
		Collection:  col,
		Productions: map[int]grammar.Production{0: startProd},
	}
	for _, p := range g.Productions {
		t.Productions[p.Number] = p
	}

	setAction := func(state int, term grammar.Symbol, act Action) {
		key := actionKey{State: state, Term: term}
		if existing, ok := t.Action[key]; ok {
			if existing != act {
				t.Conflicts = append(t.Conflicts, &specerr.Conflict{
					State:    state,
					Symbol:   term.Name,
					Previous: existing.String(),
					New:      act.String(),
				})
			}
			return
		}
		t.Action[key] = act
	}

	for _, state := range col.States {
		for _, it := range state.Items.Items {
			sym, hasDot := it.SymbolAfterDot()

			switch {
			case hasDot && sym.IsTerminal():
				// A -> α·aβ: shift, if (i,a) has a transition.
				if next, ok := col.Trans[state.Num][sym]; ok {
					setAction(state.Num, sym, Action{Kind: ActionShift, State: next})
				}
			case it.IsComplete() && it.Prod.Head == augStart:
				// S' -> S·: accept.
				setAction(state.Num, grammar.EOF, Action{Kind: ActionAccept})
			case it.IsComplete():
				// A -> α·, A != S': reduce on every terminal in FOLLOW(A).
				followA := fa.Follow(it.Prod.Head)
				for term := range followA.Symbols {
					setAction(state.Num, term, Action{Kind: ActionReduce, Prod: it.Prod.Number})
				}
			}
		}

		for X, next := range col.Trans[state.Num] {
			if X.IsNonTerminal() {
				t.Goto[gotoKey{State: state.Num, NT: X}] = next
			}
		}
	}

	return t, nil
}

// Lookup returns the ACTION for (state, term), if any.
func (t *Table) Lookup(state int, term grammar.Symbol) (Action, bool) {
	a, ok := t.Action[actionKey{State: state, Term: term}]
	return a, ok
}

// LookupGoto returns the GOTO for (state, nonterminal), if any.
func (t *Table) LookupGoto(state int, nt grammar.Symbol) (int, bool) {
	s, ok := t.Goto[gotoKey{State: state, NT: nt}]
	return s, ok
}

// ExpectedTerminals returns every terminal for which ACTION[state,*] is
// defined, for use in a SyntaxError's expected-token set.
func (t *Table) ExpectedTerminals(state int) []grammar.Symbol {
	var out []grammar.Symbol
	for key := range t.Action {
		if key.State == state {
			out = append(out, key.Term)
		}
	}
	return out
}
