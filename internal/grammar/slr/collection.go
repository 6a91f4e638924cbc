package slr

import "github.com/nihei9/vartanlite/internal/grammar"

// State is one state of the canonical LR(0) collection: its number and its
// item set. Its outgoing transitions are recorded in Collection.Trans.
type State struct {
	Num   int
	Items *ItemSet
}

// Collection is the canonical LR(0) collection of spec.md §4.6: states
// indexed by number, plus (state,symbol) -> state transitions.
type Collection struct {
	States []*State
	Trans  map[int]map[grammar.Symbol]int
}

// Augment introduces a fresh start symbol S' (per spec.md §4.6): the start
// symbol's name plus "'" if uncollided, else further "'" are appended until
// the name is fresh; production 0 is S' -> S, and
// user productions occupy 1..n unchanged (the caller's Grammar already
// numbers them that way via grammar.Builder).
func Augment(g *grammar.Grammar) (augStart grammar.Symbol, startProd grammar.Production) {
	name := g.Start.Name + "'"
	for {
		candidate := grammar.NonTerminal(name)
		if _, collide := g.NonTerminals[candidate]; !collide {
			augStart = candidate
			break
		}
		name = name + "'"
	}
	startProd = grammar.NewProduction(augStart, []grammar.Symbol{g.Start}, 0)
	return augStart, startProd
}

// BuildCollection performs the BFS canonical-collection construction of
// spec.md §4.6, starting from closure({S' -> ·S}).
func BuildCollection(g *grammar.Grammar, augStart grammar.Symbol, startProd grammar.Production) *Collection {
	initial := Closure(g, []Item{{Prod: startProd, Dot: 0}})

	col := &Collection{Trans: map[int]map[grammar.Symbol]int{}}
	bySignature := map[string]int{initial.Signature: 0}
	col.States = append(col.States, &State{Num: 0, Items: initial})

	queue := []int{0}
	for len(queue) > 0 {
		k := queue[0]
		queue = queue[1:]
		I := col.States[k].Items

		for _, X := range symbolsAfterDot(I) {
			J := Goto(g, I, X)
			if J == nil {
				continue
			}
			idx, known := bySignature[J.Signature]
			if !known {
				idx = len(col.States)
				bySignature[J.Signature] = idx
				col.States = append(col.States, &State{Num: idx, Items: J})
				queue = append(queue, idx)
			}
			if col.Trans[k] == nil {
				col.Trans[k] = map[grammar.Symbol]int{}
			}
			col.Trans[k][X] = idx
		}
	}

	return col
}
