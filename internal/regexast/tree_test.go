package regexast

import (
	"testing"
)

func TestParse_SimpleConcat(t *testing.T) {
	tr, err := Parse("ab")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if tr.Root.Kind != KindConcat {
		t.Fatalf("expected root to be the augmented concat with '#', got %v", tr.Root.Kind)
	}
	// Three leaves: 'a', 'b', '#'.
	if len(tr.Leaves) != 3 {
		t.Fatalf("expected 3 leaves, got %d", len(tr.Leaves))
	}
}

func TestParse_Union(t *testing.T) {
	tr, err := Parse("a|b")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if tr.Root.Firstpos.Len() == 0 {
		t.Fatalf("expected non-empty firstpos on augmented root")
	}
}

func TestParse_Star_Nullable(t *testing.T) {
	tr, err := Parse("a*")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	// root is CONCAT(STAR(a), #); STAR(a) is nullable.
	if !tr.Root.Left.Nullable {
		t.Fatalf("expected a* to be nullable")
	}
}

func TestParse_Plus_DeepCopiesPositions(t *testing.T) {
	tr, err := Parse("a+")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	// a+ desugars to a.a*, which together with the augmenting '#' gives
	// three distinct leaf positions: the original 'a', the cloned 'a' inside
	// the star, and '#'.
	if len(tr.Leaves) != 3 {
		t.Fatalf("expected 3 distinct leaves for 'a+', got %d", len(tr.Leaves))
	}
	positions := map[Pos]bool{}
	for pos := range tr.Leaves {
		if positions[pos] {
			t.Fatalf("duplicate position %d: '+' expansion aliased positions", pos)
		}
		positions[pos] = true
	}
}

func TestParse_Question(t *testing.T) {
	tr, err := Parse("a?")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	// a? desugars to (a|ε); the leaf a is not nullable, but the epsilon
	// alternative is, so the union itself must be nullable.
	if !tr.Root.Left.Nullable {
		t.Fatalf("expected a? to be nullable")
	}
}

func TestParse_CharacterClassExpansion(t *testing.T) {
	tr, err := Parse("[a-c]")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	// [a-c] expands to (a|b|c), plus the augmenting '#': 4 leaves total.
	if len(tr.Leaves) != 4 {
		t.Fatalf("expected 4 leaves for [a-c] (a,b,c,#), got %d", len(tr.Leaves))
	}
}

func TestParse_DigitShorthand(t *testing.T) {
	tr, err := Parse(`\d`)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(tr.Leaves) != 11 {
		t.Fatalf("expected 11 leaves for \\d (0-9, #), got %d", len(tr.Leaves))
	}
}

func TestParse_MalformedClass(t *testing.T) {
	_, err := Parse("[z-a]")
	if err == nil {
		t.Fatalf("expected an error for an inverted character class")
	}
}

func TestParse_UnbalancedParen(t *testing.T) {
	_, err := Parse("(a|b")
	if err == nil {
		t.Fatalf("expected an error for an unbalanced parenthesis")
	}
}

func TestParse_OperatorWithNoOperand(t *testing.T) {
	_, err := Parse("*a")
	if err == nil {
		t.Fatalf("expected an error for a leading '*' with no operand")
	}
}

func TestFollowpos_SimpleStar(t *testing.T) {
	// Classic Dragon Book example: (a|b)*a(b|b)* annotated with followpos;
	// here we check a minimal slice of that shape: a*b.
	tr, err := Parse("a*b")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	// Leaf 'a' is position 1, 'b' is position 2, '#' is position 3.
	var aLeaf, bLeaf *Node
	for _, n := range tr.Leaves {
		if n.Char == 'a' {
			aLeaf = n
		}
		if n.Char == 'b' {
			bLeaf = n
		}
	}
	if aLeaf == nil || bLeaf == nil {
		t.Fatalf("expected to find both 'a' and 'b' leaves")
	}
	if !aLeaf.Followpos.Contains(aLeaf.Pos) {
		t.Errorf("followpos(a) should contain itself (loop back through the star)")
	}
	if !aLeaf.Followpos.Contains(bLeaf.Pos) {
		t.Errorf("followpos(a) should contain position of 'b' (the star can exit to b)")
	}
}
