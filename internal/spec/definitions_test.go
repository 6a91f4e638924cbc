package spec_test

import (
	"strings"
	"testing"

	"github.com/nihei9/vartanlite/internal/spec"
)

func TestReadDefinitions_Basic(t *testing.T) {
	src := "# comment\n\nid : [a-z]+\nnum:[0-9]+\n"
	defs, err := spec.ReadDefinitions(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadDefinitions returned error: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(defs))
	}
	if defs[0].Name != "id" || defs[1].Name != "num" {
		t.Fatalf("expected definitions in declaration order [id,num], got %+v", defs)
	}
}

func TestReadDefinitions_MissingColon(t *testing.T) {
	_, err := spec.ReadDefinitions(strings.NewReader("id [a-z]+\n"))
	if err == nil {
		t.Fatalf("expected an error for a line missing ':'")
	}
}

func TestReadDefinitions_Empty(t *testing.T) {
	_, err := spec.ReadDefinitions(strings.NewReader("# only a comment\n"))
	if err == nil {
		t.Fatalf("expected an error for a definitions file with no definitions")
	}
}

func TestReadDefinitions_DuplicateOverwritesButKeepsOrder(t *testing.T) {
	src := "a : x\nb : y\na : z\n"
	defs, err := spec.ReadDefinitions(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadDefinitions returned error: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions (a, b), got %d", len(defs))
	}
	if defs[0].Name != "a" || defs[0].Regex != "z" {
		t.Fatalf("expected the later 'a' regex to win while keeping first-seen order, got %+v", defs[0])
	}
}
