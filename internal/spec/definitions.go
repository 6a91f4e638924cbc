// Package spec implements the external file-format readers of spec.md §6:
// the regular-definition file, the grammar file, and the inter-stage token
// file.
//
// Grounded on nihei9/vartan's cmd/vartan file-reading idiom (scan line by
// line) and original_source's line-oriented definition/grammar readers.
// The definition and grammar readers stop at the first malformed line and
// return an error carrying that line's number.
package spec

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/nihei9/vartanlite/internal/lexer"
	"github.com/nihei9/vartanlite/internal/specerr"
)

// ReadDefinitions parses a regular-definition file: one definition per
// line, "name : regex"; '#' comment lines and blank lines ignored;
// whitespace around ':' and at line ends stripped; duplicate names
// overwrite, and the order of first appearance defines priority.
func ReadDefinitions(r io.Reader) ([]lexer.Definition, error) {
	sc := bufio.NewScanner(r)
	line := 0

	order := []string{}
	byName := map[string]string{}

	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}

		idx := strings.Index(raw, ":")
		if idx < 0 {
			return nil, &specerr.InvalidDefinition{Line: line, Cause: fmt.Errorf("missing ':'")}
		}
		name := strings.TrimSpace(raw[:idx])
		regex := strings.TrimSpace(raw[idx+1:])
		if name == "" {
			return nil, &specerr.InvalidDefinition{Line: line, Cause: fmt.Errorf("empty name")}
		}
		if regex == "" {
			return nil, &specerr.InvalidDefinition{Line: line, Cause: fmt.Errorf("empty regex")}
		}

		if _, seen := byName[name]; !seen {
			order = append(order, name)
		}
		byName[name] = regex
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	defs := make([]lexer.Definition, 0, len(order))
	for _, name := range order {
		defs = append(defs, lexer.Definition{Name: name, Regex: byName[name]})
	}
	if len(defs) == 0 {
		return nil, specerr.ErrEmptyDefinitions
	}
	return defs, nil
}
