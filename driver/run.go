package driver

import (
	"fmt"
	"strings"

	"github.com/takoeight0821/ewkt/geom"
	"github.com/takoeight0821/ewkt/parser"
)

// ParseString parses a single EWKT literal.
func ParseString(source string) (*geom.EWKT, error) {
	result, err := parser.NewParser(source).Parse()
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	return result, nil
}

// ParseLines parses a line-oriented corpus: one EWKT literal per line,
// blank lines and lines starting with "--" skipped.
func ParseLines(source string) ([]*geom.EWKT, error) {
	results := []*geom.EWKT{}
	for i, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}

		result, err := parser.NewParser(line).Parse()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		results = append(results, result)
	}

	return results, nil
}
