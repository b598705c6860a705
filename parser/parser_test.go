package parser_test

import (
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/takoeight0821/ewkt/geom"
	"github.com/takoeight0821/ewkt/parser"
	"github.com/takoeight0821/ewkt/utils"
)

func TestParseFromTestData(t *testing.T) {
	t.Parallel()
	s, err := os.ReadFile("../testdata/testcase.yaml")
	if err != nil {
		panic(err)
	}
	testcases := utils.ReadTestData(s)
	for _, testcase := range testcases {
		if expected, ok := testcase.Expected["parser"]; ok {
			completeParse(t, testcase.Label, testcase.Input, expected)
		} else {
			completeParse(t, testcase.Label, testcase.Input, "no expected value")
		}
	}
}

func BenchmarkFromTestData(b *testing.B) {
	s, err := os.ReadFile("../testdata/testcase.yaml")
	if err != nil {
		panic(err)
	}
	testcases := utils.ReadTestData(s)

	for _, testcase := range testcases {
		b.Run(testcase.Label, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				completeParse(b, testcase.Label, testcase.Input, testcase.Expected["parser"])
			}
		})
	}
}

type reporter interface {
	Errorf(format string, args ...interface{})
}

func completeParse(t reporter, label, input, expected string) {
	result, err := parser.NewParser(input).Parse()
	if err != nil {
		t.Errorf("Parse %s returned error: %v", label, err)
		return
	}

	if diff := cmp.Diff(expected, result.String()); diff != "" {
		t.Errorf("Parse %s mismatch (-want +got):\n%s", label, diff)
	}
}

func TestSyntaxError(t *testing.T) {
	t.Parallel()
	testcases := []struct {
		label    string
		input    string
		expected parser.SyntaxError
	}{
		{
			label: "missing close paren",
			input: "POINT(1 2",
			expected: parser.SyntaxError{
				Expected: "`)`", Actual: "end of string", Pos: 9, Input: "POINT(1 2",
			},
		},
		{
			label: "unknown geometry type",
			input: "FOO(1 2)",
			expected: parser.SyntaxError{
				Expected: "a supported geometry type", Actual: "`FOO`", Pos: 0, Input: "FOO(1 2)",
			},
		},
		{
			label: "third coordinate",
			input: "POINT Z (1 2 3)",
			expected: parser.SyntaxError{
				Expected: "`)`", Actual: "`3`", Pos: 13, Input: "POINT Z (1 2 3)",
			},
		},
		{
			label: "missing coordinate",
			input: "POINT(1)",
			expected: parser.SyntaxError{
				Expected: "a number", Actual: "`)`", Pos: 7, Input: "POINT(1)",
			},
		},
		{
			label: "srid not an integer",
			input: "SRID=a;POINT(1 2)",
			expected: parser.SyntaxError{
				Expected: "integer", Actual: "`a`", Pos: 5, Input: "SRID=a;POINT(1 2)",
			},
		},
		{
			label: "empty input",
			input: "",
			expected: parser.SyntaxError{
				Expected: "geometry type", Actual: "end of string", Pos: 0, Input: "",
			},
		},
		{
			label: "trailing input",
			input: "POINT(1 2)x",
			expected: parser.SyntaxError{
				Expected: "end of string", Actual: "`x`", Pos: 10, Input: "POINT(1 2)x",
			},
		},
		{
			label: "invalid character",
			input: "POINT(1 @)",
			expected: parser.SyntaxError{
				Expected: "a valid token", Actual: "`@`", Pos: 8, Input: "POINT(1 @)",
			},
		},
		{
			label: "missing exponent digits",
			input: "POINT(1E x)",
			expected: parser.SyntaxError{
				Expected: "integer", Actual: "`x`", Pos: 9, Input: "POINT(1E x)",
			},
		},
	}

	for _, testcase := range testcases {
		_, err := parser.NewParser(testcase.input).Parse()
		if err == nil {
			t.Errorf("Parse %s should fail", testcase.label)
			continue
		}

		var syntaxErr *parser.SyntaxError
		if !errors.As(err, &syntaxErr) {
			t.Errorf("Parse %s returned %v, expected *SyntaxError", testcase.label, err)
			continue
		}

		if diff := cmp.Diff(testcase.expected, *syntaxErr); diff != "" {
			t.Errorf("Parse %s mismatch (-want +got):\n%s", testcase.label, diff)
		}
	}
}

func TestGeometryKindDispatch(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		input    string
		expected geom.Kind
	}{
		{"POINT(1 2)", geom.KindPoint},
		{"LINESTRING(0 0,1 1)", geom.KindLineString},
		{"POLYGON((0 0,1 0,1 1,0 0))", geom.KindPolygon},
		{"MULTIPOINT(0 0,1 1)", geom.KindMultiPoint},
		{"MULTILINESTRING((0 0,1 1))", geom.KindMultiLineString},
		{"MULTIPOLYGON(((0 0,1 0,1 1,0 0)))", geom.KindMultiPolygon},
		{"GEOMETRYCOLLECTION(POINT(0 0))", geom.KindGeometryCollection},
		// The collection rule recurses through the dispatch table.
		{"GEOMETRYCOLLECTION(GEOMETRYCOLLECTION(POINT(0 0)),POLYGON((0 0,1 0,1 1,0 0)))", geom.KindGeometryCollection},
	}

	for _, testcase := range testcases {
		result, err := parser.NewParser(testcase.input).Parse()
		if err != nil {
			t.Errorf("Parse %s returned error: %v", testcase.input, err)
			continue
		}
		if result.Geometry.Kind() != testcase.expected {
			t.Errorf("Parse %s returned kind %s, expected %s", testcase.input, result.Geometry.Kind(), testcase.expected)
		}
	}
}

func TestParseDeterminism(t *testing.T) {
	t.Parallel()

	input := "SRID=4326;GEOMETRYCOLLECTION(POINT(1 2),POLYGON((0 0,4 0,4 4,0 4,0 0)))"

	first, err := parser.NewParser(input).Parse()
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	second, err := parser.NewParser(input).Parse()
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Parse is not deterministic (-first +second):\n%s", diff)
	}
}

func TestParserReuse(t *testing.T) {
	t.Parallel()

	p := parser.NewParser("POINT(1 2)")
	first, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	// Parse with no fresh input reuses the previous string.
	again, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if diff := cmp.Diff(first, again); diff != "" {
		t.Errorf("reparse mismatch (-want +got):\n%s", diff)
	}

	second, err := p.ParseString("LINESTRING(0 0,1 1)")
	if err != nil {
		t.Fatalf("ParseString returned error: %v", err)
	}
	if second.String() != "(linestring (point 0 0) (point 1 1))" {
		t.Errorf("ParseString returned %s", second)
	}

	// A failed parse leaves the parser usable.
	if _, err := p.ParseString("POINT(1"); err == nil {
		t.Fatal("ParseString should fail")
	}
	third, err := p.ParseString("POINT(3 4)")
	if err != nil {
		t.Fatalf("ParseString returned error: %v", err)
	}
	if third.String() != "(point 3 4)" {
		t.Errorf("ParseString returned %s", third)
	}
}
