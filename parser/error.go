package parser

import "fmt"

// SyntaxError is the only error kind raised by this package. Pos is a
// byte offset into Input, or -1 when the offset is unknown.
type SyntaxError struct {
	Expected string
	Actual   string
	Pos      int
	Input    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: expected %s, found %s at position %d in %q",
		e.Expected, e.Actual, e.Pos, e.Input)
}
