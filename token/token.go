package token

import "fmt"

type Kind int

const (
	EOF Kind = iota

	// Single-character tokens.
	LEFTPAREN
	RIGHTPAREN
	COMMA
	SEMICOLON
	EQUAL

	// Numeric literals.
	INTEGER
	FLOAT

	// Keywords. GEOMETRY is a category kind: every concrete geometry
	// keyword (POINT, POLYGON, ...) lexes to it, with the uppercased
	// name in Literal.
	SRID
	EXPONENT
	DIM
	GEOMETRY
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "end of string"
	case LEFTPAREN:
		return "`(`"
	case RIGHTPAREN:
		return "`)`"
	case COMMA:
		return "`,`"
	case SEMICOLON:
		return "`;`"
	case EQUAL:
		return "`=`"
	case INTEGER:
		return "integer"
	case FLOAT:
		return "float"
	case SRID:
		return "`SRID`"
	case EXPONENT:
		return "exponent"
	case DIM:
		return "dimension marker"
	case GEOMETRY:
		return "geometry type"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type Token struct {
	Kind    Kind
	Lexeme  string
	Pos     int // byte offset of the lexeme in the input
	Literal any
}

// Pretty returns the token as it appears in error messages.
func (t Token) Pretty() string {
	if t.Kind == EOF {
		return "end of string"
	}

	return "`" + t.Lexeme + "`"
}

func (t Token) String() string {
	return fmt.Sprintf("{%v, %q, %d, %v}", t.Kind, t.Lexeme, t.Pos, t.Literal)
}
