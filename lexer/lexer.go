package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/takoeight0821/ewkt/token"
)

func Lex(source string) ([]token.Token, error) {
	lexer := lexer{
		source:  source,
		tokens:  []token.Token{},
		start:   0,
		current: 0,
	}

	var err error

	for !lexer.isAtEnd() {
		err = errors.Join(err, lexer.scanToken())
	}

	lexer.tokens = append(lexer.tokens, token.Token{Kind: token.EOF, Lexeme: "", Pos: len(source), Literal: nil})

	return lexer.tokens, err
}

type lexer struct {
	source string
	tokens []token.Token

	start   int // start of current lexeme
	current int // current position in source
}

func (l lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l lexer) peek() rune {
	if l.isAtEnd() {
		return '\x00'
	}
	runeValue, _ := utf8.DecodeRuneInString(l.source[l.current:])

	return runeValue
}

func (l *lexer) advance() rune {
	runeValue, width := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += width

	return runeValue
}

func (l *lexer) addToken(kind token.Kind, literal any) {
	text := l.source[l.start:l.current]
	l.tokens = append(l.tokens, token.Token{Kind: kind, Lexeme: text, Pos: l.start, Literal: literal})
}

type UnexpectedCharacterError struct {
	Pos  int
	Char rune
}

func (e UnexpectedCharacterError) Error() string {
	return fmt.Sprintf("unexpected character: %c at position %d", e.Char, e.Pos)
}

func (l *lexer) scanToken() error {
	l.start = l.current
	char := l.advance()
	switch char {
	case ' ', '\r', '\t', '\n':
		// ignore whitespace
		return nil
	default:
		if k, ok := getReservedSymbol(char); ok {
			l.addToken(k, nil)

			return nil
		}
		if isDigit(char) || char == '-' || char == '+' || char == '.' {
			return l.number(char)
		}
		if unicode.IsLetter(char) {
			return l.word()
		}
	}

	return UnexpectedCharacterError{Pos: l.start, Char: char}
}

func getReservedSymbol(char rune) (token.Kind, bool) {
	reservedSymbols := map[rune]token.Kind{
		'(': token.LEFTPAREN,
		')': token.RIGHTPAREN,
		',': token.COMMA,
		';': token.SEMICOLON,
		'=': token.EQUAL,
	}
	if k, ok := reservedSymbols[char]; ok {
		return k, true
	}

	return token.EOF, false
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

type InvalidNumberError struct {
	Pos    int
	Lexeme string
}

func (e InvalidNumberError) Error() string {
	return fmt.Sprintf("invalid number: %q at position %d", e.Lexeme, e.Pos)
}

// number scans a signed numeric literal. The exponent marker is a
// separate word token, so scanning stops at the first non-digit after
// the optional fraction part.
func (l *lexer) number(first rune) error {
	isFloat := first == '.'

	for isDigit(l.peek()) {
		l.advance()
	}
	if !isFloat && l.peek() == '.' {
		isFloat = true
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	lexeme := l.source[l.start:l.current]
	if isFloat {
		value, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return InvalidNumberError{Pos: l.start, Lexeme: lexeme}
		}
		l.addToken(token.FLOAT, value)

		return nil
	}

	value, err := strconv.Atoi(lexeme)
	if err != nil {
		return InvalidNumberError{Pos: l.start, Lexeme: lexeme}
	}
	l.addToken(token.INTEGER, value)

	return nil
}

// word scans a run of letters and classifies it. Keywords are
// case-insensitive; the normalized (uppercased) form is carried in the
// token's Literal.
func (l *lexer) word() error {
	for unicode.IsLetter(l.peek()) {
		l.advance()
	}

	word := strings.ToUpper(l.source[l.start:l.current])

	switch word {
	case "SRID":
		l.addToken(token.SRID, nil)

		return nil
	case "E":
		l.addToken(token.EXPONENT, nil)

		return nil
	case "Z", "M", "ZM":
		l.addToken(token.DIM, word)

		return nil
	}

	if isGeometryKeyword(word) {
		l.addToken(token.GEOMETRY, word)

		return nil
	}

	// A dimension marker may be glued to the keyword, as in POINTZ or
	// MULTILINESTRINGZM. Split it off into its own token.
	for _, dim := range []string{"ZM", "Z", "M"} {
		name := strings.TrimSuffix(word, dim)
		if name != word && isGeometryKeyword(name) {
			split := l.current - len(dim)
			l.tokens = append(l.tokens,
				token.Token{Kind: token.GEOMETRY, Lexeme: l.source[l.start:split], Pos: l.start, Literal: name},
				token.Token{Kind: token.DIM, Lexeme: l.source[split:l.current], Pos: split, Literal: dim})

			return nil
		}
	}

	// Unknown words still lex as GEOMETRY so the parser can report
	// them as unsupported geometry types.
	l.addToken(token.GEOMETRY, word)

	return nil
}

func isGeometryKeyword(word string) bool {
	switch word {
	case "POINT", "LINESTRING", "POLYGON",
		"MULTIPOINT", "MULTILINESTRING", "MULTIPOLYGON",
		"GEOMETRYCOLLECTION":
		return true
	default:
		return false
	}
}
