package parser

import (
	"errors"
	"math"

	"github.com/takoeight0821/ewkt/geom"
	"github.com/takoeight0821/ewkt/lexer"
	"github.com/takoeight0821/ewkt/token"
)

// Parser is a recursive-descent parser for EWKT. It lexes its input
// anew on every Parse call, so a single instance may be reused
// sequentially but not shared between goroutines.
type Parser struct {
	input   string
	tokens  []token.Token
	current int
}

func NewParser(input string) *Parser {
	return &Parser{input: input}
}

// Parse parses the current input from the start. It either returns a
// complete value tree or a *SyntaxError; there are no partial results.
func (p *Parser) Parse() (*geom.EWKT, error) {
	tokens, err := lexer.Lex(p.input)
	if err != nil {
		return nil, p.lexError(err)
	}
	p.tokens = tokens
	p.current = 0

	return p.ewkt()
}

// ParseString replaces the input and parses it.
func (p *Parser) ParseString(input string) (*geom.EWKT, error) {
	p.input = input

	return p.Parse()
}

// ewkt = srid? geometry ;
func (p *Parser) ewkt() (*geom.EWKT, error) {
	var srid *int
	if p.match(token.SRID) {
		s, err := p.srid()
		if err != nil {
			return nil, err
		}
		srid = &s
	}

	geometry, err := p.geometry()
	if err != nil {
		return nil, err
	}

	if !p.isAtEnd() {
		return nil, p.unexpected(p.peek(), "end of string")
	}

	return &geom.EWKT{SRID: srid, Geometry: geometry}, nil
}

// srid = "SRID" "=" INTEGER ";" ;
func (p *Parser) srid() (int, error) {
	if _, err := p.consume(token.SRID); err != nil {
		return 0, err
	}
	if _, err := p.consume(token.EQUAL); err != nil {
		return 0, err
	}
	tok, err := p.consume(token.INTEGER)
	if err != nil {
		return 0, err
	}
	if _, err := p.consume(token.SEMICOLON); err != nil {
		return 0, err
	}

	return tok.Literal.(int), nil
}

// bodyRules is the closed dispatch table from geometry kind to its
// body production. Populated in init because collectionBody recurses
// into geometry, which reads the table back.
var bodyRules map[geom.Kind]func(*Parser) (geom.Geometry, error)

func init() {
	bodyRules = map[geom.Kind]func(*Parser) (geom.Geometry, error){
		geom.KindPoint:              (*Parser).pointBody,
		geom.KindLineString:         (*Parser).lineStringBody,
		geom.KindPolygon:            (*Parser).polygonBody,
		geom.KindMultiPoint:         (*Parser).multiPointBody,
		geom.KindMultiLineString:    (*Parser).multiLineStringBody,
		geom.KindMultiPolygon:       (*Parser).multiPolygonBody,
		geom.KindGeometryCollection: (*Parser).collectionBody,
	}
}

// geometry = GEOMETRY dim? "(" body ")" ;
// dim = "Z" | "M" | "ZM" ;
func (p *Parser) geometry() (geom.Geometry, error) {
	tok, err := p.consume(token.GEOMETRY)
	if err != nil {
		return nil, err
	}

	kind, ok := geom.KindOf(tok.Literal.(string))
	if !ok {
		return nil, p.unexpected(tok, "a supported geometry type")
	}
	body := bodyRules[kind]

	// A declared dimension is consumed but not retained: the value
	// tree is strictly two-dimensional.
	if p.match(token.DIM) {
		p.advance()
	}

	if _, err := p.consume(token.LEFTPAREN); err != nil {
		return nil, err
	}
	geometry, err := body(p)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RIGHTPAREN); err != nil {
		return nil, err
	}

	return geometry, nil
}

func (p *Parser) pointBody() (geom.Geometry, error) {
	return p.point()
}

func (p *Parser) lineStringBody() (geom.Geometry, error) {
	points, err := p.pointList()
	if err != nil {
		return nil, err
	}

	return geom.LineString{Points: points}, nil
}

func (p *Parser) multiPointBody() (geom.Geometry, error) {
	points, err := p.pointList()
	if err != nil {
		return nil, err
	}

	return geom.MultiPoint{Points: points}, nil
}

func (p *Parser) polygonBody() (geom.Geometry, error) {
	rings, err := p.pointLists()
	if err != nil {
		return nil, err
	}

	return geom.Polygon{Rings: rings}, nil
}

func (p *Parser) multiLineStringBody() (geom.Geometry, error) {
	lines, err := p.pointLists()
	if err != nil {
		return nil, err
	}

	return geom.MultiLineString{Lines: lines}, nil
}

// multiPolygonBody = "(" pointLists ")" ("," "(" pointLists ")")* ;
func (p *Parser) multiPolygonBody() (geom.Geometry, error) {
	polygons := []geom.Polygon{}
	for {
		if _, err := p.consume(token.LEFTPAREN); err != nil {
			return nil, err
		}
		rings, err := p.pointLists()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RIGHTPAREN); err != nil {
			return nil, err
		}
		polygons = append(polygons, geom.Polygon{Rings: rings})

		if !p.match(token.COMMA) {
			return geom.MultiPolygon{Polygons: polygons}, nil
		}
		p.advance()
	}
}

// collectionBody = geometry ("," geometry)* ;
func (p *Parser) collectionBody() (geom.Geometry, error) {
	geometries := []geom.Geometry{}
	for {
		geometry, err := p.geometry()
		if err != nil {
			return nil, err
		}
		geometries = append(geometries, geometry)

		if !p.match(token.COMMA) {
			return geom.Collection{Geometries: geometries}, nil
		}
		p.advance()
	}
}

// pointList = point ("," point)* ;
func (p *Parser) pointList() ([]geom.Point, error) {
	points := []geom.Point{}
	for {
		point, err := p.point()
		if err != nil {
			return nil, err
		}
		points = append(points, point)

		if !p.match(token.COMMA) {
			return points, nil
		}
		p.advance()
	}
}

// pointLists = "(" pointList ")" ("," "(" pointList ")")* ;
func (p *Parser) pointLists() ([]geom.Ring, error) {
	rings := []geom.Ring{}
	for {
		if _, err := p.consume(token.LEFTPAREN); err != nil {
			return nil, err
		}
		points, err := p.pointList()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RIGHTPAREN); err != nil {
			return nil, err
		}
		rings = append(rings, geom.Ring(points))

		if !p.match(token.COMMA) {
			return rings, nil
		}
		p.advance()
	}
}

// point = coordinate coordinate ;
func (p *Parser) point() (geom.Point, error) {
	x, err := p.coordinate()
	if err != nil {
		return geom.Point{}, err
	}
	y, err := p.coordinate()
	if err != nil {
		return geom.Point{}, err
	}

	return geom.Point{X: x, Y: y}, nil
}

// coordinate = (FLOAT | INTEGER) ("E" INTEGER)? ;
func (p *Parser) coordinate() (float64, error) {
	var mantissa float64
	switch {
	case p.match(token.INTEGER):
		mantissa = float64(p.advance().Literal.(int))
	case p.match(token.FLOAT):
		mantissa = p.advance().Literal.(float64)
	default:
		return 0, p.unexpected(p.peek(), "a number")
	}

	if p.match(token.EXPONENT) {
		p.advance()
		tok, err := p.consume(token.INTEGER)
		if err != nil {
			return 0, err
		}
		mantissa *= math.Pow(10, float64(tok.Literal.(int)))
	}

	return mantissa, nil
}

func (p Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}

	return p.previous()
}

func (p Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p Parser) match(kind token.Kind) bool {
	if p.isAtEnd() {
		return false
	}

	return p.peek().Kind == kind
}

func (p *Parser) consume(kind token.Kind) (token.Token, error) {
	if p.match(kind) {
		return p.advance(), nil
	}

	return token.Token{}, p.unexpected(p.peek(), kind.String())
}

func (p Parser) unexpected(tok token.Token, expected string) error {
	return &SyntaxError{
		Expected: expected,
		Actual:   tok.Pretty(),
		Pos:      tok.Pos,
		Input:    p.input,
	}
}

// lexError reports the first character-level error as a SyntaxError,
// keeping the single-error-kind contract of this package.
func (p Parser) lexError(err error) error {
	var unexpected lexer.UnexpectedCharacterError
	if errors.As(err, &unexpected) {
		return &SyntaxError{
			Expected: "a valid token",
			Actual:   "`" + string(unexpected.Char) + "`",
			Pos:      unexpected.Pos,
			Input:    p.input,
		}
	}

	var invalid lexer.InvalidNumberError
	if errors.As(err, &invalid) {
		return &SyntaxError{
			Expected: "a number",
			Actual:   "`" + invalid.Lexeme + "`",
			Pos:      invalid.Pos,
			Input:    p.input,
		}
	}

	return &SyntaxError{Expected: "a valid token", Actual: "`" + err.Error() + "`", Pos: -1, Input: p.input}
}
