// Package geom defines the value tree produced by parsing an EWKT
// string. Coordinates are always two-dimensional: declared Z/M markers
// are consumed by the parser but carry no ordinates here.
package geom

import (
	"fmt"
	"strconv"
	"strings"
)

type Kind string

const (
	KindPoint              Kind = "POINT"
	KindLineString         Kind = "LINESTRING"
	KindPolygon            Kind = "POLYGON"
	KindMultiPoint         Kind = "MULTIPOINT"
	KindMultiLineString    Kind = "MULTILINESTRING"
	KindMultiPolygon       Kind = "MULTIPOLYGON"
	KindGeometryCollection Kind = "GEOMETRYCOLLECTION"
)

// KindOf maps an uppercased geometry keyword to its Kind.
func KindOf(name string) (Kind, bool) {
	switch kind := Kind(name); kind {
	case KindPoint, KindLineString, KindPolygon,
		KindMultiPoint, KindMultiLineString, KindMultiPolygon,
		KindGeometryCollection:
		return kind, true
	default:
		return "", false
	}
}

// Geometry is a node of the parsed value tree. String returns a
// s-expression form used by the REPL and the golden tests.
type Geometry interface {
	fmt.Stringer
	Kind() Kind
}

// EWKT is the result of one parse. SRID is nil when the input carried
// no SRID prefix; it is only ever set on the outermost geometry.
type EWKT struct {
	SRID     *int
	Geometry Geometry
}

func (e EWKT) String() string {
	if e.SRID == nil {
		return e.Geometry.String()
	}

	return parenthesize("srid", literal(strconv.Itoa(*e.SRID)), e.Geometry).String()
}

type Point struct {
	X, Y float64
}

func (p Point) String() string {
	return parenthesize("point", coord(p.X), coord(p.Y)).String()
}

func (p Point) Kind() Kind {
	return KindPoint
}

var _ Geometry = Point{}

// Ring is a polygon ring or a multiline component: at least one point,
// closure not checked.
type Ring []Point

func (r Ring) String() string {
	return parenthesize("ring", concat(r)).String()
}

type LineString struct {
	Points []Point
}

func (l LineString) String() string {
	return parenthesize("linestring", concat(l.Points)).String()
}

func (l LineString) Kind() Kind {
	return KindLineString
}

var _ Geometry = LineString{}

type Polygon struct {
	Rings []Ring
}

func (p Polygon) String() string {
	return parenthesize("polygon", concat(p.Rings)).String()
}

func (p Polygon) Kind() Kind {
	return KindPolygon
}

var _ Geometry = Polygon{}

type MultiPoint struct {
	Points []Point
}

func (m MultiPoint) String() string {
	return parenthesize("multipoint", concat(m.Points)).String()
}

func (m MultiPoint) Kind() Kind {
	return KindMultiPoint
}

var _ Geometry = MultiPoint{}

type MultiLineString struct {
	Lines []Ring
}

func (m MultiLineString) String() string {
	return parenthesize("multilinestring", concat(m.Lines)).String()
}

func (m MultiLineString) Kind() Kind {
	return KindMultiLineString
}

var _ Geometry = MultiLineString{}

type MultiPolygon struct {
	Polygons []Polygon
}

func (m MultiPolygon) String() string {
	return parenthesize("multipolygon", concat(m.Polygons)).String()
}

func (m MultiPolygon) Kind() Kind {
	return KindMultiPolygon
}

var _ Geometry = MultiPolygon{}

type Collection struct {
	Geometries []Geometry
}

func (c Collection) String() string {
	return parenthesize("geometrycollection", concat(c.Geometries)).String()
}

func (c Collection) Kind() Kind {
	return KindGeometryCollection
}

var _ Geometry = Collection{}

type coord float64

func (c coord) String() string {
	return strconv.FormatFloat(float64(c), 'g', -1, 64)
}

type literal string

func (l literal) String() string {
	return string(l)
}

func parenthesize(head string, elems ...fmt.Stringer) fmt.Stringer {
	var b strings.Builder
	b.WriteString("(")
	elemsStr := concat(elems).String()
	if head != "" {
		b.WriteString(head)
	}
	if elemsStr != "" {
		if head != "" {
			b.WriteString(" ")
		}
		b.WriteString(elemsStr)
	}
	b.WriteString(")")

	return &b
}

// concat returns a fmt.Stringer joining each element with a space.
func concat[T fmt.Stringer](elems []T) fmt.Stringer {
	var b strings.Builder
	for i, elem := range elems {
		str := elem.String()
		if str == "" {
			continue
		}
		if i != 0 {
			b.WriteString(" ")
		}
		b.WriteString(str)
	}

	return &b
}
