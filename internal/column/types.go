package column

import (
	"fmt"
	"strings"
)

// ElementType is the type of one scalar of a column.
type ElementType int

const (
	InvalidType ElementType = iota
	Bool
	Uint8
	Uint32
	Int32
	Int64
	Float32
	Float64
	String
)

var elementTypeNames = map[ElementType]string{
	Bool:    "bool",
	Uint8:   "uint8",
	Uint32:  "uint32",
	Int32:   "int32",
	Int64:   "int64",
	Float32: "float32",
	Float64: "float64",
	String:  "string",
}

// elementTypeAliases lets definitions use the names of the original typed
// attribute vectors as well.
var elementTypeAliases = map[string]ElementType{
	"float":  Float32,
	"double": Float64,
	"number": Float64,
	"color":  Uint32,
}

// ParseElementType reads an element type from its lower-case name.
func ParseElementType(s string) (ElementType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range elementTypeNames {
		if name == s {
			return t, nil
		}
	}
	if t, ok := elementTypeAliases[s]; ok {
		return t, nil
	}
	return InvalidType, fmt.Errorf("unknown element type %q", s)
}

func (t ElementType) String() string {
	if name, ok := elementTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ElementType(%d)", int(t))
}

// Valid reports whether t names a concrete element type.
func (t ElementType) Valid() bool {
	_, ok := elementTypeNames[t]
	return ok
}

// Width is the size in bytes of one element. Strings have no fixed width.
func (t ElementType) Width() int {
	switch t {
	case Bool, Uint8:
		return 1
	case Uint32, Int32, Float32:
		return 4
	case Int64, Float64:
		return 8
	default:
		return 0
	}
}

// IsNumeric reports whether t holds numbers.
func (t ElementType) IsNumeric() bool {
	return t != Bool && t != String && t.Valid()
}

// ComponentKind is the graph component type a column is defined over.
type ComponentKind string

const (
	Point ComponentKind = "point"
	Edge  ComponentKind = "edge"
)

// ParseComponentKind accepts "point", "vertex" and "edge".
func ParseComponentKind(s string) (ComponentKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "point", "vertex":
		return Point, nil
	case "edge":
		return Edge, nil
	}
	return "", fmt.Errorf("unknown component kind %q", s)
}

// Valid reports whether k is Point or Edge.
func (k ComponentKind) Valid() bool {
	return k == Point || k == Edge
}
