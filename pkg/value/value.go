/*
Package value models a parsed configuration source as a tree of typed nodes.

A tree is built from decoder output with FromNative and consumed by the
flattener. The set of node kinds is closed: Null, Bool, Int, Float, String,
Table and Array are the only implementations of Value.

	tree, err := value.FromNative(map[string]any{
		"foo": map[string]any{"bar": 10},
	})
*/
package value

import (
	"strconv"
)

// Kind identifies the variant of a Value
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindTable
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTable:
		return "table"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is a single node of a configuration tree.
type Value interface {
	Kind() Kind

	// sealed keeps the set of variants closed to this package
	sealed()
}

// Scalar is implemented by the variants that have a string form.
type Scalar interface {
	Value

	// String returns the canonical environment-variable form of the value
	String() string
}

type (
	// Null is an explicit null/nil value
	Null struct{}

	// Bool is a boolean value
	Bool bool

	// Int is a signed integer value
	Int int64

	// Float is a floating point value
	Float float64

	// String is a string value
	String string

	// Table maps keys to child values
	Table map[string]Value

	// Array is an ordered sequence of values
	Array []Value
)

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Int) Kind() Kind    { return KindInt }
func (Float) Kind() Kind  { return KindFloat }
func (String) Kind() Kind { return KindString }
func (Table) Kind() Kind  { return KindTable }
func (Array) Kind() Kind  { return KindArray }

func (Null) sealed()   {}
func (Bool) sealed()   {}
func (Int) sealed()    {}
func (Float) sealed()  {}
func (String) sealed() {}
func (Table) sealed()  {}
func (Array) sealed()  {}

// String renders null the way it appears inside joined arrays.
func (Null) String() string { return "nil" }

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// String renders the shortest decimal form that round-trips, never using
// exponent notation.
func (f Float) String() string { return strconv.FormatFloat(float64(f), 'f', -1, 64) }

func (s String) String() string { return string(s) }
