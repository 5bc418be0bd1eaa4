package ast

import (
	"strconv"
	"strings"
)

// Tag represents the type of a Value
type Tag int

const (
	TNil      Tag = iota // absent value / empty list
	TInt                 // signed integer
	TFloat               // floating point value (float64)
	TRational            // exact fraction, always in lowest terms
	TString              // string literal
	TSym                 // symbol
	TCell                // cons cell
	TLambda              // closure
	TPrim                // native procedure
)

// PrimFn is a primitive function signature. Arguments arrive as a list of
// already evaluated values, except for forms the evaluator special-cases.
type PrimFn func(args *Value) (*Value, error)

// Value is the core tagged union type for all values
type Value struct {
	Tag Tag

	// TInt; numerator for TRational
	Int int64

	// TRational, always > 0
	Den int64

	// TFloat
	Float float64

	// TSym, TString
	Str string

	// TCell
	Car *Value
	Cdr *Value

	// TPrim
	Prim PrimFn

	// TLambda
	Params *Value
	Body   *Value
	LamEnv *Env
}

// Nil is the singleton absent value. It doubles as the empty list.
var Nil = &Value{Tag: TNil}

// UnspecifiedName is the name of the marker symbol returned by forms that
// have no useful result. It is never printed by the drivers.
const UnspecifiedName = "#<unspecified>"

// NewInt creates an integer value
func NewInt(i int64) *Value {
	return &Value{Tag: TInt, Int: i}
}

// NewFloat creates a floating point value
func NewFloat(f float64) *Value {
	return &Value{Tag: TFloat, Float: f}
}

// NewString creates a string value
func NewString(s string) *Value {
	return &Value{Tag: TString, Str: s}
}

// NewSym creates a symbol value
func NewSym(s string) *Value {
	return &Value{Tag: TSym, Str: s}
}

// NewUnspecified returns a fresh unspecified marker.
func NewUnspecified() *Value {
	return NewSym(UnspecifiedName)
}

// NewCell creates a cons cell
func NewCell(car, cdr *Value) *Value {
	return &Value{Tag: TCell, Car: car, Cdr: cdr}
}

// NewPrim creates a primitive function value
func NewPrim(fn PrimFn) *Value {
	return &Value{Tag: TPrim, Prim: fn}
}

// NewLambda creates a lambda/closure value
func NewLambda(params, body *Value, env *Env) *Value {
	return &Value{
		Tag:    TLambda,
		Params: params,
		Body:   body,
		LamEnv: env,
	}
}

// IsNil checks if a value is absent
func IsNil(v *Value) bool {
	return v == nil || v.Tag == TNil
}

// IsInt checks if a value is an integer
func IsInt(v *Value) bool {
	return v != nil && v.Tag == TInt
}

// IsFloat checks if a value is a floating point number
func IsFloat(v *Value) bool {
	return v != nil && v.Tag == TFloat
}

// IsRational checks if a value is an exact fraction
func IsRational(v *Value) bool {
	return v != nil && v.Tag == TRational
}

// IsNumber reports whether v is an integer, rational or float.
func IsNumber(v *Value) bool {
	return IsInt(v) || IsRational(v) || IsFloat(v)
}

// IsString checks if a value is a string
func IsString(v *Value) bool {
	return v != nil && v.Tag == TString
}

// IsSym checks if a value is a symbol
func IsSym(v *Value) bool {
	return v != nil && v.Tag == TSym
}

// IsCell checks if a value is a cons cell
func IsCell(v *Value) bool {
	return v != nil && v.Tag == TCell
}

// IsLambda checks if a value is a lambda
func IsLambda(v *Value) bool {
	return v != nil && v.Tag == TLambda
}

// IsPrim checks if a value is a primitive
func IsPrim(v *Value) bool {
	return v != nil && v.Tag == TPrim
}

// IsUnspecified checks for the unspecified marker
func IsUnspecified(v *Value) bool {
	return SymEqStr(v, UnspecifiedName)
}

// SymEqStr compares a symbol to a string
func SymEqStr(s *Value, str string) bool {
	if s == nil || s.Tag != TSym {
		return false
	}
	return s.Str == str
}

// Car returns the head of a cell, or Nil for anything else.
func Car(v *Value) *Value {
	if !IsCell(v) {
		return Nil
	}
	return orNil(v.Car)
}

// Cdr returns the tail of a cell, or Nil for anything else.
func Cdr(v *Value) *Value {
	if !IsCell(v) {
		return Nil
	}
	return orNil(v.Cdr)
}

func orNil(v *Value) *Value {
	if v == nil {
		return Nil
	}
	return v
}

// List helpers
func List1(a *Value) *Value {
	return NewCell(a, Nil)
}

func List2(a, b *Value) *Value {
	return NewCell(a, NewCell(b, Nil))
}

// ListLen returns the number of cells until a non-cell tail
func ListLen(v *Value) int {
	n := 0
	for IsCell(v) {
		n++
		v = v.Cdr
	}
	return n
}

// ListToSlice converts a list to a slice
func ListToSlice(v *Value) []*Value {
	var result []*Value
	for IsCell(v) {
		result = append(result, orNil(v.Car))
		v = v.Cdr
	}
	return result
}

// SliceToList converts a slice to a list
func SliceToList(items []*Value) *Value {
	result := Nil
	for i := len(items) - 1; i >= 0; i-- {
		result = NewCell(items[i], result)
	}
	return result
}

// Clone returns an independent deep copy of v. Closures keep sharing their
// environment; primitives keep sharing their function.
func Clone(v *Value) *Value {
	if v == nil {
		return nil
	}
	switch v.Tag {
	case TNil:
		return Nil
	case TCell:
		return NewCell(Clone(v.Car), Clone(v.Cdr))
	case TLambda:
		return NewLambda(Clone(v.Params), Clone(v.Body), v.LamEnv)
	default:
		c := *v
		return &c
	}
}

// String returns the printed representation of a value
func (v *Value) String() string {
	if v == nil {
		return "NULL"
	}
	switch v.Tag {
	case TNil:
		return "NULL"
	case TInt:
		return strconv.FormatInt(v.Int, 10)
	case TRational:
		if v.Den == 1 {
			return strconv.FormatInt(v.Int, 10)
		}
		return strconv.FormatInt(v.Int, 10) + "/" + strconv.FormatInt(v.Den, 10)
	case TFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case TString:
		return `"` + v.Str + `"`
	case TSym:
		return v.Str
	case TCell:
		return listToString(v)
	case TLambda:
		return "<lambda>"
	case TPrim:
		return "<builtin>"
	default:
		return "unknown"
	}
}

func listToString(v *Value) string {
	var sb strings.Builder
	sb.WriteByte('(')
	first := true
	for IsCell(v) {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(orNil(v.Car).String())
		v = v.Cdr
	}
	if !IsNil(v) {
		// Improper list
		sb.WriteString(" . ")
		sb.WriteString(v.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// TagName returns the name of a tag
func TagName(t Tag) string {
	switch t {
	case TNil:
		return "NIL"
	case TInt:
		return "INT"
	case TFloat:
		return "FLOAT"
	case TRational:
		return "RATIONAL"
	case TString:
		return "STRING"
	case TSym:
		return "SYM"
	case TCell:
		return "CELL"
	case TLambda:
		return "LAMBDA"
	case TPrim:
		return "PRIM"
	default:
		return "UNKNOWN(" + strconv.Itoa(int(t)) + ")"
	}
}
