package ast

import (
	"errors"
	"math"
)

// ErrZeroDenominator is returned when a fraction is built with a zero denominator.
var ErrZeroDenominator = errors.New("division by zero")

// ErrRationalOverflow is returned when a reduced fraction still needs a
// denominator of 2^63, which int64 cannot hold as a positive number.
var ErrRationalOverflow = errors.New("rational overflow")

// NewRational creates an exact fraction num/den in lowest terms with the sign
// carried on the numerator.
func NewRational(num, den int64) (*Value, error) {
	if den == 0 {
		return nil, ErrZeroDenominator
	}
	// g may be 2^63, which converts to MinInt64 and still divides exactly.
	if g := gcd(num, den); g > 1 {
		num /= int64(g)
		den /= int64(g)
	}
	if den < 0 {
		if den == math.MinInt64 || num == math.MinInt64 {
			return nil, ErrRationalOverflow
		}
		num = -num
		den = -den
	}
	return &Value{Tag: TRational, Int: num, Den: den}, nil
}

// ToRational promotes an integer or rational to a rational. It reports false
// for every other kind of value, floats included.
func ToRational(v *Value) (num, den int64, ok bool) {
	switch {
	case IsInt(v):
		return v.Int, 1, true
	case IsRational(v):
		return v.Int, v.Den, true
	}
	return 0, 0, false
}

// ToFloat converts any numeric value to float64.
func ToFloat(v *Value) (float64, bool) {
	switch {
	case IsInt(v):
		return float64(v.Int), true
	case IsRational(v):
		return float64(v.Int) / float64(v.Den), true
	case IsFloat(v):
		return v.Float, true
	}
	return 0, false
}

// gcd works on magnitudes so that MinInt64 does not overflow.
func gcd(a, b int64) uint64 {
	x, y := magnitude(a), magnitude(b)
	for y != 0 {
		x, y = y, x%y
	}
	return x
}

func magnitude(a int64) uint64 {
	if a < 0 {
		return -uint64(a)
	}
	return uint64(a)
}
