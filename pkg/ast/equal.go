package ast

// Equal reports structural equality. Numbers compare by value across
// integer, rational and float; strings and symbols by text; cells
// element-wise. Closures and primitives are only equal to themselves.
func Equal(a, b *Value) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Tag != b.Tag {
		if IsNumber(a) && IsNumber(b) {
			fa, _ := ToFloat(a)
			fb, _ := ToFloat(b)
			return fa == fb
		}
		return false
	}
	switch a.Tag {
	case TNil:
		return true
	case TInt:
		return a.Int == b.Int
	case TFloat:
		return a.Float == b.Float
	case TRational:
		return a.Int == b.Int && a.Den == b.Den
	case TString, TSym:
		return a.Str == b.Str
	case TCell:
		return Equal(Car(a), Car(b)) && Equal(Cdr(a), Cdr(b))
	default:
		return false
	}
}
