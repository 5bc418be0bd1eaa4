package eval

import (
	"fmt"

	"scheme_go/pkg/ast"
)

// ratio is an accumulator for the exact arithmetic operators.
type ratio struct {
	num, den int64
}

func (r ratio) value() (*ast.Value, error) {
	return ast.NewRational(r.num, r.den)
}

// reduce builds the next accumulator in lowest terms.
func reduce(num, den int64) (ratio, error) {
	v, err := ast.NewRational(num, den)
	if err != nil {
		return ratio{}, err
	}
	return ratio{v.Int, v.Den}, nil
}

func (ev *Evaluator) evalOperator(op operator, args *ast.Value, env *ast.Env) (*ast.Value, error) {
	switch op {
	case opAdd:
		return ev.foldArith(op, args, env, ratio{0, 1}, func(a, b ratio) (ratio, error) {
			return reduce(a.num*b.den+a.den*b.num, a.den*b.den)
		})
	case opMul:
		return ev.foldArith(op, args, env, ratio{1, 1}, func(a, b ratio) (ratio, error) {
			return reduce(a.num*b.num, a.den*b.den)
		})
	case opSub:
		return ev.evalSub(args, env)
	case opDiv:
		return ev.evalDiv(args, env)
	case opLt, opGt, opEq:
		return ev.evalCompare(op, args, env)
	case opAnd, opOr:
		return ev.evalLogic(op, args, env)
	}
	return ast.Nil, nil
}

// evalRatio evaluates expr and promotes the result to a fraction. Floats and
// non-numbers are rejected.
func (ev *Evaluator) evalRatio(op operator, expr *ast.Value, env *ast.Env) (ratio, error) {
	v, err := ev.Eval(expr, env)
	if err != nil {
		return ratio{}, err
	}
	num, den, ok := ast.ToRational(v)
	if !ok {
		return ratio{}, fmt.Errorf("%s: %w, got %s", op, ErrNotRational, v)
	}
	return ratio{num, den}, nil
}

func (ev *Evaluator) foldArith(op operator, args *ast.Value, env *ast.Env, acc ratio, step func(a, b ratio) (ratio, error)) (*ast.Value, error) {
	for it := args; ast.IsCell(it); it = it.Cdr {
		r, err := ev.evalRatio(op, ast.Car(it), env)
		if err != nil {
			return nil, err
		}
		if acc, err = step(acc, r); err != nil {
			return nil, err
		}
	}
	return acc.value()
}

func (ev *Evaluator) evalSub(args *ast.Value, env *ast.Env) (*ast.Value, error) {
	if !ast.IsCell(args) {
		ev.warnf("expected at least 1 argument for '-'")
		return ast.Nil, nil
	}
	first, err := ev.evalRatio(opSub, ast.Car(args), env)
	if err != nil {
		return nil, err
	}
	rest := ast.Cdr(args)
	if !ast.IsCell(rest) {
		return ast.NewRational(-first.num, first.den)
	}
	return ev.foldArith(opSub, rest, env, first, func(a, b ratio) (ratio, error) {
		return reduce(a.num*b.den-a.den*b.num, a.den*b.den)
	})
}

func (ev *Evaluator) evalDiv(args *ast.Value, env *ast.Env) (*ast.Value, error) {
	if !ast.IsCell(args) {
		ev.warnf("expected at least 2 arguments for '/'")
		return ast.Nil, nil
	}
	first, err := ev.evalRatio(opDiv, ast.Car(args), env)
	if err != nil {
		return nil, err
	}
	return ev.foldArith(opDiv, ast.Cdr(args), env, first, func(a, b ratio) (ratio, error) {
		if b.num == 0 {
			return ratio{}, fmt.Errorf("/: %w", ErrDivisionByZero)
		}
		return reduce(a.num*b.den, a.den*b.num)
	})
}

// evalCompare checks each adjacent pair of arguments in turn and stops
// evaluating at the first pair that fails. Operands are compared as float64.
func (ev *Evaluator) evalCompare(op operator, args *ast.Value, env *ast.Env) (*ast.Value, error) {
	if ast.ListLen(args) < 2 {
		ev.warnf("expected at least 2 arguments for relational operator")
		return ast.Nil, nil
	}
	prev, err := ev.evalFloat(op, ast.Car(args), env)
	if err != nil {
		return nil, err
	}
	for it := ast.Cdr(args); ast.IsCell(it); it = it.Cdr {
		cur, err := ev.evalFloat(op, ast.Car(it), env)
		if err != nil {
			return nil, err
		}
		var holds bool
		switch op {
		case opLt:
			holds = prev < cur
		case opGt:
			holds = prev > cur
		default:
			holds = prev == cur
		}
		if !holds {
			return ast.NewInt(0), nil
		}
		prev = cur
	}
	return ast.NewInt(1), nil
}

func (ev *Evaluator) evalFloat(op operator, expr *ast.Value, env *ast.Env) (float64, error) {
	v, err := ev.Eval(expr, env)
	if err != nil {
		return 0, err
	}
	f, ok := ast.ToFloat(v)
	if !ok {
		return 0, fmt.Errorf("%s: %w, got %s", op, ErrNotNumber, v)
	}
	return f, nil
}

// evalLogic folds every argument, without short-circuiting, over its
// integer value.
func (ev *Evaluator) evalLogic(op operator, args *ast.Value, env *ast.Env) (*ast.Value, error) {
	if !ast.IsCell(args) {
		ev.warnf("expected at least 1 argument for logical operator")
		return ast.Nil, nil
	}
	result := op == opAnd
	for it := args; ast.IsCell(it); it = it.Cdr {
		v, err := ev.Eval(ast.Car(it), env)
		if err != nil {
			return nil, err
		}
		var set bool
		switch {
		case ast.IsInt(v), ast.IsRational(v):
			set = v.Int != 0
		default:
			return nil, fmt.Errorf("%s: %w, got %s", op, ErrNotInteger, v)
		}
		if op == opAnd {
			result = result && set
		} else {
			result = result || set
		}
	}
	if result {
		return ast.NewInt(1), nil
	}
	return ast.NewInt(0), nil
}
