package eval

import "scheme_go/pkg/ast"

func (ev *Evaluator) registerPrimitives() {
	prims := []struct {
		name string
		fn   ast.PrimFn
	}{
		{"cons", primCons},
		{"car", ev.primCar},
		{"cdr", ev.primCdr},
		{"map", ev.primMap},
		{"append", ev.primAppend},
		{"null?", primNull},
		{"length", primLength},
		{"apply", ev.primApply},
		{"eval", ev.primEval},
		{"load", ev.primLoad},
		{"equal?", primEqual},
	}
	for _, p := range prims {
		ev.global.Define(p.name, ast.NewPrim(p.fn))
	}
}

// getTwoArgs extracts the first two arguments, reporting whether both were
// supplied.
func getTwoArgs(args *ast.Value) (*ast.Value, *ast.Value, bool) {
	return ast.Car(args), ast.Car(ast.Cdr(args)), ast.ListLen(args) >= 2
}

func primCons(args *ast.Value) (*ast.Value, error) {
	a, b, _ := getTwoArgs(args)
	return ast.NewCell(a, b), nil
}

func (ev *Evaluator) primCar(args *ast.Value) (*ast.Value, error) {
	arg := ast.Car(args)
	if !ast.IsCell(arg) {
		ev.warnf("expected pair")
		return ast.Nil, nil
	}
	return ast.Car(arg), nil
}

func (ev *Evaluator) primCdr(args *ast.Value) (*ast.Value, error) {
	arg := ast.Car(args)
	if !ast.IsCell(arg) {
		ev.warnf("expected pair")
		return ast.Nil, nil
	}
	return ast.Cdr(arg), nil
}

// primMap applies proc to every element through the ordinary application
// path and collects the results in order.
func (ev *Evaluator) primMap(args *ast.Value) (*ast.Value, error) {
	proc, list, ok := getTwoArgs(args)
	if !ok || ast.IsNil(proc) {
		ev.warnf("map: expected 2 arguments")
		return ast.Nil, nil
	}
	var results []*ast.Value
	for ; ast.IsCell(list); list = list.Cdr {
		r, err := ev.call(proc, []*ast.Value{ast.Car(list)})
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return ast.SliceToList(results), nil
}

// primAppend copies the cells of the first list and ends the copy with the
// second argument as is.
func (ev *Evaluator) primAppend(args *ast.Value) (*ast.Value, error) {
	first, second, ok := getTwoArgs(args)
	if !ok {
		ev.warnf("append: expected 2 arguments")
		return ast.Nil, nil
	}
	if ast.IsNil(first) {
		return second, nil
	}
	if !ast.IsCell(first) {
		ev.warnf("append: first argument is not a list")
		return ast.Nil, nil
	}
	items := ast.ListToSlice(first)
	result := second
	for i := len(items) - 1; i >= 0; i-- {
		result = ast.NewCell(items[i], result)
	}
	return result, nil
}

func primNull(args *ast.Value) (*ast.Value, error) {
	if ast.IsNil(ast.Car(args)) {
		return ast.NewInt(1), nil
	}
	return ast.NewInt(0), nil
}

func primLength(args *ast.Value) (*ast.Value, error) {
	return ast.NewInt(int64(ast.ListLen(ast.Car(args)))), nil
}

// primApply calls a primitive with the argument forms evaluated in the
// global frame; anything else is applied by evaluating (proc . args) there.
func (ev *Evaluator) primApply(args *ast.Value) (*ast.Value, error) {
	proc, list, ok := getTwoArgs(args)
	if !ok || ast.IsNil(proc) {
		ev.warnf("apply: expected 2 arguments")
		return ast.Nil, nil
	}
	if ast.IsPrim(proc) {
		vals, err := ev.evalArgs(list, ev.global)
		if err != nil {
			return nil, err
		}
		return proc.Prim(ast.SliceToList(vals))
	}
	return ev.Eval(ast.NewCell(proc, list), ev.global)
}

func (ev *Evaluator) primEval(args *ast.Value) (*ast.Value, error) {
	expr := ast.Car(args)
	if ast.IsNil(expr) {
		ev.warnf("eval: expected an expression")
		return ast.Nil, nil
	}
	return ev.Eval(expr, ev.global)
}

func primEqual(args *ast.Value) (*ast.Value, error) {
	a, b, _ := getTwoArgs(args)
	if ast.IsNil(a) || ast.IsNil(b) {
		return ast.Nil, nil
	}
	if ast.Equal(a, b) {
		return ast.NewInt(1), nil
	}
	return ast.NewInt(0), nil
}
