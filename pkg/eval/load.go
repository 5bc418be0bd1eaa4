package eval

import (
	"fmt"

	"scheme_go/pkg/ast"
	"scheme_go/pkg/parser"
)

// primLoad receives its argument unevaluated, evaluates it in the global
// frame to get a file name, then runs every form of that file.
func (ev *Evaluator) primLoad(args *ast.Value) (*ast.Value, error) {
	name, err := ev.Eval(ast.Car(args), ev.global)
	if err != nil {
		return nil, err
	}
	if !ast.IsString(name) && !ast.IsSym(name) {
		ev.warnf("load: expected a file name as a symbol or string")
		return ast.Nil, nil
	}
	src, err := ev.readFile(name.Str)
	if err != nil {
		ev.warnf("load: cannot open file %s", name.Str)
		return ast.Nil, nil
	}
	if err := ev.EvalSource(string(src)); err != nil {
		return nil, fmt.Errorf("load %s: %w", name.Str, err)
	}
	return ast.NewUnspecified(), nil
}

// LoadFile reads and evaluates the named file in the global frame.
func (ev *Evaluator) LoadFile(name string) error {
	src, err := ev.readFile(name)
	if err != nil {
		return fmt.Errorf("load: cannot open file %s: %w", name, err)
	}
	return ev.EvalSource(string(src))
}

// EvalSource evaluates every top-level form of src in order against the
// global frame, printing results the way Report does. It stops at the first
// parse or evaluation error.
func (ev *Evaluator) EvalSource(src string) error {
	p := parser.New(src)
	for p.More() {
		expr, err := p.Parse()
		if err != nil {
			return err
		}
		res, err := ev.EvalTop(expr)
		if err != nil {
			return err
		}
		ev.Report(expr, res)
	}
	return nil
}

// Report prints res on its own line unless expr is a define or res is
// absent or the unspecified marker.
func (ev *Evaluator) Report(expr, res *ast.Value) {
	if isDefine(expr) || ast.IsNil(res) || ast.IsUnspecified(res) {
		return
	}
	fmt.Fprintln(ev.out, res.String())
}

func isDefine(expr *ast.Value) bool {
	return ast.IsCell(expr) && ast.SymEqStr(ast.Car(expr), "define")
}
