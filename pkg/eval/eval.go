package eval

import (
	"fmt"
	"io"
	"os"

	"scheme_go/pkg/ast"
)

// Evaluator owns the global frame shared by every top-level form, whether it
// comes from the REPL or from a loaded file. It is not safe for concurrent use.
//
// Eval is plainly recursive: deeply nested or runaway recursive programs grow
// the Go stack until the runtime aborts.
type Evaluator struct {
	global   *ast.Env
	out      io.Writer
	diag     io.Writer
	readFile func(name string) ([]byte, error)
}

// Option configures an Evaluator
type Option func(*Evaluator)

// WithOutput sets where results printed by load and EvalSource go.
func WithOutput(w io.Writer) Option {
	return func(ev *Evaluator) { ev.out = w }
}

// WithDiagnostics sets where non-fatal diagnostics such as "expected pair" go.
func WithDiagnostics(w io.Writer) Option {
	return func(ev *Evaluator) { ev.diag = w }
}

// WithFileReader replaces os.ReadFile for load.
func WithFileReader(fn func(name string) ([]byte, error)) Option {
	return func(ev *Evaluator) { ev.readFile = fn }
}

// New creates an evaluator with a fresh global frame holding the built-in
// procedures.
func New(opts ...Option) *Evaluator {
	ev := &Evaluator{
		global:   ast.NewEnv(nil),
		out:      os.Stdout,
		diag:     os.Stderr,
		readFile: os.ReadFile,
	}
	for _, opt := range opts {
		opt(ev)
	}
	ev.registerPrimitives()
	return ev
}

// Global returns the global frame.
func (ev *Evaluator) Global() *ast.Env {
	return ev.global
}

// EvalTop evaluates a top-level form in the global frame.
func (ev *Evaluator) EvalTop(expr *ast.Value) (*ast.Value, error) {
	return ev.Eval(expr, ev.global)
}

// Eval is the main evaluation function. Shape errors are reported on the
// diagnostic writer and yield ast.Nil; numeric errors are returned.
func (ev *Evaluator) Eval(expr *ast.Value, env *ast.Env) (*ast.Value, error) {
	if ast.IsNil(expr) {
		return ast.Nil, nil
	}

	switch expr.Tag {
	case ast.TInt, ast.TFloat, ast.TRational, ast.TString, ast.TLambda, ast.TPrim:
		return expr, nil

	case ast.TSym:
		if v, ok := env.Lookup(expr.Str); ok && !ast.IsNil(v) {
			return v, nil
		}
		if operatorOf(expr) != opNone || isBoolean(expr) {
			return expr, nil
		}
		return ast.Nil, nil

	case ast.TCell:
		head := ast.Car(expr)
		args := ast.Cdr(expr)

		switch formOf(head) {
		case formQuote:
			return ast.Car(args), nil
		case formLambda:
			// Refers into the form being evaluated; define clones it
			// before it outlives that form.
			return ast.NewLambda(ast.Car(args), ast.Car(ast.Cdr(args)), env), nil
		case formDefine:
			return ev.evalDefine(args, env)
		case formIf:
			return ev.evalIf(args, env)
		}

		return ev.evalApplication(head, args, env)
	}

	return ast.Nil, nil
}

func (ev *Evaluator) evalDefine(args *ast.Value, env *ast.Env) (*ast.Value, error) {
	target := ast.Car(args)

	switch {
	case ast.IsSym(target):
		v, err := ev.Eval(ast.Car(ast.Cdr(args)), env)
		if err != nil {
			return nil, err
		}
		stored := ast.Clone(v)
		env.Define(target.Str, stored)
		return stored, nil

	case ast.IsCell(target):
		name := ast.Car(target)
		if !ast.IsSym(name) {
			ev.warnf("define: expected a procedure name, got %s", name)
			return ast.Nil, nil
		}
		// The closure gets its own empty frame below env; recursive calls
		// find name through the parent link.
		lamEnv := ast.NewEnv(env)
		params := ast.Clone(ast.Cdr(target))
		body := ast.Clone(ast.Car(ast.Cdr(args)))
		lam := ast.NewLambda(params, body, lamEnv)
		env.Define(name.Str, lam)
		return lam, nil
	}

	ev.warnf("define: expected a symbol or (name params...), got %s", target)
	return ast.Nil, nil
}

func (ev *Evaluator) evalIf(args *ast.Value, env *ast.Env) (*ast.Value, error) {
	cond, err := ev.Eval(ast.Car(args), env)
	if err != nil {
		return nil, err
	}
	if IsTruthy(cond) {
		return ev.Eval(ast.Car(ast.Cdr(args)), env)
	}
	return ev.Eval(ast.Car(ast.Cdr(ast.Cdr(args))), env)
}

// isBoolean reports whether v is one of the literal symbols #t and #f, which
// evaluate to themselves when unbound.
func isBoolean(v *ast.Value) bool {
	return ast.SymEqStr(v, "#t") || ast.SymEqStr(v, "#f")
}

// IsTruthy reports whether v counts as true in a conditional. Only the
// integer 0 and the symbol #f are false; absent values are true.
func IsTruthy(v *ast.Value) bool {
	if ast.IsInt(v) && v.Int == 0 {
		return false
	}
	return !ast.SymEqStr(v, "#f")
}

func (ev *Evaluator) evalApplication(head, args *ast.Value, env *ast.Env) (*ast.Value, error) {
	fn, err := ev.Eval(head, env)
	if err != nil {
		return nil, err
	}

	if ast.IsLambda(fn) {
		vals, err := ev.evalArgs(args, env)
		if err != nil {
			return nil, err
		}
		return ev.applyLambda(fn, vals)
	}

	if ast.IsPrim(fn) {
		// load decides for itself how its argument is evaluated
		if ast.SymEqStr(head, "load") {
			return fn.Prim(args)
		}
		vals, err := ev.evalArgs(args, env)
		if err != nil {
			return nil, err
		}
		return fn.Prim(ast.SliceToList(vals))
	}

	if op := operatorOf(head); op != opNone {
		return ev.evalOperator(op, args, env)
	}

	return ast.Nil, nil
}

// evalArgs evaluates each element of a list, left to right.
func (ev *Evaluator) evalArgs(list *ast.Value, env *ast.Env) ([]*ast.Value, error) {
	var vals []*ast.Value
	for ast.IsCell(list) {
		v, err := ev.Eval(ast.Car(list), env)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
		list = list.Cdr
	}
	return vals, nil
}

// applyLambda binds parameters to arguments pairwise in a new frame below
// the closure's frame. Surplus parameters stay unbound and surplus
// arguments are dropped.
func (ev *Evaluator) applyLambda(fn *ast.Value, args []*ast.Value) (*ast.Value, error) {
	callEnv := ast.NewEnv(fn.LamEnv)
	params := fn.Params
	for i := 0; ast.IsCell(params) && i < len(args); i++ {
		p := ast.Car(params)
		if ast.IsSym(p) {
			callEnv.Define(p.Str, args[i])
		} else {
			ev.warnf("lambda: parameter %s is not a symbol", p)
		}
		params = params.Cdr
	}
	return ev.Eval(fn.Body, callEnv)
}

// call applies fn to already evaluated arguments by building an application
// form with each argument quoted and evaluating it in the global frame.
func (ev *Evaluator) call(fn *ast.Value, args []*ast.Value) (*ast.Value, error) {
	quoted := make([]*ast.Value, len(args))
	for i, a := range args {
		quoted[i] = ast.List2(ast.NewSym("quote"), a)
	}
	return ev.Eval(ast.NewCell(fn, ast.SliceToList(quoted)), ev.global)
}

func (ev *Evaluator) warnf(format string, args ...any) {
	fmt.Fprintf(ev.diag, format+"\n", args...)
}
