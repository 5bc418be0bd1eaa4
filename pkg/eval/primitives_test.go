package eval

import (
	"strings"
	"testing"

	"scheme_go/pkg/ast"
)

func TestCons(t *testing.T) {
	runPrintCases(t, []printCase{
		{"(cons 1 (cons 2 '()))", "(1 2)"},
		{"(cons 1 2)", "(1 . 2)"},
		{"(cons 1 '(2 3))", "(1 2 3)"},
		{"(cons '() 1)", "(NULL . 1)"},
		{"(cons 'a (cons 'b 'c))", "(a b . c)"},
	})
}

func TestCarCdr(t *testing.T) {
	runPrintCases(t, []printCase{
		{"(car '(1 2 3))", "1"},
		{"(cdr '(1 2 3))", "(2 3)"},
		{"(car (cdr '(1 2 3)))", "2"},
		{"(cdr (cons 1 2))", "2"},
	})
}

func TestCarOnNonPair(t *testing.T) {
	for _, input := range []string{"(car 5)", "(cdr 'x)", "(car '())"} {
		ev, _, diag := newTestEvaluator()
		result, err := evalIn(ev, input)
		if err != nil {
			t.Errorf("evalIn(%q) error: %v", input, err)
			continue
		}
		if !ast.IsNil(result) {
			t.Errorf("evalIn(%q) = %s, want absent", input, result)
		}
		if strings.TrimSpace(diag.String()) != "expected pair" {
			t.Errorf("evalIn(%q) diagnostic = %q, want expected pair", input, diag.String())
		}
	}
}

func TestMap(t *testing.T) {
	runPrintCases(t, []printCase{
		{"(map car '((1 2) (3 4)))", "(1 3)"},
		{"(map (lambda (x) (* x 2)) '(1 2 3))", "(2 4 6)"},
		{"(define (inc x) (+ x 1)) (map inc '(1 2))", "(2 3)"},
		{"(map cdr '((1 2) (3 4)))", "((2) (4))"},
		{"(map - '(1 2))", "(-1 -2)"},
		{"(map (lambda (l) (map car l)) '(((1) (2)) ((3))))", "((1 2) (3))"},
	})

	result, err := evalString("(map car '())")
	if err != nil {
		t.Fatalf("evalString error: %v", err)
	}
	if !ast.IsNil(result) {
		t.Errorf("map over empty list = %s, want absent", result)
	}
}

func TestMapMissingProcedure(t *testing.T) {
	for _, input := range []string{"(map undefined '(1 2))", "(map car)"} {
		ev, _, diag := newTestEvaluator()
		result, err := evalIn(ev, input)
		if err != nil {
			t.Errorf("evalIn(%q) error: %v", input, err)
			continue
		}
		if !ast.IsNil(result) {
			t.Errorf("evalIn(%q) = %s, want absent", input, result)
		}
		if !strings.Contains(diag.String(), "map: expected 2 arguments") {
			t.Errorf("evalIn(%q) diagnostic = %q", input, diag.String())
		}
	}
}

func TestMapSeesClosureEnvironment(t *testing.T) {
	result, err := evalString("(define (scale k) (lambda (x) (* k x))) (map (scale 3) '(1 2 3))")
	if err != nil {
		t.Fatalf("evalString error: %v", err)
	}
	if result.String() != "(3 6 9)" {
		t.Errorf("result = %s, want (3 6 9)", result)
	}
}

func TestAppend(t *testing.T) {
	runPrintCases(t, []printCase{
		{"(append '(1 2) '(3 4))", "(1 2 3 4)"},
		{"(append '() '(1))", "(1)"},
		{"(append '(1) 2)", "(1 . 2)"},
		{"(append '(1 2) '())", "(1 2)"},
	})
}

func TestAppendCopiesFirstList(t *testing.T) {
	ev, _, _ := newTestEvaluator()
	if _, err := evalIn(ev, "(define a '(1 2)) (define b (append a '(3)))"); err != nil {
		t.Fatalf("evalIn error: %v", err)
	}
	a, _ := ev.Global().Lookup("a")
	b, _ := ev.Global().Lookup("b")
	if a.String() != "(1 2)" || b.String() != "(1 2 3)" {
		t.Errorf("a = %s, b = %s", a, b)
	}
}

func TestNullAndLength(t *testing.T) {
	runPrintCases(t, []printCase{
		{"(null? '())", "1"},
		{"(null? '(1))", "0"},
		{"(null? 0)", "0"},
		{"(null? undefined-thing)", "1"},
		{"(length '(1 2 3))", "3"},
		{"(length '())", "0"},
		{"(length (cons 1 (cons 2 3)))", "2"},
		{"(length 5)", "0"},
	})
}

func TestApply(t *testing.T) {
	runPrintCases(t, []printCase{
		{"(apply + '(1 2 3))", "6"},
		{"(apply cons '(1 2))", "(1 . 2)"},
		{"(apply (lambda (a b) (- a b)) '(10 3))", "7"},
		{"(define (sum3 a b c) (+ a b c)) (apply sum3 '(1 2 3))", "6"},
		{"(apply car '((quote (9 8))))", "9"},
	})
}

func TestEval(t *testing.T) {
	runPrintCases(t, []printCase{
		{"(eval '(+ 1 2))", "3"},
		{"(eval ''x)", "x"},
		{"(define x 4) (eval 'x)", "4"},
		{"(eval (cons '* '(2 3)))", "6"},
	})
}

func TestEqual(t *testing.T) {
	runPrintCases(t, []printCase{
		{"(equal? '(1 2 3) '(1 2 3))", "1"},
		{"(equal? '(1 2 3) '(1 2 4))", "0"},
		{"(equal? '(1 (2 3)) '(1 (2 3)))", "1"},
		{"(equal? 1 1.0)", "1"},
		{"(equal? 1/2 0.5)", "1"},
		{"(equal? (+ 1 1) 2)", "1"},
		{"(equal? \"a\" \"a\")", "1"},
		{"(equal? \"a\" 'a)", "0"},
		{"(equal? 'a 'a)", "1"},
		{"(equal? car car)", "1"},
		{"(equal? car cdr)", "0"},
		{"(equal? (lambda (x) x) (lambda (x) x))", "0"},
		{"(define f (lambda (x) x)) (equal? f f)", "1"},
	})
}

func TestEqualWithAbsentOperand(t *testing.T) {
	result, err := evalString("(equal? '() 1)")
	if err != nil {
		t.Fatalf("evalString error: %v", err)
	}
	if !ast.IsNil(result) {
		t.Errorf("result = %s, want absent", result)
	}
}

func TestPrimitivesArePrintedOpaquely(t *testing.T) {
	runPrintCases(t, []printCase{
		{"car", "<builtin>"},
		{"(cons car 1)", "(<builtin> . 1)"},
	})
}
