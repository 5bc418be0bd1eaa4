package main

import (
	"bytes"
	"strings"
	"testing"

	"scheme_go/pkg/eval"
)

func newDriverEvaluator() (*eval.Evaluator, *bytes.Buffer) {
	var out bytes.Buffer
	return eval.New(eval.WithOutput(&out), eval.WithDiagnostics(&out)), &out
}

func TestEvalInput(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
		errText  string
	}{
		{"(+ 1 2)", "3\n", true, ""},
		{"(define x 10) (+ x 5)", "15\n", true, ""},
		{"(define (sq n) (* n n)) (sq 4) 'done", "16\ndone\n", true, ""},
		{"(/ 1 0) (+ 1 1)", "2\n", false, "Error: /: division by zero"},
		{"(+ 1.5 1)", "", false, "Error: +"},
		{"(+ 1 2", "", false, "Parse error"},
		{"undefined", "", true, ""},
	}

	for _, tt := range tests {
		ev, out := newDriverEvaluator()
		var errw bytes.Buffer
		ok := evalInput(ev, tt.input, &errw, false)
		if ok != tt.ok {
			t.Errorf("evalInput(%q) = %v, want %v (%s)", tt.input, ok, tt.ok, errw.String())
		}
		if out.String() != tt.expected {
			t.Errorf("evalInput(%q) output = %q, want %q", tt.input, out.String(), tt.expected)
		}
		if !strings.Contains(errw.String(), tt.errText) {
			t.Errorf("evalInput(%q) errors = %q, want %q", tt.input, errw.String(), tt.errText)
		}
	}
}

func TestEvalInputKeepsState(t *testing.T) {
	ev, out := newDriverEvaluator()
	var errw bytes.Buffer
	evalInput(ev, "(define (add a b) (+ a b))", &errw, false)
	evalInput(ev, "(add 2 3)", &errw, false)
	if out.String() != "5\n" {
		t.Errorf("output = %q, want 5", out.String())
	}
}

func TestEvalInputVerbose(t *testing.T) {
	ev, _ := newDriverEvaluator()
	var errw bytes.Buffer
	evalInput(ev, "'a", &errw, true)
	if !strings.Contains(errw.String(), "Evaluating: (quote a)") {
		t.Errorf("verbose output = %q", errw.String())
	}
}

func TestIsExit(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"(exit)", true},
		{"  ( exit )\n", true},
		{"exit", false},
		{"(exit 1)", false},
		{"(exit) (+ 1 2)", false},
		{"(exit", false},
	}
	for _, tt := range tests {
		if got := isExit(tt.input); got != tt.expected {
			t.Errorf("isExit(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestComplete(t *testing.T) {
	ev, _ := newDriverEvaluator()
	var errw bytes.Buffer
	evalInput(ev, "(define counter 1)", &errw, false)

	got := complete(ev, "(cou")
	if len(got) != 1 || got[0] != "(counter" {
		t.Errorf("complete((cou) = %v, want [(counter]", got)
	}
	got = complete(ev, "(ca")
	if len(got) != 1 || got[0] != "(car" {
		t.Errorf("complete((ca) = %v, want [(car]", got)
	}
	if got := complete(ev, "("); got != nil {
		t.Errorf("complete(() = %v, want nil", got)
	}
}
