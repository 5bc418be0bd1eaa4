package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"scheme_go/pkg/ast"
	"scheme_go/pkg/eval"
	"scheme_go/pkg/parser"
)

const (
	banner     = "Scheme Interpreter. '(exit)' to quit."
	promptMain = "> "
	promptCont = "... "
)

var (
	evalExpr    = flag.String("e", "", "Evaluate expression from command line")
	verbose     = flag.Bool("v", false, "Verbose output")
	historyPath = flag.String("history", defaultHistoryPath(), "REPL history file")
)

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".scheme_history")
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Scheme Interpreter\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [file.scm]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -e '(+ 1 2)'     # Evaluate expression\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s program.scm      # Run file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s                  # Interactive REPL\n", os.Args[0])
	}
	flag.Parse()

	ev := eval.New()

	switch {
	case *evalExpr != "":
		if !evalInput(ev, *evalExpr, os.Stderr, *verbose) {
			os.Exit(1)
		}
	case flag.NArg() > 0:
		if err := ev.LoadFile(flag.Arg(0)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		runREPL(ev)
	}
}

// evalInput evaluates every top-level form in src against the global frame,
// printing results like load does. A parse error ends the input; an
// evaluation error is reported on errw and the remaining forms still run.
// It returns false if anything failed.
func evalInput(ev *eval.Evaluator, src string, errw io.Writer, verbose bool) bool {
	ok := true
	p := parser.New(src)
	for p.More() {
		expr, err := p.Parse()
		if err != nil {
			fmt.Fprintf(errw, "Parse error: %v\n", err)
			return false
		}
		if verbose {
			fmt.Fprintf(errw, "Evaluating: %s\n", expr.String())
		}
		res, err := ev.EvalTop(expr)
		if err != nil {
			fmt.Fprintf(errw, "Error: %v\n", err)
			ok = false
			continue
		}
		ev.Report(expr, res)
	}
	return ok
}

// isExit reports whether src is exactly the form (exit).
func isExit(src string) bool {
	exprs, err := parser.ParseAllString(src)
	if err != nil || len(exprs) != 1 {
		return false
	}
	e := exprs[0]
	return ast.ListLen(e) == 1 && ast.SymEqStr(ast.Car(e), "exit")
}

func runREPL(ev *eval.Evaluator) {
	fmt.Println(banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(func(line string) []string {
		return complete(ev, line)
	})

	if *historyPath != "" {
		if f, err := os.Open(*historyPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(*historyPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		src, ok := readForm(ln)
		if !ok {
			fmt.Println()
			return
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if isExit(src) {
			return
		}
		evalInput(ev, src, os.Stderr, *verbose)
	}
}

// readForm keeps prompting for continuation lines while the buffered input
// is an incomplete expression. Ctrl+C discards the buffer.
func readForm(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			// io.EOF or a terminal failure
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, err := parser.ParseAllString(src); parser.IsIncomplete(err) {
			continue
		}
		return src, true
	}
}

// complete offers global names and special forms that extend the last word
// of line.
func complete(ev *eval.Evaluator, line string) []string {
	start := strings.LastIndexAny(line, "( '") + 1
	prefix := line[start:]
	if prefix == "" {
		return nil
	}
	words := append([]string{"define", "lambda", "if", "quote", "exit"}, ev.Global().Names()...)
	seen := make(map[string]bool)
	var out []string
	for _, w := range words {
		if strings.HasPrefix(w, prefix) && !seen[w] {
			seen[w] = true
			out = append(out, line[:start]+w)
		}
	}
	return out
}
