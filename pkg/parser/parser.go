package parser

import (
	"errors"
	"strconv"
	"strings"

	"scheme_go/pkg/ast"
)

// Parser reads successive top-level forms from a token sequence. It keeps a
// cursor, so repeated calls to Parse walk the input left to right.
type Parser struct {
	toks []Token
	pos  int
	end  int   // byte offset reported for errors at end of input
	err  error // tokenizer failure, reported by the first Parse
}

// New tokenizes input and returns a parser over it.
func New(input string) *Parser {
	toks, err := Tokenize(input)
	return &Parser{toks: toks, end: len(input), err: err}
}

// NewFromTokens returns a parser over an already tokenized source.
func NewFromTokens(toks []Token) *Parser {
	end := 0
	if len(toks) > 0 {
		last := toks[len(toks)-1]
		end = last.Pos + len(last.Text)
	}
	return &Parser{toks: toks, end: end}
}

// More reports whether any tokens are left.
func (p *Parser) More() bool {
	return p.err != nil || p.pos < len(p.toks)
}

// Parse reads the next top-level form.
func (p *Parser) Parse() (*ast.Value, error) {
	if p.err != nil {
		err := p.err
		p.err = nil
		p.pos = len(p.toks)
		return nil, err
	}
	return p.parseExpr()
}

// ParseAll reads every remaining form.
func (p *Parser) ParseAll() ([]*ast.Value, error) {
	var exprs []*ast.Value
	for p.More() {
		v, err := p.Parse()
		if err != nil {
			return exprs, err
		}
		exprs = append(exprs, v)
	}
	return exprs, nil
}

// ParseString parses the first form of input.
func ParseString(input string) (*ast.Value, error) {
	return New(input).Parse()
}

// ParseAllString parses every form of input.
func ParseAllString(input string) ([]*ast.Value, error) {
	return New(input).ParseAll()
}

func (p *Parser) next() (Token, bool) {
	if p.pos >= len(p.toks) {
		return Token{Pos: p.end}, false
	}
	tok := p.toks[p.pos]
	p.pos++
	return tok, true
}

func (p *Parser) peek() (Token, bool) {
	if p.pos >= len(p.toks) {
		return Token{Pos: p.end}, false
	}
	return p.toks[p.pos], true
}

func (p *Parser) parseExpr() (*ast.Value, error) {
	tok, ok := p.next()
	if !ok {
		return nil, failed(Incomplete, tok.Pos, "unexpected end of input")
	}
	switch tok.Text {
	case "'":
		quoted, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.List2(ast.NewSym("quote"), quoted), nil
	case "(":
		return p.parseList(tok)
	case ")":
		return nil, failed(Syntax, tok.Pos, "unexpected ')'")
	}
	return parseAtom(tok)
}

// parseList reads elements up to the matching ')'. The opening token has
// already been consumed.
func (p *Parser) parseList(open Token) (*ast.Value, error) {
	var items []*ast.Value
	for {
		tok, ok := p.peek()
		if !ok {
			return nil, failed(Incomplete, open.Pos, "missing closing parenthesis")
		}
		if tok.Text == ")" {
			p.pos++
			return ast.SliceToList(items), nil
		}
		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, elem)
	}
}

// parseAtom classifies a bare or string token.
func parseAtom(tok Token) (*ast.Value, error) {
	text := tok.Text
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		return ast.NewString(text[1 : len(text)-1]), nil
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err == nil {
		return ast.NewInt(n), nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return nil, failed(Syntax, tok.Pos, "integer literal out of range: "+text)
	}

	if v, ok, err := parseRational(text); ok {
		if err != nil {
			return nil, failed(Syntax, tok.Pos, "invalid rational literal "+text+": "+err.Error())
		}
		return v, nil
	}

	if isDecimalFloat(text) {
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return ast.NewFloat(f), nil
		}
	}
	return ast.NewSym(text), nil
}

// parseRational recognises n/d with an optionally signed numerator and an
// unsigned denominator. ok is false when text does not have that shape.
func parseRational(text string) (v *ast.Value, ok bool, err error) {
	num, den, found := strings.Cut(text, "/")
	if !found || !isDigits(den) || !isDigits(strings.TrimLeft(num, "+-")) || len(num)-len(strings.TrimLeft(num, "+-")) > 1 {
		return nil, false, nil
	}
	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return nil, true, err
	}
	d, err := strconv.ParseInt(den, 10, 64)
	if err != nil {
		return nil, true, err
	}
	v, err = ast.NewRational(n, d)
	return v, true, err
}

// isDecimalFloat matches [+-]digits.digits with an optional decimal
// exponent. At least one mantissa digit is required on either side of the
// point. Hex floats, underscores, Inf and NaN are not floats here.
func isDecimalFloat(s string) bool {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "+"), "-")
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		exp := strings.TrimLeft(s[i+1:], "+-")
		if len(s[i+1:])-len(exp) > 1 || !isDigits(exp) {
			return false
		}
		s = s[:i]
	}
	whole, frac, found := strings.Cut(s, ".")
	if !found || (whole == "" && frac == "") {
		return false
	}
	return (whole == "" || isDigits(whole)) && (frac == "" || isDigits(frac))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
