package parser

// Token is one lexical unit together with its byte offset in the source.
type Token struct {
	Text string
	Pos  int
}

// Tokenize splits src into parentheses, quote marks, string literals and
// bare atoms. String tokens keep their quotes and escapes verbatim.
func Tokenize(src string) ([]Token, error) {
	var toks []Token
	i := 0
	for i < len(src) {
		ch := src[i]
		switch {
		case isSpace(ch):
			i++
		case ch == ';':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case ch == '(' || ch == ')' || ch == '\'':
			toks = append(toks, Token{Text: src[i : i+1], Pos: i})
			i++
		case ch == '"':
			end, err := scanString(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, Token{Text: src[i:end], Pos: i})
			i = end
		default:
			start := i
			for i < len(src) && !isDelimiter(src[i]) {
				i++
			}
			toks = append(toks, Token{Text: src[start:i], Pos: start})
		}
	}
	return toks, nil
}

// scanString returns the offset just past the closing quote of the string
// literal starting at start.
func scanString(src string, start int) (int, error) {
	i := start + 1
	for i < len(src) {
		switch src[i] {
		case '\\':
			if i+1 >= len(src) {
				return 0, failed(Incomplete, i, "unterminated escape sequence in string literal")
			}
			i += 2
		case '"':
			return i + 1, nil
		default:
			i++
		}
	}
	return 0, failed(Incomplete, start, "unterminated string literal")
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// isDelimiter ends a bare token. Quote marks, string quotes and ';' only
// start a token or comment, so a'b is a single symbol.
func isDelimiter(ch byte) bool {
	return isSpace(ch) || ch == '(' || ch == ')'
}
