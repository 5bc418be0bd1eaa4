package eval

import "scheme_go/pkg/ast"

// form identifies a special form. Special forms are matched on the head
// symbol before anything is looked up.
type form int

const (
	formNone form = iota
	formQuote
	formLambda
	formDefine
	formIf
)

var specialForms = map[string]form{
	"quote":  formQuote,
	"lambda": formLambda,
	"define": formDefine,
	"if":     formIf,
}

// operator identifies a syntactically recognised arithmetic, relational
// or logical operator. Operators are not bound in the global frame.
type operator int

const (
	opNone operator = iota
	opAdd
	opSub
	opMul
	opDiv
	opLt
	opGt
	opEq
	opAnd
	opOr
)

var operators = map[string]operator{
	"+":   opAdd,
	"-":   opSub,
	"*":   opMul,
	"/":   opDiv,
	"<":   opLt,
	">":   opGt,
	"=":   opEq,
	"and": opAnd,
	"or":  opOr,
}

var operatorNames = map[operator]string{
	opAdd: "+",
	opSub: "-",
	opMul: "*",
	opDiv: "/",
	opLt:  "<",
	opGt:  ">",
	opEq:  "=",
	opAnd: "and",
	opOr:  "or",
}

func (op operator) String() string {
	return operatorNames[op]
}

func formOf(head *ast.Value) form {
	if !ast.IsSym(head) {
		return formNone
	}
	return specialForms[head.Str]
}

func operatorOf(head *ast.Value) operator {
	if !ast.IsSym(head) {
		return opNone
	}
	return operators[head.Str]
}
