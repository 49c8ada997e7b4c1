package reducer

import (
	"fmt"

	"github.com/fantasylang/fantasy/ast"
	"github.com/fantasylang/fantasy/parser/lr"
)

// EXPR -> TERM EXPR' folds the tail's operation, if any, into text.
func (reducer *Reducer) ToExpr(
	term ast.Expression,
	tail *ast.Operation,
) (
	ast.Expression,
	error,
) {
	if tail == nil {
		return term, nil
	}

	return &ast.Text{
		StartEndPos: span(term, tail),
		Text:        tail.Fold(term),
	}, nil
}

// EXPR' -> OP TERM EXPR' threads (operator, right operand) outward.  A
// nested tail is folded into the right operand first.
func (reducer *Reducer) ToExprTail(
	op *lr.Token,
	term ast.Expression,
	tail *ast.Operation,
) (
	*ast.Operation,
	error,
) {
	right := term
	if tail != nil {
		right = &ast.Text{
			StartEndPos: span(term, tail),
			Text:        tail.Fold(term),
		}
	}

	return &ast.Operation{
		StartEndPos: span(op, right),
		Operator:    op.Lexeme,
		Right:       right,
	}, nil
}

func (reducer *Reducer) ToUnary(
	nust *lr.Token,
	term ast.Expression,
) (
	*ast.Text,
	error,
) {
	return &ast.Text{
		StartEndPos: span(nust, term),
		Text:        fmt.Sprintf("(NOT %s)", ast.ExpressionString(term)),
	}, nil
}

// FACTOR -> id evaluates to the symbol's stored value.  Unknown names and
// names without a value become placeholders.
func (reducer *Reducer) IdentifierToFactor(
	id *lr.Token,
) (
	ast.Expression,
	error,
) {
	symbol, ok := reducer.symbols.Lookup(id.Lexeme, id.Line, true)
	if ok && symbol.Value != nil {
		return symbol.Value, nil
	}

	return &ast.Placeholder{
		StartEndPos: id.StartEndPos,
		Name:        id.Lexeme,
	}, nil
}

func (reducer *Reducer) NumberToFactor(num *lr.Token) (*ast.Number, error) {
	return &ast.Number{
		StartEndPos: num.StartEndPos,
		Value:       num.Number,
	}, nil
}

func (reducer *Reducer) ParenToFactor(
	lparen *lr.Token,
	expr ast.Expression,
	rparen *lr.Token,
) (
	ast.Expression,
	error,
) {
	return expr, nil
}

// FACTOR -> HIM . id never touches the symbol table.
func (reducer *Reducer) ReferenceToFactor(
	him *lr.Token,
	dot *lr.Token,
	id *lr.Token,
) (
	*ast.Reference,
	error,
) {
	return &ast.Reference{
		StartEndPos: span(him, id),
		Name:        id.Lexeme,
	}, nil
}
