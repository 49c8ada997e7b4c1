package ast

import (
	"fmt"
	"strconv"

	"github.com/pattyshack/gt/parseutil"
)

type Number struct {
	isExpr
	parseutil.StartEndPos

	Value int64
}

var _ Expression = &Number{}

func (num *Number) String() string {
	return strconv.FormatInt(num.Value, 10)
}

func (num *Number) Walk(visitor Visitor) {
	visitor.Enter(num)
	visitor.Exit(num)
}

// Text is an already folded expression, e.g. "(a + 1)" or "(NOT b)".
type Text struct {
	isExpr
	parseutil.StartEndPos

	Text string
}

var _ Expression = &Text{}

func (text *Text) String() string {
	return text.Text
}

func (text *Text) Walk(visitor Visitor) {
	visitor.Enter(text)
	visitor.Exit(text)
}

// Placeholder stands in for an identifier whose value is unknown (undeclared
// or declared without a value).
type Placeholder struct {
	isExpr
	parseutil.StartEndPos

	Name string
}

var _ Expression = &Placeholder{}
var _ Validator = &Placeholder{}

func (placeholder *Placeholder) String() string {
	return "$" + placeholder.Name
}

func (placeholder *Placeholder) Walk(visitor Visitor) {
	visitor.Enter(placeholder)
	visitor.Exit(placeholder)
}

func (placeholder *Placeholder) Validate(emitter *parseutil.Emitter) {
	if placeholder.Name == "" {
		emitter.Emit(placeholder.Loc(), "empty placeholder name")
	}
}

// HIM-qualified member reference.  Creating a reference never touches the
// symbol table.
type Reference struct {
	isExpr
	parseutil.StartEndPos

	Name string
}

var _ Expression = &Reference{}
var _ Validator = &Reference{}

func (ref *Reference) String() string {
	return "HIM." + ref.Name
}

func (ref *Reference) Walk(visitor Visitor) {
	visitor.Enter(ref)
	visitor.Exit(ref)
}

func (ref *Reference) Validate(emitter *parseutil.Emitter) {
	if ref.Name == "" {
		emitter.Emit(ref.Loc(), "empty member reference name")
	}
}

// Operation is the (operator, right operand) pair threaded outward by an
// expression tail.  Right already includes the rest of the tail.  Operations
// only live on the parse stack; they are folded into Text by the enclosing
// expression.
type Operation struct {
	parseutil.StartEndPos

	Operator string
	Right    Expression
}

var _ Node = &Operation{}

func (op *Operation) Walk(visitor Visitor) {
	visitor.Enter(op)
	if op.Right != nil {
		op.Right.Walk(visitor)
	}
	visitor.Exit(op)
}

// Fold returns the display text of "left <op> right".
func (op *Operation) Fold(left Expression) string {
	return fmt.Sprintf("(%s %s %s)", ExpressionString(left), op.Operator, ExpressionString(op.Right))
}

// ExpressionString renders a possibly missing expression.
func ExpressionString(expr Expression) string {
	if expr == nil {
		return "?"
	}
	return expr.String()
}
