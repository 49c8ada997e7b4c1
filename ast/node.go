package ast

import (
	"github.com/pattyshack/gt/parseutil"
)

// Node is a synthesized attribute.  Every value the reducer produces, as well
// as the shifted tokens, is a node.
type Node interface {
	parseutil.Locatable
	Walk(Visitor)
}

type Visitor interface {
	Enter(Node)
	Exit(Node)
}

type Validator interface {
	Validate(*parseutil.Emitter)
}

// Expression is the display value of an expression.  Nothing is evaluated:
// binary and unary operations fold into parenthesized text.
type Expression interface {
	Node
	isExpression()
	String() string
}

type isExpr struct{}

func (isExpr) isExpression() {}

type Statement interface {
	Node
	isStatement()
}

type isStmt struct{}

func (isStmt) isStatement() {}

// ScopeOpener is implemented by attributes whose reduction starts a new named
// scope.  The shift-reduce engine, not the reducer, enters the scope.
type ScopeOpener interface {
	Node
	ScopeName() string
}

// ScopeCloser is implemented by attributes whose reduction ends the scope
// started by a matching ScopeOpener.
type ScopeCloser interface {
	Node
	ClosesScope() bool
}
