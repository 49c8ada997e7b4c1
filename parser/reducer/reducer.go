// Package reducer implements the semantic actions of the Fantasy grammar.
// Actions synthesize display values and declare or resolve names; their only
// side effects are symbol table mutations.  Scope entry and exit are left to
// the shift-reduce engine.
package reducer

import (
	"fmt"

	"github.com/pattyshack/gt/parseutil"

	"github.com/fantasylang/fantasy/ast"
	"github.com/fantasylang/fantasy/parser/lr"
	"github.com/fantasylang/fantasy/symtab"
)

type action func(*Reducer, []ast.Node) (ast.Node, error)

var (
	actions = map[string]action{
		"PROGRAM -> CMDS": func(r *Reducer, args []ast.Node) (ast.Node, error) {
			return r.ToProgram(args[0])
		},

		"CMDS -> CMDS CMD": func(r *Reducer, args []ast.Node) (ast.Node, error) {
			return r.AddToCmds(args[0], args[1])
		},
		"CMDS -> CMDS ;": func(r *Reducer, args []ast.Node) (ast.Node, error) {
			return r.SeparatorToCmds(args[0], token(args[1]))
		},
		"CMDS -> CMD": func(r *Reducer, args []ast.Node) (ast.Node, error) {
			return r.NewToCmds(args[0])
		},

		"CMD -> FUS id := EXPR": func(r *Reducer, args []ast.Node) (ast.Node, error) {
			return r.DeclarationToCmd(
				token(args[0]),
				token(args[1]),
				token(args[2]),
				expression(args[3]))
		},
		"CMD -> LHS := EXPR": func(r *Reducer, args []ast.Node) (ast.Node, error) {
			target, _ := args[0].(*ast.Target)
			return r.AssignmentToCmd(target, token(args[1]), expression(args[2]))
		},
		"CMD -> MODULE CMD": func(r *Reducer, args []ast.Node) (ast.Node, error) {
			header, _ := args[0].(*ast.ModuleHeader)
			return r.ModuleToCmd(header, statement(args[1]))
		},
		"CMD -> IO id": func(r *Reducer, args []ast.Node) (ast.Node, error) {
			return r.IOToCmd(token(args[0]), token(args[1]))
		},
		"CMD -> JUN EXPR": func(r *Reducer, args []ast.Node) (ast.Node, error) {
			return r.ReturnToCmd(token(args[0]), expression(args[1]))
		},
		"CMD -> LOS EXPR FAH CMD": func(r *Reducer, args []ast.Node) (ast.Node, error) {
			return r.ConditionalToCmd(
				token(args[0]),
				expression(args[1]),
				token(args[2]),
				statement(args[3]))
		},
		"CMD -> FOD EXPR FAH CMD": func(r *Reducer, args []ast.Node) (ast.Node, error) {
			return r.LoopToCmd(
				token(args[0]),
				expression(args[1]),
				token(args[2]),
				statement(args[3]))
		},
		"CMD -> ( CMDS )": func(r *Reducer, args []ast.Node) (ast.Node, error) {
			return r.BlockToCmd(token(args[0]), args[1], token(args[2]))
		},

		"MODULE -> KEL id": func(r *Reducer, args []ast.Node) (ast.Node, error) {
			return r.ToModule(token(args[0]), token(args[1]))
		},

		"LHS -> assign id": func(r *Reducer, args []ast.Node) (ast.Node, error) {
			return r.PlainToLhs(token(args[0]), token(args[1]))
		},
		"LHS -> HIM . id": func(r *Reducer, args []ast.Node) (ast.Node, error) {
			return r.QualifiedToLhs(token(args[0]), token(args[1]), token(args[2]))
		},

		"EXPR -> TERM EXPR'": func(r *Reducer, args []ast.Node) (ast.Node, error) {
			tail, _ := args[1].(*ast.Operation)
			return r.ToExpr(expression(args[0]), tail)
		},
		"EXPR' -> OP TERM EXPR'": func(r *Reducer, args []ast.Node) (ast.Node, error) {
			tail, _ := args[2].(*ast.Operation)
			return r.ToExprTail(token(args[0]), expression(args[1]), tail)
		},

		"UNARY -> NUST TERM": func(r *Reducer, args []ast.Node) (ast.Node, error) {
			return r.ToUnary(token(args[0]), expression(args[1]))
		},

		"FACTOR -> id": func(r *Reducer, args []ast.Node) (ast.Node, error) {
			return r.IdentifierToFactor(token(args[0]))
		},
		"FACTOR -> num": func(r *Reducer, args []ast.Node) (ast.Node, error) {
			return r.NumberToFactor(token(args[0]))
		},
		"FACTOR -> ( EXPR )": func(r *Reducer, args []ast.Node) (ast.Node, error) {
			return r.ParenToFactor(token(args[0]), expression(args[1]), token(args[2]))
		},
		"FACTOR -> HIM . id": func(r *Reducer, args []ast.Node) (ast.Node, error) {
			return r.ReferenceToFactor(token(args[0]), token(args[1]), token(args[2]))
		},
	}
)

// Reducer is bound to the symbol table of a single parse.
type Reducer struct {
	symbols *symtab.Table
}

var _ lr.Reducer = &Reducer{}

func New(symbols *symtab.Table) *Reducer {
	return &Reducer{
		symbols: symbols,
	}
}

// Reduce dispatches on the production.  Productions without a dedicated
// action pass their first attribute through, or nil when empty.
func (reducer *Reducer) Reduce(
	production *lr.Production,
	attributes []ast.Node,
) (
	ast.Node,
	error,
) {
	act, ok := actions[production.String()]
	if ok {
		if len(attributes) != production.Arity() {
			return nil, fmt.Errorf(
				"expected %d attributes, found %d",
				production.Arity(),
				len(attributes))
		}
		return act(reducer, attributes)
	}

	if len(attributes) == 0 {
		return nil, nil
	}
	return attributes[0], nil
}

func token(attr ast.Node) *lr.Token {
	tok, _ := attr.(*lr.Token)
	return tok
}

// expression converts an attribute to an expression.  Shifted tokens are
// never expressions.
func expression(attr ast.Node) ast.Expression {
	expr, _ := attr.(ast.Expression)
	return expr
}

func statement(attr ast.Node) ast.Statement {
	stmt, _ := attr.(ast.Statement)
	return stmt
}

// span covers the present nodes.  nil nodes are skipped.
func span(nodes ...ast.Node) parseutil.StartEndPos {
	var pos parseutil.StartEndPos
	found := false
	for _, node := range nodes {
		if node == nil {
			continue
		}
		if !found {
			pos.StartPos = node.Loc()
			found = true
		}
		pos.EndPos = node.End()
	}
	return pos
}
