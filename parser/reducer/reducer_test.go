package reducer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fantasylang/fantasy/ast"
	"github.com/fantasylang/fantasy/parser/lr"
	"github.com/fantasylang/fantasy/symtab"
)

func production(rule string) *lr.Production {
	sides := strings.SplitN(rule, " -> ", 2)
	return &lr.Production{Lhs: sides[0], Rhs: strings.Fields(sides[1])}
}

func tok(kind lr.SymbolId, lexeme string, line int) *lr.Token {
	return &lr.Token{Kind: kind, Lexeme: lexeme, Line: line}
}

func reduce(
	t *testing.T,
	reducer *Reducer,
	rule string,
	attributes ...ast.Node,
) ast.Node {
	result, err := reducer.Reduce(production(rule), attributes)
	require.NoError(t, err)
	return result
}

func declare(t *testing.T, reducer *Reducer, name string, value int64, line int) {
	reduce(
		t,
		reducer,
		"CMD -> FUS id := EXPR",
		tok(lr.FusToken, "FUS", line),
		tok(lr.IdentifierToken, name, line),
		tok(lr.AssignOpToken, ":=", line),
		&ast.Number{Value: value})
}

func TestDeclaration(t *testing.T) {
	symbols := symtab.NewTable()
	reducer := New(symbols)

	result := reduce(
		t,
		reducer,
		"CMD -> FUS id := EXPR",
		tok(lr.FusToken, "FUS", 1),
		tok(lr.IdentifierToken, "x", 1),
		tok(lr.AssignOpToken, ":=", 1),
		&ast.Number{Value: 10})

	decl, ok := result.(*ast.Declaration)
	require.True(t, ok)
	require.Equal(t, "x", decl.Name)
	require.Equal(t, "10", decl.Value.String())

	symbol, ok := symbols.Lookup("x", 2, false)
	require.True(t, ok)
	require.Equal(t, symtab.Variable, symbol.Kind)
	require.Equal(t, 1, symbol.Line)
	require.Equal(t, "10", symbol.Value.String())
	require.False(t, symbols.Report().HasErrors())
}

func TestRedeclaration(t *testing.T) {
	symbols := symtab.NewTable()
	reducer := New(symbols)

	declare(t, reducer, "x", 1, 1)
	declare(t, reducer, "x", 2, 2)

	errs := symbols.Report().Errors()
	require.Len(t, errs, 1)
	redeclared := &symtab.RedeclaredError{}
	require.True(t, errors.As(errs[0], &redeclared))
	require.Equal(t, 2, redeclared.Line)

	symbol, _ := symbols.Lookup("x", 3, false)
	require.Equal(t, "1", symbol.Value.String())
}

func assignment(t *testing.T, reducer *Reducer, target ast.Node, value int64) ast.Node {
	return reduce(
		t,
		reducer,
		"CMD -> LHS := EXPR",
		target,
		tok(lr.AssignOpToken, ":=", 3),
		&ast.Number{Value: value})
}

func TestPlainAssignment(t *testing.T) {
	symbols := symtab.NewTable()
	reducer := New(symbols)

	target := reduce(
		t,
		reducer,
		"LHS -> assign id",
		tok(lr.AssignToken, "assign", 3),
		tok(lr.IdentifierToken, "z", 3))

	// undeclared
	result := assignment(t, reducer, target, 10)
	assign, ok := result.(*ast.Assignment)
	require.True(t, ok)
	require.Equal(t, "z", assign.Target.String())

	errs := symbols.Report().Errors()
	require.Len(t, errs, 1)
	require.Equal(t, "line 3: 'z' was not declared", errs[0].Error())

	// declared
	declare(t, reducer, "z", 1, 4)
	assignment(t, reducer, target, 20)

	symbol, ok := symbols.Lookup("z", 5, false)
	require.True(t, ok)
	require.True(t, symbol.Used)
	require.Equal(t, "20", symbol.Value.String())
	require.Len(t, symbols.Report().Errors(), 1)
}

func TestQualifiedAssignment(t *testing.T) {
	symbols := symtab.NewTable()
	reducer := New(symbols)

	target := reduce(
		t,
		reducer,
		"LHS -> HIM . id",
		tok(lr.HimToken, "HIM", 3),
		tok(lr.DotToken, ".", 3),
		tok(lr.IdentifierToken, "v", 3))
	require.Equal(t, "HIM.v", target.(*ast.Target).String())

	declare(t, reducer, "v", 1, 1)
	symbols.EnterScope("m")

	// v lives in the enclosing scope, not in m
	assignment(t, reducer, target, 5)
	errs := symbols.Report().Errors()
	require.Len(t, errs, 1)
	undeclared := &symtab.UndeclaredError{}
	require.True(t, errors.As(errs[0], &undeclared))
	require.Equal(t, "HIM.v", undeclared.Name)

	declare(t, reducer, "v", 2, 4)
	assignment(t, reducer, target, 7)
	require.Len(t, symbols.Report().Errors(), 1)

	symbol, ok := symbols.LookupInScope("v", "m")
	require.True(t, ok)
	require.Equal(t, "7", symbol.Value.String())
	require.False(t, symbol.Used)

	outer, ok := symbols.LookupInScope("v", symtab.GlobalScopeName)
	require.True(t, ok)
	require.Equal(t, "1", outer.Value.String())
}

func TestModule(t *testing.T) {
	symbols := symtab.NewTable()
	reducer := New(symbols)

	header := reduce(
		t,
		reducer,
		"MODULE -> KEL id",
		tok(lr.KelToken, "KEL", 1),
		tok(lr.IdentifierToken, "m", 1))

	opener, ok := header.(ast.ScopeOpener)
	require.True(t, ok)
	require.Equal(t, "m", opener.ScopeName())

	// the reducer never changes scope by itself
	require.Equal(t, symtab.GlobalScope, symbols.Current().Id)

	symbol, ok := symbols.Lookup("m", 1, false)
	require.True(t, ok)
	require.Equal(t, symtab.Module, symbol.Kind)

	body := &ast.Return{Value: &ast.Number{Value: 1}}
	result := reduce(t, reducer, "CMD -> MODULE CMD", header, body)

	module, ok := result.(*ast.Module)
	require.True(t, ok)
	require.Equal(t, "m", module.Name())
	require.True(t, module.ClosesScope())
	require.Equal(t, body, module.Body)

	result = reduce(t, reducer, "CMD -> MODULE CMD", nil, body)
	require.False(t, result.(ast.ScopeCloser).ClosesScope())
}

func TestIO(t *testing.T) {
	symbols := symtab.NewTable()
	reducer := New(symbols)
	declare(t, reducer, "a", 1, 1)

	result := reduce(
		t,
		reducer,
		"CMD -> IO id",
		tok(lr.HonToken, "HON", 2),
		tok(lr.IdentifierToken, "a", 2))
	require.Equal(t, ast.Input, result.(*ast.IO).Kind)

	symbol, _ := symbols.Lookup("a", 2, false)
	require.True(t, symbol.Used)

	result = reduce(
		t,
		reducer,
		"CMD -> IO id",
		tok(lr.PrintToken, "print", 3),
		tok(lr.IdentifierToken, "b", 3))
	require.Equal(t, ast.Output, result.(*ast.IO).Kind)
	require.Len(t, symbols.Report().Errors(), 1)
}

func TestIdentifierFactor(t *testing.T) {
	symbols := symtab.NewTable()
	reducer := New(symbols)
	declare(t, reducer, "a", 7, 1)

	result := reduce(t, reducer, "FACTOR -> id", tok(lr.IdentifierToken, "a", 2))
	require.Equal(t, "7", result.(ast.Expression).String())

	result = reduce(t, reducer, "FACTOR -> id", tok(lr.IdentifierToken, "q", 2))
	placeholder, ok := result.(*ast.Placeholder)
	require.True(t, ok)
	require.Equal(t, "$q", placeholder.String())
	require.Len(t, symbols.Report().Errors(), 1)
}

func TestExpressionFolding(t *testing.T) {
	reducer := New(symtab.NewTable())

	number := func(value int64) ast.Node {
		return reduce(
			t,
			reducer,
			"FACTOR -> num",
			&lr.Token{Kind: lr.NumberToken, Number: value})
	}

	// 1 + 2 ANRK 3
	innerTail := reduce(
		t,
		reducer,
		"EXPR' -> OP TERM EXPR'",
		tok(lr.AnrkToken, "ANRK", 1),
		number(3),
		nil)
	tail := reduce(
		t,
		reducer,
		"EXPR' -> OP TERM EXPR'",
		tok(lr.PlusToken, "+", 1),
		number(2),
		innerTail)
	expr := reduce(t, reducer, "EXPR -> TERM EXPR'", number(1), tail)
	require.Equal(t, "(1 + (2 ANRK 3))", expr.(ast.Expression).String())

	// a lone term passes through
	expr = reduce(t, reducer, "EXPR -> TERM EXPR'", number(4), nil)
	require.Equal(t, "4", expr.(ast.Expression).String())

	unary := reduce(t, reducer, "UNARY -> NUST TERM", tok(lr.NustToken, "NUST", 1), number(5))
	require.Equal(t, "(NOT 5)", unary.(ast.Expression).String())

	paren := reduce(
		t,
		reducer,
		"FACTOR -> ( EXPR )",
		tok(lr.LparenToken, "(", 1),
		unary,
		tok(lr.RparenToken, ")", 1))
	require.Equal(t, unary, paren)

	ref := reduce(
		t,
		reducer,
		"FACTOR -> HIM . id",
		tok(lr.HimToken, "HIM", 1),
		tok(lr.DotToken, ".", 1),
		tok(lr.IdentifierToken, "x", 1))
	require.Equal(t, "HIM.x", ref.(ast.Expression).String())

	missing := reduce(t, reducer, "UNARY -> NUST TERM", tok(lr.NustToken, "NUST", 1), nil)
	require.Equal(t, "(NOT ?)", missing.(ast.Expression).String())
}

func TestStatementLists(t *testing.T) {
	reducer := New(symtab.NewTable())

	first := &ast.Return{}
	second := &ast.IO{Kind: ast.Output, Name: "x"}

	list := reduce(t, reducer, "CMDS -> CMD", first)
	list = reduce(t, reducer, "CMDS -> CMDS ;", list, tok(lr.SemicolonToken, ";", 1))
	list = reduce(t, reducer, "CMDS -> CMDS CMD", list, nil)
	list = reduce(t, reducer, "CMDS -> CMDS CMD", list, second)

	block := reduce(
		t,
		reducer,
		"CMD -> ( CMDS )",
		tok(lr.LparenToken, "(", 1),
		list,
		tok(lr.RparenToken, ")", 1))
	require.Equal(
		t,
		[]ast.Statement{first, second},
		block.(*ast.Block).Statements)

	program := reduce(t, reducer, "PROGRAM -> CMDS", list)
	require.Equal(
		t,
		[]ast.Statement{first, second},
		program.(*ast.Program).Statements)
}

func TestPassThrough(t *testing.T) {
	reducer := New(symtab.NewTable())

	number := &ast.Number{Value: 1}
	require.Equal(t, ast.Node(number), reduce(t, reducer, "TERM -> FACTOR", number))

	plus := tok(lr.PlusToken, "+", 1)
	require.Equal(t, ast.Node(plus), reduce(t, reducer, "OP -> +", plus))

	require.Nil(t, reduce(t, reducer, "EXPR' -> epsilon"))
}

func TestArityMismatch(t *testing.T) {
	reducer := New(symtab.NewTable())

	_, err := reducer.Reduce(production("FACTOR -> num"), nil)
	require.Error(t, err)
}
