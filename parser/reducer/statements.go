package reducer

import (
	"github.com/fantasylang/fantasy/ast"
	"github.com/fantasylang/fantasy/parser/lr"
	"github.com/fantasylang/fantasy/symtab"
)

func (reducer *Reducer) ToProgram(cmds ast.Node) (*ast.Program, error) {
	program := &ast.Program{}
	list, ok := cmds.(*ast.StatementList)
	if ok {
		program.StartEndPos = list.StartEndPos
		program.Statements = list.Statements
	}
	return program, nil
}

func (reducer *Reducer) AddToCmds(
	cmds ast.Node,
	cmd ast.Node,
) (
	*ast.StatementList,
	error,
) {
	list, ok := cmds.(*ast.StatementList)
	if !ok {
		list = &ast.StatementList{}
	}

	stmt := statement(cmd)
	if stmt != nil {
		list.Statements = append(list.Statements, stmt)
	}
	list.StartEndPos = span(list, cmd)
	return list, nil
}

func (reducer *Reducer) SeparatorToCmds(
	cmds ast.Node,
	semicolon *lr.Token,
) (
	*ast.StatementList,
	error,
) {
	list, ok := cmds.(*ast.StatementList)
	if !ok {
		list = &ast.StatementList{}
	}
	list.StartEndPos = span(list, semicolon)
	return list, nil
}

func (reducer *Reducer) NewToCmds(cmd ast.Node) (*ast.StatementList, error) {
	list := &ast.StatementList{}
	stmt := statement(cmd)
	if stmt != nil {
		list.Statements = append(list.Statements, stmt)
		list.StartEndPos = span(stmt)
	}
	return list, nil
}

// FUS <id> := <value> declares a variable in the current scope.
func (reducer *Reducer) DeclarationToCmd(
	fus *lr.Token,
	id *lr.Token,
	assign *lr.Token,
	value ast.Expression,
) (
	*ast.Declaration,
	error,
) {
	reducer.symbols.Declare(id.Lexeme, symtab.Variable, id.Line, value)

	return &ast.Declaration{
		StartEndPos: span(fus, assign, value),
		Name:        id.Lexeme,
		Value:       value,
	}, nil
}

// A plain target is resolved through the enclosing scopes and marked as
// used.  A HIM-qualified target must be declared in the current scope.
func (reducer *Reducer) AssignmentToCmd(
	target *ast.Target,
	assign *lr.Token,
	value ast.Expression,
) (
	*ast.Assignment,
	error,
) {
	result := &ast.Assignment{
		Target: target,
		Value:  value,
	}
	if target == nil {
		result.StartEndPos = span(assign, value)
		return result, nil
	}
	result.StartEndPos = span(target, assign, value)

	var symbol *symtab.Symbol
	var ok bool
	if target.Qualified {
		symbol, ok = reducer.symbols.LookupInScope(
			target.Name,
			reducer.symbols.Current().Name)
		if !ok {
			reducer.symbols.Report().Error(&symtab.UndeclaredError{
				Name: target.String(),
				Line: assign.Line,
			})
		}
	} else {
		symbol, ok = reducer.symbols.Lookup(target.Name, assign.Line, true)
	}

	if ok {
		symbol.Value = value
	}
	return result, nil
}

// KEL <id> declares the module in the enclosing scope.  The engine enters the
// module's scope once the header is reduced.
func (reducer *Reducer) ToModule(
	kel *lr.Token,
	id *lr.Token,
) (
	*ast.ModuleHeader,
	error,
) {
	reducer.symbols.Declare(id.Lexeme, symtab.Module, id.Line, nil)

	return &ast.ModuleHeader{
		StartEndPos: span(kel, id),
		Name:        id.Lexeme,
	}, nil
}

func (reducer *Reducer) ModuleToCmd(
	header *ast.ModuleHeader,
	body ast.Statement,
) (
	*ast.Module,
	error,
) {
	module := &ast.Module{
		Header: header,
		Body:   body,
	}
	if header != nil {
		module.StartEndPos = span(header, body)
	} else {
		module.StartEndPos = span(body)
	}
	return module, nil
}

// HON <id> / print <id> only marks the operand as used.
func (reducer *Reducer) IOToCmd(
	io *lr.Token,
	id *lr.Token,
) (
	*ast.IO,
	error,
) {
	reducer.symbols.Lookup(id.Lexeme, id.Line, true)

	kind := ast.Output
	if io.Kind == lr.HonToken {
		kind = ast.Input
	}

	return &ast.IO{
		StartEndPos: span(io, id),
		Kind:        kind,
		Name:        id.Lexeme,
	}, nil
}

func (reducer *Reducer) ReturnToCmd(
	jun *lr.Token,
	value ast.Expression,
) (
	*ast.Return,
	error,
) {
	return &ast.Return{
		StartEndPos: span(jun, value),
		Value:       value,
	}, nil
}

func (reducer *Reducer) ConditionalToCmd(
	los *lr.Token,
	condition ast.Expression,
	fah *lr.Token,
	body ast.Statement,
) (
	*ast.Conditional,
	error,
) {
	return &ast.Conditional{
		StartEndPos: span(los, fah, body),
		Condition:   condition,
		Body:        body,
	}, nil
}

func (reducer *Reducer) LoopToCmd(
	fod *lr.Token,
	condition ast.Expression,
	fah *lr.Token,
	body ast.Statement,
) (
	*ast.Loop,
	error,
) {
	return &ast.Loop{
		StartEndPos: span(fod, fah, body),
		Condition:   condition,
		Body:        body,
	}, nil
}

func (reducer *Reducer) BlockToCmd(
	lparen *lr.Token,
	cmds ast.Node,
	rparen *lr.Token,
) (
	*ast.Block,
	error,
) {
	block := &ast.Block{
		StartEndPos: span(lparen, rparen),
	}

	list, ok := cmds.(*ast.StatementList)
	if ok {
		block.Statements = list.Statements
	}
	return block, nil
}

func (reducer *Reducer) PlainToLhs(
	assign *lr.Token,
	id *lr.Token,
) (
	*ast.Target,
	error,
) {
	return &ast.Target{
		StartEndPos: span(assign, id),
		Name:        id.Lexeme,
	}, nil
}

func (reducer *Reducer) QualifiedToLhs(
	him *lr.Token,
	dot *lr.Token,
	id *lr.Token,
) (
	*ast.Target,
	error,
) {
	return &ast.Target{
		StartEndPos: span(him, id),
		Name:        id.Lexeme,
		Qualified:   true,
	}, nil
}
