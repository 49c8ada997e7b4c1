package ast

import (
	"github.com/pattyshack/gt/parseutil"
)

// Assignment target: either a plain identifier (assign x) or a member of the
// current scope (HIM . x).
type Target struct {
	parseutil.StartEndPos

	Name      string
	Qualified bool
}

var _ Node = &Target{}
var _ Validator = &Target{}

func (target *Target) String() string {
	if target.Qualified {
		return "HIM." + target.Name
	}
	return target.Name
}

func (target *Target) Walk(visitor Visitor) {
	visitor.Enter(target)
	visitor.Exit(target)
}

func (target *Target) Validate(emitter *parseutil.Emitter) {
	if target.Name == "" {
		emitter.Emit(target.Loc(), "empty assignment target name")
	}
}

// FUS <name> := <value>
type Declaration struct {
	isStmt
	parseutil.StartEndPos

	Name  string
	Value Expression // nil if the initializer's action failed
}

var _ Statement = &Declaration{}
var _ Validator = &Declaration{}

func (decl *Declaration) Walk(visitor Visitor) {
	visitor.Enter(decl)
	if decl.Value != nil {
		decl.Value.Walk(visitor)
	}
	visitor.Exit(decl)
}

func (decl *Declaration) Validate(emitter *parseutil.Emitter) {
	if decl.Name == "" {
		emitter.Emit(decl.Loc(), "empty declaration name")
	}
}

type Assignment struct {
	isStmt
	parseutil.StartEndPos

	Target *Target
	Value  Expression
}

var _ Statement = &Assignment{}
var _ Validator = &Assignment{}

func (assign *Assignment) Walk(visitor Visitor) {
	visitor.Enter(assign)
	if assign.Target != nil {
		assign.Target.Walk(visitor)
	}
	if assign.Value != nil {
		assign.Value.Walk(visitor)
	}
	visitor.Exit(assign)
}

func (assign *Assignment) Validate(emitter *parseutil.Emitter) {
	if assign.Target == nil {
		emitter.Emit(assign.Loc(), "assignment without target")
	}
}

// KEL <name>
type ModuleHeader struct {
	parseutil.StartEndPos

	Name string
}

var _ ScopeOpener = &ModuleHeader{}

func (header *ModuleHeader) ScopeName() string {
	return header.Name
}

func (header *ModuleHeader) Walk(visitor Visitor) {
	visitor.Enter(header)
	visitor.Exit(header)
}

// KEL <name> <body>.  The body is evaluated in the module's own scope.
type Module struct {
	isStmt
	parseutil.StartEndPos

	Header *ModuleHeader // nil if the header's action failed
	Body   Statement
}

var _ Statement = &Module{}
var _ ScopeCloser = &Module{}
var _ Validator = &Module{}

func (module *Module) Name() string {
	if module.Header == nil {
		return ""
	}
	return module.Header.Name
}

// A module only closes a scope if its header opened one.
func (module *Module) ClosesScope() bool {
	return module.Header != nil
}

func (module *Module) Walk(visitor Visitor) {
	visitor.Enter(module)
	if module.Body != nil {
		module.Body.Walk(visitor)
	}
	visitor.Exit(module)
}

func (module *Module) Validate(emitter *parseutil.Emitter) {
	if module.Header != nil && module.Header.Name == "" {
		emitter.Emit(module.Loc(), "empty module name")
	}
}

type IOKind string

const (
	Input  = IOKind("input")
	Output = IOKind("output")
)

// HON <name> / print <name>
type IO struct {
	isStmt
	parseutil.StartEndPos

	Kind IOKind
	Name string
}

var _ Statement = &IO{}
var _ Validator = &IO{}

func (io *IO) Walk(visitor Visitor) {
	visitor.Enter(io)
	visitor.Exit(io)
}

func (io *IO) Validate(emitter *parseutil.Emitter) {
	switch io.Kind {
	case Input, Output: // ok
	default:
		emitter.Emit(io.Loc(), "unexpected io kind (%s)", io.Kind)
	}

	if io.Name == "" {
		emitter.Emit(io.Loc(), "empty io operand name")
	}
}

// JUN <value>
type Return struct {
	isStmt
	parseutil.StartEndPos

	Value Expression
}

var _ Statement = &Return{}

func (ret *Return) Walk(visitor Visitor) {
	visitor.Enter(ret)
	if ret.Value != nil {
		ret.Value.Walk(visitor)
	}
	visitor.Exit(ret)
}

// LOS <condition> FAH <body>
type Conditional struct {
	isStmt
	parseutil.StartEndPos

	Condition Expression
	Body      Statement
}

var _ Statement = &Conditional{}

func (cond *Conditional) Walk(visitor Visitor) {
	visitor.Enter(cond)
	if cond.Condition != nil {
		cond.Condition.Walk(visitor)
	}
	if cond.Body != nil {
		cond.Body.Walk(visitor)
	}
	visitor.Exit(cond)
}

// FOD <condition> FAH <body>
type Loop struct {
	isStmt
	parseutil.StartEndPos

	Condition Expression
	Body      Statement
}

var _ Statement = &Loop{}

func (loop *Loop) Walk(visitor Visitor) {
	visitor.Enter(loop)
	if loop.Condition != nil {
		loop.Condition.Walk(visitor)
	}
	if loop.Body != nil {
		loop.Body.Walk(visitor)
	}
	visitor.Exit(loop)
}

// ( <statements> ).  A block does not introduce a scope.
type Block struct {
	isStmt
	parseutil.StartEndPos

	Statements []Statement
}

var _ Statement = &Block{}

func (block *Block) Walk(visitor Visitor) {
	visitor.Enter(block)
	for _, stmt := range block.Statements {
		stmt.Walk(visitor)
	}
	visitor.Exit(block)
}

// StatementList is the intermediate attribute of a statement sequence.  It only
// lives on the parse stack.
type StatementList struct {
	parseutil.StartEndPos

	Statements []Statement
}

var _ Node = &StatementList{}

func (list *StatementList) Walk(visitor Visitor) {
	visitor.Enter(list)
	for _, stmt := range list.Statements {
		stmt.Walk(visitor)
	}
	visitor.Exit(list)
}

type Program struct {
	parseutil.StartEndPos

	Statements []Statement
}

var _ Node = &Program{}

func (program *Program) Walk(visitor Visitor) {
	visitor.Enter(program)
	for _, stmt := range program.Statements {
		stmt.Walk(visitor)
	}
	visitor.Exit(program)
}
