package symtab

import (
	"fmt"

	"github.com/fantasylang/fantasy/ast"
)

type Kind string

const (
	Variable  = Kind("variable")
	Module    = Kind("module")
	Parameter = Kind("parameter")
)

type Symbol struct {
	Name  string
	Kind  Kind
	Scope string // declaring scope's name
	Line  int    // 1-based declaration line

	// Optional literal value.  Overwritten in place by later assignments.
	Value ast.Expression

	// Flips to true on the first lookup that marks usage, never back.
	Used bool
}

func (symbol *Symbol) String() string {
	value := "-"
	if symbol.Value != nil {
		value = symbol.Value.String()
	}

	used := ""
	if symbol.Used {
		used = " (used)"
	}

	return fmt.Sprintf(
		"%s %s = %s [line %d]%s",
		symbol.Kind,
		symbol.Name,
		value,
		symbol.Line,
		used)
}

// ScopeId indexes the table's scope arena.  The global scope is always 0.
type ScopeId int

const (
	GlobalScope     = ScopeId(0)
	NoScope         = ScopeId(-1)
	GlobalScopeName = "global"
)

type Scope struct {
	Id       ScopeId
	Name     string
	Parent   ScopeId // NoScope for the global scope
	Children []ScopeId

	symbols map[string]*Symbol
	order   []*Symbol // declaration order
}

func newScope(id ScopeId, name string, parent ScopeId) *Scope {
	return &Scope{
		Id:      id,
		Name:    name,
		Parent:  parent,
		symbols: map[string]*Symbol{},
	}
}

// Get is a non-recursive lookup.  It does not mark usage.
func (scope *Scope) Get(name string) (*Symbol, bool) {
	symbol, ok := scope.symbols[name]
	return symbol, ok
}

// Symbols returns the scope's symbols in declaration order.
func (scope *Scope) Symbols() []*Symbol {
	return scope.order
}

func (scope *Scope) add(symbol *Symbol) {
	scope.symbols[symbol.Name] = symbol
	scope.order = append(scope.order, symbol)
}
