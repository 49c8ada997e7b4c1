// Package symtab implements the scoped symbol table.  Scopes form a tree
// stored in an arena; exiting a scope only moves the current scope pointer,
// so closed scopes remain available for reporting.
package symtab

import (
	"github.com/fantasylang/fantasy/ast"
	"github.com/fantasylang/fantasy/report"
)

type Table struct {
	scopes  []*Scope
	current ScopeId

	report *report.Report
}

// NewTable creates a table with a fresh global scope.  Diagnostics are
// recorded into the table's own report.
func NewTable() *Table {
	return &Table{
		scopes:  []*Scope{newScope(GlobalScope, GlobalScopeName, NoScope)},
		current: GlobalScope,
		report:  report.New(),
	}
}

func (table *Table) Report() *report.Report {
	return table.report
}

func (table *Table) Global() *Scope {
	return table.scopes[GlobalScope]
}

func (table *Table) Current() *Scope {
	return table.scopes[table.current]
}

func (table *Table) Scope(id ScopeId) *Scope {
	if id < 0 || int(id) >= len(table.scopes) {
		return nil
	}
	return table.scopes[id]
}

func (table *Table) NumScopes() int {
	return len(table.scopes)
}

// Declare inserts a new symbol into the current scope.  Redeclaring a name
// within the same scope records an error and leaves the existing symbol
// untouched.
func (table *Table) Declare(
	name string,
	kind Kind,
	line int,
	value ast.Expression,
) bool {
	scope := table.Current()
	_, ok := scope.symbols[name]
	if ok {
		table.report.Error(&RedeclaredError{
			Name:  name,
			Scope: scope.Name,
			Line:  line,
		})
		return false
	}

	scope.add(&Symbol{
		Name:  name,
		Kind:  kind,
		Scope: scope.Name,
		Line:  line,
		Value: value,
	})
	return true
}

// Lookup searches the current scope, then each ancestor up to the global
// scope.  A miss records an undeclared error.
func (table *Table) Lookup(
	name string,
	line int,
	markUsed bool,
) (
	*Symbol,
	bool,
) {
	for id := table.current; id != NoScope; id = table.scopes[id].Parent {
		symbol, ok := table.scopes[id].symbols[name]
		if !ok {
			continue
		}

		if markUsed {
			symbol.Used = true
		}
		return symbol, true
	}

	table.report.Error(&UndeclaredError{Name: name, Line: line})
	return nil, false
}

// LookupInScope is a non-recursive search restricted to the scope named
// scopeName.  When several scopes share the name, the current scope and its
// ancestors take precedence, then the first match in depth-first creation
// order.  It never marks usage nor records diagnostics.
func (table *Table) LookupInScope(
	name string,
	scopeName string,
) (
	*Symbol,
	bool,
) {
	scope := table.findScope(scopeName)
	if scope == nil {
		return nil, false
	}
	return scope.Get(name)
}

func (table *Table) findScope(name string) *Scope {
	for id := table.current; id != NoScope; id = table.scopes[id].Parent {
		if table.scopes[id].Name == name {
			return table.scopes[id]
		}
	}

	var found *Scope
	table.Walk(func(scope *Scope, depth int) bool {
		if scope.Name == name {
			found = scope
			return false
		}
		return true
	})
	return found
}

// EnterScope creates a child of the current scope and makes it current.
func (table *Table) EnterScope(name string) ScopeId {
	id := ScopeId(len(table.scopes))
	table.scopes = append(table.scopes, newScope(id, name, table.current))

	parent := table.scopes[table.current]
	parent.Children = append(parent.Children, id)

	table.current = id
	return id
}

// ExitScope makes the current scope's parent current.  Exiting the global
// scope is a no-op that records a warning.
func (table *Table) ExitScope() {
	parent := table.scopes[table.current].Parent
	if parent == NoScope {
		table.report.Warn(ErrExitGlobalScope)
		return
	}
	table.current = parent
}

// Walk visits scopes depth first, global scope first, children in creation
// order.  Returning false from visit stops the walk.
func (table *Table) Walk(visit func(scope *Scope, depth int) bool) {
	table.walk(GlobalScope, 0, visit)
}

func (table *Table) walk(
	id ScopeId,
	depth int,
	visit func(*Scope, int) bool,
) bool {
	scope := table.scopes[id]
	if !visit(scope, depth) {
		return false
	}

	for _, child := range scope.Children {
		if !table.walk(child, depth+1, visit) {
			return false
		}
	}
	return true
}

// CheckUnusedSymbols records one warning per variable that was never marked
// as used.  Modules and parameters are exempt.
func (table *Table) CheckUnusedSymbols() {
	table.Walk(func(scope *Scope, depth int) bool {
		for _, symbol := range scope.order {
			if symbol.Kind == Variable && !symbol.Used {
				table.report.Warn(&UnusedWarning{
					Name: symbol.Name,
					Line: symbol.Line,
				})
			}
		}
		return true
	})
}
