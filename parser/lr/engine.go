package lr

import (
	"fmt"
	"io"

	"github.com/fantasylang/fantasy/ast"
	"github.com/fantasylang/fantasy/report"
	"github.com/fantasylang/fantasy/symtab"
)

// Reducer is the semantic action dispatcher.  It synthesizes the attribute of
// the production's left-hand side from the popped attributes, in
// left-to-right order.  Empty productions receive no attributes, and an
// attribute is nil if its own action failed.
type Reducer interface {
	Reduce(production *Production, attributes []ast.Node) (ast.Node, error)
}

// Engine is the shift-reduce engine.  It is immutable once built; every Parse
// call runs with its own stacks.
type Engine struct {
	table       *Table
	productions map[StateId]*Production
}

func NewEngine(table *Table) (*Engine, error) {
	err := table.Validate()
	if err != nil {
		return nil, err
	}

	productions, err := ExtractProductions(table)
	if err != nil {
		return nil, err
	}

	return &Engine{
		table:       table,
		productions: productions,
	}, nil
}

func (engine *Engine) Table() *Table {
	return engine.table
}

func (engine *Engine) Production(state StateId) (*Production, bool) {
	production, ok := engine.productions[state]
	return production, ok
}

type Result struct {
	// The token sequence is in the language.
	Accepted bool

	// Accepted with no error at all (syntactic, structural or semantic).
	Success bool

	// The start symbol's attribute.  nil unless accepted.
	Program ast.Node

	// Engine and symbol table diagnostics, merged.
	Report *report.Report
}

func (result *Result) Errors() []error {
	return result.Report.Errors()
}

func (result *Result) Warnings() []error {
	return result.Report.Warnings()
}

// Parse runs the token sequence to accept or to the first syntax error.  A
// missing end marker is implied after the last token.  trace is optional and
// receives one line per step.
func (engine *Engine) Parse(
	tokens []*Token,
	reducer Reducer,
	symbols *symtab.Table,
	trace io.Writer,
) *Result {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != EndMarkerToken {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}

		terminated := make([]*Token, 0, len(tokens)+1)
		terminated = append(terminated, tokens...)
		terminated = append(terminated, &Token{
			Kind:   EndMarkerToken,
			Lexeme: EndMarker,
			Line:   line,
		})
		tokens = terminated
	}

	run := &parseRun{
		Engine:  engine,
		reducer: reducer,
		symbols: symbols,
		trace:   trace,
		report:  report.New(),
		tokens:  tokens,
		states:  []StateId{engine.table.Start},
	}
	return run.parse()
}

type parseRun struct {
	*Engine

	reducer Reducer
	symbols *symtab.Table
	trace   io.Writer
	report  *report.Report

	tokens []*Token
	pos    int

	// len(symbolStack) == len(attributes) == len(states) - 1
	states      []StateId
	symbolStack []string
	attributes  []ast.Node
}

func (run *parseRun) parse() *Result {
	for {
		state := run.states[len(run.states)-1]
		token := run.tokens[run.pos]
		lookahead := token.Kind.String()

		if state == run.table.Accept && lookahead == EndMarker {
			run.tracef(state, lookahead, "accept")
			return run.accept()
		}

		next, ok := run.table.Next(state, lookahead)
		if ok && lookahead != EndMarker {
			run.tracef(state, lookahead, "shift %d", next)
			run.push(next, lookahead, token)
			run.pos++
			continue
		}

		epsilon := run.epsilonProduction(state)
		if epsilon != nil && run.table.InFollow(epsilon.Lhs, lookahead) {
			next, ok := run.table.Next(state, epsilon.Lhs)
			if ok {
				run.tracef(state, lookahead, "epsilon %s, goto %d", epsilon.Lhs, next)
				run.push(next, epsilon.Lhs, nil)
				continue
			}
		}

		production, ok := run.productions[state]
		if ok && (lookahead == EndMarker ||
			run.table.InFollow(production.Lhs, lookahead)) {

			err := run.reduce(state, lookahead, production, token)
			if err != nil {
				run.report.Error(err)
				return run.reject()
			}
			continue
		}

		run.tracef(state, lookahead, "error")
		run.report.Error(&SyntaxError{
			Token:    token,
			Expected: run.table.ExpectedTerminals(state, production, epsilon),
		})
		return run.reject()
	}
}

// epsilonProduction returns the empty production reachable from state through
// an epsilon transition, if any.
func (run *parseRun) epsilonProduction(state StateId) *Production {
	target, ok := run.table.Next(state, Epsilon)
	if !ok {
		return nil
	}

	production, ok := run.productions[target]
	if !ok || !production.IsEpsilon() {
		return nil
	}
	return production
}

func (run *parseRun) reduce(
	state StateId,
	lookahead string,
	production *Production,
	token *Token,
) error {
	arity := production.Arity()
	if arity > len(run.symbolStack) {
		return &TableError{
			State:  state,
			Symbol: production.Lhs,
			Reason: fmt.Sprintf("stack underflow reducing %s", production),
		}
	}

	start := len(run.symbolStack) - arity
	attributes := make([]ast.Node, arity)
	copy(attributes, run.attributes[start:])

	run.states = run.states[:len(run.states)-arity]
	run.symbolStack = run.symbolStack[:start]
	run.attributes = run.attributes[:start]

	value := run.dispatch(production, attributes, token.Line)

	top := run.states[len(run.states)-1]
	next, ok := run.table.Next(top, production.Lhs)
	if !ok {
		run.tracef(state, lookahead, "reduce %s, no goto from %d", production, top)
		return &TableError{
			State:  top,
			Symbol: production.Lhs,
			Reason: fmt.Sprintf("missing goto after reducing %s", production),
		}
	}

	run.tracef(state, lookahead, "reduce %s, goto %d", production, next)
	run.push(next, production.Lhs, value)

	switch attr := value.(type) {
	case ast.ScopeOpener:
		run.symbols.EnterScope(attr.ScopeName())
	case ast.ScopeCloser:
		if attr.ClosesScope() {
			run.symbols.ExitScope()
		}
	}

	return nil
}

// dispatch invokes the reducer.  A failed action, including a panic, is
// recorded and synthesizes no value.
func (run *parseRun) dispatch(
	production *Production,
	attributes []ast.Node,
	line int,
) (
	value ast.Node,
) {
	for _, attr := range attributes {
		token, ok := attr.(*Token)
		if ok {
			line = token.Line
			break
		}
	}

	defer func() {
		recovered := recover()
		if recovered != nil {
			run.report.Error(&ActionError{
				Production: production,
				Line:       line,
				Err:        fmt.Errorf("%v", recovered),
			})
			value = nil
		}
	}()

	value, err := run.reducer.Reduce(production, attributes)
	if err != nil {
		run.report.Error(&ActionError{
			Production: production,
			Line:       line,
			Err:        err,
		})
		return nil
	}
	return value
}

func (run *parseRun) push(state StateId, symbol string, attribute ast.Node) {
	run.states = append(run.states, state)
	run.symbolStack = append(run.symbolStack, symbol)
	run.attributes = append(run.attributes, attribute)
}

func (run *parseRun) accept() *Result {
	run.symbols.CheckUnusedSymbols()
	run.report.Merge(run.symbols.Report())

	var program ast.Node
	if len(run.attributes) > 0 {
		program = run.attributes[len(run.attributes)-1]
	}

	return &Result{
		Accepted: true,
		Success:  !run.report.HasErrors(),
		Program:  program,
		Report:   run.report,
	}
}

func (run *parseRun) reject() *Result {
	run.report.Merge(run.symbols.Report())
	return &Result{
		Report: run.report,
	}
}

func (run *parseRun) tracef(
	state StateId,
	lookahead string,
	format string,
	args ...interface{},
) {
	if run.trace == nil {
		return
	}

	fmt.Fprintf(
		run.trace,
		"stack=%v state=%d lookahead=%s: %s\n",
		run.states,
		state,
		lookahead,
		fmt.Sprintf(format, args...))
}

func describe(token *Token) string {
	switch token.Kind {
	case IdentifierToken, NumberToken, ErrorToken:
		return fmt.Sprintf("%s (%s)", token.Kind, token.Lexeme)
	default:
		return token.Kind.String()
	}
}
