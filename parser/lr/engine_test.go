package lr

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fantasylang/fantasy/ast"
	"github.com/fantasylang/fantasy/symtab"
)

// S' -> S
// S  -> num E
// E  -> + num E | epsilon
func sumTable() *Table {
	item := func(lhs string, dot int, rhs ...string) Item {
		return Item{Lhs: lhs, Rhs: rhs, Dot: dot}
	}

	return &Table{
		States: []*State{
			{Id: 0, Items: []Item{item("S'", 0, "S"), item("S", 0, "num", "E")}},
			{Id: 1, Items: []Item{item("S'", 1, "S")}},
			{Id: 2, Items: []Item{
				item("S", 1, "num", "E"),
				item("E", 0, "+", "num", "E"),
				item("E", 0, Epsilon),
			}},
			{Id: 3, Items: []Item{item("S", 2, "num", "E")}},
			{Id: 4, Items: []Item{item("E", 1, "+", "num", "E")}},
			{Id: 5, Items: []Item{item("E", 1, Epsilon)}},
			{Id: 6, Items: []Item{
				item("E", 2, "+", "num", "E"),
				item("E", 0, "+", "num", "E"),
				item("E", 0, Epsilon),
			}},
			{Id: 7, Items: []Item{item("E", 3, "+", "num", "E")}},
		},
		Transitions: map[StateId]map[string]StateId{
			0: {"S": 1, "num": 2},
			2: {"E": 3, "+": 4, Epsilon: 5},
			4: {"num": 6},
			6: {"E": 7, "+": 4, Epsilon: 5},
		},
		Terminals:    []string{"num", "+", EndMarker},
		Nonterminals: []string{"S", "E"},
		Follow: map[string][]string{
			"S": {EndMarker},
			"E": {EndMarker},
		},
		AugmentedStart: "S'",
		Start:          0,
		Accept:         1,
	}
}

func numToken(value int64, column int) *Token {
	return &Token{
		Kind:   NumberToken,
		Lexeme: fmt.Sprintf("%d", value),
		Line:   1,
		Column: column,
		Number: value,
	}
}

func plusToken(column int) *Token {
	return &Token{Kind: PlusToken, Lexeme: "+", Line: 1, Column: column}
}

type recordingReducer struct {
	reduced []string
	arities []int
	reduce  func(*Production, []ast.Node) (ast.Node, error)
}

func (reducer *recordingReducer) Reduce(
	production *Production,
	attributes []ast.Node,
) (
	ast.Node,
	error,
) {
	reducer.reduced = append(reducer.reduced, production.String())
	reducer.arities = append(reducer.arities, len(attributes))
	if reducer.reduce != nil {
		return reducer.reduce(production, attributes)
	}
	if len(attributes) == 0 {
		return nil, nil
	}
	return attributes[0], nil
}

func newEngine(t *testing.T, table *Table) *Engine {
	engine, err := NewEngine(table)
	require.NoError(t, err)
	return engine
}

func TestExtractProductions(t *testing.T) {
	productions, err := ExtractProductions(sumTable())
	require.NoError(t, err)

	require.Len(t, productions, 3)
	require.True(t, productions[3].Is("S", "num", "E"))
	require.True(t, productions[5].IsEpsilon())
	require.Equal(t, 0, productions[5].Arity())
	require.True(t, productions[7].Is("E", "+", "num", "E"))

	// the accept item is not a production
	_, ok := productions[1]
	require.False(t, ok)
}

func TestExtractProductionsReduceReduce(t *testing.T) {
	table := sumTable()
	table.States[3].Items = append(
		table.States[3].Items,
		Item{Lhs: "E", Rhs: []string{"num"}, Dot: 1})

	_, err := NewEngine(table)
	require.Error(t, err)

	conflict := &ReduceReduceError{}
	require.True(t, errors.As(err, &conflict))
	require.Equal(t, StateId(3), conflict.State)
	require.Len(t, conflict.Productions, 2)
}

func TestNewEngineRejectsDanglingTransition(t *testing.T) {
	table := sumTable()
	table.Transitions[4]["+"] = 42

	_, err := NewEngine(table)
	require.Error(t, err)
}

func TestAccept(t *testing.T) {
	engine := newEngine(t, sumTable())
	reducer := &recordingReducer{}
	trace := &bytes.Buffer{}

	result := engine.Parse(
		[]*Token{numToken(1, 1), plusToken(3), numToken(2, 5)},
		reducer,
		symtab.NewTable(),
		trace)

	require.True(t, result.Accepted)
	require.True(t, result.Success)
	require.Empty(t, result.Errors())
	require.Equal(
		t,
		[]string{"E -> + num E", "S -> num E"},
		reducer.reduced)
	require.Equal(t, []int{3, 2}, reducer.arities)

	program, ok := result.Program.(*Token)
	require.True(t, ok)
	require.Equal(t, int64(1), program.Number)

	require.Contains(t, trace.String(), "epsilon E, goto 7")
	require.Contains(t, trace.String(), "reduce S -> num E, goto 1")
	require.Contains(t, trace.String(), "accept")
}

func TestAcceptWithoutTail(t *testing.T) {
	engine := newEngine(t, sumTable())
	reducer := &recordingReducer{}

	result := engine.Parse(
		[]*Token{numToken(7, 1), {Kind: EndMarkerToken, Lexeme: EndMarker, Line: 1}},
		reducer,
		symtab.NewTable(),
		nil)

	require.True(t, result.Success)
	require.Equal(t, []string{"S -> num E"}, reducer.reduced)
}

func TestSyntaxError(t *testing.T) {
	engine := newEngine(t, sumTable())
	reducer := &recordingReducer{}

	result := engine.Parse(
		[]*Token{numToken(1, 1), numToken(2, 3), plusToken(5)},
		reducer,
		symtab.NewTable(),
		nil)

	require.False(t, result.Accepted)
	require.False(t, result.Success)
	require.Nil(t, result.Program)
	require.Empty(t, reducer.reduced)

	errs := result.Errors()
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "line 1")
	require.Contains(t, errs[0].Error(), "num (2)")
	require.Contains(t, errs[0].Error(), "expecting [+ $]")

	syntaxErr := &SyntaxError{}
	require.True(t, errors.As(errs[0], &syntaxErr))
	require.Equal(t, 1, syntaxErr.Line())
	require.Equal(t, 3, syntaxErr.Column())
	require.Equal(t, []string{"+", EndMarker}, syntaxErr.Expected)
	require.Equal(
		t,
		"syntax error at line 1: unexpected num (2). expecting [+ $]",
		syntaxErr.Error())
}

func TestEmptyInput(t *testing.T) {
	engine := newEngine(t, sumTable())

	result := engine.Parse(nil, &recordingReducer{}, symtab.NewTable(), nil)
	require.False(t, result.Accepted)
	require.Len(t, result.Errors(), 1)
	require.Contains(t, result.Errors()[0].Error(), "unexpected $")
}

func TestMissingGoto(t *testing.T) {
	table := sumTable()
	delete(table.Transitions[0], "S")
	engine := newEngine(t, table)

	result := engine.Parse(
		[]*Token{numToken(1, 1)},
		&recordingReducer{},
		symtab.NewTable(),
		nil)

	require.False(t, result.Accepted)

	errs := result.Errors()
	require.Len(t, errs, 1)

	tableErr := &TableError{}
	require.True(t, errors.As(errs[0], &tableErr))
	require.Equal(t, StateId(0), tableErr.State)
	require.Equal(t, "S", tableErr.Symbol)
}

func TestActionFailureIsNotFatal(t *testing.T) {
	engine := newEngine(t, sumTable())

	failure := errors.New("boom")
	reducer := &recordingReducer{
		reduce: func(production *Production, attrs []ast.Node) (ast.Node, error) {
			if production.Is("E", "+", "num", "E") {
				return nil, failure
			}
			if production.Is("S", "num", "E") {
				// the failed action synthesized no value
				if attrs[1] != nil {
					return nil, fmt.Errorf("unexpected tail attribute")
				}
				panic("kaboom")
			}
			return nil, nil
		},
	}

	result := engine.Parse(
		[]*Token{numToken(1, 1), plusToken(3), numToken(2, 5)},
		reducer,
		symtab.NewTable(),
		nil)

	require.True(t, result.Accepted)
	require.False(t, result.Success)
	require.Nil(t, result.Program)

	errs := result.Errors()
	require.Len(t, errs, 2)
	require.ErrorIs(t, errs[0], failure)

	actionErr := &ActionError{}
	require.True(t, errors.As(errs[1], &actionErr))
	require.True(t, actionErr.Production.Is("S", "num", "E"))
	require.Equal(t, 1, actionErr.Line)
	require.Contains(t, actionErr.Error(), "kaboom")
}

func TestScopeEntryAndExit(t *testing.T) {
	engine := newEngine(t, sumTable())
	symbols := symtab.NewTable()

	var inside string
	reducer := &recordingReducer{
		reduce: func(production *Production, attrs []ast.Node) (ast.Node, error) {
			if production.Is("E", "+", "num", "E") {
				return &ast.ModuleHeader{Name: "m"}, nil
			}
			inside = symbols.Current().Name
			header, _ := attrs[1].(*ast.ModuleHeader)
			return &ast.Module{Header: header}, nil
		},
	}

	result := engine.Parse(
		[]*Token{numToken(1, 1), plusToken(3), numToken(2, 5)},
		reducer,
		symbols,
		nil)

	require.True(t, result.Success)
	require.Equal(t, "m", inside)
	require.Equal(t, symtab.GlobalScope, symbols.Current().Id)
	require.Equal(t, 2, symbols.NumScopes())
	require.Empty(t, result.Warnings())
}

func TestDiagnosticsMergedOnAccept(t *testing.T) {
	engine := newEngine(t, sumTable())
	symbols := symtab.NewTable()
	symbols.Declare("unused", symtab.Variable, 1, nil)
	symbols.Lookup("missing", 1, true)

	result := engine.Parse(
		[]*Token{numToken(1, 1)},
		&recordingReducer{},
		symbols,
		nil)

	require.True(t, result.Accepted)
	require.False(t, result.Success)
	require.Len(t, result.Errors(), 1)

	warnings := result.Warnings()
	require.Len(t, warnings, 1)
	unused := &symtab.UnusedWarning{}
	require.True(t, errors.As(warnings[0], &unused))
	require.Equal(t, "unused", unused.Name)
}

func TestExpectedTerminals(t *testing.T) {
	table := sumTable()
	productions, err := ExtractProductions(table)
	require.NoError(t, err)

	require.Equal(t, []string{"num"}, table.ExpectedTerminals(0))
	require.Equal(
		t,
		[]string{"+", EndMarker},
		table.ExpectedTerminals(2, productions[5]))
}

func TestItemString(t *testing.T) {
	require.Equal(t, "E -> + . num E", Item{Lhs: "E", Rhs: []string{"+", "num", "E"}, Dot: 1}.String())
	require.Equal(t, "E -> epsilon .", Item{Lhs: "E", Rhs: []string{Epsilon}, Dot: 1}.String())
}
