package lr

import (
	"fmt"
	"strings"
)

type StateId int

// Item is an LR(0) item: a rule with a dot position in its right-hand side.
type Item struct {
	Lhs string
	Rhs []string
	Dot int
}

func (item Item) IsCompleted() bool {
	return item.Dot >= len(item.Rhs)
}

// Next returns the symbol right after the dot, or "" for completed items.
func (item Item) Next() string {
	if item.IsCompleted() {
		return ""
	}
	return item.Rhs[item.Dot]
}

func (item Item) String() string {
	builder := &strings.Builder{}
	builder.WriteString(item.Lhs)
	builder.WriteString(" ->")
	for idx, symbol := range item.Rhs {
		if idx == item.Dot {
			builder.WriteString(" .")
		}
		builder.WriteString(" ")
		builder.WriteString(symbol)
	}
	if item.IsCompleted() {
		builder.WriteString(" .")
	}
	return builder.String()
}

type State struct {
	Id    StateId
	Items []Item // closure; kernel items first
}

// Table is the precomputed SLR(1) parse table artifact.  The engine treats it
// as opaque read-only data; it may be shared by concurrent parses.
type Table struct {
	States []*State

	// Shift (terminal) and goto (nonterminal) targets keyed by state.  The
	// Epsilon symbol maps to the state holding a completed empty item.
	Transitions map[StateId]map[string]StateId

	Terminals    []string // includes EndMarker
	Nonterminals []string

	Follow map[string][]string

	// Left-hand side of the augmented start rule.  Its completed item is the
	// accept item, not a production.
	AugmentedStart string

	Start  StateId
	Accept StateId
}

// Next returns the shift or goto target of (state, symbol).
func (table *Table) Next(state StateId, symbol string) (StateId, bool) {
	targets, ok := table.Transitions[state]
	if !ok {
		return 0, false
	}
	next, ok := targets[symbol]
	return next, ok
}

func (table *Table) InFollow(nonterminal string, terminal string) bool {
	for _, symbol := range table.Follow[nonterminal] {
		if symbol == terminal {
			return true
		}
	}
	return false
}

func (table *Table) IsTerminal(symbol string) bool {
	for _, terminal := range table.Terminals {
		if terminal == symbol {
			return true
		}
	}
	return false
}

func (table *Table) State(id StateId) (*State, bool) {
	if id < 0 || int(id) >= len(table.States) {
		return nil, false
	}
	return table.States[id], true
}

// Validate checks the artifact's internal references.
func (table *Table) Validate() error {
	for idx, state := range table.States {
		if state == nil || state.Id != StateId(idx) {
			return fmt.Errorf("state %d is missing or misnumbered", idx)
		}
	}

	_, ok := table.State(table.Start)
	if !ok {
		return fmt.Errorf("undefined start state (%d)", table.Start)
	}

	_, ok = table.State(table.Accept)
	if !ok {
		return fmt.Errorf("undefined accept state (%d)", table.Accept)
	}

	if !table.IsTerminal(EndMarker) {
		return fmt.Errorf("end marker (%s) is not a terminal", EndMarker)
	}

	for from, targets := range table.Transitions {
		_, ok := table.State(from)
		if !ok {
			return fmt.Errorf("transition from undefined state (%d)", from)
		}
		for symbol, to := range targets {
			_, ok := table.State(to)
			if !ok {
				return fmt.Errorf(
					"transition (%d, %s) to undefined state (%d)",
					from,
					symbol,
					to)
			}
		}
	}

	return nil
}

// ExpectedTerminals lists the terminals the state can shift on, or reduce
// one of the given productions on, in terminal vocabulary order.
func (table *Table) ExpectedTerminals(
	state StateId,
	reductions ...*Production,
) []string {
	result := []string{}
	for _, terminal := range table.Terminals {
		_, ok := table.Next(state, terminal)
		for _, production := range reductions {
			if ok {
				break
			}
			ok = production != nil && table.InFollow(production.Lhs, terminal)
		}

		if ok {
			result = append(result, terminal)
		}
	}
	return result
}
