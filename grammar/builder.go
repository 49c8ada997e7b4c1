package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fantasylang/fantasy/parser/lr"
)

// ConflictError reports an SLR(1) conflict found while building the table.
type ConflictError struct {
	State   lr.StateId
	Symbol  string
	Actions []string
}

func (err *ConflictError) Error() string {
	return fmt.Sprintf(
		"conflict in state %d on %s: %s",
		err.State,
		err.Symbol,
		strings.Join(err.Actions, " / "))
}

type builder struct {
	*Grammar

	augmentedStart string
	rulesByLhs     map[string][]Rule

	states      []*lr.State
	stateIds    map[string]lr.StateId
	transitions map[lr.StateId]map[string]lr.StateId

	terminals map[string]struct{}
	nullable  map[string]bool
	first     map[string]map[string]struct{}
	follow    map[string]map[string]struct{}
}

// Build constructs the LR(0) canonical collection of the augmented grammar
// and its FOLLOW sets.  States are numbered breadth first, successor symbols
// taken in item order.  The epsilon symbol is treated as a transition symbol
// leading to the state holding the completed empty item.
func Build(grammar *Grammar) (*lr.Table, error) {
	augmented := grammar.Start + "'"
	for grammar.IsNonterminal(augmented) {
		augmented += "'"
	}

	b := &builder{
		Grammar:        grammar,
		augmentedStart: augmented,
		rulesByLhs:     map[string][]Rule{},
		stateIds:       map[string]lr.StateId{},
		transitions:    map[lr.StateId]map[string]lr.StateId{},
		terminals:      map[string]struct{}{lr.EndMarker: {}},
	}

	for _, rule := range grammar.Rules {
		b.rulesByLhs[rule.Lhs] = append(b.rulesByLhs[rule.Lhs], rule)
	}
	for _, terminal := range grammar.Terminals {
		b.terminals[terminal] = struct{}{}
	}

	b.buildCollection()
	b.computeFirst()
	b.computeFollow()

	table := &lr.Table{
		States:         b.states,
		Transitions:    b.transitions,
		Terminals:      append(append([]string{}, grammar.Terminals...), lr.EndMarker),
		Nonterminals:   append([]string{}, grammar.Nonterminals...),
		Follow:         map[string][]string{},
		AugmentedStart: augmented,
		Start:          0,
	}

	for _, nonterminal := range grammar.Nonterminals {
		follow := []string{}
		for _, terminal := range table.Terminals {
			_, ok := b.follow[nonterminal][terminal]
			if ok {
				follow = append(follow, terminal)
			}
		}
		table.Follow[nonterminal] = follow
	}

	accept, ok := table.Next(0, grammar.Start)
	if !ok {
		panic("should never happen")
	}
	table.Accept = accept

	err := b.checkConflicts(table)
	if err != nil {
		return nil, err
	}

	return table, nil
}

func (b *builder) closure(kernel []lr.Item) []lr.Item {
	result := append([]lr.Item{}, kernel...)

	seen := map[string]struct{}{}
	for _, item := range result {
		seen[itemKey(item)] = struct{}{}
	}

	for idx := 0; idx < len(result); idx++ {
		for _, rule := range b.rulesByLhs[result[idx].Next()] {
			item := lr.Item{Lhs: rule.Lhs, Rhs: rule.Rhs, Dot: 0}
			key := itemKey(item)
			_, ok := seen[key]
			if ok {
				continue
			}
			seen[key] = struct{}{}
			result = append(result, item)
		}
	}

	return result
}

// itemKey identifies an item structurally.  Item.String renders the dot the
// same way as a "." terminal.
func itemKey(item lr.Item) string {
	return fmt.Sprintf(
		"%s|%d|%s",
		item.Lhs,
		item.Dot,
		strings.Join(item.Rhs, "\x00"))
}

func stateKey(items []lr.Item) string {
	keys := make([]string, 0, len(items))
	for _, item := range items {
		keys = append(keys, itemKey(item))
	}
	sort.Strings(keys)
	return strings.Join(keys, "\n")
}

func (b *builder) intern(items []lr.Item) lr.StateId {
	key := stateKey(items)
	id, ok := b.stateIds[key]
	if ok {
		return id
	}

	id = lr.StateId(len(b.states))
	b.stateIds[key] = id
	b.states = append(b.states, &lr.State{Id: id, Items: items})
	return id
}

func (b *builder) buildCollection() {
	b.intern(b.closure([]lr.Item{
		{Lhs: b.augmentedStart, Rhs: []string{b.Start}, Dot: 0},
	}))

	for idx := 0; idx < len(b.states); idx++ {
		state := b.states[idx]

		symbols := []string{}
		kernels := map[string][]lr.Item{}
		for _, item := range state.Items {
			next := item.Next()
			if next == "" {
				continue
			}

			_, ok := kernels[next]
			if !ok {
				symbols = append(symbols, next)
			}

			advanced := item
			advanced.Dot++
			kernels[next] = append(kernels[next], advanced)
		}

		if len(symbols) == 0 {
			continue
		}

		targets := map[string]lr.StateId{}
		for _, symbol := range symbols {
			targets[symbol] = b.intern(b.closure(kernels[symbol]))
		}
		b.transitions[state.Id] = targets
	}
}

func (b *builder) isTerminal(symbol string) bool {
	_, ok := b.terminals[symbol]
	return ok
}

// firstOf returns FIRST(symbol), excluding the empty string.
func (b *builder) firstOf(symbol string) map[string]struct{} {
	if b.isTerminal(symbol) {
		return map[string]struct{}{symbol: {}}
	}
	return b.first[symbol]
}

func (b *builder) computeFirst() {
	b.nullable = map[string]bool{lr.Epsilon: true}
	b.first = map[string]map[string]struct{}{}
	for _, nonterminal := range b.Nonterminals {
		b.first[nonterminal] = map[string]struct{}{}
	}

	for changed := true; changed; {
		changed = false
		for _, rule := range b.Rules {
			allNullable := true
			for _, symbol := range rule.Rhs {
				for terminal := range b.firstOf(symbol) {
					_, ok := b.first[rule.Lhs][terminal]
					if !ok {
						b.first[rule.Lhs][terminal] = struct{}{}
						changed = true
					}
				}

				if !b.nullable[symbol] {
					allNullable = false
					break
				}
			}

			if allNullable && !b.nullable[rule.Lhs] {
				b.nullable[rule.Lhs] = true
				changed = true
			}
		}
	}
}

func (b *builder) computeFollow() {
	b.follow = map[string]map[string]struct{}{}
	for _, nonterminal := range b.Nonterminals {
		b.follow[nonterminal] = map[string]struct{}{}
	}
	b.follow[b.Start][lr.EndMarker] = struct{}{}

	add := func(nonterminal string, terminals map[string]struct{}) bool {
		changed := false
		for terminal := range terminals {
			_, ok := b.follow[nonterminal][terminal]
			if !ok {
				b.follow[nonterminal][terminal] = struct{}{}
				changed = true
			}
		}
		return changed
	}

	for changed := true; changed; {
		changed = false
		for _, rule := range b.Rules {
			for idx, symbol := range rule.Rhs {
				_, ok := b.follow[symbol]
				if !ok { // terminal or epsilon
					continue
				}

				restNullable := true
				for _, next := range rule.Rhs[idx+1:] {
					if add(symbol, b.firstOf(next)) {
						changed = true
					}
					if !b.nullable[next] {
						restNullable = false
						break
					}
				}

				if restNullable && add(symbol, b.follow[rule.Lhs]) {
					changed = true
				}
			}
		}
	}
}

// checkConflicts applies the engine's decision procedure (shift, then
// epsilon goto, then reduce) and rejects tables where more than one action
// applies for some lookahead.
func (b *builder) checkConflicts(table *lr.Table) error {
	productions, err := lr.ExtractProductions(table)
	if err != nil {
		return err
	}

	for _, state := range table.States {
		for _, terminal := range table.Terminals {
			actions := []string{}

			target, ok := table.Next(state.Id, terminal)
			if ok && terminal != lr.EndMarker {
				actions = append(actions, fmt.Sprintf("shift %d", target))
			}

			target, ok = table.Next(state.Id, lr.Epsilon)
			if ok {
				production, ok := productions[target]
				if ok && table.InFollow(production.Lhs, terminal) {
					actions = append(actions, "epsilon "+production.Lhs)
				}
			}

			production, ok := productions[state.Id]
			if ok && table.InFollow(production.Lhs, terminal) {
				actions = append(actions, "reduce "+production.String())
			}

			if len(actions) > 1 {
				return &ConflictError{
					State:   state.Id,
					Symbol:  terminal,
					Actions: actions,
				}
			}
		}
	}

	return nil
}
