package lr

import (
	"fmt"
	"strings"
)

type Production struct {
	Lhs string
	Rhs []string // [Epsilon] for the empty production
}

func (production *Production) IsEpsilon() bool {
	return len(production.Rhs) == 1 && production.Rhs[0] == Epsilon
}

// Arity is the number of stack slots the production pops.
func (production *Production) Arity() int {
	if production.IsEpsilon() {
		return 0
	}
	return len(production.Rhs)
}

// Is reports whether the production is lhs -> rhs.
func (production *Production) Is(lhs string, rhs ...string) bool {
	if production.Lhs != lhs || len(production.Rhs) != len(rhs) {
		return false
	}
	for idx, symbol := range rhs {
		if production.Rhs[idx] != symbol {
			return false
		}
	}
	return true
}

func (production *Production) String() string {
	return production.Lhs + " -> " + strings.Join(production.Rhs, " ")
}

// ReduceReduceError is returned when a state holds more than one completed
// item.
type ReduceReduceError struct {
	State       StateId
	Productions []*Production
}

func (err *ReduceReduceError) Error() string {
	names := make([]string, 0, len(err.Productions))
	for _, production := range err.Productions {
		names = append(names, production.String())
	}
	return fmt.Sprintf(
		"state %d has more than one completed item: %s",
		err.State,
		strings.Join(names, "; "))
}

// ExtractProductions maps each state to the production of its completed
// item.  States without a completed item have no entry.
func ExtractProductions(table *Table) (map[StateId]*Production, error) {
	result := map[StateId]*Production{}
	for _, state := range table.States {
		var completed []*Production
		for _, item := range state.Items {
			if !item.IsCompleted() || item.Lhs == table.AugmentedStart {
				continue
			}
			completed = append(completed, &Production{
				Lhs: item.Lhs,
				Rhs: item.Rhs,
			})
		}

		if len(completed) > 1 {
			return nil, &ReduceReduceError{
				State:       state.Id,
				Productions: completed,
			}
		}

		if len(completed) == 1 {
			result[state.Id] = completed[0]
		}
	}
	return result, nil
}
