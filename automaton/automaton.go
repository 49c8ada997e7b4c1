// Package automaton implements the per-word keyword recognizer.  The
// recognizer is a deterministic automaton over single characters whose
// pushdown stack never grows past its bottom marker.
package automaton

import (
	"fmt"
	"sort"
)

type StateId int

// Reject is the distinguished dead state.  It is not part of any automaton's
// state set and has no outgoing transitions.
const Reject = StateId(-1)

type transitionKey struct {
	from  StateId
	input rune
}

// Automaton is immutable once built and may be shared by concurrent
// recognizers.
type Automaton struct {
	labels    []string
	ids       map[string]StateId
	alphabet  map[rune]struct{}
	bottom    string
	delta     map[transitionKey]StateId
	start     StateId
	accepting []bool

	categories map[StateId]string
}

func (automaton *Automaton) Start() StateId {
	return automaton.start
}

func (automaton *Automaton) NumStates() int {
	return len(automaton.labels)
}

func (automaton *Automaton) Label(id StateId) string {
	if id == Reject {
		return "X"
	}
	if id < 0 || int(id) >= len(automaton.labels) {
		return fmt.Sprintf("?unknown state %d?", int(id))
	}
	return automaton.labels[id]
}

func (automaton *Automaton) StateByLabel(label string) (StateId, bool) {
	id, ok := automaton.ids[label]
	return id, ok
}

func (automaton *Automaton) InAlphabet(char rune) bool {
	_, ok := automaton.alphabet[char]
	return ok
}

func (automaton *Automaton) IsAccepting(id StateId) bool {
	if id < 0 || int(id) >= len(automaton.accepting) {
		return false
	}
	return automaton.accepting[id]
}

// Category returns the lexical category name attached to a final state.
func (automaton *Automaton) Category(id StateId) (string, bool) {
	category, ok := automaton.categories[id]
	return category, ok
}

// Categories returns the distinct category names, sorted.
func (automaton *Automaton) Categories() []string {
	seen := map[string]struct{}{}
	result := []string{}
	for _, category := range automaton.categories {
		_, ok := seen[category]
		if ok {
			continue
		}
		seen[category] = struct{}{}
		result = append(result, category)
	}
	sort.Strings(result)
	return result
}

// Recognize replays the word from the start state.  It returns the final
// state when the whole word is consumed in an accepting state, and Reject
// otherwise.
func (automaton *Automaton) Recognize(word string) StateId {
	return automaton.run(word, nil)
}

// Trace is like Recognize but also returns the visited states, starting with
// the start state.  A rejected word's route ends in Reject.
func (automaton *Automaton) Trace(word string) ([]StateId, StateId) {
	route := []StateId{automaton.start}
	final := automaton.run(word, &route)
	if final == Reject {
		route = append(route, Reject)
	}
	return route, final
}

func (automaton *Automaton) run(word string, route *[]StateId) StateId {
	current := automaton.start
	for _, char := range word {
		_, ok := automaton.alphabet[char]
		if !ok {
			return Reject
		}

		next, ok := automaton.delta[transitionKey{from: current, input: char}]
		if !ok {
			return Reject
		}

		current = next
		if route != nil {
			*route = append(*route, current)
		}
	}

	if !automaton.accepting[current] {
		return Reject
	}
	return current
}
