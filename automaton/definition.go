package automaton

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"sync"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed keywords.yaml
var keywordsDefinition []byte

var (
	defaultOnce      sync.Once
	defaultAutomaton *Automaton
	defaultErr       error
)

// Definition is the serialized form of an automaton.  Transitions follow the
// pushdown formalism (state, input, pop) -> (state, push), but the only stack
// symbol a transition may mention is the bottom marker.
type Definition struct {
	Start         string                 `yaml:"start"`
	Bottom        string                 `yaml:"bottom"`
	Alphabet      []string               `yaml:"alphabet"`
	StackAlphabet []string               `yaml:"stack_alphabet"`
	States        []string               `yaml:"states"`
	Accepting     []string               `yaml:"accepting"`
	Transitions   []TransitionDefinition `yaml:"transitions"`
	Categories    map[string]string      `yaml:"categories"`
}

type TransitionDefinition struct {
	From  string `yaml:"from"`
	Input string `yaml:"input"`
	Pop   string `yaml:"pop"`
	To    string `yaml:"to"`
	Push  string `yaml:"push"`
}

// Default returns the keyword automaton embedded in this package.  The result
// is shared and must not be modified.
func Default() (*Automaton, error) {
	defaultOnce.Do(func() {
		defaultAutomaton, defaultErr = Parse(keywordsDefinition)
	})
	return defaultAutomaton, defaultErr
}

func Parse(content []byte) (*Automaton, error) {
	def := &Definition{}
	err := yaml.Unmarshal(content, def)
	if err != nil {
		return nil, fmt.Errorf("invalid automaton definition: %w", err)
	}
	return New(def)
}

func LoadFile(path string) (*Automaton, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	automaton, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return automaton, nil
}

// New validates the definition and builds the transition table.
func New(def *Definition) (*Automaton, error) {
	automaton := &Automaton{
		ids:        map[string]StateId{},
		alphabet:   map[rune]struct{}{},
		bottom:     def.Bottom,
		delta:      map[transitionKey]StateId{},
		categories: map[StateId]string{},
	}

	for _, label := range def.States {
		if label == "" {
			return nil, fmt.Errorf("empty state label")
		}
		_, ok := automaton.ids[label]
		if ok {
			return nil, fmt.Errorf("duplicate state (%s)", label)
		}
		automaton.ids[label] = StateId(len(automaton.labels))
		automaton.labels = append(automaton.labels, label)
	}
	automaton.accepting = make([]bool, len(automaton.labels))

	for _, symbol := range def.Alphabet {
		char, size := utf8.DecodeRuneInString(symbol)
		if size == 0 || size != len(symbol) || char == utf8.RuneError {
			return nil, fmt.Errorf(
				"alphabet symbol (%q) is not a single character",
				symbol)
		}
		automaton.alphabet[char] = struct{}{}
	}

	if def.Bottom == "" {
		return nil, fmt.Errorf("missing stack bottom marker")
	}
	hasBottom := false
	for _, symbol := range def.StackAlphabet {
		if symbol == def.Bottom {
			hasBottom = true
		}
	}
	if !hasBottom {
		return nil, fmt.Errorf(
			"stack bottom marker (%s) not in stack alphabet",
			def.Bottom)
	}

	start, ok := automaton.ids[def.Start]
	if !ok {
		return nil, fmt.Errorf("undeclared start state (%s)", def.Start)
	}
	automaton.start = start

	for _, label := range def.Accepting {
		id, ok := automaton.ids[label]
		if !ok {
			return nil, fmt.Errorf("undeclared accepting state (%s)", label)
		}
		automaton.accepting[id] = true
	}

	for idx, trans := range def.Transitions {
		from, ok := automaton.ids[trans.From]
		if !ok {
			return nil, fmt.Errorf(
				"transition %d: undeclared source state (%s)",
				idx,
				trans.From)
		}

		to, ok := automaton.ids[trans.To]
		if !ok {
			return nil, fmt.Errorf(
				"transition %d: undeclared destination state (%s)",
				idx,
				trans.To)
		}

		input, size := utf8.DecodeRuneInString(trans.Input)
		if size == 0 || size != len(trans.Input) {
			return nil, fmt.Errorf(
				"transition %d: input (%q) is not a single character",
				idx,
				trans.Input)
		}

		_, ok = automaton.alphabet[input]
		if !ok {
			return nil, fmt.Errorf(
				"transition %d: input (%q) not in alphabet",
				idx,
				trans.Input)
		}

		if (trans.Pop != "" && trans.Pop != def.Bottom) ||
			(trans.Push != "" && trans.Push != def.Bottom) {
			return nil, fmt.Errorf(
				"transition %d: unsupported stack operation (pop %q, push %q)",
				idx,
				trans.Pop,
				trans.Push)
		}

		key := transitionKey{from: from, input: input}
		_, ok = automaton.delta[key]
		if ok {
			return nil, fmt.Errorf(
				"transition %d: nondeterministic transition from %s on %q",
				idx,
				trans.From,
				trans.Input)
		}
		automaton.delta[key] = to
	}

	labels := make([]string, 0, len(def.Categories))
	for label := range def.Categories {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		id, ok := automaton.ids[label]
		if !ok {
			return nil, fmt.Errorf("category for undeclared state (%s)", label)
		}
		if !automaton.accepting[id] {
			return nil, fmt.Errorf("category for non-accepting state (%s)", label)
		}

		category := def.Categories[label]
		if category == "" {
			return nil, fmt.Errorf("empty category for state (%s)", label)
		}
		automaton.categories[id] = category
	}

	return automaton, nil
}
