package automaton

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testAutomaton(t *testing.T) *Automaton {
	automaton, err := Default()
	require.NoError(t, err)
	return automaton
}

func TestRecognizeKeywords(t *testing.T) {
	automaton := testAutomaton(t)

	keywords := []string{
		"KO", "KEL", "LOS", "FAH", "FOD", "FUS",
		"HIM", "HON", "JUN", "NUST", "AAN", "ANRK",
	}
	for _, keyword := range keywords {
		t.Run(keyword, func(t *testing.T) {
			final := automaton.Recognize(keyword)
			require.NotEqual(t, Reject, final)
			require.True(t, automaton.IsAccepting(final))
			require.Equal(t, keyword, automaton.Label(final))

			category, ok := automaton.Category(final)
			require.True(t, ok)
			require.Equal(t, keyword, category)
		})
	}
}

func TestRecognizeRejects(t *testing.T) {
	automaton := testAutomaton(t)

	cases := []struct {
		name string
		word string
	}{
		{"partial prefix", "KE"},
		{"single live state", "F"},
		{"missing transition", "FUSS"},
		{"out of alphabet", "FU$S"},
		{"lower case", "fus"},
		{"identifier", "x"},
		{"digit", "1"},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, Reject, automaton.Recognize(testCase.word))
		})
	}
}

func TestRecognizeEmptyWord(t *testing.T) {
	automaton := testAutomaton(t)

	expected := Reject
	if automaton.IsAccepting(automaton.Start()) {
		expected = automaton.Start()
	}
	require.Equal(t, expected, automaton.Recognize(""))
	require.Equal(t, Reject, automaton.Recognize(""))
}

func TestAlphabetOnlyWordsTerminateInAcceptingOrReject(t *testing.T) {
	automaton := testAutomaton(t)

	symbols := []rune("KOELHNJUFSIMDRTA#")
	for _, char := range symbols {
		require.True(t, automaton.InAlphabet(char))
	}

	// every word of length <= 3 over the alphabet
	words := []string{""}
	for length := 0; length < 3; length++ {
		next := []string{}
		for _, word := range words {
			for _, char := range symbols {
				next = append(next, word+string(char))
			}
		}
		for _, word := range next {
			final := automaton.Recognize(word)
			if final != Reject {
				require.True(t, automaton.IsAccepting(final), word)
			}
		}
		words = next
	}
}

func TestTrace(t *testing.T) {
	automaton := testAutomaton(t)

	route, final := automaton.Trace("FUS")
	require.Equal(t, automaton.Recognize("FUS"), final)

	labels := []string{}
	for _, state := range route {
		labels = append(labels, automaton.Label(state))
	}
	require.Equal(t, []string{"q0", "F", "FU", "FUS"}, labels)

	route, final = automaton.Trace("FUX")
	require.Equal(t, Reject, final)
	require.Equal(t, Reject, route[len(route)-1])
	require.Equal(t, "X", automaton.Label(route[len(route)-1]))

	// a live but non-accepting end state is rejected
	route, final = automaton.Trace("NUS")
	require.Equal(t, Reject, final)
	require.Len(t, route, 5)
	require.Equal(t, "NUS", automaton.Label(route[3]))
}

func TestDefinitionValidation(t *testing.T) {
	base := func() *Definition {
		return &Definition{
			Start:         "q0",
			Bottom:        "Z",
			Alphabet:      []string{"A", "B"},
			StackAlphabet: []string{"Z"},
			States:        []string{"q0", "A", "AB"},
			Accepting:     []string{"AB"},
			Transitions: []TransitionDefinition{
				{From: "q0", Input: "A", To: "A"},
				{From: "A", Input: "B", To: "AB", Pop: "Z", Push: "Z"},
			},
			Categories: map[string]string{"AB": "KO"},
		}
	}

	automaton, err := New(base())
	require.NoError(t, err)
	require.Equal(t, 3, automaton.NumStates())
	require.NotEqual(t, Reject, automaton.Recognize("AB"))

	cases := []struct {
		name    string
		mutate  func(*Definition)
		message string
	}{
		{
			name:    "duplicate state",
			mutate:  func(def *Definition) { def.States = append(def.States, "A") },
			message: "duplicate state (A)",
		},
		{
			name:    "multi character symbol",
			mutate:  func(def *Definition) { def.Alphabet = append(def.Alphabet, "AB") },
			message: "not a single character",
		},
		{
			name:    "bottom not in stack alphabet",
			mutate:  func(def *Definition) { def.StackAlphabet = []string{"Y"} },
			message: "not in stack alphabet",
		},
		{
			name:    "undeclared start",
			mutate:  func(def *Definition) { def.Start = "q9" },
			message: "undeclared start state (q9)",
		},
		{
			name:    "undeclared accepting",
			mutate:  func(def *Definition) { def.Accepting = []string{"q9"} },
			message: "undeclared accepting state (q9)",
		},
		{
			name: "input outside alphabet",
			mutate: func(def *Definition) {
				def.Transitions[0].Input = "C"
			},
			message: "not in alphabet",
		},
		{
			name: "nondeterministic",
			mutate: func(def *Definition) {
				def.Transitions = append(
					def.Transitions,
					TransitionDefinition{From: "q0", Input: "A", To: "AB"})
			},
			message: "nondeterministic transition",
		},
		{
			name: "stack growth",
			mutate: func(def *Definition) {
				def.Transitions[0].Push = "ZZ"
			},
			message: "unsupported stack operation",
		},
		{
			name: "category on non-accepting state",
			mutate: func(def *Definition) {
				def.Categories["A"] = "KO"
			},
			message: "category for non-accepting state (A)",
		},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			def := base()
			testCase.mutate(def)

			_, err := New(def)
			require.Error(t, err)
			require.Contains(t, err.Error(), testCase.message)
		})
	}
}

func TestParseInvalidYaml(t *testing.T) {
	_, err := Parse([]byte("states: ["))
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid automaton definition")
}
