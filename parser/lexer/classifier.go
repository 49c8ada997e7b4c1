package lexer

import (
	"strconv"

	"github.com/fantasylang/fantasy/automaton"
	"github.com/fantasylang/fantasy/parser/lr"
)

var (
	punctuation = map[string]lr.SymbolId{
		":=": lr.AssignOpToken,
		";":  lr.SemicolonToken,
		".":  lr.DotToken,
		"(":  lr.LparenToken,
		")":  lr.RparenToken,
		"+":  lr.PlusToken,
		"-":  lr.MinusToken,
	}

	// Keywords outside the automaton's alphabet.
	literalKeywords = map[string]lr.SymbolId{
		"assign": lr.AssignToken,
		"print":  lr.PrintToken,
	}
)

// Classifier maps whitespace delimited words to token categories.  Numbers,
// punctuation and literal keywords are matched directly; every other word is
// adjudicated by the keyword automaton.  Words the automaton rejects are
// identifiers.
type Classifier struct {
	automaton *automaton.Automaton
}

func NewClassifier(keywords *automaton.Automaton) *Classifier {
	return &Classifier{
		automaton: keywords,
	}
}

func (classifier *Classifier) Automaton() *automaton.Automaton {
	return classifier.automaton
}

// Classify returns a token for word.  Position fields other than the line
// are left for the caller to fill in.
func (classifier *Classifier) Classify(word string, line int) *lr.Token {
	token := &lr.Token{
		Lexeme: word,
		Line:   line,
	}

	kind, ok := classifier.shortcut(word)
	if ok {
		token.Kind = kind
		if kind == lr.NumberToken {
			value, err := strconv.ParseInt(word, 10, 64)
			if err != nil { // out of range
				token.Kind = lr.ErrorToken
			} else {
				token.Number = value
			}
		}
		return token
	}

	token.Kind = lr.IdentifierToken

	final := classifier.automaton.Recognize(word)
	if final == automaton.Reject {
		return token
	}

	category, ok := classifier.automaton.Category(final)
	if !ok {
		return token
	}

	kind, ok = lr.SymbolByName(category)
	if ok {
		token.Kind = kind
	}
	return token
}

// Adjudicates reports whether word's category is decided by the automaton.
func (classifier *Classifier) Adjudicates(word string) bool {
	_, ok := classifier.shortcut(word)
	return !ok
}

func (classifier *Classifier) shortcut(word string) (lr.SymbolId, bool) {
	if isDigits(word) {
		return lr.NumberToken, true
	}

	kind, ok := punctuation[word]
	if ok {
		return kind, true
	}

	kind, ok = literalKeywords[word]
	if ok {
		return kind, true
	}

	return 0, false
}

func isDigits(word string) bool {
	if word == "" {
		return false
	}

	for idx := 0; idx < len(word); idx++ {
		if word[idx] < '0' || '9' < word[idx] {
			return false
		}
	}
	return true
}
