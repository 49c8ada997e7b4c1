package parser

import (
	"fmt"
	"io"
	"sync"

	"github.com/pattyshack/gt/parseutil"

	"github.com/fantasylang/fantasy/automaton"
	"github.com/fantasylang/fantasy/grammar"
	"github.com/fantasylang/fantasy/parser/lexer"
	"github.com/fantasylang/fantasy/parser/lr"
	"github.com/fantasylang/fantasy/parser/reducer"
	"github.com/fantasylang/fantasy/symtab"
)

var (
	defaultOnce     sync.Once
	defaultLanguage *Language
	defaultErr      error
)

// Language bundles the read-only tables shared by every parse.
type Language struct {
	Automaton  *automaton.Automaton
	Classifier *lexer.Classifier
	Grammar    *grammar.Grammar
	Table      *lr.Table
	Engine     *lr.Engine
}

// NewLanguage checks that every automaton category names a token kind, then
// builds the parse table and the engine.
func NewLanguage(
	keywords *automaton.Automaton,
	gram *grammar.Grammar,
) (
	*Language,
	error,
) {
	for _, category := range keywords.Categories() {
		id, ok := lr.SymbolByName(category)
		if !ok || id == lr.EndMarkerToken || id == lr.ErrorToken {
			return nil, fmt.Errorf(
				"automaton category (%s) is not a token kind",
				category)
		}
	}

	table, err := grammar.Build(gram)
	if err != nil {
		return nil, err
	}

	engine, err := lr.NewEngine(table)
	if err != nil {
		return nil, err
	}

	return &Language{
		Automaton:  keywords,
		Classifier: lexer.NewClassifier(keywords),
		Grammar:    gram,
		Table:      table,
		Engine:     engine,
	}, nil
}

// DefaultLanguage is built from the embedded automaton and grammar
// definitions.  The result is shared.
func DefaultLanguage() (*Language, error) {
	defaultOnce.Do(func() {
		keywords, err := automaton.Default()
		if err != nil {
			defaultErr = err
			return
		}

		gram, err := grammar.Default()
		if err != nil {
			defaultErr = err
			return
		}

		defaultLanguage, defaultErr = NewLanguage(keywords, gram)
	})
	return defaultLanguage, defaultErr
}

// LoadLanguage reads the definitions from files.  An empty path selects the
// embedded definition.
func LoadLanguage(automatonPath string, grammarPath string) (*Language, error) {
	var keywords *automaton.Automaton
	var err error
	if automatonPath == "" {
		keywords, err = automaton.Default()
	} else {
		keywords, err = automaton.LoadFile(automatonPath)
	}
	if err != nil {
		return nil, err
	}

	var gram *grammar.Grammar
	if grammarPath == "" {
		gram, err = grammar.Default()
	} else {
		gram, err = grammar.LoadFile(grammarPath)
	}
	if err != nil {
		return nil, err
	}

	return NewLanguage(keywords, gram)
}

type Options struct {
	// Logical line separator.  Defaults to lexer.DefaultSeparator.
	Separator rune

	// Receives the engine's step trace when non-nil.
	Trace io.Writer
}

type Result struct {
	*lr.Result

	Tokens  []*lr.Token
	Symbols *symtab.Table
}

// Parse recognizes a single input with a fresh symbol table.
func Parse(
	reader parseutil.BufferedByteLocationReader,
	language *Language,
	options Options,
) (
	*Result,
	error,
) {
	separator := options.Separator
	if separator == 0 {
		separator = lexer.DefaultSeparator
	}

	tokens, err := lexer.Tokenize(reader, language.Classifier, separator)
	if err != nil {
		return nil, err
	}

	return ParseTokens(tokens, language, options), nil
}

// ParseTokens runs the engine over an already tokenized input.
func ParseTokens(
	tokens []*lr.Token,
	language *Language,
	options Options,
) *Result {
	symbols := symtab.NewTable()
	result := language.Engine.Parse(
		tokens,
		reducer.New(symbols),
		symbols,
		options.Trace)

	return &Result{
		Result:  result,
		Tokens:  tokens,
		Symbols: symbols,
	}
}

// ParseString is a convenience wrapper around Parse.
func ParseString(
	name string,
	source string,
	language *Language,
	options Options,
) (
	*Result,
	error,
) {
	return Parse(
		parseutil.NewBufferedByteLocationReaderFromSlice(name, []byte(source)),
		language,
		options)
}
