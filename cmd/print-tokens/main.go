package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pattyshack/gt/parseutil"

	"github.com/fantasylang/fantasy/automaton"
	"github.com/fantasylang/fantasy/parser/lexer"
)

func main() {
	automatonPath := flag.String(
		"automaton",
		"",
		"keyword automaton definition (defaults to the embedded one)")
	separator := flag.String("separator", "#", "logical line separator")
	routes := flag.Bool("routes", true, "print the automaton route of each word")
	flag.Parse()

	keywords, err := automaton.Default()
	if *automatonPath != "" {
		keywords, err = automaton.LoadFile(*automatonPath)
	}
	if err != nil {
		fmt.Println("Automaton error:", err)
		os.Exit(1)
	}

	sep := []rune(*separator)
	if len(sep) != 1 {
		fmt.Println("Separator must be a single character:", *separator)
		os.Exit(1)
	}

	classifier := lexer.NewClassifier(keywords)

	for _, fileName := range flag.Args() {
		fmt.Println("=====================")
		fmt.Println("File name:", fileName)
		fmt.Println("---------------------")
		content, err := os.ReadFile(fileName)
		if err != nil {
			fmt.Println("ReadFile error:", err)
			continue
		}

		tokens, err := lexer.Tokenize(
			parseutil.NewBufferedByteLocationReaderFromSlice(
				fileName,
				content),
			classifier,
			sep[0])
		for _, token := range tokens {
			fmt.Println(token)
		}
		if err != nil {
			fmt.Println("Lex error:", err)
			continue
		}

		if !*routes {
			continue
		}

		fmt.Println("---------------------")
		fmt.Println("Automaton routes:")
		fmt.Println("---------------------")
		for _, token := range tokens {
			if token.Lexeme == "" || !classifier.Adjudicates(token.Lexeme) {
				continue
			}

			route, final := keywords.Trace(token.Lexeme)
			labels := make([]string, 0, len(route))
			for _, state := range route {
				labels = append(labels, keywords.Label(state))
			}

			verdict := "reject"
			category, ok := keywords.Category(final)
			if ok {
				verdict = "accept " + category
			}

			fmt.Printf(
				"line %d %s: %s (%s)\n",
				token.Line,
				token.Lexeme,
				strings.Join(labels, " -> "),
				verdict)
		}
	}
}
