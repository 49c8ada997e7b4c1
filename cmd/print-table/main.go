package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fantasylang/fantasy/grammar"
)

func main() {
	grammarPath := flag.String(
		"grammar",
		"",
		"grammar definition (defaults to the embedded one)")
	flag.Parse()

	gram, err := grammar.Default()
	if *grammarPath != "" {
		gram, err = grammar.LoadFile(*grammarPath)
	}
	if err != nil {
		fmt.Println("Grammar error:", err)
		os.Exit(1)
	}

	fmt.Println("Rules:")
	for idx, rule := range gram.Rules {
		fmt.Printf("  %d: %s\n", idx, rule)
	}
	fmt.Println()

	table, err := grammar.Build(gram)
	if err != nil {
		fmt.Println("Build error:", err)
		os.Exit(1)
	}

	err = grammar.PrintTable(os.Stdout, table)
	if err != nil {
		fmt.Println("Print error:", err)
		os.Exit(1)
	}
}
