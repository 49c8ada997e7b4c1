package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fantasylang/fantasy/analyzer"
	"github.com/fantasylang/fantasy/ast"
	"github.com/fantasylang/fantasy/parser"
	"github.com/fantasylang/fantasy/symtab"
)

func main() {
	automatonPath := flag.String(
		"automaton",
		"",
		"keyword automaton definition (defaults to the embedded one)")
	grammarPath := flag.String(
		"grammar",
		"",
		"grammar definition (defaults to the embedded one)")
	separator := flag.String("separator", "#", "logical line separator")
	trace := flag.Bool("trace", false, "print the shift-reduce steps")
	flag.Parse()

	language, err := parser.LoadLanguage(*automatonPath, *grammarPath)
	if err != nil {
		fmt.Println("Language error:", err)
		os.Exit(1)
	}

	sep := []rune(*separator)
	if len(sep) != 1 {
		fmt.Println("Separator must be a single character:", *separator)
		os.Exit(1)
	}

	sources := []analyzer.Source{}
	for _, fileName := range flag.Args() {
		content, err := os.ReadFile(fileName)
		if err != nil {
			fmt.Println("ReadFile error:", err)
			continue
		}

		sources = append(sources, analyzer.Source{
			Name:    fileName,
			Content: content,
		})
	}

	entries := analyzer.Analyze(sources, language, sep[0])

	for _, entry := range entries {
		fmt.Println("=====================")
		fmt.Println("File name:", entry.Name)
		fmt.Println("---------------------")

		if *trace && entry.Result != nil {
			// Replay the run sequentially so that trace lines do not interleave.
			parser.ParseTokens(
				entry.Result.Tokens,
				language,
				parser.Options{Trace: os.Stdout})
			fmt.Println("---------------------")
		}

		if entry.Result != nil {
			if entry.Result.Program != nil {
				fmt.Println(ast.TreeString(entry.Result.Program, "  "))
			}

			fmt.Println("---------------------")
			fmt.Println("Symbol table:")
			fmt.Println("---------------------")
			err := symtab.PrintTable(os.Stdout, entry.Result.Symbols)
			if err != nil {
				fmt.Println("PrintTable error:", err)
			}
		}

		errs := entry.Report.Errors()
		if len(errs) > 0 {
			fmt.Println("---------------------------")
			fmt.Println("Found", len(errs), "errors:")
			fmt.Println("---------------------------")
			for idx, err := range errs {
				fmt.Printf("error %d: %s\n", idx, err)
			}
		}

		warnings := entry.Report.Warnings()
		if len(warnings) > 0 {
			fmt.Println("---------------------------")
			fmt.Println("Found", len(warnings), "warnings:")
			fmt.Println("---------------------------")
			for idx, warning := range warnings {
				fmt.Printf("warning %d: %s\n", idx, warning)
			}
		}

		fmt.Println("---------------------")
		switch {
		case entry.Result == nil || !entry.Result.Accepted:
			fmt.Println("Rejected")
		case entry.Result.Success:
			fmt.Println("Accepted")
		default:
			fmt.Println("Accepted with errors")
		}
	}
}
