package grammar

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fantasylang/fantasy/parser/lr"
)

func TableString(table *lr.Table) string {
	buffer := &bytes.Buffer{}
	_ = PrintTable(buffer, table)
	return buffer.String()
}

// PrintTable writes a debug listing of the parse table: per state kernel and
// closure items, the reduction, and the transitions, followed by the FOLLOW
// sets.
func PrintTable(output io.Writer, table *lr.Table) error {
	var err error
	write := func(format string, args ...interface{}) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(output, format, args...)
	}

	writeItems := func(header string, items []lr.Item) {
		write("    %s:\n", header)
		if len(items) == 0 {
			write("      (nil)\n")
		}
		for _, item := range items {
			write("      %s\n", item)
		}
	}

	productions, extractErr := lr.ExtractProductions(table)

	write("Parser Debug States:\n")
	for _, state := range table.States {
		kernel := []lr.Item{}
		closure := []lr.Item{}
		for _, item := range state.Items {
			if item.Dot > 0 || item.Lhs == table.AugmentedStart {
				kernel = append(kernel, item)
			} else {
				closure = append(closure, item)
			}
		}

		write("  State %d:\n", state.Id)
		if state.Id == table.Accept {
			write("    (accept on %s)\n", lr.EndMarker)
		}
		writeItems("Kernel Items", kernel)
		writeItems("Closure Items", closure)

		write("    Reduce:\n")
		production, ok := productions[state.Id]
		if ok {
			write(
				"      %s -> [%s]\n",
				strings.Join(table.Follow[production.Lhs], " "),
				production)
		} else {
			write("      (nil)\n")
		}

		write("    Goto:\n")
		count := 0
		for _, symbol := range append(
			append([]string{lr.Epsilon}, table.Terminals...),
			table.Nonterminals...) {

			next, ok := table.Next(state.Id, symbol)
			if ok {
				write("      %s -> State %d\n", symbol, next)
				count++
			}
		}
		if count == 0 {
			write("      (nil)\n")
		}
		write("\n")
	}

	write("Follow Sets:\n")
	for _, nonterminal := range table.Nonterminals {
		write("  %s: %s\n", nonterminal, strings.Join(table.Follow[nonterminal], " "))
	}

	if err == nil && extractErr != nil {
		return extractErr
	}
	return err
}
