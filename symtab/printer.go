package symtab

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

const (
	indent = "  "
)

func TableString(table *Table) string {
	buffer := &bytes.Buffer{}
	_ = PrintTable(buffer, table)
	return buffer.String()
}

// PrintTable writes the scope tree, one scope header per line followed by its
// symbols in declaration order.
func PrintTable(output io.Writer, table *Table) error {
	var err error
	write := func(format string, args ...interface{}) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(output, format, args...)
	}

	table.Walk(func(scope *Scope, depth int) bool {
		prefix := strings.Repeat(indent, depth)
		current := ""
		if scope.Id == table.current {
			current = " (current)"
		}

		write("%s[Scope: %s%s]\n", prefix, scope.Name, current)
		for _, symbol := range scope.order {
			write("%s%s%s\n", prefix, indent, symbol)
		}
		return err == nil
	})

	return err
}
