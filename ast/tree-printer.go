package ast

import (
	"bytes"
	"fmt"
	"io"
)

const (
	indent = "  "
)

func TreeString(node Node, indent string) string {
	buffer := &bytes.Buffer{}
	_ = PrintTree(buffer, node, indent)
	return buffer.String()
}

func PrintTree(output io.Writer, node Node, indent string) error {
	printer := &treePrinter{
		indent:     indent,
		labelStack: []string{},
		writer:     output,
	}
	node.Walk(printer)
	return printer.err
}

type treePrinter struct {
	indent     string
	labelStack []string
	writer     io.Writer
	err        error
}

func (printer *treePrinter) write(format string, args ...interface{}) {
	if printer.err != nil {
		return
	}

	if len(args) == 0 {
		_, printer.err = printer.writer.Write([]byte(format))
	} else {
		_, printer.err = fmt.Fprintf(printer.writer, format, args...)
	}
}

func (printer *treePrinter) writeLabel() {
	label := ""
	if len(printer.labelStack) > 0 {
		label = printer.labelStack[len(printer.labelStack)-1]
		printer.labelStack = printer.labelStack[:len(printer.labelStack)-1]
	}

	if len(label) > 0 {
		printer.write("\n")
		printer.write(printer.indent)
		printer.write(label)
	} else {
		printer.write(printer.indent)
	}
}

func (printer *treePrinter) endNode() {
	printer.indent = printer.indent[:len(printer.indent)-len(indent)]
	printer.write("\n")
	printer.write(printer.indent)
	printer.write("]")
}

func (printer *treePrinter) push(labels ...string) {
	printer.indent += indent

	for len(labels) > 0 {
		last := labels[len(labels)-1]
		labels = labels[:len(labels)-1]

		printer.labelStack = append(printer.labelStack, last)
	}
}

// pushPresent pushes only the labels of children that will be walked.
func (printer *treePrinter) pushPresent(labels []string, present ...bool) {
	selected := []string{}
	for idx, label := range labels {
		if present[idx] {
			selected = append(selected, label)
		}
	}
	printer.push(selected...)
}

func (printer *treePrinter) list(
	header string,
	elementType string,
	size int,
	argLabels ...string,
) {
	printer.write(header)
	if size == 0 && len(argLabels) == 0 {
		printer.write("]")
	} else {
		for i := size - 1; i >= 0; i-- {
			printer.labelStack = append(
				printer.labelStack,
				fmt.Sprintf("%s%d=", elementType, i))
		}

		// push in reverse order
		printer.push(argLabels...)
	}
}

func (printer *treePrinter) endList(size int) {
	if size > 0 {
		printer.endNode()
	}
}

func (printer *treePrinter) Enter(n Node) {
	printer.writeLabel()

	switch node := n.(type) {
	case *Number:
		printer.write("[Number: Value=%d]", node.Value)
	case *Text:
		printer.write("[Text: %s]", node.Text)
	case *Placeholder:
		printer.write("[Placeholder: Name=%s]", node.Name)
	case *Reference:
		printer.write("[Reference: Name=%s]", node.Name)
	case *Operation:
		printer.write("[Operation: Operator=%s", node.Operator)
		printer.pushPresent([]string{"Right="}, node.Right != nil)
	case *Target:
		printer.write("[Target: Name=%s Qualified=%v]", node.Name, node.Qualified)

	case *Declaration:
		printer.write("[Declaration: Name=%s Loc=%s", node.Name, node.Loc())
		printer.pushPresent([]string{"Value="}, node.Value != nil)
	case *Assignment:
		printer.write("[Assignment: Loc=%s", node.Loc())
		printer.pushPresent(
			[]string{"Target=", "Value="},
			node.Target != nil,
			node.Value != nil)
	case *ModuleHeader:
		printer.write("[ModuleHeader: Name=%s]", node.Name)
	case *Module:
		printer.write("[Module: Name=%s Loc=%s", node.Name(), node.Loc())
		printer.pushPresent([]string{"Body="}, node.Body != nil)
	case *IO:
		printer.write("[IO: Kind=%s Name=%s]", node.Kind, node.Name)
	case *Return:
		printer.write("[Return:")
		printer.pushPresent([]string{"Value="}, node.Value != nil)
	case *Conditional:
		printer.write("[Conditional:")
		printer.pushPresent(
			[]string{"Condition=", "Body="},
			node.Condition != nil,
			node.Body != nil)
	case *Loop:
		printer.write("[Loop:")
		printer.pushPresent(
			[]string{"Condition=", "Body="},
			node.Condition != nil,
			node.Body != nil)
	case *Block:
		printer.list("[Block:", "Statement", len(node.Statements))
	case *StatementList:
		printer.list("[StatementList:", "Statement", len(node.Statements))
	case *Program:
		printer.list("[Program:", "Statement", len(node.Statements))

	default:
		printer.write("unhandled node: %v", n)
	}
}

func (printer *treePrinter) Exit(n Node) {
	switch node := n.(type) {
	case *Operation:
		printer.endNode()

	case *Declaration:
		printer.endNode()
	case *Assignment:
		printer.endNode()
	case *Module:
		printer.endNode()
	case *Return:
		printer.endNode()
	case *Conditional:
		printer.endNode()
	case *Loop:
		printer.endNode()
	case *Block:
		printer.endList(len(node.Statements))
	case *StatementList:
		printer.endList(len(node.Statements))
	case *Program:
		printer.endList(len(node.Statements))
	}
}
