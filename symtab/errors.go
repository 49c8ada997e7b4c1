package symtab

import (
	"errors"
	"fmt"
)

var ErrExitGlobalScope = errors.New("cannot exit the global scope")

type RedeclaredError struct {
	Name  string
	Scope string
	Line  int
}

func (err *RedeclaredError) Error() string {
	return fmt.Sprintf(
		"line %d: '%s' already declared in scope '%s'",
		err.Line,
		err.Name,
		err.Scope)
}

type UndeclaredError struct {
	Name string
	Line int
}

func (err *UndeclaredError) Error() string {
	return fmt.Sprintf("line %d: '%s' was not declared", err.Line, err.Name)
}

type UnusedWarning struct {
	Name string
	Line int
}

func (err *UnusedWarning) Error() string {
	return fmt.Sprintf(
		"line %d: variable '%s' declared but never used",
		err.Line,
		err.Name)
}
