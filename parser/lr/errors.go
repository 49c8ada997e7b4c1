package lr

import (
	"fmt"
)

// ActionError is recorded when a semantic action fails.  The reduction still
// happens, with no synthesized value.
type ActionError struct {
	Production *Production
	Line       int
	Err        error
}

func (err *ActionError) Error() string {
	return fmt.Sprintf(
		"line %d: semantic action for %s failed: %s",
		err.Line,
		err.Production,
		err.Err)
}

func (err *ActionError) Unwrap() error {
	return err.Err
}

// TableError signals a malformed parse table, e.g. a reduction whose goto
// entry is missing.  It is fatal and distinct from syntax errors.
type TableError struct {
	State  StateId
	Symbol string
	Reason string
}

func (err *TableError) Error() string {
	return fmt.Sprintf(
		"malformed parse table: state %d, symbol %s: %s",
		err.State,
		err.Symbol,
		err.Reason)
}

// SyntaxError is recorded when no action applies to the lookahead.  Line and
// Column are logical positions, i.e. lines are delimited by the separator.
type SyntaxError struct {
	Token    *Token
	Expected []string
}

func (err *SyntaxError) Line() int {
	return err.Token.Line
}

func (err *SyntaxError) Column() int {
	return err.Token.Column
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf(
		"syntax error at line %d: unexpected %s. expecting %v",
		err.Token.Line,
		describe(err.Token),
		err.Expected)
}
