package lr

import (
	"fmt"

	"github.com/pattyshack/gt/parseutil"

	"github.com/fantasylang/fantasy/ast"
)

// Token is immutable once produced by the tokenizer.  Shifted tokens become
// the attributes of their stack slots.
type Token struct {
	parseutil.StartEndPos

	Kind   SymbolId
	Lexeme string

	Line   int // 1-based logical line
	Column int // 1-based column within the logical line

	Number int64 // parsed value of a num token
}

var _ ast.Node = &Token{}

func (token *Token) Id() SymbolId {
	return token.Kind
}

// Value returns the token's semantic value: the parsed integer for numbers,
// the raw text otherwise.
func (token *Token) Value() interface{} {
	if token.Kind == NumberToken {
		return token.Number
	}
	return token.Lexeme
}

func (token *Token) Walk(visitor ast.Visitor) {
	visitor.Enter(token)
	visitor.Exit(token)
}

func (token *Token) String() string {
	switch token.Kind {
	case IdentifierToken, ErrorToken:
		return fmt.Sprintf("%s(%s) %d:%d", token.Kind, token.Lexeme, token.Line, token.Column)
	case NumberToken:
		return fmt.Sprintf("%s(%d) %d:%d", token.Kind, token.Number, token.Line, token.Column)
	default:
		return fmt.Sprintf("%s %d:%d", token.Kind, token.Line, token.Column)
	}
}
