package analyzer

import (
	"github.com/pattyshack/gt/parseutil"

	"github.com/fantasylang/fantasy/analyzer/util"
	"github.com/fantasylang/fantasy/ast"
)

// Structural gaps left behind by failed semantic actions, e.g. a module whose
// header was never synthesized.
type astSyntaxValidator struct {
	*parseutil.Emitter
}

func ValidateAstSyntax(emitter *parseutil.Emitter) util.Pass[ast.Node] {
	return &astSyntaxValidator{
		Emitter: emitter,
	}
}

func (validator *astSyntaxValidator) Process(node ast.Node) {
	node.Walk(validator)
}

func (validator *astSyntaxValidator) Enter(n ast.Node) {
	switch node := n.(type) {
	case ast.Validator:
		node.Validate(validator.Emitter)
	}
}

func (validator *astSyntaxValidator) Exit(node ast.Node) {
}
