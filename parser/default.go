package parser

import (
	"github.com/deepnoodle-ai/parsekit/ast"
	"github.com/deepnoodle-ai/parsekit/token"
)

// Default returns a ready-made grammar for a small C-style expression
// language: call and index sugar, unary minus and not, arithmetic,
// comparisons, boolean connectives, assignment, block and arrow binding,
// keyword-style calls, and labels. Earlier stages bind tighter.
func Default() *Grammar {
	stages := [][]Operation{
		{
			&Invocation{Type: GroupBracket},
			&Invocation{Type: TupleBracket, TargetName: "index"},
		},
		{
			&Operator{Token: "-", Binding: Prefix, Name: "neg"},
			&Operator{Token: "!", Binding: Prefix, Name: "not"},
		},
		{
			&Operator{Token: "*", Binding: Infix, Name: "mul"},
			&Operator{Token: "/", Binding: Infix, Name: "div"},
			&Operator{Token: "%", Binding: Infix, Name: "mod"},
		},
		{
			&Operator{Token: "+", Binding: Infix, Name: "add"},
			&Operator{Token: "-", Binding: Infix, Name: "sub"},
		},
		{
			&Operator{Token: "==", Binding: Infix, Name: "eq"},
			&Operator{Token: "!=", Binding: Infix, Name: "neq"},
			&Operator{Token: "<=", Binding: Infix, Name: "lte"},
			&Operator{Token: ">=", Binding: Infix, Name: "gte"},
			&Operator{Token: "<", Binding: Infix, Name: "lt"},
			&Operator{Token: ">", Binding: Infix, Name: "gt"},
		},
		{
			&Operator{Token: "&&", Binding: Infix, Name: "and"},
			&Operator{Token: "||", Binding: Infix, Name: "or"},
		},
		{
			&Operator{Token: "=", Binding: Infix, Name: "assign"},
		},
		{&KeywordBinding{}},
		{&BlockBinding{}},
		{&Labeling{}},
	}
	return MustNew(stages,
		Definition{Token: "true", Factory: func(pos token.Position) ast.Node {
			return &ast.Bool{BoolPos: pos, Value: true}
		}},
		Definition{Token: "false", Factory: func(pos token.Position) ast.Node {
			return &ast.Bool{BoolPos: pos, Value: false}
		}},
		Definition{Token: "nil", Factory: func(pos token.Position) ast.Node {
			return &ast.Nil{NilPos: pos}
		}},
	)
}
