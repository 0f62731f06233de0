package parser

import (
	"testing"

	"github.com/deepnoodle-ai/parsekit/ast"
	"github.com/deepnoodle-ai/parsekit/token"
)

// FuzzParse checks that arbitrary input never panics the parser and that
// the finished tree never contains placeholder tokens: every operator,
// separator, and pending label is either resolved or reported.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"1 + 2 / 3",
		"-1 + 2",
		"f(a, b) { a + b }",
		"(a, b) => a + b",
		"return x, y",
		"name: $\"v ${1+1} w\"",
		"\\\\raw line\n\\\\continued",
		"a[b][c]",
		"{ x: 1, y: { z: 2 } }",
		"0x1f, 0b101, 1.5e-2",
		"'it\\'s'",
		"@@@",
		"{ a",
		"((((((((((1))))))))))",
		", , ,",
		"+ - * /",
		"a:",
		"$\"${${}}\"",
		"// comment only",
		"/* unterminated",
		" ",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}
	g := Default()
	f.Fuzz(func(t *testing.T, input string) {
		doc := token.NewDocument("fuzz.x", input)
		root, diags := Parse(doc, g, WithMaxDepth(100))
		if root == nil {
			t.Fatal("nil root")
		}
		for _, d := range diags {
			if d.Message == "" {
				t.Error("diagnostic with empty message")
			}
		}
		ast.Inspect(root, func(n ast.Node) bool {
			if n == nil {
				return true
			}
			switch n.(type) {
			case *ast.Operator, *ast.Separator, *ast.LabelOp:
				t.Errorf("placeholder %T in final tree for %q", n, input)
			}
			// String must not panic on any node.
			_ = n.String()
			return true
		})
	})
}
