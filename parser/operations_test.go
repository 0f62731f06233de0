package parser

import (
	"testing"

	"github.com/deepnoodle-ai/parsekit/ast"
	"github.com/stretchr/testify/require"
)

func TestCallSugar(t *testing.T) {
	root := parseClean(t, "a(b, c)")
	require.Len(t, root.Children, 1)
	inv, ok := root.Children[0].(*ast.Invocation)
	require.True(t, ok)

	target, ok := inv.Target.(*ast.Ident)
	require.True(t, ok)
	require.Equal(t, "a", target.Name)
	require.False(t, target.NamePos.IsSynthetic())

	require.Len(t, inv.Args, 2)
	require.Equal(t, "b", inv.Args[0].(*ast.Ident).Name)
	require.Equal(t, "c", inv.Args[1].(*ast.Ident).Name)
	require.Nil(t, inv.Block)
}

func TestIndexSugar(t *testing.T) {
	root := parseClean(t, "a[b]")
	require.Len(t, root.Children, 1)
	args := namedInvocation(t, root.Children[0], "index")
	require.Len(t, args, 2)
	require.Equal(t, "a", args[0].(*ast.Ident).Name)
	require.Equal(t, "b", args[1].(*ast.Ident).Name)
}

func TestChainedCalls(t *testing.T) {
	root := parseClean(t, "a(b)(c)")
	require.Len(t, root.Children, 1)
	outer, ok := root.Children[0].(*ast.Invocation)
	require.True(t, ok)
	require.Len(t, outer.Args, 1)
	require.Equal(t, "c", outer.Args[0].(*ast.Ident).Name)

	inner, ok := outer.Target.(*ast.Invocation)
	require.True(t, ok)
	require.Equal(t, "a", inner.Target.(*ast.Ident).Name)
	require.Len(t, inner.Args, 1)
}

func TestBareBracketsStayPut(t *testing.T) {
	// Without a preceding operand, brackets are just grouping.
	root := parseClean(t, "(a)")
	require.Len(t, root.Children, 1)
	_, ok := root.Children[0].(*ast.Group)
	require.True(t, ok)

	root = parseClean(t, "[a, b]")
	tup, ok := root.Children[0].(*ast.Tuple)
	require.True(t, ok)
	require.Len(t, tup.Children, 2)
}

func TestKeywordBinding(t *testing.T) {
	root := parseClean(t, "return x, y")
	require.Len(t, root.Children, 1)
	inv, ok := root.Children[0].(*ast.Invocation)
	require.True(t, ok)
	require.Equal(t, "return", inv.Target.(*ast.Ident).Name)
	require.False(t, inv.Target.Pos().IsSynthetic())
	require.Len(t, inv.Args, 2)
}

func TestKeywordBindingDeclines(t *testing.T) {
	// A separator right after the identifier means a plain list.
	root := parseClean(t, "a, b")
	require.Len(t, root.Children, 2)
	_, ok := root.Children[0].(*ast.Ident)
	require.True(t, ok)

	// A lone identifier stays an identifier.
	root = parseClean(t, "x")
	_, ok = root.Children[0].(*ast.Ident)
	require.True(t, ok)
}

func TestKeywordBindingStopsBeforeBlock(t *testing.T) {
	// The argument sweep stops at a block so block binding can attach it
	// to the resulting invocation.
	root := parseClean(t, "when x { y }")
	require.Len(t, root.Children, 1)
	inv, ok := root.Children[0].(*ast.Invocation)
	require.True(t, ok)
	require.Equal(t, "when", inv.Target.(*ast.Ident).Name)
	require.Len(t, inv.Args, 1)
	require.Equal(t, "x", inv.Args[0].(*ast.Ident).Name)

	block, ok := inv.Block.(*ast.Block)
	require.True(t, ok)
	require.Len(t, block.Children, 1)
}

func TestBlockBindingOnCall(t *testing.T) {
	root := parseClean(t, "if(x) { y }")
	require.Len(t, root.Children, 1)
	inv, ok := root.Children[0].(*ast.Invocation)
	require.True(t, ok)
	require.Equal(t, "if", inv.Target.(*ast.Ident).Name)
	require.Len(t, inv.Args, 1)
	require.NotNil(t, inv.Block)
}

func TestBlockBindingOnIdent(t *testing.T) {
	root := parseClean(t, "f { y }")
	inv, ok := root.Children[0].(*ast.Invocation)
	require.True(t, ok)
	require.Equal(t, "f", inv.Target.(*ast.Ident).Name)
	require.Empty(t, inv.Args)
	require.NotNil(t, inv.Block)
}

func TestArrowForms(t *testing.T) {
	// An arrow body and a braced block produce the same anonymous
	// function shape: a synthesized arrow target with the group's
	// contents as parameters.
	for _, input := range []string{"(a, b) => a + b", "(a, b) { a + b }"} {
		root := parseClean(t, input)
		require.Len(t, root.Children, 1, "input: %q", input)
		inv, ok := root.Children[0].(*ast.Invocation)
		require.True(t, ok, "input: %q", input)

		target, ok := inv.Target.(*ast.Ident)
		require.True(t, ok)
		require.Equal(t, "=>", target.Name)
		require.True(t, target.NamePos.IsSynthetic())

		require.Len(t, inv.Args, 2)
		require.Equal(t, "a", inv.Args[0].(*ast.Ident).Name)
		require.Equal(t, "b", inv.Args[1].(*ast.Ident).Name)
		require.NotNil(t, inv.Block, "input: %q", input)
	}
}

func TestArrowBodyShapes(t *testing.T) {
	root := parseClean(t, "(x) => x + 1")
	inv := root.Children[0].(*ast.Invocation)
	namedInvocation(t, inv.Block, "add")

	root = parseClean(t, "(x) { x + 1 }")
	inv = root.Children[0].(*ast.Invocation)
	block, ok := inv.Block.(*ast.Block)
	require.True(t, ok)
	require.Len(t, block.Children, 1)
}

func TestCustomArrowToken(t *testing.T) {
	g := MustNew([][]Operation{
		{&Invocation{Type: GroupBracket}},
		{&BlockBinding{Arrow: "->"}},
	})
	root, diags := Parse(newDoc("(a) -> b"), g)
	require.Nil(t, diags)
	inv, ok := root.Children[0].(*ast.Invocation)
	require.True(t, ok)
	require.Equal(t, "->", inv.Target.(*ast.Ident).Name)
	require.Len(t, inv.Args, 1)
	require.Equal(t, "b", inv.Block.(*ast.Ident).Name)
}

func TestLabeling(t *testing.T) {
	root := parseClean(t, "name: 42")
	require.Len(t, root.Children, 1)
	label, ok := root.Children[0].(*ast.Label)
	require.True(t, ok)
	require.Equal(t, "name", label.Name)
	require.Equal(t, int64(42), label.Target.(*ast.Int).Value)
}

func TestLabelRequiresAdjacentColon(t *testing.T) {
	// With a space before the colon there is no label, just a strong
	// separator between two items.
	root := parseClean(t, "name : 42")
	require.Len(t, root.Children, 2)
	_, ok := root.Children[0].(*ast.Ident)
	require.True(t, ok)
	_, ok = root.Children[1].(*ast.Int)
	require.True(t, ok)
}

func TestLabelsInBlock(t *testing.T) {
	root := parseClean(t, "{ x: 1, y: 2 }")
	block, ok := root.Children[0].(*ast.Block)
	require.True(t, ok)
	require.Len(t, block.Children, 2)
	for _, child := range block.Children {
		_, ok := child.(*ast.Label)
		require.True(t, ok)
	}
}

func TestLabelTargetExpression(t *testing.T) {
	root := parseClean(t, "total: 1 + 2")
	label, ok := root.Children[0].(*ast.Label)
	require.True(t, ok)
	namedInvocation(t, label.Target, "add")
}
