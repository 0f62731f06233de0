package parser

import (
	"testing"

	"github.com/deepnoodle-ai/parsekit/ast"
	"github.com/stretchr/testify/require"
)

func TestNumberLiterals(t *testing.T) {
	intTests := []struct {
		input string
		want  int64
	}{
		{"0", 0},
		{"42", 42},
		{"0x1f", 31},
		{"0X1F", 31},
		{"0b101", 5},
		{"9223372036854775807", 9223372036854775807},
	}
	for _, tt := range intTests {
		root := parseClean(t, tt.input)
		require.Len(t, root.Children, 1, "input: %q", tt.input)
		i, ok := root.Children[0].(*ast.Int)
		require.True(t, ok, "input: %q parsed as %T", tt.input, root.Children[0])
		require.Equal(t, tt.want, i.Value, "input: %q", tt.input)
	}

	floatTests := []struct {
		input string
		want  float64
	}{
		{"2.5", 2.5},
		{"0.125", 0.125},
		{"1e3", 1000},
		{"1E3", 1000},
		{"1.5e-2", 0.015},
		{"2e+1", 20},
	}
	for _, tt := range floatTests {
		root := parseClean(t, tt.input)
		require.Len(t, root.Children, 1, "input: %q", tt.input)
		f, ok := root.Children[0].(*ast.Float)
		require.True(t, ok, "input: %q parsed as %T", tt.input, root.Children[0])
		require.Equal(t, tt.want, f.Value, "input: %q", tt.input)
	}
}

func TestNumberPositions(t *testing.T) {
	root := parseClean(t, "  1.5e-2")
	pos := root.Children[0].Pos()
	require.Equal(t, 2, pos.Offset)
	require.Equal(t, 6, pos.Length)
}

func TestStringEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"a\nb"`, "a\nb"},
		{`"a\tb"`, "a\tb"},
		{`"a\rb"`, "a\rb"},
		{`"a\\b"`, `a\b`},
		{`"say \"hi\""`, `say "hi"`},
		{`'single'`, "single"},
		{`'it\'s'`, "it's"},
		{`"unknown \q escape"`, `unknown \q escape`},
	}
	for _, tt := range tests {
		root := parseClean(t, tt.input)
		require.Len(t, root.Children, 1, "input: %q", tt.input)
		str, ok := root.Children[0].(*ast.String)
		require.True(t, ok, "input: %q", tt.input)
		require.Equal(t, tt.want, str.Value, "input: %q", tt.input)
		require.False(t, str.FullLine)
	}
}

func TestRawLineString(t *testing.T) {
	root := parseClean(t, `\\hello world`)
	require.Len(t, root.Children, 1)
	str, ok := root.Children[0].(*ast.String)
	require.True(t, ok)
	require.Equal(t, "hello world", str.Value)
	require.True(t, str.FullLine)
}

func TestRawLineContinuation(t *testing.T) {
	root := parseClean(t, "\\\\first\n\\\\second\n\\\\third")
	require.Len(t, root.Children, 1)
	str, ok := root.Children[0].(*ast.String)
	require.True(t, ok)
	require.Equal(t, "first\nsecond\nthird", str.Value)
	require.True(t, str.FullLine)
}

func TestRawLinesInterrupted(t *testing.T) {
	// Another token between raw lines breaks the merge.
	root := parseClean(t, "\\\\first\n1\n\\\\second")
	require.Len(t, root.Children, 3)
	first, ok := root.Children[0].(*ast.String)
	require.True(t, ok)
	require.Equal(t, "first", first.Value)
	second, ok := root.Children[2].(*ast.String)
	require.True(t, ok)
	require.Equal(t, "second", second.Value)
}

func TestInterpolation(t *testing.T) {
	root := parseClean(t, `$"x ${1+1} y"`)
	require.Len(t, root.Children, 1)
	f, ok := root.Children[0].(*ast.Format)
	require.True(t, ok)
	require.Equal(t, []string{"x ", " y"}, f.Strings)
	require.Len(t, f.Values, 1)
	require.Len(t, f.Values[0], 1)
	args := namedInvocation(t, f.Values[0][0], "add")
	require.Len(t, args, 2)
}

func TestInterpolationMultipleSlots(t *testing.T) {
	root := parseClean(t, `$"a ${1} b ${2} c"`)
	f, ok := root.Children[0].(*ast.Format)
	require.True(t, ok)
	require.Equal(t, []string{"a ", " b ", " c"}, f.Strings)
	require.Len(t, f.Values, 2)
	require.Equal(t, int64(1), f.Values[0][0].(*ast.Int).Value)
	require.Equal(t, int64(2), f.Values[1][0].(*ast.Int).Value)
}

func TestInterpolationNested(t *testing.T) {
	root := parseClean(t, `$"a ${ $"b ${2} c" } d"`)
	outer, ok := root.Children[0].(*ast.Format)
	require.True(t, ok)
	require.Len(t, outer.Values, 1)
	inner, ok := outer.Values[0][0].(*ast.Format)
	require.True(t, ok)
	require.Equal(t, []string{"b ", " c"}, inner.Strings)
}

func TestInterpolationWithoutSlots(t *testing.T) {
	// An interpolated string with no slots degrades to a plain string.
	root := parseClean(t, `$"plain"`)
	str, ok := root.Children[0].(*ast.String)
	require.True(t, ok)
	require.Equal(t, "plain", str.Value)
}

func TestPlainStringIgnoresSlots(t *testing.T) {
	root := parseClean(t, `"x ${1} y"`)
	str, ok := root.Children[0].(*ast.String)
	require.True(t, ok)
	require.Equal(t, "x ${1} y", str.Value)
}

func TestDefinedLiterals(t *testing.T) {
	root := parseClean(t, "true")
	b, ok := root.Children[0].(*ast.Bool)
	require.True(t, ok)
	require.True(t, b.Value)

	root = parseClean(t, "false")
	b, ok = root.Children[0].(*ast.Bool)
	require.True(t, ok)
	require.False(t, b.Value)

	root = parseClean(t, "nil")
	_, ok = root.Children[0].(*ast.Nil)
	require.True(t, ok)
}

func TestDefinedTokenWordBoundary(t *testing.T) {
	// A word-shaped defined token must not match inside a longer word.
	root := parseClean(t, "trueish")
	id, ok := root.Children[0].(*ast.Ident)
	require.True(t, ok)
	require.Equal(t, "trueish", id.Name)
}

func TestIdentifiers(t *testing.T) {
	root := parseClean(t, "_under, score9")
	require.Len(t, root.Children, 2)
	require.Equal(t, "_under", root.Children[0].(*ast.Ident).Name)
	require.Equal(t, "score9", root.Children[1].(*ast.Ident).Name)
}

func TestUnicodeIdentifiers(t *testing.T) {
	root := parseClean(t, "héllo")
	require.Equal(t, "héllo", root.Children[0].(*ast.Ident).Name)
}
