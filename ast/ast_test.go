package ast

import (
	"testing"

	"github.com/deepnoodle-ai/parsekit/token"
	"github.com/stretchr/testify/assert"
)

func TestIsOperand(t *testing.T) {
	pos := token.Synthetic("test")
	tests := []struct {
		node Node
		want bool
	}{
		{&Ident{NamePos: pos, Name: "x"}, true},
		{&Int{NumPos: pos, Value: 1}, true},
		{&Block{BracePos: pos}, true},
		{&Group{ParenPos: pos}, true},
		{&Invocation{CallPos: pos}, true},
		{&Operator{OpPos: pos, Token: "+"}, false},
		{&Separator{SepPos: pos, Strong: true}, false},
		{&LabelOp{NamePos: pos, Name: "k"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsOperand(tt.node))
	}
}

func TestNodeStrings(t *testing.T) {
	pos := token.Synthetic("test")
	inv := &Invocation{
		CallPos: pos,
		Target:  &Ident{NamePos: pos, Name: "add"},
		Args: []Node{
			&Int{NumPos: pos, Value: 1},
			&Float{NumPos: pos, Value: 2.5},
		},
	}
	assert.Equal(t, "add(1, 2.5)", inv.String())

	label := &Label{NamePos: pos, Name: "key", Target: &Bool{BoolPos: pos, Value: true}}
	assert.Equal(t, "key: true", label.String())

	tuple := &Tuple{BracketPos: pos, Children: []Node{
		&Int{NumPos: pos, Value: 1},
		&Nil{NilPos: pos},
	}}
	assert.Equal(t, "[1, nil]", tuple.String())

	str := &String{QuotePos: pos, Value: "a\nb"}
	assert.Equal(t, `"a\nb"`, str.String())

	format := &Format{
		QuotePos: pos,
		Strings:  []string{"x ", " y"},
		Values:   [][]Node{{&Int{NumPos: pos, Value: 1}}},
	}
	assert.Equal(t, `$"x ${1} y"`, format.String())
}

func TestWalk(t *testing.T) {
	pos := token.Synthetic("test")
	root := &Root{
		DocPos: pos,
		Children: []Node{
			&Invocation{
				CallPos: pos,
				Target:  &Ident{NamePos: pos, Name: "f"},
				Args:    []Node{&Int{NumPos: pos, Value: 1}},
				Block: &Block{BracePos: pos, Children: []Node{
					&Ident{NamePos: pos, Name: "y"},
				}},
			},
		},
	}
	var idents []string
	Inspect(root, func(n Node) bool {
		if id, ok := n.(*Ident); ok {
			idents = append(idents, id.Name)
		}
		return true
	})
	assert.Equal(t, []string{"f", "y"}, idents)

	count := 0
	Inspect(root, func(n Node) bool {
		if n != nil {
			count++
		}
		return true
	})
	// Root, Invocation, Ident f, Int 1, Block, Ident y
	assert.Equal(t, 6, count)
}
