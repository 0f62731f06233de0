package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/deepnoodle-ai/parsekit/token"
)

// Root is the top of a parsed document.
type Root struct {
	DocPos   token.Position
	Children []Node
}

func (x *Root) Pos() token.Position { return x.DocPos }

func (x *Root) String() string { return joinChildren(x.Children, "\n") }

// Block is a `{ ... }` scope.
type Block struct {
	BracePos token.Position // position of "{"
	Children []Node
}

func (x *Block) Pos() token.Position { return x.BracePos }

func (x *Block) String() string {
	return "{ " + joinChildren(x.Children, "; ") + " }"
}

// Group is a `( ... )` scope.
type Group struct {
	ParenPos token.Position // position of "("
	Children []Node
}

func (x *Group) Pos() token.Position { return x.ParenPos }

func (x *Group) String() string {
	return "(" + joinChildren(x.Children, ", ") + ")"
}

// Tuple is a `[ ... ]` scope.
type Tuple struct {
	BracketPos token.Position // position of "["
	Children   []Node
}

func (x *Tuple) Pos() token.Position { return x.BracketPos }

func (x *Tuple) String() string {
	return "[" + joinChildren(x.Children, ", ") + "]"
}

// Ident refers to a name.
type Ident struct {
	NamePos token.Position
	Name    string
}

func (x *Ident) Pos() token.Position { return x.NamePos }

func (x *Ident) String() string { return x.Name }

// Label pairs a name with the node it labels, as in `name: target`.
type Label struct {
	NamePos token.Position // position of the labeling name
	Name    string
	Target  Node
}

func (x *Label) Pos() token.Position { return x.NamePos }

func (x *Label) String() string { return x.Name + ": " + x.Target.String() }

// String is a quoted or raw full-line string literal. FullLine distinguishes
// raw `\\` line strings, whose continuation lines are merged into one node.
type String struct {
	QuotePos token.Position
	Value    string
	FullLine bool
}

func (x *String) Pos() token.Position { return x.QuotePos }

func (x *String) String() string { return strconv.Quote(x.Value) }

// Int is an integer literal.
type Int struct {
	NumPos token.Position
	Value  int64
}

func (x *Int) Pos() token.Position { return x.NumPos }

func (x *Int) String() string { return strconv.FormatInt(x.Value, 10) }

// Float is a floating point literal.
type Float struct {
	NumPos token.Position
	Value  float64
}

func (x *Float) Pos() token.Position { return x.NumPos }

func (x *Float) String() string {
	return strconv.FormatFloat(x.Value, 'f', -1, 64)
}

// Bool is a boolean literal.
type Bool struct {
	BoolPos token.Position
	Value   bool
}

func (x *Bool) Pos() token.Position { return x.BoolPos }

func (x *Bool) String() string { return strconv.FormatBool(x.Value) }

// Nil is the nil literal.
type Nil struct {
	NilPos token.Position
}

func (x *Nil) Pos() token.Position { return x.NilPos }

func (x *Nil) String() string { return "nil" }

// Format is an interpolated string literal. Strings holds the literal
// segments and Values the interpolated expression groups between them;
// Strings always has exactly one more entry than Values.
type Format struct {
	QuotePos token.Position
	Strings  []string
	Values   [][]Node
}

func (x *Format) Pos() token.Position { return x.QuotePos }

func (x *Format) String() string {
	var out bytes.Buffer
	out.WriteString("$\"")
	for i, s := range x.Strings {
		out.WriteString(s)
		if i < len(x.Values) {
			out.WriteString("${")
			out.WriteString(joinChildren(x.Values[i], ", "))
			out.WriteString("}")
		}
	}
	out.WriteString("\"")
	return out.String()
}

// Operator is an unresolved operator occurrence. It never appears in a
// finished tree: the rewrite engine either resolves it or reports it.
type Operator struct {
	OpPos token.Position
	Token string
}

func (x *Operator) Pos() token.Position { return x.OpPos }

func (x *Operator) String() string { return x.Token }

// Separator is an explicit comma (strong) or an implicit newline break
// (weak). It never appears in a finished tree.
type Separator struct {
	SepPos token.Position
	Strong bool
}

func (x *Separator) Pos() token.Position { return x.SepPos }

func (x *Separator) String() string {
	if x.Strong {
		return ","
	}
	return "<break>"
}

// LabelOp is a `name:` pending its target. It never appears in a
// finished tree.
type LabelOp struct {
	NamePos token.Position
	Name    string
}

func (x *LabelOp) Pos() token.Position { return x.NamePos }

func (x *LabelOp) String() string { return x.Name + ":" }

// Invocation applies a target to arguments. It covers function calls,
// desugared operators and keyword forms, and may carry an attached block.
type Invocation struct {
	CallPos token.Position // position of the construct that formed the call
	Target  Node
	Args    []Node
	Block   Node // attached block or arrow body; nil if none
}

func (x *Invocation) Pos() token.Position { return x.CallPos }

func (x *Invocation) String() string {
	var out bytes.Buffer
	out.WriteString(x.Target.String())
	out.WriteString("(")
	out.WriteString(joinChildren(x.Args, ", "))
	out.WriteString(")")
	if x.Block != nil {
		out.WriteString(" ")
		out.WriteString(x.Block.String())
	}
	return out.String()
}

func joinChildren(nodes []Node, sep string) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, n.String())
	}
	return strings.Join(parts, sep)
}
