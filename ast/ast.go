// Package ast defines the syntax tree produced by the parser.
//
// The tree is a tagged union of node kinds. Three of them — Operator,
// Separator, and LabelOp — are placeholders that only exist inside the
// rewrite engine's working sequence: a finished parse never contains them.
package ast

import "github.com/deepnoodle-ai/parsekit/token"

// Node represents a portion of the syntax tree. All nodes carry position
// information indicating where they appear in the source code.
type Node interface {
	// Pos returns the position of the node in its source document.
	Pos() token.Position

	// String returns a human friendly representation of the Node. This should
	// be similar to the original source code, but not necessarily identical.
	String() string
}

// IsOperand reports whether the node can serve as the operand or target of
// an operator or operation. Placeholder nodes (Operator, Separator, LabelOp)
// cannot; everything else can.
func IsOperand(n Node) bool {
	switch n.(type) {
	case nil, *Operator, *Separator, *LabelOp:
		return false
	}
	return true
}
