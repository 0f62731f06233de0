package parser

import (
	"github.com/deepnoodle-ai/parsekit/ast"
	"github.com/deepnoodle-ai/parsekit/token"
)

// BracketType selects which bracket node an Invocation operation binds.
type BracketType int

const (
	GroupBracket BracketType = iota // ( ... )
	TupleBracket                    // [ ... ]
)

// Invocation binds a group or tuple node to the valid operand immediately
// preceding it. With an empty TargetName and GroupBracket the preceding node
// becomes the call target and the group's children the arguments, which is
// plain function-call sugar: f(a, b). With a TargetName, a synthesized
// identifier becomes the target and the preceding node is prepended to the
// bracket children, which desugars indexing: a[b] becomes index(a, b).
type Invocation struct {
	Type       BracketType
	TargetName string
}

func (op *Invocation) Invoke(seq *Seq, cur *Cell, diags *token.Diagnostics) (*Cell, bool) {
	var children []ast.Node
	switch n := cur.Node.(type) {
	case *ast.Group:
		if op.Type != GroupBracket {
			return nil, false
		}
		children = n.Children
	case *ast.Tuple:
		if op.Type != TupleBracket {
			return nil, false
		}
		children = n.Children
	default:
		return nil, false
	}
	prev := cur.Prev()
	if prev == nil || !ast.IsOperand(prev.Node) {
		return nil, false
	}
	var inv *ast.Invocation
	if op.TargetName == "" && op.Type == GroupBracket {
		inv = &ast.Invocation{
			CallPos: cur.Node.Pos(),
			Target:  prev.Node,
			Args:    children,
		}
	} else {
		target := &ast.Ident{NamePos: token.Synthetic(op.TargetName), Name: op.TargetName}
		inv = &ast.Invocation{
			CallPos: cur.Node.Pos(),
			Target:  target,
			Args:    append([]ast.Node{prev.Node}, children...),
		}
	}
	c := seq.InsertBefore(inv, prev)
	seq.Remove(prev)
	seq.Remove(cur)
	return c, true
}

// KeywordBinding desugars keyword-style calls: an identifier followed by one
// or more operands, optionally comma separated, becomes an invocation of the
// identifier. `return x, y` becomes return(x, y). Collection stops before a
// block node so that block binding can attach it, and at the first token
// that is neither a valid operand nor a strong separator. An identifier
// whose first sibling is a separator, or with no collected arguments at all,
// is left alone.
type KeywordBinding struct{}

func (op *KeywordBinding) Invoke(seq *Seq, cur *Cell, diags *token.Diagnostics) (*Cell, bool) {
	ident, ok := cur.Node.(*ast.Ident)
	if !ok {
		return nil, false
	}
	first := cur.Next()
	if first == nil {
		return nil, false
	}
	if _, isSep := first.Node.(*ast.Separator); isSep {
		return nil, false
	}
	var args []ast.Node
	var consumed []*Cell
	for c := first; c != nil; c = c.Next() {
		if _, isBlock := c.Node.(*ast.Block); isBlock {
			break
		}
		if sep, isSep := c.Node.(*ast.Separator); isSep {
			if !sep.Strong {
				break
			}
			consumed = append(consumed, c)
			continue
		}
		if !ast.IsOperand(c.Node) {
			break
		}
		args = append(args, c.Node)
		consumed = append(consumed, c)
	}
	if len(args) == 0 {
		return nil, false
	}
	inv := &ast.Invocation{
		CallPos: ident.NamePos,
		Target:  ident,
		Args:    args,
	}
	c := seq.InsertBefore(inv, cur)
	seq.Remove(cur)
	for _, cc := range consumed {
		seq.Remove(cc)
	}
	return c, true
}

// BlockBinding attaches trailing blocks and arrow bodies. When the cursor is
// an identifier, a group, or an invocation without a block, and the next
// token is either a block node or the arrow token followed by an operand,
// the following material becomes the invocation's block:
//
//   - an identifier target becomes a fresh invocation with no arguments
//   - a group target becomes an anonymous-function invocation whose target
//     is a synthesized arrow identifier and whose arguments are the group's
//     contents: (a, b) => {...} and (a, b) {...}
//   - an existing blockless invocation has its block set in place
//
// The arrow token is declared privately by this operation and is never
// resolved by the generic operator-resolution step.
type BlockBinding struct {
	// Arrow is the arrow token; "=>" when empty.
	Arrow string
}

func (op *BlockBinding) arrow() string {
	if op.Arrow == "" {
		return "=>"
	}
	return op.Arrow
}

// CustomOperators declares the arrow token so the scanner tokenizes it.
func (op *BlockBinding) CustomOperators() []*Operator {
	return []*Operator{{Token: op.arrow(), Binding: Infix}}
}

func (op *BlockBinding) Invoke(seq *Seq, cur *Cell, diags *token.Diagnostics) (*Cell, bool) {
	switch n := cur.Node.(type) {
	case *ast.Ident, *ast.Group:
	case *ast.Invocation:
		if n.Block != nil {
			return nil, false
		}
	default:
		return nil, false
	}

	next := cur.Next()
	if next == nil {
		return nil, false
	}
	var body ast.Node
	var consumed []*Cell
	if blk, isBlock := next.Node.(*ast.Block); isBlock {
		body = blk
		consumed = []*Cell{next}
	} else if opNode, isOp := next.Node.(*ast.Operator); isOp && opNode.Token == op.arrow() {
		after := next.Next()
		if after == nil || !ast.IsOperand(after.Node) {
			return nil, false
		}
		body = after.Node
		consumed = []*Cell{next, after}
	} else {
		return nil, false
	}

	switch n := cur.Node.(type) {
	case *ast.Invocation:
		n.Block = body
		for _, cc := range consumed {
			seq.Remove(cc)
		}
		return cur, true
	case *ast.Ident:
		inv := &ast.Invocation{CallPos: n.NamePos, Target: n, Block: body}
		c := seq.InsertBefore(inv, cur)
		seq.Remove(cur)
		for _, cc := range consumed {
			seq.Remove(cc)
		}
		return c, true
	case *ast.Group:
		target := &ast.Ident{NamePos: token.Synthetic(op.arrow()), Name: op.arrow()}
		inv := &ast.Invocation{
			CallPos: n.ParenPos,
			Target:  target,
			Args:    n.Children,
			Block:   body,
		}
		c := seq.InsertBefore(inv, cur)
		seq.Remove(cur)
		for _, cc := range consumed {
			seq.Remove(cc)
		}
		return c, true
	}
	return nil, false
}

// Labeling resolves a pending `name:` against the valid, non-label operand
// immediately following it, producing a single label node.
type Labeling struct{}

func (op *Labeling) Invoke(seq *Seq, cur *Cell, diags *token.Diagnostics) (*Cell, bool) {
	lop, ok := cur.Node.(*ast.LabelOp)
	if !ok {
		return nil, false
	}
	next := cur.Next()
	if next == nil || !ast.IsOperand(next.Node) {
		return nil, false
	}
	if _, isLabel := next.Node.(*ast.Label); isLabel {
		return nil, false
	}
	label := &ast.Label{NamePos: lop.NamePos, Name: lop.Name, Target: next.Node}
	c := seq.InsertBefore(label, cur)
	seq.Remove(cur)
	seq.Remove(next)
	return c, true
}
