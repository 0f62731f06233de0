package parser

import (
	"github.com/deepnoodle-ai/parsekit/ast"
	"github.com/deepnoodle-ai/parsekit/token"
)

// rewrite runs the grammar's ordered stages over one scope's token sequence,
// then validates and flattens the result into the scope's child list.
func (g *Grammar) rewrite(seq *Seq, diags *token.Diagnostics) []ast.Node {
	for stage := range g.passes {
		g.runStage(stage, seq, diags)
	}
	return sweep(seq, diags)
}

// runStage makes a single forward pass over the sequence at one precedence
// level. Operator tokens are resolved by fixity; other tokens are offered to
// the stage's operations in declaration order, first match wins.
func (g *Grammar) runStage(stage int, seq *Seq, diags *token.Diagnostics) {
	cur := seq.Front()
	for cur != nil {
		if opNode, ok := cur.Node.(*ast.Operator); ok {
			if next, resolved := g.resolveOperator(seq, cur, opNode, stage); resolved {
				cur = next
				continue
			}
			cur = cur.Next()
			continue
		}
		matched := false
		for _, op := range g.passes[stage] {
			if next, ok := op.Invoke(seq, cur, diags); ok {
				cur = next
				matched = true
				break
			}
		}
		if !matched {
			cur = cur.Next()
		}
	}
}

// operand locates the nearest operand neighbor in the given direction,
// looking through at most one weak separator. It returns the operand cell
// and the separator cell that was skipped, if any.
func operand(c *Cell, forward bool) (*Cell, *Cell) {
	if c == nil {
		return nil, nil
	}
	var sep *Cell
	if s, ok := c.Node.(*ast.Separator); ok {
		if s.Strong {
			return nil, nil
		}
		sep = c
		if forward {
			c = c.Next()
		} else {
			c = c.Prev()
		}
		if c == nil {
			return nil, nil
		}
	}
	if !ast.IsOperand(c.Node) {
		return nil, nil
	}
	return c, sep
}

// resolveOperator determines the fixity of an unresolved operator from its
// neighbors, consults the grammar, and if the operator belongs to the
// current stage rewrites the operator and its operands into a single node.
// Returns the cell scanning resumes at: the token following the removed
// region.
func (g *Grammar) resolveOperator(seq *Seq, cur *Cell, opNode *ast.Operator, stage int) (*Cell, bool) {
	prev, prevSep := operand(cur.Prev(), false)
	next, nextSep := operand(cur.Next(), true)

	var binding Binding
	switch {
	case prev != nil && next != nil:
		binding = Infix
	case next != nil:
		binding = Prefix
	case prev != nil:
		binding = Postfix
	default:
		return nil, false
	}

	entry, ok := g.lookup(opNode.Token, binding)
	if !ok || entry.stage != stage {
		return nil, false
	}

	var operands []ast.Node
	var removed []*Cell
	switch binding {
	case Infix:
		operands = []ast.Node{prev.Node, next.Node}
		removed = []*Cell{prev, cur, next}
	case Prefix:
		operands = []ast.Node{next.Node}
		removed = []*Cell{cur, next}
	case Postfix:
		operands = []ast.Node{prev.Node}
		removed = []*Cell{prev, cur}
	}
	if prevSep != nil && binding != Prefix {
		removed = append(removed, prevSep)
	}
	if nextSep != nil && binding != Postfix {
		removed = append(removed, nextSep)
	}

	var node ast.Node
	if entry.op.Emit != nil {
		node = entry.op.Emit(opNode.OpPos, operands)
	} else {
		target := &ast.Ident{NamePos: token.Synthetic(entry.op.Name), Name: entry.op.Name}
		node = &ast.Invocation{CallPos: opNode.OpPos, Target: target, Args: operands}
	}

	// The anchor is the first cell past the consumed region.
	var anchor *Cell
	if binding == Postfix {
		anchor = cur.Next()
	} else {
		anchor = next.Next()
	}
	seq.InsertBefore(node, anchor)
	for _, c := range removed {
		seq.Remove(c)
	}
	return anchor, true
}

// sweep validates the final sequence after all stages have run: it drops a
// leading separator, collapses doubled separators, requires a separator
// between adjacent operands unless the left one is an invocation with an
// attached block, and reports any tokens that should not have survived.
// Placeholder nodes never make it into the returned child list.
func sweep(seq *Seq, diags *token.Diagnostics) []ast.Node {
	if f := seq.Front(); f != nil {
		if _, ok := f.Node.(*ast.Separator); ok {
			seq.Remove(f)
		}
	}
	for c := seq.Front(); c != nil; {
		sep, isSep := c.Node.(*ast.Separator)
		next := c.Next()
		if !isSep || next == nil {
			c = next
			continue
		}
		nsep, nextIsSep := next.Node.(*ast.Separator)
		if !nextIsSep {
			c = next
			continue
		}
		// Keep the strong separator when strengths differ.
		if !sep.Strong && nsep.Strong {
			seq.Remove(c)
			c = next
		} else {
			seq.Remove(next)
		}
	}

	out := make([]ast.Node, 0, seq.Len())
	var last ast.Node
	separated := true
	for c := seq.Front(); c != nil; c = c.Next() {
		switch n := c.Node.(type) {
		case *ast.Separator:
			separated = true
		case *ast.Operator:
			diags.Add("unexpected operator", n.OpPos)
		case *ast.LabelOp:
			diags.Add("unexpected label", n.NamePos)
		default:
			if !separated && last != nil {
				inv, isInv := last.(*ast.Invocation)
				if !isInv || inv.Block == nil {
					diags.Add("unexpected token, expected ','", c.Node.Pos())
				}
			}
			out = append(out, c.Node)
			last = c.Node
			separated = false
		}
	}
	return out
}
