package ast

// Visitor defines the interface for AST traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil children of node.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Root:
		for _, child := range n.Children {
			Walk(v, child)
		}
	case *Block:
		for _, child := range n.Children {
			Walk(v, child)
		}
	case *Group:
		for _, child := range n.Children {
			Walk(v, child)
		}
	case *Tuple:
		for _, child := range n.Children {
			Walk(v, child)
		}
	case *Label:
		if n.Target != nil {
			Walk(v, n.Target)
		}
	case *Format:
		for _, group := range n.Values {
			for _, child := range group {
				Walk(v, child)
			}
		}
	case *Invocation:
		if n.Target != nil {
			Walk(v, n.Target)
		}
		for _, arg := range n.Args {
			Walk(v, arg)
		}
		if n.Block != nil {
			Walk(v, n.Block)
		}

	// Leaves
	case *Ident, *String, *Int, *Float, *Bool, *Nil:
		// No children

	// Placeholders, present only in rewrite-engine working sequences
	case *Operator, *Separator, *LabelOp:
		// No children
	}

	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses an AST in depth-first order calling f for each node.
// If f returns false for a node, its children are not visited. Inspect
// also calls f(nil) after all children of a visited node are processed.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}
