package parser

import "github.com/deepnoodle-ai/parsekit/ast"

// Cell is one slot in a Seq. Cells are stable handles: a Cell held by a
// cursor remains valid while other cells around it are inserted or removed.
type Cell struct {
	Node ast.Node

	prev, next *Cell
	seq        *Seq
}

// Next returns the following cell, or nil at the end of the sequence.
func (c *Cell) Next() *Cell { return c.next }

// Prev returns the preceding cell, or nil at the start of the sequence.
func (c *Cell) Prev() *Cell { return c.prev }

// Seq is the mutable, order-preserving token sequence the rewrite engine
// operates on: a doubly linked list supporting O(1) insertion and removal
// at any cell while cursors elsewhere stay valid.
type Seq struct {
	front, back *Cell
	size        int
}

// Front returns the first cell, or nil if the sequence is empty.
func (s *Seq) Front() *Cell { return s.front }

// Back returns the last cell, or nil if the sequence is empty.
func (s *Seq) Back() *Cell { return s.back }

// Len returns the number of cells in the sequence.
func (s *Seq) Len() int { return s.size }

// PushBack appends a node at the end of the sequence.
func (s *Seq) PushBack(n ast.Node) *Cell {
	c := &Cell{Node: n, seq: s, prev: s.back}
	if s.back != nil {
		s.back.next = c
	} else {
		s.front = c
	}
	s.back = c
	s.size++
	return c
}

// InsertBefore inserts a node before the given cell. A nil cell appends at
// the end.
func (s *Seq) InsertBefore(n ast.Node, at *Cell) *Cell {
	if at == nil {
		return s.PushBack(n)
	}
	c := &Cell{Node: n, seq: s, prev: at.prev, next: at}
	if at.prev != nil {
		at.prev.next = c
	} else {
		s.front = c
	}
	at.prev = c
	s.size++
	return c
}

// Remove unlinks the cell from the sequence and returns the cell that
// followed it. Removing an already-removed cell is a no-op.
func (s *Seq) Remove(c *Cell) *Cell {
	if c == nil || c.seq != s {
		return nil
	}
	next := c.next
	if c.prev != nil {
		c.prev.next = c.next
	} else if s.front == c {
		s.front = c.next
	}
	if c.next != nil {
		c.next.prev = c.prev
	} else if s.back == c {
		s.back = c.prev
	}
	c.seq = nil
	c.prev = nil
	c.next = nil
	s.size--
	return next
}

// Nodes returns the sequence contents in order.
func (s *Seq) Nodes() []ast.Node {
	out := make([]ast.Node, 0, s.size)
	for c := s.front; c != nil; c = c.next {
		out = append(out, c.Node)
	}
	return out
}
