package token

import (
	"fmt"
	"strings"
)

// Position points at a span of characters in a Document. Line and Offset are
// 0-indexed; Offset is a character (rune) index into the document content and
// Length is the number of characters covered. Length may grow after creation
// when adjacent diagnostics are merged; nothing else mutates a Position.
//
// A synthetic Position carries only a kind tag and no document. It marks
// nodes the parser manufactured with no backing source text, such as the
// target identifier of desugared index calls.
type Position struct {
	Document *Document
	Line     int
	Offset   int
	Length   int

	kind string
}

// NewPosition returns a located Position within the given document.
func NewPosition(doc *Document, line, offset, length int) Position {
	return Position{Document: doc, Line: line, Offset: offset, Length: length}
}

// Synthetic returns a Position with no backing source text, tagged with a
// short kind label. It renders as "<kind>".
func Synthetic(kind string) Position {
	return Position{kind: kind}
}

// IsSynthetic reports whether this position has no backing source text.
func (p Position) IsSynthetic() bool { return p.kind != "" }

// Kind returns the tag of a synthetic position, or "" if located.
func (p Position) Kind() string { return p.kind }

// End returns the character offset one past the span.
func (p Position) End() int { return p.Offset + p.Length }

// LineNumber returns the 1-indexed line number.
func (p Position) LineNumber() int { return p.Line + 1 }

// ColumnNumber returns the 1-indexed column number, computed against the
// document content.
func (p Position) ColumnNumber() int {
	if p.Document == nil {
		return 1
	}
	return p.Offset - p.Document.lineStart(p.Line) + 1
}

// String renders the position as "path:line:col", or "<kind>" for a
// synthetic position.
func (p Position) String() string {
	if p.IsSynthetic() {
		return "<" + p.kind + ">"
	}
	path := ""
	if p.Document != nil {
		path = p.Document.Path()
	}
	return fmt.Sprintf("%s:%d:%d", path, p.LineNumber(), p.ColumnNumber())
}

// Format renders the position with an optional message and, unless short is
// true, the offending source line followed by a pointer line. The source line
// is shown with its leading indentation stripped and the pointer adjusted to
// match: a single-character span points with "^", longer spans with a run
// of "~".
func (p Position) Format(message string, short bool) string {
	var b strings.Builder
	b.WriteString(p.String())
	if message != "" {
		b.WriteString(" - ")
		b.WriteString(message)
	}
	if short || p.IsSynthetic() || p.Document == nil {
		return b.String()
	}
	line := p.Document.Line(p.Line)
	stripped := 0
	for stripped < len(line) && (line[stripped] == ' ' || line[stripped] == '\t') {
		stripped++
	}
	b.WriteString("\n")
	b.WriteString(line[stripped:])
	b.WriteString("\n")
	col := p.ColumnNumber() - 1 - stripped
	if col < 0 {
		col = 0
	}
	b.WriteString(strings.Repeat(" ", col))
	if p.Length > 1 {
		b.WriteString(strings.Repeat("~", p.Length))
	} else {
		b.WriteString("^")
	}
	return b.String()
}
