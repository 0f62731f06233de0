package token

import "strings"

// Document is the unit of text being parsed: an immutable pairing of a path
// and the full source content. One Document corresponds to one parse call,
// and every located Position refers back to its Document.
type Document struct {
	path    string
	content string
}

// NewDocument creates a Document for the given path and source content.
func NewDocument(path, content string) *Document {
	return &Document{path: path, content: content}
}

// Path returns the path the document was loaded from.
func (d *Document) Path() string { return d.path }

// Content returns the full source text of the document.
func (d *Document) Content() string { return d.content }

// Line returns the text of the 0-indexed line, without its trailing newline.
// Out of range lines return the empty string.
func (d *Document) Line(n int) string {
	if n < 0 {
		return ""
	}
	lines := strings.Split(d.content, "\n")
	if n >= len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[n], "\r")
}

// lineStart returns the character offset of the first character of the
// 0-indexed line. Offsets are rune offsets, matching Position.Offset.
func (d *Document) lineStart(n int) int {
	offset := 0
	line := 0
	for _, r := range d.content {
		if line == n {
			return offset
		}
		if r == '\n' {
			line++
		}
		offset++
	}
	return offset
}
