package parser

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/deepnoodle-ai/parsekit/ast"
	"github.com/deepnoodle-ai/parsekit/token"
)

// scanner converts raw characters into token sequences, one lexical scope at
// a time: the document top level, or the interior of brackets and string
// interpolation slots. Scanner state is allocated fresh for every parse
// invocation; nothing here is shared across calls.
type scanner struct {
	doc      *token.Document
	g        *Grammar
	diags    *token.Diagnostics
	src      []rune
	pos      int // current character offset
	line     int // current 0-indexed line
	depth    int
	maxDepth int
	failed   bool // depth limit tripped; suppress cascading diagnostics
}

func (s *scanner) position(start, length, line int) token.Position {
	return token.NewPosition(s.doc, line, start, length)
}

func (s *scanner) peek(k int) rune {
	if s.pos+k < len(s.src) {
		return s.src[s.pos+k]
	}
	return 0
}

func isWordStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isWordChar(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

// scanScope scans one lexical scope up to the given terminator character
// (0 for the document top level), recursing into nested scopes, and returns
// the scope's rewritten child list.
func (s *scanner) scanScope(terminator rune) []ast.Node {
	seq := &Seq{}
	s.depth++
	defer func() { s.depth-- }()
	if s.depth > s.maxDepth {
		if !s.failed {
			s.failed = true
			s.diags.Add("maximum nesting depth exceeded", s.position(s.pos, 1, s.line))
		}
		s.pos = len(s.src)
		return s.g.rewrite(seq, s.diags)
	}

	for s.pos < len(s.src) {
		ch := s.src[s.pos]

		// Comments
		if ch == '/' && s.peek(1) == '/' {
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.pos++
			}
			continue
		}
		if ch == '/' && s.peek(1) == '*' {
			s.skipBlockComment()
			continue
		}

		// Defined tokens, longest match first
		if tok, ok := s.matchDefinedToken(); ok {
			start, line := s.pos, s.line
			length := len([]rune(tok))
			s.pos += length
			pos := s.position(start, length, line)
			if factory, isDef := s.g.definition(tok); isDef {
				seq.PushBack(factory(pos))
			} else {
				seq.PushBack(&ast.Operator{OpPos: pos, Token: tok})
			}
			continue
		}

		// Numeric literals
		if isDigit(ch) {
			seq.PushBack(s.scanNumber())
			continue
		}

		// Raw multi-line string continuation
		if ch == '\\' && s.peek(1) == '\\' {
			s.scanRawLine(seq)
			continue
		}

		// Quoted and interpolated strings
		if ch == '"' || ch == '\'' {
			seq.PushBack(s.scanString(s.pos, s.line, ch, false))
			continue
		}
		if ch == '$' && (s.peek(1) == '"' || s.peek(1) == '\'') {
			start, line := s.pos, s.line
			s.pos++
			seq.PushBack(s.scanString(start, line, s.src[s.pos], true))
			continue
		}

		// A colon directly after an identifier turns it into a pending
		// label; elsewhere it separates like a comma.
		if ch == ':' {
			start, line := s.pos, s.line
			s.pos++
			if c := seq.Back(); c != nil {
				if id, ok := c.Node.(*ast.Ident); ok && id.NamePos.End() == start {
					c.Node = &ast.LabelOp{NamePos: id.NamePos, Name: id.Name}
					continue
				}
			}
			seq.PushBack(&ast.Separator{SepPos: s.position(start, 1, line), Strong: true})
			continue
		}

		// Identifiers
		if isWordStart(ch) {
			seq.PushBack(s.scanIdent())
			continue
		}

		// End of this scope
		if terminator != 0 && ch == terminator {
			s.pos++
			return s.g.rewrite(seq, s.diags)
		}

		// Whitespace
		if ch == ' ' || ch == '\t' || ch == '\r' {
			s.pos++
			continue
		}

		// A newline becomes a single weak separator; consecutive newlines
		// collapse into one.
		if ch == '\n' {
			start, line := s.pos, s.line
			s.pos++
			s.line++
			if c := seq.Back(); c != nil {
				if _, ok := c.Node.(*ast.Separator); ok {
					continue
				}
			}
			seq.PushBack(&ast.Separator{SepPos: s.position(start, 1, line), Strong: false})
			continue
		}

		if ch == ',' {
			start, line := s.pos, s.line
			s.pos++
			pos := s.position(start, 1, line)
			if c := seq.Back(); c != nil {
				if sep, ok := c.Node.(*ast.Separator); ok {
					if sep.Strong {
						s.diags.Add("unexpected comma", pos)
					} else {
						// Upgrade the newline break to an explicit separator.
						sep.Strong = true
						sep.SepPos = pos
					}
					continue
				}
			}
			seq.PushBack(&ast.Separator{SepPos: pos, Strong: true})
			continue
		}

		// Nested scopes
		if ch == '(' || ch == '{' || ch == '[' {
			start, line := s.pos, s.line
			s.pos++
			pos := s.position(start, 1, line)
			switch ch {
			case '(':
				seq.PushBack(&ast.Group{ParenPos: pos, Children: s.scanScope(')')})
			case '{':
				seq.PushBack(&ast.Block{BracePos: pos, Children: s.scanScope('}')})
			case '[':
				seq.PushBack(&ast.Tuple{BracketPos: pos, Children: s.scanScope(']')})
			}
			continue
		}

		s.diags.Add("unexpected character", s.position(s.pos, 1, s.line))
		s.pos++
	}

	if terminator != 0 && !s.failed {
		s.diags.Add("unterminated block", s.position(s.pos, 1, s.line))
	}
	return s.g.rewrite(seq, s.diags)
}

// matchDefinedToken finds the longest defined token at the cursor. Tokens
// ending in a word character only match at a word boundary, so that an
// identifier like "trueish" is not split into "true" + "ish".
func (s *scanner) matchDefinedToken() (string, bool) {
	for _, t := range s.g.definedTokens {
		runes := []rune(t)
		if s.pos+len(runes) > len(s.src) {
			continue
		}
		match := true
		for i, r := range runes {
			if s.src[s.pos+i] != r {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		if isWordChar(runes[len(runes)-1]) &&
			s.pos+len(runes) < len(s.src) &&
			isWordChar(s.src[s.pos+len(runes)]) {
			continue
		}
		return t, true
	}
	return "", false
}

func (s *scanner) skipBlockComment() {
	s.pos += 2
	depth := 1
	for s.pos < len(s.src) && depth > 0 {
		ch := s.src[s.pos]
		if ch == '/' && s.peek(1) == '*' {
			depth++
			s.pos += 2
			continue
		}
		if ch == '*' && s.peek(1) == '/' {
			depth--
			s.pos += 2
			continue
		}
		if ch == '\n' {
			s.line++
		}
		s.pos++
	}
	// Unterminated nesting falls through to end-of-input handling.
}

func (s *scanner) scanIdent() ast.Node {
	start, line := s.pos, s.line
	for s.pos < len(s.src) && isWordChar(s.src[s.pos]) {
		s.pos++
	}
	name := string(s.src[start:s.pos])
	return &ast.Ident{NamePos: s.position(start, s.pos-start, line), Name: name}
}

// scanNumber reads a decimal literal with optional fraction and signed
// exponent, or a 0x hex or 0b binary integer. The value is a float exactly
// when a fraction or exponent was present.
func (s *scanner) scanNumber() ast.Node {
	start, line := s.pos, s.line
	isFloat := false

	if s.src[s.pos] == '0' && (s.peek(1) == 'x' || s.peek(1) == 'X') && isHexDigit(s.peek(2)) {
		s.pos += 2
		for s.pos < len(s.src) && isHexDigit(s.src[s.pos]) {
			s.pos++
		}
	} else if s.src[s.pos] == '0' && (s.peek(1) == 'b' || s.peek(1) == 'B') && isBinDigit(s.peek(2)) {
		s.pos += 2
		for s.pos < len(s.src) && isBinDigit(s.src[s.pos]) {
			s.pos++
		}
	} else {
		for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
			s.pos++
		}
		if s.pos < len(s.src) && s.src[s.pos] == '.' && isDigit(s.peek(1)) {
			isFloat = true
			s.pos++
			for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
				s.pos++
			}
		}
		if s.pos < len(s.src) && (s.src[s.pos] == 'e' || s.src[s.pos] == 'E') {
			k := 1
			if s.peek(1) == '+' || s.peek(1) == '-' {
				k = 2
			}
			if isDigit(s.peek(k)) {
				isFloat = true
				s.pos += k
				for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
					s.pos++
				}
			}
		}
	}

	text := string(s.src[start:s.pos])
	pos := s.position(start, s.pos-start, line)
	if isFloat {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			s.diags.Add("invalid number", pos)
		}
		return &ast.Float{NumPos: pos, Value: v}
	}
	v, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		s.diags.Add("invalid number", pos)
	}
	return &ast.Int{NumPos: pos, Value: v}
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isBinDigit(ch rune) bool { return ch == '0' || ch == '1' }

// scanRawLine reads a `\\` raw string to the end of the line. Consecutive
// raw lines merge into a single full-line string node; the weak separator
// the intervening newline produced is absorbed by the merge.
func (s *scanner) scanRawLine(seq *Seq) {
	start, line := s.pos, s.line
	s.pos += 2
	textStart := s.pos
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.pos++
	}
	text := string(s.src[textStart:s.pos])

	if c := seq.Back(); c != nil {
		prev := c
		var sepCell *Cell
		if sep, ok := c.Node.(*ast.Separator); ok && !sep.Strong {
			sepCell = c
			prev = c.Prev()
		}
		if prev != nil {
			if str, ok := prev.Node.(*ast.String); ok && str.FullLine {
				str.Value += "\n" + text
				if sepCell != nil {
					seq.Remove(sepCell)
				}
				return
			}
		}
	}
	seq.PushBack(&ast.String{
		QuotePos: s.position(start, s.pos-start, line),
		Value:    text,
		FullLine: true,
	})
}

// scanString reads a quoted string from the opening quote, processing
// backslash escapes. In interpolated mode a ${ ... } slot recurses into a
// nested scope terminated by }, and the result is a format node whose
// literal segments always number one more than its value groups. Without
// any interpolation a plain string node is produced.
func (s *scanner) scanString(start, line int, quote rune, interpolated bool) ast.Node {
	s.pos++ // opening quote
	var sb strings.Builder
	var segments []string
	var values [][]ast.Node

	finish := func() ast.Node {
		pos := s.position(start, s.pos-start, line)
		if interpolated && len(values) > 0 {
			segments = append(segments, sb.String())
			return &ast.Format{QuotePos: pos, Strings: segments, Values: values}
		}
		return &ast.String{QuotePos: pos, Value: sb.String()}
	}

	for s.pos < len(s.src) {
		ch := s.src[s.pos]
		if ch == quote {
			s.pos++
			return finish()
		}
		if ch == '\\' && s.pos+1 < len(s.src) {
			esc := s.src[s.pos+1]
			switch {
			case esc == '\\':
				sb.WriteRune('\\')
			case esc == 'n':
				sb.WriteRune('\n')
			case esc == 'r':
				sb.WriteRune('\r')
			case esc == 't':
				sb.WriteRune('\t')
			case esc == quote:
				sb.WriteRune(quote)
			default:
				sb.WriteRune('\\')
				sb.WriteRune(esc)
				if esc == '\n' {
					s.line++
				}
			}
			s.pos += 2
			continue
		}
		if interpolated && ch == '$' && s.peek(1) == '{' {
			s.pos += 2
			segments = append(segments, sb.String())
			sb.Reset()
			values = append(values, s.scanScope('}'))
			continue
		}
		if ch == '\n' {
			s.line++
		}
		sb.WriteRune(ch)
		s.pos++
	}
	// Unterminated: end-of-input handling applies in the enclosing scope.
	return finish()
}
