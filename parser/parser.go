// Package parser implements a staged-rewrite parser engine for C-style
// textual languages.
//
// A grammar is declared as an ordered list of precedence stages, each
// holding operators and operations, and compiled once with New. Parse then
// tokenizes a document and repeatedly rewrites the flat token sequence of
// each lexical scope, stage by stage, into a syntax tree. Parse-time
// problems are reported as diagnostics, never as errors: a best-effort tree
// is always produced.
package parser

import (
	"github.com/deepnoodle-ai/parsekit/ast"
	"github.com/deepnoodle-ai/parsekit/token"
)

// DefaultMaxDepth is the default maximum scope-nesting depth for parsing.
const DefaultMaxDepth = 500

type parseConfig struct {
	lineOffset int
	maxDepth   int
}

// Option is a configuration function for a parse call.
type Option func(*parseConfig)

// WithLineOffset attributes line numbers relative to an embedding context,
// such as a fenced block inside a larger file.
func WithLineOffset(n int) Option {
	return func(c *parseConfig) {
		c.lineOffset = n
	}
}

// WithMaxDepth sets the maximum scope-nesting depth. This prevents stack
// overflow on pathologically nested input; exceeding it is reported as a
// diagnostic. The default is 500.
func WithMaxDepth(depth int) Option {
	return func(c *parseConfig) {
		c.maxDepth = depth
	}
}

// Parse parses the document with the given grammar. The returned root is
// always produced, degraded where necessary; the diagnostic slice is nil
// when parsing was clean, otherwise it holds the problems in the order
// encountered.
//
// A Grammar is immutable and may be shared; all mutable scanning state is
// local to this call, so concurrent Parse calls with the same grammar are
// safe.
func Parse(doc *token.Document, g *Grammar, opts ...Option) (*ast.Root, []token.Diagnostic) {
	cfg := parseConfig{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}
	diags := &token.Diagnostics{}
	s := &scanner{
		doc:      doc,
		g:        g,
		diags:    diags,
		src:      []rune(doc.Content()),
		line:     cfg.lineOffset,
		maxDepth: cfg.maxDepth,
	}
	children := s.scanScope(0)
	root := &ast.Root{
		DocPos:   token.NewPosition(doc, cfg.lineOffset, 0, 0),
		Children: children,
	}
	return root, diags.List()
}
