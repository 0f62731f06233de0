package parser

import (
	"fmt"
	"sort"

	"github.com/deepnoodle-ai/parsekit/ast"
	"github.com/deepnoodle-ai/parsekit/token"
)

// Binding describes the fixity of an operator relative to its operands.
type Binding int

const (
	Prefix Binding = iota
	Infix
	Postfix
)

func (b Binding) String() string {
	switch b {
	case Prefix:
		return "prefix"
	case Infix:
		return "infix"
	case Postfix:
		return "postfix"
	default:
		return "unknown"
	}
}

// EmitFunc builds the replacement node for a resolved operator. It receives
// the position of the operator occurrence and the consumed operands in
// source order.
type EmitFunc func(pos token.Position, operands []ast.Node) ast.Node

// Operation is the extension point of the grammar. An Operation inspects the
// token sequence at the cursor and either rewrites it in place, returning the
// cell scanning should resume at, or declines by returning false. Declining
// is not an error: it signals "not applicable here".
//
// Operations that additionally implement OperatorSource declare operator
// tokens they privately consume; those tokens are registered with the
// grammar at the declaring operation's stage.
type Operation interface {
	Invoke(seq *Seq, cur *Cell, diags *token.Diagnostics) (*Cell, bool)
}

// OperatorSource is implemented by operations that declare operator tokens
// of their own, such as the arrow token consumed only by block binding.
type OperatorSource interface {
	CustomOperators() []*Operator
}

// Operator declares a token with a fixity and an emission rule. If Emit is
// set it builds the replacement node; otherwise Name identifies a synthesized
// invocation target. An Operator with neither is reserved for exclusive
// consumption by the operation that declared it and is never resolved by the
// generic operator-resolution step.
//
// Operator is itself an Operation with no rewrite behavior of its own: it
// exists as grammar-table data consumed by the engine.
type Operator struct {
	Token   string
	Binding Binding
	Name    string
	Emit    EmitFunc
}

// Invoke always declines; operators are resolved by the engine directly.
func (o *Operator) Invoke(seq *Seq, cur *Cell, diags *token.Diagnostics) (*Cell, bool) {
	return nil, false
}

func (o *Operator) reserved() bool {
	return o.Emit == nil && o.Name == ""
}

// Definition maps an explicitly defined literal token, such as a boolean or
// nil constant, to a node-construction function.
type Definition struct {
	Token   string
	Factory func(pos token.Position) ast.Node
}

type opEntry struct {
	op    *Operator
	stage int
}

// Grammar is a compiled, immutable rule table built from an ordered list of
// precedence stages. A Grammar is built once and may be reused across many
// parse calls, including concurrently.
type Grammar struct {
	passes        [][]Operation
	operators     map[string]opEntry
	definitions   map[string]func(token.Position) ast.Node
	definedTokens []string
}

func makeID(tok string, b Binding) string {
	return tok + "/" + b.String()
}

// New compiles an ordered list of stages plus optional literal definitions
// into a Grammar. Operations and operators in the same stage resolve at the
// same precedence; earlier stages bind tighter.
//
// An operator declared directly in a stage with no emission rule is a
// grammar-definition bug and is rejected here rather than tripping an
// invariant during parsing.
func New(stages [][]Operation, definitions ...Definition) (*Grammar, error) {
	g := &Grammar{
		passes:      make([][]Operation, len(stages)),
		operators:   map[string]opEntry{},
		definitions: map[string]func(token.Position) ast.Node{},
	}
	tokens := map[string]bool{}
	for i, stage := range stages {
		for _, op := range stage {
			if o, ok := op.(*Operator); ok {
				if o.reserved() {
					return nil, fmt.Errorf(
						"grammar: operator %q in stage %d has no emission rule and is not claimed by any operation",
						o.Token, i)
				}
				g.operators[makeID(o.Token, o.Binding)] = opEntry{op: o, stage: i}
				tokens[o.Token] = true
				continue
			}
			g.passes[i] = append(g.passes[i], op)
			if src, ok := op.(OperatorSource); ok {
				for _, o := range src.CustomOperators() {
					tokens[o.Token] = true
					if !o.reserved() {
						g.operators[makeID(o.Token, o.Binding)] = opEntry{op: o, stage: i}
					}
				}
			}
		}
	}
	for _, def := range definitions {
		if def.Token == "" || def.Factory == nil {
			return nil, fmt.Errorf("grammar: definition %q requires a token and a factory", def.Token)
		}
		g.definitions[def.Token] = def.Factory
		tokens[def.Token] = true
	}
	for t := range tokens {
		g.definedTokens = append(g.definedTokens, t)
	}
	// Longest first so that greedy matching finds "=>" before "=".
	sort.Slice(g.definedTokens, func(a, b int) bool {
		if len(g.definedTokens[a]) != len(g.definedTokens[b]) {
			return len(g.definedTokens[a]) > len(g.definedTokens[b])
		}
		return g.definedTokens[a] < g.definedTokens[b]
	})
	return g, nil
}

// MustNew is like New but panics on a construction error. Intended for
// statically known grammars.
func MustNew(stages [][]Operation, definitions ...Definition) *Grammar {
	g, err := New(stages, definitions...)
	if err != nil {
		panic(err)
	}
	return g
}

// lookup returns the operator entry for a token with the given fixity.
func (g *Grammar) lookup(tok string, b Binding) (opEntry, bool) {
	e, ok := g.operators[makeID(tok, b)]
	return e, ok
}

// definition returns the literal factory for an explicitly defined token.
func (g *Grammar) definition(tok string) (func(token.Position) ast.Node, bool) {
	f, ok := g.definitions[tok]
	return f, ok
}
