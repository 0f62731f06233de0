package main

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"github.com/deepnoodle-ai/parsekit/ast"
	"github.com/deepnoodle-ai/parsekit/token"
	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
)

// Color styles for tree display
var (
	nodeColor    = color.New(color.FgCyan, color.Bold)
	fieldColor   = color.New(color.FgMagenta)
	literalColor = color.New(color.FgYellow)
	mutedColor   = color.New(color.FgHiBlack)
	errorColor   = color.New(color.FgRed, color.Bold)
)

func printDiagnostics(diags []token.Diagnostic, short bool) {
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, errorColor.Sprint("error: ")+d.Pos.Format(d.Message, short))
	}
}

func printTree(root *ast.Root) {
	fmt.Println(nodeColor.Sprint("Root"))
	for i, child := range root.Children {
		printNode(child, "", i == len(root.Children)-1)
	}
}

func printNode(node ast.Node, indent string, isLast bool) {
	if node == nil {
		return
	}
	connector := "├─ "
	childIndent := indent + "│  "
	if isLast {
		connector = "└─ "
		childIndent = indent + "   "
	}
	prefix := mutedColor.Sprint(indent + connector)
	typeName := reflect.TypeOf(node).Elem().Name()

	switch n := node.(type) {
	case *ast.Ident:
		fmt.Println(prefix + nodeColor.Sprint(typeName) + literalColor.Sprintf(" %q", n.Name))
	case *ast.Int:
		fmt.Println(prefix + nodeColor.Sprint(typeName) + literalColor.Sprintf(" %d", n.Value))
	case *ast.Float:
		fmt.Println(prefix + nodeColor.Sprint(typeName) + literalColor.Sprintf(" %g", n.Value))
	case *ast.Bool:
		fmt.Println(prefix + nodeColor.Sprint(typeName) + literalColor.Sprintf(" %v", n.Value))
	case *ast.Nil:
		fmt.Println(prefix + nodeColor.Sprint(typeName))
	case *ast.String:
		fmt.Println(prefix + nodeColor.Sprint(typeName) + literalColor.Sprintf(" %q", n.Value))
	case *ast.Format:
		fmt.Println(prefix + nodeColor.Sprint(typeName) + mutedColor.Sprintf(" (%d segments)", len(n.Strings)))
		for i, group := range n.Values {
			lastGroup := i == len(n.Values)-1
			for j, child := range group {
				printNode(child, childIndent, lastGroup && j == len(group)-1)
			}
		}
	case *ast.Label:
		fmt.Println(prefix + nodeColor.Sprint(typeName) + fieldColor.Sprintf(" %s:", n.Name))
		printNode(n.Target, childIndent, true)
	case *ast.Invocation:
		fmt.Println(prefix + nodeColor.Sprint(typeName))
		printNode(n.Target, childIndent, len(n.Args) == 0 && n.Block == nil)
		for i, arg := range n.Args {
			printNode(arg, childIndent, i == len(n.Args)-1 && n.Block == nil)
		}
		if n.Block != nil {
			printNode(n.Block, childIndent, true)
		}
	case *ast.Block:
		fmt.Println(prefix + nodeColor.Sprint(typeName) + mutedColor.Sprintf(" (%d children)", len(n.Children)))
		printChildren(n.Children, childIndent)
	case *ast.Group:
		fmt.Println(prefix + nodeColor.Sprint(typeName) + mutedColor.Sprintf(" (%d children)", len(n.Children)))
		printChildren(n.Children, childIndent)
	case *ast.Tuple:
		fmt.Println(prefix + nodeColor.Sprint(typeName) + mutedColor.Sprintf(" (%d children)", len(n.Children)))
		printChildren(n.Children, childIndent)
	default:
		fmt.Println(prefix + nodeColor.Sprint(typeName))
	}
}

func printChildren(children []ast.Node, indent string) {
	for i, child := range children {
		printNode(child, indent, i == len(children)-1)
	}
}

// jsonNode is the JSON shape of a syntax tree node.
type jsonNode struct {
	Type     string      `json:"type"`
	Value    any         `json:"value,omitempty"`
	Name     string      `json:"name,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonDiagnostic struct {
	Message string `json:"message"`
	Pos     string `json:"pos"`
}

type jsonResult struct {
	Result      *jsonNode        `json:"result"`
	Diagnostics []jsonDiagnostic `json:"diagnostics,omitempty"`
}

func printJSON(root *ast.Root, diags []token.Diagnostic, useColor bool) error {
	result := jsonResult{Result: nodeToJSON(root)}
	for _, d := range diags {
		result.Diagnostics = append(result.Diagnostics, jsonDiagnostic{
			Message: d.Message,
			Pos:     d.Pos.String(),
		})
	}
	var data []byte
	var err error
	if useColor {
		data, err = prettyjson.Marshal(result)
	} else {
		data, err = json.MarshalIndent(result, "", "  ")
	}
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func nodeToJSON(node ast.Node) *jsonNode {
	if node == nil {
		return nil
	}
	result := &jsonNode{Type: reflect.TypeOf(node).Elem().Name()}
	switch n := node.(type) {
	case *ast.Root:
		result.Children = childrenToJSON(n.Children)
	case *ast.Block:
		result.Children = childrenToJSON(n.Children)
	case *ast.Group:
		result.Children = childrenToJSON(n.Children)
	case *ast.Tuple:
		result.Children = childrenToJSON(n.Children)
	case *ast.Ident:
		result.Name = n.Name
	case *ast.Int:
		result.Value = n.Value
	case *ast.Float:
		result.Value = n.Value
	case *ast.Bool:
		result.Value = n.Value
	case *ast.Nil:
		// No value
	case *ast.String:
		result.Value = n.Value
	case *ast.Format:
		result.Value = n.Strings
		for _, group := range n.Values {
			result.Children = append(result.Children, &jsonNode{
				Type:     "Values",
				Children: childrenToJSON(group),
			})
		}
	case *ast.Label:
		result.Name = n.Name
		result.Children = []*jsonNode{nodeToJSON(n.Target)}
	case *ast.Invocation:
		result.Children = append(result.Children, nodeToJSON(n.Target))
		result.Children = append(result.Children, childrenToJSON(n.Args)...)
		if n.Block != nil {
			result.Children = append(result.Children, nodeToJSON(n.Block))
		}
	}
	return result
}

func childrenToJSON(nodes []ast.Node) []*jsonNode {
	out := make([]*jsonNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, nodeToJSON(n))
	}
	return out
}
