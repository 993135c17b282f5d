package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"mytacism/evaluator-go/pkg/ast"
)

func (ctx *parseContext) parseIdentifier(node *sitter.Node) (*ast.Identifier, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: expected identifier")
	}
	switch node.Kind() {
	case "identifier", "property_identifier", "shorthand_property_identifier",
		"shorthand_property_identifier_pattern", "statement_identifier", "undefined":
	default:
		return nil, fmt.Errorf("parser: expected identifier, found %s", node.Kind())
	}
	id := ast.ID(sliceContent(node, ctx.source))
	ctx.annotate(id, node)
	return id, nil
}

func sliceContent(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := int(node.StartByte())
	end := int(node.EndByte())
	if start < 0 || end < start || end > len(source) {
		return ""
	}
	return string(source[start:end])
}

// namedChildren returns the named, non-comment children of node.
func namedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || isIgnorableNode(child) {
			continue
		}
		out = append(out, child)
	}
	return out
}

func firstNamedChild(node *sitter.Node) *sitter.Node {
	children := namedChildren(node)
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// hasToken reports whether node has a direct anonymous child spelled text.
func hasToken(node *sitter.Node, text string) bool {
	if node == nil {
		return false
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && !child.IsNamed() && child.Kind() == text {
			return true
		}
	}
	return false
}

// firstToken returns the kind of the first child of node, named or not.
func firstToken(node *sitter.Node) string {
	if node == nil || node.ChildCount() == 0 {
		return ""
	}
	return node.Child(0).Kind()
}

func sameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Kind() == b.Kind() && a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte()
}

func isIgnorableNode(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	switch node.Kind() {
	case "comment", "hash_bang_line", "html_comment":
		return true
	default:
		return false
	}
}

// findError locates the first error or missing node below node.
func findError(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	if node.IsError() || node.IsMissing() {
		return node
	}
	if !node.HasError() {
		return nil
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if found := findError(node.Child(i)); found != nil {
			return found
		}
	}
	return node
}
