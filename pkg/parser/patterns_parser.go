package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"mytacism/evaluator-go/pkg/ast"
)

// parseParameters maps formal parameters to identifiers; defaults, rest
// parameters and destructuring patterns are kept as Raw nodes.
func (ctx *parseContext) parseParameters(node *sitter.Node) ([]ast.Node, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: missing parameter list")
	}
	params := make([]ast.Node, 0, node.NamedChildCount())
	for _, child := range namedChildren(node) {
		param, err := ctx.parseBindingTarget(child)
		if err != nil {
			return nil, err
		}
		params = append(params, param)
	}
	return params, nil
}

// parseBindingTarget handles the left side of declarators, loop heads, catch
// clauses and parameters.
func (ctx *parseContext) parseBindingTarget(node *sitter.Node) (ast.Node, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: missing binding target")
	}
	switch node.Kind() {
	case "identifier", "undefined":
		return ctx.parseIdentifier(node)
	case "member_expression", "subscript_expression", "parenthesized_expression":
		return ctx.parseExpression(node)
	}
	return ctx.pattern(node), nil
}

// pattern keeps a destructuring pattern opaque but records the names it
// binds.
func (ctx *parseContext) pattern(node *sitter.Node) *ast.Raw {
	r := ctx.raw(node)
	r.Bindings = collectPatternNames(node, ctx.source, nil)
	return r
}

func collectPatternNames(node *sitter.Node, source []byte, out []string) []string {
	if node == nil {
		return out
	}
	switch node.Kind() {
	case "identifier", "shorthand_property_identifier_pattern":
		return append(out, sliceContent(node, source))
	case "pair_pattern":
		return collectPatternNames(node.ChildByFieldName("value"), source, out)
	case "assignment_pattern", "object_assignment_pattern":
		return collectPatternNames(node.ChildByFieldName("left"), source, out)
	}
	for _, child := range namedChildren(node) {
		out = collectPatternNames(child, source, out)
	}
	return out
}

// parseAssignmentTarget handles the left side of assignments. Destructuring
// patterns stay opaque and are rejected later as write targets.
func (ctx *parseContext) parseAssignmentTarget(node *sitter.Node) (ast.Expression, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: missing assignment target")
	}
	switch node.Kind() {
	case "object_pattern", "array_pattern":
		return ctx.pattern(node), nil
	}
	return ctx.parseExpression(node)
}

