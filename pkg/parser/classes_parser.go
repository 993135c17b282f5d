package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"mytacism/evaluator-go/pkg/ast"
)

// parseClass handles class declarations and class expressions.
func (ctx *parseContext) parseClass(node *sitter.Node) (*ast.Class, error) {
	var (
		name       *ast.Identifier
		superClass ast.Expression
		members    []ast.Node
		err        error
	)
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		if name, err = ctx.parseIdentifier(nameNode); err != nil {
			return nil, err
		}
	}
	for _, child := range namedChildren(node) {
		if child.Kind() == "class_heritage" {
			if superClass, err = ctx.parseExpression(firstNamedChild(child)); err != nil {
				return nil, err
			}
		}
	}
	body := node.ChildByFieldName("body")
	if body == nil {
		return nil, fmt.Errorf("parser: class without body at line %d", spanFromNode(node).Start.Line)
	}
	for _, child := range namedChildren(body) {
		member, err := ctx.parseClassMember(child)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	class := ast.NewClass(name, superClass, members)
	class.Declaration = node.Kind() == "class_declaration"
	ctx.annotate(class, node)
	return class, nil
}

func (ctx *parseContext) parseClassMember(node *sitter.Node) (ast.Node, error) {
	if decorated(node) {
		return ctx.raw(node), nil
	}
	static := hasToken(node, "static") || hasToken(node, "static get")
	switch node.Kind() {
	case "method_definition":
		key, computed, err := ctx.parsePropertyKey(node.ChildByFieldName("name"))
		if err != nil {
			return nil, err
		}
		paramsNode := node.ChildByFieldName("parameters")
		bodyNode := node.ChildByFieldName("body")
		params, err := ctx.parseParameters(paramsNode)
		if err != nil {
			return nil, err
		}
		body, err := ctx.parseBlock(bodyNode)
		if err != nil {
			return nil, err
		}
		fn := ast.NewFunctionExpression(nil, params, body)
		fn.Async = hasToken(node, "async")
		fn.Generator = hasToken(node, "*")
		ctx.annotateRange(fn, paramsNode, bodyNode)

		kind := "method"
		switch {
		case hasToken(node, "get") || hasToken(node, "static get"):
			kind = "get"
		case hasToken(node, "set"):
			kind = "set"
		case !static && !computed && isConstructorKey(key):
			kind = "constructor"
		}
		method := ast.NewMethodDefinition(key, fn, kind)
		method.Static = static
		method.Computed = computed
		ctx.annotate(method, node)
		return method, nil
	case "field_definition":
		key, computed, err := ctx.parsePropertyKey(node.ChildByFieldName("property"))
		if err != nil {
			return nil, err
		}
		var value ast.Expression
		if valueNode := node.ChildByFieldName("value"); valueNode != nil {
			if value, err = ctx.parseExpression(valueNode); err != nil {
				return nil, err
			}
		}
		field := ast.NewFieldDefinition(key, value)
		field.Static = static
		field.Computed = computed
		ctx.annotate(field, node)
		return field, nil
	}
	return ctx.raw(node), nil
}

func isConstructorKey(key ast.Expression) bool {
	switch k := key.(type) {
	case *ast.Identifier:
		return k.Name == "constructor"
	case *ast.Literal:
		return k.Value == "constructor"
	}
	return false
}

// decorated reports whether node carries decorators. Decorated classes and
// members are kept verbatim.
func decorated(node *sitter.Node) bool {
	for _, child := range namedChildren(node) {
		if child.Kind() == "decorator" {
			return true
		}
	}
	return false
}
