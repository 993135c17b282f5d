package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"mytacism/evaluator-go/pkg/ast"
)

// opaqueExpressions are kept verbatim as Raw nodes.
var opaqueExpressions = map[string]bool{
	"this":                        true,
	"super":                       true,
	"regex":                       true,
	"meta_property":               true,
	"import":                      true,
	"private_property_identifier": true,
	"jsx_element":                 true,
	"jsx_self_closing_element":    true,
}

var logicalOperators = map[string]bool{"&&": true, "||": true, "??": true}

// parseExpressionList parses one expression, or a comma-separated run of
// them as a sequence.
func (ctx *parseContext) parseExpressionList(nodes []*sitter.Node) (ast.Expression, error) {
	switch len(nodes) {
	case 0:
		return nil, fmt.Errorf("parser: expected expression")
	case 1:
		return ctx.parseExpression(nodes[0])
	}
	exprs := make([]ast.Expression, 0, len(nodes))
	for _, n := range nodes {
		e, err := ctx.parseExpression(n)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return ast.NewSequenceExpression(exprs), nil
}

func (ctx *parseContext) parseExpression(node *sitter.Node) (ast.Expression, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: nil expression")
	}
	if opaqueExpressions[node.Kind()] {
		return ctx.raw(node), nil
	}

	switch node.Kind() {
	case "identifier", "undefined":
		return ctx.parseIdentifier(node)
	case "number":
		return ctx.parseNumber(node)
	case "string":
		return ctx.parseString(node)
	case "template_string":
		return ctx.parseTemplate(node)
	case "true", "false":
		lit := ast.Bool(node.Kind() == "true")
		lit.Raw = node.Kind()
		return ctx.annotateExpression(lit, node), nil
	case "null":
		lit := ast.Null()
		lit.Raw = "null"
		return ctx.annotateExpression(lit, node), nil
	case "parenthesized_expression":
		inner, err := ctx.parseExpressionList(namedChildren(node))
		if err != nil {
			return nil, err
		}
		return ctx.annotateExpression(ast.NewParenthesizedExpression(inner), node), nil
	case "sequence_expression":
		var exprs []ast.Expression
		if err := ctx.flattenSequence(node, &exprs); err != nil {
			return nil, err
		}
		return ctx.annotateExpression(ast.NewSequenceExpression(exprs), node), nil
	case "array":
		return ctx.parseArray(node)
	case "object":
		return ctx.parseObject(node)
	case "function_expression", "function", "generator_function":
		return ctx.parseFunctionExpression(node)
	case "class":
		if decorated(node) {
			return ctx.raw(node), nil
		}
		return ctx.parseClass(node)
	case "arrow_function":
		return ctx.parseArrowFunction(node)
	case "call_expression":
		return ctx.parseCall(node)
	case "new_expression":
		return ctx.parseNew(node)
	case "member_expression":
		return ctx.parseMember(node)
	case "subscript_expression":
		object, err := ctx.parseExpression(node.ChildByFieldName("object"))
		if err != nil {
			return nil, err
		}
		index, err := ctx.parseExpression(node.ChildByFieldName("index"))
		if err != nil {
			return nil, err
		}
		member := ast.NewMemberExpression(object, index, true)
		member.Optional = node.ChildByFieldName("optional_chain") != nil
		return ctx.annotateExpression(member, node), nil
	case "assignment_expression":
		return ctx.parseAssignment(node, "=")
	case "augmented_assignment_expression":
		op := node.ChildByFieldName("operator")
		if op == nil {
			return nil, fmt.Errorf("parser: assignment missing operator")
		}
		return ctx.parseAssignment(node, op.Kind())
	case "unary_expression":
		op := node.ChildByFieldName("operator")
		if op == nil {
			return nil, fmt.Errorf("parser: unary expression missing operator")
		}
		arg, err := ctx.parseExpression(node.ChildByFieldName("argument"))
		if err != nil {
			return nil, err
		}
		return ctx.annotateExpression(ast.NewUnaryExpression(op.Kind(), arg), node), nil
	case "update_expression":
		op := node.ChildByFieldName("operator")
		if op == nil {
			return nil, fmt.Errorf("parser: update expression missing operator")
		}
		arg, err := ctx.parseExpression(node.ChildByFieldName("argument"))
		if err != nil {
			return nil, err
		}
		prefix := firstToken(node) == op.Kind()
		return ctx.annotateExpression(ast.NewUpdateExpression(op.Kind(), prefix, arg), node), nil
	case "binary_expression":
		return ctx.parseBinary(node)
	case "ternary_expression":
		test, err := ctx.parseExpression(node.ChildByFieldName("condition"))
		if err != nil {
			return nil, err
		}
		cons, err := ctx.parseExpression(node.ChildByFieldName("consequence"))
		if err != nil {
			return nil, err
		}
		alt, err := ctx.parseExpression(node.ChildByFieldName("alternative"))
		if err != nil {
			return nil, err
		}
		return ctx.annotateExpression(ast.NewConditionalExpression(test, cons, alt), node), nil
	case "await_expression":
		arg, err := ctx.parseExpression(firstNamedChild(node))
		if err != nil {
			return nil, err
		}
		return ctx.annotateExpression(ast.NewAwaitExpression(arg), node), nil
	case "yield_expression":
		var arg ast.Expression
		if child := firstNamedChild(node); child != nil {
			var err error
			arg, err = ctx.parseExpression(child)
			if err != nil {
				return nil, err
			}
		}
		return ctx.annotateExpression(ast.NewYieldExpression(arg, hasToken(node, "*")), node), nil
	case "spread_element":
		arg, err := ctx.parseExpression(firstNamedChild(node))
		if err != nil {
			return nil, err
		}
		return ctx.annotateExpression(ast.NewSpreadElement(arg), node), nil
	}

	r := ctx.raw(node)
	r.Unrecognized = true
	return r, nil
}

func (ctx *parseContext) flattenSequence(node *sitter.Node, out *[]ast.Expression) error {
	for _, child := range namedChildren(node) {
		if child.Kind() == "sequence_expression" {
			if err := ctx.flattenSequence(child, out); err != nil {
				return err
			}
			continue
		}
		expr, err := ctx.parseExpression(child)
		if err != nil {
			return err
		}
		*out = append(*out, expr)
	}
	return nil
}

func (ctx *parseContext) parseBinary(node *sitter.Node) (ast.Expression, error) {
	opNode := node.ChildByFieldName("operator")
	if opNode == nil {
		return nil, fmt.Errorf("parser: binary expression missing operator")
	}
	op := opNode.Kind()
	left, err := ctx.parseExpression(node.ChildByFieldName("left"))
	if err != nil {
		return nil, err
	}
	right, err := ctx.parseExpression(node.ChildByFieldName("right"))
	if err != nil {
		return nil, err
	}
	if logicalOperators[op] {
		return ctx.annotateExpression(ast.NewLogicalExpression(op, left, right), node), nil
	}
	return ctx.annotateExpression(ast.NewBinaryExpression(op, left, right), node), nil
}

func (ctx *parseContext) parseAssignment(node *sitter.Node, op string) (ast.Expression, error) {
	left, err := ctx.parseAssignmentTarget(node.ChildByFieldName("left"))
	if err != nil {
		return nil, err
	}
	right, err := ctx.parseExpression(node.ChildByFieldName("right"))
	if err != nil {
		return nil, err
	}
	return ctx.annotateExpression(ast.NewAssignmentExpression(op, left, right), node), nil
}

func (ctx *parseContext) parseArray(node *sitter.Node) (ast.Expression, error) {
	elements := make([]ast.Expression, 0, node.NamedChildCount())
	pendingHole := true
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || isIgnorableNode(child) {
			continue
		}
		switch {
		case child.Kind() == ",":
			if pendingHole {
				elements = append(elements, nil)
			}
			pendingHole = true
		case child.IsNamed():
			expr, err := ctx.parseExpression(child)
			if err != nil {
				return nil, err
			}
			elements = append(elements, expr)
			pendingHole = false
		}
	}
	return ctx.annotateExpression(ast.NewArrayExpression(elements), node), nil
}

func (ctx *parseContext) parseObject(node *sitter.Node) (ast.Expression, error) {
	props := make([]ast.Node, 0, node.NamedChildCount())
	for _, child := range namedChildren(node) {
		switch child.Kind() {
		case "pair":
			key, computed, err := ctx.parsePropertyKey(child.ChildByFieldName("key"))
			if err != nil {
				return nil, err
			}
			value, err := ctx.parseExpression(child.ChildByFieldName("value"))
			if err != nil {
				return nil, err
			}
			prop := ast.NewProperty(key, value, computed)
			ctx.annotate(prop, child)
			props = append(props, prop)
		case "shorthand_property_identifier":
			key, err := ctx.parseIdentifier(child)
			if err != nil {
				return nil, err
			}
			value, err := ctx.parseIdentifier(child)
			if err != nil {
				return nil, err
			}
			prop := ast.NewProperty(key, value, false)
			prop.Shorthand = true
			ctx.annotate(prop, child)
			props = append(props, prop)
		case "spread_element":
			spread, err := ctx.parseExpression(child)
			if err != nil {
				return nil, err
			}
			props = append(props, spread)
		default:
			props = append(props, ctx.raw(child))
		}
	}
	return ctx.annotateExpression(ast.NewObjectExpression(props), node), nil
}

func (ctx *parseContext) parsePropertyKey(node *sitter.Node) (ast.Expression, bool, error) {
	if node == nil {
		return nil, false, fmt.Errorf("parser: property missing key")
	}
	switch node.Kind() {
	case "property_identifier":
		id, err := ctx.parseIdentifier(node)
		return id, false, err
	case "string":
		lit, err := ctx.parseString(node)
		return lit, false, err
	case "number":
		lit, err := ctx.parseNumber(node)
		return lit, false, err
	case "computed_property_name":
		expr, err := ctx.parseExpressionList(namedChildren(node))
		return expr, true, err
	}
	return ctx.raw(node), false, nil
}

func (ctx *parseContext) parseFunctionExpression(node *sitter.Node) (ast.Expression, error) {
	var name *ast.Identifier
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		var err error
		name, err = ctx.parseIdentifier(nameNode)
		if err != nil {
			return nil, err
		}
	}
	params, err := ctx.parseParameters(node.ChildByFieldName("parameters"))
	if err != nil {
		return nil, err
	}
	body, err := ctx.parseBlock(node.ChildByFieldName("body"))
	if err != nil {
		return nil, err
	}
	fn := ast.NewFunctionExpression(name, params, body)
	fn.Async = hasToken(node, "async")
	fn.Generator = node.Kind() == "generator_function" || hasToken(node, "*")
	return ctx.annotateExpression(fn, node), nil
}

func (ctx *parseContext) parseArrowFunction(node *sitter.Node) (ast.Expression, error) {
	var (
		params []ast.Node
		bare   bool
		err    error
	)
	if single := node.ChildByFieldName("parameter"); single != nil {
		param, err := ctx.parseBindingTarget(single)
		if err != nil {
			return nil, err
		}
		params = []ast.Node{param}
		bare = true
	} else {
		params, err = ctx.parseParameters(node.ChildByFieldName("parameters"))
		if err != nil {
			return nil, err
		}
	}

	bodyNode := node.ChildByFieldName("body")
	var body ast.Node
	if bodyNode != nil && bodyNode.Kind() == "statement_block" {
		body, err = ctx.parseBlock(bodyNode)
	} else {
		body, err = ctx.parseExpression(bodyNode)
	}
	if err != nil {
		return nil, err
	}
	fn := ast.NewArrowFunction(params, body)
	fn.Async = hasToken(node, "async")
	fn.BareParam = bare
	return ctx.annotateExpression(fn, node), nil
}

func (ctx *parseContext) parseArguments(node *sitter.Node) ([]ast.Expression, error) {
	if node == nil {
		return nil, nil
	}
	args := make([]ast.Expression, 0, node.NamedChildCount())
	for _, child := range namedChildren(node) {
		arg, err := ctx.parseExpression(child)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func (ctx *parseContext) parseCall(node *sitter.Node) (ast.Expression, error) {
	argsNode := node.ChildByFieldName("arguments")
	if argsNode != nil && argsNode.Kind() == "template_string" {
		return ctx.raw(node), nil
	}
	callee, err := ctx.parseExpression(node.ChildByFieldName("function"))
	if err != nil {
		return nil, err
	}
	args, err := ctx.parseArguments(argsNode)
	if err != nil {
		return nil, err
	}
	call := ast.NewCallExpression(callee, args)
	call.Optional = node.ChildByFieldName("optional_chain") != nil
	return ctx.annotateExpression(call, node), nil
}

func (ctx *parseContext) parseNew(node *sitter.Node) (ast.Expression, error) {
	callee, err := ctx.parseExpression(node.ChildByFieldName("constructor"))
	if err != nil {
		return nil, err
	}
	args, err := ctx.parseArguments(node.ChildByFieldName("arguments"))
	if err != nil {
		return nil, err
	}
	return ctx.annotateExpression(ast.NewNewExpression(callee, args), node), nil
}

func (ctx *parseContext) parseMember(node *sitter.Node) (ast.Expression, error) {
	propNode := node.ChildByFieldName("property")
	if propNode == nil || propNode.Kind() != "property_identifier" {
		return ctx.raw(node), nil
	}
	object, err := ctx.parseExpression(node.ChildByFieldName("object"))
	if err != nil {
		return nil, err
	}
	prop, err := ctx.parseIdentifier(propNode)
	if err != nil {
		return nil, err
	}
	member := ast.NewMemberExpression(object, prop, false)
	member.Optional = node.ChildByFieldName("optional_chain") != nil
	return ctx.annotateExpression(member, node), nil
}
