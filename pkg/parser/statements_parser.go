package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"mytacism/evaluator-go/pkg/ast"
)

// opaqueStatements are kept verbatim as Raw nodes.
var opaqueStatements = map[string]bool{
	"import_statement":           true,
	"debugger_statement":         true,
	"with_statement":             true,
	"hash_bang_line":             true,
	"using_declaration":          true,
	"abstract_class_declaration": true,
}

func (ctx *parseContext) raw(node *sitter.Node) *ast.Raw {
	r := ast.NewRaw(node.Kind(), sliceContent(node, ctx.source))
	ctx.annotate(r, node)
	return r
}

func (ctx *parseContext) parseStatement(node *sitter.Node) (ast.Statement, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: nil statement")
	}
	if opaqueStatements[node.Kind()] {
		return ctx.raw(node), nil
	}

	switch node.Kind() {
	case "expression_statement":
		expr, err := ctx.parseExpressionList(namedChildren(node))
		if err != nil {
			return nil, err
		}
		return ctx.annotateStatement(ast.NewExpressionStatement(expr), node), nil
	case "empty_statement":
		return ctx.annotateStatement(ast.NewEmptyStatement(), node), nil
	case "statement_block":
		return ctx.parseBlock(node)
	case "variable_declaration", "lexical_declaration":
		return ctx.parseVariableDeclaration(node)
	case "function_declaration", "generator_function_declaration":
		return ctx.parseFunctionDeclaration(node)
	case "if_statement":
		return ctx.parseIfStatement(node)
	case "while_statement":
		test, err := ctx.parseCondition(node.ChildByFieldName("condition"))
		if err != nil {
			return nil, err
		}
		body, err := ctx.parseStatement(node.ChildByFieldName("body"))
		if err != nil {
			return nil, err
		}
		return ctx.annotateStatement(ast.NewWhileStatement(test, body), node), nil
	case "do_statement":
		body, err := ctx.parseStatement(node.ChildByFieldName("body"))
		if err != nil {
			return nil, err
		}
		test, err := ctx.parseCondition(node.ChildByFieldName("condition"))
		if err != nil {
			return nil, err
		}
		return ctx.annotateStatement(ast.NewDoWhileStatement(body, test), node), nil
	case "for_statement":
		return ctx.parseForStatement(node)
	case "for_in_statement":
		return ctx.parseForInStatement(node)
	case "switch_statement":
		return ctx.parseSwitchStatement(node)
	case "try_statement":
		return ctx.parseTryStatement(node)
	case "break_statement":
		label, err := ctx.optionalLabel(node)
		if err != nil {
			return nil, err
		}
		return ctx.annotateStatement(ast.NewBreakStatement(label), node), nil
	case "continue_statement":
		label, err := ctx.optionalLabel(node)
		if err != nil {
			return nil, err
		}
		return ctx.annotateStatement(ast.NewContinueStatement(label), node), nil
	case "return_statement":
		var arg ast.Expression
		if children := namedChildren(node); len(children) > 0 {
			expr, err := ctx.parseExpressionList(children)
			if err != nil {
				return nil, err
			}
			arg = expr
		}
		return ctx.annotateStatement(ast.NewReturnStatement(arg), node), nil
	case "throw_statement":
		expr, err := ctx.parseExpressionList(namedChildren(node))
		if err != nil {
			return nil, err
		}
		return ctx.annotateStatement(ast.NewThrowStatement(expr), node), nil
	case "export_statement":
		return ctx.parseExportStatement(node)
	case "class_declaration":
		if decorated(node) {
			return ctx.raw(node), nil
		}
		return ctx.parseClass(node)
	case "labeled_statement":
		label, err := ctx.optionalLabel(node)
		if err != nil {
			return nil, err
		}
		body, err := ctx.parseStatement(node.ChildByFieldName("body"))
		if err != nil {
			return nil, err
		}
		return ctx.annotateStatement(ast.NewLabeledStatement(label, body), node), nil
	}
	return nil, fmt.Errorf("parser: unsupported statement %q at line %d", node.Kind(), spanFromNode(node).Start.Line)
}

func (ctx *parseContext) parseBlock(node *sitter.Node) (*ast.BlockStatement, error) {
	if node == nil || node.Kind() != "statement_block" {
		return nil, fmt.Errorf("parser: expected block")
	}
	body, err := ctx.parseStatementList(namedChildren(node))
	if err != nil {
		return nil, err
	}
	block := ast.NewBlockStatement(body)
	ctx.annotate(block, node)
	return block, nil
}

// parseCondition unwraps the parenthesized test of if, while and do.
func (ctx *parseContext) parseCondition(node *sitter.Node) (ast.Expression, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: missing condition")
	}
	if node.Kind() == "parenthesized_expression" {
		return ctx.parseExpressionList(namedChildren(node))
	}
	return ctx.parseExpression(node)
}

func (ctx *parseContext) optionalLabel(node *sitter.Node) (*ast.Identifier, error) {
	labelNode := node.ChildByFieldName("label")
	if labelNode == nil {
		return nil, nil
	}
	return ctx.parseIdentifier(labelNode)
}

func (ctx *parseContext) parseIfStatement(node *sitter.Node) (ast.Statement, error) {
	test, err := ctx.parseCondition(node.ChildByFieldName("condition"))
	if err != nil {
		return nil, err
	}
	consequent, err := ctx.parseStatement(node.ChildByFieldName("consequence"))
	if err != nil {
		return nil, err
	}
	var alternate ast.Statement
	if alt := node.ChildByFieldName("alternative"); alt != nil {
		if alt.Kind() == "else_clause" {
			alt = firstNamedChild(alt)
		}
		alternate, err = ctx.parseStatement(alt)
		if err != nil {
			return nil, err
		}
	}
	return ctx.annotateStatement(ast.NewIfStatement(test, consequent, alternate), node), nil
}

func (ctx *parseContext) parseVariableDeclaration(node *sitter.Node) (*ast.VariableDeclaration, error) {
	kind := "var"
	if kindNode := node.ChildByFieldName("kind"); kindNode != nil {
		kind = sliceContent(kindNode, ctx.source)
	} else if node.Kind() == "lexical_declaration" {
		kind = firstToken(node)
	}

	var decls []*ast.VariableDeclarator
	for _, child := range namedChildren(node) {
		if child.Kind() != "variable_declarator" {
			continue
		}
		id, err := ctx.parseBindingTarget(child.ChildByFieldName("name"))
		if err != nil {
			return nil, err
		}
		var init ast.Expression
		if value := child.ChildByFieldName("value"); value != nil {
			init, err = ctx.parseExpression(value)
			if err != nil {
				return nil, err
			}
		}
		decl := ast.NewVariableDeclarator(id, init)
		ctx.annotate(decl, child)
		decls = append(decls, decl)
	}
	if len(decls) == 0 {
		return nil, fmt.Errorf("parser: declaration without declarators")
	}
	out := ast.NewVariableDeclaration(kind, decls)
	ctx.annotate(out, node)
	return out, nil
}

func (ctx *parseContext) parseFunctionDeclaration(node *sitter.Node) (ast.Statement, error) {
	name, err := ctx.parseIdentifier(node.ChildByFieldName("name"))
	if err != nil {
		return nil, err
	}
	params, err := ctx.parseParameters(node.ChildByFieldName("parameters"))
	if err != nil {
		return nil, err
	}
	body, err := ctx.parseBlock(node.ChildByFieldName("body"))
	if err != nil {
		return nil, err
	}
	fn := ast.NewFunctionDeclaration(name, params, body)
	fn.Async = hasToken(node, "async")
	fn.Generator = node.Kind() == "generator_function_declaration" || hasToken(node, "*")
	ctx.annotate(fn, node)
	return fn, nil
}

// parseForStatement accepts both shapes the grammar has used for the loop
// header: clauses wrapped in expression_statement/empty_statement nodes, or
// bare expressions followed by a semicolon token.
func (ctx *parseContext) parseForStatement(node *sitter.Node) (ast.Statement, error) {
	var (
		init   ast.Node
		test   ast.Expression
		update ast.Expression
		err    error
	)

	if initNode := node.ChildByFieldName("initializer"); initNode != nil && initNode.IsNamed() {
		switch initNode.Kind() {
		case "variable_declaration", "lexical_declaration":
			init, err = ctx.parseVariableDeclaration(initNode)
		case "empty_statement":
		case "expression_statement":
			init, err = ctx.parseExpressionList(namedChildren(initNode))
		default:
			init, err = ctx.parseExpression(initNode)
		}
		if err != nil {
			return nil, err
		}
	}
	if condNode := node.ChildByFieldName("condition"); condNode != nil && condNode.IsNamed() {
		switch condNode.Kind() {
		case "empty_statement":
		case "expression_statement":
			test, err = ctx.parseExpressionList(namedChildren(condNode))
		default:
			test, err = ctx.parseExpression(condNode)
		}
		if err != nil {
			return nil, err
		}
	}
	if incNode := node.ChildByFieldName("increment"); incNode != nil {
		update, err = ctx.parseExpression(incNode)
		if err != nil {
			return nil, err
		}
	}
	body, err := ctx.parseStatement(node.ChildByFieldName("body"))
	if err != nil {
		return nil, err
	}
	return ctx.annotateStatement(ast.NewForStatement(init, test, update, body), node), nil
}

func (ctx *parseContext) parseForInStatement(node *sitter.Node) (ast.Statement, error) {
	kind := ""
	if kindNode := node.ChildByFieldName("kind"); kindNode != nil {
		kind = sliceContent(kindNode, ctx.source)
	}
	left, err := ctx.parseBindingTarget(node.ChildByFieldName("left"))
	if err != nil {
		return nil, err
	}
	right, err := ctx.parseExpression(node.ChildByFieldName("right"))
	if err != nil {
		return nil, err
	}
	body, err := ctx.parseStatement(node.ChildByFieldName("body"))
	if err != nil {
		return nil, err
	}
	of := hasToken(node, "of")
	if op := node.ChildByFieldName("operator"); op != nil {
		of = op.Kind() == "of"
	}
	loop := ast.NewForInStatement(kind, left, right, body, of)
	loop.Await = hasToken(node, "await")
	return ctx.annotateStatement(loop, node), nil
}

func (ctx *parseContext) parseSwitchStatement(node *sitter.Node) (ast.Statement, error) {
	disc, err := ctx.parseCondition(node.ChildByFieldName("value"))
	if err != nil {
		return nil, err
	}
	bodyNode := node.ChildByFieldName("body")
	var cases []*ast.SwitchCase
	for _, clause := range namedChildren(bodyNode) {
		var test ast.Expression
		valueNode := clause.ChildByFieldName("value")
		switch clause.Kind() {
		case "switch_case":
			if valueNode == nil {
				return nil, fmt.Errorf("parser: case without value")
			}
			test, err = ctx.parseExpression(valueNode)
			if err != nil {
				return nil, err
			}
		case "switch_default":
		default:
			return nil, fmt.Errorf("parser: unexpected switch clause %q", clause.Kind())
		}
		var stmts []*sitter.Node
		for _, child := range namedChildren(clause) {
			if sameNode(child, valueNode) {
				continue
			}
			stmts = append(stmts, child)
		}
		consequent, err := ctx.parseStatementList(stmts)
		if err != nil {
			return nil, err
		}
		sc := ast.NewSwitchCase(test, consequent)
		ctx.annotate(sc, clause)
		cases = append(cases, sc)
	}
	return ctx.annotateStatement(ast.NewSwitchStatement(disc, cases), node), nil
}

func (ctx *parseContext) parseTryStatement(node *sitter.Node) (ast.Statement, error) {
	block, err := ctx.parseBlock(node.ChildByFieldName("body"))
	if err != nil {
		return nil, err
	}
	var handler *ast.CatchClause
	if h := node.ChildByFieldName("handler"); h != nil {
		var param ast.Node
		if p := h.ChildByFieldName("parameter"); p != nil {
			param, err = ctx.parseBindingTarget(p)
			if err != nil {
				return nil, err
			}
		}
		body, err := ctx.parseBlock(h.ChildByFieldName("body"))
		if err != nil {
			return nil, err
		}
		handler = ast.NewCatchClause(param, body)
		ctx.annotate(handler, h)
	}
	var finalizer *ast.BlockStatement
	if f := node.ChildByFieldName("finalizer"); f != nil {
		finalizer, err = ctx.parseBlock(f.ChildByFieldName("body"))
		if err != nil {
			return nil, err
		}
	}
	return ctx.annotateStatement(ast.NewTryStatement(block, handler, finalizer), node), nil
}

// parseExportStatement models `export <declaration>`; every other export
// form stays opaque.
func (ctx *parseContext) parseExportStatement(node *sitter.Node) (ast.Statement, error) {
	declNode := node.ChildByFieldName("declaration")
	if declNode == nil || hasToken(node, "default") {
		return ctx.raw(node), nil
	}
	decl, err := ctx.parseStatement(declNode)
	if err != nil {
		return nil, err
	}
	return ctx.annotateStatement(ast.NewExportDeclaration(decl), node), nil
}
