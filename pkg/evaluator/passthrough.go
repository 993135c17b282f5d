package evaluator

import (
	"strings"

	"mytacism/evaluator-go/pkg/ast"
	"mytacism/evaluator-go/pkg/runtime"
)

func (w *walker) passthrough(n ast.Node) (ast.Node, error) {
	var err error
	switch node := n.(type) {
	case *ast.ExpressionStatement:
		return w.expressionStatement(node)
	case *ast.ReturnStatement:
		node.Argument, err = w.expr(node.Argument)
	case *ast.ThrowStatement:
		node.Argument, err = w.expr(node.Argument)
	case *ast.YieldExpression:
		node.Argument, err = w.expr(node.Argument)
	case *ast.AwaitExpression:
		node.Argument, err = w.expr(node.Argument)
	case *ast.SpreadElement:
		node.Argument, err = w.expr(node.Argument)
	case *ast.ExportDeclaration:
		var decl ast.Statement
		decl, err = w.stmt(node.Declaration)
		if err == nil && decl != nil {
			node.Declaration = decl
		}
	case *ast.LabeledStatement:
		return w.labeled(node)
	case *ast.SequenceExpression:
		for i, e := range node.Expressions {
			if node.Expressions[i], err = w.expr(e); err != nil {
				return nil, err
			}
		}
	case *ast.ParenthesizedExpression:
		if node.Expression, err = w.expr(node.Expression); err != nil {
			return nil, err
		}
		if lit, ok := node.Expression.(*ast.Literal); ok {
			return at(lit, node), nil
		}
	case *ast.TemplateLiteral:
		return w.template(node)
	default:
		return w.unknown(n)
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// labeled reduces the body of a labeled statement and keeps the label. A
// body that reduces to nothing takes the label with it.
func (w *walker) labeled(n *ast.LabeledStatement) (ast.Node, error) {
	body, err := w.stmt(n.Body)
	if err != nil {
		return nil, err
	}
	if _, empty := body.(*ast.EmptyStatement); empty {
		if _, was := n.Body.(*ast.EmptyStatement); !was {
			return nil, nil
		}
	}
	n.Body = body
	return n, nil
}

// expressionStatement unwraps expansions: a group of statements produced in
// statement position replaces the statement itself.
func (w *walker) expressionStatement(n *ast.ExpressionStatement) (ast.Node, error) {
	out, err := w.walk(n.Expression)
	if err != nil {
		return nil, err
	}
	switch res := out.(type) {
	case nil:
		return nil, nil
	case *ast.BlockStatement:
		if !res.Inline {
			return res, nil
		}
		return ast.NewInlineBlock(res.Body), nil
	case *ast.Program:
		return ast.NewInlineBlock(res.Body), nil
	case *ast.ExpressionStatement:
		return res, nil
	case *ast.Raw:
		if rawStatement(res) {
			return res, nil
		}
		n.Expression = res
	case ast.Expression:
		n.Expression = res
	case ast.Statement:
		return res, nil
	}
	return n, nil
}

// template folds a template literal whose substitutions are all static.
func (w *walker) template(n *ast.TemplateLiteral) (ast.Node, error) {
	values := make([]runtime.Value, len(n.Expressions))
	static := true
	for i, e := range n.Expressions {
		out, err := w.expr(e)
		if err != nil {
			return nil, err
		}
		n.Expressions[i] = out
		v, ok := w.static(out)
		if !ok || !runtime.IsRepresentable(v) {
			static = false
			continue
		}
		values[i] = v
	}
	if !static {
		return n, nil
	}
	var b strings.Builder
	for i, q := range n.Quasis {
		b.WriteString(q)
		if i < len(values) {
			b.WriteString(runtime.ToString(values[i]))
		}
	}
	return at(ast.Str(b.String()), n), nil
}
