package evaluator

import (
	"mytacism/evaluator-go/pkg/ast"
	"mytacism/evaluator-go/pkg/runtime"
)

// environmentOperators depend on runtime state and are never folded.
var environmentOperators = map[string]bool{
	"instanceof": true,
}

func (w *walker) operator(n ast.Node) (ast.Node, error) {
	switch node := n.(type) {
	case *ast.UnaryExpression:
		return w.unary(node)
	case *ast.BinaryExpression:
		return w.binary(node)
	case *ast.LogicalExpression:
		return w.logical(node)
	}
	return w.unknown(n)
}

func (w *walker) unary(n *ast.UnaryExpression) (ast.Node, error) {
	var err error
	if n.Argument, err = w.expr(n.Argument); err != nil {
		return nil, err
	}
	if ast.IsUndefined(n) {
		return n, nil
	}
	if !runtime.IsUnaryOperator(n.Operator) {
		w.report(n, "unknown unary operator %q", n.Operator)
		return n, nil
	}
	arg, ok := w.static(n.Argument)
	if !ok {
		return n, nil
	}
	v, ok := runtime.UnaryOp(n.Operator, arg)
	if !ok {
		return n, nil
	}
	if lit, ok := w.literal(v, n); ok {
		return lit, nil
	}
	return n, nil
}

func (w *walker) binary(n *ast.BinaryExpression) (ast.Node, error) {
	var err error
	if n.Left, err = w.expr(n.Left); err != nil {
		return nil, err
	}
	if n.Right, err = w.expr(n.Right); err != nil {
		return nil, err
	}
	if environmentOperators[n.Operator] {
		return n, nil
	}
	if !runtime.IsBinaryOperator(n.Operator) {
		w.report(n, "unknown binary operator %q", n.Operator)
		return n, nil
	}
	left, ok := w.static(n.Left)
	if !ok {
		return n, nil
	}
	right, ok := w.static(n.Right)
	if !ok {
		return n, nil
	}
	v, ok := runtime.BinaryOp(n.Operator, left, right)
	if !ok {
		return n, nil
	}
	if lit, ok := w.literal(v, n); ok {
		return lit, nil
	}
	return n, nil
}
