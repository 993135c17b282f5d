package evaluator

import (
	"mytacism/evaluator-go/pkg/ast"
	"mytacism/evaluator-go/pkg/runtime"
)

// shortCircuit folds one logical operator. both runs when each side is
// static; fromLeft when only the left side is, and fromRight when only the
// right side is. A probe returns nil when it cannot decide.
type shortCircuit struct {
	both      func(left, right runtime.Value) runtime.Value
	fromLeft  func(n *ast.LogicalExpression, left runtime.Value) ast.Expression
	fromRight func(n *ast.LogicalExpression, right runtime.Value) ast.Expression
}

var logicalOperators = map[string]shortCircuit{
	"&&": {
		both: func(left, right runtime.Value) runtime.Value {
			if !runtime.Truthy(left) {
				return left
			}
			return right
		},
		fromLeft: func(n *ast.LogicalExpression, left runtime.Value) ast.Expression {
			if !runtime.Truthy(left) {
				return n.Left
			}
			return n.Right
		},
		// a && false is falsy whatever a is; a && true is not decidable.
		fromRight: func(n *ast.LogicalExpression, right runtime.Value) ast.Expression {
			if runtime.Truthy(right) || !pure(n.Left) {
				return nil
			}
			return n.Right
		},
	},
	"||": {
		both: func(left, right runtime.Value) runtime.Value {
			if runtime.Truthy(left) {
				return left
			}
			return right
		},
		fromLeft: func(n *ast.LogicalExpression, left runtime.Value) ast.Expression {
			if runtime.Truthy(left) {
				return n.Left
			}
			return n.Right
		},
		fromRight: func(n *ast.LogicalExpression, right runtime.Value) ast.Expression {
			if !runtime.Truthy(right) || !pure(n.Left) {
				return nil
			}
			return n.Right
		},
	},
	"??": {
		both: func(left, right runtime.Value) runtime.Value {
			if nullish(left) {
				return right
			}
			return left
		},
		fromLeft: func(n *ast.LogicalExpression, left runtime.Value) ast.Expression {
			if nullish(left) {
				return n.Right
			}
			return n.Left
		},
		fromRight: func(*ast.LogicalExpression, runtime.Value) ast.Expression {
			return nil
		},
	},
}

func (w *walker) logical(n *ast.LogicalExpression) (ast.Node, error) {
	var err error
	if n.Left, err = w.expr(n.Left); err != nil {
		return nil, err
	}
	if n.Right, err = w.expr(n.Right); err != nil {
		return nil, err
	}
	op, known := logicalOperators[n.Operator]
	if !known {
		w.report(n, "unknown logical operator %q", n.Operator)
		return n, nil
	}
	left, leftOK := w.static(n.Left)
	right, rightOK := w.static(n.Right)
	switch {
	case leftOK && rightOK:
		if lit, ok := w.literal(op.both(left, right), n); ok {
			return lit, nil
		}
	case leftOK:
		return at(op.fromLeft(n, left), n), nil
	case rightOK:
		if out := op.fromRight(n, right); out != nil {
			return at(out, n), nil
		}
	}
	return n, nil
}

func nullish(v runtime.Value) bool {
	switch v.(type) {
	case runtime.NullValue, runtime.UndefinedValue:
		return true
	}
	return false
}

// pure reports whether evaluating e can have no side effects.
func pure(e ast.Expression) bool {
	switch n := e.(type) {
	case *ast.Identifier, *ast.Literal:
		return true
	case *ast.Raw:
		return n.Kind == "this" || n.Kind == "regex"
	case *ast.ParenthesizedExpression:
		return pure(n.Expression)
	case *ast.MemberExpression:
		return pure(n.Object) && (!n.Computed || pure(n.Property))
	case *ast.UnaryExpression:
		return n.Operator != "delete" && pure(n.Argument)
	case *ast.BinaryExpression:
		return pure(n.Left) && pure(n.Right)
	case *ast.LogicalExpression:
		return pure(n.Left) && pure(n.Right)
	}
	return false
}
