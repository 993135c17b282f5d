package evaluator

import (
	"mytacism/evaluator-go/pkg/ast"
)

// write describes one kind of write for error reporting.
type write struct {
	kind error
	verb string
}

var (
	assignWrite = write{ErrInvalidAssignmentTarget, "assign to"}
	updateWrite = write{ErrInvalidAssignmentTarget, "mutate"}
	deleteWrite = write{ErrInvalidDeleteTarget, "delete"}
)

func (w *walker) mutation(n ast.Node) (ast.Node, error) {
	var err error
	switch node := n.(type) {
	case *ast.AssignmentExpression:
		if node.Right, err = w.expr(node.Right); err != nil {
			return nil, err
		}
		node.Left, err = w.target(node.Left, assignWrite)
	case *ast.UpdateExpression:
		node.Argument, err = w.target(node.Argument, updateWrite)
	case *ast.UnaryExpression:
		if node.Operator != "delete" {
			return w.operator(node)
		}
		node.Argument, err = w.target(node.Argument, deleteWrite)
	default:
		return w.unknown(n)
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// target checks that t names runtime storage. Names bound in the context
// and properties of compile-time values are rejected.
func (w *walker) target(t ast.Expression, op write) (ast.Expression, error) {
	switch n := t.(type) {
	case *ast.ParenthesizedExpression:
		inner, err := w.target(n.Expression, op)
		if err != nil {
			return nil, err
		}
		n.Expression = inner
		return n, nil
	case *ast.Identifier:
		if w.bound(n.Name) {
			return nil, w.fail(op.kind, n, "can't %s compile-time constant %s", op.verb, n.Name)
		}
		return n, nil
	case *ast.MemberExpression:
		return w.memberTarget(n, op)
	case *ast.Raw:
		for _, name := range n.Bindings {
			if w.bound(name) {
				return nil, w.fail(op.kind, n, "can't %s compile-time constant %s", op.verb, name)
			}
		}
		return n, nil
	}
	return nil, w.fail(op.kind, t, "can't %s %s", op.verb, describe(t))
}

func (w *walker) memberTarget(m *ast.MemberExpression, op write) (ast.Expression, error) {
	var err error
	if m.Object, err = w.expr(m.Object); err != nil {
		return nil, err
	}
	if m.Computed {
		if m.Property, err = w.expr(m.Property); err != nil {
			return nil, err
		}
	}
	if _, ok := w.static(m.Object); ok {
		return nil, w.fail(ErrConstantMutation, m, "can't %s a property of compile-time constant %s; copy it into a variable first", op.verb, describe(m.Object))
	}
	return m, nil
}

// bound reports whether name refers to a compile-time binding in scope.
func (w *walker) bound(name string) bool {
	if w.shadowed(name) {
		return false
	}
	if _, ok := w.ctx.Functions[name]; ok {
		return true
	}
	if _, ok := w.ctx.Macros[name]; ok {
		return true
	}
	if _, ok := w.ctx.ASTs[name]; ok {
		return true
	}
	_, ok := w.lookup(name)
	return ok
}

// assignable checks the left side of a for-in or for-of loop that assigns
// to an existing target.
func (w *walker) assignable(left ast.Node) (ast.Node, error) {
	e, ok := left.(ast.Expression)
	if !ok {
		return left, nil
	}
	return w.target(e, assignWrite)
}
