package evaluator

import (
	"mytacism/evaluator-go/pkg/ast"
)

func (w *walker) statementList(n ast.Node) (ast.Node, error) {
	var err error
	switch node := n.(type) {
	case *ast.Program:
		defer w.enter(functionNames(node.Body))()
		node.Body, err = w.statements(node.Body)
	case *ast.BlockStatement:
		defer w.enter(blockNames(node.Body))()
		node.Body, err = w.statements(node.Body)
	case *ast.TryStatement:
		err = w.tryStatement(node)
	case *ast.CatchClause:
		err = w.catchClause(node)
	case *ast.SwitchCase:
		err = w.switchCase(node)
	case *ast.Class:
		err = w.class(node)
	default:
		return w.unknown(n)
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// block reduces a braced body in place.
func (w *walker) block(b *ast.BlockStatement) error {
	if b == nil {
		return nil
	}
	_, err := w.statementList(b)
	return err
}

func (w *walker) tryStatement(n *ast.TryStatement) error {
	if err := w.block(n.Block); err != nil {
		return err
	}
	if n.Handler != nil {
		if err := w.catchClause(n.Handler); err != nil {
			return err
		}
	}
	return w.block(n.Finalizer)
}

func (w *walker) catchClause(n *ast.CatchClause) error {
	defer w.enter(bindingNames(n.Param))()
	return w.block(n.Body)
}

func (w *walker) switchCase(n *ast.SwitchCase) error {
	var err error
	if n.Test, err = w.expr(n.Test); err != nil {
		return err
	}
	n.Consequent, err = w.statements(n.Consequent)
	return err
}

// class reduces the heritage clause and every member in a scope where the
// class name hides the context.
func (w *walker) class(n *ast.Class) error {
	var names []string
	if n.Name != nil {
		names = append(names, n.Name.Name)
	}
	defer w.enter(names)()
	var err error
	if n.SuperClass, err = w.expr(n.SuperClass); err != nil {
		return err
	}
	for _, m := range n.Body {
		switch member := m.(type) {
		case *ast.MethodDefinition:
			err = w.method(member)
		case *ast.FieldDefinition:
			err = w.field(member)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
