package evaluator

import (
	"mytacism/evaluator-go/pkg/ast"
	"mytacism/evaluator-go/pkg/runtime"
)

func (w *walker) control(n ast.Node) (ast.Node, error) {
	switch node := n.(type) {
	case *ast.IfStatement:
		return w.ifStatement(node)
	case *ast.ConditionalExpression:
		return w.conditional(node)
	case *ast.WhileStatement:
		return w.whileStatement(node)
	case *ast.DoWhileStatement:
		return w.doWhile(node)
	case *ast.ForStatement:
		return w.forStatement(node)
	case *ast.ForInStatement:
		return w.forIn(node)
	case *ast.SwitchStatement:
		return w.switchStatement(node)
	}
	return w.unknown(n)
}

// branch reduces one arm of an if statement. Empty statements are left
// alone so they keep their position.
func (w *walker) branch(s ast.Statement) (ast.Statement, error) {
	if _, empty := s.(*ast.EmptyStatement); empty || s == nil {
		return s, nil
	}
	return w.stmt(s)
}

func (w *walker) ifStatement(n *ast.IfStatement) (ast.Node, error) {
	var err error
	if n.Consequent, err = w.branch(n.Consequent); err != nil {
		return nil, err
	}
	if n.Alternate, err = w.branch(n.Alternate); err != nil {
		return nil, err
	}
	if n.Test, err = w.expr(n.Test); err != nil {
		return nil, err
	}
	test, ok := w.static(n.Test)
	if !ok {
		return n, nil
	}
	if runtime.Truthy(test) {
		return n.Consequent, nil
	}
	if n.Alternate == nil {
		return nil, nil
	}
	return n.Alternate, nil
}

func (w *walker) conditional(n *ast.ConditionalExpression) (ast.Node, error) {
	var err error
	if n.Consequent, err = w.expr(n.Consequent); err != nil {
		return nil, err
	}
	if n.Alternate, err = w.expr(n.Alternate); err != nil {
		return nil, err
	}
	if n.Test, err = w.expr(n.Test); err != nil {
		return nil, err
	}
	test, ok := w.static(n.Test)
	if !ok {
		return n, nil
	}
	if runtime.Truthy(test) {
		return n.Consequent, nil
	}
	return n.Alternate, nil
}

// falsy reports whether e is statically known to be falsy.
func (w *walker) falsy(e ast.Expression) bool {
	v, ok := w.static(e)
	return ok && !runtime.Truthy(v)
}

func (w *walker) whileStatement(n *ast.WhileStatement) (ast.Node, error) {
	var err error
	if n.Test, err = w.expr(n.Test); err != nil {
		return nil, err
	}
	if w.falsy(n.Test) {
		return nil, nil
	}
	if n.Body, err = w.stmt(n.Body); err != nil {
		return nil, err
	}
	return n, nil
}

func (w *walker) doWhile(n *ast.DoWhileStatement) (ast.Node, error) {
	var err error
	if n.Body, err = w.stmt(n.Body); err != nil {
		return nil, err
	}
	if n.Test, err = w.expr(n.Test); err != nil {
		return nil, err
	}
	return n, nil
}

// forStatement reduces a loop whose test is statically falsy to its
// initializer, which still runs once.
func (w *walker) forStatement(n *ast.ForStatement) (ast.Node, error) {
	var names []string
	if decl, ok := n.Init.(*ast.VariableDeclaration); ok {
		names = declared(decl)
	}
	defer w.enter(names)()

	switch init := n.Init.(type) {
	case nil:
	case *ast.VariableDeclaration:
		if _, err := w.declaration(init); err != nil {
			return nil, err
		}
	case ast.Expression:
		out, err := w.expr(init)
		if err != nil {
			return nil, err
		}
		n.Init = out
	}

	var err error
	if n.Test, err = w.expr(n.Test); err != nil {
		return nil, err
	}
	if n.Test != nil && w.falsy(n.Test) {
		return w.initializer(n), nil
	}
	if n.Update, err = w.expr(n.Update); err != nil {
		return nil, err
	}
	if n.Body, err = w.stmt(n.Body); err != nil {
		return nil, err
	}
	return n, nil
}

func (w *walker) initializer(n *ast.ForStatement) ast.Node {
	switch init := n.Init.(type) {
	case *ast.VariableDeclaration:
		if init.Kind == "var" {
			return init
		}
		return at(ast.Block(init), n)
	case ast.Expression:
		if pure(init) {
			return nil
		}
		return at(ast.Expr(init), init)
	}
	return nil
}

func (w *walker) forIn(n *ast.ForInStatement) (ast.Node, error) {
	var err error
	if n.Right, err = w.expr(n.Right); err != nil {
		return nil, err
	}
	var names []string
	if n.Kind != "" {
		names = bindingNames(n.Left)
	} else if n.Left, err = w.assignable(n.Left); err != nil {
		return nil, err
	}
	defer w.enter(names)()
	if n.Body, err = w.stmt(n.Body); err != nil {
		return nil, err
	}
	return n, nil
}

// switchStatement collapses a switch on a static discriminant. Cases are
// scanned in source order and the first one that is the default clause or
// whose test is strictly equal starts the match. A case whose test does not
// fold never starts it. From there statements are taken up to the first
// break, falling through later cases.
func (w *walker) switchStatement(n *ast.SwitchStatement) (ast.Node, error) {
	var err error
	if n.Discriminant, err = w.expr(n.Discriminant); err != nil {
		return nil, err
	}
	var names []string
	for _, c := range n.Cases {
		names = append(names, blockNames(c.Consequent)...)
	}
	defer w.enter(names)()
	for _, c := range n.Cases {
		if err := w.switchCase(c); err != nil {
			return nil, err
		}
	}

	disc, ok := w.static(n.Discriminant)
	if !ok {
		return n, nil
	}
	var taken []ast.Statement
	matching := false
collect:
	for _, c := range n.Cases {
		if !matching {
			matching = w.caseMatches(c, disc)
		}
		if !matching {
			continue
		}
		for _, s := range c.Consequent {
			if br, ok := s.(*ast.BreakStatement); ok && br.Label == nil {
				break collect
			}
			if breaksOut(s) {
				return n, nil
			}
			taken = append(taken, s)
		}
	}
	if !matching {
		return nil, nil
	}
	return at(ast.NewBlockStatement(taken), n), nil
}

func (w *walker) caseMatches(c *ast.SwitchCase, disc runtime.Value) bool {
	if c.Test == nil {
		return true
	}
	v, ok := w.static(c.Test)
	return ok && runtime.StrictEquals(disc, v)
}

// breaksOut reports whether s holds an unlabeled break, nested in a
// conditional or block, that would leave the enclosing switch.
func breaksOut(s ast.Statement) bool {
	found := false
	ast.Inspect(s, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.BreakStatement:
			if node.Label == nil {
				found = true
			}
		case *ast.WhileStatement, *ast.DoWhileStatement, *ast.ForStatement, *ast.ForInStatement,
			*ast.SwitchStatement, *ast.FunctionDeclaration, *ast.FunctionExpression, *ast.ArrowFunction:
			return false
		case ast.Expression:
			if _, isBlock := node.(*ast.BlockStatement); !isBlock {
				return false
			}
		}
		return !found
	})
	return found
}
