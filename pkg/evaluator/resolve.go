package evaluator

import (
	"mytacism/evaluator-go/pkg/ast"
	"mytacism/evaluator-go/pkg/runtime"
)

func (w *walker) identifier(id *ast.Identifier) (ast.Node, error) {
	out, ok, err := w.resolveIdentifier(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return id, nil
	}
	return out, nil
}

// resolveIdentifier looks id up in the context. ok is false for runtime-only
// names, which stay as they are. Named sub-trees are already reduced and are
// not walked again.
func (w *walker) resolveIdentifier(id *ast.Identifier) (ast.Node, bool, error) {
	name := id.Name
	if w.shadowed(name) {
		return nil, false, nil
	}
	if _, ok := w.ctx.Functions[name]; ok {
		return nil, false, w.fail(ErrReferencedNotInvoked, id, "function %s is referenced but not invoked", name)
	}
	if _, ok := w.ctx.Macros[name]; ok {
		return nil, false, w.fail(ErrReferencedNotInvoked, id, "macro %s is referenced but not invoked", name)
	}
	if tree, ok := w.ctx.ASTs[name]; ok {
		return at(substitution(ast.Clone(tree)), id), true, nil
	}
	v, ok := w.lookup(name)
	if !ok {
		return nil, false, nil
	}
	if fn, isFunc := v.(runtime.NativeFunctionValue); isFunc {
		return nil, false, w.fail(ErrReferencedNotInvoked, id, "function %s is referenced but not invoked", fn.Name)
	}
	lit, ok := w.literal(v, id)
	if !ok {
		return nil, false, nil
	}
	return lit, true, nil
}

// substitution shapes a named sub-tree for insertion in place of a name: a
// lone expression statement becomes its expression and anything else becomes
// a group that splices into the surrounding statements.
func substitution(tree ast.Node) ast.Node {
	program, ok := tree.(*ast.Program)
	if !ok {
		return tree
	}
	return shape(program.Body)
}

// shape turns a list of statements produced by an expansion into the node
// that replaces the expansion site. An empty list shapes to an empty group.
func shape(body []ast.Statement) ast.Node {
	if len(body) == 1 {
		if es, ok := body[0].(*ast.ExpressionStatement); ok {
			return es.Expression
		}
	}
	return ast.NewInlineBlock(body)
}
