package evaluator

import (
	"go.uber.org/zap"

	"mytacism/evaluator-go/pkg/ast"
	"mytacism/evaluator-go/pkg/runtime"
)

func (w *walker) call(n ast.Node) (ast.Node, error) {
	switch node := n.(type) {
	case *ast.CallExpression:
		return w.callExpression(node)
	case *ast.NewExpression:
		return w.newExpression(node)
	}
	return w.unknown(n)
}

// newExpression treats `new f(args)` like `f(args)` when f is a
// compile-time function or macro.
func (w *walker) newExpression(n *ast.NewExpression) (ast.Node, error) {
	if id, ok := n.Callee.(*ast.Identifier); ok {
		call := at(ast.NewCallExpression(id, n.Arguments), n)
		out, handled, err := w.callByName(id, call)
		if handled || err != nil {
			return out, err
		}
	}
	var err error
	if n.Callee, err = w.expr(n.Callee); err != nil {
		return nil, err
	}
	if err := w.arguments(n.Arguments); err != nil {
		return nil, err
	}
	return n, nil
}

// callByName runs the compile-time function or macro bound to callee.
// handled is false when callee names neither.
func (w *walker) callByName(callee *ast.Identifier, n *ast.CallExpression) (ast.Node, bool, error) {
	if w.shadowed(callee.Name) {
		return nil, false, nil
	}
	if fn, ok := w.ctx.Functions[callee.Name]; ok {
		out, err := w.invoke(callee.Name, fn, n, true)
		return out, true, err
	}
	if m, ok := w.ctx.Macros[callee.Name]; ok {
		out, err := w.expand(callee.Name, m, n)
		return out, true, err
	}
	if v, ok := w.lookup(callee.Name); ok {
		if fn, isFunc := v.(runtime.NativeFunctionValue); isFunc {
			out, err := w.invoke(callee.Name, fn, n, true)
			return out, true, err
		}
	}
	return nil, false, nil
}

func (w *walker) callExpression(n *ast.CallExpression) (ast.Node, error) {
	switch callee := n.Callee.(type) {
	case *ast.Identifier:
		out, handled, err := w.callByName(callee, n)
		if handled || err != nil {
			return out, err
		}
	case *ast.MemberExpression:
		return w.methodCall(callee, n)
	}

	var err error
	if n.Callee, err = w.expr(n.Callee); err != nil {
		return nil, err
	}
	if err := w.arguments(n.Arguments); err != nil {
		return nil, err
	}
	return n, nil
}

// methodCall folds receiver.method(args) when the receiver is static and
// the method is a builtin or a function stored in a context object.
func (w *walker) methodCall(m *ast.MemberExpression, n *ast.CallExpression) (ast.Node, error) {
	var err error
	if m.Object, err = w.expr(m.Object); err != nil {
		return nil, err
	}
	if m.Computed {
		if m.Property, err = w.expr(m.Property); err != nil {
			return nil, err
		}
	}
	if recv, ok := w.static(m.Object); ok {
		if key, ok := w.memberKey(m); ok {
			if fn, ok := runtime.Method(recv, key); ok {
				return w.invoke(key, fn, n, isStoredFunction(recv, key))
			}
		}
	}
	callee, err := w.memberFold(m)
	if err != nil {
		return nil, err
	}
	n.Callee = callee
	if err := w.arguments(n.Arguments); err != nil {
		return nil, err
	}
	return n, nil
}

func isStoredFunction(recv runtime.Value, key string) bool {
	obj, ok := recv.(*runtime.ObjectValue)
	if !ok {
		return false
	}
	_, ok = obj.Fields[key].(runtime.NativeFunctionValue)
	return ok
}

func (w *walker) arguments(args []ast.Expression) error {
	for i, a := range args {
		out, err := w.expr(a)
		if err != nil {
			return err
		}
		args[i] = out
	}
	return nil
}

// invoke calls fn at compile time and inlines its result. When strict is
// set an argument that does not fold is an error; otherwise the call is
// left for runtime.
func (w *walker) invoke(name string, fn runtime.NativeFunctionValue, n *ast.CallExpression, strict bool) (ast.Node, error) {
	if err := w.arguments(n.Arguments); err != nil {
		return nil, err
	}
	args := make([]runtime.Value, len(n.Arguments))
	for i, a := range n.Arguments {
		v, ok := w.staticArgument(a)
		if !ok {
			if !strict {
				return n, nil
			}
			return nil, w.fail(ErrNonStaticArguments, a, "argument %d of %s is not static: %s", i, name, describe(a))
		}
		args[i] = v
	}
	out, err := fn.Call(args)
	if err != nil {
		return nil, w.failWith(ErrFunctionFailed, err, n, "calling %s", name)
	}
	lit, ok := w.literal(out, n)
	if !ok {
		return nil, w.fail(ErrUnrepresentableValue, n, "%s returned a %s, which has no literal form", name, out.Kind())
	}
	w.ctx.Logger.Debug("inlined compile-time call",
		zap.String("function", name),
		zap.Int("line", n.Span().Start.Line))
	return lit, nil
}

func (w *walker) staticArgument(a ast.Expression) (runtime.Value, bool) {
	if _, spread := a.(*ast.SpreadElement); spread {
		return nil, false
	}
	return w.static(a)
}

func (w *walker) member(m *ast.MemberExpression) (ast.Node, error) {
	var err error
	if m.Object, err = w.expr(m.Object); err != nil {
		return nil, err
	}
	if m.Computed {
		if m.Property, err = w.expr(m.Property); err != nil {
			return nil, err
		}
	}
	return w.memberFold(m)
}

// memberKey returns the static property name of m.
func (w *walker) memberKey(m *ast.MemberExpression) (string, bool) {
	if !m.Computed {
		id, ok := m.Property.(*ast.Identifier)
		if !ok {
			return "", false
		}
		return id.Name, true
	}
	v, ok := w.static(m.Property)
	if !ok {
		return "", false
	}
	return runtime.PropertyKey(v)
}

// memberFold replaces an access on a static receiver with the property's
// literal value. Object and array receivers must have the property.
func (w *walker) memberFold(m *ast.MemberExpression) (ast.Expression, error) {
	recv, ok := w.static(m.Object)
	if !ok {
		return m, nil
	}
	if m.Optional && nullish(recv) {
		return at(ast.Undefined(), m), nil
	}
	key, ok := w.memberKey(m)
	if !ok {
		return m, nil
	}
	v, found := runtime.Property(recv, key)
	if !found {
		switch recv.(type) {
		case *runtime.ObjectValue, *runtime.ArrayValue:
			if runtime.HasBuiltinMethod(recv, key) {
				return m, nil
			}
			return nil, w.fail(ErrUnknownProperty, m, "property %q does not exist on %s", key, describe(m.Object))
		}
		return m, nil
	}
	if _, isFunc := v.(runtime.NativeFunctionValue); isFunc {
		return nil, w.fail(ErrReferencedNotInvoked, m, "function %s is referenced but not invoked", describe(m))
	}
	if lit, ok := w.literal(v, m); ok {
		return lit, nil
	}
	return m, nil
}
