package evaluator

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"mytacism/evaluator-go/pkg/ast"
	"mytacism/evaluator-go/pkg/runtime"
)

// Macro turns a call site into syntax. It is either a MacroFunc or a
// Template.
type Macro interface {
	isMacro()
}

// MacroFunc builds the replacement for a call. Returning a nil node removes
// the call. The result is copied and then reduced against the context that
// was in effect at the call site.
type MacroFunc func(call *MacroCall) (ast.Node, error)

// Template is macro source in which $0, $1, ... stand for the call's
// reduced arguments.
type Template string

func (MacroFunc) isMacro() {}
func (Template) isMacro()  {}

// MacroCall describes one invocation of a MacroFunc.
type MacroCall struct {
	Name string
	// Args are the argument trees as written, before any reduction. They
	// belong to the call site and must not be modified.
	Args []ast.Expression
	Call *ast.CallExpression

	w *walker
}

// Value reduces a copy of argument i and returns its compile-time value.
func (c *MacroCall) Value(i int) (runtime.Value, bool, error) {
	if i < 0 || i >= len(c.Args) {
		return runtime.Undefined, true, nil
	}
	out, err := c.w.expr(ast.Clone(c.Args[i]))
	if err != nil {
		return nil, false, err
	}
	v, ok := c.w.static(out)
	return v, ok, nil
}

// Compile parses source and reduces it with asts bound as named sub-trees,
// one expansion level deeper than the call.
func (c *MacroCall) Compile(source string, asts map[string]ast.Node) (ast.Node, error) {
	program, err := c.w.ctx.template("macro "+c.Name, source)
	if err != nil {
		return nil, err
	}
	nested := &walker{ctx: c.w.ctx.With(asts), env: c.w.ctx.Values, depth: c.w.depth + 1}
	out, err := nested.walk(program)
	if err != nil {
		return nil, err
	}
	return expansion(out), nil
}

// Logger returns the logger of the evaluation.
func (c *MacroCall) Logger() *zap.Logger {
	return c.w.ctx.Logger
}

func (w *walker) expand(name string, m Macro, call *ast.CallExpression) (ast.Node, error) {
	limit := w.ctx.maxDepth()
	if w.depth+1 > limit {
		return nil, w.fail(ErrMacroExpansionTooDeep, call, "expanding macro %s: more than %d nested expansions", name, limit)
	}
	w.ctx.Logger.Debug("expanding macro",
		zap.String("macro", name),
		zap.Int("depth", w.depth+1),
		zap.Int("line", call.Span().Start.Line))

	var (
		out ast.Node
		err error
	)
	switch macro := m.(type) {
	case MacroFunc:
		out, err = w.expandFunc(name, macro, call)
	case Template:
		out, err = w.expandTemplate(name, macro, call)
	default:
		return nil, w.fail(ErrMacroFailed, call, "macro %s has unsupported type %T", name, m)
	}
	if err != nil || ast.IsNil(out) {
		return nil, err
	}
	return at(out, call), nil
}

func (w *walker) expandFunc(name string, macro MacroFunc, call *ast.CallExpression) (ast.Node, error) {
	if macro == nil {
		return nil, w.fail(ErrMacroFailed, call, "macro %s has no implementation", name)
	}
	res, err := macro(&MacroCall{Name: name, Args: call.Arguments, Call: call, w: w})
	if err != nil {
		var evalErr *Error
		if errors.As(err, &evalErr) {
			return nil, err
		}
		return nil, w.failWith(ErrMacroFailed, err, call, "macro %s", name)
	}
	if ast.IsNil(res) {
		return nil, nil
	}
	nested := &walker{ctx: w.ctx, env: w.env, depth: w.depth + 1}
	out, err := nested.walk(ast.Clone(res))
	if err != nil {
		return nil, err
	}
	return expansion(out), nil
}

func (w *walker) expandTemplate(name string, macro Template, call *ast.CallExpression) (ast.Node, error) {
	bindings := make(map[string]ast.Node, len(call.Arguments))
	for i, arg := range call.Arguments {
		out, err := w.expr(arg)
		if err != nil {
			return nil, err
		}
		call.Arguments[i] = out
		bindings[fmt.Sprintf("$%d", i)] = out
	}
	program, err := w.ctx.template("macro "+name, string(macro))
	if err != nil {
		return nil, w.failWith(ErrMacroFailed, err, call, "macro %s", name)
	}
	nested := &walker{ctx: w.ctx.With(bindings), env: w.ctx.Values, depth: w.depth + 1}
	out, err := nested.walk(program)
	if err != nil {
		return nil, err
	}
	return expansion(out), nil
}

// expansion shapes a reduced macro result for the call site. A program with
// no statements expands to nothing.
func expansion(out ast.Node) ast.Node {
	switch n := out.(type) {
	case nil:
		return nil
	case *ast.Program:
		if len(n.Body) == 0 {
			return nil
		}
		return shape(n.Body)
	case *ast.ExpressionStatement:
		return n.Expression
	}
	return out
}
