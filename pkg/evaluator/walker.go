package evaluator

import (
	"math"
	"strings"

	"mytacism/evaluator-go/pkg/ast"
	"mytacism/evaluator-go/pkg/runtime"
)

// walker performs one reduction pass. env tracks the lexical scopes entered
// so far; depth counts enclosing macro expansions.
type walker struct {
	ctx   *Context
	env   *runtime.Environment
	depth int
}

// walk reduces n and returns its replacement. A nil result removes the node
// from the enclosing statement list.
func (w *walker) walk(n ast.Node) (ast.Node, error) {
	if ast.IsNil(n) {
		return nil, nil
	}
	switch n.Category() {
	case ast.CategoryLeaf:
		if raw, ok := n.(*ast.Raw); ok && raw.Unrecognized {
			w.report(n, "unrecognized syntax %s left unchanged", raw.Kind)
		}
		return n, nil
	case ast.CategoryPassthrough:
		return w.passthrough(n)
	case ast.CategoryStatementList:
		return w.statementList(n)
	case ast.CategoryOperator:
		return w.operator(n)
	case ast.CategoryControl:
		return w.control(n)
	case ast.CategoryIdentifier:
		return w.identifier(n.(*ast.Identifier))
	case ast.CategoryCall:
		return w.call(n)
	case ast.CategoryMember:
		return w.member(n.(*ast.MemberExpression))
	case ast.CategoryMutation:
		return w.mutation(n)
	case ast.CategoryDeclaration:
		return w.declaration(n)
	}
	return w.unknown(n)
}

func (w *walker) unknown(n ast.Node) (ast.Node, error) {
	w.report(n, "unrecognized node %s left unchanged", n.NodeType())
	return n, nil
}

func (w *walker) report(n ast.Node, format string, args ...any) {
	w.ctx.Diagnostics.Report(w.ctx.Path, n, format, args...)
}

// expr reduces an expression slot. Statements produced by an expansion are
// only accepted when every one of them is an expression statement.
func (w *walker) expr(e ast.Expression) (ast.Expression, error) {
	if ast.IsNil(e) {
		return nil, nil
	}
	out, err := w.walk(e)
	if err != nil {
		return nil, err
	}
	return w.asExpression(e, out)
}

func (w *walker) asExpression(orig, out ast.Node) (ast.Expression, error) {
	switch n := out.(type) {
	case nil:
		return at(ast.Undefined(), orig), nil
	case *ast.ExpressionStatement:
		return n.Expression, nil
	case *ast.BlockStatement:
		body := flattenStatements(n.Body)
		for _, s := range body {
			if _, ok := s.(*ast.ExpressionStatement); !ok {
				return nil, w.fail(ErrInvalidExpansion, orig, "%s expands to a %s where an expression is required", describe(orig), s.NodeType())
			}
		}
		switch len(body) {
		case 0:
			return at(ast.Undefined(), orig), nil
		case 1:
			return body[0].(*ast.ExpressionStatement).Expression, nil
		}
		n.Body = body
		n.Inline = true
		return n, nil
	case *ast.Raw:
		if !rawStatement(n) {
			return n, nil
		}
	case ast.Expression:
		return n, nil
	}
	return nil, w.fail(ErrInvalidExpansion, orig, "%s expands to a %s where an expression is required", describe(orig), out.NodeType())
}

// stmt reduces a slot that holds exactly one statement, such as a loop body.
func (w *walker) stmt(s ast.Statement) (ast.Statement, error) {
	if ast.IsNil(s) {
		return nil, nil
	}
	out, err := w.walk(s)
	if err != nil {
		return nil, err
	}
	if b, ok := out.(*ast.BlockStatement); ok && !b.Inline {
		return b, nil
	}
	list := splice(nil, s, out)
	switch len(list) {
	case 0:
		return at(ast.NewEmptyStatement(), s), nil
	case 1:
		return list[0], nil
	}
	return at(ast.NewBlockStatement(list), s), nil
}

// statements reduces a statement list, dropping removed statements and
// splicing groups into it.
func (w *walker) statements(list []ast.Statement) ([]ast.Statement, error) {
	out := make([]ast.Statement, 0, len(list))
	for _, s := range list {
		res, err := w.walk(s)
		if err != nil {
			return nil, err
		}
		out = splice(out, s, res)
	}
	return out, nil
}

// splice appends the reduction res of statement orig to out.
func splice(out []ast.Statement, orig ast.Statement, res ast.Node) []ast.Statement {
	if ast.IsNil(res) {
		return out
	}
	switch n := res.(type) {
	case *ast.EmptyStatement:
		return out
	case *ast.Program:
		for _, s := range n.Body {
			out = splice(out, s, s)
		}
		return out
	case *ast.BlockStatement:
		replaced := ast.Node(n) != ast.Node(orig)
		if n.Inline || len(n.Body) == 0 || (replaced && scopeSafe(n.Body)) {
			for _, s := range n.Body {
				out = splice(out, s, s)
			}
			return out
		}
		return append(out, n)
	case *ast.ExpressionStatement:
		if b, ok := n.Expression.(*ast.BlockStatement); ok {
			return splice(out, orig, ast.NewInlineBlock(b.Body))
		}
		return append(out, n)
	case ast.Statement:
		return append(out, n)
	case ast.Expression:
		return append(out, at(ast.Expr(n), n))
	}
	return out
}

// rawStatement reports whether an opaque node stands for a statement, such
// as an import, rather than an expression.
func rawStatement(n *ast.Raw) bool {
	return strings.HasSuffix(n.Kind, "_statement") || strings.HasSuffix(n.Kind, "_declaration")
}

func flattenStatements(list []ast.Statement) []ast.Statement {
	return splice(nil, nil, ast.NewInlineBlock(list))
}

// at gives a synthesized node the position of the node it replaces.
func at[T ast.Node](n T, from ast.Node) T {
	if ast.IsNil(from) || n.Span() != (ast.Span{}) {
		return n
	}
	ast.SetSpan(n, from.Span())
	return n
}

// static returns the compile-time value of a reduced expression: a literal,
// a literal aggregate, or a name or member path bound to a value that has
// no literal form, such as an object holding functions.
func (w *walker) static(e ast.Node) (runtime.Value, bool) {
	var id *ast.Identifier
	switch n := e.(type) {
	case *ast.Identifier:
		id = n
	case *ast.ParenthesizedExpression:
		return w.static(n.Expression)
	case *ast.MemberExpression:
		recv, ok := w.static(n.Object)
		if !ok {
			return nil, false
		}
		key, ok := w.memberKey(n)
		if !ok {
			return nil, false
		}
		return runtime.Property(recv, key)
	default:
		return LiteralToValue(e)
	}
	if v, ok := w.lookup(id.Name); ok {
		return v, true
	}
	if w.shadowed(id.Name) {
		return nil, false
	}
	switch id.Name {
	case "undefined":
		return runtime.Undefined, true
	case "NaN":
		return runtime.Number(math.NaN()), true
	case "Infinity":
		return runtime.Number(math.Inf(1)), true
	}
	return nil, false
}

// literal converts a folded value into syntax positioned at from.
func (w *walker) literal(v runtime.Value, from ast.Node) (ast.Expression, bool) {
	node, ok := ValueToNode(v)
	if !ok {
		return nil, false
	}
	return at(node, from), true
}
