package printer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"mytacism/evaluator-go/pkg/ast"
	"mytacism/evaluator-go/pkg/runtime"
)

// sub prints child in the slot it occupies under parent.
func (p *printer) sub(parent, child ast.Node) error {
	if ast.IsNil(child) {
		return nil
	}
	if m, ok := parent.(*ast.MethodDefinition); ok && child == ast.Node(m.Value) {
		return p.methodValue(m.Value)
	}
	kind, min := slotOf(parent, child)
	e, isExpr := child.(ast.Expression)
	if !isExpr {
		return p.node(child)
	}
	switch kind {
	case slotExpr:
		return p.operand(parent, e, min)
	case slotStatementExpr:
		return p.statementExpr(e)
	case slotArrowBody:
		return p.arrowBody(e)
	}
	return p.node(child)
}

func (p *printer) operand(parent ast.Node, e ast.Expression, min int) error {
	if b, ok := e.(*ast.BlockStatement); ok {
		return p.blockExpr(b)
	}
	if precedence(e) < min || forceParens(parent, e) {
		p.write("(")
		if err := p.node(e); err != nil {
			return err
		}
		p.write(")")
		return nil
	}
	return p.node(e)
}

func (p *printer) statementExpr(e ast.Expression) error {
	if b, ok := e.(*ast.BlockStatement); ok {
		return p.statementList(b, nil, b.Body, false)
	}
	if startsAmbiguously(e) {
		p.write("(")
		if err := p.node(e); err != nil {
			return err
		}
		p.write(")")
		return nil
	}
	return p.node(e)
}

func (p *printer) arrowBody(e ast.Expression) error {
	if b, ok := e.(*ast.BlockStatement); ok && !b.Inline {
		return p.node(b)
	}
	if startsAmbiguously(e) || precedence(e) < precAssign {
		p.write("(")
		if err := p.node(e); err != nil {
			return err
		}
		p.write(")")
		return nil
	}
	return p.operand(nil, e, precAssign)
}

// blockExpr prints a statement group standing in expression position as a
// parenthesized sequence.
func (p *printer) blockExpr(b *ast.BlockStatement) error {
	stmts := flatten(b.Body)
	if len(stmts) == 0 {
		p.write("void 0")
		return nil
	}
	p.write("(")
	for i, s := range stmts {
		es, ok := s.(*ast.ExpressionStatement)
		if !ok {
			return fmt.Errorf("printer: %s cannot appear in expression position", s.NodeType())
		}
		if i > 0 {
			p.write(", ")
		}
		if err := p.operand(nil, es.Expression, precAssign); err != nil {
			return err
		}
	}
	p.write(")")
	return nil
}

func (p *printer) list(parent ast.Node, items []ast.Expression) error {
	for i, item := range items {
		if i > 0 {
			p.write(", ")
		}
		if err := p.sub(parent, item); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) params(params []ast.Node) error {
	for i, param := range params {
		if i > 0 {
			p.write(", ")
		}
		if err := p.node(param); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) expression(n ast.Node) error {
	switch n := n.(type) {
	case *ast.Identifier:
		p.write(n.Name)
	case *ast.Literal:
		text, err := literalText(n)
		if err != nil {
			return err
		}
		p.write(text)
	case *ast.TemplateLiteral:
		p.write("`")
		for i, q := range n.Quasis {
			p.write(escapeTemplate(q))
			if i < len(n.Expressions) {
				p.write("${")
				if err := p.sub(n, n.Expressions[i]); err != nil {
					return err
				}
				p.write("}")
			}
		}
		p.write("`")
	case *ast.ArrayExpression:
		p.write("[")
		for i, el := range n.Elements {
			if i > 0 {
				p.write(", ")
			}
			if el == nil {
				continue
			}
			if err := p.sub(n, el); err != nil {
				return err
			}
		}
		if len(n.Elements) > 0 && n.Elements[len(n.Elements)-1] == nil {
			p.write(",")
		}
		p.write("]")
	case *ast.ObjectExpression:
		p.write("{")
		for i, prop := range n.Properties {
			if i > 0 {
				p.write(", ")
			}
			if err := p.sub(n, prop); err != nil {
				return err
			}
		}
		p.write("}")
	case *ast.Property:
		return p.property(n)
	case *ast.FunctionExpression:
		if n.Async {
			p.write("async ")
		}
		p.write("function")
		if n.Generator {
			p.write("*")
		}
		if n.Name != nil {
			p.write(" ")
			if err := p.node(n.Name); err != nil {
				return err
			}
		}
		p.write("(")
		if err := p.params(n.Params); err != nil {
			return err
		}
		p.write(") ")
		return p.node(n.Body)
	case *ast.ArrowFunction:
		if n.Async {
			p.write("async ")
		}
		if n.BareParam && len(n.Params) == 1 && isIdentifier(n.Params[0]) {
			if err := p.node(n.Params[0]); err != nil {
				return err
			}
		} else {
			p.write("(")
			if err := p.params(n.Params); err != nil {
				return err
			}
			p.write(")")
		}
		p.write(" => ")
		return p.sub(n, n.Body)
	case *ast.UnaryExpression:
		p.write(n.Operator)
		if isWordOperator(n.Operator) {
			p.write(" ")
		}
		return p.sub(n, n.Argument)
	case *ast.UpdateExpression:
		if n.Prefix {
			p.write(n.Operator)
			return p.sub(n, n.Argument)
		}
		if err := p.sub(n, n.Argument); err != nil {
			return err
		}
		p.write(n.Operator)
	case *ast.BinaryExpression:
		return p.infix(n, n.Left, n.Operator, n.Right)
	case *ast.LogicalExpression:
		return p.infix(n, n.Left, n.Operator, n.Right)
	case *ast.AssignmentExpression:
		return p.infix(n, n.Left, n.Operator, n.Right)
	case *ast.ConditionalExpression:
		if err := p.sub(n, n.Test); err != nil {
			return err
		}
		p.write(" ? ")
		if err := p.sub(n, n.Consequent); err != nil {
			return err
		}
		p.write(" : ")
		return p.sub(n, n.Alternate)
	case *ast.CallExpression:
		if err := p.sub(n, n.Callee); err != nil {
			return err
		}
		if n.Optional {
			p.write("?.")
		}
		p.write("(")
		if err := p.list(n, n.Arguments); err != nil {
			return err
		}
		p.write(")")
	case *ast.NewExpression:
		p.write("new ")
		if err := p.sub(n, n.Callee); err != nil {
			return err
		}
		p.write("(")
		if err := p.list(n, n.Arguments); err != nil {
			return err
		}
		p.write(")")
	case *ast.MemberExpression:
		if err := p.sub(n, n.Object); err != nil {
			return err
		}
		if n.Computed {
			if n.Optional {
				p.write("?.")
			}
			p.write("[")
			if err := p.sub(n, n.Property); err != nil {
				return err
			}
			p.write("]")
			return nil
		}
		if n.Optional {
			p.write("?.")
		} else {
			p.write(".")
		}
		return p.node(n.Property)
	case *ast.SequenceExpression:
		return p.list(n, n.Expressions)
	case *ast.ParenthesizedExpression:
		p.write("(")
		if err := p.sub(n, n.Expression); err != nil {
			return err
		}
		p.write(")")
	case *ast.SpreadElement:
		p.write("...")
		return p.sub(n, n.Argument)
	case *ast.YieldExpression:
		p.write("yield")
		if n.Delegate {
			p.write("*")
		}
		if n.Argument != nil {
			p.write(" ")
			return p.sub(n, n.Argument)
		}
	case *ast.AwaitExpression:
		p.write("await ")
		return p.sub(n, n.Argument)
	default:
		return fmt.Errorf("printer: unsupported node %s", n.NodeType())
	}
	return nil
}

func (p *printer) infix(n ast.Node, left ast.Expression, op string, right ast.Expression) error {
	if err := p.sub(n, left); err != nil {
		return err
	}
	p.write(" " + op + " ")
	return p.sub(n, right)
}

func (p *printer) property(n *ast.Property) error {
	if id, ok := n.Value.(*ast.Identifier); ok && n.Shorthand {
		if key, ok := n.Key.(*ast.Identifier); ok && key.Name == id.Name {
			return p.node(n.Value)
		}
	}
	if n.Computed {
		p.write("[")
		if err := p.sub(n, n.Key); err != nil {
			return err
		}
		p.write("]")
	} else if err := p.node(n.Key); err != nil {
		return err
	}
	p.write(": ")
	return p.sub(n, n.Value)
}

func isIdentifier(n ast.Node) bool {
	_, ok := n.(*ast.Identifier)
	return ok
}

func isWordOperator(op string) bool {
	return op == "typeof" || op == "void" || op == "delete"
}

func literalText(n *ast.Literal) (string, error) {
	switch v := n.Value.(type) {
	case nil:
		return "null", nil
	case bool:
		return strconv.FormatBool(v), nil
	case string:
		return runtime.QuoteString(v), nil
	case float64:
		if v == 0 && math.Signbit(v) {
			return "-0", nil
		}
		return runtime.FormatNumber(v), nil
	}
	if n.Raw != "" {
		return n.Raw, nil
	}
	return "", fmt.Errorf("printer: unsupported literal %T", n.Value)
}

func escapeTemplate(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '`' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '$' && i+1 < len(s) && s[i+1] == '{':
			b.WriteString(`\$`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
