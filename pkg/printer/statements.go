package printer

import (
	"mytacism/evaluator-go/pkg/ast"
)

func (p *printer) canonical(n ast.Node) error {
	switch n := n.(type) {
	case *ast.Program:
		return p.statementList(n, originChildren(n, 0), n.Body, false)
	case *ast.BlockStatement:
		return p.statementList(n, originChildren(n, 0), n.Body, true)
	case *ast.Raw:
		p.write(n.Text)
	case *ast.EmptyStatement:
		p.write(";")
	case *ast.ExpressionStatement:
		if b, ok := n.Expression.(*ast.BlockStatement); ok {
			return p.statementList(b, nil, b.Body, false)
		}
		if err := p.sub(n, n.Expression); err != nil {
			return err
		}
		p.write(";")
	case *ast.IfStatement:
		return p.ifStatement(n)
	case *ast.WhileStatement:
		p.write("while (")
		if err := p.sub(n, n.Test); err != nil {
			return err
		}
		p.write(")")
		return p.body(n.Body)
	case *ast.DoWhileStatement:
		p.write("do")
		if err := p.body(n.Body); err != nil {
			return err
		}
		p.write(" while (")
		if err := p.sub(n, n.Test); err != nil {
			return err
		}
		p.write(");")
	case *ast.ForStatement:
		return p.forStatement(n)
	case *ast.ForInStatement:
		p.write("for ")
		if n.Await {
			p.write("await ")
		}
		p.write("(")
		if n.Kind != "" {
			p.write(n.Kind + " ")
		}
		if err := p.node(n.Left); err != nil {
			return err
		}
		if n.Of {
			p.write(" of ")
		} else {
			p.write(" in ")
		}
		if err := p.sub(n, n.Right); err != nil {
			return err
		}
		p.write(")")
		return p.body(n.Body)
	case *ast.SwitchStatement:
		return p.switchStatement(n)
	case *ast.SwitchCase:
		return p.switchCase(n)
	case *ast.BreakStatement:
		p.write("break")
		if n.Label != nil {
			p.write(" " + n.Label.Name)
		}
		p.write(";")
	case *ast.ContinueStatement:
		p.write("continue")
		if n.Label != nil {
			p.write(" " + n.Label.Name)
		}
		p.write(";")
	case *ast.ReturnStatement:
		p.write("return")
		if n.Argument != nil {
			p.write(" ")
			if err := p.sub(n, n.Argument); err != nil {
				return err
			}
		}
		p.write(";")
	case *ast.ThrowStatement:
		p.write("throw ")
		if err := p.sub(n, n.Argument); err != nil {
			return err
		}
		p.write(";")
	case *ast.TryStatement:
		p.write("try ")
		if err := p.node(n.Block); err != nil {
			return err
		}
		if n.Handler != nil {
			p.write(" ")
			if err := p.node(n.Handler); err != nil {
				return err
			}
		}
		if n.Finalizer != nil {
			p.write(" finally ")
			return p.node(n.Finalizer)
		}
	case *ast.CatchClause:
		p.write("catch ")
		if n.Param != nil {
			p.write("(")
			if err := p.node(n.Param); err != nil {
				return err
			}
			p.write(") ")
		}
		return p.node(n.Body)
	case *ast.VariableDeclaration:
		if err := p.declaration(n); err != nil {
			return err
		}
		p.write(";")
	case *ast.VariableDeclarator:
		if err := p.node(n.ID); err != nil {
			return err
		}
		if n.Init != nil {
			p.write(" = ")
			return p.sub(n, n.Init)
		}
	case *ast.FunctionDeclaration:
		if n.Async {
			p.write("async ")
		}
		p.write("function")
		if n.Generator {
			p.write("*")
		}
		p.write(" ")
		if err := p.node(n.Name); err != nil {
			return err
		}
		p.write("(")
		if err := p.params(n.Params); err != nil {
			return err
		}
		p.write(") ")
		return p.node(n.Body)
	case *ast.ExportDeclaration:
		p.write("export ")
		return p.node(n.Declaration)
	case *ast.LabeledStatement:
		if err := p.node(n.Label); err != nil {
			return err
		}
		p.write(":")
		return p.body(n.Body)
	case *ast.Class:
		return p.class(n)
	case *ast.MethodDefinition:
		return p.method(n)
	case *ast.FieldDefinition:
		if n.Static {
			p.write("static ")
		}
		if err := p.memberKey(n, n.Key, n.Computed); err != nil {
			return err
		}
		if n.Value != nil {
			p.write(" = ")
			if err := p.sub(n, n.Value); err != nil {
				return err
			}
		}
		p.write(";")
	default:
		return p.expression(n)
	}
	return nil
}

func originChildren(n ast.Node, skip int) []ast.Node {
	before := n.Origin().Children()
	if len(before) < skip {
		return nil
	}
	return before[skip:]
}

func (p *printer) declaration(n *ast.VariableDeclaration) error {
	p.write(n.Kind + " ")
	for i, d := range n.Declarations {
		if i > 0 {
			p.write(", ")
		}
		if err := p.node(d); err != nil {
			return err
		}
	}
	return nil
}

// body prints the statement governed by a control header.
func (p *printer) body(s ast.Statement) error {
	if _, ok := s.(*ast.EmptyStatement); ok {
		p.write(";")
		return nil
	}
	p.write(" ")
	return p.node(s)
}

func (p *printer) ifStatement(n *ast.IfStatement) error {
	p.write("if (")
	if err := p.sub(n, n.Test); err != nil {
		return err
	}
	p.write(")")
	cons := n.Consequent
	if n.Alternate != nil && endsWithOpenIf(cons) {
		cons = ast.Block(cons)
	}
	if err := p.body(cons); err != nil {
		return err
	}
	if n.Alternate == nil {
		return nil
	}
	if _, ok := cons.(*ast.BlockStatement); ok {
		p.write(" else")
	} else {
		p.write("\n" + p.indent + "else")
	}
	return p.body(n.Alternate)
}

// endsWithOpenIf reports whether an else after s would bind to an if nested
// inside s.
func endsWithOpenIf(s ast.Statement) bool {
	switch n := s.(type) {
	case *ast.IfStatement:
		if n.Alternate == nil {
			return true
		}
		return endsWithOpenIf(n.Alternate)
	case *ast.WhileStatement:
		return endsWithOpenIf(n.Body)
	case *ast.ForStatement:
		return endsWithOpenIf(n.Body)
	case *ast.ForInStatement:
		return endsWithOpenIf(n.Body)
	}
	return false
}

func (p *printer) forStatement(n *ast.ForStatement) error {
	p.write("for (")
	switch init := n.Init.(type) {
	case nil:
	case *ast.VariableDeclaration:
		if err := p.declaration(init); err != nil {
			return err
		}
	default:
		if err := p.sub(n, init); err != nil {
			return err
		}
	}
	p.write(";")
	if n.Test != nil {
		p.write(" ")
		if err := p.sub(n, n.Test); err != nil {
			return err
		}
	}
	p.write(";")
	if n.Update != nil {
		p.write(" ")
		if err := p.sub(n, n.Update); err != nil {
			return err
		}
	}
	p.write(")")
	return p.body(n.Body)
}

func (p *printer) switchStatement(n *ast.SwitchStatement) error {
	p.write("switch (")
	if err := p.sub(n, n.Discriminant); err != nil {
		return err
	}
	p.write(") {")
	outer := p.indent
	p.indent = outer + p.opts.Indent
	for _, c := range n.Cases {
		p.write("\n" + p.indent)
		if err := p.node(c); err != nil {
			p.indent = outer
			return err
		}
	}
	p.indent = outer
	p.write("\n" + outer + "}")
	return nil
}

func (p *printer) switchCase(n *ast.SwitchCase) error {
	if n.Test == nil {
		p.write("default:")
	} else {
		p.write("case ")
		if err := p.sub(n, n.Test); err != nil {
			return err
		}
		p.write(":")
	}
	outer := p.indent
	p.indent = outer + p.opts.Indent
	defer func() { p.indent = outer }()
	return p.statementList(n, originChildren(n, 1), n.Consequent, false)
}

func (p *printer) class(n *ast.Class) error {
	p.write("class")
	if n.Name != nil {
		p.write(" ")
		if err := p.node(n.Name); err != nil {
			return err
		}
	}
	if n.SuperClass != nil {
		p.write(" extends ")
		if err := p.sub(n, n.SuperClass); err != nil {
			return err
		}
	}
	if len(n.Body) == 0 {
		p.write(" {}")
		return nil
	}
	p.write(" {")
	outer := p.indent
	p.indent = outer + p.opts.Indent
	for _, m := range n.Body {
		p.write("\n" + p.indent)
		if err := p.node(m); err != nil {
			p.indent = outer
			return err
		}
	}
	p.indent = outer
	p.write("\n" + outer + "}")
	return nil
}

func (p *printer) method(n *ast.MethodDefinition) error {
	if n.Static {
		p.write("static ")
	}
	if n.Value != nil && n.Value.Async {
		p.write("async ")
	}
	switch n.Kind {
	case "get", "set":
		p.write(n.Kind + " ")
	}
	if n.Value != nil && n.Value.Generator {
		p.write("*")
	}
	if err := p.memberKey(n, n.Key, n.Computed); err != nil {
		return err
	}
	return p.methodValue(n.Value)
}

// methodValue prints the parameter list and body of a method. The function
// node has no keyword of its own, so it is never printed as a function
// expression.
func (p *printer) methodValue(fn *ast.FunctionExpression) error {
	if fn == nil {
		return nil
	}
	if o := fn.Origin(); o != nil && o.Source != nil {
		if p.isPristine(fn) {
			p.copyOriginal(o.Source, o.Start, o.End)
			return nil
		}
		if patched, err := p.patch(fn); patched || err != nil {
			return err
		}
	}
	p.write("(")
	if err := p.params(fn.Params); err != nil {
		return err
	}
	p.write(") ")
	return p.node(fn.Body)
}

func (p *printer) memberKey(parent, key ast.Node, computed bool) error {
	if !computed {
		return p.node(key)
	}
	p.write("[")
	if err := p.sub(parent, key); err != nil {
		return err
	}
	p.write("]")
	return nil
}
