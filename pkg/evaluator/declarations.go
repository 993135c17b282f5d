package evaluator

import (
	"mytacism/evaluator-go/pkg/ast"
)

func (w *walker) declaration(n ast.Node) (ast.Node, error) {
	var err error
	switch node := n.(type) {
	case *ast.VariableDeclaration:
		for _, d := range node.Declarations {
			if err = w.declarator(d); err != nil {
				return nil, err
			}
		}
	case *ast.VariableDeclarator:
		err = w.declarator(node)
	case *ast.FunctionDeclaration:
		err = w.function(node.Name, node.Params, node.Body)
	case *ast.FunctionExpression:
		err = w.function(node.Name, node.Params, node.Body)
	case *ast.ArrowFunction:
		err = w.arrow(node)
	case *ast.ArrayExpression:
		for i, el := range node.Elements {
			if node.Elements[i], err = w.expr(el); err != nil {
				return nil, err
			}
		}
	case *ast.ObjectExpression:
		err = w.object(node)
	case *ast.Property:
		err = w.property(node)
	case *ast.MethodDefinition:
		err = w.method(node)
	case *ast.FieldDefinition:
		err = w.field(node)
	default:
		return w.unknown(n)
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// declarator reduces the initializer only; the binding target is a name
// being introduced, not a use.
func (w *walker) declarator(d *ast.VariableDeclarator) error {
	var err error
	d.Init, err = w.expr(d.Init)
	return err
}

// function reduces a function body in a scope where its name, parameters
// and local declarations hide the context.
func (w *walker) function(name *ast.Identifier, params []ast.Node, body *ast.BlockStatement) error {
	names := paramNames(params)
	if name != nil {
		names = append(names, name.Name)
	}
	if body == nil {
		return nil
	}
	names = append(names, functionNames(body.Body)...)
	defer w.enter(names)()
	var err error
	body.Body, err = w.statements(body.Body)
	return err
}

func (w *walker) arrow(n *ast.ArrowFunction) error {
	if body, ok := n.Body.(*ast.BlockStatement); ok {
		return w.function(nil, n.Params, body)
	}
	defer w.enter(paramNames(n.Params))()
	body, ok := n.Body.(ast.Expression)
	if !ok {
		return nil
	}
	out, err := w.expr(body)
	if err != nil {
		return err
	}
	n.Body = out
	return nil
}

func (w *walker) object(n *ast.ObjectExpression) error {
	for _, p := range n.Properties {
		var err error
		switch prop := p.(type) {
		case *ast.Property:
			err = w.property(prop)
		case *ast.SpreadElement:
			prop.Argument, err = w.expr(prop.Argument)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) property(p *ast.Property) error {
	var err error
	if p.Computed {
		if p.Key, err = w.expr(p.Key); err != nil {
			return err
		}
	}
	before := p.Value
	if p.Value, err = w.expr(p.Value); err != nil {
		return err
	}
	if p.Value != before {
		p.Shorthand = false
	}
	return nil
}

// method reduces a computed key and the method body. Methods have no name
// binding of their own.
func (w *walker) method(m *ast.MethodDefinition) error {
	var err error
	if m.Computed {
		if m.Key, err = w.expr(m.Key); err != nil {
			return err
		}
	}
	if m.Value == nil {
		return nil
	}
	return w.function(nil, m.Value.Params, m.Value.Body)
}

func (w *walker) field(f *ast.FieldDefinition) error {
	var err error
	if f.Computed {
		if f.Key, err = w.expr(f.Key); err != nil {
			return err
		}
	}
	f.Value, err = w.expr(f.Value)
	return err
}
