package evaluator

import (
	"mytacism/evaluator-go/pkg/ast"
	"mytacism/evaluator-go/pkg/runtime"
)

// ValueToNode builds the literal syntax for v. Objects get string keys in
// sorted order and undefined is spelled `void 0`. ok is false when v holds a
// function anywhere.
func ValueToNode(v runtime.Value) (ast.Expression, bool) {
	switch val := v.(type) {
	case nil, runtime.UndefinedValue:
		return ast.Undefined(), true
	case runtime.NullValue:
		return ast.Null(), true
	case runtime.BoolValue:
		return ast.Bool(val.Val), true
	case runtime.NumberValue:
		return ast.Num(val.Val), true
	case runtime.StringValue:
		return ast.Str(val.Val), true
	case *runtime.ArrayValue:
		elems := make([]ast.Expression, len(val.Elements))
		for i, el := range val.Elements {
			node, ok := ValueToNode(el)
			if !ok {
				return nil, false
			}
			elems[i] = node
		}
		return ast.Arr(elems...), true
	case *runtime.ObjectValue:
		props := make([]ast.Node, 0, len(val.Fields))
		for _, key := range val.Keys() {
			node, ok := ValueToNode(val.Fields[key])
			if !ok {
				return nil, false
			}
			props = append(props, ast.Prop(key, node))
		}
		return ast.Obj(props...), true
	}
	return nil, false
}

// LiteralToValue reads the value of a literal or fully literal aggregate.
// ok is false for anything whose value is not fixed by the syntax alone.
func LiteralToValue(n ast.Node) (runtime.Value, bool) {
	switch node := n.(type) {
	case *ast.Literal:
		switch v := node.Value.(type) {
		case nil:
			return runtime.Null, true
		case bool:
			return runtime.Bool(v), true
		case float64:
			return runtime.Number(v), true
		case string:
			return runtime.String(v), true
		}
	case *ast.ExpressionStatement:
		return LiteralToValue(node.Expression)
	case *ast.ParenthesizedExpression:
		return LiteralToValue(node.Expression)
	case *ast.UnaryExpression:
		if ast.IsUndefined(node) {
			return runtime.Undefined, true
		}
	case *ast.ArrayExpression:
		elems := make([]runtime.Value, len(node.Elements))
		for i, el := range node.Elements {
			if el == nil {
				return nil, false
			}
			v, ok := LiteralToValue(el)
			if !ok {
				return nil, false
			}
			elems[i] = v
		}
		return runtime.NewArray(elems...), true
	case *ast.ObjectExpression:
		fields := make(map[string]runtime.Value, len(node.Properties))
		for _, p := range node.Properties {
			prop, ok := p.(*ast.Property)
			if !ok {
				return nil, false
			}
			key, ok := propertyName(prop)
			if !ok {
				return nil, false
			}
			v, ok := LiteralToValue(prop.Value)
			if !ok {
				return nil, false
			}
			fields[key] = v
		}
		return runtime.NewObject(fields), true
	}
	return nil, false
}

// propertyName returns the static key of an object property.
func propertyName(p *ast.Property) (string, bool) {
	if id, ok := p.Key.(*ast.Identifier); ok && !p.Computed {
		return id.Name, true
	}
	v, ok := LiteralToValue(p.Key)
	if !ok {
		return "", false
	}
	return runtime.PropertyKey(v)
}

// isLiteral reports whether n is a literal or fully literal aggregate.
func isLiteral(n ast.Node) bool {
	_, ok := LiteralToValue(n)
	return ok
}

// isAggregate reports whether n, ignoring parentheses, is an object or
// array literal.
func isAggregate(n ast.Node) bool {
	if e, ok := n.(ast.Expression); ok {
		n = ast.Unparen(e)
	}
	switch n.(type) {
	case *ast.ObjectExpression, *ast.ArrayExpression:
		return true
	}
	return false
}
