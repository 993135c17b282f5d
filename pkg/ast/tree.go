package ast

import "reflect"

// Children returns the direct child slots of node in source order. Empty
// optional slots and array holes appear as nil entries so that two calls on
// an unmodified node return slices of the same length.
func Children(node Node) []Node {
	var out []Node
	add := func(n Node) {
		if isNilNode(n) {
			out = append(out, nil)
			return
		}
		out = append(out, n)
	}
	switch n := node.(type) {
	case *Program:
		for _, s := range n.Body {
			add(s)
		}
	case *BlockStatement:
		for _, s := range n.Body {
			add(s)
		}
	case *ExpressionStatement:
		add(n.Expression)
	case *IfStatement:
		add(n.Test)
		add(n.Consequent)
		add(n.Alternate)
	case *WhileStatement:
		add(n.Test)
		add(n.Body)
	case *DoWhileStatement:
		add(n.Body)
		add(n.Test)
	case *ForStatement:
		add(n.Init)
		add(n.Test)
		add(n.Update)
		add(n.Body)
	case *ForInStatement:
		add(n.Left)
		add(n.Right)
		add(n.Body)
	case *SwitchStatement:
		add(n.Discriminant)
		for _, c := range n.Cases {
			add(c)
		}
	case *SwitchCase:
		add(n.Test)
		for _, s := range n.Consequent {
			add(s)
		}
	case *BreakStatement:
		add(n.Label)
	case *ContinueStatement:
		add(n.Label)
	case *ReturnStatement:
		add(n.Argument)
	case *ThrowStatement:
		add(n.Argument)
	case *TryStatement:
		add(n.Block)
		add(n.Handler)
		add(n.Finalizer)
	case *CatchClause:
		add(n.Param)
		add(n.Body)
	case *VariableDeclaration:
		for _, d := range n.Declarations {
			add(d)
		}
	case *VariableDeclarator:
		add(n.ID)
		add(n.Init)
	case *FunctionDeclaration:
		add(n.Name)
		for _, p := range n.Params {
			add(p)
		}
		add(n.Body)
	case *ExportDeclaration:
		add(n.Declaration)
	case *LabeledStatement:
		add(n.Label)
		add(n.Body)
	case *Class:
		add(n.Name)
		add(n.SuperClass)
		for _, m := range n.Body {
			add(m)
		}
	case *MethodDefinition:
		add(n.Key)
		add(n.Value)
	case *FieldDefinition:
		add(n.Key)
		add(n.Value)
	case *TemplateLiteral:
		for _, e := range n.Expressions {
			add(e)
		}
	case *ArrayExpression:
		for _, e := range n.Elements {
			add(e)
		}
	case *ObjectExpression:
		for _, p := range n.Properties {
			add(p)
		}
	case *Property:
		add(n.Key)
		add(n.Value)
	case *FunctionExpression:
		add(n.Name)
		for _, p := range n.Params {
			add(p)
		}
		add(n.Body)
	case *ArrowFunction:
		for _, p := range n.Params {
			add(p)
		}
		add(n.Body)
	case *UnaryExpression:
		add(n.Argument)
	case *UpdateExpression:
		add(n.Argument)
	case *BinaryExpression:
		add(n.Left)
		add(n.Right)
	case *LogicalExpression:
		add(n.Left)
		add(n.Right)
	case *AssignmentExpression:
		add(n.Left)
		add(n.Right)
	case *ConditionalExpression:
		add(n.Test)
		add(n.Consequent)
		add(n.Alternate)
	case *CallExpression:
		add(n.Callee)
		for _, a := range n.Arguments {
			add(a)
		}
	case *NewExpression:
		add(n.Callee)
		for _, a := range n.Arguments {
			add(a)
		}
	case *MemberExpression:
		add(n.Object)
		add(n.Property)
	case *SequenceExpression:
		for _, e := range n.Expressions {
			add(e)
		}
	case *ParenthesizedExpression:
		add(n.Expression)
	case *SpreadElement:
		add(n.Argument)
	case *YieldExpression:
		add(n.Argument)
	case *AwaitExpression:
		add(n.Argument)
	}
	return out
}

// Inspect walks the tree depth-first, calling fn for each non-nil node. If fn
// returns false the children of that node are skipped.
func Inspect(node Node, fn func(Node) bool) {
	if isNilNode(node) {
		return
	}
	if !fn(node) {
		return
	}
	for _, child := range Children(node) {
		if child != nil {
			Inspect(child, fn)
		}
	}
}

func isNilNode(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// IsNil reports whether n is nil or a typed nil pointer.
func IsNil(n Node) bool {
	return isNilNode(n)
}
