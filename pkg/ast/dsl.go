package ast

// Shorthand constructors used by the evaluator and tests.

func ID(name string) *Identifier { return NewIdentifier(name) }

func Str(value string) *Literal { return NewLiteral(value) }

func Num(value float64) *Literal { return NewLiteral(value) }

func Bool(value bool) *Literal { return NewLiteral(value) }

func Null() *Literal { return NewLiteral(nil) }

// Undefined is `void 0`, the canonical spelling of undefined.
func Undefined() *UnaryExpression { return NewUnaryExpression("void", Num(0)) }

func Arr(elements ...Expression) *ArrayExpression { return NewArrayExpression(elements) }

func Obj(props ...Node) *ObjectExpression { return NewObjectExpression(props) }

func Prop(key string, value Expression) *Property {
	return NewProperty(Str(key), value, false)
}

func Expr(e Expression) *ExpressionStatement { return NewExpressionStatement(e) }

func Block(body ...Statement) *BlockStatement { return NewBlockStatement(body) }

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}

func Call(callee Expression, args ...Expression) *CallExpression {
	return NewCallExpression(callee, args)
}

func Member(object Expression, name string) *MemberExpression {
	return NewMemberExpression(object, ID(name), false)
}

// IsUndefined reports whether e spells undefined as `void <literal>`.
func IsUndefined(e Node) bool {
	u, ok := e.(*UnaryExpression)
	if !ok || u.Operator != "void" {
		return false
	}
	_, ok = u.Argument.(*Literal)
	return ok
}

// Unparen strips any parentheses around e.
func Unparen(e Expression) Expression {
	for {
		p, ok := e.(*ParenthesizedExpression)
		if !ok || p.Expression == nil {
			return e
		}
		e = p.Expression
	}
}
