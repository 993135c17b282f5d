package ast

// Clone returns a deep copy of node. Origins are carried over so a clone of
// an untouched subtree still prints as its original text.
func Clone[T Node](node T) T {
	if isNilNode(node) {
		return node
	}
	c := cloner{seen: map[Node]Node{}}
	out := c.node(node)
	c.remapOrigins()
	return out.(T)
}

type cloner struct {
	seen  map[Node]Node
	order []Node
}

func (c *cloner) remapOrigins() {
	for _, orig := range c.order {
		o := orig.Origin()
		if o == nil {
			continue
		}
		copied := &Origin{Source: o.Source, Start: o.Start, End: o.End, sealed: o.sealed}
		if o.sealed {
			copied.children = make([]Node, len(o.children))
			for i, child := range o.children {
				if mapped, ok := c.seen[child]; ok && child != nil {
					copied.children[i] = mapped
				} else {
					copied.children[i] = child
				}
			}
		}
		if s, ok := c.seen[orig].(originSetter); ok {
			s.setOrigin(copied)
		}
	}
}

func (c *cloner) expr(e Expression) Expression {
	if isNilNode(e) {
		return nil
	}
	return c.node(e).(Expression)
}

func (c *cloner) stmt(s Statement) Statement {
	if isNilNode(s) {
		return nil
	}
	return c.node(s).(Statement)
}

func (c *cloner) ident(id *Identifier) *Identifier {
	if id == nil {
		return nil
	}
	return c.node(id).(*Identifier)
}

func (c *cloner) block(b *BlockStatement) *BlockStatement {
	if b == nil {
		return nil
	}
	return c.node(b).(*BlockStatement)
}

func (c *cloner) any(n Node) Node {
	if isNilNode(n) {
		return nil
	}
	return c.node(n)
}

func (c *cloner) stmts(list []Statement) []Statement {
	if list == nil {
		return nil
	}
	out := make([]Statement, len(list))
	for i, s := range list {
		out[i] = c.stmt(s)
	}
	return out
}

func (c *cloner) exprs(list []Expression) []Expression {
	if list == nil {
		return nil
	}
	out := make([]Expression, len(list))
	for i, e := range list {
		out[i] = c.expr(e)
	}
	return out
}

func (c *cloner) nodes(list []Node) []Node {
	if list == nil {
		return nil
	}
	out := make([]Node, len(list))
	for i, n := range list {
		out[i] = c.any(n)
	}
	return out
}

func (c *cloner) node(node Node) Node {
	if existing, ok := c.seen[node]; ok {
		return existing
	}
	var out Node
	switch n := node.(type) {
	case *Program:
		cp := *n
		cp.Body = c.stmts(n.Body)
		out = &cp
	case *BlockStatement:
		cp := *n
		cp.Body = c.stmts(n.Body)
		out = &cp
	case *EmptyStatement:
		cp := *n
		out = &cp
	case *ExpressionStatement:
		cp := *n
		cp.Expression = c.expr(n.Expression)
		out = &cp
	case *IfStatement:
		cp := *n
		cp.Test = c.expr(n.Test)
		cp.Consequent = c.stmt(n.Consequent)
		cp.Alternate = c.stmt(n.Alternate)
		out = &cp
	case *WhileStatement:
		cp := *n
		cp.Test = c.expr(n.Test)
		cp.Body = c.stmt(n.Body)
		out = &cp
	case *DoWhileStatement:
		cp := *n
		cp.Body = c.stmt(n.Body)
		cp.Test = c.expr(n.Test)
		out = &cp
	case *ForStatement:
		cp := *n
		cp.Init = c.any(n.Init)
		cp.Test = c.expr(n.Test)
		cp.Update = c.expr(n.Update)
		cp.Body = c.stmt(n.Body)
		out = &cp
	case *ForInStatement:
		cp := *n
		cp.Left = c.any(n.Left)
		cp.Right = c.expr(n.Right)
		cp.Body = c.stmt(n.Body)
		out = &cp
	case *SwitchStatement:
		cp := *n
		cp.Discriminant = c.expr(n.Discriminant)
		if n.Cases != nil {
			cp.Cases = make([]*SwitchCase, len(n.Cases))
			for i, sc := range n.Cases {
				if sc != nil {
					cp.Cases[i] = c.node(sc).(*SwitchCase)
				}
			}
		}
		out = &cp
	case *SwitchCase:
		cp := *n
		cp.Test = c.expr(n.Test)
		cp.Consequent = c.stmts(n.Consequent)
		out = &cp
	case *BreakStatement:
		cp := *n
		cp.Label = c.ident(n.Label)
		out = &cp
	case *ContinueStatement:
		cp := *n
		cp.Label = c.ident(n.Label)
		out = &cp
	case *ReturnStatement:
		cp := *n
		cp.Argument = c.expr(n.Argument)
		out = &cp
	case *ThrowStatement:
		cp := *n
		cp.Argument = c.expr(n.Argument)
		out = &cp
	case *TryStatement:
		cp := *n
		cp.Block = c.block(n.Block)
		if n.Handler != nil {
			cp.Handler = c.node(n.Handler).(*CatchClause)
		}
		cp.Finalizer = c.block(n.Finalizer)
		out = &cp
	case *CatchClause:
		cp := *n
		cp.Param = c.any(n.Param)
		cp.Body = c.block(n.Body)
		out = &cp
	case *VariableDeclaration:
		cp := *n
		if n.Declarations != nil {
			cp.Declarations = make([]*VariableDeclarator, len(n.Declarations))
			for i, d := range n.Declarations {
				if d != nil {
					cp.Declarations[i] = c.node(d).(*VariableDeclarator)
				}
			}
		}
		out = &cp
	case *VariableDeclarator:
		cp := *n
		cp.ID = c.any(n.ID)
		cp.Init = c.expr(n.Init)
		out = &cp
	case *FunctionDeclaration:
		cp := *n
		cp.Name = c.ident(n.Name)
		cp.Params = c.nodes(n.Params)
		cp.Body = c.block(n.Body)
		out = &cp
	case *ExportDeclaration:
		cp := *n
		cp.Declaration = c.stmt(n.Declaration)
		out = &cp
	case *LabeledStatement:
		cp := *n
		cp.Label = c.ident(n.Label)
		cp.Body = c.stmt(n.Body)
		out = &cp
	case *Class:
		cp := *n
		cp.Name = c.ident(n.Name)
		cp.SuperClass = c.expr(n.SuperClass)
		cp.Body = c.nodes(n.Body)
		out = &cp
	case *MethodDefinition:
		cp := *n
		cp.Key = c.expr(n.Key)
		if n.Value != nil {
			cp.Value = c.node(n.Value).(*FunctionExpression)
		}
		out = &cp
	case *FieldDefinition:
		cp := *n
		cp.Key = c.expr(n.Key)
		cp.Value = c.expr(n.Value)
		out = &cp
	case *Identifier:
		cp := *n
		out = &cp
	case *Literal:
		cp := *n
		out = &cp
	case *TemplateLiteral:
		cp := *n
		cp.Quasis = append([]string(nil), n.Quasis...)
		cp.Expressions = c.exprs(n.Expressions)
		out = &cp
	case *ArrayExpression:
		cp := *n
		cp.Elements = c.exprs(n.Elements)
		out = &cp
	case *ObjectExpression:
		cp := *n
		cp.Properties = c.nodes(n.Properties)
		out = &cp
	case *Property:
		cp := *n
		cp.Key = c.expr(n.Key)
		cp.Value = c.expr(n.Value)
		out = &cp
	case *FunctionExpression:
		cp := *n
		cp.Name = c.ident(n.Name)
		cp.Params = c.nodes(n.Params)
		cp.Body = c.block(n.Body)
		out = &cp
	case *ArrowFunction:
		cp := *n
		cp.Params = c.nodes(n.Params)
		cp.Body = c.any(n.Body)
		out = &cp
	case *UnaryExpression:
		cp := *n
		cp.Argument = c.expr(n.Argument)
		out = &cp
	case *UpdateExpression:
		cp := *n
		cp.Argument = c.expr(n.Argument)
		out = &cp
	case *BinaryExpression:
		cp := *n
		cp.Left = c.expr(n.Left)
		cp.Right = c.expr(n.Right)
		out = &cp
	case *LogicalExpression:
		cp := *n
		cp.Left = c.expr(n.Left)
		cp.Right = c.expr(n.Right)
		out = &cp
	case *AssignmentExpression:
		cp := *n
		cp.Left = c.expr(n.Left)
		cp.Right = c.expr(n.Right)
		out = &cp
	case *ConditionalExpression:
		cp := *n
		cp.Test = c.expr(n.Test)
		cp.Consequent = c.expr(n.Consequent)
		cp.Alternate = c.expr(n.Alternate)
		out = &cp
	case *CallExpression:
		cp := *n
		cp.Callee = c.expr(n.Callee)
		cp.Arguments = c.exprs(n.Arguments)
		out = &cp
	case *NewExpression:
		cp := *n
		cp.Callee = c.expr(n.Callee)
		cp.Arguments = c.exprs(n.Arguments)
		out = &cp
	case *MemberExpression:
		cp := *n
		cp.Object = c.expr(n.Object)
		cp.Property = c.expr(n.Property)
		out = &cp
	case *SequenceExpression:
		cp := *n
		cp.Expressions = c.exprs(n.Expressions)
		out = &cp
	case *ParenthesizedExpression:
		cp := *n
		cp.Expression = c.expr(n.Expression)
		out = &cp
	case *SpreadElement:
		cp := *n
		cp.Argument = c.expr(n.Argument)
		out = &cp
	case *YieldExpression:
		cp := *n
		cp.Argument = c.expr(n.Argument)
		out = &cp
	case *AwaitExpression:
		cp := *n
		cp.Argument = c.expr(n.Argument)
		out = &cp
	case *Raw:
		cp := *n
		out = &cp
	default:
		return node
	}
	c.seen[node] = out
	c.order = append(c.order, node)
	return out
}
