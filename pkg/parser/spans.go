package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"mytacism/evaluator-go/pkg/ast"
)

func spanFromNode(node *sitter.Node) ast.Span {
	if node == nil {
		return ast.Span{}
	}
	start := node.StartPosition()
	end := node.EndPosition()
	return ast.Span{
		Start: ast.Position{Line: int(start.Row) + 1, Column: int(start.Column) + 1, Offset: int(node.StartByte())},
		End:   ast.Position{Line: int(end.Row) + 1, Column: int(end.Column) + 1, Offset: int(node.EndByte())},
	}
}

// annotate records the span and original bytes of a freshly built node.
func (ctx *parseContext) annotate(node ast.Node, tsNode *sitter.Node) {
	if ast.IsNil(node) || tsNode == nil {
		return
	}
	ast.SetSpan(node, spanFromNode(tsNode))
	ast.SetOrigin(node, ctx.src, int(tsNode.StartByte()), int(tsNode.EndByte()))
}

// annotateRange records the span and bytes from the start of first to the end
// of last, for nodes with no grammar node of their own.
func (ctx *parseContext) annotateRange(node ast.Node, first, last *sitter.Node) {
	if ast.IsNil(node) || first == nil || last == nil {
		return
	}
	span := spanFromNode(first)
	span.End = spanFromNode(last).End
	ast.SetSpan(node, span)
	ast.SetOrigin(node, ctx.src, int(first.StartByte()), int(last.EndByte()))
}

func (ctx *parseContext) annotateStatement(stmt ast.Statement, tsNode *sitter.Node) ast.Statement {
	ctx.annotate(stmt, tsNode)
	return stmt
}

func (ctx *parseContext) annotateExpression(expr ast.Expression, tsNode *sitter.Node) ast.Expression {
	ctx.annotate(expr, tsNode)
	return expr
}
