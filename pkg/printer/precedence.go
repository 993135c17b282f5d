package printer

import (
	"math"
	"strings"

	"mytacism/evaluator-go/pkg/ast"
)

const (
	precLowest = iota
	precSequence
	precAssign
	precConditional
	precNullish
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precCompare
	precShift
	precAdd
	precMul
	precExp
	precPrefix
	precPostfix
	precCall
	precPrimary
)

var binaryPrecedence = map[string]int{
	"??":         precNullish,
	"||":         precOr,
	"&&":         precAnd,
	"|":          precBitOr,
	"^":          precBitXor,
	"&":          precBitAnd,
	"==":         precEquality,
	"!=":         precEquality,
	"===":        precEquality,
	"!==":        precEquality,
	"<":          precCompare,
	">":          precCompare,
	"<=":         precCompare,
	">=":         precCompare,
	"in":         precCompare,
	"instanceof": precCompare,
	"<<":         precShift,
	">>":         precShift,
	">>>":        precShift,
	"+":          precAdd,
	"-":          precAdd,
	"*":          precMul,
	"/":          precMul,
	"%":          precMul,
	"**":         precExp,
}

func precedence(n ast.Node) int {
	switch n := n.(type) {
	case *ast.SequenceExpression:
		return precSequence
	case *ast.AssignmentExpression, *ast.ArrowFunction, *ast.YieldExpression, *ast.SpreadElement:
		return precAssign
	case *ast.ConditionalExpression:
		return precConditional
	case *ast.BinaryExpression:
		return binaryPrecedence[n.Operator]
	case *ast.LogicalExpression:
		return binaryPrecedence[n.Operator]
	case *ast.UnaryExpression, *ast.AwaitExpression:
		return precPrefix
	case *ast.UpdateExpression:
		if n.Prefix {
			return precPrefix
		}
		return precPostfix
	case *ast.CallExpression, *ast.NewExpression, *ast.MemberExpression:
		return precCall
	case *ast.Literal:
		if f, ok := n.Value.(float64); ok && math.Signbit(f) && !math.IsNaN(f) {
			return precPrefix
		}
	}
	return precPrimary
}

type slotKind int

const (
	slotNode slotKind = iota
	slotExpr
	slotStatementExpr
	slotArrowBody
)

// slotOf describes how child must be printed inside parent: as a plain
// node, or as an expression operand needing at least the returned
// precedence.
func slotOf(parent, child ast.Node) (slotKind, int) {
	switch n := parent.(type) {
	case *ast.ExpressionStatement:
		return slotStatementExpr, precSequence
	case *ast.ArrowFunction:
		if child == n.Body {
			return slotArrowBody, precAssign
		}
	case *ast.BinaryExpression:
		return slotExpr, operandPrecedence(n.Operator, child == ast.Node(n.Left))
	case *ast.LogicalExpression:
		return slotExpr, operandPrecedence(n.Operator, child == ast.Node(n.Left))
	case *ast.AssignmentExpression:
		if child == ast.Node(n.Left) {
			return slotExpr, precPostfix
		}
		return slotExpr, precAssign
	case *ast.ConditionalExpression:
		if child == ast.Node(n.Test) {
			return slotExpr, precNullish
		}
		return slotExpr, precAssign
	case *ast.UnaryExpression, *ast.AwaitExpression:
		return slotExpr, precPrefix
	case *ast.UpdateExpression:
		return slotExpr, precPostfix
	case *ast.CallExpression:
		if child == ast.Node(n.Callee) {
			return slotExpr, precCall
		}
		return slotExpr, precAssign
	case *ast.NewExpression:
		if child == ast.Node(n.Callee) {
			return slotExpr, precCall
		}
		return slotExpr, precAssign
	case *ast.MemberExpression:
		if child == ast.Node(n.Object) {
			return slotExpr, precCall
		}
		if n.Computed {
			return slotExpr, precSequence
		}
	case *ast.SequenceExpression, *ast.ArrayExpression, *ast.SpreadElement, *ast.YieldExpression:
		return slotExpr, precAssign
	case *ast.ParenthesizedExpression, *ast.TemplateLiteral, *ast.ReturnStatement, *ast.ThrowStatement:
		return slotExpr, precSequence
	case *ast.IfStatement:
		if child == ast.Node(n.Test) {
			return slotExpr, precSequence
		}
	case *ast.WhileStatement:
		if child == ast.Node(n.Test) {
			return slotExpr, precSequence
		}
	case *ast.DoWhileStatement:
		if child == ast.Node(n.Test) {
			return slotExpr, precSequence
		}
	case *ast.ForStatement:
		if child != ast.Node(n.Body) {
			if _, ok := child.(*ast.VariableDeclaration); !ok {
				return slotExpr, precSequence
			}
		}
	case *ast.ForInStatement:
		if child == ast.Node(n.Right) {
			if n.Of {
				return slotExpr, precAssign
			}
			return slotExpr, precSequence
		}
	case *ast.SwitchStatement:
		if child == ast.Node(n.Discriminant) {
			return slotExpr, precSequence
		}
	case *ast.SwitchCase:
		if child == ast.Node(n.Test) {
			return slotExpr, precSequence
		}
	case *ast.VariableDeclarator:
		if child == ast.Node(n.Init) {
			return slotExpr, precAssign
		}
	case *ast.Property:
		if child == ast.Node(n.Value) || n.Computed {
			return slotExpr, precAssign
		}
	case *ast.FieldDefinition:
		if child == ast.Node(n.Value) || n.Computed {
			return slotExpr, precAssign
		}
	case *ast.MethodDefinition:
		if n.Computed {
			return slotExpr, precAssign
		}
	case *ast.Class:
		if child == ast.Node(n.SuperClass) {
			return slotExpr, precCall
		}
	}
	return slotNode, precLowest
}

func operandPrecedence(op string, left bool) int {
	prec := binaryPrecedence[op]
	switch {
	case op == "??":
		return precBitOr
	case op == "**" && left:
		return precPostfix
	case op == "**":
		return precExp
	case left:
		return prec
	default:
		return prec + 1
	}
}

// forceParens covers the operands that need parentheses for reasons other
// than precedence.
func forceParens(parent ast.Node, child ast.Expression) bool {
	switch n := parent.(type) {
	case *ast.UnaryExpression:
		if n.Operator == "-" || n.Operator == "+" {
			return leadingSign(child) == n.Operator[0]
		}
	case *ast.MemberExpression:
		if child == n.Object {
			if lit, ok := child.(*ast.Literal); ok {
				_, isNumber := lit.Value.(float64)
				return isNumber
			}
		}
	case *ast.NewExpression:
		if child == n.Callee {
			return containsCall(child)
		}
	}
	return false
}

func leadingSign(e ast.Expression) byte {
	switch n := e.(type) {
	case *ast.UnaryExpression:
		if n.Operator == "-" || n.Operator == "+" {
			return n.Operator[0]
		}
	case *ast.UpdateExpression:
		if n.Prefix {
			return n.Operator[0]
		}
	case *ast.Literal:
		if f, ok := n.Value.(float64); ok && math.Signbit(f) && !math.IsNaN(f) {
			return '-'
		}
	}
	return 0
}

func containsCall(e ast.Expression) bool {
	for {
		switch n := e.(type) {
		case *ast.CallExpression:
			return true
		case *ast.MemberExpression:
			e = n.Object
		default:
			return false
		}
	}
}

// startsAmbiguously reports whether e would begin with `{`, `function` or
// `class`, which a statement cannot start with.
func startsAmbiguously(e ast.Node) bool {
	for {
		switch n := e.(type) {
		case *ast.ObjectExpression, *ast.FunctionExpression, *ast.Class:
			return true
		case *ast.Raw:
			return n.Kind == "class" || strings.HasPrefix(n.Text, "{") || strings.HasPrefix(n.Text, "function")
		case *ast.BinaryExpression:
			e = n.Left
		case *ast.LogicalExpression:
			e = n.Left
		case *ast.AssignmentExpression:
			e = n.Left
		case *ast.ConditionalExpression:
			e = n.Test
		case *ast.CallExpression:
			e = n.Callee
		case *ast.MemberExpression:
			e = n.Object
		case *ast.SequenceExpression:
			if len(n.Expressions) == 0 {
				return false
			}
			e = n.Expressions[0]
		case *ast.UpdateExpression:
			if n.Prefix {
				return false
			}
			e = n.Argument
		default:
			return false
		}
	}
}
