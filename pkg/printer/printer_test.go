package printer_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mytacism/evaluator-go/pkg/ast"
	"mytacism/evaluator-go/pkg/parser"
	"mytacism/evaluator-go/pkg/printer"
)

func parse(t *testing.T, source string) *ast.Program {
	t.Helper()
	program, err := parser.Parse([]byte(source), parser.Options{SourceFileName: "input.js"})
	require.NoError(t, err)
	return program
}

func render(t *testing.T, node ast.Node) string {
	t.Helper()
	out, err := printer.Print(node, printer.Options{})
	require.NoError(t, err)
	return out.Code
}

func TestUntouchedTreePrintsVerbatim(t *testing.T) {
	source := "// header\nconst  a = {x:1};   /* odd */\n\nif (a) {\n    go( a ,1 );\n}\n"
	assert.Equal(t, source, render(t, parse(t, source)))
}

func TestChangedChildIsSplicedIntoOriginalText(t *testing.T) {
	program := parse(t, "foo(a +  b); // keep\nbar( 1 );\n")
	call := program.Body[0].(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
	call.Arguments[0] = ast.Num(3)
	assert.Equal(t, "foo(3); // keep\nbar( 1 );\n", render(t, program))
}

func TestReplacementGetsParentheses(t *testing.T) {
	program := parse(t, "x * y;")
	bin := program.Body[0].(*ast.ExpressionStatement).Expression.(*ast.BinaryExpression)
	bin.Right = ast.Bin("+", ast.ID("a"), ast.Num(1))
	assert.Equal(t, "x * (a + 1);", render(t, program))
}

func TestObjectAtStatementStartIsWrapped(t *testing.T) {
	program := parse(t, "y;")
	program.Body[0].(*ast.ExpressionStatement).Expression = ast.Obj(ast.Prop("a", ast.Num(1)))
	assert.Equal(t, `({"a": 1});`, render(t, program))
}

func TestRemovedStatementKeepsNeighbours(t *testing.T) {
	program := parse(t, "if (a) {\n  b();\n  c();\n}\n")
	block := program.Body[0].(*ast.IfStatement).Consequent.(*ast.BlockStatement)
	block.Body = block.Body[1:]
	assert.Equal(t, "if (a) {\n  c();\n}\n", render(t, program))
}

func TestRemovedStatementsAtTopLevel(t *testing.T) {
	program := parse(t, "a(1);\nif (x) y();\nb(2);\n")
	program.Body = []ast.Statement{program.Body[0], program.Body[2]}
	assert.Equal(t, "a(1);\nb(2);\n", render(t, program))

	program = parse(t, "if(true){}")
	program.Body = nil
	assert.Equal(t, "", render(t, program))
}

func TestEmptiedBlockPrintsBraces(t *testing.T) {
	program := parse(t, "if(a){} else {;}")
	alt := program.Body[0].(*ast.IfStatement).Alternate.(*ast.BlockStatement)
	alt.Body = nil
	assert.Equal(t, "if(a){} else {}", render(t, program))
}

func TestCanonicalExpressions(t *testing.T) {
	cases := []struct {
		name string
		node ast.Node
		want string
	}{
		{"negative operand", ast.Bin("-", ast.Num(1), ast.Num(-2)), "1 - -2"},
		{"double negation", ast.NewUnaryExpression("-", ast.Num(-1)), "-(-1)"},
		{"undefined", ast.Undefined(), "void 0"},
		{"negative zero", ast.Num(math.Copysign(0, -1)), "-0"},
		{"large number", ast.Num(1e21), "1e+21"},
		{"string", ast.Str("a\"b\n"), `"a\"b\n"`},
		{"nested object", ast.Obj(ast.Prop("x", ast.Obj(ast.Prop("y", ast.Num(39))))), `{"x": {"y": 39}}`},
		{"array with holes", ast.Arr(ast.Num(1), nil, ast.Num(2)), "[1, , 2]"},
		{"trailing hole", ast.Arr(ast.Num(1), nil), "[1, ,]"},
		{"number receiver", ast.Member(ast.Num(1), "toString"), "(1).toString"},
		{"left associative", ast.Bin("-", ast.ID("a"), ast.Bin("-", ast.ID("b"), ast.ID("c"))), "a - (b - c)"},
		{"exponent", ast.Bin("**", ast.NewUnaryExpression("-", ast.ID("a")), ast.Num(2)), "(-a) ** 2"},
		{"typeof", ast.NewUnaryExpression("typeof", ast.ID("x")), "typeof x"},
		{"call", ast.Call(ast.Member(ast.ID("o"), "f"), ast.Str("s"), ast.Bool(true)), `o.f("s", true)`},
		{"conditional", ast.NewConditionalExpression(ast.ID("a"), ast.Null(), ast.Num(0.5)), "a ? null : 0.5"},
		{"template", ast.NewTemplateLiteral([]string{"a`", "$"}, []ast.Expression{ast.ID("b")}), "`a\\`${b}$`"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, printer.String(tc.node))
		})
	}
}

func TestCanonicalStatements(t *testing.T) {
	inner := ast.NewIfStatement(ast.ID("b"), ast.Expr(ast.ID("x")), nil)
	outer := ast.NewIfStatement(ast.ID("a"), inner, ast.Expr(ast.ID("y")))
	assert.Equal(t, "if (a) {\n  if (b) x;\n} else y;", printer.String(outer))

	program := ast.NewProgram([]ast.Statement{
		ast.NewVariableDeclaration("let", []*ast.VariableDeclarator{ast.NewVariableDeclarator(ast.ID("r"), ast.Num(2))}),
		ast.NewInlineBlock([]ast.Statement{ast.Expr(ast.Call(ast.ID("f"))), ast.Expr(ast.Call(ast.ID("g")))}),
		ast.NewReturnStatement(nil),
	})
	assert.Equal(t, "let r = 2;\nf();\ng();\nreturn;", printer.String(program))
}

func TestBlockInExpressionPosition(t *testing.T) {
	group := ast.NewInlineBlock([]ast.Statement{ast.Expr(ast.ID("a")), ast.Expr(ast.ID("b"))})
	assert.Equal(t, "x = (a, b)", printer.String(ast.NewAssignmentExpression("=", ast.ID("x"), group)))

	bad := ast.NewInlineBlock([]ast.Statement{ast.NewReturnStatement(nil)})
	_, err := printer.Print(ast.NewAssignmentExpression("=", ast.ID("x"), bad), printer.Options{})
	require.Error(t, err)
}

func TestSourceMap(t *testing.T) {
	program := parse(t, "a;\nb;\n")
	out, err := printer.Print(program, printer.Options{SourceMapName: "out.js"})
	require.NoError(t, err)
	require.NotNil(t, out.Map)
	assert.Equal(t, 3, out.Map.Version)
	assert.Equal(t, []string{"input.js"}, out.Map.Sources)
	assert.Equal(t, "out.js", out.Map.File)
	assert.Equal(t, "AAAA;AACA", out.Map.Mappings)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out.Map.String()), &decoded))
	assert.Equal(t, "AAAA;AACA", decoded["mappings"])
}

func TestSourceMapOfFreshTreeIsEmpty(t *testing.T) {
	out, err := printer.Print(ast.Expr(ast.Num(1)), printer.Options{})
	require.NoError(t, err)
	assert.Empty(t, out.Map.Sources)
	assert.Empty(t, out.Map.Mappings)
}
