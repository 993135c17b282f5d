package evaluator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mytacism/evaluator-go/pkg/ast"
	"mytacism/evaluator-go/pkg/evaluator"
	"mytacism/evaluator-go/pkg/parser"
	"mytacism/evaluator-go/pkg/printer"
)

func macros(m map[string]evaluator.Macro) evaluator.Config {
	return evaluator.Config{Macros: m}
}

func TestTemplateMacros(t *testing.T) {
	cfg := macros(map[string]evaluator.Macro{
		"macro": evaluator.Template("$0 + $1"),
		"twice": evaluator.Template("log($0);\nlog($1);"),
		"none":  evaluator.Template(""),
		"fail":  evaluator.Template("throw $0;"),
	})

	assert.Equal(t, "3", evaluate(t, "macro(1,2)", cfg))
	assert.Equal(t, "a + 2", evaluate(t, "macro(a, 2)", cfg))
	assert.Equal(t, "log(1);\nlog(2);", evaluate(t, "twice(1, 2);", cfg))
	assert.Equal(t, "x = (log(1), log(2))", evaluate(t, "x = twice(1, 2)", cfg))
	assert.Equal(t, "", evaluate(t, "none(1);", cfg))
	assert.Equal(t, "x = void 0", evaluate(t, "x = none()", cfg))
	assert.Equal(t, "throw 1;", evaluate(t, "fail(1);", cfg))

	err := evaluateErr(t, "x = fail(1)", cfg)
	assert.ErrorIs(t, err, evaluator.ErrInvalidExpansion)

	err = evaluateErr(t, "f = macro", cfg)
	assert.ErrorIs(t, err, evaluator.ErrReferencedNotInvoked)
}

func TestTemplateArgumentsSeeAmbientContext(t *testing.T) {
	cfg := evaluator.Config{
		Values: map[string]any{"num": 2},
		Macros: map[string]evaluator.Macro{"square": evaluator.Template("$0 * $0")},
	}
	assert.Equal(t, "4", evaluate(t, "square(num)", cfg))
	assert.Equal(t, "16", evaluate(t, "square(square(num))", cfg))
	assert.Equal(t, "function f(num) { return num * num; }", evaluate(t, "function f(num) { return square(num); }", cfg))
}

func TestTemplateSyntaxError(t *testing.T) {
	cfg := macros(map[string]evaluator.Macro{"broken": evaluator.Template("1 +")})
	err := evaluateErr(t, "broken()", cfg)
	assert.ErrorIs(t, err, evaluator.ErrMacroFailed)
	var syntaxErr *parser.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestCallableMacroContinuesFolding(t *testing.T) {
	cfg := evaluator.Config{
		Values: map[string]any{"debug": false},
		Macros: map[string]evaluator.Macro{
			"mode": evaluator.MacroFunc(func(*evaluator.MacroCall) (ast.Node, error) {
				return ast.NewConditionalExpression(ast.ID("debug"), ast.Str("dev"), ast.Str("prod")), nil
			}),
			"noop": evaluator.MacroFunc(func(*evaluator.MacroCall) (ast.Node, error) {
				return nil, nil
			}),
		},
	}
	assert.Equal(t, `"prod"`, evaluate(t, "mode()", cfg))
	assert.Equal(t, `x = "prod"`, evaluate(t, "x = mode()", cfg))
	assert.Equal(t, "", evaluate(t, "noop();", cfg))
	assert.Equal(t, "a();\nb();", evaluate(t, "a();\nnoop();\nb();", cfg))
}

func TestCallableMacroReceivesUnreducedArguments(t *testing.T) {
	var seen ast.Node
	cfg := evaluator.Config{
		Values: map[string]any{"num": 1},
		Macros: map[string]evaluator.Macro{
			"first": evaluator.MacroFunc(func(call *evaluator.MacroCall) (ast.Node, error) {
				seen = call.Args[0]
				return call.Args[0], nil
			}),
		},
	}
	assert.Equal(t, "1", evaluate(t, "first(num)", cfg))
	id, ok := seen.(*ast.Identifier)
	require.True(t, ok, "got %T", seen)
	assert.Equal(t, "num", id.Name)
}

func TestMacroCallHelpers(t *testing.T) {
	cfg := evaluator.Config{
		Values: map[string]any{"num": 1},
		Macros: map[string]evaluator.Macro{
			"value": evaluator.MacroFunc(func(call *evaluator.MacroCall) (ast.Node, error) {
				v, ok, err := call.Value(0)
				if err != nil || !ok {
					return nil, errors.New("argument is not static")
				}
				return ast.Str(v.Kind().String()), nil
			}),
			"double": evaluator.MacroFunc(func(call *evaluator.MacroCall) (ast.Node, error) {
				return call.Compile("$0 * 2", map[string]ast.Node{"$0": call.Args[0]})
			}),
		},
	}
	assert.Equal(t, `"number"`, evaluate(t, "value(num + 1)", cfg))
	assert.Equal(t, "6", evaluate(t, "double(3)", cfg))
	assert.Equal(t, "y * 2", evaluate(t, "double(y)", cfg))

	err := evaluateErr(t, "value(x)", cfg)
	assert.ErrorIs(t, err, evaluator.ErrMacroFailed)
	assert.Contains(t, err.Error(), "argument is not static")
}

func TestMacroExpansionDepthIsLimited(t *testing.T) {
	cfg := evaluator.Config{
		Macros:            map[string]evaluator.Macro{"again": evaluator.Template("again($0)")},
		MaxExpansionDepth: 5,
	}
	err := evaluateErr(t, "again(1)", cfg)
	assert.ErrorIs(t, err, evaluator.ErrMacroExpansionTooDeep)

	var calls int
	cfg.Macros = map[string]evaluator.Macro{
		"loop": evaluator.MacroFunc(func(*evaluator.MacroCall) (ast.Node, error) {
			calls++
			return ast.Call(ast.ID("loop")), nil
		}),
	}
	err = evaluateErr(t, "loop()", cfg)
	assert.ErrorIs(t, err, evaluator.ErrMacroExpansionTooDeep)
	assert.Equal(t, 5, calls)
}

func TestMacroResultsAreCopiedOnInsert(t *testing.T) {
	shared := ast.Bin("+", ast.ID("a"), ast.ID("k"))
	cfg := evaluator.Config{
		Values: map[string]any{"k": 1},
		Macros: map[string]evaluator.Macro{
			"same": evaluator.MacroFunc(func(*evaluator.MacroCall) (ast.Node, error) {
				return shared, nil
			}),
		},
	}
	tree, err := evaluator.EvaluateToTree("x = same();\ny = same();", cfg)
	require.NoError(t, err)
	require.Len(t, tree.Body, 2)

	first := tree.Body[0].(*ast.ExpressionStatement).Expression.(*ast.AssignmentExpression).Right
	second := tree.Body[1].(*ast.ExpressionStatement).Expression.(*ast.AssignmentExpression).Right
	assert.NotSame(t, first, second)
	assert.Equal(t, "a + 1", printer.String(first))
	assert.Equal(t, "a + 1", printer.String(second))

	_, stillIdentifier := shared.Right.(*ast.Identifier)
	assert.True(t, stillIdentifier, "macro result was modified in place")
}

func TestNamedSubTreesAreCopiedOnInsert(t *testing.T) {
	snippet := ast.Call(ast.ID("make"))
	cfg := evaluator.Config{ASTs: map[string]any{"snippet": snippet}}
	tree, err := evaluator.EvaluateToTree("[snippet, snippet];", cfg)
	require.NoError(t, err)

	arr := tree.Body[0].(*ast.ExpressionStatement).Expression.(*ast.ArrayExpression)
	require.Len(t, arr.Elements, 2)
	assert.NotSame(t, arr.Elements[0], arr.Elements[1])
	assert.NotSame(t, snippet, arr.Elements[0])
	assert.Equal(t, "[make(), make()];", printer.String(tree))
}
