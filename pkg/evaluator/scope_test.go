package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mytacism/evaluator-go/pkg/ast"
	"mytacism/evaluator-go/pkg/parser"
	"mytacism/evaluator-go/pkg/runtime"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	program, err := parser.Parse([]byte(src), parser.Options{SourceFileName: "scope.js"})
	require.NoError(t, err)
	return program
}

func TestFunctionNamesHoistVars(t *testing.T) {
	program := parse(t, `
var a = 1;
let b;
function c() { var inner; }
if (x) { var d; let e; }
for (var f = 0; f < 1; f++) { var g; }
h = function () { var fnLocal; };
`)
	names := functionNames(program.Body)
	assert.Subset(t, names, []string{"a", "b", "c", "d", "f", "g"})
	for _, hidden := range []string{"inner", "e", "fnLocal", "h", "x"} {
		assert.NotContains(t, names, hidden)
	}
}

func TestBlockNames(t *testing.T) {
	program := parse(t, "const a = 1, b = 2;\nexport function c() {}\nclass D {}\nx = class E {};\nf();")
	assert.Equal(t, []string{"a", "b", "c", "D"}, blockNames(program.Body))
}

func TestScopeSafe(t *testing.T) {
	cases := map[string]bool{
		"var a = 1;\nf();":  true,
		"f();\ng();":        true,
		"let a = 1;":        false,
		"const a = 1;":      false,
		"function f() {}":   false,
		"class A {}":        false,
		"if (x) { let a; }": true,
	}
	for src, want := range cases {
		t.Run(src, func(t *testing.T) {
			assert.Equal(t, want, scopeSafe(parse(t, src).Body))
		})
	}
}

func TestBreaksOut(t *testing.T) {
	cases := map[string]bool{
		"f();":                              false,
		"break;":                            true,
		"if (x) { break; }":                 true,
		"{ g(); { break; } }":               true,
		"while (x) { break; }":              false,
		"for (;;) { break; }":               false,
		"switch (y) { case 1: break; }":     false,
		"outer: for (;;) { break outer; }":  false,
		"x = function () { while (1) {} };": false,
	}
	for src, want := range cases {
		t.Run(src, func(t *testing.T) {
			program := parse(t, "switch (z) { default: "+src+" }")
			sw := program.Body[0].(*ast.SwitchStatement)
			got := false
			for _, s := range sw.Cases[0].Consequent {
				got = got || breaksOut(s)
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestEnterShadowsAndRestores(t *testing.T) {
	ctx := NewContext(nil)
	ctx.Values.Define("x", runtime.Number(1))
	w := &walker{ctx: ctx, env: ctx.Values}

	assert.False(t, w.shadowed("x"))
	leave := w.enter([]string{"x"})
	assert.True(t, w.shadowed("x"))
	_, ok := w.lookup("x")
	assert.False(t, ok)
	leave()
	assert.False(t, w.shadowed("x"))
	_, ok = w.lookup("x")
	assert.True(t, ok)
}
