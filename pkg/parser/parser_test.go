package parser_test

import (
	"errors"
	"testing"

	"mytacism/evaluator-go/pkg/ast"
	"mytacism/evaluator-go/pkg/parser"
)

func parseSource(t *testing.T, source string) *ast.Program {
	t.Helper()
	mp, err := parser.NewModuleParser()
	if err != nil {
		t.Fatalf("NewModuleParser: %v", err)
	}
	t.Cleanup(func() { mp.Close() })

	program, err := mp.ParseProgram([]byte(source), parser.Options{SourceFileName: "input.js"})
	if err != nil {
		t.Fatalf("ParseProgram(%q) returned error: %v", source, err)
	}
	if program == nil {
		t.Fatalf("ParseProgram(%q) returned nil program", source)
	}
	return program
}

func onlyExpression(t *testing.T, source string) ast.Expression {
	t.Helper()
	program := parseSource(t, source)
	if len(program.Body) != 1 {
		t.Fatalf("expected single statement, got %d", len(program.Body))
	}
	stmt, ok := program.Body[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected ExpressionStatement, got %T", program.Body[0])
	}
	return stmt.Expression
}

func TestParseIgnoresComments(t *testing.T) {
	program := parseSource(t, "// leading\n1; /* trailing */\n")
	if len(program.Body) != 1 {
		t.Fatalf("expected one statement, got %d", len(program.Body))
	}
}

func TestParseLiterals(t *testing.T) {
	cases := []struct {
		source string
		want   any
	}{
		{"1;", float64(1)},
		{"0x10;", float64(16)},
		{"0b101;", float64(5)},
		{"1_000;", float64(1000)},
		{"2.5e3;", float64(2500)},
		{`"a\nb";`, "a\nb"},
		{`'it\'s';`, "it's"},
		{`"A\x42";`, "AB"},
		{"true;", true},
		{"false;", false},
		{"null;", nil},
	}
	for _, tc := range cases {
		expr := onlyExpression(t, tc.source)
		lit, ok := expr.(*ast.Literal)
		if !ok {
			t.Fatalf("%s: expected Literal, got %T", tc.source, expr)
		}
		if lit.Value != tc.want {
			t.Fatalf("%s: expected %#v, got %#v", tc.source, tc.want, lit.Value)
		}
	}
}

func TestParseBigIntStaysRaw(t *testing.T) {
	expr := onlyExpression(t, "10n;")
	raw, ok := expr.(*ast.Raw)
	if !ok {
		t.Fatalf("expected Raw, got %T", expr)
	}
	if raw.Text != "10n" {
		t.Fatalf("expected raw text 10n, got %q", raw.Text)
	}
}

func TestParseTemplateLiteral(t *testing.T) {
	expr := onlyExpression(t, "`a${b}c${d}`;")
	tpl, ok := expr.(*ast.TemplateLiteral)
	if !ok {
		t.Fatalf("expected TemplateLiteral, got %T", expr)
	}
	if len(tpl.Quasis) != 3 || tpl.Quasis[0] != "a" || tpl.Quasis[1] != "c" || tpl.Quasis[2] != "" {
		t.Fatalf("unexpected quasis %#v", tpl.Quasis)
	}
	if len(tpl.Expressions) != 2 {
		t.Fatalf("expected 2 substitutions, got %d", len(tpl.Expressions))
	}
	if id, ok := tpl.Expressions[0].(*ast.Identifier); !ok || id.Name != "b" {
		t.Fatalf("expected identifier b, got %#v", tpl.Expressions[0])
	}
}

func TestParseLogicalAndBinary(t *testing.T) {
	expr := onlyExpression(t, "a && b + 1;")
	logical, ok := expr.(*ast.LogicalExpression)
	if !ok || logical.Operator != "&&" {
		t.Fatalf("expected && logical expression, got %#v", expr)
	}
	bin, ok := logical.Right.(*ast.BinaryExpression)
	if !ok || bin.Operator != "+" {
		t.Fatalf("expected + on the right, got %#v", logical.Right)
	}
}

func TestParseUnaryAndUpdate(t *testing.T) {
	expr := onlyExpression(t, "typeof x;")
	if u, ok := expr.(*ast.UnaryExpression); !ok || u.Operator != "typeof" {
		t.Fatalf("expected typeof, got %#v", expr)
	}
	expr = onlyExpression(t, "delete o.k;")
	if expr.Category() != ast.CategoryMutation {
		t.Fatalf("expected delete to be a mutation, got %s", expr.Category())
	}
	expr = onlyExpression(t, "i++;")
	if u, ok := expr.(*ast.UpdateExpression); !ok || u.Prefix || u.Operator != "++" {
		t.Fatalf("expected postfix ++, got %#v", expr)
	}
	expr = onlyExpression(t, "--i;")
	if u, ok := expr.(*ast.UpdateExpression); !ok || !u.Prefix || u.Operator != "--" {
		t.Fatalf("expected prefix --, got %#v", expr)
	}
}

func TestParseAssignment(t *testing.T) {
	expr := onlyExpression(t, "a += 2;")
	assign, ok := expr.(*ast.AssignmentExpression)
	if !ok || assign.Operator != "+=" {
		t.Fatalf("expected += assignment, got %#v", expr)
	}
	expr = onlyExpression(t, "[a, b] = pair;")
	assign, ok = expr.(*ast.AssignmentExpression)
	if !ok {
		t.Fatalf("expected assignment, got %T", expr)
	}
	pattern, ok := assign.Left.(*ast.Raw)
	if !ok || len(pattern.Bindings) != 2 {
		t.Fatalf("expected destructuring pattern binding two names, got %#v", assign.Left)
	}
}

func TestParseArrayHoles(t *testing.T) {
	expr := onlyExpression(t, "[1, , 2];")
	arr, ok := expr.(*ast.ArrayExpression)
	if !ok {
		t.Fatalf("expected ArrayExpression, got %T", expr)
	}
	if len(arr.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(arr.Elements))
	}
	if arr.Elements[1] != nil {
		t.Fatalf("expected hole at index 1, got %#v", arr.Elements[1])
	}
	expr = onlyExpression(t, "[1, 2,];")
	if arr := expr.(*ast.ArrayExpression); len(arr.Elements) != 2 {
		t.Fatalf("trailing comma should not add a hole, got %d elements", len(arr.Elements))
	}
}

func TestParseObjectProperties(t *testing.T) {
	expr := onlyExpression(t, "({a: 1, 'b': 2, c, [d]: 3, ...e, m() {}});")
	paren, ok := expr.(*ast.ParenthesizedExpression)
	if !ok {
		t.Fatalf("expected ParenthesizedExpression, got %T", expr)
	}
	obj, ok := paren.Expression.(*ast.ObjectExpression)
	if !ok {
		t.Fatalf("expected ObjectExpression, got %T", paren.Expression)
	}
	if len(obj.Properties) != 6 {
		t.Fatalf("expected 6 properties, got %d", len(obj.Properties))
	}
	if p := obj.Properties[0].(*ast.Property); p.Computed || p.Key.(*ast.Identifier).Name != "a" {
		t.Fatalf("unexpected first property %#v", p)
	}
	if p := obj.Properties[1].(*ast.Property); p.Key.(*ast.Literal).Value != "b" {
		t.Fatalf("unexpected string key %#v", p.Key)
	}
	if p := obj.Properties[2].(*ast.Property); !p.Shorthand {
		t.Fatalf("expected shorthand property, got %#v", p)
	}
	if p := obj.Properties[3].(*ast.Property); !p.Computed {
		t.Fatalf("expected computed property, got %#v", p)
	}
	if _, ok := obj.Properties[4].(*ast.SpreadElement); !ok {
		t.Fatalf("expected spread, got %T", obj.Properties[4])
	}
	if _, ok := obj.Properties[5].(*ast.Raw); !ok {
		t.Fatalf("expected method to stay raw, got %T", obj.Properties[5])
	}
}

func TestParseMemberAndCall(t *testing.T) {
	expr := onlyExpression(t, "a.b[c](1, 2);")
	call, ok := expr.(*ast.CallExpression)
	if !ok || len(call.Arguments) != 2 {
		t.Fatalf("expected call with two arguments, got %#v", expr)
	}
	outer, ok := call.Callee.(*ast.MemberExpression)
	if !ok || !outer.Computed {
		t.Fatalf("expected computed member callee, got %#v", call.Callee)
	}
	inner, ok := outer.Object.(*ast.MemberExpression)
	if !ok || inner.Computed || inner.Property.(*ast.Identifier).Name != "b" {
		t.Fatalf("expected a.b, got %#v", outer.Object)
	}
}

func TestParseTaggedTemplateStaysRaw(t *testing.T) {
	expr := onlyExpression(t, "tag`x`;")
	if _, ok := expr.(*ast.Raw); !ok {
		t.Fatalf("expected Raw, got %T", expr)
	}
}

func TestParseFunctions(t *testing.T) {
	expr := onlyExpression(t, "x => x + 1;")
	arrow, ok := expr.(*ast.ArrowFunction)
	if !ok || !arrow.BareParam || len(arrow.Params) != 1 {
		t.Fatalf("expected bare-param arrow, got %#v", expr)
	}
	if _, ok := arrow.Body.(*ast.BinaryExpression); !ok {
		t.Fatalf("expected expression body, got %T", arrow.Body)
	}

	program := parseSource(t, "async function f(a, {b}, ...rest) { return a; }")
	fn, ok := program.Body[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected FunctionDeclaration, got %T", program.Body[0])
	}
	if !fn.Async || fn.Name.Name != "f" || len(fn.Params) != 3 {
		t.Fatalf("unexpected function %#v", fn)
	}
	if raw, ok := fn.Params[1].(*ast.Raw); !ok || len(raw.Bindings) != 1 || raw.Bindings[0] != "b" {
		t.Fatalf("expected pattern binding b, got %#v", fn.Params[1])
	}
	if raw, ok := fn.Params[2].(*ast.Raw); !ok || len(raw.Bindings) != 1 || raw.Bindings[0] != "rest" {
		t.Fatalf("expected rest binding, got %#v", fn.Params[2])
	}
}

func TestParseDeclarations(t *testing.T) {
	program := parseSource(t, "const a = 1, b = 'x'; let c; var {d, e: [f]} = g;")
	if len(program.Body) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(program.Body))
	}
	decl := program.Body[0].(*ast.VariableDeclaration)
	if decl.Kind != "const" || len(decl.Declarations) != 2 {
		t.Fatalf("unexpected const declaration %#v", decl)
	}
	if decl := program.Body[1].(*ast.VariableDeclaration); decl.Kind != "let" || decl.Declarations[0].Init != nil {
		t.Fatalf("unexpected let declaration %#v", decl)
	}
	decl = program.Body[2].(*ast.VariableDeclaration)
	pattern, ok := decl.Declarations[0].ID.(*ast.Raw)
	if !ok {
		t.Fatalf("expected destructuring pattern, got %T", decl.Declarations[0].ID)
	}
	if len(pattern.Bindings) != 2 || pattern.Bindings[0] != "d" || pattern.Bindings[1] != "f" {
		t.Fatalf("unexpected bindings %v", pattern.Bindings)
	}
}

func TestParseControlFlow(t *testing.T) {
	program := parseSource(t, `
if (a) b(); else c();
while (x) {}
do { y(); } while (z);
for (let i = 0; i < 3; i++) {}
for (;;) break;
for (const k in obj) {}
for (const v of list) {}
`)
	if len(program.Body) != 7 {
		t.Fatalf("expected 7 statements, got %d", len(program.Body))
	}
	ifStmt := program.Body[0].(*ast.IfStatement)
	if ifStmt.Alternate == nil {
		t.Fatalf("expected else branch")
	}
	if _, ok := ifStmt.Test.(*ast.Identifier); !ok {
		t.Fatalf("expected unwrapped condition, got %T", ifStmt.Test)
	}
	if _, ok := program.Body[1].(*ast.WhileStatement); !ok {
		t.Fatalf("expected while, got %T", program.Body[1])
	}
	if _, ok := program.Body[2].(*ast.DoWhileStatement); !ok {
		t.Fatalf("expected do-while, got %T", program.Body[2])
	}
	loop := program.Body[3].(*ast.ForStatement)
	if _, ok := loop.Init.(*ast.VariableDeclaration); !ok {
		t.Fatalf("expected declaration init, got %T", loop.Init)
	}
	if loop.Test == nil || loop.Update == nil {
		t.Fatalf("expected test and update, got %#v", loop)
	}
	empty := program.Body[4].(*ast.ForStatement)
	if empty.Init != nil || empty.Test != nil || empty.Update != nil {
		t.Fatalf("expected empty header, got %#v", empty)
	}
	forIn := program.Body[5].(*ast.ForInStatement)
	if forIn.Of || forIn.Kind != "const" {
		t.Fatalf("unexpected for-in %#v", forIn)
	}
	forOf := program.Body[6].(*ast.ForInStatement)
	if !forOf.Of {
		t.Fatalf("expected for-of")
	}
}

func TestParseSwitch(t *testing.T) {
	program := parseSource(t, "switch (x) { case 1: a(); break; case 2: default: b(); }")
	sw, ok := program.Body[0].(*ast.SwitchStatement)
	if !ok {
		t.Fatalf("expected SwitchStatement, got %T", program.Body[0])
	}
	if len(sw.Cases) != 3 {
		t.Fatalf("expected 3 clauses, got %d", len(sw.Cases))
	}
	if len(sw.Cases[0].Consequent) != 2 {
		t.Fatalf("expected 2 statements in first case, got %d", len(sw.Cases[0].Consequent))
	}
	if len(sw.Cases[1].Consequent) != 0 {
		t.Fatalf("expected empty second case, got %d", len(sw.Cases[1].Consequent))
	}
	if sw.Cases[2].Test != nil || len(sw.Cases[2].Consequent) != 1 {
		t.Fatalf("unexpected default clause %#v", sw.Cases[2])
	}
}

func TestParseTryAndExport(t *testing.T) {
	program := parseSource(t, "try { a(); } catch (e) { b(); } finally { c(); }\nexport const k = 1;\nexport default k;")
	try := program.Body[0].(*ast.TryStatement)
	if try.Handler == nil || try.Finalizer == nil {
		t.Fatalf("expected handler and finalizer, got %#v", try)
	}
	if id, ok := try.Handler.Param.(*ast.Identifier); !ok || id.Name != "e" {
		t.Fatalf("expected catch param e, got %#v", try.Handler.Param)
	}
	export, ok := program.Body[1].(*ast.ExportDeclaration)
	if !ok {
		t.Fatalf("expected ExportDeclaration, got %T", program.Body[1])
	}
	if _, ok := export.Declaration.(*ast.VariableDeclaration); !ok {
		t.Fatalf("expected exported declaration, got %T", export.Declaration)
	}
	if _, ok := program.Body[2].(*ast.Raw); !ok {
		t.Fatalf("expected default export to stay raw, got %T", program.Body[2])
	}
}

func TestParseOpaqueSyntax(t *testing.T) {
	program := parseSource(t, "import x from 'y';\ndebugger;\n/re/g;\nthis;")
	if raw, ok := program.Body[0].(*ast.Raw); !ok || raw.Kind != "import_statement" {
		t.Fatalf("expected raw import, got %#v", program.Body[0])
	}
	if raw, ok := program.Body[1].(*ast.Raw); !ok || raw.Text != "debugger;" {
		t.Fatalf("expected raw debugger statement, got %#v", program.Body[1])
	}
	for _, stmt := range program.Body[2:] {
		expr := stmt.(*ast.ExpressionStatement).Expression
		raw, ok := expr.(*ast.Raw)
		if !ok || raw.Unrecognized {
			t.Fatalf("expected known opaque expression, got %#v", expr)
		}
	}
}

func TestParseClass(t *testing.T) {
	program := parseSource(t, "class A extends B {\n  static count = 1;\n  constructor(x) { this.x = x; }\n  get size() { return 1; }\n  [key]() {}\n  static { init(); }\n}\nconst C = class {};")
	class, ok := program.Body[0].(*ast.Class)
	if !ok {
		t.Fatalf("expected class declaration, got %T", program.Body[0])
	}
	if !class.Declaration || class.Name == nil || class.Name.Name != "A" {
		t.Fatalf("unexpected class header %#v", class)
	}
	if super, ok := class.SuperClass.(*ast.Identifier); !ok || super.Name != "B" {
		t.Fatalf("expected superclass B, got %#v", class.SuperClass)
	}
	if len(class.Body) != 5 {
		t.Fatalf("expected 5 members, got %d", len(class.Body))
	}
	field, ok := class.Body[0].(*ast.FieldDefinition)
	if !ok || !field.Static || field.Value == nil {
		t.Fatalf("expected static field, got %#v", class.Body[0])
	}
	ctor, ok := class.Body[1].(*ast.MethodDefinition)
	if !ok || ctor.Kind != "constructor" || len(ctor.Value.Params) != 1 {
		t.Fatalf("expected constructor, got %#v", class.Body[1])
	}
	if ctor.Value.Origin() == nil || ctor.Value.Span().Start.Line != 3 {
		t.Fatalf("expected method function to carry its source range")
	}
	if getter, ok := class.Body[2].(*ast.MethodDefinition); !ok || getter.Kind != "get" {
		t.Fatalf("expected getter, got %#v", class.Body[2])
	}
	if computed, ok := class.Body[3].(*ast.MethodDefinition); !ok || !computed.Computed || computed.Kind != "method" {
		t.Fatalf("expected computed method, got %#v", class.Body[3])
	}
	if raw, ok := class.Body[4].(*ast.Raw); !ok || raw.Kind != "class_static_block" {
		t.Fatalf("expected raw static block, got %#v", class.Body[4])
	}

	decl := program.Body[1].(*ast.VariableDeclaration)
	expr, ok := decl.Declarations[0].Init.(*ast.Class)
	if !ok || expr.Declaration || expr.Name != nil {
		t.Fatalf("expected anonymous class expression, got %#v", decl.Declarations[0].Init)
	}
}

func TestParseLabeledStatement(t *testing.T) {
	program := parseSource(t, "outer: for (;;) { break outer; }")
	labeled, ok := program.Body[0].(*ast.LabeledStatement)
	if !ok {
		t.Fatalf("expected labeled statement, got %T", program.Body[0])
	}
	if labeled.Label.Name != "outer" {
		t.Fatalf("expected label outer, got %q", labeled.Label.Name)
	}
	if _, ok := labeled.Body.(*ast.ForStatement); !ok {
		t.Fatalf("expected loop body, got %T", labeled.Body)
	}
}

func TestParseSyntaxError(t *testing.T) {
	mp, err := parser.NewModuleParser()
	if err != nil {
		t.Fatalf("NewModuleParser: %v", err)
	}
	defer mp.Close()

	_, err = mp.ParseProgram([]byte("let = ;"), parser.Options{SourceFileName: "bad.js"})
	if err == nil {
		t.Fatalf("expected syntax error")
	}
	var syntaxErr *parser.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected *parser.SyntaxError, got %T", err)
	}
	if syntaxErr.File != "bad.js" || syntaxErr.Line != 1 {
		t.Fatalf("unexpected location %#v", syntaxErr)
	}
}

func TestParseRecordsOrigins(t *testing.T) {
	source := "let x = 1;\nfoo(a +  b);\n"
	program := parseSource(t, source)
	if program.Origin() == nil || program.Origin().Text() != source {
		t.Fatalf("program origin should cover the whole input")
	}
	stmt := program.Body[1].(*ast.ExpressionStatement)
	call := stmt.Expression.(*ast.CallExpression)
	if got := call.Arguments[0].Origin().Text(); got != "a +  b" {
		t.Fatalf("expected original spelling, got %q", got)
	}
	span := call.Span()
	if span.Start.Line != 2 || span.Start.Column != 1 {
		t.Fatalf("unexpected span %#v", span)
	}
	ast.Inspect(program, func(n ast.Node) bool {
		if n.Origin() != nil && !ast.Unchanged(n) {
			t.Fatalf("freshly parsed %s should be unchanged", n.NodeType())
		}
		return true
	})

	call.Arguments[0] = ast.Num(3)
	if ast.Unchanged(call) {
		t.Fatalf("replacing an argument should mark the call as changed")
	}
	if !ast.Unchanged(stmt) {
		t.Fatalf("the enclosing statement still holds the same call")
	}
}

func TestParseHelper(t *testing.T) {
	program, err := parser.Parse([]byte("1 + 1;"), parser.Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(program.Body) != 1 {
		t.Fatalf("expected one statement, got %d", len(program.Body))
	}
}
