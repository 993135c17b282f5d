package evaluator

import (
	"mytacism/evaluator-go/pkg/ast"
	"mytacism/evaluator-go/pkg/runtime"
)

// enter opens a scope in which names shadow every compile-time binding of
// the same name. The returned function restores the previous scope.
func (w *walker) enter(names []string) func() {
	saved := w.env
	env := w.env.Extend()
	for _, name := range names {
		env.Hide(name)
	}
	w.env = env
	return func() { w.env = saved }
}

// shadowed reports whether a local declaration hides name.
func (w *walker) shadowed(name string) bool {
	return w.env.Hidden(name)
}

// lookup finds the compile-time value of name visible in the current scope.
func (w *walker) lookup(name string) (runtime.Value, bool) {
	return w.env.Get(name)
}

// bindingNames lists the names a parameter or declarator target binds.
func bindingNames(n ast.Node) []string {
	switch target := n.(type) {
	case *ast.Identifier:
		return []string{target.Name}
	case *ast.Raw:
		return target.Bindings
	}
	return nil
}

func paramNames(params []ast.Node) []string {
	var names []string
	for _, p := range params {
		names = append(names, bindingNames(p)...)
	}
	return names
}

// blockNames lists the names declared directly in a statement list.
func blockNames(stmts []ast.Statement) []string {
	var names []string
	for _, s := range stmts {
		names = append(names, declared(s)...)
	}
	return names
}

func declared(s ast.Statement) []string {
	switch n := s.(type) {
	case *ast.VariableDeclaration:
		var names []string
		for _, d := range n.Declarations {
			names = append(names, bindingNames(d.ID)...)
		}
		return names
	case *ast.FunctionDeclaration:
		if n.Name != nil {
			return []string{n.Name.Name}
		}
	case *ast.Class:
		if n.Declaration && n.Name != nil {
			return []string{n.Name.Name}
		}
	case *ast.ExportDeclaration:
		return declared(n.Declaration)
	}
	return nil
}

// functionNames lists the names a function body declares, including var
// declarations hoisted out of nested blocks.
func functionNames(stmts []ast.Statement) []string {
	names := blockNames(stmts)
	for _, s := range stmts {
		names = append(names, hoistedVars(s)...)
	}
	return names
}

func hoistedVars(s ast.Statement) []string {
	var names []string
	var visit func(n ast.Node) bool
	visit = func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.FunctionDeclaration, *ast.FunctionExpression, *ast.ArrowFunction:
			return false
		case *ast.VariableDeclaration:
			if node.Kind == "var" {
				for _, d := range node.Declarations {
					names = append(names, bindingNames(d.ID)...)
				}
			}
		case ast.Expression:
			if _, isBlock := node.(*ast.BlockStatement); !isBlock {
				return false
			}
		}
		return true
	}
	ast.Inspect(s, visit)
	return names
}

// scopeSafe reports whether stmts can be spliced into the enclosing list
// without changing what their declarations are visible to.
func scopeSafe(stmts []ast.Statement) bool {
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.VariableDeclaration:
			if n.Kind != "var" {
				return false
			}
		case *ast.FunctionDeclaration, *ast.Class:
			return false
		case *ast.Raw:
			if n.Kind == "class_declaration" {
				return false
			}
		}
	}
	return true
}
