package evaluator

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"mytacism/evaluator-go/pkg/ast"
	"mytacism/evaluator-go/pkg/parser"
	"mytacism/evaluator-go/pkg/printer"
	"mytacism/evaluator-go/pkg/runtime"
)

// Config carries the compile-time bindings and output options for one
// evaluation.
type Config struct {
	// Values are plain Go data (bools, numbers, strings, slices, maps) or
	// runtime.Value. A runtime.NativeFunc stored in a map becomes a method
	// that folds when called with static arguments.
	Values    map[string]any
	Functions map[string]runtime.NativeFunc
	Macros    map[string]Macro
	// ASTs maps names to source text or an ast.Node. Each entry is reduced
	// once, with no bindings, before the input is evaluated.
	ASTs map[string]any

	SourceFileName    string
	SourceMapName     string
	MaxExpansionDepth int
	Logger            *zap.Logger
}

// Result is the rewritten source with its source map.
type Result struct {
	Code        string
	Map         string
	Diagnostics []Diagnostic
}

// Engine evaluates many inputs with one parser. It is not safe for
// concurrent use.
type Engine struct {
	parser    *parser.ModuleParser
	templates map[string]*ast.Program
}

func NewEngine() (*Engine, error) {
	p, err := parser.NewModuleParser()
	if err != nil {
		return nil, err
	}
	return &Engine{parser: p, templates: map[string]*ast.Program{}}, nil
}

// Close releases the parser.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.parser.Close()
}

// Evaluate reduces source and prints the result.
func (e *Engine) Evaluate(source string, cfg Config) (*Result, error) {
	program, ctx, err := e.evaluate(source, cfg)
	if err != nil {
		return nil, err
	}
	out, err := printer.Print(program, printer.Options{
		SourceFileName: cfg.SourceFileName,
		SourceMapName:  cfg.SourceMapName,
	})
	if err != nil {
		return nil, fmt.Errorf("evaluator: %w", err)
	}
	return &Result{
		Code:        out.Code,
		Map:         out.Map.String(),
		Diagnostics: ctx.Diagnostics.Items(),
	}, nil
}

// EvaluateToTree reduces source and returns the rewritten tree, for callers
// that embed the result in another evaluation.
func (e *Engine) EvaluateToTree(source string, cfg Config) (*ast.Program, error) {
	program, _, err := e.evaluate(source, cfg)
	return program, err
}

func (e *Engine) evaluate(source string, cfg Config) (*ast.Program, *Context, error) {
	ctx, err := e.newContext(cfg)
	if err != nil {
		return nil, nil, err
	}
	program, err := e.parse(cfg.SourceFileName, source)
	if err != nil {
		return nil, nil, err
	}
	ctx.Logger.Debug("evaluating", zap.String("path", cfg.SourceFileName), zap.Int("bytes", len(source)))
	if _, err := ctx.Walk(program); err != nil {
		return nil, nil, err
	}
	return program, ctx, nil
}

func (e *Engine) parse(name, source string) (*ast.Program, error) {
	return e.parser.ParseProgram([]byte(source), parser.Options{SourceFileName: name})
}

func (e *Engine) newContext(cfg Config) (*Context, error) {
	ctx := NewContext(cfg.Logger)
	ctx.Path = cfg.SourceFileName
	if cfg.MaxExpansionDepth > 0 {
		ctx.MaxExpansionDepth = cfg.MaxExpansionDepth
	}
	ctx.parse = e.parse
	ctx.templates = e.templates

	for name, raw := range cfg.Values {
		v, err := runtime.Normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("evaluator: value %s: %w", name, err)
		}
		ctx.Values.Define(name, named(name, v))
	}
	for name, fn := range cfg.Functions {
		if fn == nil {
			return nil, fmt.Errorf("evaluator: function %s has no implementation", name)
		}
		ctx.Functions[name] = runtime.NativeFunctionValue{Name: name, Arity: -1, Impl: fn}
	}
	for name, m := range cfg.Macros {
		if m == nil {
			return nil, fmt.Errorf("evaluator: macro %s has no implementation", name)
		}
		ctx.Macros[name] = m
	}

	names := make([]string, 0, len(cfg.ASTs))
	for name := range cfg.ASTs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		tree, err := e.namedTree(ctx, name, cfg.ASTs[name])
		if err != nil {
			return nil, err
		}
		ctx.ASTs[name] = tree
	}
	return ctx, nil
}

// namedTree reduces one ASTs entry with no bindings. Trees supplied by the
// caller are copied first.
func (e *Engine) namedTree(ctx *Context, name string, raw any) (ast.Node, error) {
	var tree ast.Node
	switch v := raw.(type) {
	case string:
		program, err := e.parse("ast "+name, v)
		if err != nil {
			return nil, fmt.Errorf("evaluator: ast %s: %w", name, err)
		}
		tree = program
	case ast.Node:
		if ast.IsNil(v) {
			return nil, fmt.Errorf("evaluator: ast %s is nil", name)
		}
		tree = ast.Clone(v)
	default:
		return nil, fmt.Errorf("evaluator: ast %s: unsupported type %T", name, raw)
	}
	out, err := ctx.bare().Walk(tree)
	if err != nil {
		return nil, err
	}
	if ast.IsNil(out) {
		return ast.NewProgram(nil), nil
	}
	return out, nil
}

// named fills in the name of a bare function value so errors can refer to
// it.
func named(name string, v runtime.Value) runtime.Value {
	if fn, ok := v.(runtime.NativeFunctionValue); ok && fn.Name == "" {
		fn.Name = name
		return fn
	}
	return v
}

// Evaluate is Engine.Evaluate with a parser created for the call.
func Evaluate(source string, cfg Config) (*Result, error) {
	e, err := NewEngine()
	if err != nil {
		return nil, err
	}
	defer e.Close()
	return e.Evaluate(source, cfg)
}

// EvaluateToTree is Engine.EvaluateToTree with a parser created for the
// call.
func EvaluateToTree(source string, cfg Config) (*ast.Program, error) {
	e, err := NewEngine()
	if err != nil {
		return nil, err
	}
	defer e.Close()
	return e.EvaluateToTree(source, cfg)
}
