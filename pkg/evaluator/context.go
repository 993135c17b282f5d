package evaluator

import (
	"go.uber.org/zap"

	"mytacism/evaluator-go/pkg/ast"
	"mytacism/evaluator-go/pkg/parser"
	"mytacism/evaluator-go/pkg/runtime"
)

// DefaultMaxExpansionDepth bounds nested macro expansion when a Config does
// not set its own limit.
const DefaultMaxExpansionDepth = 64

// Context holds the compile-time bindings for one evaluation. It is never
// modified after construction; With derives children.
type Context struct {
	// Values are constants substituted as literals.
	Values *runtime.Environment
	// Functions may only be called; their results are inlined.
	Functions map[string]runtime.NativeFunctionValue
	// Macros expand calls into syntax trees.
	Macros map[string]Macro
	// ASTs are reduced sub-trees substituted verbatim for their name.
	ASTs map[string]ast.Node

	Diagnostics       *Diagnostics
	Logger            *zap.Logger
	MaxExpansionDepth int
	// Path names the input in errors and diagnostics.
	Path string

	parse     func(name, source string) (*ast.Program, error)
	templates map[string]*ast.Program
}

// NewContext builds a context with no bindings.
func NewContext(logger *zap.Logger) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Context{
		Values:            runtime.NewEnvironment(nil),
		Functions:         map[string]runtime.NativeFunctionValue{},
		Macros:            map[string]Macro{},
		ASTs:              map[string]ast.Node{},
		Diagnostics:       NewDiagnostics(logger),
		Logger:            logger,
		MaxExpansionDepth: DefaultMaxExpansionDepth,
		templates:         map[string]*ast.Program{},
	}
}

// With returns a child context whose named sub-trees are the parent's plus
// asts. Entries in asts win over the parent's.
func (c *Context) With(asts map[string]ast.Node) *Context {
	child := *c
	child.ASTs = make(map[string]ast.Node, len(c.ASTs)+len(asts))
	for name, tree := range c.ASTs {
		child.ASTs[name] = tree
	}
	for name, tree := range asts {
		child.ASTs[name] = tree
	}
	return &child
}

// bare returns a context sharing c's sinks and parser but no bindings.
func (c *Context) bare() *Context {
	child := NewContext(c.Logger)
	child.Diagnostics = c.Diagnostics
	child.MaxExpansionDepth = c.MaxExpansionDepth
	child.Path = c.Path
	child.parse = c.parse
	child.templates = c.templates
	return child
}

// Walk reduces node against the context and returns its replacement, which
// is nil when the node reduced to nothing. node may be modified in place.
func (c *Context) Walk(node ast.Node) (ast.Node, error) {
	w := &walker{ctx: c, env: c.Values}
	return w.walk(node)
}

// compile parses source into a fresh tree.
func (c *Context) compile(name, source string) (*ast.Program, error) {
	if c.parse != nil {
		return c.parse(name, source)
	}
	return parser.Parse([]byte(source), parser.Options{SourceFileName: name})
}

// template returns a private copy of the parsed template source.
func (c *Context) template(name, source string) (*ast.Program, error) {
	if cached, ok := c.templates[source]; ok {
		return ast.Clone(cached), nil
	}
	program, err := c.compile(name, source)
	if err != nil {
		return nil, err
	}
	if c.templates != nil {
		c.templates[source] = program
	}
	return ast.Clone(program), nil
}

func (c *Context) maxDepth() int {
	if c.MaxExpansionDepth <= 0 {
		return DefaultMaxExpansionDepth
	}
	return c.MaxExpansionDepth
}
