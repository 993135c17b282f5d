package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"mytacism/evaluator-go/pkg/ast"
	"mytacism/evaluator-go/pkg/parser/language"
)

// ModuleParser wraps a tree-sitter parser configured for JavaScript.
type ModuleParser struct {
	parser *sitter.Parser
}

// NewModuleParser constructs a parser with the JavaScript language loaded.
func NewModuleParser() (*ModuleParser, error) {
	lang := language.JavaScript()
	if lang == nil {
		return nil, fmt.Errorf("parser: javascript language not available")
	}

	p := sitter.NewParser()
	if err := p.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}

	return &ModuleParser{parser: p}, nil
}

// Close releases parser resources.
func (p *ModuleParser) Close() {
	if p == nil || p.parser == nil {
		return
	}
	p.parser.Close()
}

// Options carries per-file parse settings.
type Options struct {
	// SourceFileName labels positions in errors and source maps.
	SourceFileName string
}

// ParseProgram parses source into a sealed program tree. Every node keeps a
// reference to its original bytes so an untouched subtree can be printed
// verbatim.
func (p *ModuleParser) ParseProgram(source []byte, opts Options) (*ast.Program, error) {
	if p == nil || p.parser == nil {
		return nil, fmt.Errorf("parser: nil parser")
	}

	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parser: parse failed")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.Kind() != "program" {
		return nil, fmt.Errorf("parser: unexpected root node")
	}
	if root.HasError() {
		return nil, newSyntaxError(opts.SourceFileName, source, findError(root))
	}

	ctx := &parseContext{
		source: source,
		src:    &ast.Source{Name: opts.SourceFileName, Text: source},
	}

	body, err := ctx.parseStatementList(namedChildren(root))
	if err != nil {
		return nil, err
	}

	program := ast.NewProgram(body)
	ctx.annotate(program, root)
	ast.SetOrigin(program, ctx.src, 0, len(source))
	ast.Seal(program)
	return program, nil
}

func (ctx *parseContext) parseStatementList(nodes []*sitter.Node) ([]ast.Statement, error) {
	body := make([]ast.Statement, 0, len(nodes))
	for _, node := range nodes {
		stmt, err := ctx.parseStatement(node)
		if err != nil {
			return nil, err
		}
		if stmt == nil {
			return nil, fmt.Errorf("parser: unsupported statement node %q", node.Kind())
		}
		body = append(body, stmt)
	}
	return body, nil
}
