package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"mytacism/evaluator-go/pkg/ast"
)

type parseContext struct {
	source []byte
	src    *ast.Source
}

// SyntaxError reports input the grammar could not parse.
type SyntaxError struct {
	File   string
	Line   int
	Column int
	Near   string
}

func (e *SyntaxError) Error() string {
	loc := fmt.Sprintf("line %d, column %d", e.Line, e.Column)
	if e.File != "" {
		loc = fmt.Sprintf("%s:%d:%d", e.File, e.Line, e.Column)
	}
	if e.Near == "" {
		return fmt.Sprintf("parser: syntax error at %s", loc)
	}
	return fmt.Sprintf("parser: syntax error at %s near %q", loc, e.Near)
}

func newSyntaxError(file string, source []byte, node *sitter.Node) *SyntaxError {
	err := &SyntaxError{File: file, Line: 1, Column: 1}
	if node == nil {
		return err
	}
	span := spanFromNode(node)
	err.Line = span.Start.Line
	err.Column = span.Start.Column
	near := sliceContent(node, source)
	if len(near) > 20 {
		near = near[:20]
	}
	err.Near = near
	return err
}

// Parse is a one-shot helper that builds a parser, parses source, and
// releases the parser.
func Parse(source []byte, opts Options) (*ast.Program, error) {
	p, err := NewModuleParser()
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return p.ParseProgram(source, opts)
}
