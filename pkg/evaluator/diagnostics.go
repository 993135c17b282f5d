package evaluator

import (
	"fmt"

	"go.uber.org/zap"

	"mytacism/evaluator-go/pkg/ast"
)

// Diagnostic is a non-fatal note about the input, such as syntax the
// evaluator passed through without understanding it.
type Diagnostic struct {
	Message string
	Node    ast.NodeType
	Span    ast.Span
	Path    string
}

func (d Diagnostic) String() string {
	if d.Span.Start.Line == 0 {
		return d.Message
	}
	if d.Path != "" {
		return fmt.Sprintf("%s:%d:%d: %s", d.Path, d.Span.Start.Line, d.Span.Start.Column, d.Message)
	}
	return fmt.Sprintf("%s at line %d, column %d", d.Message, d.Span.Start.Line, d.Span.Start.Column)
}

// Diagnostics collects diagnostics for one evaluation and mirrors each one
// to the logger at warn level.
type Diagnostics struct {
	logger *zap.Logger
	items  []Diagnostic
}

func NewDiagnostics(logger *zap.Logger) *Diagnostics {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Diagnostics{logger: logger}
}

// Report records a diagnostic about node.
func (d *Diagnostics) Report(path string, node ast.Node, format string, args ...any) {
	if d == nil {
		return
	}
	diag := Diagnostic{Message: fmt.Sprintf(format, args...), Path: path}
	if !ast.IsNil(node) {
		diag.Node = node.NodeType()
		diag.Span = node.Span()
	}
	d.items = append(d.items, diag)
	d.logger.Warn(diag.Message,
		zap.String("path", path),
		zap.String("node", string(diag.Node)),
		zap.Int("line", diag.Span.Start.Line),
		zap.Int("column", diag.Span.Start.Column),
	)
}

// Items returns the diagnostics collected so far.
func (d *Diagnostics) Items() []Diagnostic {
	if d == nil {
		return nil
	}
	out := make([]Diagnostic, len(d.items))
	copy(out, d.items)
	return out
}

func (d *Diagnostics) Len() int {
	if d == nil {
		return 0
	}
	return len(d.items)
}
