package evaluator

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"mytacism/evaluator-go/pkg/ast"
	"mytacism/evaluator-go/pkg/printer"
)

// Error kinds. Every *Error unwraps to exactly one of these, so callers can
// use errors.Is(err, evaluator.ErrUnknownProperty).
var (
	ErrReferencedNotInvoked    = errors.New("referenced but not invoked")
	ErrInvalidAssignmentTarget = errors.New("invalid assignment target")
	ErrInvalidDeleteTarget     = errors.New("invalid delete target")
	ErrConstantMutation        = errors.New("constant mutation")
	ErrNonStaticArguments      = errors.New("non-static arguments")
	ErrUnknownProperty         = errors.New("unknown property")
	ErrMacroExpansionTooDeep   = errors.New("macro expansion too deep")
	ErrFunctionFailed          = errors.New("compile-time function failed")
	ErrMacroFailed             = errors.New("macro failed")
	ErrUnrepresentableValue    = errors.New("unrepresentable value")
	ErrInvalidExpansion        = errors.New("invalid expansion")
)

// Error is a compile-time failure tied to the node that caused it.
type Error struct {
	Kind    error
	Message string
	Span    ast.Span
	Path    string
	// Err is the underlying failure of a compile-time function or macro.
	Err error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	line, col := e.Span.Start.Line, e.Span.Start.Column
	switch {
	case line == 0:
		if e.Path != "" {
			return fmt.Sprintf("%s: %s", e.Path, msg)
		}
		return msg
	case e.Path != "":
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, line, col, msg)
	default:
		return fmt.Sprintf("%s at line %d, column %d", msg, line, col)
	}
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func (w *walker) fail(kind error, node ast.Node, format string, args ...any) *Error {
	err := &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Path: w.ctx.Path}
	if !ast.IsNil(node) {
		err.Span = node.Span()
	}
	return err
}

func (w *walker) failWith(kind error, cause error, node ast.Node, format string, args ...any) *Error {
	err := w.fail(kind, node, format, args...)
	err.Err = cause
	return err
}

// describe renders a short excerpt of n for error messages.
func describe(n ast.Node) string {
	text := printer.String(n)
	if utf8.RuneCountInString(text) > 40 {
		text = string([]rune(text)[:37]) + "..."
	}
	return text
}
