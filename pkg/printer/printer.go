package printer

import (
	"bytes"
	"fmt"
	"strings"

	"mytacism/evaluator-go/pkg/ast"
)

// Options configures Print.
type Options struct {
	// SourceFileName is recorded in the source map "sources" list. It
	// defaults to the name the tree was parsed with.
	SourceFileName string
	// SourceMapName is the "file" field of the source map.
	SourceMapName string
	// Indent is one level of indentation for reprinted blocks.
	Indent string
}

// Output is printed code plus the source map relating it to the input.
type Output struct {
	Code string
	Map  *SourceMap
}

// Print regenerates source text for root. Nodes the evaluator did not touch
// are copied from their original text; rewritten nodes are spliced into the
// original text of their parent where possible and printed canonically
// otherwise.
func Print(root ast.Node, opts Options) (*Output, error) {
	if ast.IsNil(root) {
		return nil, fmt.Errorf("printer: nil tree")
	}
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	p := newPrinter(root, opts)
	if err := p.node(root); err != nil {
		return nil, err
	}
	return &Output{Code: p.buf.String(), Map: p.sourceMap()}, nil
}

// String prints node without a source map. It is meant for messages and
// tests; printing errors are rendered inline.
func String(node ast.Node) string {
	out, err := Print(node, Options{})
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return out.Code
}

type printer struct {
	opts     Options
	buf      strings.Builder
	line     int
	col      int
	indent   string
	primary  *ast.Source
	lines    []int
	pristine map[ast.Node]bool
	mappings []mapping
}

func newPrinter(root ast.Node, opts Options) *printer {
	p := &printer{opts: opts, pristine: map[ast.Node]bool{}}
	if o := root.Origin(); o != nil && o.Source != nil {
		p.primary = o.Source
	} else {
		ast.Inspect(root, func(n ast.Node) bool {
			if o := n.Origin(); o != nil && o.Source != nil {
				p.primary = o.Source
				return false
			}
			return p.primary == nil
		})
	}
	if p.primary != nil {
		p.lines = lineStarts(p.primary.Text)
	}
	return p
}

func (p *printer) write(s string) {
	p.buf.WriteString(s)
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			p.line++
			p.col = 0
		} else {
			p.col++
		}
	}
}

// copyOriginal writes src.Text[start:end], mapping the start of the span and
// of every line inside it.
func (p *printer) copyOriginal(src *ast.Source, start, end int) {
	if start >= end || start < 0 || end > len(src.Text) {
		return
	}
	text := src.Text[start:end]
	if src != p.primary {
		p.write(string(text))
		return
	}
	p.mapOffset(start)
	for i := 0; i < len(text); {
		j := bytes.IndexByte(text[i:], '\n')
		if j < 0 {
			p.write(string(text[i:]))
			return
		}
		p.write(string(text[i : i+j+1]))
		i += j + 1
		if i < len(text) {
			p.mapOffset(start + i)
		}
	}
}

// node prints n verbatim when it is untouched, patched into its original
// text when only some children changed, and canonically otherwise.
func (p *printer) node(n ast.Node) error {
	if ast.IsNil(n) {
		return nil
	}
	o := n.Origin()
	if o != nil && o.Source != nil {
		if p.isPristine(n) {
			p.copyOriginal(o.Source, o.Start, o.End)
			return nil
		}
		if patched, err := p.patch(n); patched || err != nil {
			return err
		}
		if o.Source == p.primary {
			p.mapOffset(o.Start)
		}
	}
	return p.canonical(n)
}

func (p *printer) isPristine(n ast.Node) bool {
	if ast.IsNil(n) {
		return true
	}
	if v, ok := p.pristine[n]; ok {
		return v
	}
	ok := n.Origin() != nil && ast.Unchanged(n)
	if ok {
		for _, child := range ast.Children(n) {
			if child != nil && !p.isPristine(child) {
				ok = false
				break
			}
		}
	}
	p.pristine[n] = ok
	return ok
}

type edit struct {
	child      ast.Node
	start, end int
}

// patch reprints only the changed children of n inside n's original text.
// It gives up when the shape of n changed.
func (p *printer) patch(n ast.Node) (bool, error) {
	o := n.Origin()
	before := o.Children()
	after := ast.Children(n)
	if before == nil || len(before) != len(after) {
		return false, nil
	}
	pos := o.Start
	var edits []edit
	for i := range after {
		b, a := before[i], after[i]
		if a == nil && b == nil {
			continue
		}
		if a == nil || b == nil {
			return false, nil
		}
		bo := b.Origin()
		if bo == nil || bo.Source != o.Source || bo.Start < pos || bo.End > o.End {
			return false, nil
		}
		pos = bo.End
		if a == b && p.isPristine(a) {
			continue
		}
		edits = append(edits, edit{child: a, start: bo.Start, end: bo.End})
	}

	pos = o.Start
	for _, e := range edits {
		p.copyOriginal(o.Source, pos, e.start)
		saved := p.indent
		p.indent = lineIndent(o.Source.Text, e.start)
		err := p.sub(n, e.child)
		p.indent = saved
		if err != nil {
			return true, err
		}
		pos = e.end
	}
	p.copyOriginal(o.Source, pos, o.End)
	return true, nil
}

// statementList prints a statement container. Whitespace and comments
// between statements that were neighbours in the source are kept.
func (p *printer) statementList(container ast.Node, before []ast.Node, stmts []ast.Statement, braced bool) error {
	stmts = flatten(stmts)
	if len(stmts) == 0 {
		if braced {
			p.write("{}")
		}
		return nil
	}

	o := container.Origin()
	var src *ast.Source
	if o != nil {
		src = o.Source
	}
	index := func(s ast.Statement) int {
		for i, b := range before {
			if b != nil && b == ast.Node(s) {
				return i
			}
		}
		return -1
	}
	sameSource := func(s ast.Statement) bool {
		so := s.Origin()
		return src != nil && so != nil && so.Source == src
	}

	outer := p.indent
	inner := outer
	if braced {
		inner += p.opts.Indent
	}

	first := stmts[0]
	openStart := 0
	if o != nil {
		openStart = o.Start
		if braced {
			openStart++
		}
	}
	if index(first) == 0 && sameSource(first) && isTrivia(src.Text, openStart, first.Origin().Start) {
		p.copyOriginal(src, o.Start, first.Origin().Start)
	} else {
		if braced {
			p.write("{\n" + inner)
		} else if container.NodeType() != ast.NodeProgram {
			p.write("\n" + inner)
		}
	}

	p.indent = inner
	defer func() { p.indent = outer }()
	for i, stmt := range stmts {
		if i > 0 {
			prev := stmts[i-1]
			pi, ci := index(prev), index(stmt)
			if pi >= 0 && ci == pi+1 && sameSource(prev) && sameSource(stmt) &&
				isTrivia(src.Text, prev.Origin().End, stmt.Origin().Start) {
				p.copyOriginal(src, prev.Origin().End, stmt.Origin().Start)
			} else {
				p.write("\n" + inner)
			}
		}
		if err := p.node(stmt); err != nil {
			return err
		}
	}

	last := stmts[len(stmts)-1]
	closeEnd := 0
	if o != nil {
		closeEnd = o.End
		if braced {
			closeEnd--
		}
	}
	if index(last) == len(before)-1 && sameSource(last) && isTrivia(src.Text, last.Origin().End, closeEnd) {
		p.copyOriginal(src, last.Origin().End, o.End)
		return nil
	}
	switch {
	case braced:
		p.write("\n" + outer + "}")
	case container.NodeType() == ast.NodeProgram && o != nil && bytes.HasSuffix(src.Text, []byte("\n")):
		p.write("\n")
	}
	return nil
}

// flatten splices inline groups into the list and drops empty slots.
func flatten(stmts []ast.Statement) []ast.Statement {
	var out []ast.Statement
	for _, s := range stmts {
		if ast.IsNil(s) {
			continue
		}
		if b, ok := s.(*ast.BlockStatement); ok && b.Inline {
			out = append(out, flatten(b.Body)...)
			continue
		}
		out = append(out, s)
	}
	return out
}

// isTrivia reports whether text[start:end] holds only whitespace and
// comments.
func isTrivia(text []byte, start, end int) bool {
	if start > end || start < 0 || end > len(text) {
		return false
	}
	s := text[start:end]
	for i := 0; i < len(s); {
		switch {
		case s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r' || s[i] == '\f' || s[i] == '\v':
			i++
		case bytes.HasPrefix(s[i:], []byte("//")):
			j := bytes.IndexByte(s[i:], '\n')
			if j < 0 {
				return true
			}
			i += j
		case bytes.HasPrefix(s[i:], []byte("/*")):
			j := bytes.Index(s[i+2:], []byte("*/"))
			if j < 0 {
				return false
			}
			i += j + 4
		default:
			return false
		}
	}
	return true
}

func lineIndent(text []byte, offset int) string {
	start := bytes.LastIndexByte(text[:offset], '\n') + 1
	end := start
	for end < len(text) && (text[end] == ' ' || text[end] == '\t') {
		end++
	}
	return string(text[start:end])
}

func lineStarts(text []byte) []int {
	starts := []int{0}
	for i, c := range text {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}
