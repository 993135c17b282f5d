package ast

type spanSetter interface {
	setSpan(Span)
}

type originSetter interface {
	setOrigin(*Origin)
}

// SetSpan records the source span of a node built outside the parser.
func SetSpan(node Node, span Span) {
	if node == nil {
		return
	}
	if s, ok := node.(spanSetter); ok {
		s.setSpan(span)
	}
}

// Source is an input file shared by every node parsed from it.
type Source struct {
	Name string
	Text []byte
}

// Origin ties a parsed node to the bytes it was parsed from. The children
// recorded at Seal time let the printer tell whether the node was rewritten.
type Origin struct {
	Source   *Source
	Start    int
	End      int
	children []Node
	sealed   bool
}

// Text returns the original source of the node.
func (o *Origin) Text() string {
	if o == nil || o.Source == nil {
		return ""
	}
	if o.Start < 0 || o.End > len(o.Source.Text) || o.Start > o.End {
		return ""
	}
	return string(o.Source.Text[o.Start:o.End])
}

// Children returns the child slots recorded when the tree was sealed.
func (o *Origin) Children() []Node {
	if o == nil || !o.sealed {
		return nil
	}
	return o.children
}

// SetOrigin attaches source bytes to a node. The parser calls it for every
// node it builds; Seal must run once the tree is complete.
func SetOrigin(node Node, src *Source, start, end int) {
	if node == nil || src == nil {
		return
	}
	if s, ok := node.(originSetter); ok {
		s.setOrigin(&Origin{Source: src, Start: start, End: end})
	}
}

// Seal snapshots the children of every node under root.
func Seal(root Node) {
	Inspect(root, func(n Node) bool {
		if o := n.Origin(); o != nil && !o.sealed {
			o.children = Children(n)
			o.sealed = true
		}
		return true
	})
}

// Unchanged reports whether node still holds exactly the children it was
// parsed with. It does not look at descendants.
func Unchanged(node Node) bool {
	if node == nil {
		return false
	}
	o := node.Origin()
	if o == nil || !o.sealed {
		return false
	}
	current := Children(node)
	if len(current) != len(o.children) {
		return false
	}
	for i := range current {
		if !sameNode(current[i], o.children[i]) {
			return false
		}
	}
	return true
}

func sameNode(a, b Node) bool {
	if a == nil || b == nil {
		return isNilNode(a) && isNilNode(b)
	}
	return a == b
}
