package cst

import "fmt"

// Position is a zero-based (line, UTF-16 code unit) pair. It deliberately
// mirrors protocol.Position's shape without importing it: the CST layer is
// the one piece of this system modeled as an external parser library, and
// external parsers don't depend on the LSP-shaped result types upstream
// packages use.
type Position struct {
	Line      uint32
	Character uint32
}

// Range is a half-open [Start, End) span.
type Range struct {
	Start Position
	End   Position
}

// Node is a labelled node in the concrete syntax tree: a kind string, a
// source range, and either a leaf Text or a list of child Nodes. This is
// the same shape a tree-sitter grammar would hand back (kind, named
// children, field-name lookup), scaled down to what the rest of the system
// needs.
type Node struct {
	Kind     string
	Range    Range
	Text     string // set on leaf (token) nodes
	Named    bool
	Field    string // the field name the parent assigned this child, if any
	Children []*Node
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s[%d:%d-%d:%d]", n.Kind, n.Range.Start.Line, n.Range.Start.Character, n.Range.End.Line, n.Range.End.Character)
}

// NamedChildren returns the subset of Children with Named set, in document
// order. Comments are named too; NonCommentChildren leaves them out.
func (n *Node) NamedChildren() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Named {
			out = append(out, c)
		}
	}
	return out
}

// NonCommentChildren returns NamedChildren with comment nodes removed —
// the Go analogue of original_source's strip_comments helper.
func (n *Node) NonCommentChildren() []*Node {
	var out []*Node
	for _, c := range n.NamedChildren() {
		if c.Kind != "comment" {
			out = append(out, c)
		}
	}
	return out
}

// ChildByField returns the first child assigned the given field name, or
// nil.
func (n *Node) ChildByField(name string) *Node {
	for _, c := range n.Children {
		if c.Field == name {
			return c
		}
	}
	return nil
}

// ChildrenByField returns every child assigned the given field name.
func (n *Node) ChildrenByField(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Field == name {
			out = append(out, c)
		}
	}
	return out
}
