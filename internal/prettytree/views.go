package prettytree

import (
	"fmt"

	"github.com/liancheng/joule/ast"
	"github.com/liancheng/joule/cst"
)

// CST wraps a *cst.Node for the "t" (tree) view: the raw concrete syntax
// tree, field names included so the CST/AST correspondence is visible.
type CST struct{ N *cst.Node }

func (c CST) NodeText() string {
	if c.N.Field != "" {
		return fmt.Sprintf("%s [%s]", c.N.Kind, c.N.Field)
	}
	if c.N.Text != "" {
		return fmt.Sprintf("%s %q", c.N.Kind, c.N.Text)
	}
	return c.N.Kind
}

func (c CST) Children() []Node {
	out := make([]Node, 0, len(c.N.Children))
	for _, ch := range c.N.Children {
		out = append(out, CST{ch})
	}
	return out
}

// AST wraps an ast.Node for the "j" (jsonnet) view: the bound semantic
// tree, using ast.Describe for node labels and ast.Children for
// traversal so this view can never diverge from Walk/NodeAt.
type AST struct{ N ast.Node }

func (a AST) NodeText() string { return ast.Describe(a.N) }

func (a AST) Children() []Node {
	kids := ast.Children(a.N)
	out := make([]Node, 0, len(kids))
	for _, k := range kids {
		out = append(out, AST{k})
	}
	return out
}

// Scope wraps an ast.Node for the "s" (scope) view: the same AST
// traversal as the AST view, but a node that owns a VarScope (Object,
// Local, Fn, ListComp, ObjComp, Document) is labelled with its plain
// description followed by the names it binds.
type Scope struct{ N ast.Node }

func (s Scope) NodeText() string {
	vs := ast.ScopeOf(s.N)
	if vs == nil {
		return ast.Describe(s.N)
	}
	names := make([]string, 0, len(vs.Bindings))
	for _, b := range vs.Bindings {
		names = append(names, b.Name)
	}
	return fmt.Sprintf("%s %v", ast.Describe(s.N), names)
}

func (s Scope) Children() []Node {
	kids := ast.Children(s.N)
	out := make([]Node, 0, len(kids))
	for _, k := range kids {
		out = append(out, Scope{k})
	}
	return out
}
