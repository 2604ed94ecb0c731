// Package provider implements the query providers of §4.4-§4.6: given a
// scope-resolved Document and a position, each answers one editor
// request by walking the bound AST and following composition, field
// access, call, self/super/$, and import.
package provider

import (
	"github.com/liancheng/joule/ast"
	"github.com/liancheng/joule/loader"
	"github.com/liancheng/joule/protocol"
)

// DefinitionProvider computes definition sites for variable, parameter,
// and field references (§4.4).
type DefinitionProvider struct {
	Loader *loader.Loader
}

func NewDefinitionProvider(l *loader.Loader) *DefinitionProvider {
	return &DefinitionProvider{Loader: l}
}

func toProtocolLocation(loc ast.Location) protocol.Location {
	return protocol.Location{URI: loc.URI, Range: loc.Range}
}

// NodeAt locates the narrowest node of doc at pos.
func NodeAt(doc *ast.Document, pos protocol.Position) ast.Node {
	return ast.NodeAt(doc, func(loc ast.Location) bool {
		return protocol.PositionInRange(loc.Range, pos)
	})
}

// Serve implements the §4.4 entry point. doc must be scope-resolved;
// callers (the WorkspaceService) are expected to have already loaded it
// through the same Loader this provider holds.
func (p *DefinitionProvider) Serve(doc *ast.Document, pos protocol.Position) []protocol.Location {
	if doc == nil || !doc.Resolved {
		return nil
	}
	switch n := NodeAt(doc, pos).(type) {
	case *ast.VarRef:
		if n.Bound == nil {
			return nil
		}
		return []protocol.Location{toProtocolLocation(n.Bound.Location())}
	case *ast.FieldRef:
		return p.findFieldBinding(n)
	case *ast.ParamRef:
		return p.findParamBinding(n)
	default:
		return nil
	}
}

// findFieldBinding implements §4.4's field lookup: the FieldAccess
// parent's object field-scope set is computed, and ref.Name is looked up
// in each.
func (p *DefinitionProvider) findFieldBinding(ref *ast.FieldRef) []protocol.Location {
	fa, ok := ref.Parent().(*ast.FieldAccess)
	if !ok || fa.Field != ref {
		return nil
	}
	scopes := p.findFieldScope(fa.Obj, map[string]bool{})
	var out []protocol.Location
	for _, s := range scopes {
		for _, b := range s.Lookup(ref.Name) {
			out = append(out, toProtocolLocation(b.KeyLoc))
		}
	}
	return out
}

// findFieldScope is the §4.4 central recursive procedure. visited guards
// import cycles, keyed by resolved URI string.
func (p *DefinitionProvider) findFieldScope(e ast.Expr, visited map[string]bool) []*ast.FieldScope {
	switch v := e.(type) {
	case *ast.Object:
		if v.FieldScope == nil {
			return nil
		}
		return []*ast.FieldScope{v.FieldScope}

	case *ast.Binary:
		if v.Op != "+" {
			return nil
		}
		l := p.findFieldScope(v.Lhs, visited)
		r := p.findFieldScope(v.Rhs, visited)
		if len(l) == 0 {
			return r
		}
		if len(r) == 0 {
			return l
		}
		out := make([]*ast.FieldScope, 0, len(l)*len(r))
		for _, lf := range l {
			for _, rf := range r {
				out = append(out, ast.ComposeFieldScope(lf, rf))
			}
		}
		return out

	case *ast.FieldAccess:
		var out []*ast.FieldScope
		for _, s := range p.findFieldScope(v.Obj, visited) {
			for _, b := range s.Lookup(v.Field.Name) {
				out = append(out, p.findFieldScope(b.Target.Value, visited)...)
			}
		}
		return out

	case *ast.VarRef:
		if v.Bound == nil {
			return nil
		}
		target := varTarget(v.Bound)
		if target == nil {
			return nil
		}
		return p.findFieldScope(target, visited)

	case *ast.If:
		out := p.findFieldScope(v.Consequence, visited)
		if v.Alternative != nil {
			out = append(out, p.findFieldScope(v.Alternative, visited)...)
		}
		return out

	case *ast.Import:
		if v.Kind != ast.ImportDefault {
			return nil
		}
		doc, ok := p.followImport(v, visited)
		if !ok || doc.Body == nil {
			return nil
		}
		return p.findFieldScope(doc.Body, visited)

	case *ast.Self:
		if s := enclosingObjectScope(v); s != nil {
			return []*ast.FieldScope{s}
		}
		return nil

	case *ast.Dollar:
		if s := outermostObjectScope(v); s != nil {
			return []*ast.FieldScope{s}
		}
		return nil

	case *ast.Local:
		return p.findFieldScope(v.Body, visited)
	case *ast.Fn:
		return p.findFieldScope(v.Body, visited)
	case *ast.AssertExpr:
		return p.findFieldScope(v.Body, visited)

	default:
		return nil
	}
}

// varTarget returns the expression a Var's binding site actually
// produces: a Bind's value, or a Param's default (nil for a required
// parameter, and for a ForSpec iteration variable, which iterates rather
// than denoting one expression).
func varTarget(v *ast.Var) ast.Expr {
	switch owner := v.Parent().(type) {
	case *ast.Bind:
		return owner.Value
	case *ast.Param:
		return owner.Default
	default:
		return nil
	}
}

func enclosingObjectScope(n ast.Node) *ast.FieldScope {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		if o, ok := cur.(*ast.Object); ok {
			return o.FieldScope
		}
	}
	return nil
}

func outermostObjectScope(n ast.Node) *ast.FieldScope {
	var last *ast.Object
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		if o, ok := cur.(*ast.Object); ok {
			last = o
		}
	}
	if last == nil {
		return nil
	}
	return last.FieldScope
}

// followImport resolves and loads imp's importee, guarding against
// cycles via visited (§4.4 Termination).
func (p *DefinitionProvider) followImport(imp *ast.Import, visited map[string]bool) (*ast.Document, bool) {
	resolved, ok := p.Loader.Resolve(imp.Location().URI, imp.Path.Raw)
	if !ok {
		return nil, false
	}
	key := string(resolved)
	if visited[key] {
		return nil, false
	}
	visited[key] = true
	doc := p.Loader.Get(resolved)
	if doc == nil {
		return nil, false
	}
	return doc, true
}

// findParamBinding implements §4.4's parameter lookup.
func (p *DefinitionProvider) findParamBinding(ref *ast.ParamRef) []protocol.Location {
	arg, ok := ref.Parent().(*ast.Arg)
	if !ok || arg.Name != ref {
		return nil
	}
	call, ok := arg.Parent().(*ast.Call)
	if !ok {
		return nil
	}
	fns := p.findFn(call.Fn, map[string]bool{})
	var out []protocol.Location
	for _, fn := range fns {
		for _, prm := range fn.Params {
			if prm.ID.Name == ref.Name {
				out = append(out, toProtocolLocation(prm.ID.Location()))
			}
		}
	}
	return out
}

// findFn implements §4.4's find_fn.
func (p *DefinitionProvider) findFn(e ast.Expr, visited map[string]bool) []*ast.Fn {
	switch v := e.(type) {
	case *ast.Fn:
		return []*ast.Fn{v}

	case *ast.VarRef:
		if v.Bound == nil {
			return nil
		}
		target := varTarget(v.Bound)
		if target == nil {
			return nil
		}
		return p.findFn(target, visited)

	case *ast.FieldAccess:
		var out []*ast.Fn
		for _, s := range p.findFieldScope(v.Obj, visited) {
			for _, b := range s.Lookup(v.Field.Name) {
				out = append(out, p.findFn(b.Target.Value, visited)...)
			}
		}
		return out

	case *ast.Import:
		if v.Kind != ast.ImportDefault {
			return nil
		}
		doc, ok := p.followImport(v, visited)
		if !ok {
			return nil
		}
		return p.findFn(doc.Body, visited)

	default:
		return nil
	}
}
