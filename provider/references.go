package provider

import (
	"regexp"
	"sort"

	"github.com/liancheng/joule/ast"
	"github.com/liancheng/joule/loader"
	"github.com/liancheng/joule/protocol"
	"github.com/liancheng/joule/source"
)

// ReferencesProvider answers find-references for both variables (§4.5,
// document-local — Var.References the resolver already linked) and
// fields (workspace-wide, since a field's readers can live in any file
// that imports its object).
type ReferencesProvider struct {
	Loader *loader.Loader
	Store  source.Store

	def *DefinitionProvider
}

func NewReferencesProvider(l *loader.Loader, st source.Store) *ReferencesProvider {
	return &ReferencesProvider{Loader: l, Store: st, def: NewDefinitionProvider(l)}
}

func (p *ReferencesProvider) Serve(doc *ast.Document, pos protocol.Position, includeDeclaration bool) []protocol.Location {
	if doc == nil || !doc.Resolved {
		return nil
	}
	switch n := NodeAt(doc, pos).(type) {
	case *ast.VarRef:
		if n.Bound == nil {
			return nil
		}
		return varReferences(n.Bound, includeDeclaration)
	case *ast.Var:
		return varReferences(n, includeDeclaration)
	case *ast.FieldRef:
		return p.fieldReferences(n.Name, locationSet(p.def.findFieldBinding(n)), includeDeclaration)
	case *ast.FixedKey:
		if _, ok := n.Parent().(*ast.Field); ok {
			return p.fieldReferences(n.Name, locationSet([]protocol.Location{toProtocolLocation(n.Location())}), includeDeclaration)
		}
		return nil
	default:
		return nil
	}
}

func varReferences(v *ast.Var, includeDeclaration bool) []protocol.Location {
	var out []protocol.Location
	if includeDeclaration {
		out = append(out, toProtocolLocation(v.Location()))
	}
	for _, ref := range v.References {
		out = append(out, toProtocolLocation(ref.Location()))
	}
	sortLocations(out)
	return out
}

// locationSet builds a membership set out of a findFieldBinding result so
// fieldReferences can test "does this FieldAccess's own binding point at
// the queried FixedKey" in constant time per candidate.
func locationSet(locs []protocol.Location) map[protocol.Location]bool {
	out := make(map[protocol.Location]bool, len(locs))
	for _, l := range locs {
		out[l] = true
	}
	return out
}

// fieldReferences scans every recognized file in the workspace. A
// textual \b<name>\b pre-filter against the raw source skips parsing
// files that cannot possibly mention the field, since most of a large
// workspace never does. For each FieldAccess surviving the pre-filter,
// p.def.findFieldBinding runs the same resolution DefinitionProvider
// would for that access (§4.4), and the access is only reported if one of
// its bindings lands in targetLocs — two unrelated objects that merely
// share a field name never cross-reference each other this way.
func (p *ReferencesProvider) fieldReferences(name string, targetLocs map[protocol.Location]bool, includeDeclaration bool) []protocol.Location {
	uris, err := p.Loader.Walk()
	if err != nil {
		return nil
	}
	pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)

	var out []protocol.Location
	for _, u := range uris {
		content, err := p.Store.Read(u)
		if err != nil || !pattern.MatchString(content) {
			continue
		}
		doc := p.Loader.Get(u)
		if doc == nil || !doc.Resolved {
			continue
		}
		ast.Walk(doc.Body, func(n ast.Node) bool {
			fa, ok := n.(*ast.FieldAccess)
			if !ok || fa.Field.Name != name {
				return true
			}
			for _, b := range p.def.findFieldBinding(fa.Field) {
				if targetLocs[b] {
					out = append(out, toProtocolLocation(fa.Field.Location()))
					break
				}
			}
			return true
		}, nil)
	}
	if includeDeclaration {
		for loc := range targetLocs {
			out = append(out, loc)
		}
	}
	sortLocations(out)
	return out
}

func sortLocations(locs []protocol.Location) {
	sort.Slice(locs, func(i, j int) bool {
		return protocol.CompareLocations(locs[i], locs[j]) < 0
	})
}
