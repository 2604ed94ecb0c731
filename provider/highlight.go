package provider

import (
	"github.com/liancheng/joule/ast"
	"github.com/liancheng/joule/protocol"
)

// DocumentHighlightProvider answers the document-local read/write
// highlight request: a variable's binding site and every VarRef the
// resolver linked to it, or (for a field) every FixedKey declaration and
// FieldAccess use within the current document only — unlike
// ReferencesProvider this never crosses file boundaries.
type DocumentHighlightProvider struct{}

func NewDocumentHighlightProvider() *DocumentHighlightProvider { return &DocumentHighlightProvider{} }

func (p *DocumentHighlightProvider) Serve(doc *ast.Document, pos protocol.Position) []protocol.Highlight {
	if doc == nil || !doc.Resolved {
		return nil
	}
	switch n := NodeAt(doc, pos).(type) {
	case *ast.VarRef:
		if n.Bound == nil {
			return nil
		}
		return varHighlights(n.Bound)
	case *ast.Var:
		return varHighlights(n)
	case *ast.FieldRef:
		return fieldHighlights(doc, n.Name)
	case *ast.FixedKey:
		if _, ok := n.Parent().(*ast.Field); ok {
			return fieldHighlights(doc, n.Name)
		}
		return nil
	default:
		return nil
	}
}

func varHighlights(v *ast.Var) []protocol.Highlight {
	out := []protocol.Highlight{{Range: v.Location().Range, Kind: protocol.HighlightKindWrite}}
	for _, ref := range v.References {
		out = append(out, protocol.Highlight{Range: ref.Location().Range, Kind: protocol.HighlightKindRead})
	}
	return out
}

func fieldHighlights(doc *ast.Document, name string) []protocol.Highlight {
	var out []protocol.Highlight
	ast.Walk(doc.Body, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.Field:
			if fk, ok := v.Key.(*ast.FixedKey); ok && fk.Name == name {
				out = append(out, protocol.Highlight{Range: fk.Location().Range, Kind: protocol.HighlightKindWrite})
			}
		case *ast.FieldAccess:
			if v.Field.Name == name {
				out = append(out, protocol.Highlight{Range: v.Field.Location().Range, Kind: protocol.HighlightKindRead})
			}
		}
		return true
	}, nil)
	return out
}
