package provider

import (
	"github.com/liancheng/joule/ast"
	"github.com/liancheng/joule/protocol"
)

// RenameProvider renames a variable or a field, single-file only (§9
// Open Question: a field rename does not chase workspace-wide users the
// way ReferencesProvider does, since a blind multi-file text rewrite
// risks touching an unrelated field that happens to share a name in a
// document this provider never parsed).
type RenameProvider struct{}

func NewRenameProvider() *RenameProvider { return &RenameProvider{} }

func (p *RenameProvider) PrepareRename(doc *ast.Document, pos protocol.Position) (*protocol.PrepareRenameResult, bool) {
	if doc == nil || !doc.Resolved {
		return nil, false
	}
	switch n := NodeAt(doc, pos).(type) {
	case *ast.VarRef:
		if n.Bound == nil {
			return nil, false
		}
		return &protocol.PrepareRenameResult{Range: n.Location().Range, Placeholder: n.Name}, true
	case *ast.Var:
		return &protocol.PrepareRenameResult{Range: n.Location().Range, Placeholder: n.Name}, true
	case *ast.FieldRef:
		return &protocol.PrepareRenameResult{Range: n.Location().Range, Placeholder: n.Name}, true
	case *ast.FixedKey:
		if _, ok := n.Parent().(*ast.Field); ok {
			return &protocol.PrepareRenameResult{Range: n.Location().Range, Placeholder: n.Name}, true
		}
		return nil, false
	default:
		return nil, false
	}
}

func (p *RenameProvider) Rename(doc *ast.Document, pos protocol.Position, newName string) (*protocol.WorkspaceEdit, bool) {
	if doc == nil || !doc.Resolved {
		return nil, false
	}
	switch n := NodeAt(doc, pos).(type) {
	case *ast.VarRef:
		if n.Bound == nil {
			return nil, false
		}
		return varRenameEdit(doc, n.Bound, newName), true
	case *ast.Var:
		return varRenameEdit(doc, n, newName), true
	case *ast.FieldRef:
		return fieldRenameEdit(doc, n.Name, newName), true
	case *ast.FixedKey:
		if _, ok := n.Parent().(*ast.Field); ok {
			return fieldRenameEdit(doc, n.Name, newName), true
		}
		return nil, false
	default:
		return nil, false
	}
}

func varRenameEdit(doc *ast.Document, v *ast.Var, newName string) *protocol.WorkspaceEdit {
	edits := []protocol.TextEdit{{Range: v.Location().Range, NewText: newName}}
	for _, ref := range v.References {
		edits = append(edits, protocol.TextEdit{Range: ref.Location().Range, NewText: newName})
	}
	return &protocol.WorkspaceEdit{Changes: map[protocol.URI][]protocol.TextEdit{doc.URI: edits}}
}

func fieldRenameEdit(doc *ast.Document, name, newName string) *protocol.WorkspaceEdit {
	var edits []protocol.TextEdit
	ast.Walk(doc.Body, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.Field:
			if fk, ok := v.Key.(*ast.FixedKey); ok && fk.Name == name {
				edits = append(edits, protocol.TextEdit{Range: fk.Location().Range, NewText: newName})
			}
		case *ast.FieldAccess:
			if v.Field.Name == name {
				edits = append(edits, protocol.TextEdit{Range: v.Field.Location().Range, NewText: newName})
			}
		}
		return true
	}, nil)
	return &protocol.WorkspaceEdit{Changes: map[protocol.URI][]protocol.TextEdit{doc.URI: edits}}
}
