package provider

import (
	"fmt"

	"github.com/liancheng/joule/ast"
	"github.com/liancheng/joule/protocol"
)

// InlayHintProvider emits two hint families: a reference-count hint at
// each binding site, and a points-to hint at each resolved usage.
type InlayHintProvider struct{}

func NewInlayHintProvider() *InlayHintProvider { return &InlayHintProvider{} }

func (p *InlayHintProvider) Serve(doc *ast.Document) []protocol.InlayHint {
	if doc == nil || !doc.Resolved {
		return nil
	}
	var out []protocol.InlayHint
	ast.Walk(doc.Body, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.Var:
			out = append(out, protocol.InlayHint{
				Position: v.Location().Range.End,
				Label:    fmt.Sprintf("%d refs", len(v.References)),
				Kind:     protocol.InlayHintKindBinding,
			})
		case *ast.VarRef:
			if v.Bound == nil {
				return true
			}
			loc := v.Bound.Location()
			out = append(out, protocol.InlayHint{
				Position: v.Location().Range.End,
				Label:    fmt.Sprintf("-> %d:%d", loc.Range.Start.Line+1, loc.Range.Start.Character+1),
				Kind:     protocol.InlayHintKindReference,
			})
		}
		return true
	}, nil)
	return out
}
