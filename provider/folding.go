package provider

import (
	"github.com/liancheng/joule/ast"
	"github.com/liancheng/joule/protocol"
)

// FoldingRangeProvider folds every Array, Object, ObjComp, ListComp, and
// Fn that spans more than one line.
type FoldingRangeProvider struct{}

func NewFoldingRangeProvider() *FoldingRangeProvider { return &FoldingRangeProvider{} }

func (p *FoldingRangeProvider) Serve(doc *ast.Document) []protocol.FoldingRange {
	if doc == nil {
		return nil
	}
	var out []protocol.FoldingRange
	ast.Walk(doc.Body, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.Object, *ast.Array, *ast.ObjComp, *ast.ListComp, *ast.Fn:
			r := n.Location().Range
			if r.End.Line > r.Start.Line {
				out = append(out, protocol.FoldingRange{StartLine: r.Start.Line, EndLine: r.End.Line})
			}
		}
		return true
	}, nil)
	return out
}
