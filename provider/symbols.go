package provider

import "github.com/liancheng/joule/ast"
import "github.com/liancheng/joule/protocol"

// DocumentSymbolProvider builds the nested outline §4.6 describes: object
// fields and named locals, each recursing into its value when that value
// itself contributes further symbols.
type DocumentSymbolProvider struct{}

func NewDocumentSymbolProvider() *DocumentSymbolProvider { return &DocumentSymbolProvider{} }

func (p *DocumentSymbolProvider) Serve(doc *ast.Document) []protocol.DocumentSymbol {
	if doc == nil {
		return nil
	}
	return exprSymbols(doc.Body)
}

// exprSymbols returns the symbols contributed directly inside e, looking
// through the transparent wrappers (Local, AssertExpr, If, Binary(Plus))
// the same way find_field_scope does, so a composed "a + { ... }" still
// surfaces its fields.
func exprSymbols(e ast.Expr) []protocol.DocumentSymbol {
	switch v := e.(type) {
	case *ast.Object:
		return objectSymbols(v)
	case *ast.Local:
		syms := bindSymbols(v.Binds)
		return append(syms, exprSymbols(v.Body)...)
	case *ast.AssertExpr:
		return exprSymbols(v.Body)
	case *ast.If:
		syms := exprSymbols(v.Consequence)
		if v.Alternative != nil {
			syms = append(syms, exprSymbols(v.Alternative)...)
		}
		return syms
	case *ast.Fn:
		return append(paramSymbols(v.Params), exprSymbols(v.Body)...)
	case *ast.ListComp:
		return append(forSpecSymbols(v.ForSpec, v.CompSpec), exprSymbols(v.Expr)...)
	case *ast.ObjComp:
		return append(forSpecSymbols(v.ForSpec, v.CompSpec), exprSymbols(v.Field.Value)...)
	case *ast.Binary:
		if v.Op != "+" {
			return nil
		}
		return append(exprSymbols(v.Lhs), exprSymbols(v.Rhs)...)
	default:
		return nil
	}
}

// paramSymbols turns each of a Fn's parameters into a Variable symbol, so
// a function's signature is as navigable as its body.
func paramSymbols(params []*ast.Param) []protocol.DocumentSymbol {
	out := make([]protocol.DocumentSymbol, 0, len(params))
	for _, prm := range params {
		sym := protocol.DocumentSymbol{
			Name:           prm.ID.Name,
			Kind:           protocol.SymbolKindVariable,
			Range:          prm.Location().Range,
			SelectionRange: prm.ID.Location().Range,
		}
		if prm.Default != nil {
			sym.Children = exprSymbols(prm.Default)
		}
		out = append(out, sym)
	}
	return out
}

// forSpecSymbols turns a comprehension's ForSpec chain (the head plus any
// further ForSpec entries in CompSpec) into Variable symbols for each
// iteration id.
func forSpecSymbols(head *ast.ForSpec, compSpec []ast.Node) []protocol.DocumentSymbol {
	out := []protocol.DocumentSymbol{forSpecSymbol(head)}
	for _, c := range compSpec {
		if fs, ok := c.(*ast.ForSpec); ok {
			out = append(out, forSpecSymbol(fs))
		}
	}
	return out
}

func forSpecSymbol(fs *ast.ForSpec) protocol.DocumentSymbol {
	return protocol.DocumentSymbol{
		Name:           fs.ID.Name,
		Kind:           protocol.SymbolKindVariable,
		Range:          fs.Location().Range,
		SelectionRange: fs.ID.Location().Range,
	}
}

func objectSymbols(o *ast.Object) []protocol.DocumentSymbol {
	out := make([]protocol.DocumentSymbol, 0, len(o.Fields))
	for _, f := range o.Fields {
		sym := protocol.DocumentSymbol{
			Name:           fieldKeyName(f.Key),
			Kind:           protocol.SymbolKindField,
			Range:          f.Location().Range,
			SelectionRange: f.Key.Location().Range,
		}
		if fn, ok := f.Value.(*ast.Fn); ok {
			sym.Kind = protocol.SymbolKindFunction
			sym.Children = exprSymbols(fn)
		} else {
			sym.Children = exprSymbols(f.Value)
		}
		out = append(out, sym)
	}
	return out
}

func bindSymbols(binds []*ast.Bind) []protocol.DocumentSymbol {
	out := make([]protocol.DocumentSymbol, 0, len(binds))
	for _, b := range binds {
		kind := protocol.SymbolKindVariable
		if _, ok := b.Value.(*ast.Fn); ok {
			kind = protocol.SymbolKindFunction
		}
		out = append(out, protocol.DocumentSymbol{
			Name:           b.ID.Name,
			Kind:           kind,
			Range:          b.Location().Range,
			SelectionRange: b.ID.Location().Range,
			Children:       exprSymbols(b.Value),
		})
	}
	return out
}

func fieldKeyName(k ast.FieldKey) string {
	switch v := k.(type) {
	case *ast.FixedKey:
		return v.Name
	case *ast.ComputedKey:
		return "[...]"
	default:
		return ""
	}
}
