package provider_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liancheng/joule/ast"
	"github.com/liancheng/joule/cst"
	"github.com/liancheng/joule/protocol"
	"github.com/liancheng/joule/provider"
	"github.com/liancheng/joule/scope"
)

func buildDoc(t *testing.T, src string) *ast.Document {
	t.Helper()
	root := cst.Parse(src)
	doc := ast.Build(protocol.URI("file:///fixture.jsonnet"), root)
	scope.Resolve(doc)
	return doc
}

func TestDocumentSymbolNestsThroughFunctionFields(t *testing.T) {
	doc := buildDoc(t, `{
		name: "svc",
		handler(req): { status: 200, body: req },
	}`)

	p := provider.NewDocumentSymbolProvider()
	syms := p.Serve(doc)
	require.Len(t, syms, 2)

	assert.Equal(t, "name", syms[0].Name)
	assert.Equal(t, protocol.SymbolKindField, syms[0].Kind)

	assert.Equal(t, "handler", syms[1].Name)
	assert.Equal(t, protocol.SymbolKindFunction, syms[1].Kind)
	require.Len(t, syms[1].Children, 3)
	assert.Equal(t, "req", syms[1].Children[0].Name)
	assert.Equal(t, protocol.SymbolKindVariable, syms[1].Children[0].Kind)
	assert.Equal(t, "status", syms[1].Children[1].Name)
	assert.Equal(t, "body", syms[1].Children[2].Name)
}

func TestDocumentSymbolSurfacesForSpecVariable(t *testing.T) {
	doc := buildDoc(t, `[y for y in [1, 2, 3]]`)

	p := provider.NewDocumentSymbolProvider()
	syms := p.Serve(doc)
	require.Len(t, syms, 1)
	assert.Equal(t, "y", syms[0].Name)
	assert.Equal(t, protocol.SymbolKindVariable, syms[0].Kind)
}

func TestDocumentSymbolSurfacesCompositionFields(t *testing.T) {
	doc := buildDoc(t, `{ a: 1 } + { b: 2 }`)

	p := provider.NewDocumentSymbolProvider()
	syms := p.Serve(doc)
	require.Len(t, syms, 2)
	assert.Equal(t, "a", syms[0].Name)
	assert.Equal(t, "b", syms[1].Name)
}
