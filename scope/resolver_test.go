package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liancheng/joule/ast"
	"github.com/liancheng/joule/cst"
	"github.com/liancheng/joule/protocol"
	"github.com/liancheng/joule/scope"
)

func build(t *testing.T, src string) *ast.Document {
	t.Helper()
	root := cst.Parse(src)
	doc := ast.Build(protocol.URI("file:///fixture.jsonnet"), root)
	scope.Resolve(doc)
	return doc
}

func TestComposeFieldScopePrefersRightOverLeft(t *testing.T) {
	doc := build(t, `{ a: 1 } + { a: 2 }`)
	bin, ok := doc.Body.(*ast.Binary)
	require.True(t, ok)

	left := bin.Lhs.(*ast.Object)
	right := bin.Rhs.(*ast.Object)
	composed := ast.ComposeFieldScope(left.FieldScope, right.FieldScope)

	bindings := composed.Lookup("a")
	require.Len(t, bindings, 1)
	assert.Same(t, right.Fields[0], bindings[0].Target)
}

func TestComposeFieldScopeFallsBackToLeftOnMiss(t *testing.T) {
	doc := build(t, `{ a: 1 } + { b: 2 }`)
	bin, ok := doc.Body.(*ast.Binary)
	require.True(t, ok)

	left := bin.Lhs.(*ast.Object)
	right := bin.Rhs.(*ast.Object)
	composed := ast.ComposeFieldScope(left.FieldScope, right.FieldScope)

	bindings := composed.Lookup("a")
	require.Len(t, bindings, 1)
	assert.Same(t, left.Fields[0], bindings[0].Target)
}

func TestVarScopeBindIsFrontInsertedNearestWins(t *testing.T) {
	doc := build(t, `local x = 1, x = 2; x`)
	local, ok := doc.Body.(*ast.Local)
	require.True(t, ok)
	require.Len(t, local.Binds, 2)

	ref, ok := local.Body.(*ast.VarRef)
	require.True(t, ok)
	assert.Same(t, local.Binds[1].ID, ref.Bound, "the second, nearer binding of x must win")
}

func TestFieldScopeLookupMissReturnsEmpty(t *testing.T) {
	doc := build(t, `{ a: 1 }`)
	obj := doc.Body.(*ast.Object)
	assert.Empty(t, obj.FieldScope.Lookup("missing"))
}
