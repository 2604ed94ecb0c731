package ast_test

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

func TestBuildObjectFields(t *testing.T) {
	doc := build(t, `{ a: 1, b: "two", c: [1, 2, 3] }`)
	obj, ok := doc.Body.(*ast.Object)
	require.True(t, ok, "expected object body, got %T", doc.Body)
	require.Len(t, obj.Fields, 3)

	names := make([]string, len(obj.Fields))
	for i, f := range obj.Fields {
		fk, ok := f.Key.(*ast.FixedKey)
		require.True(t, ok)
		names[i] = fk.Name
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestBuildLocalMultipleBindsScope(t *testing.T) {
	doc := build(t, `local x = 1, y = x + 1; y`)
	local, ok := doc.Body.(*ast.Local)
	require.True(t, ok)
	require.Len(t, local.Binds, 2)

	body, ok := local.Body.(*ast.VarRef)
	require.True(t, ok)
	assert.Equal(t, "y", body.Name)
	require.NotNil(t, body.Bound)
	assert.Same(t, local.Binds[1].ID, body.Bound)
}

// Containment (§8): every descendant's range falls within its parent's.
func TestContainmentInvariant(t *testing.T) {
	doc := build(t, `{
		greeting: "hello " + name,
		name: "world",
		items: [x for x in [1, 2, 3] if x > 1],
	}`)

	ast.Walk(doc, func(n ast.Node) bool {
		parentRange := n.Location().Range
		for _, c := range ast.Children(n) {
			if !protocol.RangeContains(parentRange, c.Location().Range) {
				t.Errorf("child %T range %v not contained in parent %T range %v", c, c.Location().Range, n, parentRange)
			}
		}
		return true
	}, nil)
}

// Node-at minimality (§8): NodeAt must return the narrowest node whose
// range contains the query position, not an ancestor.
func TestNodeAtMinimality(t *testing.T) {
	doc := build(t, `{ a: 1, b: x + y }`)
	obj := doc.Body.(*ast.Object)
	valueLoc := obj.Fields[1].Value.(*ast.Binary).Lhs.Location()

	pos := valueLoc.Range.Start
	found := ast.NodeAt(doc, func(loc ast.Location) bool {
		return protocol.PositionInRange(loc.Range, pos)
	})

	ref, ok := found.(*ast.VarRef)
	require.True(t, ok, "expected *ast.VarRef, got %T", found)
	assert.Equal(t, "x", ref.Name)
}

// Mutually-recursive parameters (§3 invariant 3, §8): a later parameter's
// default may reference an earlier one, and vice versa, since every
// parameter is bound before any default is visited.
func TestMutuallyRecursiveParameterDefaults(t *testing.T) {
	doc := build(t, `function(a = b, b = a) a + b`)
	fn, ok := doc.Body.(*ast.Fn)
	require.True(t, ok)
	require.Len(t, fn.Params, 2)

	aDefault, ok := fn.Params[0].Default.(*ast.VarRef)
	require.True(t, ok)
	assert.Same(t, fn.Params[1].ID, aDefault.Bound)

	bDefault, ok := fn.Params[1].Default.(*ast.VarRef)
	require.True(t, ok)
	assert.Same(t, fn.Params[0].ID, bDefault.Bound)
}

// No-dangling (§8): a name that never resolves leaves its VarRef unbound,
// not an error.
func TestNoDanglingVarRefLeavesUnbound(t *testing.T) {
	doc := build(t, `undefinedName`)
	ref, ok := doc.Body.(*ast.VarRef)
	require.True(t, ok)
	assert.Nil(t, ref.Bound)
}

// Object-local-scoping (§3 invariant 2, §8): a computed field key sees
// only the object's outer scope, not its own locals.
func TestComputedKeyExcludesObjectLocals(t *testing.T) {
	doc := build(t, `{ local secret = "k", [secret]: 1 }`)
	obj := doc.Body.(*ast.Object)
	require.Len(t, obj.Fields, 1)
	ck, ok := obj.Fields[0].Key.(*ast.ComputedKey)
	require.True(t, ok)

	ref, ok := ck.Expr.(*ast.VarRef)
	require.True(t, ok)
	assert.Nil(t, ref.Bound, "computed key must not see the object's own locals")
}

// Field-binding roundtrip (§8): a fixed-key field is reachable from the
// owning Object's FieldScope by name.
func TestFieldBindingRoundtrip(t *testing.T) {
	doc := build(t, `{ a: 1, b: 2 }`)
	obj := doc.Body.(*ast.Object)
	bindings := obj.FieldScope.Lookup("a")
	require.Len(t, bindings, 1)
	assert.Same(t, obj.Fields[0], bindings[0].Target)
}
