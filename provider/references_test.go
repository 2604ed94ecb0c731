package provider_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liancheng/joule/internal/langtest"
	"github.com/liancheng/joule/protocol"
	"github.com/liancheng/joule/provider"
)

func TestReferencesVarIncludesEveryUsageInDocument(t *testing.T) {
	src := `local x = 1;
[x, x, x]
 ^1`
	stripped, ranges := langtest.ParseMarkedRanges(src)

	fx := langtest.NewFixture(map[string]string{"a.jsonnet": stripped})
	l := fx.Loader(nil)
	u := fx.URI("a.jsonnet")
	doc := l.Get(u)
	require.NotNil(t, doc)

	p := provider.NewReferencesProvider(l, fx.Store)
	locs := p.Serve(doc, ranges[1].Start, true)
	// 1 declaration + 3 usages.
	assert.Len(t, locs, 4)

	withoutDecl := p.Serve(doc, ranges[1].Start, false)
	assert.Len(t, withoutDecl, 3)
}

func TestReferencesFieldSearchIsWorkspaceWide(t *testing.T) {
	fx := langtest.NewFixture(map[string]string{
		"lib.libsonnet":     `{ shared: 1 }`,
		"a.jsonnet":         `(import "lib.libsonnet").shared`,
		"b.jsonnet":         `(import "lib.libsonnet").shared + 1`,
		"unrelated.jsonnet": `{ other: 1 }`,
	})
	l := fx.Loader(nil)
	libDoc := l.Get(fx.URI("lib.libsonnet"))
	require.NotNil(t, libDoc)

	p := provider.NewReferencesProvider(l, fx.Store)
	// "shared" starts at column 2 in "{ shared: 1 }".
	pos := protocol.Position{Line: 0, Character: 2}
	locs := p.Serve(libDoc, pos, true)
	// declaration in lib.libsonnet + one usage each in a.jsonnet, b.jsonnet.
	assert.Len(t, locs, 3)
}

func TestReferencesFieldSearchSkipsUnrelatedObjectsSharingAName(t *testing.T) {
	fx := langtest.NewFixture(map[string]string{
		"a.jsonnet": `{ name: "a" }`,
		"b.jsonnet": `{ name: "b", self_use: self.name }`,
		"c.jsonnet": `local other = { name: "c" }; other.name`,
	})
	l := fx.Loader(nil)
	aDoc := l.Get(fx.URI("a.jsonnet"))
	require.NotNil(t, aDoc)

	p := provider.NewReferencesProvider(l, fx.Store)
	// "name" starts at column 2 in "{ name: \"a\" }".
	pos := protocol.Position{Line: 0, Character: 2}
	locs := p.Serve(aDoc, pos, true)
	// only a.jsonnet's own declaration — b.jsonnet and c.jsonnet each
	// resolve their own "name" access against their own object, never
	// a.jsonnet's, despite sharing the field name textually.
	require.Len(t, locs, 1)
	assert.Equal(t, protocol.URI(aDoc.URI), locs[0].URI)
}
