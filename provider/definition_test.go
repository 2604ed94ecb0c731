package provider_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liancheng/joule/internal/langtest"
	"github.com/liancheng/joule/protocol"
	"github.com/liancheng/joule/provider"
)

func TestDefinitionVarRef(t *testing.T) {
	src := `local greeting = "hi";
greeting
^^^^^^^^1`
	stripped, ranges := langtest.ParseMarkedRanges(src)

	fx := langtest.NewFixture(map[string]string{"a.jsonnet": stripped})
	l := fx.Loader(nil)
	u := fx.URI("a.jsonnet")
	doc := l.Get(u)
	require.NotNil(t, doc)

	p := provider.NewDefinitionProvider(l)
	locs := p.Serve(doc, ranges[1].Start)
	require.Len(t, locs, 1)
	assert.Equal(t, uint32(0), locs[0].Range.Start.Line)
}

func TestDefinitionFieldAccessAcrossComposition(t *testing.T) {
	src := `local base = { greeting: "hi" };
local extended = base + { greeting: "hello" };
extended.greeting
         ^^^^^^^^1`
	stripped, ranges := langtest.ParseMarkedRanges(src)

	fx := langtest.NewFixture(map[string]string{"a.jsonnet": stripped})
	l := fx.Loader(nil)
	u := fx.URI("a.jsonnet")
	doc := l.Get(u)
	require.NotNil(t, doc)

	p := provider.NewDefinitionProvider(l)
	locs := p.Serve(doc, ranges[1].Start)
	require.Len(t, locs, 1, "composition should resolve to the rightmost (overriding) greeting field")
	assert.Equal(t, uint32(1), locs[0].Range.Start.Line)
}

func TestDefinitionFollowsImport(t *testing.T) {
	fx := langtest.NewFixture(map[string]string{
		"lib.libsonnet": `{ value: 42 }`,
		"main.jsonnet":  `(import "lib.libsonnet").value`,
	})
	l := fx.Loader(nil)
	u := fx.URI("main.jsonnet")
	doc := l.Get(u)
	require.NotNil(t, doc)

	p := provider.NewDefinitionProvider(l)
	// Position of "value" in "(import \"lib.libsonnet\").value".
	pos := protocol.Position{Line: 0, Character: 25}
	locs := p.Serve(doc, pos)
	require.Len(t, locs, 1)
	assert.Equal(t, fx.URI("lib.libsonnet"), protocol.URI(locs[0].URI))
}
