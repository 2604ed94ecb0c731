package workspace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liancheng/joule/config"
	"github.com/liancheng/joule/internal/langtest"
	"github.com/liancheng/joule/protocol"
	"github.com/liancheng/joule/workspace"
)

func TestServiceDidOpenThenDefinition(t *testing.T) {
	fx := langtest.NewFixture(map[string]string{
		"a.jsonnet": `local x = 1; [x, x]`,
	})
	svc := workspace.New(fx.Store, fx.Root, config.Default())
	u := fx.URI("a.jsonnet")

	svc.DidOpen(u, `local x = 1; [x, x]`)

	// position of the first "x" usage in the array.
	pos := protocol.Position{Line: 0, Character: 14}
	locs := svc.Definition(u, pos)
	require.Len(t, locs, 1)
	assert.Equal(t, uint32(6), locs[0].Range.Start.Character)
}

func TestServiceDidChangeReflectsNewContentImmediately(t *testing.T) {
	fx := langtest.NewFixture(map[string]string{
		"a.jsonnet": `{ a: 1 }`,
	})
	svc := workspace.New(fx.Store, fx.Root, config.Default())
	u := fx.URI("a.jsonnet")

	svc.DidOpen(u, `{ a: 1 }`)
	syms := svc.DocumentSymbol(u)
	require.Len(t, syms, 1)
	assert.Equal(t, "a", syms[0].Name)

	svc.DidChange(u, `{ a: 1, b: 2 }`)
	syms = svc.DocumentSymbol(u)
	require.Len(t, syms, 2)
	assert.Equal(t, "b", syms[1].Name)
}

func TestServiceDidCloseFallsBackToDisk(t *testing.T) {
	fx := langtest.NewFixture(map[string]string{
		"a.jsonnet": `{ a: 1 }`,
	})
	svc := workspace.New(fx.Store, fx.Root, config.Default())
	u := fx.URI("a.jsonnet")

	svc.DidOpen(u, `{ a: 1, b: 2 }`)
	syms := svc.DocumentSymbol(u)
	require.Len(t, syms, 2)

	svc.DidClose(u)
	syms = svc.DocumentSymbol(u)
	require.Len(t, syms, 1) // back to the on-disk content.
	assert.Equal(t, "a", syms[0].Name)
}

func TestServiceRenameRoundTrip(t *testing.T) {
	fx := langtest.NewFixture(map[string]string{
		"a.jsonnet": `local count = 1; [count, count]`,
	})
	svc := workspace.New(fx.Store, fx.Root, config.Default())
	u := fx.URI("a.jsonnet")
	svc.DidOpen(u, `local count = 1; [count, count]`)

	pos := protocol.Position{Line: 0, Character: 6}
	prep, ok := svc.PrepareRename(u, pos)
	require.True(t, ok)
	assert.Equal(t, "count", prep.Placeholder)

	edit, ok := svc.Rename(u, pos, "total")
	require.True(t, ok)
	assert.Len(t, edit.Changes[u], 3)
}
