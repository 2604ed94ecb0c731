package provider_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liancheng/joule/protocol"
	"github.com/liancheng/joule/provider"
)

func TestRenameVarRewritesEveryUsageInOneFile(t *testing.T) {
	doc := buildDoc(t, `local count = 1; [count, count]`)

	p := provider.NewRenameProvider()
	// position of "count" at the declaration site.
	pos := protocol.Position{Line: 0, Character: 6}

	prep, ok := p.PrepareRename(doc, pos)
	require.True(t, ok)
	assert.Equal(t, "count", prep.Placeholder)

	edit, ok := p.Rename(doc, pos, "total")
	require.True(t, ok)
	edits := edit.Changes[doc.URI]
	// declaration + 2 usages.
	assert.Len(t, edits, 3)
	for _, e := range edits {
		assert.Equal(t, "total", e.NewText)
	}
}

func TestRenameFieldIsSingleFileOnly(t *testing.T) {
	doc := buildDoc(t, `{ old: 1, other: self.old }`)

	p := provider.NewRenameProvider()
	// position inside "old" field key (col 2).
	pos := protocol.Position{Line: 0, Character: 2}

	edit, ok := p.Rename(doc, pos, "new")
	require.True(t, ok)
	// only this document's Changes entry is ever populated — no
	// cross-file search the way references performs one.
	assert.Len(t, edit.Changes, 1)
	edits := edit.Changes[doc.URI]
	assert.Len(t, edits, 2) // the field declaration and the self.old use.
}
