package provider_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liancheng/joule/protocol"
	"github.com/liancheng/joule/provider"
)

func TestDocumentHighlightVarWriteThenReads(t *testing.T) {
	doc := buildDoc(t, `local x = 1; [x, x]`)

	p := provider.NewDocumentHighlightProvider()
	// position at the "x" binding site.
	pos := protocol.Position{Line: 0, Character: 6}
	hls := p.Serve(doc, pos)
	require.Len(t, hls, 3) // 1 write + 2 reads.

	assert.Equal(t, protocol.HighlightKindWrite, hls[0].Kind)
	assert.Equal(t, protocol.HighlightKindRead, hls[1].Kind)
	assert.Equal(t, protocol.HighlightKindRead, hls[2].Kind)
}

func TestDocumentHighlightFieldIsDocumentLocalOnly(t *testing.T) {
	doc := buildDoc(t, `{ a: 1, b: self.a }`)

	p := provider.NewDocumentHighlightProvider()
	// position inside the "a" field key.
	pos := protocol.Position{Line: 0, Character: 2}
	hls := p.Serve(doc, pos)
	require.Len(t, hls, 2)
	assert.Equal(t, protocol.HighlightKindWrite, hls[0].Kind)
	assert.Equal(t, protocol.HighlightKindRead, hls[1].Kind)
}
