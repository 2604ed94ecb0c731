package provider_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liancheng/joule/protocol"
	"github.com/liancheng/joule/provider"
)

func TestInlayHintBindingShowsReferenceCount(t *testing.T) {
	doc := buildDoc(t, `local x = 1; [x, x]`)

	p := provider.NewInlayHintProvider()
	hints := p.Serve(doc)
	require.Len(t, hints, 3) // 1 binding hint + 2 reference hints.

	assert.Equal(t, protocol.InlayHintKindBinding, hints[0].Kind)
	assert.Equal(t, "2 refs", hints[0].Label)

	assert.Equal(t, protocol.InlayHintKindReference, hints[1].Kind)
	assert.Equal(t, protocol.InlayHintKindReference, hints[2].Kind)
}

func TestInlayHintUnboundRefIsSkipped(t *testing.T) {
	doc := buildDoc(t, `undefinedName`)

	p := provider.NewInlayHintProvider()
	hints := p.Serve(doc)
	assert.Empty(t, hints)
}
