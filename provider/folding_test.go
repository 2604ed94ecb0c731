package provider_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liancheng/joule/provider"
)

func TestFoldingRangeCoversMultilineObjectAndArray(t *testing.T) {
	doc := buildDoc(t, "{\n  a: [\n    1,\n    2,\n  ],\n}")

	p := provider.NewFoldingRangeProvider()
	ranges := p.Serve(doc)
	require.Len(t, ranges, 2) // the outer object and the nested array.

	for _, r := range ranges {
		assert.Greater(t, r.EndLine, r.StartLine)
	}
}

func TestFoldingRangeSkipsSingleLineLiterals(t *testing.T) {
	doc := buildDoc(t, `{ a: 1, b: [1, 2, 3] }`)

	p := provider.NewFoldingRangeProvider()
	ranges := p.Serve(doc)
	assert.Empty(t, ranges)
}

func TestFoldingRangeCoversMultilineFunction(t *testing.T) {
	doc := buildDoc(t, "function(a, b)\n  a + b")

	p := provider.NewFoldingRangeProvider()
	ranges := p.Serve(doc)
	require.Len(t, ranges, 1)
	assert.Equal(t, uint32(0), ranges[0].StartLine)
	assert.Equal(t, uint32(1), ranges[0].EndLine)
}

func TestFoldingRangeCoversMultilineListComprehension(t *testing.T) {
	doc := buildDoc(t, "[\n  x\n  for x in [1, 2, 3]\n]")

	p := provider.NewFoldingRangeProvider()
	ranges := p.Serve(doc)
	// the comprehension itself; the single-line [1, 2, 3] source doesn't fold.
	require.Len(t, ranges, 1)
	assert.Equal(t, uint32(0), ranges[0].StartLine)
	assert.Equal(t, uint32(3), ranges[0].EndLine)
}

func TestFoldingRangeCoversMultilineObjectComprehension(t *testing.T) {
	doc := buildDoc(t, "{\n  [x]: x\n  for x in [1, 2]\n}")

	p := provider.NewFoldingRangeProvider()
	ranges := p.Serve(doc)
	require.Len(t, ranges, 1)
	assert.Equal(t, uint32(0), ranges[0].StartLine)
	assert.Equal(t, uint32(3), ranges[0].EndLine)
}
