package cst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liancheng/joule/cst"
)

func TestParseNumberLiteral(t *testing.T) {
	root := cst.Parse(`42`)
	body := root.ChildByField("body")
	require.NotNil(t, body)
	assert.Equal(t, "number", body.Kind)
	assert.Equal(t, "42", body.Text)
}

func TestParseBinaryPrecedenceClimbsMultiplicationBeforeAddition(t *testing.T) {
	root := cst.Parse(`1 + 2 * 3`)
	body := root.ChildByField("body")
	require.NotNil(t, body)
	require.Equal(t, "binary", body.Kind)
	// the outer node's rhs must be the "2 * 3" binary, not "1 + 2".
	require.Len(t, body.Children, 3)
	rhs := body.Children[2]
	assert.Equal(t, "binary", rhs.Kind)
}

func TestParseObjectFieldsAndLocals(t *testing.T) {
	root := cst.Parse(`{ local x = 1, a: x, b: 2 }`)
	body := root.ChildByField("body")
	require.NotNil(t, body)
	require.Equal(t, "object", body.Kind)

	var kinds []string
	for _, c := range body.NamedChildren() {
		kinds = append(kinds, c.Kind)
	}
	assert.Equal(t, []string{"objlocal", "field", "field"}, kinds)
}

func TestParseInvalidTokenDegradesToErrorNodeNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		root := cst.Parse(`@@@`)
		assert.Equal(t, "document", root.Kind)
	})
}

func TestParseFunctionParamsAndCall(t *testing.T) {
	root := cst.Parse(`local f = function(a, b = 1) a + b; f(1, b = 2)`)
	body := root.ChildByField("body")
	require.NotNil(t, body)
	assert.Equal(t, "local_bind", body.Kind)
}
