package cmd

import (
	"testing"

	"github.com/XY-Finance/callforge/internal/builder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	c := builder.NewCall("f")
	tup, err := c.AddParameter("order", "tuple")
	require.NoError(t, err)
	fld, err := c.AddComponent([]string{tup}, "maker", "address")
	require.NoError(t, err)

	path, err := parsePath(c, tup[:8]+"/"+fld[:8])
	require.NoError(t, err)
	assert.Equal(t, []string{tup, fld}, path)

	_, err = parsePath(c, "")
	assert.Error(t, err)

	_, err = parsePath(c, "zzzz")
	assert.Error(t, err)
}

func TestDisplayPath(t *testing.T) {
	assert.Equal(t, "12345678/abcdefab",
		displayPath([]string{"123456789000", "abcdefab-cdef"}))
}
