package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSlice(t *testing.T) {
	v, err := StringSlice(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = StringSlice{"a", "b|c"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["a","b|c"]`, v)

	var s StringSlice
	require.NoError(t, s.Scan(`["x","y"]`))
	assert.Equal(t, StringSlice{"x", "y"}, s)

	require.NoError(t, s.Scan(nil))
	assert.Equal(t, StringSlice{}, s)

	require.NoError(t, s.Scan([]byte("null")))
	assert.Equal(t, StringSlice{}, s)

	assert.Error(t, s.Scan(42))
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestJSON(t *testing.T) {
	v, err := NewJSON(payload{Name: "n", Count: 2}).Value()
	require.NoError(t, err)
	assert.Equal(t, `{"name":"n","count":2}`, v)

	var j JSON[[]payload]
	require.NoError(t, j.Scan(`[{"name":"a","count":1}]`))
	assert.Equal(t, []payload{{Name: "a", Count: 1}}, j.V)

	require.NoError(t, j.Scan(""))
	assert.Nil(t, j.V)

	assert.Error(t, j.Scan("{broken"))
	assert.Error(t, j.Scan(3.5))
}
