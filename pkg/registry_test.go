package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryAddGetRemove(t *testing.T) {
	r := NewRegistry()
	c := NewClient("a", "randomName", nil)

	require.NoError(t, r.Add(c))
	assert.Equal(t, 1, r.Count())

	got, ok := r.Get("a")
	require.True(t, ok)
	assert.Same(t, c, got)

	assert.True(t, r.Remove("a"))
	_, ok = r.Get("a")
	assert.False(t, ok)
	assert.Zero(t, r.Count())
}

func TestRegistryDuplicateAdd(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Add(NewClient("a", "randomName", nil)))
	err := r.Add(NewClient("a", "otherName", nil))
	assert.ErrorIs(t, err, ErrDuplicateClient)
	assert.Equal(t, 1, r.Count())
}

func TestRegistryRemoveUnknown(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.Remove("nobody"), "Removing an unknown id must report not found")
}
