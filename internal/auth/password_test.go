package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher()

	first, err := h.Hash("pw123")
	require.NoError(t, err)
	second, err := h.Hash("pw123")
	require.NoError(t, err)

	assert.NotEqual(t, "pw123", first)
	assert.NotEqual(t, first, second, "salt must differ per call")
	assert.True(t, h.Verify("pw123", first))
	assert.True(t, h.Verify("pw123", second))
	assert.False(t, h.Verify("wrong", first))
	assert.False(t, h.Verify("pw123", "not-a-hash"))
}
