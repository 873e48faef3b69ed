package authutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hasher := NewPasswordHasher(4) // min cost keeps the test fast

	hash, err := hasher.Hash("longpass1")
	require.NoError(t, err)

	assert.NotEqual(t, "longpass1", hash)
	assert.True(t, strings.HasPrefix(hash, "$2"))

	assert.True(t, hasher.Compare("longpass1", hash))
	assert.False(t, hasher.Compare("longpass2", hash))
	assert.False(t, hasher.Compare("", hash))
}

func TestHashIsSalted(t *testing.T) {
	hasher := NewPasswordHasher(4)

	h1, err := hasher.Hash("samepassword")
	require.NoError(t, err)
	h2, err := hasher.Hash("samepassword")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestInvalidCostFallsBackToDefault(t *testing.T) {
	hasher := NewPasswordHasher(99)

	hash, err := hasher.Hash("password123")
	require.NoError(t, err)
	assert.True(t, hasher.Compare("password123", hash))
}
