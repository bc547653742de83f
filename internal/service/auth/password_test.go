package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher()

	hashed, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)
	require.NotEmpty(t, hashed)
	assert.True(t, strings.HasPrefix(hashed, "$2"), "expected a bcrypt hash, got %q", hashed)

	assert.NoError(t, hasher.Compare(hashed, "correct horse battery"))
	assert.Error(t, hasher.Compare(hashed, "wrong password"))
}

func TestBcryptHasherDistinctSalts(t *testing.T) {
	hasher := NewBcryptHasher()

	first, err := hasher.Hash("same password")
	require.NoError(t, err)
	second, err := hasher.Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "each hash should use a fresh salt")
}
