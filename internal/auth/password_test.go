package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePassword(t *testing.T) {
	password, err := GeneratePassword(12)
	require.NoError(t, err)
	assert.Len(t, password, 12)

	for _, r := range password {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		assert.True(t, isAlnum, "unexpected character %q", r)
	}
}

func TestGeneratePasswordDefaultsLength(t *testing.T) {
	password, err := GeneratePassword(0)
	require.NoError(t, err)
	assert.Len(t, password, 12)
}

func TestGeneratePasswordUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		password, err := GeneratePassword(12)
		require.NoError(t, err)
		assert.False(t, seen[password], "password repeated: %s", password)
		seen[password] = true
	}
}

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, ComparePassword(hash, "s3cret-pass"))
	assert.Error(t, ComparePassword(hash, "wrong-pass"))
}
