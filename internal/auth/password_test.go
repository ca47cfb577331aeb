package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	match, err := ComparePassword("hunter2hunter2", hash)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = ComparePassword("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	first, err := HashPassword("same-password")
	require.NoError(t, err)
	second, err := HashPassword("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestComparePassword_MalformedHash(t *testing.T) {
	_, err := ComparePassword("whatever", "not-a-hash")
	assert.Error(t, err)

	_, err = ComparePassword("whatever", "$argon2id$v=19$bogus$x$y")
	assert.Error(t, err)
}
