package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	digest, err := h.Hash("correct-password")
	require.NoError(t, err)

	assert.NotEqual(t, "correct-password", digest)
	assert.True(t, h.Verify("correct-password", digest))
	assert.False(t, h.Verify("wrong-password", digest))
}

func TestBcryptHasher_SaltPerCall(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify("same-password", a))
	assert.True(t, h.Verify("same-password", b))
}

func TestBcryptHasher_EmptyPassword(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)

	digest, err := h.Hash("x")
	require.NoError(t, err)
	assert.False(t, h.Verify("", digest))
}

func TestBcryptHasher_MalformedDigestFailsQuietly(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	for _, digest := range []string{"", "plaintext", "$2a$04$short", strings.Repeat("$", 60)} {
		assert.False(t, h.Verify("correct-password", digest), "digest %q", digest)
	}
}

func TestBcryptHasher_TooLongPassword(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("a", 73))
	assert.Error(t, err)
}

func TestNewBcryptHasher_CostBounds(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(bcrypt.MaxCost+1).cost)
	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(bcrypt.MinCost).cost)

	digest, err := NewBcryptHasher(bcrypt.MinCost).Hash("pw")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}
