package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	hash, err := h.Hash("Abcdef1")
	require.NoError(t, err)
	assert.NotEqual(t, "Abcdef1", hash)

	assert.True(t, h.Compare(hash, "Abcdef1"))
	assert.False(t, h.Compare(hash, "Abcdef2"))
	assert.False(t, h.Compare("not-a-hash", "Abcdef1"))

	other, err := h.Hash("Abcdef1")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "salted")
}

func TestNewBcryptHasherCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(bcrypt.MinCost).cost)
}
