package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt(t *testing.T) {
	// Arrange
	h := NewBcrypt(bcrypt.MinCost)

	// Act
	hashed, err := h.Hash("s3cret-pass")

	// Assert
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", string(hashed))
	assert.True(t, h.Verify(string(hashed), "s3cret-pass"))
	assert.False(t, h.Verify(string(hashed), "s3cret-pasS"))
	assert.False(t, h.Verify("not-a-hash", "s3cret-pass"))
}

func TestNewBcryptCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(99).cost)
	assert.Equal(t, 12, NewBcrypt(12).cost)
}
