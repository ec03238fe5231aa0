package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2passwd", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2passwd", hash)

	assert.True(t, CheckPasswordHash("hunter2passwd", hash))
	assert.False(t, CheckPasswordHash("wrongpassword", hash))
}

func TestHashPasswordFallsBackOnBadCost(t *testing.T) {
	hash, err := HashPassword("hunter2passwd", 99)
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("hunter2passwd", hash))
}

func TestCheckPasswordHashRejectsGarbage(t *testing.T) {
	assert.False(t, CheckPasswordHash("hunter2passwd", "not-a-bcrypt-hash"))
}
