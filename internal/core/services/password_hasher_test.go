package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("P@ssw0rd1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, hasher.Verify("P@ssw0rd1", hash))
}

func TestBcryptHasher_Mismatches(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("P@ssw0rd1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
	}{
		{"different password", "hunter2hunter2"},
		{"case change", "p@ssw0rd1"},
		{"trailing whitespace", "P@ssw0rd1 "},
		{"leading whitespace", " P@ssw0rd1"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, hasher.Verify(tt.password, hash))
		})
	}
}

func TestBcryptHasher_HashIsSelfDescribing(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("P@ssw0rd1")
	require.NoError(t, err)

	// Algorithm tag and cost are embedded in the hash, so a hasher built with
	// a different cost still verifies old hashes.
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	other := NewBcryptHasher(bcrypt.MinCost + 1)
	assert.True(t, other.Verify("P@ssw0rd1", hash))
}

func TestBcryptHasher_SameInputDifferentSalt(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	first, err := hasher.Hash("P@ssw0rd1")
	require.NoError(t, err)
	second, err := hasher.Hash("P@ssw0rd1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	assert.False(t, hasher.Verify("whatever", "not-a-bcrypt-hash"))
}

func TestNewBcryptHasher_ClampsInvalidCost(t *testing.T) {
	hasher := NewBcryptHasher(1000)

	hash, err := hasher.Hash("P@ssw0rd1")
	require.NoError(t, err)
	assert.True(t, hasher.Verify("P@ssw0rd1", hash))
}
