package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	second, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, hash, second, "hashes are salted")

	tests := []struct {
		name     string
		hash     string
		password string
		wantErr  error
	}{
		{name: "Correct password", hash: hash, password: "s3cret", wantErr: nil},
		{name: "Wrong password", hash: hash, password: "guess", wantErr: ErrMismatch},
		{name: "Garbage hash", hash: "plain", password: "s3cret", wantErr: ErrMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.Compare(tt.hash, tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestBcryptHasher_LongPassword(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	long := strings.Repeat("a", 73)

	hash, err := h.Hash(long)
	require.NoError(t, err)

	assert.NoError(t, h.Compare(hash, long))
	assert.NoError(t, h.Compare(hash, strings.Repeat("a", 72)), "bytes past 72 are ignored")
	assert.ErrorIs(t, h.Compare(hash, strings.Repeat("a", 71)), ErrMismatch)
}
