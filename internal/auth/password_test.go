package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)
}

func TestHashPassword_EmptyPassword(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestHashPassword_FreshSaltPerCall(t *testing.T) {
	hash1, err := HashPassword("same password")
	require.NoError(t, err)

	hash2, err := HashPassword("same password")
	require.NoError(t, err)

	// bcrypt embeds a random salt, so two hashes of one password differ
	assert.NotEqual(t, hash1, hash2)

	assert.True(t, CheckPassword("same password", hash1))
	assert.True(t, CheckPassword("same password", hash2))
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("pw1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{
			name:     "matching password",
			password: "pw1",
			hash:     hash,
			want:     true,
		},
		{
			name:     "wrong password",
			password: "pw2",
			hash:     hash,
			want:     false,
		},
		{
			name:     "empty password",
			password: "",
			hash:     hash,
			want:     false,
		},
		{
			name:     "malformed hash",
			password: "pw1",
			hash:     "not-a-bcrypt-hash",
			want:     false,
		},
		{
			name:     "empty hash",
			password: "pw1",
			hash:     "",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckPassword(tt.password, tt.hash))
		})
	}
}
