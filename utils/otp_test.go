package utils

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q contains non-digit", code)
		}
		seen[code] = true
	}

	// 50 draws from a million-value space colliding down to a handful
	// would mean the generator is broken.
	assert.Greater(t, len(seen), 40)
}

func TestGenerateSessionToken(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		token, err := GenerateSessionToken()
		require.NoError(t, err)

		raw, err := base64.URLEncoding.DecodeString(token)
		require.NoError(t, err)
		assert.Len(t, raw, 32)

		assert.False(t, seen[token], "duplicate session token")
		seen[token] = true
	}
}
