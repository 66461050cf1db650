package authControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNormalizeBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	// Rewrite the prefix the way a PHP password_hash() would have stored it.
	phpStyle := "$2y$" + string(hash)[4:]

	err = bcrypt.CompareHashAndPassword([]byte(normalizeBcryptHash(phpStyle)), []byte("s3cret-pass"))
	assert.NoError(t, err)

	// Already-normal hashes pass through untouched.
	assert.Equal(t, string(hash), normalizeBcryptHash(string(hash)))
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 20; i++ {
		otp := generateOTP()
		require.Len(t, otp, 6)
		for _, r := range otp {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}
