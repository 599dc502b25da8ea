package api

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer(t *testing.T) {
	tokens := newTokenIssuer("secret", time.Hour)

	token, expiresAt, err := tokens.issue()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	subject, err := tokens.verify(token)
	require.NoError(t, err)
	assert.Equal(t, adminSubject, subject)

	t.Run("other secret", func(t *testing.T) {
		_, err := newTokenIssuer("other", time.Hour).verify(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		late := tokens
		late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := late.verify(token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("none algorithm", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: adminSubject}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = tokens.verify(unsigned)
		assert.Error(t, err)
	})

	t.Run("disabled without secret", func(t *testing.T) {
		_, _, err := newTokenIssuer("", time.Hour).issue()
		assert.ErrorIs(t, err, errAdminDisabled)
	})
}

func TestPasswordMatches(t *testing.T) {
	assert.True(t, passwordMatches("pw", "pw"))
	assert.False(t, passwordMatches("pw", "PW"))
	assert.False(t, passwordMatches("", ""))
}
