package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m, err := NewJWTManager("secret", time.Hour)
	require.NoError(t, err)

	tok, exp, err := m.GenerateToken("user-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestJWTManager_Rejects(t *testing.T) {
	m, err := NewJWTManager("secret", time.Minute)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		tok, _, err := m.GenerateToken("user-1")
		m.now = time.Now
		require.NoError(t, err)

		_, err = m.ParseToken(tok)
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewJWTManager("other", time.Minute)
		require.NoError(t, err)
		tok, _, err := other.GenerateToken("user-1")
		require.NoError(t, err)

		_, err = m.ParseToken(tok)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.ParseToken("not.a.token")
		assert.Error(t, err)
	})
}

func TestNewJWTManager_Validation(t *testing.T) {
	_, err := NewJWTManager("", time.Hour)
	assert.Error(t, err)
	_, err = NewJWTManager("secret", 0)
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, CompareHashAndPassword(hash, "hunter22"))
	assert.False(t, CompareHashAndPassword(hash, "hunter23"))
}

func TestPublicURL_EscapesSegments(t *testing.T) {
	assert.Equal(t, "https://storage.googleapis.com/b/avatars/u%201/a.png", PublicURL("b", "avatars/u 1/a.png"))
}
