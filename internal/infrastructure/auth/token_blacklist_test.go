package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()

	t.Run("revoked jti is reported until expiry", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()
		now := time.Now()
		bl.now = func() time.Time { return now }

		require.NoError(t, bl.Revoke(ctx, "jti-1", time.Minute))

		revoked, err := bl.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)

		revoked, err = bl.IsRevoked(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, revoked)

		now = now.Add(2 * time.Minute)
		revoked, err = bl.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("non-positive ttl is a no-op", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()
		require.NoError(t, bl.Revoke(ctx, "jti-0", 0))

		revoked, err := bl.IsRevoked(ctx, "jti-0")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("expired entries are purged on write", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()
		now := time.Now()
		bl.now = func() time.Time { return now }
		require.NoError(t, bl.Revoke(ctx, "old", time.Second))

		now = now.Add(time.Minute)
		require.NoError(t, bl.Revoke(ctx, "new", time.Minute))

		assert.Len(t, bl.entries, 1)
	})
}
