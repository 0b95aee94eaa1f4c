package session

import (
	"context"
	"testing"
	"time"

	authdomain "talentdesk-backend/internal/auth/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SaveGetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &authdomain.Session{ID: "s1", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.UserID)

	require.NoError(t, store.Delete(ctx, "s1"))
	got, err = store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// deleting twice is fine
	require.NoError(t, store.Delete(ctx, "s1"))
}

func TestMemoryStore_ExpiredIsInvisibleUntilPruned(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, &authdomain.Session{ID: "old", UserID: "u1", ExpiresAt: now.Add(-time.Second)}))
	require.NoError(t, store.Save(ctx, &authdomain.Session{ID: "new", UserID: "u2", ExpiresAt: now.Add(time.Hour)}))

	got, err := store.Get(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 2, store.Len())

	removed, err := store.PruneExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, store.Len())

	got, err = store.Get(ctx, "new")
	require.NoError(t, err)
	assert.NotNil(t, got)
}
