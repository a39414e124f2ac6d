package idempotency

import (
	"testing"
	"time"

	"ecotrack-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStore(t *testing.T) *MemoryStore {
	t.Helper()
	store := NewMemoryStore()
	require.NoError(t, store.Insert(&models.IdempotencyRecord{
		IdempotencyKey: "expired",
		CreatedAt:      time.Now().Add(-25 * time.Hour),
	}))
	require.NoError(t, store.Insert(&models.IdempotencyRecord{
		IdempotencyKey: "live",
		CreatedAt:      time.Now().Add(-time.Hour),
	}))
	return store
}

func TestCleanupExpired(t *testing.T) {
	store := seedStore(t)

	deleted, err := CleanupExpired(store, ReplayWindow)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = store.FindValid("expired", time.Time{})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.FindValid("live", time.Time{})
	assert.NoError(t, err)
}

func TestCleanupExpiredEmptyStore(t *testing.T) {
	deleted, err := CleanupExpired(NewMemoryStore(), ReplayWindow)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestRunPeriodicCleanupStops(t *testing.T) {
	store := seedStore(t)

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		RunPeriodicCleanup(store, 50*time.Millisecond, ReplayWindow, stop)
		close(done)
	}()

	// initial sweep runs before the first tick
	assert.Eventually(t, func() bool {
		_, err := store.FindValid("expired", time.Time{})
		return err == ErrNotFound
	}, time.Second, 10*time.Millisecond)

	close(stop)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup goroutine did not stop")
	}
}
