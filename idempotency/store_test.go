package idempotency

import (
	"testing"
	"time"

	"ecotrack-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreInsertAndFind(t *testing.T) {
	store := NewMemoryStore()

	rec := &models.IdempotencyRecord{
		IdempotencyKey: "key-1",
		RequestMethod:  "POST",
		RequestURI:     "/api/exchanges",
		ResponseStatus: 201,
		ResponseBody:   []byte(`{"success":true}`),
	}
	require.NoError(t, store.Insert(rec))

	got, err := store.FindValid("key-1", time.Now().Add(-ReplayWindow))
	require.NoError(t, err)
	assert.Equal(t, 201, got.ResponseStatus)
	assert.Equal(t, []byte(`{"success":true}`), got.ResponseBody)

	// returned record is a copy, mutations must not leak back
	got.ResponseStatus = 500
	again, err := store.FindValid("key-1", time.Now().Add(-ReplayWindow))
	require.NoError(t, err)
	assert.Equal(t, 201, again.ResponseStatus)
}

func TestMemoryStoreDuplicateKey(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Insert(&models.IdempotencyRecord{IdempotencyKey: "key-1"}))
	err := store.Insert(&models.IdempotencyRecord{IdempotencyKey: "key-1"})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestMemoryStoreWindowFilter(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Insert(&models.IdempotencyRecord{
		IdempotencyKey: "old",
		CreatedAt:      time.Now().Add(-ReplayWindow - time.Second),
	}))

	_, err := store.FindValid("old", time.Now().Add(-ReplayWindow))
	assert.ErrorIs(t, err, ErrNotFound)

	// still physically present; only the read-time filter hides it
	got, err := store.FindValid("old", time.Now().Add(-2*ReplayWindow))
	require.NoError(t, err)
	assert.Equal(t, "old", got.IdempotencyKey)
}

func TestMemoryStoreUnknownKey(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.FindValid("missing", time.Time{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDeleteOlderThan(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Insert(&models.IdempotencyRecord{
		IdempotencyKey: "old",
		CreatedAt:      time.Now().Add(-25 * time.Hour),
	}))
	require.NoError(t, store.Insert(&models.IdempotencyRecord{
		IdempotencyKey: "fresh",
		CreatedAt:      time.Now().Add(-time.Hour),
	}))

	deleted, err := store.DeleteOlderThan(time.Now().Add(-ReplayWindow))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = store.FindValid("old", time.Time{})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.FindValid("fresh", time.Time{})
	assert.NoError(t, err)
}
