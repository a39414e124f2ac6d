package idempotency

import (
	"log"
	"time"
)

// CleanupExpired deletes records that fell out of the replay window.
// Purely housekeeping: lookups already filter by creation time, so expired
// rows can never be replayed whether or not this runs.
func CleanupExpired(store Store, window time.Duration) (int64, error) {
	deleted, err := store.DeleteOlderThan(time.Now().Add(-window))
	if err != nil {
		log.Printf("idempotency cleanup failed: %v", err)
		return 0, err
	}
	if deleted > 0 {
		log.Printf("idempotency cleanup removed %d expired records", deleted)
	}
	return deleted, nil
}

// RunPeriodicCleanup blocks, sweeping expired records every interval until
// stop is closed. Run it in a goroutine from main.
func RunPeriodicCleanup(store Store, interval, window time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	_, _ = CleanupExpired(store, window)

	for {
		select {
		case <-ticker.C:
			_, _ = CleanupExpired(store, window)
		case <-stop:
			return
		}
	}
}
