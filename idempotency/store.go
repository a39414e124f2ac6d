// Package idempotency provides the storage behind the request-deduplication
// middleware: insert-once records looked up by key with a creation-time
// lower bound.
package idempotency

import (
	"errors"
	"sync"
	"time"

	"ecotrack-backend/models"

	"gorm.io/gorm"
)

// ReplayWindow is how long a stored response can satisfy a duplicate request.
const ReplayWindow = 24 * time.Hour

var (
	// ErrNotFound means no record exists for the key within the window.
	ErrNotFound = errors.New("idempotency record not found")
	// ErrDuplicateKey means a record for the key already exists. Expected
	// when two first-time requests race; the caller treats it as benign.
	ErrDuplicateKey = errors.New("idempotency key already recorded")
)

// Store is the minimal contract the guard needs: insert a new record and
// find one by key that was created after notBefore.
type Store interface {
	Insert(rec *models.IdempotencyRecord) error
	FindValid(key string, notBefore time.Time) (*models.IdempotencyRecord, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

// GormStore persists records through the shared GORM connection.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Insert(rec *models.IdempotencyRecord) error {
	if err := s.db.Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (s *GormStore) FindValid(key string, notBefore time.Time) (*models.IdempotencyRecord, error) {
	var rec models.IdempotencyRecord
	err := s.db.
		Where("idempotency_key = ? AND created_at > ?", key, notBefore).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *GormStore) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res := s.db.Where("created_at < ?", cutoff).Delete(&models.IdempotencyRecord{})
	return res.RowsAffected, res.Error
}

// MemoryStore is a map-backed Store used by tests and local runs without a
// database. Mirrors the unique-key behavior of the SQL store.
type MemoryStore struct {
	mu   sync.RWMutex
	recs map[string]*models.IdempotencyRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recs: make(map[string]*models.IdempotencyRecord)}
}

func (s *MemoryStore) Insert(rec *models.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.recs[rec.IdempotencyKey]; exists {
		return ErrDuplicateKey
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	cp := *rec
	s.recs[rec.IdempotencyKey] = &cp
	return nil
}

func (s *MemoryStore) FindValid(key string, notBefore time.Time) (*models.IdempotencyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.recs[key]
	if !ok || !rec.CreatedAt.After(notBefore) {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *MemoryStore) DeleteOlderThan(cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for key, rec := range s.recs {
		if rec.CreatedAt.Before(cutoff) {
			delete(s.recs, key)
			deleted++
		}
	}
	return deleted, nil
}
