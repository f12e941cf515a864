package repository

import (
	"context"
	"go.mongodb.org/mongo-driver/v2/bson"
	"qrscan/internal/models"
	"sync"
)

// MemoryRepository keeps records in insertion order. Returned records are
// copies, so callers must Save to persist changes.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []*models.ScanRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) find(match func(*models.ScanRecord) bool) (*models.ScanRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.records {
		if match(rec) {
			return rec.Clone(), nil
		}
	}
	return nil, models.ErrScanNotFound
}

func (r *MemoryRepository) FindBySourceIdentifier(_ context.Context, sourceIdentifier string) (*models.ScanRecord, error) {
	return r.find(func(rec *models.ScanRecord) bool {
		return rec.SourceIdentifier == sourceIdentifier
	})
}

func (r *MemoryRepository) FindBySlug(_ context.Context, slug string) (*models.ScanRecord, error) {
	return r.find(func(rec *models.ScanRecord) bool {
		return rec.Slug == slug
	})
}

// FindLatest returns the record with the newest timestamp; ties go to the
// most recently inserted one.
func (r *MemoryRepository) FindLatest(_ context.Context) (*models.ScanRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *models.ScanRecord
	for _, rec := range r.records {
		if latest == nil || !rec.Timestamp.Before(latest.Timestamp) {
			latest = rec
		}
	}
	if latest == nil {
		return nil, models.ErrScanNotFound
	}
	return latest.Clone(), nil
}

func (r *MemoryRepository) Insert(_ context.Context, record *models.ScanRecord) error {
	if record.ID.IsZero() {
		record.ID = bson.NewObjectID()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record.Clone())
	return nil
}

func (r *MemoryRepository) Save(_ context.Context, record *models.ScanRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rec := range r.records {
		if rec.ID == record.ID {
			r.records[i] = record.Clone()
			return nil
		}
	}
	return models.ErrScanNotFound
}

func (r *MemoryRepository) Ping(_ context.Context) error {
	return nil
}

func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
