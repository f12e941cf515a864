package repository

import (
	"context"
	"qrscan/internal/models"
	"qrscan/internal/providers"
	"time"
)

// InstrumentedRepository wraps a ScanRepositoryInterface and observes the
// duration of every storage call.
type InstrumentedRepository struct {
	inner   ScanRepositoryInterface
	metrics providers.MetricsProviderInterface
}

func NewInstrumentedRepository(inner ScanRepositoryInterface, metrics providers.MetricsProviderInterface) ScanRepositoryInterface {
	return &InstrumentedRepository{inner: inner, metrics: metrics}
}

func (r *InstrumentedRepository) observe(operation string, start time.Time) {
	r.metrics.ObservePersistenceDuration(operation, time.Since(start))
}

func (r *InstrumentedRepository) FindBySourceIdentifier(ctx context.Context, sourceIdentifier string) (*models.ScanRecord, error) {
	defer r.observe("find_by_source", time.Now())
	return r.inner.FindBySourceIdentifier(ctx, sourceIdentifier)
}

func (r *InstrumentedRepository) FindBySlug(ctx context.Context, slug string) (*models.ScanRecord, error) {
	defer r.observe("find_by_slug", time.Now())
	return r.inner.FindBySlug(ctx, slug)
}

func (r *InstrumentedRepository) FindLatest(ctx context.Context) (*models.ScanRecord, error) {
	defer r.observe("find_latest", time.Now())
	return r.inner.FindLatest(ctx)
}

func (r *InstrumentedRepository) Insert(ctx context.Context, record *models.ScanRecord) error {
	defer r.observe("insert", time.Now())
	return r.inner.Insert(ctx, record)
}

func (r *InstrumentedRepository) Save(ctx context.Context, record *models.ScanRecord) error {
	defer r.observe("save", time.Now())
	return r.inner.Save(ctx, record)
}

func (r *InstrumentedRepository) Ping(ctx context.Context) error {
	return r.inner.Ping(ctx)
}
