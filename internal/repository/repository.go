package repository

import (
	"context"
	"qrscan/internal/models"
	"qrscan/internal/providers"
	"qrscan/internal/structures"
)

// ScanRepositoryInterface is the document store behind the scan service.
// Finders return models.ErrScanNotFound when nothing matches.
type ScanRepositoryInterface interface {
	FindBySourceIdentifier(ctx context.Context, sourceIdentifier string) (*models.ScanRecord, error)
	FindBySlug(ctx context.Context, slug string) (*models.ScanRecord, error)
	FindLatest(ctx context.Context) (*models.ScanRecord, error)
	Insert(ctx context.Context, record *models.ScanRecord) error
	Save(ctx context.Context, record *models.ScanRecord) error
	Ping(ctx context.Context) error
}

// NewScanRepository builds the configured storage driver and wraps it with
// persistence metrics. The cleanup closes the underlying connection.
func NewScanRepository(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) (ScanRepositoryInterface, func(), error) {
	var (
		repo    ScanRepositoryInterface
		cleanup = func() {}
	)

	switch conf.Storage.Driver {
	case "memory":
		logger.Warnf(providers.TypeApp, "Using in-memory scan storage, records are lost on restart")
		repo = NewMemoryRepository()
	default:
		db, closeDB, err := providers.NewMongoProvider(conf, logger)
		if err != nil {
			return nil, nil, err
		}
		mongoRepo := NewMongoRepository(db.Collection(conf.Mongo.Collection), conf.Mongo.OperationTimeout)

		ctx, cancel := context.WithTimeout(context.Background(), conf.Mongo.ConnectTimeout)
		err = mongoRepo.EnsureIndexes(ctx)
		cancel()
		if err != nil {
			logger.Errorf(providers.TypeApp, "Unable to create scan indexes: %s", err)
		}

		repo = mongoRepo
		cleanup = closeDB
	}

	return NewInstrumentedRepository(repo, metrics), cleanup, nil
}
