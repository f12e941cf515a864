package repository

import (
	"context"
	"errors"
	"fmt"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"qrscan/internal/models"
	"time"
)

// MongoRepository stores scan records in one collection. There is no unique
// index on sourceIdentifier: two concurrent first scans with the same
// User-Agent can both miss the lookup and insert two records.
type MongoRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
}

func NewMongoRepository(collection *mongo.Collection, timeout time.Duration) *MongoRepository {
	return &MongoRepository{collection: collection, timeout: timeout}
}

func (r *MongoRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}},
		{Keys: bson.D{{Key: "sourceIdentifier", Value: 1}}},
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
	})
	return err
}

func (r *MongoRepository) findOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) (*models.ScanRecord, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var record models.ScanRecord
	err := r.collection.FindOne(ctx, filter, opts...).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrScanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *MongoRepository) FindBySourceIdentifier(ctx context.Context, sourceIdentifier string) (*models.ScanRecord, error) {
	return r.findOne(ctx, bson.D{{Key: "sourceIdentifier", Value: sourceIdentifier}})
}

func (r *MongoRepository) FindBySlug(ctx context.Context, slug string) (*models.ScanRecord, error) {
	return r.findOne(ctx, bson.D{{Key: "slug", Value: slug}})
}

func (r *MongoRepository) FindLatest(ctx context.Context) (*models.ScanRecord, error) {
	return r.findOne(ctx, bson.D{}, options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
}

func (r *MongoRepository) Insert(ctx context.Context, record *models.ScanRecord) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if record.ID.IsZero() {
		record.ID = bson.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, record)
	return err
}

func (r *MongoRepository) Save(ctx context.Context, record *models.ScanRecord) error {
	if record.ID.IsZero() {
		return fmt.Errorf("save scan record: %w", models.ErrScanNotFound)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.collection.ReplaceOne(ctx, bson.D{{Key: "_id", Value: record.ID}}, record)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrScanNotFound
	}
	return nil
}

func (r *MongoRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.collection.Database().Client().Ping(ctx, nil)
}
