package providers

import (
	"context"
	"errors"
	"fmt"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"qrscan/internal/structures"
	"time"
)

var ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")

// NewMongoProvider connects to MongoDB, retrying the connect+ping pair
// retryAttempts times. The returned cleanup disconnects the client.
func NewMongoProvider(conf *structures.Config, logger Logger) (*mongo.Database, func(), error) {
	cfg := conf.Mongo
	attempts := max(cfg.RetryAttempts, 1)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		client, err := mongo.Connect(
			options.Client().
				ApplyURI(cfg.URL).
				SetConnectTimeout(cfg.ConnectTimeout).
				SetMaxPoolSize(cfg.MaxPoolSize).
				SetAppName(conf.AppName),
		)
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
			err = client.Ping(ctx, nil)
			cancel()
			if err == nil {
				logger.Infof(TypeApp, "Connected to mongo database %s", cfg.Database)
				cleanup := func() {
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					if err := client.Disconnect(ctx); err != nil {
						logger.Errorf(TypeApp, "Mongo disconnect error: %s", err)
					}
				}
				return client.Database(cfg.Database), cleanup, nil
			}
			_ = client.Disconnect(context.Background())
		}
		lastErr = err
		logger.Warnf(TypeApp, "Mongo connection attempt %d/%d failed: %s", attempt, attempts, err)

		if attempt < attempts {
			time.Sleep(cfg.RetryInterval)
		}
	}

	return nil, nil, fmt.Errorf("%w: %w", ErrFailedToConnectToMongo, lastErr)
}
