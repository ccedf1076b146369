package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/dasmondroy97/Quantexa/internal/domain/repository"
)

const defaultMongoTimeout = 10 * time.Second

// MongoSource locates the database holding flight and passenger documents
type MongoSource struct {
	URI      string
	Database string
	Username string
	Password string
	// Timeout bounds connecting and the initial ping. Zero uses 10s.
	Timeout time.Duration
}

// OpenMongoSource connects to the source database. Analytics only read, so
// secondaries are preferred when the deployment has them. Failures wrap
// repository.ErrSourceUnavailable.
func OpenMongoSource(ctx context.Context, src MongoSource) (*mongo.Client, *mongo.Database, error) {
	if src.Database == "" {
		return nil, nil, fmt.Errorf("%w: mongodb database name is empty", repository.ErrSourceUnavailable)
	}

	timeout := src.Timeout
	if timeout <= 0 {
		timeout = defaultMongoTimeout
	}

	clientOptions := options.Client().
		ApplyURI(src.URI).
		SetAppName("flightstats").
		SetConnectTimeout(timeout).
		SetReadPreference(readpref.SecondaryPreferred())
	if src.Username != "" && src.Password != "" {
		clientOptions.SetAuth(options.Credential{
			Username: src.Username,
			Password: src.Password,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: connect mongodb: %v", repository.ErrSourceUnavailable, err)
	}
	if err := client.Ping(ctx, readpref.SecondaryPreferred()); err != nil {
		err = errors.Join(err, client.Disconnect(context.Background()))
		return nil, nil, fmt.Errorf("%w: ping mongodb: %v", repository.ErrSourceUnavailable, err)
	}

	return client, client.Database(src.Database), nil
}
