package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// defaultTimeout bounds every repository call in this package.
const defaultTimeout = 10 * time.Second

// Connection defaults for local development. Deployments override them
// through MONGO_URI and MONGO_DB.
const (
	defaultURI      = "mongodb://localhost:27017"
	defaultDatabase = "membership"

	appName = "membership-api"

	// maxPoolSize caps connections handed out to concurrent request handlers.
	maxPoolSize = 100
)

// Config captures the settings for the MongoDB connection. Zero values fall
// back to the local-development defaults.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

func (c Config) withDefaults() Config {
	if c.URI == "" {
		c.URI = defaultURI
	}
	if c.Database == "" {
		c.Database = defaultDatabase
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

// Connect establishes a MongoDB client, verifies primary connectivity with a
// ping, and returns both the client and the selected database.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	cfg = cfg.withDefaults()

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetMaxPoolSize(maxPoolSize).
		SetServerSelectionTimeout(cfg.Timeout)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
