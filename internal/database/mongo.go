package database

import (
	"context"
	"fmt"
	"time"

	"foodshare/internal/config"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMongoClient connects to MongoDB using the stable API and verifies the
// deployment answers a ping on the admin database.
func NewMongoClient(ctx context.Context, cfg config.MongoConfig, logger zerolog.Logger) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	opts := options.Client().
		ApplyURI(cfg.ConnectionURI()).
		SetServerAPIOptions(serverAPI).
		SetServerSelectionTimeout(10 * time.Second).
		// Embedded pass-through documents decode as maps so they render as
		// JSON objects.
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	logger.Info().
		Str("database", cfg.Database).
		Bool("explicit_uri", cfg.URI != "").
		Msg("connecting to mongodb")

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info().Msg("pinged deployment, mongodb connection established")

	return client, nil
}
