package repository

import (
	"context"
	"testing"
	"time"

	"foodshare/internal/config"
	"foodshare/internal/database"
	"foodshare/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
)

// setupMongo starts a MongoDB testcontainer and returns a database handle.
func setupMongo(t *testing.T) (*mongo.Database, func()) {
	if testing.Short() {
		t.Skip("Skipping container-backed test in short mode")
	}
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := database.NewMongoClient(ctx, config.MongoConfig{URI: uri, Database: "testdb"}, zerolog.Nop())
	require.NoError(t, err)

	db := client.Database("testdb")
	require.NoError(t, EnsureMongoIndexes(ctx, db))

	cleanup := func() {
		_ = client.Disconnect(ctx)
		_ = mongoContainer.Terminate(ctx)
	}

	return db, cleanup
}

// setupPostgres starts a PostgreSQL testcontainer and returns a pool with
// the JSONB schema applied.
func setupPostgres(t *testing.T) (*pgxpool.Pool, func()) {
	if testing.Short() {
		t.Skip("Skipping container-backed test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, EnsurePostgresSchema(ctx, pool))

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

func newListing(name, email string) *model.FoodListing {
	return model.NewFoodListing(map[string]any{
		"name":     name,
		"quantity": "2 loaves",
		"donor":    map[string]any{"name": "Alice", "email": email},
	}, time.Now())
}
