package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS foods (
		id TEXT PRIMARY KEY,
		doc JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_foods_donor_email ON foods ((doc->'donor'->>'email'));
	CREATE INDEX IF NOT EXISTS idx_foods_created_at ON foods(created_at);

	CREATE TABLE IF NOT EXISTS requests (
		id TEXT PRIMARY KEY,
		food_id TEXT NOT NULL,
		doc JSONB NOT NULL,
		request_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_requests_food_id ON requests(food_id);
`

// EnsurePostgresSchema creates the JSONB tables and their indexes.
func EnsurePostgresSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return storeError("create schema", err)
	}
	return nil
}

// EnsureMongoIndexes creates the secondary indexes used by list queries.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	foodIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "donor.email", Value: 1}},
		Options: options.Index().SetName("donor_email"),
	}
	if _, err := db.Collection(foodsCollection).Indexes().CreateOne(ctx, foodIndex); err != nil {
		return storeError(fmt.Sprintf("create index on %s", foodsCollection), err)
	}

	requestIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "foodId", Value: 1}},
		Options: options.Index().SetName("food_id"),
	}
	if _, err := db.Collection(requestsCollection).Indexes().CreateOne(ctx, requestIndex); err != nil {
		return storeError(fmt.Sprintf("create index on %s", requestsCollection), err)
	}

	return nil
}
