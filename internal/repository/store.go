package repository

import (
	"context"
	"fmt"

	"foodshare/internal/config"
	"foodshare/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/multierr"
)

// Store bundles the repositories of one backend with the connection they
// share. Close releases that connection.
type Store struct {
	Foods    FoodRepository
	Requests RequestRepository
	Pinger   Pinger

	closers []func(ctx context.Context) error
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Open connects to the backend selected by cfg.Store.Driver, bootstraps its
// indexes or schema and builds the repositories.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Store, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		client, err := database.NewMongoClient(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, err
		}
		return newMongoStore(ctx, client, cfg.Mongo.Database, logger)

	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, cfg.Database, cfg.Store.Timeout, logger)
		if err != nil {
			return nil, err
		}
		return newPostgresStore(ctx, pool, logger)

	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func newMongoStore(ctx context.Context, client *mongo.Client, dbName string, logger zerolog.Logger) (*Store, error) {
	db := client.Database(dbName)

	if err := EnsureMongoIndexes(ctx, db); err != nil {
		return nil, multierr.Append(err, client.Disconnect(context.Background()))
	}
	logger.Info().Str("database", dbName).Msg("mongodb indexes ensured")

	return &Store{
		Foods:    NewMongoFoodRepository(db, logger),
		Requests: NewMongoRequestRepository(db, logger),
		Pinger: pingFunc(func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		}),
		closers: []func(context.Context) error{client.Disconnect},
	}, nil
}

func newPostgresStore(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) (*Store, error) {
	if err := EnsurePostgresSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	logger.Info().Msg("postgres schema ensured")

	return &Store{
		Foods:    NewPostgresFoodRepository(pool, logger),
		Requests: NewPostgresRequestRepository(pool, logger),
		Pinger:   pingFunc(pool.Ping),
		closers: []func(context.Context) error{
			func(context.Context) error {
				pool.Close()
				return nil
			},
		},
	}, nil
}

// Close releases the underlying connection.
func (s *Store) Close(ctx context.Context) error {
	var err error
	for _, closeFn := range s.closers {
		err = multierr.Append(err, closeFn(ctx))
	}
	return err
}
