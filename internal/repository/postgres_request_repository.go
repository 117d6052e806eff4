package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"foodshare/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// postgresRequestRepository implements the RequestRepository interface on a
// PostgreSQL JSONB column.
type postgresRequestRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresRequestRepository creates a new PostgreSQL-backed request repository.
func NewPostgresRequestRepository(pool *pgxpool.Pool, logger zerolog.Logger) RequestRepository {
	return &postgresRequestRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "request").Str("driver", "postgres").Logger(),
	}
}

// List retrieves every request.
func (r *postgresRequestRepository) List(ctx context.Context) ([]model.FoodRequest, error) {
	return r.query(ctx, `SELECT doc FROM requests ORDER BY request_date, id`)
}

// ListByFood retrieves the requests whose foodId equals foodID.
func (r *postgresRequestRepository) ListByFood(ctx context.Context, foodID string) ([]model.FoodRequest, error) {
	return r.query(ctx, `SELECT doc FROM requests WHERE food_id = $1 ORDER BY request_date, id`, foodID)
}

func (r *postgresRequestRepository) query(ctx context.Context, query string, args ...any) ([]model.FoodRequest, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query requests")
		return nil, storeError("query requests", err)
	}
	defer rows.Close()

	requests := make([]model.FoodRequest, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan request row")
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}

		var req model.FoodRequest
		if err := json.Unmarshal(doc, &req); err != nil {
			r.logger.Error().Err(err).Msg("failed to decode request document")
			return nil, fmt.Errorf("failed to decode request: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating request rows")
		return nil, storeError("iterate requests", err)
	}

	return requests, nil
}

// Create stores a new request and assigns its ID.
func (r *postgresRequestRepository) Create(ctx context.Context, req *model.FoodRequest) error {
	req.ID = primitive.NewObjectID()

	doc, err := json.Marshal(req)
	if err != nil {
		req.ID = primitive.NilObjectID
		return fmt.Errorf("failed to encode request: %w", err)
	}

	query := `INSERT INTO requests (id, food_id, doc, request_date) VALUES ($1, $2, $3::jsonb, $4)`

	if _, err := r.pool.Exec(ctx, query, req.ID.Hex(), req.FoodID, string(doc), req.RequestDate); err != nil {
		r.logger.Error().Err(err).
			Str("request_id", req.ID.Hex()).
			Str("food_id", req.FoodID).
			Msg("failed to insert request")
		req.ID = primitive.NilObjectID
		return storeError("insert request", err)
	}

	return nil
}

// UpdateStatus sets the status of the request matching both id and foodID.
// It returns nil when no request matches.
func (r *postgresRequestRepository) UpdateStatus(ctx context.Context, foodID string, id primitive.ObjectID, status model.RequestStatus) (*model.FoodRequest, error) {
	query := `
		UPDATE requests
		SET doc = jsonb_set(doc, '{status}', to_jsonb($3::text))
		WHERE id = $1 AND food_id = $2
		RETURNING doc
	`

	var doc []byte
	err := r.pool.QueryRow(ctx, query, id.Hex(), foodID, string(status)).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().
				Str("request_id", id.Hex()).
				Str("food_id", foodID).
				Msg("request to update not found")
			return nil, nil
		}
		r.logger.Error().Err(err).
			Str("request_id", id.Hex()).
			Str("food_id", foodID).
			Msg("failed to update request status")
		return nil, storeError("update request status", err)
	}

	var req model.FoodRequest
	if err := json.Unmarshal(doc, &req); err != nil {
		return nil, fmt.Errorf("failed to decode request: %w", err)
	}

	return &req, nil
}
