package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"foodshare/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// postgresFoodRepository implements the FoodRepository interface on a
// PostgreSQL JSONB column. The document shape matches the MongoDB backend.
type postgresFoodRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresFoodRepository creates a new PostgreSQL-backed food repository.
func NewPostgresFoodRepository(pool *pgxpool.Pool, logger zerolog.Logger) FoodRepository {
	return &postgresFoodRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "food").Str("driver", "postgres").Logger(),
	}
}

// List retrieves every listing matching the filter, oldest first.
func (r *postgresFoodRepository) List(ctx context.Context, filter model.FoodFilter) ([]model.FoodListing, error) {
	query := `
		SELECT doc
		FROM foods
		WHERE ($1::text = '' OR doc->'donor'->>'email' = $1)
		  AND ($2::text = '' OR doc->>'name' ILIKE $3 ESCAPE '\')
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, filter.DonorEmail, filter.NamePrefix, likePrefix(filter.NamePrefix))
	if err != nil {
		r.logger.Error().Err(err).
			Str("donor_email", filter.DonorEmail).
			Str("name_prefix", filter.NamePrefix).
			Msg("failed to query foods")
		return nil, storeError("query foods", err)
	}
	defer rows.Close()

	listings := make([]model.FoodListing, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan food row")
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}

		var listing model.FoodListing
		if err := json.Unmarshal(doc, &listing); err != nil {
			r.logger.Error().Err(err).Msg("failed to decode food document")
			return nil, fmt.Errorf("failed to decode food: %w", err)
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating food rows")
		return nil, storeError("iterate foods", err)
	}

	return listings, nil
}

// GetByID retrieves a single listing by its ID.
func (r *postgresFoodRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.FoodListing, error) {
	query := `SELECT doc FROM foods WHERE id = $1`

	listing, err := r.scanOne(r.pool.QueryRow(ctx, query, id.Hex()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("food_id", id.Hex()).Msg("food not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("food_id", id.Hex()).Msg("failed to query food")
		return nil, storeError("query food", err)
	}

	return listing, nil
}

// Create stores a new listing and assigns its ID.
func (r *postgresFoodRepository) Create(ctx context.Context, listing *model.FoodListing) error {
	listing.ID = primitive.NewObjectID()

	doc, err := json.Marshal(listing)
	if err != nil {
		listing.ID = primitive.NilObjectID
		return fmt.Errorf("failed to encode food: %w", err)
	}

	query := `INSERT INTO foods (id, doc, created_at) VALUES ($1, $2::jsonb, $3)`

	if _, err := r.pool.Exec(ctx, query, listing.ID.Hex(), string(doc), listing.CreatedAt); err != nil {
		r.logger.Error().Err(err).Str("food_id", listing.ID.Hex()).Msg("failed to insert food")
		listing.ID = primitive.NilObjectID
		return storeError("insert food", err)
	}

	return nil
}

// Update merges fields into the stored document with the JSONB || operator.
func (r *postgresFoodRepository) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*model.FoodListing, error) {
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}

	patch, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode food update: %w", err)
	}

	query := `UPDATE foods SET doc = doc || $2::jsonb WHERE id = $1 RETURNING doc`

	listing, err := r.scanOne(r.pool.QueryRow(ctx, query, id.Hex(), string(patch)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("food_id", id.Hex()).Msg("food to update not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("food_id", id.Hex()).Msg("failed to update food")
		return nil, storeError("update food", err)
	}

	return listing, nil
}

// SetStatus overwrites the listing's foodStatus.
func (r *postgresFoodRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status model.FoodStatus) (bool, error) {
	query := `UPDATE foods SET doc = jsonb_set(doc, '{foodStatus}', to_jsonb($2::text)) WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id.Hex(), string(status))
	if err != nil {
		r.logger.Error().Err(err).
			Str("food_id", id.Hex()).
			Str("status", string(status)).
			Msg("failed to update food status")
		return false, storeError("update food status", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes a listing by ID.
func (r *postgresFoodRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM foods WHERE id = $1`, id.Hex())
	if err != nil {
		r.logger.Error().Err(err).Str("food_id", id.Hex()).Msg("failed to delete food")
		return 0, storeError("delete food", err)
	}

	return tag.RowsAffected(), nil
}

func (r *postgresFoodRepository) scanOne(row pgx.Row) (*model.FoodListing, error) {
	var doc []byte
	if err := row.Scan(&doc); err != nil {
		return nil, err
	}

	var listing model.FoodListing
	if err := json.Unmarshal(doc, &listing); err != nil {
		return nil, fmt.Errorf("failed to decode food: %w", err)
	}
	return &listing, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePrefix turns a literal prefix into an ILIKE pattern.
func likePrefix(prefix string) string {
	return likeEscaper.Replace(prefix) + "%"
}
