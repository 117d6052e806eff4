package repository

import (
	"context"
	"errors"

	"foodshare/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoRequestRepository implements the RequestRepository interface using MongoDB.
type mongoRequestRepository struct {
	coll   *mongo.Collection
	logger zerolog.Logger
}

// NewMongoRequestRepository creates a new MongoDB-backed request repository.
func NewMongoRequestRepository(db *mongo.Database, logger zerolog.Logger) RequestRepository {
	return &mongoRequestRepository{
		coll:   db.Collection(requestsCollection),
		logger: logger.With().Str("repository", "request").Str("driver", "mongo").Logger(),
	}
}

// List retrieves every request.
func (r *mongoRequestRepository) List(ctx context.Context) ([]model.FoodRequest, error) {
	return r.find(ctx, bson.M{})
}

// ListByFood retrieves the requests whose foodId equals foodID.
func (r *mongoRequestRepository) ListByFood(ctx context.Context, foodID string) ([]model.FoodRequest, error) {
	return r.find(ctx, bson.M{"foodId": foodID})
}

func (r *mongoRequestRepository) find(ctx context.Context, query bson.M) ([]model.FoodRequest, error) {
	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		r.logger.Error().Err(err).Interface("filter", query).Msg("failed to query requests")
		return nil, storeError("query requests", err)
	}
	defer cursor.Close(ctx)

	requests := make([]model.FoodRequest, 0)
	if err := cursor.All(ctx, &requests); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode request documents")
		return nil, storeError("decode requests", err)
	}

	return requests, nil
}

// Create stores a new request and assigns its ID.
func (r *mongoRequestRepository) Create(ctx context.Context, req *model.FoodRequest) error {
	req.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
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
func (r *mongoRequestRepository) UpdateStatus(ctx context.Context, foodID string, id primitive.ObjectID, status model.RequestStatus) (*model.FoodRequest, error) {
	filter := bson.M{"_id": id, "foodId": foodID}
	update := bson.M{"$set": bson.M{"status": status}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var req model.FoodRequest
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
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

	return &req, nil
}
