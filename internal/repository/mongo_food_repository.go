package repository

import (
	"context"
	"errors"
	"regexp"

	"foodshare/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names shared by both backends.
const (
	foodsCollection    = "foods"
	requestsCollection = "requests"
)

// mongoFoodRepository implements the FoodRepository interface using MongoDB.
type mongoFoodRepository struct {
	coll   *mongo.Collection
	logger zerolog.Logger
}

// NewMongoFoodRepository creates a new MongoDB-backed food repository.
func NewMongoFoodRepository(db *mongo.Database, logger zerolog.Logger) FoodRepository {
	return &mongoFoodRepository{
		coll:   db.Collection(foodsCollection),
		logger: logger.With().Str("repository", "food").Str("driver", "mongo").Logger(),
	}
}

// List retrieves every listing matching the filter, oldest first.
func (r *mongoFoodRepository) List(ctx context.Context, filter model.FoodFilter) ([]model.FoodListing, error) {
	query := bson.M{}
	if filter.DonorEmail != "" {
		query["donor.email"] = filter.DonorEmail
	}
	if filter.NamePrefix != "" {
		query["name"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(filter.NamePrefix), Options: "i"}
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		r.logger.Error().Err(err).
			Str("donor_email", filter.DonorEmail).
			Str("name_prefix", filter.NamePrefix).
			Msg("failed to query foods")
		return nil, storeError("query foods", err)
	}
	defer cursor.Close(ctx)

	listings := make([]model.FoodListing, 0)
	if err := cursor.All(ctx, &listings); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode food documents")
		return nil, storeError("decode foods", err)
	}

	return listings, nil
}

// GetByID retrieves a single listing by its ID.
func (r *mongoFoodRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.FoodListing, error) {
	var listing model.FoodListing
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&listing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Str("food_id", id.Hex()).Msg("food not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("food_id", id.Hex()).Msg("failed to query food")
		return nil, storeError("query food", err)
	}

	return &listing, nil
}

// Create stores a new listing and assigns its ID.
func (r *mongoFoodRepository) Create(ctx context.Context, listing *model.FoodListing) error {
	listing.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, listing); err != nil {
		r.logger.Error().Err(err).Str("food_id", listing.ID.Hex()).Msg("failed to insert food")
		listing.ID = primitive.NilObjectID
		return storeError("insert food", err)
	}

	return nil
}

// Update merges fields into the stored listing with $set and returns the
// document as it is after the write.
func (r *mongoFoodRepository) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*model.FoodListing, error) {
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var listing model.FoodListing
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&listing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Str("food_id", id.Hex()).Msg("food to update not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("food_id", id.Hex()).Msg("failed to update food")
		return nil, storeError("update food", err)
	}

	return &listing, nil
}

// SetStatus overwrites the listing's foodStatus.
func (r *mongoFoodRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status model.FoodStatus) (bool, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"foodStatus": status}})
	if err != nil {
		r.logger.Error().Err(err).
			Str("food_id", id.Hex()).
			Str("status", string(status)).
			Msg("failed to update food status")
		return false, storeError("update food status", err)
	}

	return res.MatchedCount > 0, nil
}

// Delete removes a listing by ID.
func (r *mongoFoodRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error().Err(err).Str("food_id", id.Hex()).Msg("failed to delete food")
		return 0, storeError("delete food", err)
	}

	return res.DeletedCount, nil
}
