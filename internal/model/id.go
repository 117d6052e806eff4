package model

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseID parses a hex ObjectID. Malformed input yields ErrInvalidIdentifier.
func ParseID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidIdentifier.Wrap(fmt.Errorf("%q: %w", raw, err))
	}
	return id, nil
}
