package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FoodStatus is the availability of a listing.
type FoodStatus string

const (
	FoodStatusAvailable FoodStatus = "Available"
	FoodStatusDonated   FoodStatus = "Donated"
)

// Donor defaults applied when the payload carries no donor details.
const (
	DefaultDonorName  = "Unknown"
	DefaultDonorEmail = "Unknown@email.com"
)

// Donor identifies the person offering a listing.
type Donor struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Image string `bson:"image" json:"image"`
}

// FoodListing is a surplus food item offered by a donor.
// Fields holds every descriptive attribute (name, quantity, expiry, ...)
// which is stored as-is next to the managed keys.
type FoodListing struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Donor      Donor              `bson:"donor"`
	FoodStatus FoodStatus         `bson:"foodStatus"`
	CreatedAt  time.Time          `bson:"createdAt"`
	Fields     map[string]any     `bson:",inline"`
}

// FoodFilter narrows a listing query. Empty fields are ignored.
type FoodFilter struct {
	DonorEmail string
	NamePrefix string
}

// DeleteResult reports how many records a delete removed.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// Keys consumed by normalization; they never reach Fields.
var foodReservedKeys = map[string]struct{}{
	"_id":           {},
	"id":            {},
	"donor":         {},
	"donator":       {},
	"donator_Name":  {},
	"donator_email": {},
	"donator_image": {},
	"foodStatus":    {},
	"food_status":   {},
	"createdAt":     {},
}

// Keys an update may not touch.
var foodImmutableKeys = map[string]struct{}{
	"_id":       {},
	"id":        {},
	"createdAt": {},
}

// NewFoodListing builds a listing from a donor-submitted payload.
//
// The donor is taken from a nested "donor" or legacy "donator" object, then
// from the legacy flat fields donator_Name, donator_email and donator_image.
// The status defaults to Available unless foodStatus or food_status is set.
func NewFoodListing(payload map[string]any, now time.Time) *FoodListing {
	donor, _ := payload["donor"].(map[string]any)
	donator, _ := payload["donator"].(map[string]any)

	return &FoodListing{
		Donor: Donor{
			Name:  firstString(DefaultDonorName, donor["name"], donator["name"], payload["donator_Name"]),
			Email: firstString(DefaultDonorEmail, donor["email"], donator["email"], payload["donator_email"]),
			Image: firstString("", donor["image"], donator["image"], payload["donator_image"]),
		},
		FoodStatus: FoodStatus(firstString(string(FoodStatusAvailable), payload["foodStatus"], payload["food_status"])),
		CreatedAt:  now.UTC().Truncate(time.Millisecond),
		Fields:     passThrough(payload, foodReservedKeys),
	}
}

// FoodUpdateFields returns the subset of payload an update may merge.
// Managed keys must keep the shape the listing stores them in: foodStatus
// a string, donor an object whose name, email and image are strings.
func FoodUpdateFields(payload map[string]any) (map[string]any, error) {
	if err := CheckFieldKeys(payload); err != nil {
		return nil, err
	}

	if v, ok := payload["foodStatus"]; ok {
		if _, isString := v.(string); !isString {
			return nil, ErrValidation.Wrap(errors.New("foodStatus must be a string"))
		}
	}

	if v, ok := payload["donor"]; ok {
		donor, isObject := v.(map[string]any)
		if !isObject {
			return nil, ErrValidation.Wrap(errors.New("donor must be an object"))
		}
		for _, key := range []string{"name", "email", "image"} {
			if dv, present := donor[key]; present {
				if _, isString := dv.(string); !isString {
					return nil, ErrValidation.Wrap(fmt.Errorf("donor.%s must be a string", key))
				}
			}
		}
	}

	return passThrough(payload, foodImmutableKeys), nil
}

// Name returns the listing's "name" attribute, if any.
func (f *FoodListing) Name() string {
	return stringValue(f.Fields["name"])
}

// MarshalJSON flattens Fields next to the managed keys.
func (f FoodListing) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(f.Fields)+4)
	for k, v := range f.Fields {
		doc[k] = v
	}
	if !f.ID.IsZero() {
		doc["_id"] = f.ID
	}
	doc["donor"] = f.Donor
	doc["foodStatus"] = f.FoodStatus
	doc["createdAt"] = f.CreatedAt
	return json.Marshal(doc)
}

func (f *FoodListing) UnmarshalJSON(data []byte) error {
	doc, id, err := decodeDocument(data)
	if err != nil {
		return err
	}

	createdAt, err := parseTimestamp(doc["createdAt"])
	if err != nil {
		return err
	}

	listing := FoodListing{
		ID:         id,
		FoodStatus: FoodStatus(stringValue(doc["foodStatus"])),
		CreatedAt:  createdAt,
	}
	if d, ok := doc["donor"].(map[string]any); ok {
		listing.Donor = Donor{
			Name:  stringValue(d["name"]),
			Email: stringValue(d["email"]),
			Image: stringValue(d["image"]),
		}
	}

	delete(doc, "donor")
	delete(doc, "foodStatus")
	delete(doc, "createdAt")
	listing.Fields = doc

	*f = listing
	return nil
}
