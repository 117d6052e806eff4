package model

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestStatus is the state of a food request. Values other than the
// constants below are tolerated.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)

// MarksFoodDonated reports whether moving a request to this status
// donates the linked food.
func (s RequestStatus) MarksFoodDonated() bool {
	return s == RequestStatusAccepted
}

// FoodRequest is a recipient's request for a food listing.
type FoodRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	FoodID      string             `bson:"foodId"`
	Status      RequestStatus      `bson:"status"`
	RequestDate time.Time          `bson:"requestDate"`
	Fields      map[string]any     `bson:",inline"`
}

// StatusUpdate is the payload for changing a request's status.
type StatusUpdate struct {
	Status string `json:"status" validate:"required"`
}

var requestReservedKeys = map[string]struct{}{
	"_id":         {},
	"id":          {},
	"foodId":      {},
	"status":      {},
	"requestDate": {},
}

// NewFoodRequest builds a pending request for foodID. The path identifier
// wins over any foodId in the payload.
func NewFoodRequest(foodID primitive.ObjectID, payload map[string]any, now time.Time) *FoodRequest {
	return &FoodRequest{
		FoodID:      foodID.Hex(),
		Status:      RequestStatusPending,
		RequestDate: now.UTC().Truncate(time.Millisecond),
		Fields:      passThrough(payload, requestReservedKeys),
	}
}

func (r FoodRequest) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(r.Fields)+4)
	for k, v := range r.Fields {
		doc[k] = v
	}
	if !r.ID.IsZero() {
		doc["_id"] = r.ID
	}
	doc["foodId"] = r.FoodID
	doc["status"] = r.Status
	doc["requestDate"] = r.RequestDate
	return json.Marshal(doc)
}

func (r *FoodRequest) UnmarshalJSON(data []byte) error {
	doc, id, err := decodeDocument(data)
	if err != nil {
		return err
	}

	requestDate, err := parseTimestamp(doc["requestDate"])
	if err != nil {
		return err
	}

	req := FoodRequest{
		ID:          id,
		FoodID:      stringValue(doc["foodId"]),
		Status:      RequestStatus(stringValue(doc["status"])),
		RequestDate: requestDate,
	}

	delete(doc, "foodId")
	delete(doc, "status")
	delete(doc, "requestDate")
	req.Fields = doc

	*r = req
	return nil
}
