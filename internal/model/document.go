package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// firstString returns the first candidate that is a non-empty string,
// or fallback when none is.
func firstString(fallback string, candidates ...any) string {
	for _, c := range candidates {
		if s, ok := c.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// passThrough copies every payload entry whose key is not reserved.
func passThrough(payload map[string]any, reserved map[string]struct{}) map[string]any {
	fields := make(map[string]any, len(payload))
	for k, v := range payload {
		if _, skip := reserved[k]; skip {
			continue
		}
		fields[k] = v
	}
	return fields
}

// CheckFieldKeys rejects top-level keys that a document store would read
// as an update operator or a nested path.
func CheckFieldKeys(payload map[string]any) error {
	for k := range payload {
		if strings.HasPrefix(k, "$") || strings.Contains(k, ".") {
			return ErrValidation.Wrap(fmt.Errorf("field name %q may not start with '$' or contain '.'", k))
		}
	}
	return nil
}

// decodeDocument splits a JSON object into its fields and parses the
// shared "_id" key.
func decodeDocument(data []byte) (map[string]any, primitive.ObjectID, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, primitive.NilObjectID, err
	}

	id := primitive.NilObjectID
	if raw := stringValue(doc["_id"]); raw != "" {
		parsed, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, primitive.NilObjectID, fmt.Errorf("invalid _id %q: %w", raw, err)
		}
		id = parsed
	}
	delete(doc, "_id")

	return doc, id, nil
}

func parseTimestamp(v any) (time.Time, error) {
	raw := stringValue(v)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", raw, err)
	}
	return t, nil
}
