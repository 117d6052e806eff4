package seed

import (
	"context"

	"foodshare/internal/model"
)

// Batch is the decoded content of one seed file.
type Batch struct {
	// Payloads holds one create payload per non-blank line.
	Payloads []map[string]any

	// Malformed counts lines that were not JSON objects.
	Malformed int
}

// Loader defines the interface for loading seed files.
type Loader interface {
	// Load reads a gzipped NDJSON file and returns its payloads.
	Load(ctx context.Context, path string) (*Batch, error)
}

// Creator stores one food listing from a create payload.
type Creator interface {
	Create(ctx context.Context, payload map[string]any) (*model.FoodListing, error)
}
