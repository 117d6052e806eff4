package seed

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"foodshare/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds how many files are imported at once.
const DefaultConcurrency = 4

// Summary reports the outcome of an import.
type Summary struct {
	Files     int   `json:"files"`
	Created   int64 `json:"created"`
	Failed    int64 `json:"failed"`
	Malformed int64 `json:"malformed"`
}

// Importer loads seed files and creates a listing per payload.
type Importer struct {
	loader      Loader
	creator     Creator
	concurrency int
	logger      zerolog.Logger
}

// NewImporter creates a new importer. A concurrency below 1 uses
// DefaultConcurrency.
func NewImporter(loader Loader, creator Creator, concurrency int, logger zerolog.Logger) *Importer {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Importer{
		loader:      loader,
		creator:     creator,
		concurrency: concurrency,
		logger:      logger.With().Str("component", "seed-importer").Logger(),
	}
}

// Import loads every path concurrently and creates its listings. A file
// that cannot be loaded or an unreachable store aborts the import; other
// create failures are counted and skipped.
func (i *Importer) Import(ctx context.Context, paths []string) (*Summary, error) {
	var created, failed, malformed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(i.concurrency)

	for _, path := range paths {
		g.Go(func() error {
			batch, err := i.loader.Load(ctx, path)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", path, err)
			}
			malformed.Add(int64(batch.Malformed))

			for n, payload := range batch.Payloads {
				listing, err := i.creator.Create(ctx, payload)
				if err != nil {
					if errors.Is(err, model.ErrStoreUnavailable) || ctx.Err() != nil {
						return fmt.Errorf("failed to import %s: %w", path, err)
					}
					i.logger.Warn().Err(err).Str("file", path).Int("payload", n).Msg("failed to create listing")
					failed.Add(1)
					continue
				}
				i.logger.Debug().Str("file", path).Str("food_id", listing.ID.Hex()).Msg("listing imported")
				created.Add(1)
			}

			i.logger.Info().
				Str("file", path).
				Int("payloads", len(batch.Payloads)).
				Msg("seed file imported")
			return nil
		})
	}

	err := g.Wait()

	summary := &Summary{
		Files:     len(paths),
		Created:   created.Load(),
		Failed:    failed.Load(),
		Malformed: malformed.Load(),
	}

	if err != nil {
		i.logger.Error().Err(err).Interface("summary", summary).Msg("seed import aborted")
		return summary, err
	}

	i.logger.Info().Interface("summary", summary).Msg("seed import completed")
	return summary, nil
}
