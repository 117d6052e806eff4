package seed

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// cancelCheckInterval is how many lines pass between context checks.
const cancelCheckInterval = 1_000

// decodeBatch reads gzipped NDJSON from r. Blank lines are skipped and
// lines that are not JSON objects are counted as malformed.
func decodeBatch(ctx context.Context, r io.Reader, source string, logger zerolog.Logger) (*Batch, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		logger.Error().Err(err).Str("source", source).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", source, err)
	}
	defer gzipReader.Close()

	batch := &Batch{Payloads: make([]map[string]any, 0)}

	scanner := bufio.NewScanner(gzipReader)
	// Listings with long descriptions exceed the default token size.
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%cancelCheckInterval == 0 {
			select {
			case <-ctx.Done():
				logger.Warn().Str("source", source).Int("line", lineNo).Msg("seed loading cancelled")
				return nil, ctx.Err()
			default:
			}
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var payload map[string]any
		if err := json.Unmarshal(line, &payload); err != nil || payload == nil {
			logger.Warn().Err(err).Str("source", source).Int("line", lineNo).Msg("skipping malformed seed line")
			batch.Malformed++
			continue
		}
		batch.Payloads = append(batch.Payloads, payload)
	}

	if err := scanner.Err(); err != nil {
		logger.Error().Err(err).Str("source", source).Msg("error reading seed file")
		return nil, fmt.Errorf("error reading seed file %s: %w", source, err)
	}

	return batch, nil
}
