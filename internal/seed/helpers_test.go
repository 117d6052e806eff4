package seed

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// gzipLines gzips lines joined by newlines.
func gzipLines(t *testing.T, lines []string) []byte {
	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	for _, line := range lines {
		_, err := gzipWriter.Write([]byte(line + "\n"))
		require.NoError(t, err)
	}
	require.NoError(t, gzipWriter.Close())
	return buf.Bytes()
}

// createTestSeedFile writes a gzipped NDJSON file and returns its path.
func createTestSeedFile(t *testing.T, filename string, lines []string) string {
	filePath := filepath.Join(t.TempDir(), filename)
	require.NoError(t, os.WriteFile(filePath, gzipLines(t, lines), 0o644))
	return filePath
}
