package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// generateSampleFoods writes a seed file covering every donor shape the
// create path accepts:
//   - nested "donor" object
//   - legacy nested "donator" object
//   - legacy flat donator_* fields
//   - no donor at all (defaults apply)
//   - explicit foodStatus and legacy food_status overrides
func main() {
	dataDir := "data/seed"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	foods := []map[string]any{
		{
			"name":     "Sourdough Bread",
			"quantity": "2 loaves",
			"expiry":   "2026-11-02",
			"donor":    map[string]any{"name": "Alice", "email": "alice@example.com", "image": "https://img.example/alice.png"},
		},
		{
			"name":     "Brown Rice",
			"quantity": "5 kg",
			"donator":  map[string]any{"name": "Bob", "email": "bob@example.com"},
		},
		{
			"name":          "Vegetable Soup",
			"quantity":      "3 litres",
			"donator_Name":  "Carol",
			"donator_email": "carol@example.com",
			"donator_image": "https://img.example/carol.png",
		},
		{
			"name":     "Apples",
			"quantity": "1 crate",
		},
		{
			"name":       "Bread Rolls",
			"quantity":   "12",
			"donor":      map[string]any{"name": "Alice", "email": "alice@example.com"},
			"foodStatus": "Donated",
		},
		{
			"name":          "Pasta",
			"quantity":      "4 packs",
			"donator_email": "dan@example.com",
			"food_status":   "Donated",
		},
	}

	filePath := filepath.Join(dataDir, "foods.ndjson.gz")
	if err := createSeedFile(filePath, foods); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d listings\n", filePath, len(foods))
	fmt.Println("\nExpected donors after import:")
	fmt.Println("  - Sourdough Bread: Alice <alice@example.com> (nested donor)")
	fmt.Println("  - Brown Rice:      Bob <bob@example.com> (legacy donator object)")
	fmt.Println("  - Vegetable Soup:  Carol <carol@example.com> (legacy flat fields)")
	fmt.Println("  - Apples:          Unknown <Unknown@email.com> (defaults)")
	fmt.Println("\nExpected Donated listings: Bread Rolls, Pasta")
	fmt.Println("\nImport with: go run ./cmd/seed", filePath)
}

func createSeedFile(filePath string, foods []map[string]any) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := json.NewEncoder(gzipWriter)
	for _, food := range foods {
		if err := encoder.Encode(food); err != nil {
			return fmt.Errorf("failed to write listing: %w", err)
		}
	}

	return nil
}
