// Package seed carries the initial product catalog, embedded at build time
// and written to storage on first boot.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/elbatin/JustzMatbaa/internal/domain"
)

//go:embed products.json
var productsJSON []byte

// Products returns the embedded seed catalog.
func Products() ([]domain.Product, error) {
	var products []domain.Product
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		return nil, fmt.Errorf("decode seed products: %w", err)
	}
	return products, nil
}
