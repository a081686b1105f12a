// Package catalogfile loads the static product catalog the storefront serves.
// The catalog is read once at startup; there is no reload mechanism.
package catalogfile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/trendyhq/storefront/internal/domain"
	pkgvalidator "github.com/trendyhq/storefront/internal/pkg/validator"
)

// Load reads and validates the catalog JSON file at path. Records keep their
// file order, which becomes the catalog order everywhere downstream.
func Load(path string) ([]domain.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates a catalog JSON document
func Parse(data []byte) ([]domain.Product, error) {
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	validate := pkgvalidator.Get()
	seen := make(map[int64]struct{}, len(products))

	for i, p := range products {
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("invalid catalog record at index %d: %w", i, err)
		}
		if _, ok := seen[p.ID]; ok {
			return nil, fmt.Errorf("duplicate product id %d at index %d: %w", p.ID, i, domain.ErrInvalidInput)
		}
		seen[p.ID] = struct{}{}
	}

	return products, nil
}
