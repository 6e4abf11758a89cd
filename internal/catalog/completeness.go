package catalog

import (
	"strings"

	"github.com/prijslijst/pricelist-backend/pkg/db/models"
)

// Completeness thresholds for a kind to be shown as fully described.
const (
	minFlavors = 3
	minTags    = 4
)

// KindComplete reports whether a kind meets the publication bar: enough
// flavors and tags, a primary image, and descriptions in both languages.
// The kind must have its association slices loaded.
func KindComplete(kind *models.Kind) bool {
	if kind == nil {
		return false
	}
	if len(kind.Flavors) < minFlavors {
		return false
	}
	if len(kind.Tags) < minTags {
		return false
	}
	if !present(kind.Image1) {
		return false
	}
	return present(kind.DescriptionNL) && present(kind.DescriptionEN)
}

// ProductComplete reports whether a horeca product meets the publication bar:
// a primary image and descriptions in both languages.
func ProductComplete(product *models.Product) bool {
	if product == nil {
		return false
	}
	if !present(product.Image1) {
		return false
	}
	return present(product.DescriptionNL) && present(product.DescriptionEN)
}

func present(value *string) bool {
	return value != nil && strings.TrimSpace(*value) != ""
}
