package kroger

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/smartshelf/backend/internal/domain"
)

// mapProduct converts a raw search result into a CatalogProduct. The
// provider uses "description" as the display name; a missing one makes
// the item unusable for the (name, brand) uniqueness key.
func mapProduct(item productItem) (domain.CatalogProduct, error) {
	if item.Description == "" {
		return domain.CatalogProduct{}, fmt.Errorf("product %q has no description", item.ProductID)
	}

	// Provider ids are digit strings, sometimes zero-padded.
	providerID, err := strconv.ParseInt(item.ProductID, 10, 64)
	if err != nil {
		return domain.CatalogProduct{}, fmt.Errorf("unparseable product id %q: %v", item.ProductID, err)
	}

	price := decimal.Zero
	if len(item.Items) > 0 && item.Items[0].Price.Regular != "" {
		price, err = decimal.NewFromString(item.Items[0].Price.Regular.String())
		if err != nil {
			return domain.CatalogProduct{}, fmt.Errorf("unparseable price %q: %v", item.Items[0].Price.Regular, err)
		}
	}

	category := ""
	if len(item.Categories) > 0 {
		category = item.Categories[0]
	}

	return domain.CatalogProduct{
		ProductID:   providerID,
		Name:        item.Description,
		Description: item.Description,
		Price:       price,
		Brand:       item.Brand,
		Category:    category,
	}, nil
}
