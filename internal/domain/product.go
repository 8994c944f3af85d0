package domain

import "github.com/shopspring/decimal"

// CatalogProduct is a priced product from the grocery catalog provider.
// Uniqueness in storage is (Name, Brand); repeated upserts of the same
// pair return the same ProductID.
type CatalogProduct struct {
	ProductID   int64           `json:"productId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
}
