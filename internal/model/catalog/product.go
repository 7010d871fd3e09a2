package catalog

import "github.com/shopspring/decimal"

// Product is a purchasable item offered at the venue.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

// Seed provides the demo drinks the console starts with.
func Seed() []Product {
	return []Product{
		{ID: "1", Name: "Coffee", Price: decimal.NewFromInt(5), Category: "Drinks"},
		{ID: "2", Name: "Tea", Price: decimal.NewFromInt(3), Category: "Drinks"},
		{ID: "3", Name: "Juice", Price: decimal.NewFromInt(7), Category: "Drinks"},
	}
}
