package catalog

import (
	"github.com/shopspring/decimal"
	"github.com/shopvue/storefront/pkg/commerce"
)

// The built-in catalog keeps the storefront browsable when the remote API is
// unreachable. Prices mirror the seeded remote catalog.

func fallbackCategories() []commerce.Category {
	return []commerce.Category{
		{ID: "1", Name: "Electronics", Description: "Latest gadgets and electronics", Slug: "electronics"},
		{ID: "2", Name: "Clothing", Description: "Fashion and apparel", Slug: "clothing"},
		{ID: "3", Name: "Home & Garden", Description: "Home improvement and garden supplies", Slug: "home-garden"},
		{ID: "4", Name: "Sports", Description: "Sports equipment and gear", Slug: "sports"},
		{ID: "5", Name: "Books", Description: "Books and reading materials", Slug: "books"},
		{ID: "6", Name: "Toys & Games", Description: "Toys and games for all ages", Slug: "toys-games"},
		{ID: "7", Name: "Beauty & Health", Description: "Beauty products and health essentials", Slug: "beauty-health"},
		{ID: "8", Name: "Automotive", Description: "Car parts and accessories", Slug: "automotive"},
	}
}

func fallbackProducts() []commerce.Product {
	price := func(value string) decimal.Decimal { return decimal.RequireFromString(value) }
	pricePtr := func(value string) *decimal.Decimal {
		p := price(value)
		return &p
	}

	return []commerce.Product{
		{
			ID:            "1",
			Name:          "Wireless Headphones",
			Description:   "Premium noise-cancelling wireless headphones with 30-hour battery",
			Price:         price("199.99"),
			OriginalPrice: pricePtr("249.99"),
			Discount:      20,
			Rating:        4.5,
			ReviewsCount:  128,
			Category:      "electronics",
			Slug:          "wireless-headphones",
		},
		{
			ID:           "2",
			Name:         "Smart Watch Pro",
			Description:  "Advanced fitness tracking and health monitoring smartwatch",
			Price:        price("299.99"),
			Rating:       4.8,
			ReviewsCount: 256,
			Category:     "electronics",
			Slug:         "smart-watch-pro",
		},
		{
			ID:            "3",
			Name:          "Cotton T-Shirt",
			Description:   "Comfortable 100% cotton t-shirt in various colors",
			Price:         price("24.99"),
			OriginalPrice: pricePtr("29.99"),
			Discount:      17,
			Rating:        4.3,
			ReviewsCount:  89,
			Category:      "clothing",
			Slug:          "cotton-t-shirt",
		},
		{
			ID:            "4",
			Name:          "Running Shoes",
			Description:   "Lightweight running shoes with cushioned sole",
			Price:         price("89.99"),
			OriginalPrice: pricePtr("119.99"),
			Discount:      25,
			Rating:        4.7,
			ReviewsCount:  234,
			Category:      "sports",
			Slug:          "running-shoes",
		},
		{
			ID:            "5",
			Name:          "Garden Tool Set",
			Description:   "Complete 10-piece stainless steel garden tool set",
			Price:         price("79.99"),
			OriginalPrice: pricePtr("99.99"),
			Discount:      20,
			Rating:        4.4,
			ReviewsCount:  67,
			Category:      "home-garden",
			Slug:          "garden-tool-set",
		},
		{
			ID:           "6",
			Name:         "Laptop Stand",
			Description:  "Adjustable aluminum laptop stand for ergonomic workspace",
			Price:        price("39.99"),
			Rating:       4.4,
			ReviewsCount: 94,
			Category:     "electronics",
			Slug:         "laptop-stand",
		},
	}
}
