package commerce

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a catalog item as served by the remote API.
type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	ImageURL      string           `json:"image,omitempty"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Discount      int              `json:"discount,omitempty"`
	Rating        float64          `json:"rating,omitempty"`
	ReviewsCount  int              `json:"reviews_count,omitempty"`
	Category      string           `json:"category,omitempty"`
	Slug          string           `json:"slug,omitempty"`
}

// Category groups catalog items.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image,omitempty"`
	Slug        string `json:"slug,omitempty"`
}

// GetProducts returns the full catalog.
func (c *Client) GetProducts(ctx context.Context) ([]Product, error) {
	var payload listPayload[Product]
	if err := c.do(ctx, http.MethodGet, "products/", "", nil, &payload); err != nil {
		return nil, err
	}
	return payload.items, nil
}

// GetProductsByCategory returns the catalog filtered by category slug.
func (c *Client) GetProductsByCategory(ctx context.Context, slug string) ([]Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return c.GetProducts(ctx)
	}

	var payload listPayload[Product]
	path := "products/?category=" + url.QueryEscape(slug)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &payload); err != nil {
		return nil, err
	}
	return payload.items, nil
}

// GetCategories returns the catalog categories.
func (c *Client) GetCategories(ctx context.Context) ([]Category, error) {
	var payload listPayload[Category]
	if err := c.do(ctx, http.MethodGet, "categories/", "", nil, &payload); err != nil {
		return nil, err
	}
	return payload.items, nil
}

// SearchProducts runs a server-side catalog search.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.GetProducts(ctx)
	}

	var payload listPayload[Product]
	path := "products/?search=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &payload); err != nil {
		return nil, err
	}
	return payload.items, nil
}
