package commerce

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	pkgerrors "github.com/shopvue/storefront/pkg/errors"
)

// RemoteCartEntry is a line in the shopper's server-side cart. Entries are
// keyed by the remote row ID; the product ID is the join key used when
// reconciling against the local cart.
type RemoteCartEntry struct {
	ID         int64           `json:"id"`
	ProductID  string          `json:"product_id"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// FetchCart returns the authenticated shopper's server-side cart.
func (c *Client) FetchCart(ctx context.Context, token string) ([]RemoteCartEntry, error) {
	var payload listPayload[RemoteCartEntry]
	if err := c.do(ctx, http.MethodGet, "cart/", token, nil, &payload); err != nil {
		return nil, err
	}
	return payload.items, nil
}

// AddCartEntry creates a server-side cart line for the given product.
func (c *Client) AddCartEntry(ctx context.Context, token, productID string, quantity int) error {
	if strings.TrimSpace(productID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product ID is required")
	}
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	body := struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}{ProductID: productID, Quantity: quantity}

	return c.do(ctx, http.MethodPost, "cart/", token, body, nil)
}

// UpdateCartEntry sets the quantity on an existing server-side cart line.
func (c *Client) UpdateCartEntry(ctx context.Context, token string, entryID int64, quantity int) error {
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	body := struct {
		Quantity int `json:"quantity"`
	}{Quantity: quantity}

	return c.do(ctx, http.MethodPatch, fmt.Sprintf("cart/%d/", entryID), token, body, nil)
}

// RemoveCartEntry deletes a server-side cart line.
func (c *Client) RemoveCartEntry(ctx context.Context, token string, entryID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("cart/%d/", entryID), token, nil, nil)
}
