package commerce

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// SubmitOrderRequest is the payload for placing an order against the remote
// API. AddressRef is nil when no remote address could be resolved; the remote
// side accepts that and records the order without a linked address.
type SubmitOrderRequest struct {
	AddressRef    *int64          `json:"delivery_address_id"`
	ShippingCost  decimal.Decimal `json:"shipping_cost"`
	Discount      decimal.Decimal `json:"discount"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes,omitempty"`
}

// RemoteOrder is an order as the remote API reports it, both as a submission
// confirmation and in the history listing.
type RemoteOrder struct {
	ID          int64           `json:"id"`
	OrderNumber string          `json:"order_number"`
	Status      string          `json:"status"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SubmitOrder places the order built from the shopper's server-side cart.
func (c *Client) SubmitOrder(ctx context.Context, token string, req SubmitOrderRequest) (*RemoteOrder, error) {
	var order RemoteOrder
	if err := c.do(ctx, http.MethodPost, "orders/create_order/", token, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns the shopper's server-side order history.
func (c *Client) ListOrders(ctx context.Context, token string) ([]RemoteOrder, error) {
	var payload listPayload[RemoteOrder]
	if err := c.do(ctx, http.MethodGet, "orders/", token, nil, &payload); err != nil {
		return nil, err
	}
	return payload.items, nil
}
