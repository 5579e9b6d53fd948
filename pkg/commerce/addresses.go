package commerce

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	pkgerrors "github.com/shopvue/storefront/pkg/errors"
	"github.com/shopvue/storefront/pkg/types"
)

// RemoteAddress is an entry in the shopper's server-side address book.
type RemoteAddress struct {
	ID          int64    `json:"id"`
	FullName    string   `json:"full_name"`
	Phone       string   `json:"phone"`
	Street      string   `json:"address"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	PostalCode  string   `json:"zip_code"`
	Country     string   `json:"country"`
	AddressType string   `json:"address_type,omitempty"`
	IsDefault   bool     `json:"is_default"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
}

// Delivery converts the remote record into the shared delivery address shape.
func (r RemoteAddress) Delivery() types.DeliveryAddress {
	return types.DeliveryAddress{
		FullName:   r.FullName,
		Phone:      r.Phone,
		Street:     r.Street,
		City:       r.City,
		State:      r.State,
		PostalCode: r.PostalCode,
		Country:    r.Country,
		Lat:        r.Lat,
		Lng:        r.Lng,
	}
}

// CreateAddressRequest is the payload for a new server-side address.
type CreateAddressRequest struct {
	FullName    string   `json:"full_name"`
	Phone       string   `json:"phone"`
	Street      string   `json:"address"`
	City        string   `json:"city"`
	State       string   `json:"state,omitempty"`
	PostalCode  string   `json:"zip_code"`
	Country     string   `json:"country"`
	AddressType string   `json:"address_type,omitempty"`
	IsDefault   bool     `json:"is_default"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
}

// ListAddresses returns the shopper's server-side address book.
func (c *Client) ListAddresses(ctx context.Context, token string) ([]RemoteAddress, error) {
	var payload listPayload[RemoteAddress]
	if err := c.do(ctx, http.MethodGet, "addresses/", token, nil, &payload); err != nil {
		return nil, err
	}
	return payload.items, nil
}

// CreateAddress stores a new address remotely and returns the created record.
func (c *Client) CreateAddress(ctx context.Context, token string, req CreateAddressRequest) (*RemoteAddress, error) {
	if strings.TrimSpace(req.Street) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "street address is required")
	}
	if strings.TrimSpace(req.City) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "city is required")
	}

	var created RemoteAddress
	if err := c.do(ctx, http.MethodPost, "addresses/", token, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateAddress patches an existing server-side address.
func (c *Client) UpdateAddress(ctx context.Context, token string, id int64, req CreateAddressRequest) (*RemoteAddress, error) {
	var updated RemoteAddress
	path := addressPath(id)
	if err := c.do(ctx, http.MethodPatch, path, token, req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteAddress removes a server-side address.
func (c *Client) DeleteAddress(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, addressPath(id), token, nil, nil)
}

func addressPath(id int64) string {
	return fmt.Sprintf("addresses/%d/", id)
}
