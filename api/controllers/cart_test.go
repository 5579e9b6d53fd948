package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	cartsvc "github.com/shopvue/storefront/internal/cart"
	pkgerrors "github.com/shopvue/storefront/pkg/errors"
	"github.com/shopvue/storefront/pkg/store/models"
)

type stubCartService struct {
	lines        []models.CartLine
	err          error
	lastAddInput cartsvc.AddItemInput
}

func (s *stubCartService) List(ctx context.Context) ([]models.CartLine, error) {
	return s.lines, s.err
}

func (s *stubCartService) Add(ctx context.Context, input cartsvc.AddItemInput) (*models.CartLine, error) {
	s.lastAddInput = input
	if s.err != nil {
		return nil, s.err
	}
	return &models.CartLine{
		ProductID: input.ProductID,
		Name:      input.Name,
		UnitPrice: input.UnitPrice,
		Quantity:  input.Quantity,
	}, nil
}

func (s *stubCartService) SetQuantity(ctx context.Context, productID string, quantity int) (*models.CartLine, error) {
	if s.err != nil {
		return nil, s.err
	}
	if quantity <= 0 {
		return nil, nil
	}
	return &models.CartLine{ProductID: productID, Quantity: quantity}, nil
}

func (s *stubCartService) Remove(ctx context.Context, productID string) error { return s.err }
func (s *stubCartService) Clear(ctx context.Context) error                    { return s.err }
func (s *stubCartService) CountItems(ctx context.Context) (int, error)        { return 0, s.err }

func TestCartViewTotals(t *testing.T) {
	svc := &stubCartService{lines: []models.CartLine{
		{ProductID: "p1", Name: "Headphones", UnitPrice: decimal.RequireFromString("5.00"), Quantity: 2},
		{ProductID: "p2", Name: "Mouse", UnitPrice: decimal.RequireFromString("10.00"), Quantity: 1},
	}}
	handler := CartView(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data cartResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ItemCount != 3 {
		t.Fatalf("expected item count 3 got %d", envelope.Data.ItemCount)
	}
	if !envelope.Data.Subtotal.Equal(decimal.RequireFromString("20.00")) {
		t.Fatalf("expected subtotal 20.00 got %s", envelope.Data.Subtotal)
	}
	if got := envelope.Data.Items[0].LineTotal; !got.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("expected line total 10.00 got %s", got)
	}
}

func TestCartAddValidation(t *testing.T) {
	svc := &stubCartService{}
	handler := CartAdd(svc, nil)

	body := `{"product_id":"","name":"","quantity":0}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.lastAddInput.ProductID != "" {
		t.Fatalf("service should not be called on validation failure")
	}
}

func TestCartAddCreated(t *testing.T) {
	svc := &stubCartService{}
	handler := CartAdd(svc, nil)

	body := `{"product_id":"p1","name":"Headphones","unit_price":"199.99","quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.lastAddInput.ProductID != "p1" || svc.lastAddInput.Quantity != 2 {
		t.Fatalf("unexpected add input: %+v", svc.lastAddInput)
	}
}

func TestCartViewError(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeInternal, "store unavailable")}
	handler := CartView(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}
