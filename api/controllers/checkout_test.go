package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	checkoutsvc "github.com/shopvue/storefront/internal/checkout"
	"github.com/shopvue/storefront/pkg/enums"
	pkgerrors "github.com/shopvue/storefront/pkg/errors"
	"github.com/shopvue/storefront/pkg/session"
)

type stubCheckoutService struct {
	totals     checkoutsvc.Totals
	result     *checkoutsvc.SubmitResult
	err        error
	lastInput  checkoutsvc.SubmitInput
	lastID     session.Identity
	lastOption enums.DeliveryOption
}

func (s *stubCheckoutService) Quote(ctx context.Context, voucherCode string, option enums.DeliveryOption) (checkoutsvc.Totals, error) {
	s.lastOption = option
	return s.totals, s.err
}

func (s *stubCheckoutService) Submit(ctx context.Context, id session.Identity, input checkoutsvc.SubmitInput) (*checkoutsvc.SubmitResult, error) {
	s.lastID = id
	s.lastInput = input
	return s.result, s.err
}

func TestCheckoutQuoteParsesOption(t *testing.T) {
	svc := &stubCheckoutService{totals: checkoutsvc.Totals{
		Subtotal:   decimal.RequireFromString("20.00"),
		GrandTotal: decimal.RequireFromString("19.80"),
	}}
	handler := CheckoutQuote(svc, nil)

	body := `{"voucher_code":"SAVE10","delivery_option":"express"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastOption != enums.DeliveryOptionExpress {
		t.Fatalf("expected express option got %s", svc.lastOption)
	}

	var envelope struct {
		Data struct {
			VoucherApplied bool `json:"voucher_applied"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.VoucherApplied {
		t.Fatalf("expected SAVE10 to be recognized")
	}
}

func TestCheckoutQuoteRejectsUnknownOption(t *testing.T) {
	svc := &stubCheckoutService{}
	handler := CheckoutQuote(svc, nil)

	body := `{"delivery_option":"drone"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCheckoutSubmitMapsInput(t *testing.T) {
	svc := &stubCheckoutService{result: &checkoutsvc.SubmitResult{
		State:       checkoutsvc.StateCompletedLocalOnly,
		OrderNumber: "ORD-TEST",
	}}
	handler := CheckoutSubmit(svc, nil)

	body := `{
		"address": {"full_name":"Sara","phone":"555","address":"1 Main St","city":"Salmiya","state":"Hawalli","zip_code":"13000"},
		"address_type": "work",
		"delivery_option": "standard",
		"payment_method": "cash-on-delivery",
		"voucher_code": "SAVE10"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.lastInput.PaymentMethod != enums.PaymentMethodCashOnDelivery {
		t.Fatalf("unexpected payment method %s", svc.lastInput.PaymentMethod)
	}
	if svc.lastInput.AddressType != enums.AddressTypeWork {
		t.Fatalf("unexpected address type %s", svc.lastInput.AddressType)
	}
	if svc.lastInput.Address.Street != "1 Main St" {
		t.Fatalf("unexpected street %q", svc.lastInput.Address.Street)
	}
	if svc.lastInput.Address.State != "Hawalli" {
		t.Fatalf("unexpected state %q", svc.lastInput.Address.State)
	}

	var envelope struct {
		Data submitCheckoutResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.OrderNumber != "ORD-TEST" {
		t.Fatalf("unexpected order number %q", envelope.Data.OrderNumber)
	}
	if envelope.Data.State != checkoutsvc.StateCompletedLocalOnly {
		t.Fatalf("unexpected state %s", envelope.Data.State)
	}
}

func TestCheckoutSubmitRejectedMapsToBadRequest(t *testing.T) {
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")}
	handler := CheckoutSubmit(svc, nil)

	body := `{
		"address": {"full_name":"Sara","phone":"555","address":"1 Main St","city":"Salmiya","zip_code":"13000"},
		"delivery_option": "standard",
		"payment_method": "cash-on-delivery"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
