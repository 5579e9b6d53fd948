package controllers

import (
	"net/http"

	"github.com/shopvue/storefront/api/middleware"
	"github.com/shopvue/storefront/api/responses"
	"github.com/shopvue/storefront/api/validators"
	cartsvc "github.com/shopvue/storefront/internal/cart"
	checkoutsvc "github.com/shopvue/storefront/internal/checkout"
	"github.com/shopvue/storefront/pkg/enums"
	pkgerrors "github.com/shopvue/storefront/pkg/errors"
	"github.com/shopvue/storefront/pkg/logger"
	"github.com/shopvue/storefront/pkg/types"
)

type quoteRequest struct {
	VoucherCode    string `json:"voucher_code"`
	DeliveryOption string `json:"delivery_option" validate:"required"`
}

// CheckoutView renders the checkout page view model: delivery choices plus the
// money breakdown for the current cart with no voucher applied.
func CheckoutView(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		totals, err := svc.Quote(r.Context(), "", enums.DeliveryOptionStandard)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"delivery_options": checkoutsvc.DeliveryCatalog(),
			"totals":           totals,
		})
	}
}

// CheckoutQuote recomputes the money breakdown for a voucher and delivery
// choice without submitting.
func CheckoutQuote(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload quoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		option, err := enums.ParseDeliveryOption(payload.DeliveryOption)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery option"))
			return
		}

		totals, err := svc.Quote(r.Context(), payload.VoucherCode, option)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		_, applied := checkoutsvc.LookupVoucher(payload.VoucherCode)
		responses.WriteSuccess(w, map[string]any{
			"totals":          totals,
			"voucher_applied": applied,
		})
	}
}

type cardRequest struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

type submitCheckoutRequest struct {
	Address        types.DeliveryAddress `json:"address"`
	AddressType    string                `json:"address_type"`
	DeliveryOption string                `json:"delivery_option" validate:"required"`
	PaymentMethod  string                `json:"payment_method" validate:"required"`
	VoucherCode    string                `json:"voucher_code"`
	Card           cardRequest           `json:"card"`
}

func (req submitCheckoutRequest) toInput() (checkoutsvc.SubmitInput, error) {
	option, err := enums.ParseDeliveryOption(req.DeliveryOption)
	if err != nil {
		return checkoutsvc.SubmitInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery option")
	}
	method, err := enums.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return checkoutsvc.SubmitInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method")
	}

	var addrType enums.AddressType
	if req.AddressType != "" {
		addrType, err = enums.ParseAddressType(req.AddressType)
		if err != nil {
			return checkoutsvc.SubmitInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid address type")
		}
	}

	return checkoutsvc.SubmitInput{
		Address:        req.Address,
		AddressType:    addrType,
		DeliveryOption: option,
		PaymentMethod:  method,
		VoucherCode:    req.VoucherCode,
		Card: checkoutsvc.CardDetails{
			Number: req.Card.Number,
			Name:   req.Card.Name,
			Expiry: req.Card.Expiry,
			CVV:    req.Card.CVV,
		},
	}, nil
}

type submitCheckoutResponse struct {
	State       checkoutsvc.State       `json:"state"`
	OrderNumber string                  `json:"order_number"`
	Totals      checkoutsvc.Totals      `json:"totals"`
	Reconcile   cartsvc.ReconcileResult `json:"reconcile"`
}

// CheckoutSubmit drives a checkout submission to its terminal state.
func CheckoutSubmit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload submitCheckoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id := middleware.IdentityFromContext(r.Context())
		result, err := svc.Submit(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, submitCheckoutResponse{
			State:       result.State,
			OrderNumber: result.OrderNumber,
			Totals:      result.Totals,
			Reconcile:   result.Reconcile,
		})
	}
}
