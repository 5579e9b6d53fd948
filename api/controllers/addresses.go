package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shopvue/storefront/api/middleware"
	"github.com/shopvue/storefront/api/responses"
	"github.com/shopvue/storefront/api/validators"
	addressessvc "github.com/shopvue/storefront/internal/addresses"
	"github.com/shopvue/storefront/pkg/enums"
	pkgerrors "github.com/shopvue/storefront/pkg/errors"
	"github.com/shopvue/storefront/pkg/logger"
	"github.com/shopvue/storefront/pkg/types"
)

type saveAddressRequest struct {
	types.DeliveryAddress
	AddressType string `json:"address_type"`
	IsDefault   bool   `json:"is_default"`
}

func (req saveAddressRequest) toInput() (addressessvc.SaveInput, error) {
	var addrType enums.AddressType
	if req.AddressType != "" {
		parsed, err := enums.ParseAddressType(req.AddressType)
		if err != nil {
			return addressessvc.SaveInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid address type")
		}
		addrType = parsed
	}
	return addressessvc.SaveInput{
		Address:     req.DeliveryAddress,
		AddressType: addrType,
		IsDefault:   req.IsDefault,
	}, nil
}

func addressIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "addressID")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid address id")
	}
	return id, nil
}

// Addresses lists the session owner's address book, default entry first.
func Addresses(svc addressessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := middleware.IdentityFromContext(r.Context())

		entries, err := svc.List(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}

// AddressCreate adds an address book entry.
func AddressCreate(svc addressessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload saveAddressRequest
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
		address, err := svc.Create(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, address)
	}
}

// AddressUpdate rewrites an existing entry.
func AddressUpdate(svc addressessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		addressID, err := addressIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload saveAddressRequest
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
		address, err := svc.Update(r.Context(), id, addressID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, address)
	}
}

// AddressDelete removes an entry, mirroring the delete remotely when linked.
func AddressDelete(svc addressessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		addressID, err := addressIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id := middleware.IdentityFromContext(r.Context())
		if err := svc.Delete(r.Context(), id, addressID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AddressSetDefault marks one entry as the default delivery address.
func AddressSetDefault(svc addressessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		addressID, err := addressIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id := middleware.IdentityFromContext(r.Context())
		address, err := svc.SetDefault(r.Context(), id, addressID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, address)
	}
}
