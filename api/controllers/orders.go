package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopvue/storefront/api/middleware"
	"github.com/shopvue/storefront/api/responses"
	orderssvc "github.com/shopvue/storefront/internal/orders"
	"github.com/shopvue/storefront/pkg/logger"
)

// Orders renders the order history page for the current session owner.
func Orders(svc orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := middleware.IdentityFromContext(r.Context())

		records, err := svc.List(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

// OrderDetail renders one order, scoped to the current session owner.
func OrderDetail(svc orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := middleware.IdentityFromContext(r.Context())
		orderNumber := chi.URLParam(r, "orderNumber")

		record, err := svc.Get(r.Context(), id, orderNumber)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}
