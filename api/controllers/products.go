package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopvue/storefront/api/responses"
	cartsvc "github.com/shopvue/storefront/internal/cart"
	"github.com/shopvue/storefront/internal/catalog"
	pkgerrors "github.com/shopvue/storefront/pkg/errors"
	"github.com/shopvue/storefront/pkg/logger"
)

// Home renders the home page view model: featured products, categories, and
// the header cart count.
func Home(svc catalog.Service, cart cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartCount, err := cart.CountItems(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"featured":   svc.Featured(r.Context()),
			"categories": svc.Categories(r.Context()),
			"cart_count": cartCount,
		})
	}
}

// Products lists the catalog, optionally filtered by category slug.
func Products(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if slug := r.URL.Query().Get("category"); slug != "" {
			responses.WriteSuccess(w, svc.ProductsByCategory(r.Context(), slug))
			return
		}
		responses.WriteSuccess(w, svc.Products(r.Context()))
	}
}

// ProductDetail renders a single product page.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productID")

		product, ok := svc.Product(r.Context(), productID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// Categories lists the catalog categories.
func Categories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.Categories(r.Context()))
	}
}

// Search runs a catalog search for the q query parameter.
func Search(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		responses.WriteSuccess(w, map[string]any{
			"query":   query,
			"results": svc.Search(r.Context(), query),
		})
	}
}
