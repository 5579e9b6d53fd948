package controllers

import (
	"net/http"

	"github.com/shopvue/storefront/api/middleware"
	"github.com/shopvue/storefront/api/responses"
	"github.com/shopvue/storefront/api/validators"
	accountsvc "github.com/shopvue/storefront/internal/account"
	"github.com/shopvue/storefront/pkg/logger"
)

// AccountProfile renders the profile page view model.
func AccountProfile(svc accountsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := middleware.IdentityFromContext(r.Context())

		profile, err := svc.Profile(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

type updateProfileRequest struct {
	FullName string `json:"full_name" validate:"required"`
}

// AccountUpdateProfile changes the display name on the local account.
func AccountUpdateProfile(svc accountsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updateProfileRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id := middleware.IdentityFromContext(r.Context())
		profile, err := svc.UpdateProfile(r.Context(), id, payload.FullName)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// AccountSettings reads the notification settings, creating defaults on first
// visit.
func AccountSettings(svc accountsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := middleware.IdentityFromContext(r.Context())

		settings, err := svc.Settings(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, settings)
	}
}

// AccountUpdateSettings overwrites the notification settings.
func AccountUpdateSettings(svc accountsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload accountsvc.SettingsInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id := middleware.IdentityFromContext(r.Context())
		settings, err := svc.UpdateSettings(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, settings)
	}
}
