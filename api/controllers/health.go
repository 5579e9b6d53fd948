package controllers

import (
	"net/http"

	"github.com/shopvue/storefront/api/responses"
	"github.com/shopvue/storefront/pkg/config"
	pkgerrors "github.com/shopvue/storefront/pkg/errors"
	"github.com/shopvue/storefront/pkg/logger"
	"github.com/shopvue/storefront/pkg/redis"
	"github.com/shopvue/storefront/pkg/store"
)

const envHeader = "X-ShopVue-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the local store and, when configured, the cache. The
// remote commerce API is deliberately not probed: the gateway stays ready
// through remote outages.
func HealthReady(cfg *config.Config, logg *logger.Logger, storeP store.Pinger, cacheP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		if storeP != nil {
			if err := storeP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "local store unavailable"))
				return
			}
		}
		if cacheP != nil {
			if err := cacheP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cache unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
