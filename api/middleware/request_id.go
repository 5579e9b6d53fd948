package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/shopvue/storefront/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestID tags every gateway request with an id that flows through the
// logger context, so a checkout submission can be traced across the cart
// reconcile and remote API calls it triggers. An inbound X-Request-Id from
// the storefront is kept; otherwise one is minted.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := strings.TrimSpace(r.Header.Get(requestIDHeader))
			if reqID == "" {
				reqID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
