package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shopvue/storefront/pkg/logger"
	"github.com/shopvue/storefront/pkg/session"
)

type identityKey struct{}

// Session resolves the bearer token into an Identity and stores it on the
// request context. Requests without a valid token proceed as guests.
func Session(provider *session.Provider, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := provider.Resolve(bearerToken(r))

			ctx := context.WithValue(r.Context(), identityKey{}, id)
			if logg != nil && id.Authenticated {
				ctx = logg.WithUserEmail(ctx, id.OwnerEmail())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the resolved session identity, defaulting to
// guest when the middleware did not run.
func IdentityFromContext(ctx context.Context) session.Identity {
	if id, ok := ctx.Value(identityKey{}).(session.Identity); ok {
		return id
	}
	return session.Identity{}
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
