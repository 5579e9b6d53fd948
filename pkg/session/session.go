package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopvue/storefront/pkg/config"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// DefaultTTL bounds gateway sessions; the remote token carried inside may
// expire sooner, which surfaces as a remote auth failure, not a session error.
const DefaultTTL = 24 * time.Hour

// GuestEmail is the sentinel identity used for order history written before
// login.
const GuestEmail = "guest"

// Identity is the resolved session consumed by the view-model services.
// Checkout treats it as an external input: it never refreshes or verifies the
// remote token itself.
type Identity struct {
	Email         string
	FullName      string
	RemoteToken   string
	Authenticated bool
}

// OwnerEmail returns the identity key for local records.
func (i Identity) OwnerEmail() string {
	if !i.Authenticated || strings.TrimSpace(i.Email) == "" {
		return GuestEmail
	}
	return strings.ToLower(strings.TrimSpace(i.Email))
}

// Claims is the typed JWT the gateway mints for its own sessions. RemoteToken
// carries the upstream commerce API token so remote clients can forward it.
type Claims struct {
	Email       string `json:"email"`
	FullName    string `json:"full_name,omitempty"`
	RemoteToken string `json:"remote_token,omitempty"`
	jwt.RegisteredClaims
}

// Provider mints and resolves gateway session tokens.
type Provider struct {
	cfg config.JWTConfig
	ttl time.Duration
	now func() time.Time
}

// NewProvider builds a session provider from the JWT configuration.
func NewProvider(cfg config.JWTConfig) (*Provider, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if strings.TrimSpace(cfg.Issuer) == "" {
		return nil, fmt.Errorf("jwt issuer is required")
	}
	return &Provider{cfg: cfg, ttl: DefaultTTL, now: time.Now}, nil
}

// Issue mints a signed session token for the given identity.
func (p *Provider) Issue(email, fullName, remoteToken string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", fmt.Errorf("email is required")
	}

	now := p.now()
	claims := Claims{
		Email:       email,
		FullName:    fullName,
		RemoteToken: remoteToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(p.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// Resolve parses a bearer token into an Identity. An empty or invalid token
// resolves to the guest identity rather than an error: pages render for
// guests, and checkout degrades to a local-only order.
func (p *Provider) Resolve(tokenString string) Identity {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return Identity{}
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(p.cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(p.cfg.Issuer),
	)
	if err != nil {
		return Identity{}
	}

	return Identity{
		Email:         claims.Email,
		FullName:      claims.FullName,
		RemoteToken:   claims.RemoteToken,
		Authenticated: true,
	}
}
