package session

import (
	"testing"
	"time"

	"github.com/shopvue/storefront/pkg/config"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := NewProvider(config.JWTConfig{Secret: "test-secret", Issuer: "shopvue"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func TestIssueAndResolveRoundTrip(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t)
	token, err := p.Issue("Shopper@Example.com", "Sam Shopper", "remote-token-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	id := p.Resolve(token)
	if !id.Authenticated {
		t.Fatal("expected authenticated identity")
	}
	if id.Email != "shopper@example.com" {
		t.Fatalf("expected lowercased email, got %q", id.Email)
	}
	if id.RemoteToken != "remote-token-123" {
		t.Fatalf("remote token not carried: %q", id.RemoteToken)
	}
	if id.OwnerEmail() != "shopper@example.com" {
		t.Fatalf("unexpected owner email %q", id.OwnerEmail())
	}
}

func TestResolveEmptyOrGarbageIsGuest(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t)
	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		id := p.Resolve(token)
		if id.Authenticated {
			t.Fatalf("token %q should resolve to guest", token)
		}
		if id.OwnerEmail() != GuestEmail {
			t.Fatalf("expected guest owner, got %q", id.OwnerEmail())
		}
	}
}

func TestResolveRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t)
	p.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }

	token, err := p.Issue("old@example.com", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p.now = time.Now
	if id := p.Resolve(token); id.Authenticated {
		t.Fatal("expired token should resolve to guest")
	}
}

func TestNewProviderValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewProvider(config.JWTConfig{Issuer: "shopvue"}); err == nil {
		t.Fatal("expected missing secret to error")
	}
	if _, err := NewProvider(config.JWTConfig{Secret: "x"}); err == nil {
		t.Fatal("expected missing issuer to error")
	}
}
