package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/shopvue/storefront/pkg/errors"
)

type signInBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func decode(t *testing.T, payload string) error {
	t.Helper()
	r := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(payload))
	var body signInBody
	return DecodeJSONBody(r, &body)
}

func TestDecodeJSONBodyAcceptsValidPayload(t *testing.T) {
	t.Parallel()

	if err := decode(t, `{"email":"sam@example.com","password":"hunter2"}`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	err := decode(t, `{"email":"sam@example.com","password":"hunter2","pasword":"typo"}`)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyReportsFieldMessages(t *testing.T) {
	t.Parallel()

	err := decode(t, `{"email":"not-an-email"}`)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %#v", typed.Details())
	}
	if details["email"] != "must be a valid email" {
		t.Fatalf("unexpected email message %q", details["email"])
	}
	if details["password"] != "is required" {
		t.Fatalf("unexpected password message %q", details["password"])
	}
}

func TestDecodeJSONBodyCapsBodySize(t *testing.T) {
	t.Parallel()

	oversized := `{"email":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	err := decode(t, oversized)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
