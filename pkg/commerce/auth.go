package commerce

import (
	"context"
	"net/http"
	"strings"

	pkgerrors "github.com/shopvue/storefront/pkg/errors"
)

// RemoteUser is the account profile held by the remote API.
type RemoteUser struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// AuthResult pairs the remote API token with the profile it belongs to.
type AuthResult struct {
	Token string     `json:"token"`
	User  RemoteUser `json:"user"`
}

// Login exchanges credentials for a remote API token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: strings.ToLower(strings.TrimSpace(email)), Password: password}

	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "auth/login/", "", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates a remote account and returns its first token.
func (c *Client) Register(ctx context.Context, email, password, fullName string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name,omitempty"`
	}{Email: strings.ToLower(strings.TrimSpace(email)), Password: password, FullName: strings.TrimSpace(fullName)}

	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "auth/register/", "", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetCurrentUser fetches the profile behind a remote token.
func (c *Client) GetCurrentUser(ctx context.Context, token string) (*RemoteUser, error) {
	var user RemoteUser
	if err := c.do(ctx, http.MethodGet, "auth/user/", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
