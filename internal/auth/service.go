package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopvue/storefront/pkg/commerce"
	"github.com/shopvue/storefront/pkg/config"
	pkgerrors "github.com/shopvue/storefront/pkg/errors"
	"github.com/shopvue/storefront/pkg/logger"
	"github.com/shopvue/storefront/pkg/security"
	"github.com/shopvue/storefront/pkg/store/models"
	"gorm.io/gorm"
)

type remoteAuth interface {
	Login(ctx context.Context, email, password string) (*commerce.AuthResult, error)
	Register(ctx context.Context, email, password, fullName string) (*commerce.AuthResult, error)
}

type tokenIssuer interface {
	Issue(email, fullName, remoteToken string) (string, error)
}

// LoginResult is a minted gateway session plus the profile behind it.
// RemoteLinked reports whether the session carries a remote API token.
type LoginResult struct {
	Token        string `json:"token"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	RemoteLinked bool   `json:"remote_linked"`
}

// Service signs shoppers in against the remote API, falling back to locally
// registered accounts when the remote side is unreachable. Remote credentials
// are cached as argon2 hashes so a later outage does not lock anyone out.
type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, email, password, fullName string) (*LoginResult, error)
}

type service struct {
	repo     AccountRepository
	remote   remoteAuth
	sessions tokenIssuer
	password config.PasswordConfig
	logg     *logger.Logger
}

// NewService builds the auth service.
func NewService(repo AccountRepository, remote remoteAuth, sessions tokenIssuer, password config.PasswordConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("account repository required")
	}
	if remote == nil {
		return nil, fmt.Errorf("commerce client required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session provider required")
	}
	return &service{
		repo:     repo,
		remote:   remote,
		sessions: sessions,
		password: password,
		logg:     logg,
	}, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	remote, err := s.remote.Login(ctx, email, password)
	if err == nil {
		s.cacheAccount(ctx, email, password, remote.User.FullName)
		return s.mint(email, remote.User.FullName, remote.Token, true)
	}

	// Bad credentials are final. Only remote outages fall through to the
	// local registry.
	if typed := pkgerrors.As(err); typed != nil && typed.Code() != pkgerrors.CodeRemote {
		return nil, err
	}
	s.warn(ctx, "remote login unavailable, trying local accounts", err)

	return s.localLogin(ctx, email, password)
}

func (s *service) Register(ctx context.Context, email, password, fullName string) (*LoginResult, error) {
	email = normalizeEmail(email)
	fullName = strings.TrimSpace(fullName)
	if email == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}
	if len(password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "account already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	remote, err := s.remote.Register(ctx, email, password, fullName)
	if err == nil {
		s.cacheAccount(ctx, email, password, remote.User.FullName)
		name := remote.User.FullName
		if name == "" {
			name = fullName
		}
		return s.mint(email, name, remote.Token, true)
	}

	if typed := pkgerrors.As(err); typed != nil && typed.Code() != pkgerrors.CodeRemote {
		return nil, err
	}
	s.warn(ctx, "remote registration unavailable, creating local account", err)

	if err := s.createLocalAccount(ctx, email, password, fullName); err != nil {
		return nil, err
	}
	return s.mint(email, fullName, "", false)
}

func (s *service) localLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, err
	}

	ok, err := security.VerifyPassword(password, account.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	return s.mint(account.Email, account.FullName, "", false)
}

func (s *service) createLocalAccount(ctx context.Context, email, password, fullName string) error {
	hash, err := security.HashPassword(password, s.password)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	_, err = s.repo.Create(ctx, &models.UserAccount{
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
	})
	return err
}

// cacheAccount keeps the local registry in step with a successful remote
// login so the fallback path works during the next outage. Failures only log.
func (s *service) cacheAccount(ctx context.Context, email, password, fullName string) {
	hash, err := security.HashPassword(password, s.password)
	if err != nil {
		s.warn(ctx, "caching account credentials failed", err)
		return
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		existing.PasswordHash = hash
		if fullName != "" {
			existing.FullName = fullName
		}
		if _, err := s.repo.Update(ctx, existing); err != nil {
			s.warn(ctx, "refreshing cached account failed", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if _, err := s.repo.Create(ctx, &models.UserAccount{
			Email:        email,
			FullName:     fullName,
			PasswordHash: hash,
		}); err != nil {
			s.warn(ctx, "caching account failed", err)
		}
	default:
		s.warn(ctx, "looking up cached account failed", err)
	}
}

func (s *service) mint(email, fullName, remoteToken string, remoteLinked bool) (*LoginResult, error) {
	token, err := s.sessions.Issue(email, fullName, remoteToken)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting session token")
	}
	return &LoginResult{
		Token:        token,
		Email:        email,
		FullName:     fullName,
		RemoteLinked: remoteLinked,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) warn(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(ctx, fmt.Sprintf("%s: %v", msg, err))
}
