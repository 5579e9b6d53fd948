package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/shopvue/storefront/pkg/errors"
	"github.com/shopvue/storefront/pkg/session"
	"github.com/shopvue/storefront/pkg/store/models"
	"gorm.io/gorm"
)

// Profile is the account view shown on the profile page.
type Profile struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// SettingsInput carries the notification preferences the shopper can toggle.
type SettingsInput struct {
	Newsletter         bool `json:"newsletter"`
	OrderNotifications bool `json:"order_notifications"`
}

// Service exposes the signed-in shopper's profile and settings. Settings are
// created on first read so the page always has something to render.
type Service interface {
	Profile(ctx context.Context, id session.Identity) (*Profile, error)
	UpdateProfile(ctx context.Context, id session.Identity, fullName string) (*Profile, error)
	Settings(ctx context.Context, id session.Identity) (*models.UserSettings, error)
	UpdateSettings(ctx context.Context, id session.Identity, input SettingsInput) (*models.UserSettings, error)
}

type service struct {
	repo SettingsRepository
}

// NewService builds the account service.
func NewService(repo SettingsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("account repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Profile(ctx context.Context, id session.Identity) (*Profile, error) {
	if !id.Authenticated {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to view your profile")
	}

	profile := &Profile{Email: id.OwnerEmail(), FullName: id.FullName}

	// The local registry may hold a fuller name than the session claims.
	account, err := s.repo.FindAccount(ctx, profile.Email)
	if err == nil && account.FullName != "" {
		profile.FullName = account.FullName
	}
	return profile, nil
}

func (s *service) UpdateProfile(ctx context.Context, id session.Identity, fullName string) (*Profile, error) {
	if !id.Authenticated {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to update your profile")
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name is required")
	}

	account, err := s.repo.FindAccount(ctx, id.OwnerEmail())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return nil, err
	}

	account.FullName = fullName
	if _, err := s.repo.UpdateAccount(ctx, account); err != nil {
		return nil, err
	}
	return &Profile{Email: account.Email, FullName: account.FullName}, nil
}

func (s *service) Settings(ctx context.Context, id session.Identity) (*models.UserSettings, error) {
	owner := id.OwnerEmail()

	settings, err := s.repo.FindByOwner(ctx, owner)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return s.repo.Upsert(ctx, &models.UserSettings{
		UserEmail:          owner,
		Newsletter:         false,
		OrderNotifications: true,
	})
}

func (s *service) UpdateSettings(ctx context.Context, id session.Identity, input SettingsInput) (*models.UserSettings, error) {
	return s.repo.Upsert(ctx, &models.UserSettings{
		UserEmail:          id.OwnerEmail(),
		Newsletter:         input.Newsletter,
		OrderNotifications: input.OrderNotifications,
	})
}
