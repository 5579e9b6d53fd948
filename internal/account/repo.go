package account

import (
	"context"
	"strings"

	"github.com/shopvue/storefront/pkg/store/models"
	"gorm.io/gorm"
)

// SettingsRepository abstracts settings persistence for the service layer.
type SettingsRepository interface {
	FindByOwner(ctx context.Context, ownerEmail string) (*models.UserSettings, error)
	Upsert(ctx context.Context, settings *models.UserSettings) (*models.UserSettings, error)
	FindAccount(ctx context.Context, email string) (*models.UserAccount, error)
	UpdateAccount(ctx context.Context, account *models.UserAccount) (*models.UserAccount, error)
}

// Repository persists per-user settings and profile data.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an account repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ SettingsRepository = (*Repository)(nil)

// FindByOwner loads the settings row for an owner.
func (r *Repository) FindByOwner(ctx context.Context, ownerEmail string) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := r.db.WithContext(ctx).
		Where("user_email = ?", ownerEmail).
		First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert writes the settings row, creating it on first save.
func (r *Repository) Upsert(ctx context.Context, settings *models.UserSettings) (*models.UserSettings, error) {
	if err := r.db.WithContext(ctx).Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// FindAccount loads a local account by email.
func (r *Repository) FindAccount(ctx context.Context, email string) (*models.UserAccount, error) {
	var account models.UserAccount
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateAccount saves profile changes.
func (r *Repository) UpdateAccount(ctx context.Context, account *models.UserAccount) (*models.UserAccount, error) {
	if err := r.db.WithContext(ctx).Save(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}
