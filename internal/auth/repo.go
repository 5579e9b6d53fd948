package auth

import (
	"context"
	"strings"

	"github.com/shopvue/storefront/pkg/store/models"
	"gorm.io/gorm"
)

// AccountRepository abstracts local account persistence.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.UserAccount, error)
	Create(ctx context.Context, account *models.UserAccount) (*models.UserAccount, error)
	Update(ctx context.Context, account *models.UserAccount) (*models.UserAccount, error)
}

// Repository persists local account records.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an account repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ AccountRepository = (*Repository)(nil)

// FindByEmail loads an account by its lowercased email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.UserAccount, error) {
	var account models.UserAccount
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Create inserts a new account.
func (r *Repository) Create(ctx context.Context, account *models.UserAccount) (*models.UserAccount, error) {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

// Update saves the provided account.
func (r *Repository) Update(ctx context.Context, account *models.UserAccount) (*models.UserAccount, error) {
	if err := r.db.WithContext(ctx).Save(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}
