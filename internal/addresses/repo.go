package addresses

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopvue/storefront/pkg/store/models"
	"gorm.io/gorm"
)

// AddressRepository abstracts address book persistence for the service layer.
type AddressRepository interface {
	WithTx(tx *gorm.DB) AddressRepository
	ListByOwner(ctx context.Context, ownerEmail string) ([]models.Address, error)
	FindByID(ctx context.Context, ownerEmail string, id uuid.UUID) (*models.Address, error)
	FindMatching(ctx context.Context, ownerEmail, street, city, postalCode string) (*models.Address, error)
	Create(ctx context.Context, address *models.Address) (*models.Address, error)
	Update(ctx context.Context, address *models.Address) (*models.Address, error)
	Delete(ctx context.Context, ownerEmail string, id uuid.UUID) error
	ClearDefaults(ctx context.Context, ownerEmail string) error
}

// Repository persists the local address book.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an address repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ AddressRepository = (*Repository)(nil)

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) AddressRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// ListByOwner returns the owner's addresses, default entry first.
func (r *Repository) ListByOwner(ctx context.Context, ownerEmail string) ([]models.Address, error) {
	var addresses []models.Address
	err := r.db.WithContext(ctx).
		Where("user_email = ?", ownerEmail).
		Order("is_default DESC, created_at ASC").
		Find(&addresses).Error
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

// FindByID loads one address scoped to its owner.
func (r *Repository) FindByID(ctx context.Context, ownerEmail string, id uuid.UUID) (*models.Address, error) {
	var address models.Address
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_email = ?", id, ownerEmail).
		First(&address).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// FindMatching looks up an address by its destination fields.
func (r *Repository) FindMatching(ctx context.Context, ownerEmail, street, city, postalCode string) (*models.Address, error) {
	var address models.Address
	err := r.db.WithContext(ctx).
		Where("user_email = ? AND street = ? AND city = ? AND postal_code = ?",
			ownerEmail, street, city, postalCode).
		First(&address).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// Create inserts a new address.
func (r *Repository) Create(ctx context.Context, address *models.Address) (*models.Address, error) {
	if err := r.db.WithContext(ctx).Create(address).Error; err != nil {
		return nil, err
	}
	return address, nil
}

// Update saves the provided address.
func (r *Repository) Update(ctx context.Context, address *models.Address) (*models.Address, error) {
	if err := r.db.WithContext(ctx).Save(address).Error; err != nil {
		return nil, err
	}
	return address, nil
}

// Delete removes an address scoped to its owner.
func (r *Repository) Delete(ctx context.Context, ownerEmail string, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_email = ?", id, ownerEmail).
		Delete(&models.Address{}).Error
}

// ClearDefaults unsets the default flag on every address the owner has.
func (r *Repository) ClearDefaults(ctx context.Context, ownerEmail string) error {
	return r.db.WithContext(ctx).
		Model(&models.Address{}).
		Where("user_email = ? AND is_default = ?", ownerEmail, true).
		Update("is_default", false).Error
}
