package orders

import (
	"context"

	"github.com/shopvue/storefront/pkg/store/models"
	"gorm.io/gorm"
)

// Repository persists the local order history.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an order repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new order record.
func (r *Repository) Create(ctx context.Context, record *models.OrderRecord) (*models.OrderRecord, error) {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// ListByOwner returns the owner's orders, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerEmail string) ([]models.OrderRecord, error) {
	var records []models.OrderRecord
	err := r.db.WithContext(ctx).
		Where("user_email = ?", ownerEmail).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// FindByOrderNumber loads one order scoped to its owner.
func (r *Repository) FindByOrderNumber(ctx context.Context, ownerEmail, orderNumber string) (*models.OrderRecord, error) {
	var record models.OrderRecord
	err := r.db.WithContext(ctx).
		Where("user_email = ? AND order_number = ?", ownerEmail, orderNumber).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}
