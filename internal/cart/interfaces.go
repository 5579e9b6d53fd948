package cart

import (
	"context"

	"github.com/shopvue/storefront/pkg/store/models"
	"gorm.io/gorm"
)

// LineRepository abstracts cart line persistence for the service layer.
type LineRepository interface {
	WithTx(tx *gorm.DB) LineRepository
	List(ctx context.Context) ([]models.CartLine, error)
	FindByProductID(ctx context.Context, productID string) (*models.CartLine, error)
	Create(ctx context.Context, line *models.CartLine) (*models.CartLine, error)
	Update(ctx context.Context, line *models.CartLine) (*models.CartLine, error)
	DeleteByProductID(ctx context.Context, productID string) error
	DeleteAll(ctx context.Context) error
	CountItems(ctx context.Context) (int, error)
}

var _ LineRepository = (*Repository)(nil)
