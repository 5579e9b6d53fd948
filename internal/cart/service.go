package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	pkgerrors "github.com/shopvue/storefront/pkg/errors"
	"github.com/shopvue/storefront/pkg/store/models"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the persisted local cart. The cart belongs to the profile,
// not to a user: it exists before login and survives logout.
type Service interface {
	List(ctx context.Context) ([]models.CartLine, error)
	Add(ctx context.Context, input AddItemInput) (*models.CartLine, error)
	SetQuantity(ctx context.Context, productID string, quantity int) (*models.CartLine, error)
	Remove(ctx context.Context, productID string) error
	Clear(ctx context.Context) error
	CountItems(ctx context.Context) (int, error)
}

type service struct {
	repo LineRepository
	tx   txRunner
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo LineRepository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// AddItemInput captures the product snapshot stored on a cart line.
type AddItemInput struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	ImageURL  string
	Quantity  int
}

func (s *service) List(ctx context.Context) ([]models.CartLine, error) {
	return s.repo.List(ctx)
}

// Add merges the item into the cart: an existing line for the same product
// gains the quantity, a new product gets its own line.
func (s *service) Add(ctx context.Context, input AddItemInput) (*models.CartLine, error) {
	if strings.TrimSpace(input.ProductID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product ID is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if input.UnitPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit price must be non-negative")
	}

	var result *models.CartLine
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := repo.FindByProductID(ctx, input.ProductID)
		switch {
		case err == nil:
			existing.Quantity += input.Quantity
			result, err = repo.Update(ctx, existing)
			return err
		case errors.Is(err, gorm.ErrRecordNotFound):
			line := &models.CartLine{
				ProductID: input.ProductID,
				Name:      input.Name,
				UnitPrice: input.UnitPrice,
				ImageURL:  input.ImageURL,
				Quantity:  input.Quantity,
			}
			result, err = repo.Create(ctx, line)
			return err
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SetQuantity overwrites the quantity on an existing line. A quantity of zero
// or less removes the line, matching how the cart page treats the stepper.
func (s *service) SetQuantity(ctx context.Context, productID string, quantity int) (*models.CartLine, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product ID is required")
	}

	if quantity <= 0 {
		if err := s.repo.DeleteByProductID(ctx, productID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	var result *models.CartLine
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		line, err := repo.FindByProductID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart")
			}
			return err
		}

		line.Quantity = quantity
		result, err = repo.Update(ctx, line)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) Remove(ctx context.Context, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product ID is required")
	}
	return s.repo.DeleteByProductID(ctx, productID)
}

func (s *service) Clear(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}

func (s *service) CountItems(ctx context.Context) (int, error) {
	return s.repo.CountItems(ctx)
}
