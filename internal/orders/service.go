package orders

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopvue/storefront/pkg/commerce"
	"github.com/shopvue/storefront/pkg/enums"
	pkgerrors "github.com/shopvue/storefront/pkg/errors"
	"github.com/shopvue/storefront/pkg/logger"
	"github.com/shopvue/storefront/pkg/session"
	"github.com/shopvue/storefront/pkg/store/models"
	"gorm.io/gorm"
)

// HistoryRepository abstracts order persistence for the service layer.
type HistoryRepository interface {
	Create(ctx context.Context, record *models.OrderRecord) (*models.OrderRecord, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]models.OrderRecord, error)
	FindByOrderNumber(ctx context.Context, ownerEmail, orderNumber string) (*models.OrderRecord, error)
}

var _ HistoryRepository = (*Repository)(nil)

type remoteHistory interface {
	ListOrders(ctx context.Context, token string) ([]commerce.RemoteOrder, error)
}

// Service exposes the durable local order history. Orders written while the
// shopper was a guest stay under the guest identity. For signed-in shoppers
// the listing is merged with the remote order history: remote status wins for
// orders known on both sides, remote-only orders are added to the view.
type Service interface {
	Append(ctx context.Context, record *models.OrderRecord) (*models.OrderRecord, error)
	List(ctx context.Context, id session.Identity) ([]models.OrderRecord, error)
	Get(ctx context.Context, id session.Identity, orderNumber string) (*models.OrderRecord, error)
}

type service struct {
	repo   HistoryRepository
	remote remoteHistory
	logg   *logger.Logger
}

// NewService builds the order history service. A nil remote disables merging.
func NewService(repo HistoryRepository, remote remoteHistory, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	return &service{repo: repo, remote: remote, logg: logg}, nil
}

func (s *service) Append(ctx context.Context, record *models.OrderRecord) (*models.OrderRecord, error) {
	if record == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order record required")
	}
	if strings.TrimSpace(record.OrderNumber) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number is required")
	}
	if len(record.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	if strings.TrimSpace(record.UserEmail) == "" {
		record.UserEmail = session.GuestEmail
	}
	return s.repo.Create(ctx, record)
}

func (s *service) List(ctx context.Context, id session.Identity) ([]models.OrderRecord, error) {
	local, err := s.repo.ListByOwner(ctx, id.OwnerEmail())
	if err != nil {
		return nil, err
	}

	merged := s.mergeRemote(ctx, id, local)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	return merged, nil
}

func (s *service) Get(ctx context.Context, id session.Identity, orderNumber string) (*models.OrderRecord, error) {
	if strings.TrimSpace(orderNumber) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number is required")
	}

	record, err := s.repo.FindByOrderNumber(ctx, id.OwnerEmail(), orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, err
	}
	return record, nil
}

// mergeRemote folds the remote order history into the local view. The local
// store is never written: remote data only shapes the response. A remote
// failure logs a warning and the local history stands alone.
func (s *service) mergeRemote(ctx context.Context, id session.Identity, local []models.OrderRecord) []models.OrderRecord {
	if s.remote == nil || !id.Authenticated || id.RemoteToken == "" {
		return local
	}

	remoteOrders, err := s.remote.ListOrders(ctx, id.RemoteToken)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, fmt.Sprintf("listing remote orders failed: %v", err))
		}
		return local
	}

	byNumber := make(map[string]int, len(local))
	for i, record := range local {
		byNumber[record.OrderNumber] = i
	}

	merged := local
	for _, remote := range remoteOrders {
		number := strings.TrimSpace(remote.OrderNumber)
		if number == "" {
			continue
		}
		if i, ok := byNumber[number]; ok {
			if status, err := enums.ParseOrderStatus(remote.Status); err == nil {
				merged[i].Status = status
			}
			merged[i].RemoteConfirmed = true
			continue
		}
		merged = append(merged, s.remoteOnlyRecord(id.OwnerEmail(), remote))
	}
	return merged
}

func (s *service) remoteOnlyRecord(owner string, remote commerce.RemoteOrder) models.OrderRecord {
	status := enums.OrderStatusPending
	if parsed, err := enums.ParseOrderStatus(remote.Status); err == nil {
		status = parsed
	}
	return models.OrderRecord{
		OrderNumber:     remote.OrderNumber,
		UserEmail:       owner,
		GrandTotal:      remote.TotalPrice,
		Status:          status,
		RemoteConfirmed: true,
		CreatedAt:       remote.CreatedAt,
	}
}
