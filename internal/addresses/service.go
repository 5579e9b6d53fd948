package addresses

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopvue/storefront/pkg/commerce"
	"github.com/shopvue/storefront/pkg/config"
	"github.com/shopvue/storefront/pkg/enums"
	pkgerrors "github.com/shopvue/storefront/pkg/errors"
	"github.com/shopvue/storefront/pkg/logger"
	"github.com/shopvue/storefront/pkg/session"
	"github.com/shopvue/storefront/pkg/store/models"
	"github.com/shopvue/storefront/pkg/types"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type remoteAddressBook interface {
	CreateAddress(ctx context.Context, token string, req commerce.CreateAddressRequest) (*commerce.RemoteAddress, error)
	UpdateAddress(ctx context.Context, token string, id int64, req commerce.CreateAddressRequest) (*commerce.RemoteAddress, error)
	DeleteAddress(ctx context.Context, token string, id int64) error
}

// SaveInput is an address book entry as submitted by the shopper.
type SaveInput struct {
	Address     types.DeliveryAddress
	AddressType enums.AddressType
	IsDefault   bool
}

// Service manages the per-user address book. The local book is authoritative;
// remote writes are mirrored best-effort and never block the local change. At
// most one address per owner carries the default flag.
type Service interface {
	List(ctx context.Context, id session.Identity) ([]models.Address, error)
	Create(ctx context.Context, id session.Identity, input SaveInput) (*models.Address, error)
	Update(ctx context.Context, id session.Identity, addressID uuid.UUID, input SaveInput) (*models.Address, error)
	Delete(ctx context.Context, id session.Identity, addressID uuid.UUID) error
	SetDefault(ctx context.Context, id session.Identity, addressID uuid.UUID) (*models.Address, error)
	SaveCheckoutAddress(ctx context.Context, owner string, addr types.DeliveryAddress, addrType enums.AddressType) error
}

type service struct {
	repo    AddressRepository
	tx      txRunner
	remote  remoteAddressBook
	logg    *logger.Logger
	country string
}

// NewService builds the address book service.
func NewService(repo AddressRepository, tx txRunner, remote remoteAddressBook, cfg config.CheckoutConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("address repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if remote == nil {
		return nil, fmt.Errorf("commerce client required")
	}
	return &service{
		repo:    repo,
		tx:      tx,
		remote:  remote,
		logg:    logg,
		country: cfg.DefaultCountry,
	}, nil
}

func (s *service) List(ctx context.Context, id session.Identity) ([]models.Address, error) {
	return s.repo.ListByOwner(ctx, id.OwnerEmail())
}

func (s *service) Create(ctx context.Context, id session.Identity, input SaveInput) (*models.Address, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	owner := id.OwnerEmail()
	address := s.fromInput(owner, input)

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if input.IsDefault {
			if err := repo.ClearDefaults(ctx, owner); err != nil {
				return err
			}
		}
		_, err := repo.Create(ctx, address)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.mirrorCreate(ctx, id, address)
	return address, nil
}

func (s *service) Update(ctx context.Context, id session.Identity, addressID uuid.UUID, input SaveInput) (*models.Address, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	owner := id.OwnerEmail()
	var updated *models.Address

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := repo.FindByID(ctx, owner, addressID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
			}
			return err
		}

		if input.IsDefault && !existing.IsDefault {
			if err := repo.ClearDefaults(ctx, owner); err != nil {
				return err
			}
		}

		s.applyInput(existing, input)
		updated, err = repo.Update(ctx, existing)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.mirrorUpdate(ctx, id, updated)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id session.Identity, addressID uuid.UUID) error {
	owner := id.OwnerEmail()

	existing, err := s.repo.FindByID(ctx, owner, addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
		}
		return err
	}

	if err := s.repo.Delete(ctx, owner, addressID); err != nil {
		return err
	}

	if id.Authenticated && id.RemoteToken != "" && existing.RemoteID != nil {
		if err := s.remote.DeleteAddress(ctx, id.RemoteToken, *existing.RemoteID); err != nil {
			s.warn(ctx, "remote address delete failed", err)
		}
	}
	return nil
}

func (s *service) SetDefault(ctx context.Context, id session.Identity, addressID uuid.UUID) (*models.Address, error) {
	owner := id.OwnerEmail()
	var updated *models.Address

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := repo.FindByID(ctx, owner, addressID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
			}
			return err
		}

		if err := repo.ClearDefaults(ctx, owner); err != nil {
			return err
		}

		existing.IsDefault = true
		updated, err = repo.Update(ctx, existing)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.mirrorUpdate(ctx, id, updated)
	return updated, nil
}

// SaveCheckoutAddress records the address used at checkout. A destination
// already in the book keeps its entry; contact fields are refreshed instead of
// creating a duplicate.
func (s *service) SaveCheckoutAddress(ctx context.Context, owner string, addr types.DeliveryAddress, addrType enums.AddressType) error {
	if strings.TrimSpace(addr.Street) == "" || strings.TrimSpace(addr.City) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "street and city are required")
	}
	if addrType == "" {
		addrType = enums.AddressTypeHome
	}

	existing, err := s.repo.FindMatching(ctx, owner,
		strings.TrimSpace(addr.Street), strings.TrimSpace(addr.City), strings.TrimSpace(addr.PostalCode))
	switch {
	case err == nil:
		existing.FullName = addr.FullName
		existing.Phone = addr.Phone
		existing.State = addr.State
		existing.Lat = addr.Lat
		existing.Lng = addr.Lng
		_, err = s.repo.Update(ctx, existing)
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		_, err = s.repo.Create(ctx, s.fromInput(owner, SaveInput{Address: addr, AddressType: addrType}))
		return err
	default:
		return err
	}
}

func (s *service) fromInput(owner string, input SaveInput) *models.Address {
	addrType := input.AddressType
	if addrType == "" {
		addrType = enums.AddressTypeHome
	}
	country := strings.TrimSpace(input.Address.Country)
	if country == "" {
		country = s.country
	}

	return &models.Address{
		UserEmail:   owner,
		FullName:    strings.TrimSpace(input.Address.FullName),
		Phone:       strings.TrimSpace(input.Address.Phone),
		Street:      strings.TrimSpace(input.Address.Street),
		City:        strings.TrimSpace(input.Address.City),
		State:       strings.TrimSpace(input.Address.State),
		PostalCode:  strings.TrimSpace(input.Address.PostalCode),
		Country:     country,
		Lat:         input.Address.Lat,
		Lng:         input.Address.Lng,
		AddressType: addrType,
		IsDefault:   input.IsDefault,
	}
}

func (s *service) applyInput(address *models.Address, input SaveInput) {
	address.FullName = strings.TrimSpace(input.Address.FullName)
	address.Phone = strings.TrimSpace(input.Address.Phone)
	address.Street = strings.TrimSpace(input.Address.Street)
	address.City = strings.TrimSpace(input.Address.City)
	address.State = strings.TrimSpace(input.Address.State)
	address.PostalCode = strings.TrimSpace(input.Address.PostalCode)
	if country := strings.TrimSpace(input.Address.Country); country != "" {
		address.Country = country
	}
	address.Lat = input.Address.Lat
	address.Lng = input.Address.Lng
	if input.AddressType != "" {
		address.AddressType = input.AddressType
	}
	address.IsDefault = input.IsDefault
}

// mirrorCreate pushes a new entry to the remote address book and links the
// returned ID. Remote failures only log: the local book already holds the
// entry.
func (s *service) mirrorCreate(ctx context.Context, id session.Identity, address *models.Address) {
	if !id.Authenticated || id.RemoteToken == "" {
		return
	}

	created, err := s.remote.CreateAddress(ctx, id.RemoteToken, s.toRemoteRequest(address))
	if err != nil {
		s.warn(ctx, "remote address create failed", err)
		return
	}

	address.RemoteID = &created.ID
	if _, err := s.repo.Update(ctx, address); err != nil {
		s.warn(ctx, "linking remote address failed", err)
	}
}

func (s *service) mirrorUpdate(ctx context.Context, id session.Identity, address *models.Address) {
	if address == nil || !id.Authenticated || id.RemoteToken == "" {
		return
	}
	if address.RemoteID == nil {
		s.mirrorCreate(ctx, id, address)
		return
	}
	if _, err := s.remote.UpdateAddress(ctx, id.RemoteToken, *address.RemoteID, s.toRemoteRequest(address)); err != nil {
		s.warn(ctx, "remote address update failed", err)
	}
}

func (s *service) toRemoteRequest(address *models.Address) commerce.CreateAddressRequest {
	return commerce.CreateAddressRequest{
		FullName:    address.FullName,
		Phone:       address.Phone,
		Street:      address.Street,
		City:        address.City,
		State:       address.State,
		PostalCode:  address.PostalCode,
		Country:     address.Country,
		AddressType: address.AddressType.String(),
		IsDefault:   address.IsDefault,
		Lat:         address.Lat,
		Lng:         address.Lng,
	}
}

func validateInput(input SaveInput) error {
	addr := input.Address
	missing := map[string]string{}
	if strings.TrimSpace(addr.FullName) == "" {
		missing["full_name"] = "is required"
	}
	if strings.TrimSpace(addr.Phone) == "" {
		missing["phone"] = "is required"
	}
	if strings.TrimSpace(addr.Street) == "" {
		missing["address"] = "is required"
	}
	if strings.TrimSpace(addr.City) == "" {
		missing["city"] = "is required"
	}
	if strings.TrimSpace(addr.State) == "" {
		missing["state"] = "is required"
	}
	if strings.TrimSpace(addr.PostalCode) == "" {
		missing["zip_code"] = "is required"
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "address incomplete").WithDetails(missing)
	}
	if input.AddressType != "" && !input.AddressType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid address type")
	}
	return nil
}

func (s *service) warn(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(ctx, fmt.Sprintf("%s: %v", msg, err))
}
