package addresses

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopvue/storefront/pkg/commerce"
	"github.com/shopvue/storefront/pkg/config"
	"github.com/shopvue/storefront/pkg/enums"
	pkgerrors "github.com/shopvue/storefront/pkg/errors"
	"github.com/shopvue/storefront/pkg/session"
	"github.com/shopvue/storefront/pkg/store/models"
	"github.com/shopvue/storefront/pkg/types"
	"gorm.io/gorm"
)

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type memoryAddressRepo struct {
	addresses map[uuid.UUID]*models.Address
}

func newMemoryAddressRepo() *memoryAddressRepo {
	return &memoryAddressRepo{addresses: map[uuid.UUID]*models.Address{}}
}

func (m *memoryAddressRepo) WithTx(tx *gorm.DB) AddressRepository { return m }

func (m *memoryAddressRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]models.Address, error) {
	var out []models.Address
	for _, addr := range m.addresses {
		if addr.UserEmail == ownerEmail {
			out = append(out, *addr)
		}
	}
	return out, nil
}

func (m *memoryAddressRepo) FindByID(ctx context.Context, ownerEmail string, id uuid.UUID) (*models.Address, error) {
	addr, ok := m.addresses[id]
	if !ok || addr.UserEmail != ownerEmail {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *addr
	return &copied, nil
}

func (m *memoryAddressRepo) FindMatching(ctx context.Context, ownerEmail, street, city, postalCode string) (*models.Address, error) {
	for _, addr := range m.addresses {
		if addr.UserEmail == ownerEmail && addr.Street == street && addr.City == city && addr.PostalCode == postalCode {
			copied := *addr
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryAddressRepo) Create(ctx context.Context, address *models.Address) (*models.Address, error) {
	if address.ID == uuid.Nil {
		address.ID = uuid.New()
	}
	copied := *address
	m.addresses[address.ID] = &copied
	return address, nil
}

func (m *memoryAddressRepo) Update(ctx context.Context, address *models.Address) (*models.Address, error) {
	copied := *address
	m.addresses[address.ID] = &copied
	return address, nil
}

func (m *memoryAddressRepo) Delete(ctx context.Context, ownerEmail string, id uuid.UUID) error {
	addr, ok := m.addresses[id]
	if ok && addr.UserEmail == ownerEmail {
		delete(m.addresses, id)
	}
	return nil
}

func (m *memoryAddressRepo) ClearDefaults(ctx context.Context, ownerEmail string) error {
	for _, addr := range m.addresses {
		if addr.UserEmail == ownerEmail {
			addr.IsDefault = false
		}
	}
	return nil
}

func (m *memoryAddressRepo) defaultCount(ownerEmail string) int {
	count := 0
	for _, addr := range m.addresses {
		if addr.UserEmail == ownerEmail && addr.IsDefault {
			count++
		}
	}
	return count
}

type stubRemoteBook struct {
	nextID  int64
	created []commerce.CreateAddressRequest
	updated []int64
	deleted []int64
}

func (s *stubRemoteBook) CreateAddress(ctx context.Context, token string, req commerce.CreateAddressRequest) (*commerce.RemoteAddress, error) {
	s.nextID++
	s.created = append(s.created, req)
	return &commerce.RemoteAddress{ID: s.nextID}, nil
}

func (s *stubRemoteBook) UpdateAddress(ctx context.Context, token string, id int64, req commerce.CreateAddressRequest) (*commerce.RemoteAddress, error) {
	s.updated = append(s.updated, id)
	return &commerce.RemoteAddress{ID: id}, nil
}

func (s *stubRemoteBook) DeleteAddress(ctx context.Context, token string, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func newTestService(t *testing.T) (Service, *memoryAddressRepo, *stubRemoteBook) {
	t.Helper()
	repo := newMemoryAddressRepo()
	remote := &stubRemoteBook{}
	svc, err := NewService(repo, stubTxRunner{}, remote, config.CheckoutConfig{TaxRate: "0.10", DefaultCountry: "Kuwait"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc, repo, remote
}

func saveInput(street string, isDefault bool) SaveInput {
	return SaveInput{
		Address: types.DeliveryAddress{
			FullName:   "Sam Shopper",
			Phone:      "555-0100",
			Street:     street,
			City:       "Salmiya",
			State:      "Hawalli",
			PostalCode: "22001",
		},
		AddressType: enums.AddressTypeHome,
		IsDefault:   isDefault,
	}
}

func sam() session.Identity {
	return session.Identity{Email: "sam@example.com", RemoteToken: "tok", Authenticated: true}
}

func TestCreateAppliesCountryFallback(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)

	created, err := svc.Create(context.Background(), session.Identity{}, saveInput("1 Main St", false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Country != "Kuwait" {
		t.Fatalf("expected country fallback, got %q", created.Country)
	}
	if created.UserEmail != session.GuestEmail {
		t.Fatalf("expected guest owner, got %q", created.UserEmail)
	}
}

func TestCreateRejectsMissingState(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)
	input := saveInput("1 Main St", false)
	input.Address.State = ""

	_, err := svc.Create(context.Background(), sam(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.addresses) != 0 {
		t.Fatal("invalid address must not be stored")
	}
}

func TestDefaultFlagIsExclusive(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)
	ctx := context.Background()
	id := sam()

	first, err := svc.Create(ctx, id, saveInput("1 Main St", true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Create(ctx, id, saveInput("2 Side St", true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.defaultCount(id.OwnerEmail()) != 1 {
		t.Fatalf("expected exactly one default, got %d", repo.defaultCount(id.OwnerEmail()))
	}
	stored, err := repo.FindByID(ctx, id.OwnerEmail(), first.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.IsDefault {
		t.Fatal("first address must lose the default flag")
	}

	if _, err := svc.SetDefault(ctx, id, first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.defaultCount(id.OwnerEmail()) != 1 {
		t.Fatalf("expected exactly one default after SetDefault, got %d", repo.defaultCount(id.OwnerEmail()))
	}
	secondStored, err := repo.FindByID(ctx, id.OwnerEmail(), second.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secondStored.IsDefault {
		t.Fatal("second address must lose the default flag")
	}
}

func TestCreateMirrorsRemotelyForAuthedUsers(t *testing.T) {
	t.Parallel()

	svc, repo, remote := newTestService(t)
	id := sam()

	created, err := svc.Create(context.Background(), id, saveInput("1 Main St", false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(remote.created) != 1 {
		t.Fatalf("expected one remote create, got %d", len(remote.created))
	}
	if created.RemoteID == nil || *created.RemoteID != 1 {
		t.Fatalf("remote ID not linked: %v", created.RemoteID)
	}

	stored, err := repo.FindByID(context.Background(), id.OwnerEmail(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.RemoteID == nil {
		t.Fatal("remote link must be persisted")
	}
}

func TestDeleteMirrorsRemoteDeletion(t *testing.T) {
	t.Parallel()

	svc, _, remote := newTestService(t)
	ctx := context.Background()
	id := sam()

	created, err := svc.Create(ctx, id, saveInput("1 Main St", false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(ctx, id, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(remote.deleted) != 1 || remote.deleted[0] != 1 {
		t.Fatalf("expected remote delete of 1, got %v", remote.deleted)
	}
}

func TestSaveCheckoutAddressDeduplicatesByDestination(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	addr := types.DeliveryAddress{
		FullName:   "Sam Shopper",
		Phone:      "555-0100",
		Street:     "1 Main St",
		City:       "Salmiya",
		PostalCode: "22001",
	}
	if err := svc.SaveCheckoutAddress(ctx, "sam@example.com", addr, enums.AddressTypeHome); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	addr.Phone = "555-0199"
	if err := svc.SaveCheckoutAddress(ctx, "sam@example.com", addr, enums.AddressTypeHome); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := repo.ListByOwner(ctx, "sam@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected one address, got %d", len(stored))
	}
	if stored[0].Phone != "555-0199" {
		t.Fatalf("contact fields must be refreshed, got %q", stored[0].Phone)
	}
}

func TestUpdateUnknownAddress(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)

	_, err := svc.Update(context.Background(), sam(), uuid.New(), saveInput("1 Main St", false))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
