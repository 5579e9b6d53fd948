package checkout

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopvue/storefront/internal/cart"
	"github.com/shopvue/storefront/pkg/commerce"
	"github.com/shopvue/storefront/pkg/config"
	"github.com/shopvue/storefront/pkg/enums"
	pkgerrors "github.com/shopvue/storefront/pkg/errors"
	"github.com/shopvue/storefront/pkg/session"
	"github.com/shopvue/storefront/pkg/store/models"
	"github.com/shopvue/storefront/pkg/types"
)

type stubCartStore struct {
	lines      []models.CartLine
	clearCalls int
	cleared    bool
}

func (s *stubCartStore) List(ctx context.Context) ([]models.CartLine, error) {
	return s.lines, nil
}

func (s *stubCartStore) Clear(ctx context.Context) error {
	s.clearCalls++
	s.cleared = true
	return nil
}

type stubReconciler struct {
	result cart.ReconcileResult
	err    error
	calls  int
}

func (s *stubReconciler) Reconcile(ctx context.Context, lines []models.CartLine, id session.Identity) (cart.ReconcileResult, error) {
	s.calls++
	return s.result, s.err
}

type stubRemote struct {
	addresses []commerce.RemoteAddress
	listErr   error

	created   *commerce.RemoteAddress
	createErr error

	order     *commerce.RemoteOrder
	submitErr error

	createdReq   *commerce.CreateAddressRequest
	submittedReq *commerce.SubmitOrderRequest
}

func (s *stubRemote) ListAddresses(ctx context.Context, token string) ([]commerce.RemoteAddress, error) {
	return s.addresses, s.listErr
}

func (s *stubRemote) CreateAddress(ctx context.Context, token string, req commerce.CreateAddressRequest) (*commerce.RemoteAddress, error) {
	s.createdReq = &req
	return s.created, s.createErr
}

func (s *stubRemote) SubmitOrder(ctx context.Context, token string, req commerce.SubmitOrderRequest) (*commerce.RemoteOrder, error) {
	s.submittedReq = &req
	return s.order, s.submitErr
}

type stubAddressSaver struct {
	saved []types.DeliveryAddress
}

func (s *stubAddressSaver) SaveCheckoutAddress(ctx context.Context, owner string, addr types.DeliveryAddress, addrType enums.AddressType) error {
	s.saved = append(s.saved, addr)
	return nil
}

type stubOrderLog struct {
	appended *models.OrderRecord
}

func (s *stubOrderLog) Append(ctx context.Context, record *models.OrderRecord) (*models.OrderRecord, error) {
	s.appended = record
	return record, nil
}

type checkoutFixture struct {
	svc       Service
	cart      *stubCartStore
	reconcile *stubReconciler
	remote    *stubRemote
	addresses *stubAddressSaver
	orders    *stubOrderLog
}

func newFixture(t *testing.T, lines []models.CartLine) *checkoutFixture {
	t.Helper()

	f := &checkoutFixture{
		cart:      &stubCartStore{lines: lines},
		reconcile: &stubReconciler{result: cart.ReconcileResult{Status: cart.ReconcileComplete}},
		remote:    &stubRemote{},
		addresses: &stubAddressSaver{},
		orders:    &stubOrderLog{},
	}

	svc, err := NewService(
		f.cart,
		f.reconcile,
		f.remote,
		f.addresses,
		f.orders,
		config.CheckoutConfig{TaxRate: "0.10", DefaultCountry: "Kuwait"},
		nil,
		nil,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.svc = svc
	return f
}

func validInput() SubmitInput {
	return SubmitInput{
		Address: types.DeliveryAddress{
			FullName:   "Sam Shopper",
			Phone:      "555-0100",
			Street:     "12 Palm Street",
			City:       "Salmiya",
			State:      "Hawalli",
			PostalCode: "22001",
		},
		DeliveryOption: enums.DeliveryOptionStandard,
		PaymentMethod:  enums.PaymentMethodCashOnDelivery,
	}
}

func twoItemCart() []models.CartLine {
	return []models.CartLine{
		{ProductID: "p1", Name: "Mug", UnitPrice: money("10.00"), Quantity: 2},
	}
}

func authedID() session.Identity {
	return session.Identity{Email: "sam@example.com", RemoteToken: "tok", Authenticated: true}
}

func TestSubmitRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	result, err := f.svc.Submit(context.Background(), session.Identity{}, validInput())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if result.State != StateRejected {
		t.Fatalf("expected rejected, got %s", result.State)
	}
	if f.cart.cleared {
		t.Fatal("rejected checkout must leave the cart intact")
	}
	if f.orders.appended != nil {
		t.Fatal("rejected checkout must not append an order")
	}
}

func TestSubmitRejectsIncompleteAddress(t *testing.T) {
	t.Parallel()

	f := newFixture(t, twoItemCart())
	input := validInput()
	input.Address.City = ""

	result, err := f.svc.Submit(context.Background(), session.Identity{}, input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if result.State != StateRejected {
		t.Fatalf("expected rejected, got %s", result.State)
	}
	if f.reconcile.calls != 0 {
		t.Fatal("rejected checkout must not reconcile")
	}
}

func TestSubmitRejectsMissingState(t *testing.T) {
	t.Parallel()

	f := newFixture(t, twoItemCart())
	input := validInput()
	input.Address.State = ""

	result, err := f.svc.Submit(context.Background(), session.Identity{}, input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if result.State != StateRejected {
		t.Fatalf("expected rejected, got %s", result.State)
	}
	if f.cart.cleared {
		t.Fatal("rejected checkout must leave the cart intact")
	}
}

func TestSubmitRequiresCompleteCardDetails(t *testing.T) {
	t.Parallel()

	f := newFixture(t, twoItemCart())
	input := validInput()
	input.PaymentMethod = enums.PaymentMethodCard
	input.Card = CardDetails{Number: "4111 1111 1111 1111", Name: "Sam", Expiry: "12/30"}

	result, err := f.svc.Submit(context.Background(), session.Identity{}, input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if result.State != StateRejected {
		t.Fatalf("expected rejected, got %s", result.State)
	}

	input.Card.CVV = "123"
	result, err = f.svc.Submit(context.Background(), session.Identity{}, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.State != StateCompletedLocalOnly {
		t.Fatalf("expected local-only completion, got %s", result.State)
	}
}

func TestGuestCheckoutCompletesLocally(t *testing.T) {
	t.Parallel()

	f := newFixture(t, twoItemCart())
	input := validInput()
	input.VoucherCode = "save10"

	result, err := f.svc.Submit(context.Background(), session.Identity{}, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.State != StateCompletedLocalOnly {
		t.Fatalf("expected local-only completion, got %s", result.State)
	}
	if !strings.HasPrefix(result.OrderNumber, localOrderPrefix) {
		t.Fatalf("expected local order number, got %q", result.OrderNumber)
	}
	if result.OrderNumber != strings.ToUpper(result.OrderNumber) {
		t.Fatalf("local order number must be uppercase: %q", result.OrderNumber)
	}
	if !f.cart.cleared {
		t.Fatal("completed checkout must clear the cart")
	}

	order := f.orders.appended
	if order == nil {
		t.Fatal("expected order record")
	}
	if order.UserEmail != session.GuestEmail {
		t.Fatalf("guest orders belong to %q, got %q", session.GuestEmail, order.UserEmail)
	}
	if order.RemoteConfirmed {
		t.Fatal("guest orders are never remote-confirmed")
	}
	if order.VoucherCode == nil || *order.VoucherCode != "SAVE10" {
		t.Fatalf("voucher code not recorded: %v", order.VoucherCode)
	}
	if !order.Discount.Equal(money("2.00")) || !order.GrandTotal.Equal(money("19.80")) {
		t.Fatalf("unexpected totals: discount %s grand %s", order.Discount, order.GrandTotal)
	}
	if order.DeliveryAddress.Country != "Kuwait" {
		t.Fatalf("expected country fallback, got %q", order.DeliveryAddress.Country)
	}
	if len(f.addresses.saved) != 1 {
		t.Fatal("checkout address must be saved locally")
	}
	if f.remote.submittedReq != nil {
		t.Fatal("guest checkout must not call the remote order API")
	}
}

func TestAuthenticatedCheckoutUsesMatchingRemoteAddress(t *testing.T) {
	t.Parallel()

	f := newFixture(t, twoItemCart())
	f.remote.addresses = []commerce.RemoteAddress{
		{ID: 31, Street: "99 Other Road", City: "Salmiya", PostalCode: "22001"},
		{ID: 32, Street: "12 Palm Street", City: "Salmiya", PostalCode: "22001"},
	}
	f.remote.order = &commerce.RemoteOrder{ID: 7, OrderNumber: "SO-7001", Status: "pending"}

	input := validInput()
	input.VoucherCode = "SAVE10"

	result, err := f.svc.Submit(context.Background(), authedID(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.State != StateCompleted {
		t.Fatalf("expected completed, got %s", result.State)
	}
	if f.remote.createdReq != nil {
		t.Fatal("matching address must not be re-created")
	}

	req := f.remote.submittedReq
	if req == nil {
		t.Fatal("expected remote order submission")
	}
	if req.AddressRef == nil || *req.AddressRef != 32 {
		t.Fatalf("expected address ref 32, got %v", req.AddressRef)
	}
	if req.Notes != "Voucher: SAVE10" {
		t.Fatalf("unexpected notes %q", req.Notes)
	}
	if !req.Discount.Equal(money("2.00")) {
		t.Fatalf("unexpected discount %s", req.Discount)
	}

	order := f.orders.appended
	if order.OrderNumber != "SO-7001" {
		t.Fatalf("expected remote order number, got %q", order.OrderNumber)
	}
	if !order.RemoteConfirmed {
		t.Fatal("expected remote-confirmed order")
	}
	if order.UserEmail != "sam@example.com" {
		t.Fatalf("unexpected owner %q", order.UserEmail)
	}
}

func TestAuthenticatedCheckoutCreatesMissingRemoteAddress(t *testing.T) {
	t.Parallel()

	f := newFixture(t, twoItemCart())
	f.remote.created = &commerce.RemoteAddress{ID: 88}
	f.remote.order = &commerce.RemoteOrder{OrderNumber: "SO-88"}

	_, err := f.svc.Submit(context.Background(), authedID(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	created := f.remote.createdReq
	if created == nil {
		t.Fatal("expected remote address creation")
	}
	if created.Country != "Kuwait" {
		t.Fatalf("expected country fallback, got %q", created.Country)
	}
	if created.AddressType != enums.AddressTypeHome.String() {
		t.Fatalf("expected home address type, got %q", created.AddressType)
	}
	if f.remote.submittedReq.AddressRef == nil || *f.remote.submittedReq.AddressRef != 88 {
		t.Fatalf("expected new address ref 88, got %v", f.remote.submittedReq.AddressRef)
	}
}

func TestRemoteFailureDegradesToLocalOrder(t *testing.T) {
	t.Parallel()

	f := newFixture(t, twoItemCart())
	f.remote.listErr = pkgerrors.New(pkgerrors.CodeRemote, "addresses down")
	f.remote.submitErr = pkgerrors.New(pkgerrors.CodeRemote, "orders down")
	f.reconcile.result = cart.ReconcileResult{Status: cart.ReconcilePartial, FailedProductIDs: []string{"p1"}}
	f.reconcile.err = pkgerrors.New(pkgerrors.CodeRemote, "cart down")

	result, err := f.svc.Submit(context.Background(), authedID(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.State != StateCompletedLocalOnly {
		t.Fatalf("expected local-only completion, got %s", result.State)
	}
	if !strings.HasPrefix(result.OrderNumber, localOrderPrefix) {
		t.Fatalf("expected local order number, got %q", result.OrderNumber)
	}
	if f.remote.submittedReq == nil {
		t.Fatal("order submission must still be attempted")
	}
	if f.remote.submittedReq.AddressRef != nil {
		t.Fatal("failed address resolution must submit a null address ref")
	}
	if !f.cart.cleared {
		t.Fatal("cart must be cleared even when the remote side fails")
	}
	if f.orders.appended == nil || f.orders.appended.RemoteConfirmed {
		t.Fatal("expected unconfirmed local order record")
	}
	if result.Reconcile.Status != cart.ReconcilePartial {
		t.Fatalf("reconcile status not propagated: %s", result.Reconcile.Status)
	}
}

func TestQuoteIgnoresUnknownVoucher(t *testing.T) {
	t.Parallel()

	f := newFixture(t, twoItemCart())

	totals, err := f.svc.Quote(context.Background(), "BOGUS", enums.DeliveryOptionExpress)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !totals.Discount.IsZero() {
		t.Fatalf("unknown voucher must not discount: %s", totals.Discount)
	}
	if !totals.ShippingCost.Equal(money("9.99")) {
		t.Fatalf("unexpected shipping %s", totals.ShippingCost)
	}
}

func TestLocalOrderNumberShape(t *testing.T) {
	t.Parallel()

	s := &service{now: func() time.Time { return time.UnixMilli(1700000000000) }}
	number := s.localOrderNumber()
	if !strings.HasPrefix(number, localOrderPrefix) {
		t.Fatalf("unexpected prefix: %q", number)
	}
	suffix := strings.TrimPrefix(number, localOrderPrefix)
	if suffix == "" || suffix != strings.ToUpper(suffix) {
		t.Fatalf("unexpected suffix: %q", suffix)
	}
}
