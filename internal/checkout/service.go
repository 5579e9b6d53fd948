package checkout

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/shopvue/storefront/internal/cart"
	"github.com/shopvue/storefront/pkg/commerce"
	"github.com/shopvue/storefront/pkg/config"
	"github.com/shopvue/storefront/pkg/enums"
	pkgerrors "github.com/shopvue/storefront/pkg/errors"
	"github.com/shopvue/storefront/pkg/logger"
	"github.com/shopvue/storefront/pkg/metrics"
	"github.com/shopvue/storefront/pkg/session"
	"github.com/shopvue/storefront/pkg/store/models"
	"github.com/shopvue/storefront/pkg/types"
)

// State tracks a submission through the checkout pipeline. Rejected is only
// reachable from Validating: once submission starts, checkout always lands on
// one of the completed states.
type State string

const (
	StateDrafting           State = "drafting"
	StateValidating         State = "validating"
	StateSubmitting         State = "submitting"
	StateCompleted          State = "completed"
	StateCompletedLocalOnly State = "completed-local-only"
	StateRejected           State = "rejected"
)

const localOrderPrefix = "ORD-"

type cartStore interface {
	List(ctx context.Context) ([]models.CartLine, error)
	Clear(ctx context.Context) error
}

type cartReconciler interface {
	Reconcile(ctx context.Context, lines []models.CartLine, id session.Identity) (cart.ReconcileResult, error)
}

type remoteCheckout interface {
	ListAddresses(ctx context.Context, token string) ([]commerce.RemoteAddress, error)
	CreateAddress(ctx context.Context, token string, req commerce.CreateAddressRequest) (*commerce.RemoteAddress, error)
	SubmitOrder(ctx context.Context, token string, req commerce.SubmitOrderRequest) (*commerce.RemoteOrder, error)
}

type addressSaver interface {
	SaveCheckoutAddress(ctx context.Context, owner string, addr types.DeliveryAddress, addrType enums.AddressType) error
}

type orderLog interface {
	Append(ctx context.Context, record *models.OrderRecord) (*models.OrderRecord, error)
}

// CardDetails carries the card fields collected for card payments. They are
// validated and discarded, never persisted.
type CardDetails struct {
	Number string
	Name   string
	Expiry string
	CVV    string
}

// SubmitInput is a complete checkout submission.
type SubmitInput struct {
	Address        types.DeliveryAddress
	AddressType    enums.AddressType
	DeliveryOption enums.DeliveryOption
	PaymentMethod  enums.PaymentMethod
	VoucherCode    string
	Card           CardDetails
}

// SubmitResult reports how the checkout concluded.
type SubmitResult struct {
	State       State
	Order       *models.OrderRecord
	Totals      Totals
	Reconcile   cart.ReconcileResult
	OrderNumber string
}

// Service orchestrates checkout submission.
type Service interface {
	Quote(ctx context.Context, voucherCode string, option enums.DeliveryOption) (Totals, error)
	Submit(ctx context.Context, id session.Identity, input SubmitInput) (*SubmitResult, error)
}

type service struct {
	cart       cartStore
	reconciler cartReconciler
	remote     remoteCheckout
	addresses  addressSaver
	orders     orderLog
	logg       *logger.Logger
	metrics    *metrics.CheckoutMetrics
	taxRate    decimal.Decimal
	country    string
	now        func() time.Time
}

// NewService builds the checkout orchestrator.
func NewService(
	cartSvc cartStore,
	reconciler cartReconciler,
	remote remoteCheckout,
	addresses addressSaver,
	orders orderLog,
	cfg config.CheckoutConfig,
	logg *logger.Logger,
	checkoutMetrics *metrics.CheckoutMetrics,
) (Service, error) {
	if cartSvc == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if reconciler == nil {
		return nil, fmt.Errorf("cart reconciler required")
	}
	if remote == nil {
		return nil, fmt.Errorf("commerce client required")
	}
	if addresses == nil {
		return nil, fmt.Errorf("address service required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order log required")
	}

	taxRate, err := decimal.NewFromString(strings.TrimSpace(cfg.TaxRate))
	if err != nil {
		return nil, fmt.Errorf("parsing tax rate %q: %w", cfg.TaxRate, err)
	}
	if taxRate.IsNegative() {
		return nil, fmt.Errorf("tax rate must be non-negative")
	}

	return &service{
		cart:       cartSvc,
		reconciler: reconciler,
		remote:     remote,
		addresses:  addresses,
		orders:     orders,
		logg:       logg,
		metrics:    checkoutMetrics,
		taxRate:    taxRate,
		country:    cfg.DefaultCountry,
		now:        time.Now,
	}, nil
}

// Quote computes the money breakdown for the current cart without submitting.
// An unknown voucher code quotes with no discount rather than failing.
func (s *service) Quote(ctx context.Context, voucherCode string, option enums.DeliveryOption) (Totals, error) {
	lines, err := s.cart.List(ctx)
	if err != nil {
		return Totals{}, err
	}

	shipping, err := DeliveryCost(option)
	if err != nil {
		return Totals{}, err
	}

	var voucher *Voucher
	if v, ok := LookupVoucher(voucherCode); ok {
		voucher = &v
	}

	return ComputeTotals(lines, voucher, shipping, s.taxRate), nil
}

// Submit drives one checkout to a terminal state. Validation failures reject
// the submission with the cart intact. Past validation, remote failures
// degrade to a local-only order: the order history gains a record and the
// cart is cleared no matter what the remote side did.
func (s *service) Submit(ctx context.Context, id session.Identity, input SubmitInput) (*SubmitResult, error) {
	lines, err := s.cart.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validate(lines, input); err != nil {
		s.metrics.IncOutcome(string(StateRejected))
		return &SubmitResult{State: StateRejected}, err
	}

	owner := id.OwnerEmail()
	ctx = s.withOwner(ctx, owner)

	var voucher *Voucher
	if v, ok := LookupVoucher(input.VoucherCode); ok {
		voucher = &v
	}

	shipping, err := DeliveryCost(input.DeliveryOption)
	if err != nil {
		s.metrics.IncOutcome(string(StateRejected))
		return &SubmitResult{State: StateRejected}, err
	}
	totals := ComputeTotals(lines, voucher, shipping, s.taxRate)

	// The address book keeps every address used at checkout, even when the
	// remote submission later fails.
	if err := s.addresses.SaveCheckoutAddress(ctx, owner, input.Address, input.AddressType); err != nil {
		s.warn(ctx, "saving checkout address locally failed", err)
	}

	reconcile, recErr := s.reconciler.Reconcile(ctx, lines, id)
	s.metrics.IncReconcileStatus(string(reconcile.Status))
	s.metrics.AddReconcileFailures(len(reconcile.FailedProductIDs))
	if recErr != nil {
		s.warn(ctx, "cart reconciliation incomplete", recErr)
	}

	remoteOrder := s.submitRemote(ctx, id, input, totals)

	record := s.buildRecord(owner, lines, input, voucher, totals, remoteOrder)
	stored, err := s.orders.Append(ctx, record)
	if err != nil {
		// Without a durable record the checkout did not happen; the cart is
		// left intact for a retry.
		s.metrics.IncOutcome(string(StateRejected))
		return nil, err
	}

	if err := s.cart.Clear(ctx); err != nil {
		s.warn(ctx, "clearing cart after checkout failed", err)
	}

	state := StateCompletedLocalOnly
	if remoteOrder != nil {
		state = StateCompleted
	}
	s.metrics.IncOutcome(string(state))

	return &SubmitResult{
		State:       state,
		Order:       stored,
		Totals:      totals,
		Reconcile:   reconcile,
		OrderNumber: stored.OrderNumber,
	}, nil
}

func (s *service) validate(lines []models.CartLine, input SubmitInput) error {
	if len(lines) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

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
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery address incomplete").WithDetails(missing)
	}

	if !input.DeliveryOption.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid delivery option")
	}
	if !input.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	if input.AddressType != "" && !input.AddressType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid address type")
	}

	if input.PaymentMethod == enums.PaymentMethodCard {
		return s.validateCard(input.Card)
	}
	return nil
}

// validateCard requires every card field to be filled in. The gateway never
// charges the card itself, so the fields are not checked against a card
// scheme; the remote API does its own verification at settlement.
func (s *service) validateCard(card CardDetails) error {
	missing := map[string]string{}
	if strings.TrimSpace(card.Number) == "" {
		missing["card_number"] = "is required"
	}
	if strings.TrimSpace(card.Name) == "" {
		missing["card_name"] = "is required"
	}
	if strings.TrimSpace(card.Expiry) == "" {
		missing["card_expiry"] = "is required"
	}
	if strings.TrimSpace(card.CVV) == "" {
		missing["card_cvv"] = "is required"
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "card details incomplete").WithDetails(missing)
	}
	return nil
}

// submitRemote pushes the order to the remote API. Every step fails soft: a
// nil return means the order exists only locally.
func (s *service) submitRemote(ctx context.Context, id session.Identity, input SubmitInput, totals Totals) *commerce.RemoteOrder {
	if !id.Authenticated || id.RemoteToken == "" {
		return nil
	}

	addressRef := s.resolveRemoteAddress(ctx, id.RemoteToken, input)

	req := commerce.SubmitOrderRequest{
		AddressRef:    addressRef,
		ShippingCost:  totals.ShippingCost,
		Discount:      totals.Discount,
		PaymentMethod: input.PaymentMethod.String(),
	}
	if voucher, ok := LookupVoucher(input.VoucherCode); ok {
		req.Notes = "Voucher: " + voucher.Code
	}

	order, err := s.remote.SubmitOrder(ctx, id.RemoteToken, req)
	if err != nil {
		s.warn(ctx, "remote order submission failed, keeping local order", err)
		return nil
	}
	return order
}

// resolveRemoteAddress finds the remote address book entry matching the
// delivery address, creating one when no entry matches. Failures return nil
// and the order is submitted without an address link.
func (s *service) resolveRemoteAddress(ctx context.Context, token string, input SubmitInput) *int64 {
	remoteAddrs, err := s.remote.ListAddresses(ctx, token)
	if err != nil {
		s.warn(ctx, "listing remote addresses failed", err)
		return nil
	}

	for _, remote := range remoteAddrs {
		if remote.Delivery().Matches(input.Address) {
			id := remote.ID
			return &id
		}
	}

	country := strings.TrimSpace(input.Address.Country)
	if country == "" {
		country = s.country
	}
	addrType := input.AddressType
	if addrType == "" {
		addrType = enums.AddressTypeHome
	}

	created, err := s.remote.CreateAddress(ctx, token, commerce.CreateAddressRequest{
		FullName:    input.Address.FullName,
		Phone:       input.Address.Phone,
		Street:      input.Address.Street,
		City:        input.Address.City,
		State:       input.Address.State,
		PostalCode:  input.Address.PostalCode,
		Country:     country,
		AddressType: addrType.String(),
		Lat:         input.Address.Lat,
		Lng:         input.Address.Lng,
	})
	if err != nil {
		s.warn(ctx, "creating remote address failed", err)
		return nil
	}
	id := created.ID
	return &id
}

func (s *service) buildRecord(
	owner string,
	lines []models.CartLine,
	input SubmitInput,
	voucher *Voucher,
	totals Totals,
	remoteOrder *commerce.RemoteOrder,
) *models.OrderRecord {
	items := make([]models.OrderItemSnapshot, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItemSnapshot{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			ImageURL:  line.ImageURL,
			Quantity:  line.Quantity,
		})
	}

	orderNumber := s.localOrderNumber()
	remoteConfirmed := false
	if remoteOrder != nil && strings.TrimSpace(remoteOrder.OrderNumber) != "" {
		orderNumber = remoteOrder.OrderNumber
		remoteConfirmed = true
	}

	var voucherCode *string
	if voucher != nil {
		code := voucher.Code
		voucherCode = &code
	}

	address := input.Address
	if strings.TrimSpace(address.Country) == "" {
		address.Country = s.country
	}

	return &models.OrderRecord{
		OrderNumber:     orderNumber,
		UserEmail:       owner,
		Items:           items,
		DeliveryAddress: address,
		DeliveryOption:  input.DeliveryOption,
		PaymentMethod:   input.PaymentMethod,
		VoucherCode:     voucherCode,
		Subtotal:        totals.Subtotal,
		ShippingCost:    totals.ShippingCost,
		Discount:        totals.Discount,
		Tax:             totals.Tax,
		GrandTotal:      totals.GrandTotal,
		Status:          enums.OrderStatusPending,
		RemoteConfirmed: remoteConfirmed,
	}
}

func (s *service) localOrderNumber() string {
	stamp := strconv.FormatInt(s.now().UnixMilli(), 36)
	return localOrderPrefix + strings.ToUpper(stamp)
}

func (s *service) withOwner(ctx context.Context, owner string) context.Context {
	if s.logg == nil {
		return ctx
	}
	return s.logg.WithUserEmail(ctx, owner)
}

func (s *service) warn(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(ctx, fmt.Sprintf("%s: %v", msg, err))
}
