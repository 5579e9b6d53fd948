package checkout

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/shopvue/storefront/pkg/enums"
)

// Voucher is one entry in the built-in voucher table. Percentage vouchers
// carry their percent in Magnitude; fixed vouchers carry the amount.
type Voucher struct {
	Code      string
	Kind      enums.VoucherKind
	Magnitude decimal.Decimal
}

var voucherTable = map[string]Voucher{
	"SAVE10":    {Code: "SAVE10", Kind: enums.VoucherKindPercentage, Magnitude: decimal.NewFromInt(10)},
	"SAVE20":    {Code: "SAVE20", Kind: enums.VoucherKindPercentage, Magnitude: decimal.NewFromInt(20)},
	"WELCOME15": {Code: "WELCOME15", Kind: enums.VoucherKindPercentage, Magnitude: decimal.NewFromInt(15)},
	"FLAT50":    {Code: "FLAT50", Kind: enums.VoucherKindFixedAmount, Magnitude: decimal.NewFromInt(50)},
}

// LookupVoucher resolves a code after trimming and uppercasing it.
func LookupVoucher(code string) (Voucher, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return Voucher{}, false
	}
	voucher, ok := voucherTable[normalized]
	return voucher, ok
}

// DiscountFor returns the discount this voucher grants on the given subtotal.
// A fixed voucher never discounts more than the subtotal itself.
func (v Voucher) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.IsNegative() || subtotal.IsZero() {
		return decimal.Zero
	}

	switch v.Kind {
	case enums.VoucherKindPercentage:
		return subtotal.Mul(v.Magnitude).Div(decimal.NewFromInt(100)).Round(2)
	case enums.VoucherKindFixedAmount:
		if v.Magnitude.GreaterThan(subtotal) {
			return subtotal
		}
		return v.Magnitude.Round(2)
	default:
		return decimal.Zero
	}
}
