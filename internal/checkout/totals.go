package checkout

import (
	"github.com/shopspring/decimal"
	"github.com/shopvue/storefront/pkg/store/models"
)

// Totals is the money breakdown of a checkout. Tax applies to the discounted
// subtotal, never to shipping.
type Totals struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Discount     decimal.Decimal `json:"discount"`
	Tax          decimal.Decimal `json:"tax"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
}

// Subtotal sums unit price times quantity across the cart.
func Subtotal(lines []models.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total.Round(2)
}

// ComputeTotals derives the full breakdown. A nil voucher means no discount.
func ComputeTotals(lines []models.CartLine, voucher *Voucher, shipping, taxRate decimal.Decimal) Totals {
	subtotal := Subtotal(lines)

	discount := decimal.Zero
	if voucher != nil {
		discount = voucher.DiscountFor(subtotal)
	}

	taxable := subtotal.Sub(discount)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	tax := taxable.Mul(taxRate).Round(2)

	return Totals{
		Subtotal:     subtotal,
		ShippingCost: shipping.Round(2),
		Discount:     discount,
		Tax:          tax,
		GrandTotal:   subtotal.Add(shipping).Sub(discount).Add(tax).Round(2),
	}
}
