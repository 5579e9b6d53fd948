package checkout

import (
	"github.com/shopspring/decimal"
	"github.com/shopvue/storefront/pkg/enums"
	pkgerrors "github.com/shopvue/storefront/pkg/errors"
)

// DeliveryChoice is one row of the fixed delivery catalog shown at checkout.
type DeliveryChoice struct {
	Option   enums.DeliveryOption `json:"option"`
	Label    string               `json:"label"`
	Estimate string               `json:"estimate"`
	Cost     decimal.Decimal      `json:"cost"`
}

var deliveryCatalog = []DeliveryChoice{
	{
		Option:   enums.DeliveryOptionStandard,
		Label:    "Standard Delivery",
		Estimate: "5-7 business days",
		Cost:     decimal.Zero,
	},
	{
		Option:   enums.DeliveryOptionExpress,
		Label:    "Express Delivery",
		Estimate: "2-3 business days",
		Cost:     decimal.RequireFromString("9.99"),
	},
	{
		Option:   enums.DeliveryOptionOvernight,
		Label:    "Overnight Delivery",
		Estimate: "Next business day",
		Cost:     decimal.RequireFromString("19.99"),
	},
}

// DeliveryCatalog returns the selectable delivery options in display order.
func DeliveryCatalog() []DeliveryChoice {
	out := make([]DeliveryChoice, len(deliveryCatalog))
	copy(out, deliveryCatalog)
	return out
}

// DeliveryCost returns the shipping cost for the chosen option.
func DeliveryCost(option enums.DeliveryOption) (decimal.Decimal, error) {
	for _, choice := range deliveryCatalog {
		if choice.Option == option {
			return choice.Cost, nil
		}
	}
	return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "unknown delivery option")
}
