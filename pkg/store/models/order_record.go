package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopvue/storefront/pkg/enums"
	"github.com/shopvue/storefront/pkg/types"
	"gorm.io/gorm"
)

// OrderItemSnapshot freezes a cart line at submission time. Snapshots are
// copies, never live references into the cart.
type OrderItemSnapshot struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageURL  string          `json:"image_url,omitempty"`
	Quantity  int             `json:"quantity"`
}

// OrderRecord is the durable local order history entry. One is appended per
// successful checkout regardless of remote outcome; RemoteConfirmed records
// whether the remote order system acknowledged it.
type OrderRecord struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderNumber     string                `gorm:"column:order_number;not null;uniqueIndex" json:"order_number"`
	UserEmail       string                `gorm:"column:user_email;not null;index" json:"-"`
	Items           []OrderItemSnapshot   `gorm:"column:items;serializer:json;not null" json:"items"`
	DeliveryAddress types.DeliveryAddress `gorm:"column:delivery_address;serializer:json;not null" json:"delivery_address"`
	DeliveryOption  enums.DeliveryOption  `gorm:"column:delivery_option;not null" json:"delivery_option"`
	PaymentMethod   enums.PaymentMethod   `gorm:"column:payment_method;not null" json:"payment_method"`
	VoucherCode     *string               `gorm:"column:voucher_code" json:"voucher_code,omitempty"`
	Subtotal        decimal.Decimal       `gorm:"column:subtotal;type:decimal(12,2);not null" json:"subtotal"`
	ShippingCost    decimal.Decimal       `gorm:"column:shipping_cost;type:decimal(12,2);not null" json:"shipping_cost"`
	Discount        decimal.Decimal       `gorm:"column:discount;type:decimal(12,2);not null" json:"discount"`
	Tax             decimal.Decimal       `gorm:"column:tax;type:decimal(12,2);not null" json:"tax"`
	GrandTotal      decimal.Decimal       `gorm:"column:grand_total;type:decimal(12,2);not null" json:"grand_total"`
	Status          enums.OrderStatus     `gorm:"column:status;not null;default:'pending'" json:"status"`
	RemoteConfirmed bool                  `gorm:"column:remote_confirmed;not null;default:false" json:"remote_confirmed"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (o *OrderRecord) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
