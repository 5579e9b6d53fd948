package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopvue/storefront/pkg/enums"
	"gorm.io/gorm"
)

// Address is an entry in the local address book, keyed by the owning user's
// email. RemoteID links the entry to the remote address book when known.
type Address struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserEmail   string            `gorm:"column:user_email;not null;index" json:"-"`
	FullName    string            `gorm:"column:full_name;not null" json:"full_name"`
	Phone       string            `gorm:"column:phone;not null" json:"phone"`
	Street      string            `gorm:"column:street;not null" json:"address"`
	City        string            `gorm:"column:city;not null" json:"city"`
	State       string            `gorm:"column:state;not null" json:"state"`
	PostalCode  string            `gorm:"column:postal_code;not null" json:"zip_code"`
	Country     string            `gorm:"column:country;not null" json:"country"`
	Lat         *float64          `gorm:"column:lat" json:"lat,omitempty"`
	Lng         *float64          `gorm:"column:lng" json:"lng,omitempty"`
	AddressType enums.AddressType `gorm:"column:address_type;not null;default:'home'" json:"address_type"`
	IsDefault   bool              `gorm:"column:is_default;not null;default:false" json:"is_default"`
	RemoteID    *int64            `gorm:"column:remote_id" json:"-"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
