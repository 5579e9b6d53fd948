package models

import "time"

// UserSettings persists the account-page preferences per user email.
type UserSettings struct {
	UserEmail          string    `gorm:"column:user_email;primaryKey" json:"-"`
	Newsletter         bool      `gorm:"column:newsletter;not null;default:false" json:"newsletter"`
	OrderNotifications bool      `gorm:"column:order_notifications;not null;default:true" json:"order_notifications"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
