package model

import (
	"time"

	"gorm.io/gorm"
)

// Address is a saved shipping address. Checkout copies it into the order's
// immutable ShippingAddress snapshot; editing an address never rewrites
// past orders.
type Address struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	Label         string         `gorm:"size:100" json:"label"` // e.g. "Home", "Work"
	FullName      string         `gorm:"size:100;not null" json:"full_name"`
	StreetAddress string         `gorm:"type:text;not null" json:"street_address"`
	City          string         `gorm:"size:100;not null" json:"city"`
	State         string         `gorm:"size:100" json:"state"`
	PostalCode    string         `gorm:"size:20;not null" json:"postal_code"`
	Country       string         `gorm:"size:100;not null" json:"country"`
	Phone         string         `gorm:"size:30" json:"phone"`
	IsDefault     bool           `gorm:"default:false" json:"is_default"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Address) TableName() string {
	return "addresses"
}

// Snapshot converts the saved address into the frozen form stored on orders.
func (a *Address) Snapshot() ShippingAddress {
	return ShippingAddress{
		FullName:      a.FullName,
		StreetAddress: a.StreetAddress,
		City:          a.City,
		State:         a.State,
		PostalCode:    a.PostalCode,
		Country:       a.Country,
		Phone:         a.Phone,
	}
}
