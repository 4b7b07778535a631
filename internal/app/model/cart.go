package model

import (
	"time"
)

// CartItem is hard-deleted rather than soft-deleted: the composite unique
// index is the invariant that keeps at most one row per (user, product,
// color), and a soft-deleted row would keep occupying it.
type CartItem struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_cart_user_product_color" json:"user_id"`
	ProductID     uint      `gorm:"not null;uniqueIndex:idx_cart_user_product_color" json:"product_id"`
	Quantity      int       `gorm:"not null;default:1" json:"quantity"`
	SelectedColor string    `gorm:"not null;default:'';uniqueIndex:idx_cart_user_product_color" json:"selected_color"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
