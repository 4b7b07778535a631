package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // order placed
	OrderStatusProcessing OrderStatus = "processing" // being prepared
	OrderStatusShipped    OrderStatus = "shipped"    // handed to carrier
	OrderStatusDelivered  OrderStatus = "delivered"  // received
	OrderStatusCancelled  OrderStatus = "cancelled"  // terminal, outside the progress sequence
)

// progressSteps is the ordered fulfilment sequence shown on the order
// detail page. Cancelled is deliberately not part of it.
var progressSteps = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// ProgressStep maps the status to its index in the fulfilment sequence.
// Cancelled and unrecognized statuses return -1 so no step is highlighted.
func (s OrderStatus) ProgressStep() int {
	for i, step := range progressSteps {
		if s == step {
			return i
		}
	}
	return -1
}

// IsCancelled reports whether the order reached the terminal cancelled state.
func (s OrderStatus) IsCancelled() bool {
	return s == OrderStatusCancelled
}

// Valid reports whether s is one of the five recognized statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ShippingAddress is stored on the order as a JSON document; orders are
// immutable snapshots, so it never references the addresses table.
type ShippingAddress struct {
	FullName      string `json:"full_name"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`
	Phone         string `json:"phone,omitempty"`
}

type Order struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	OrderNumber     string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"order_number"`
	Status          OrderStatus     `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Subtotal        float64         `gorm:"not null" json:"subtotal"`
	ShippingCost    float64         `gorm:"not null" json:"shipping_cost"`
	Tax             float64         `gorm:"not null" json:"tax"`
	Total           float64         `gorm:"not null" json:"total"` // subtotal + shipping + tax, stored at creation
	ShippingAddress ShippingAddress `gorm:"serializer:json" json:"shipping_address"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`

	User       User        `gorm:"foreignKey:UserID" json:"-"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem freezes the product's display fields at purchase time. Later
// edits to the product row must not change what the order shows.
type OrderItem struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	OrderID       uint           `gorm:"not null;index" json:"order_id"`
	ProductID     uint           `gorm:"not null;index" json:"product_id"`
	ProductName   string         `gorm:"not null" json:"product_name"`
	ProductImage  string         `json:"product_image"`
	UnitPrice     float64        `gorm:"not null" json:"unit_price"`
	Quantity      int            `gorm:"not null" json:"quantity"`
	SelectedColor string         `json:"selected_color"`
	CreatedAt     time.Time      `json:"created_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
