package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Tagline       string         `json:"tagline"`
	Description   string         `gorm:"type:text" json:"description"`
	Price         float64        `gorm:"not null" json:"price"`
	OriginalPrice *float64       `json:"original_price,omitempty"` // pre-discount price, > Price when set
	ImageURL      string         `json:"image_url"`
	Category      string         `gorm:"type:varchar(50);index" json:"category"`
	Features      []string       `gorm:"serializer:json" json:"features"`
	Colors        []string       `gorm:"serializer:json" json:"colors"`
	InStock       bool           `gorm:"default:true" json:"in_stock"`
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"`
	Rating        float64        `gorm:"default:0" json:"rating"`
	ReviewsCount  int            `gorm:"default:0" json:"reviews_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	OrderItems []OrderItem `gorm:"foreignKey:ProductID" json:"-"`
	CartItems  []CartItem  `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// HasColor reports whether name is one of the product's declared colors.
// An empty name is always valid: color selection is optional.
func (p *Product) HasColor(name string) bool {
	if name == "" {
		return true
	}
	for _, c := range p.Colors {
		if c == name {
			return true
		}
	}
	return false
}
