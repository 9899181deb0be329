package models

import (
	"time"

	"gorm.io/gorm"
)

// Quantity bounds for a single cart line. Requests outside the range are
// clamped, not rejected.
const (
	MinCartQuantity = 1
	MaxCartQuantity = 100
)

// ClampQuantity forces qty into the allowed per-line range.
func ClampQuantity(qty int) int {
	if qty < MinCartQuantity {
		return MinCartQuantity
	}
	if qty > MaxCartQuantity {
		return MaxCartQuantity
	}
	return qty
}

// Cart is a customer's single mutable cart. One row per customer; checkout
// empties it rather than deleting it.
type Cart struct {
	gorm.Model
	CustomerID uint       `gorm:"uniqueIndex;not null" json:"customerId"`
	Items      []CartItem `gorm:"foreignKey:CartID" json:"items"`
}

// ItemFor returns the line holding productID, if any.
func (c *Cart) ItemFor(productID uint) (*CartItem, bool) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i], true
		}
	}
	return nil, false
}

// CartItem is one product line in a cart. A product appears at most once per
// cart; repeated adds update the existing line. Lines are deleted for real,
// not soft-deleted, so the unique index stays usable after removal.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	CartID    uint      `gorm:"not null;index:idx_cart_product,unique" json:"-"`
	ProductID uint      `gorm:"not null;index:idx_cart_product,unique" json:"productId"`
	Quantity  int       `gorm:"not null" json:"quantity"`

	Product Product `gorm:"foreignKey:ProductID" json:"product"`
}
