package models

import "gorm.io/gorm"

// Product represents a product in a shop's catalogue. The product row owns
// the shop relation; there is no product list stored on the shop itself.
type Product struct {
	gorm.Model
	ShopID      uint    `gorm:"not null;index" json:"shopId"`
	Name        string  `gorm:"size:255;not null;index" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Category    string  `gorm:"size:100;index" json:"category"`
	Price       float64 `gorm:"not null;default:0" json:"price"`
	Stock       int     `gorm:"not null;default:0" json:"stock"`
	Active      bool    `gorm:"not null;default:true" json:"active"`
	ImagePath   string  `gorm:"size:512" json:"-"` // storage key, exposed via ImageURL
	ImageURL    string  `gorm:"-" json:"imageUrl,omitempty"`

	Shop Shop `gorm:"foreignKey:ShopID" json:"-"`
}
