package models

import "gorm.io/gorm"

// Customer is a ration-card holder buying from shops.
type Customer struct {
	gorm.Model
	Name         string `gorm:"size:255;not null" json:"name"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password     string `gorm:"size:255;not null" json:"-"` // hashed, never serialised
	RationCardID string `gorm:"uniqueIndex;size:12;not null" json:"rationCardId"`
	Mobile       string `gorm:"size:20" json:"mobile"`
}
