package models

import "gorm.io/gorm"

// Shop is a licensed supplier selling products on the marketplace.
type Shop struct {
	gorm.Model
	Name      string `gorm:"size:255;not null" json:"name"`
	Email     string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string `gorm:"size:255;not null" json:"-"` // hashed, never serialised
	LicenseID string `gorm:"uniqueIndex;size:64;not null" json:"licenseId"`
	Address   string `gorm:"type:text" json:"address"`
	Mobile    string `gorm:"size:20" json:"mobile"`
}
