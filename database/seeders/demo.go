package seeders

import (
	"github.com/shashiranjanraj/supplyco/app/models"
	"github.com/shashiranjanraj/supplyco/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("shops", SeedShops)
	Register("products", SeedProducts)
	Register("customers", SeedCustomers)
}

const demoPassword = "password123"

// SeedShops inserts two demo shops. Existing emails are left alone so the
// seeder can run repeatedly.
func SeedShops(db *gorm.DB) error {
	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		return err
	}

	shops := []models.Shop{
		{Name: "Green Valley Supplies", Email: "greenvalley@supplyco.test", Password: hash, LicenseID: "LIC-GV-0001", Address: "12 Market Road", Mobile: "9000000001"},
		{Name: "Sunrise Traders", Email: "sunrise@supplyco.test", Password: hash, LicenseID: "LIC-SR-0002", Address: "48 Harbour Street", Mobile: "9000000002"},
	}
	for i := range shops {
		if err := db.Where("email = ?", shops[i].Email).FirstOrCreate(&shops[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedProducts gives each demo shop a small catalogue.
func SeedProducts(db *gorm.DB) error {
	var shops []models.Shop
	if err := db.Where("email LIKE ?", "%@supplyco.test").Find(&shops).Error; err != nil {
		return err
	}

	for _, shop := range shops {
		products := []models.Product{
			{ShopID: shop.ID, Name: "Rice 5kg", Category: "grains", Price: 240, Stock: 120, Active: true},
			{ShopID: shop.ID, Name: "Wheat Flour 1kg", Category: "grains", Price: 55, Stock: 200, Active: true},
			{ShopID: shop.ID, Name: "Sunflower Oil 1L", Category: "oils", Price: 130, Stock: 80, Active: true},
		}
		for i := range products {
			err := db.Where("shop_id = ? AND name = ?", shop.ID, products[i].Name).
				FirstOrCreate(&products[i]).Error
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedCustomers inserts a demo customer account.
func SeedCustomers(db *gorm.DB) error {
	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		return err
	}

	customer := models.Customer{
		Name:         "Asha Nair",
		Email:        "asha@supplyco.test",
		Password:     hash,
		RationCardID: "RC1234567890",
		Mobile:       "9000000100",
	}
	return db.Where("email = ?", customer.Email).FirstOrCreate(&customer).Error
}
