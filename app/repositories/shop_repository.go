package repositories

import (
	"github.com/shashiranjanraj/supplyco/app/models"
	"github.com/shashiranjanraj/supplyco/pkg/orm"
)

// ShopRepository handles database operations for Shop.
type ShopRepository struct{}

func NewShopRepository() *ShopRepository {
	return &ShopRepository{}
}

// FindByEmail looks up a shop by its login email.
func (r *ShopRepository) FindByEmail(email string) (models.Shop, error) {
	var shop models.Shop
	err := orm.DB().Model(&models.Shop{}).Where("email = ?", email).First(&shop)
	return shop, err
}

// FindByID looks up a shop by primary key.
func (r *ShopRepository) FindByID(id uint) (models.Shop, error) {
	var shop models.Shop
	err := orm.DB().Model(&models.Shop{}).Where("id = ?", id).First(&shop)
	return shop, err
}

// LicenseExists reports whether a shop is already registered with licenseID.
func (r *ShopRepository) LicenseExists(licenseID string) (bool, error) {
	n, err := orm.DB().Model(&models.Shop{}).Where("license_id = ?", licenseID).Count()
	return n > 0, err
}

// Create persists a new shop record.
func (r *ShopRepository) Create(shop *models.Shop) error {
	return orm.DB().Create(shop)
}

// All returns one page of shops, newest first.
func (r *ShopRepository) All(page, perPage int) ([]models.Shop, orm.Pagination, error) {
	var shops []models.Shop
	p, err := orm.DB().Model(&models.Shop{}).Order("id desc").Paginate(page, perPage, &shops)
	return shops, p, err
}
