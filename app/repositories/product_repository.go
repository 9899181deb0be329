package repositories

import (
	"time"

	"github.com/shashiranjanraj/supplyco/app/models"
	"github.com/shashiranjanraj/supplyco/pkg/orm"
)

// ProductRepository handles database operations for Product.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := orm.DB().Model(&models.Product{}).Where("id = ?", id).First(&product)
	return product, err
}

// FindManyByIDs loads all products whose ID is in ids.
func (r *ProductRepository) FindManyByIDs(ids []uint) ([]models.Product, error) {
	var products []models.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := orm.DB().Model(&models.Product{}).Where("id IN ?", ids).Get(&products)
	return products, err
}

// ByShop returns one page of a shop's catalogue.
func (r *ProductRepository) ByShop(shopID uint, page, perPage int) ([]models.Product, orm.Pagination, error) {
	var products []models.Product
	p, err := orm.DB().Model(&models.Product{}).
		Where("shop_id = ?", shopID).
		Order("id desc").
		Paginate(page, perPage, &products)
	return products, p, err
}

// Search returns one page of products matching a name or category fragment
// across all shops.
func (r *ProductRepository) Search(q string, page, perPage int) ([]models.Product, orm.Pagination, error) {
	var products []models.Product
	query := orm.DB().Model(&models.Product{})
	if q != "" {
		like := "%" + q + "%"
		query = query.Where("name LIKE ? OR category LIKE ?", like, like)
	}
	p, err := query.Order("id desc").Paginate(page, perPage, &products)
	return products, p, err
}

// CachedByShop is ByShop for the first default page, served read-through from
// Redis. Used on the public storefront where the same page dominates traffic.
func (r *ProductRepository) CachedByShop(shopID uint, key string, ttl time.Duration) ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().Model(&models.Product{}).
		Where("shop_id = ?", shopID).
		Order("id desc").
		Limit(orm.DefaultPerPage).
		Cache(key, ttl, &products)
	return products, err
}

// Create persists a new product record.
func (r *ProductRepository) Create(product *models.Product) error {
	return orm.DB().Create(product)
}

// Update persists changes to an existing product.
func (r *ProductRepository) Update(product *models.Product) error {
	return orm.DB().Save(product)
}

// Delete removes a product and reports whether a row was deleted.
func (r *ProductRepository) Delete(id, shopID uint) (bool, error) {
	n, err := orm.DB().
		Where("id = ? AND shop_id = ?", id, shopID).
		Delete(&models.Product{})
	return n > 0, err
}
