package services

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/shashiranjanraj/supplyco/app/models"
	"github.com/shashiranjanraj/supplyco/app/repositories"
	"github.com/shashiranjanraj/supplyco/pkg/apperr"
	"github.com/shashiranjanraj/supplyco/pkg/cache"
	"github.com/shashiranjanraj/supplyco/pkg/event"
	"github.com/shashiranjanraj/supplyco/pkg/orm"
	"github.com/shashiranjanraj/supplyco/pkg/storage"
)

const catalogTTL = 10 * time.Minute

// CatalogService manages shop product catalogues and the public browse
// surface.
type CatalogService struct {
	products *repositories.ProductRepository
	shops    *repositories.ShopRepository
}

func NewCatalogService() *CatalogService {
	return &CatalogService{
		products: repositories.NewProductRepository(),
		shops:    repositories.NewShopRepository(),
	}
}

type ProductInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description"`
	Category    string  `json:"category" validate:"max=100"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Active      *bool   `json:"active"`
}

func catalogCacheKey(shopID uint) string {
	return fmt.Sprintf("catalog:shop:%d", shopID)
}

// Create adds a product to the shop's catalogue.
func (s *CatalogService) Create(shopID uint, in ProductInput) (models.Product, error) {
	product := models.Product{
		ShopID:      shopID,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		Stock:       in.Stock,
		Active:      true,
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if err := s.products.Create(&product); err != nil {
		return models.Product{}, apperr.Internal(err)
	}
	s.invalidate(shopID)
	return withImageURL(product), nil
}

// Update rewrites an existing product owned by the shop.
func (s *CatalogService) Update(shopID, productID uint, in ProductInput) (models.Product, error) {
	product, err := s.ownedProduct(shopID, productID)
	if err != nil {
		return models.Product{}, err
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Category = in.Category
	product.Price = in.Price
	product.Stock = in.Stock
	if in.Active != nil {
		product.Active = *in.Active
	}

	if err := s.products.Update(&product); err != nil {
		return models.Product{}, apperr.Internal(err)
	}
	s.invalidate(shopID)
	return withImageURL(product), nil
}

// Delete removes a product from the shop's catalogue. Placed orders keep
// their frozen copy of the product line, so deletion never touches orders.
func (s *CatalogService) Delete(shopID, productID uint) error {
	ok, err := s.products.Delete(productID, shopID)
	if err != nil {
		return apperr.Internal(err)
	}
	if !ok {
		return apperr.NotFound("product %d not found", productID)
	}
	s.invalidate(shopID)
	return nil
}

// AttachImage stores the uploaded image on the configured disk and records
// its key on the product. An earlier image is deleted best-effort.
func (s *CatalogService) AttachImage(shopID, productID uint, filename string, r io.Reader) (models.Product, error) {
	product, err := s.ownedProduct(shopID, productID)
	if err != nil {
		return models.Product{}, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return models.Product{}, apperr.Validation("unsupported image type %q", ext)
	}

	key := fmt.Sprintf("products/%d/%d%s", shopID, time.Now().UnixNano(), ext)
	if err := storage.PutStream(key, r); err != nil {
		return models.Product{}, apperr.Internal(err)
	}

	if product.ImagePath != "" {
		_ = storage.Delete(product.ImagePath)
	}
	product.ImagePath = key
	if err := s.products.Update(&product); err != nil {
		return models.Product{}, apperr.Internal(err)
	}
	s.invalidate(shopID)
	return withImageURL(product), nil
}

// Get loads one product for the public surface.
func (s *CatalogService) Get(productID uint) (models.Product, error) {
	product, err := s.products.FindByID(productID)
	if orm.IsNotFound(err) {
		return models.Product{}, apperr.NotFound("product %d not found", productID)
	}
	if err != nil {
		return models.Product{}, apperr.Internal(err)
	}
	return withImageURL(product), nil
}

// ByShop returns one page of a shop's catalogue.
func (s *CatalogService) ByShop(shopID uint, page, perPage int) ([]models.Product, orm.Pagination, error) {
	if _, err := s.shops.FindByID(shopID); err != nil {
		if orm.IsNotFound(err) {
			return nil, orm.Pagination{}, apperr.NotFound("shop %d not found", shopID)
		}
		return nil, orm.Pagination{}, apperr.Internal(err)
	}
	products, p, err := s.products.ByShop(shopID, page, perPage)
	if err != nil {
		return nil, orm.Pagination{}, apperr.Internal(err)
	}
	return withImageURLs(products), p, nil
}

// Search matches products by name or category across every shop.
func (s *CatalogService) Search(q string, page, perPage int) ([]models.Product, orm.Pagination, error) {
	products, p, err := s.products.Search(q, page, perPage)
	if err != nil {
		return nil, orm.Pagination{}, apperr.Internal(err)
	}
	return withImageURLs(products), p, nil
}

// Shops lists registered shops for the public directory.
func (s *CatalogService) Shops(page, perPage int) ([]models.Shop, orm.Pagination, error) {
	shops, p, err := s.shops.All(page, perPage)
	if err != nil {
		return nil, orm.Pagination{}, apperr.Internal(err)
	}
	return shops, p, nil
}

func (s *CatalogService) ownedProduct(shopID, productID uint) (models.Product, error) {
	product, err := s.products.FindByID(productID)
	if orm.IsNotFound(err) {
		return models.Product{}, apperr.NotFound("product %d not found", productID)
	}
	if err != nil {
		return models.Product{}, apperr.Internal(err)
	}
	if product.ShopID != shopID {
		return models.Product{}, apperr.Forbidden("product %d does not belong to this shop", productID)
	}
	return product, nil
}

func (s *CatalogService) invalidate(shopID uint) {
	cache.Del(catalogCacheKey(shopID))
	event.Fire(event.ProductChanged, shopID)
}

func withImageURL(p models.Product) models.Product {
	if p.ImagePath != "" {
		p.ImageURL = storage.URL(p.ImagePath)
	}
	return p
}

func withImageURLs(ps []models.Product) []models.Product {
	for i := range ps {
		ps[i] = withImageURL(ps[i])
	}
	return ps
}
