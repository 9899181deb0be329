package controllers

import (
	"github.com/shashiranjanraj/supplyco/app/services"
	"github.com/shashiranjanraj/supplyco/pkg/ctx"
)

// ShopController is the public, unauthenticated browse surface.
type ShopController struct {
	catalog *services.CatalogService
}

func NewShopController() *ShopController {
	return &ShopController{catalog: services.NewCatalogService()}
}

// Index handles GET /api/shops.
func (sc *ShopController) Index(c *ctx.Context) {
	page, perPage := pageParams(c)
	shops, p, err := sc.catalog.Shops(page, perPage)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(paged(shops, p))
}

// Products handles GET /api/shops/{id}/products.
func (sc *ShopController) Products(c *ctx.Context) {
	shopID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	page, perPage := pageParams(c)
	products, p, err := sc.catalog.ByShop(shopID, page, perPage)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(paged(products, p))
}

// ShowProduct handles GET /api/products/{id}.
func (sc *ShopController) ShowProduct(c *ctx.Context) {
	productID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	product, err := sc.catalog.Get(productID)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(product)
}

// Search handles GET /api/products?q=.
func (sc *ShopController) Search(c *ctx.Context) {
	page, perPage := pageParams(c)
	products, p, err := sc.catalog.Search(c.Query("q"), page, perPage)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(paged(products, p))
}
