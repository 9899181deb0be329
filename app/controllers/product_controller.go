package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/supplyco/app/services"
	"github.com/shashiranjanraj/supplyco/pkg/ctx"
	"github.com/shashiranjanraj/supplyco/pkg/middleware"
)

// maxImageSize caps product image uploads at 5 MiB.
const maxImageSize = 5 << 20

// ProductController is the shop-facing catalogue management surface.
type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController() *ProductController {
	return &ProductController{catalog: services.NewCatalogService()}
}

// Index handles GET /api/shop/products for the authenticated shop.
func (pc *ProductController) Index(c *ctx.Context) {
	shopID, ok := middleware.UserIDFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	page, perPage := pageParams(c)
	products, p, err := pc.catalog.ByShop(shopID, page, perPage)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(paged(products, p))
}

// Store handles POST /api/shop/products.
func (pc *ProductController) Store(c *ctx.Context) {
	shopID, ok := middleware.UserIDFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	var in services.ProductInput
	if !c.BindJSON(&in) {
		return
	}

	product, err := pc.catalog.Create(shopID, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(product)
}

// Update handles PUT /api/shop/products/{id}.
func (pc *ProductController) Update(c *ctx.Context) {
	shopID, ok := middleware.UserIDFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}
	productID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var in services.ProductInput
	if !c.BindJSON(&in) {
		return
	}

	product, err := pc.catalog.Update(shopID, productID, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(product)
}

// Destroy handles DELETE /api/shop/products/{id}.
func (pc *ProductController) Destroy(c *ctx.Context) {
	shopID, ok := middleware.UserIDFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}
	productID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := pc.catalog.Delete(shopID, productID); err != nil {
		c.Fail(err)
		return
	}
	c.Success(map[string]interface{}{"deleted": true})
}

// UploadImage handles POST /api/shop/products/{id}/image as multipart form
// data with an "image" field.
func (pc *ProductController) UploadImage(c *ctx.Context) {
	shopID, ok := middleware.UserIDFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}
	productID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	c.R.Body = http.MaxBytesReader(c.W, c.R.Body, maxImageSize)
	file, header, err := c.R.FormFile("image")
	if err != nil {
		c.Error(http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	product, err := pc.catalog.AttachImage(shopID, productID, header.Filename, file)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(product)
}
