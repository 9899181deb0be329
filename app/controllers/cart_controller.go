package controllers

import (
	"github.com/shashiranjanraj/supplyco/app/services"
	"github.com/shashiranjanraj/supplyco/pkg/ctx"
	"github.com/shashiranjanraj/supplyco/pkg/middleware"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController() *CartController {
	return &CartController{carts: services.NewCartService()}
}

// Show handles GET /api/cart.
func (cc *CartController) Show(c *ctx.Context) {
	customerID, ok := middleware.UserIDFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	cart, err := cc.carts.Get(customerID)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(cart)
}

// UpsertItem handles PATCH /api/cart. Adding a product already in the
// cart replaces that line's quantity.
func (cc *CartController) UpsertItem(c *ctx.Context) {
	customerID, ok := middleware.UserIDFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	var in services.UpsertItemInput
	if !c.BindJSON(&in) {
		return
	}

	cart, err := cc.carts.UpsertItem(customerID, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(cart)
}

// RemoveItem handles DELETE /api/cart/{productId}. Removing a product
// that is not in the cart succeeds with the unchanged cart.
func (cc *CartController) RemoveItem(c *ctx.Context) {
	customerID, ok := middleware.UserIDFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	productID, ok := paramUint(c, "productId")
	if !ok {
		return
	}

	cart, err := cc.carts.RemoveItem(customerID, productID)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(cart)
}

// Clear handles DELETE /api/cart.
func (cc *CartController) Clear(c *ctx.Context) {
	customerID, ok := middleware.UserIDFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	cart, err := cc.carts.Clear(customerID)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(cart)
}
