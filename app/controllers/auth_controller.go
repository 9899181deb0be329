package controllers

import (
	"github.com/shashiranjanraj/supplyco/app/services"
	"github.com/shashiranjanraj/supplyco/pkg/ctx"
	"github.com/shashiranjanraj/supplyco/pkg/middleware"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{auth: services.NewAuthService()}
}

// RegisterCustomer handles POST /api/auth/register/customer.
func (a *AuthController) RegisterCustomer(c *ctx.Context) {
	var in services.RegisterCustomerInput
	if !c.BindJSON(&in) {
		return
	}

	customer, token, err := a.auth.RegisterCustomer(in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(map[string]interface{}{"customer": customer, "token": token})
}

// RegisterShop handles POST /api/auth/register/shop.
func (a *AuthController) RegisterShop(c *ctx.Context) {
	var in services.RegisterShopInput
	if !c.BindJSON(&in) {
		return
	}

	shop, token, err := a.auth.RegisterShop(in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(map[string]interface{}{"shop": shop, "token": token})
}

// Login handles POST /api/auth/login.
func (a *AuthController) Login(c *ctx.Context) {
	var in services.LoginInput
	if !c.BindJSON(&in) {
		return
	}

	token, err := a.auth.Login(in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(map[string]string{"token": token})
}

// Profile handles GET /api/auth/me for either role.
func (a *AuthController) Profile(c *ctx.Context) {
	identity, ok := middleware.IdentityFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	profile, err := a.auth.Profile(identity.ID, identity.Role)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(profile)
}
