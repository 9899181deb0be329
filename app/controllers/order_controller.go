package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/supplyco/app/services"
	"github.com/shashiranjanraj/supplyco/pkg/apperr"
	"github.com/shashiranjanraj/supplyco/pkg/ctx"
	"github.com/shashiranjanraj/supplyco/pkg/middleware"
)

type OrderController struct {
	orders    *services.OrderService
	analytics *services.AnalyticsService
}

func NewOrderController() *OrderController {
	return &OrderController{
		orders:    services.NewOrderService(),
		analytics: services.NewAnalyticsService(),
	}
}

// Checkout handles POST /api/orders. The customer's whole cart becomes one
// order per shop, or nothing happens at all. An optional body total is
// checked against the server-computed sum.
func (oc *OrderController) Checkout(c *ctx.Context) {
	customerID, ok := middleware.UserIDFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	var in struct {
		Total *float64 `json:"total"`
	}
	if body, err := c.Body(); err == nil && len(body) > 0 {
		if err := json.Unmarshal(body, &in); err != nil {
			c.Error(http.StatusBadRequest, "malformed request body")
			return
		}
	}

	orders, err := oc.orders.Checkout(customerID, in.Total)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(map[string]interface{}{"orders": orders})
}

// Mine handles GET /api/orders for the customer.
func (oc *OrderController) Mine(c *ctx.Context) {
	customerID, ok := middleware.UserIDFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	page, perPage := pageParams(c)
	orders, p, err := oc.orders.ListForCustomer(customerID, page, perPage)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(paged(orders, p))
}

// Show handles GET /api/orders/{id} for the owning customer.
func (oc *OrderController) Show(c *ctx.Context) {
	customerID, ok := middleware.UserIDFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	order, err := oc.orders.GetForCustomer(customerID, orderID)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(order)
}

// Cancel handles POST /api/orders/{id}/cancel for the owning customer.
func (oc *OrderController) Cancel(c *ctx.Context) {
	customerID, ok := middleware.UserIDFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	order, err := oc.orders.CancelByCustomer(customerID, orderID)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(order)
}

// ShopOrders handles GET /api/shops/{id}/orders with optional ?status=
// filter. Only the shop named in the path may read its own order book. The
// sales summary rides along so dashboards get both in one call.
func (oc *OrderController) ShopOrders(c *ctx.Context) {
	callerID, ok := middleware.UserIDFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}
	shopID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if shopID != callerID {
		c.Fail(apperr.Forbidden("shop %d is not yours", shopID))
		return
	}

	page, perPage := pageParams(c)
	orders, p, err := oc.orders.ListForShop(shopID, c.Query("status"), page, perPage)
	if err != nil {
		c.Fail(err)
		return
	}

	summary, err := oc.analytics.ForShop(shopID)
	if err != nil {
		c.Fail(err)
		return
	}

	c.Success(map[string]interface{}{
		"data":       orders,
		"analytics":  summary,
		"pagination": p,
	})
}

// UpdateStatus handles PATCH /api/shop/orders/{id}/status.
func (oc *OrderController) UpdateStatus(c *ctx.Context) {
	shopID, ok := middleware.UserIDFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var in struct {
		Status string `json:"status"`
	}
	if !c.BindJSON(&in) {
		return
	}

	order, err := oc.orders.UpdateStatus(shopID, orderID, in.Status)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(order)
}

// Analytics handles GET /api/shop/analytics.
func (oc *OrderController) Analytics(c *ctx.Context) {
	shopID, ok := middleware.UserIDFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	summary, err := oc.analytics.ForShop(shopID)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(summary)
}
