// Package routes declares the HTTP surface. Handlers come from controllers;
// cross-cutting behavior (auth, roles, rate limits) is attached here.
package routes

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/supplyco/app/controllers"
	appgraphql "github.com/shashiranjanraj/supplyco/app/graphql"
	"github.com/shashiranjanraj/supplyco/pkg/ctx"
	"github.com/shashiranjanraj/supplyco/pkg/logger"
	"github.com/shashiranjanraj/supplyco/pkg/metrics"
	"github.com/shashiranjanraj/supplyco/pkg/middleware"
	"github.com/shashiranjanraj/supplyco/pkg/rbac"
	"github.com/shashiranjanraj/supplyco/pkg/router"
	"github.com/shashiranjanraj/supplyco/pkg/ws"
)

// Build assembles the full router. hub feeds the live order websocket; pass
// nil to disable the feed endpoints.
func Build(hub *ws.Hub) *router.Router {
	r := router.New()

	r.Use(
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		metrics.Middleware(),
	)

	auth := controllers.NewAuthController()
	cart := controllers.NewCartController()
	orders := controllers.NewOrderController()
	products := controllers.NewProductController()
	shops := controllers.NewShopController()
	notifications := controllers.NewNotificationController()

	r.Get("/healthz", "health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok")) //nolint:errcheck
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	api := r.Group("/api")

	// Public surface.
	authGroup := api.Group("/auth", middleware.RateLimit(20, time.Minute))
	authGroup.Post("/register/customer", "auth.register.customer", ctx.Wrap(auth.RegisterCustomer))
	authGroup.Post("/register/shop", "auth.register.shop", ctx.Wrap(auth.RegisterShop))
	authGroup.Post("/login", "auth.login", ctx.Wrap(auth.Login))

	api.Get("/shops", "shops.index", ctx.Wrap(shops.Index))
	api.Get("/shops/{id}/products", "shops.products", ctx.Wrap(shops.Products))
	api.Get("/products", "products.search", ctx.Wrap(shops.Search))
	api.Get("/products/{id}", "products.show", ctx.Wrap(shops.ShowProduct))

	if handler, err := appgraphql.Handler(); err == nil {
		api.Post("/graphql", "graphql", handler)
	} else {
		logger.Error("graphql schema", "err", err)
	}

	// Any authenticated identity.
	authed := api.Group("", middleware.Auth)
	authed.Get("/auth/me", "auth.me", ctx.Wrap(auth.Profile))
	authed.Get("/notifications", "notifications.index", ctx.Wrap(notifications.Index))
	authed.Post("/notifications/{id}/read", "notifications.read", ctx.Wrap(notifications.MarkRead))

	// Customer surface.
	customer := api.Group("", middleware.Auth, rbac.HasRole(rbac.RoleCustomer))
	customer.Get("/cart", "cart.show", ctx.Wrap(cart.Show))
	customer.Patch("/cart", "cart.upsert", ctx.Wrap(cart.UpsertItem))
	customer.Delete("/cart/{productId}", "cart.remove", ctx.Wrap(cart.RemoveItem))
	customer.Delete("/cart", "cart.clear", ctx.Wrap(cart.Clear))
	customer.Post("/orders", "orders.store", ctx.Wrap(orders.Checkout))
	customer.Get("/orders", "orders.mine", ctx.Wrap(orders.Mine))
	customer.Get("/orders/{id}", "orders.show", ctx.Wrap(orders.Show))
	customer.Post("/orders/{id}/cancel", "orders.cancel", ctx.Wrap(orders.Cancel))

	// Shop surface.
	shop := api.Group("/shop", middleware.Auth, rbac.HasRole(rbac.RoleShop))
	shop.Get("/products", "shop.products.index", ctx.Wrap(products.Index))
	shop.Post("/products", "shop.products.store", ctx.Wrap(products.Store))
	shop.Put("/products/{id}", "shop.products.update", ctx.Wrap(products.Update))
	shop.Delete("/products/{id}", "shop.products.destroy", ctx.Wrap(products.Destroy))
	shop.Post("/products/{id}/image", "shop.products.image", ctx.Wrap(products.UploadImage))
	shop.Patch("/orders/{id}/status", "shop.orders.status", ctx.Wrap(orders.UpdateStatus))
	shop.Get("/analytics", "shop.analytics", ctx.Wrap(orders.Analytics))

	// The order book lives under the shop's public id; the handler checks
	// the caller owns that shop.
	owner := api.Group("", middleware.Auth, rbac.HasRole(rbac.RoleShop))
	owner.Get("/shops/{id}/orders", "shops.orders", ctx.Wrap(orders.ShopOrders))

	if hub != nil {
		feed := controllers.NewFeedController(hub)
		shop.Get("/orders/ws", "shop.orders.feed", ctx.Wrap(feed.Orders))
		shop.Get("/orders/stream", "shop.orders.stream", ctx.Wrap(feed.OrdersSSE))
	}

	return r
}
