package controllers

import (
	"time"

	"github.com/shashiranjanraj/supplyco/app/jobs"
	"github.com/shashiranjanraj/supplyco/app/repositories"
	"github.com/shashiranjanraj/supplyco/pkg/ctx"
	"github.com/shashiranjanraj/supplyco/pkg/middleware"
	"github.com/shashiranjanraj/supplyco/pkg/sse"
	"github.com/shashiranjanraj/supplyco/pkg/ws"
)

// FeedController serves the live order feed for shops, over websocket for
// interactive dashboards and over SSE for simpler consumers.
type FeedController struct {
	hub    *ws.Hub
	orders *repositories.OrderRepository
}

func NewFeedController(hub *ws.Hub) *FeedController {
	return &FeedController{hub: hub, orders: repositories.NewOrderRepository()}
}

// Orders handles GET /api/shop/orders/ws. The shop only ever sees its own
// topic; there is no client-side topic selection.
func (fc *FeedController) Orders(c *ctx.Context) {
	shopID, ok := middleware.UserIDFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}
	ws.Upgrade(c.W, c.R, fc.hub, jobs.ShopTopic(shopID))
}

// OrdersSSE handles GET /api/shop/orders/stream. It polls for orders created
// after the connection opened and pushes them as "order" events, with a
// heartbeat comment to keep intermediaries from closing the stream.
func (fc *FeedController) OrdersSSE(c *ctx.Context) {
	shopID, ok := middleware.UserIDFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	stream := sse.New(c.W, c.R)
	if stream == nil {
		return
	}

	since := time.Now()
	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	for !stream.IsClosed() {
		select {
		case <-c.Context().Done():
			return
		case <-ticker.C:
		}

		orders, err := fc.orders.CreatedSince(shopID, since)
		if err != nil {
			stream.Comment("fetch error")
			continue
		}
		if len(orders) == 0 {
			stream.Comment("keepalive")
			continue
		}
		since = orders[len(orders)-1].CreatedAt
		for _, order := range orders {
			if err := stream.Send("order", order); err != nil {
				return
			}
		}
	}
}
