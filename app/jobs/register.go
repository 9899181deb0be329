package jobs

import (
	"fmt"

	"github.com/shashiranjanraj/supplyco/app/models"
	"github.com/shashiranjanraj/supplyco/pkg/cache"
	"github.com/shashiranjanraj/supplyco/pkg/event"
	"github.com/shashiranjanraj/supplyco/pkg/logger"
	"github.com/shashiranjanraj/supplyco/pkg/queue"
	"github.com/shashiranjanraj/supplyco/pkg/ws"
)

// Register wires job types into the queue and subscribes the listeners that
// translate domain events into queued jobs and live feed publishes. The hub
// may be nil when the websocket feed is disabled (CLI workers).
func Register(hub *ws.Hub) {
	queue.Register("jobs.OrderPlacedJob", func() queue.Job { return &OrderPlacedJob{} })
	queue.Register("jobs.OrderStatusChangedJob", func() queue.Job { return &OrderStatusChangedJob{} })

	event.Listen(event.OrderPlaced, func(payload interface{}) {
		order, ok := payload.(models.Order)
		if !ok {
			return
		}
		cache.Del(fmt.Sprintf("analytics:shop:%d", order.ShopID))
		if hub != nil {
			hub.Publish(ShopTopic(order.ShopID), orderFeedMessage("order.placed", order))
		}
		if err := queue.Dispatch(OrderPlacedJob{OrderID: order.ID}); err != nil {
			logger.Error("dispatch order_placed", "order", order.OrderID, "err", err)
		}
	})

	event.Listen(event.OrderStatusChanged, func(payload interface{}) {
		order, ok := payload.(models.Order)
		if !ok {
			return
		}
		cache.Del(fmt.Sprintf("analytics:shop:%d", order.ShopID))
		if hub != nil {
			hub.Publish(ShopTopic(order.ShopID), orderFeedMessage("order.status", order))
		}
		if err := queue.Dispatch(OrderStatusChangedJob{OrderID: order.ID, Status: order.Status}); err != nil {
			logger.Error("dispatch order_status_changed", "order", order.OrderID, "err", err)
		}
	})
}

// ShopTopic names the live feed topic for one shop.
func ShopTopic(shopID uint) string {
	return fmt.Sprintf("shop:%d", shopID)
}

func orderFeedMessage(kind string, order models.Order) map[string]interface{} {
	return map[string]interface{}{
		"event":    kind,
		"orderRef": order.OrderID,
		"status":   order.Status,
		"total":    order.Total,
		"shopId":   order.ShopID,
	}
}
