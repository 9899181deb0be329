package jobs

import (
	"fmt"

	"github.com/shashiranjanraj/supplyco/app/models"
	"github.com/shashiranjanraj/supplyco/app/repositories"
	"github.com/shashiranjanraj/supplyco/config"
	"github.com/shashiranjanraj/supplyco/pkg/logger"
	"github.com/shashiranjanraj/supplyco/pkg/notification"
)

// OrderPlacedJob notifies the customer and the shop after checkout. It runs
// on the queue so a slow mail server never delays the checkout response.
type OrderPlacedJob struct {
	OrderID uint `json:"order_id"`
}

func (j OrderPlacedJob) Handle() error {
	order, err := repositories.NewOrderRepository().FindByID(j.OrderID)
	if err != nil {
		return fmt.Errorf("load order %d: %w", j.OrderID, err)
	}

	customer, err := repositories.NewCustomerRepository().FindByID(order.CustomerID)
	if err != nil {
		return fmt.Errorf("load customer %d: %w", order.CustomerID, err)
	}
	shop, err := repositories.NewShopRepository().FindByID(order.ShopID)
	if err != nil {
		return fmt.Errorf("load shop %d: %w", order.ShopID, err)
	}

	for _, errs := range [][]error{
		notification.Send(customer.Email, &orderConfirmation{order: order, shop: shop}),
		notification.Send(shop.Email, &newOrderAlert{order: order, customer: customer}),
	} {
		for _, e := range errs {
			logger.Warn("order notification failed", "order", order.OrderID, "err", e)
		}
	}
	return nil
}

// orderConfirmation goes to the customer who placed the order.
type orderConfirmation struct {
	order models.Order
	shop  models.Shop
}

func (n *orderConfirmation) Via() []string { return []string{"mail", "database"} }

func (n *orderConfirmation) ToMail() notification.MailData {
	return notification.MailData{
		Subject: fmt.Sprintf("Order %s confirmed", n.order.OrderID),
		Body: fmt.Sprintf(
			"<p>Your order <strong>%s</strong> at %s has been placed.</p><p>Total: %.2f</p>",
			n.order.OrderID, n.shop.Name, n.order.Total,
		),
		Text: fmt.Sprintf("Your order %s at %s has been placed. Total: %.2f",
			n.order.OrderID, n.shop.Name, n.order.Total),
	}
}

func (n *orderConfirmation) ToDatabase() notification.DatabaseData {
	return notification.DatabaseData{
		Type:    "order.placed",
		Message: fmt.Sprintf("Order %s placed at %s", n.order.OrderID, n.shop.Name),
		Data:    map[string]interface{}{"orderId": n.order.ID, "orderRef": n.order.OrderID},
	}
}

// newOrderAlert goes to the shop that received the order. The webhook
// channel lets shops plug in their own fulfilment systems.
type newOrderAlert struct {
	order    models.Order
	customer models.Customer
}

func (n *newOrderAlert) Via() []string {
	channels := []string{"mail", "database"}
	if config.ShopWebhookURL() != "" {
		channels = append(channels, "webhook")
	}
	return channels
}

func (n *newOrderAlert) ToMail() notification.MailData {
	return notification.MailData{
		Subject: fmt.Sprintf("New order %s", n.order.OrderID),
		Body: fmt.Sprintf(
			"<p>You received order <strong>%s</strong> from %s.</p><p>Total: %.2f, %d line(s).</p>",
			n.order.OrderID, n.customer.Name, n.order.Total, len(n.order.Lines),
		),
		Text: fmt.Sprintf("You received order %s from %s. Total: %.2f",
			n.order.OrderID, n.customer.Name, n.order.Total),
	}
}

func (n *newOrderAlert) ToDatabase() notification.DatabaseData {
	return notification.DatabaseData{
		Type:    "order.received",
		Message: fmt.Sprintf("New order %s from %s", n.order.OrderID, n.customer.Name),
		Data:    map[string]interface{}{"orderId": n.order.ID, "orderRef": n.order.OrderID},
	}
}

func (n *newOrderAlert) ToWebhook() notification.WebhookData {
	return notification.WebhookData{
		URL: config.ShopWebhookURL(),
		Payload: map[string]interface{}{
			"event":    "order.placed",
			"orderRef": n.order.OrderID,
			"shopId":   n.order.ShopID,
			"total":    n.order.Total,
			"status":   n.order.Status,
		},
	}
}
