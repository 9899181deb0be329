package jobs

import (
	"fmt"

	"github.com/shashiranjanraj/supplyco/app/models"
	"github.com/shashiranjanraj/supplyco/app/repositories"
	"github.com/shashiranjanraj/supplyco/pkg/logger"
	"github.com/shashiranjanraj/supplyco/pkg/notification"
)

// OrderStatusChangedJob tells the customer their order moved to a new status.
type OrderStatusChangedJob struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

func (j OrderStatusChangedJob) Handle() error {
	order, err := repositories.NewOrderRepository().FindByID(j.OrderID)
	if err != nil {
		return fmt.Errorf("load order %d: %w", j.OrderID, err)
	}
	customer, err := repositories.NewCustomerRepository().FindByID(order.CustomerID)
	if err != nil {
		return fmt.Errorf("load customer %d: %w", order.CustomerID, err)
	}

	for _, e := range notification.Send(customer.Email, &statusUpdate{order: order, status: j.Status}) {
		logger.Warn("status notification failed", "order", order.OrderID, "err", e)
	}
	return nil
}

type statusUpdate struct {
	order  models.Order
	status string
}

func (n *statusUpdate) Via() []string { return []string{"mail", "database"} }

func (n *statusUpdate) ToMail() notification.MailData {
	return notification.MailData{
		Subject: fmt.Sprintf("Order %s is now %s", n.order.OrderID, n.status),
		Body: fmt.Sprintf("<p>Your order <strong>%s</strong> is now <strong>%s</strong>.</p>",
			n.order.OrderID, n.status),
		Text: fmt.Sprintf("Your order %s is now %s.", n.order.OrderID, n.status),
	}
}

func (n *statusUpdate) ToDatabase() notification.DatabaseData {
	return notification.DatabaseData{
		Type:    "order.status",
		Message: fmt.Sprintf("Order %s is now %s", n.order.OrderID, n.status),
		Data:    map[string]interface{}{"orderId": n.order.ID, "status": n.status},
	}
}
