package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/shashiranjanraj/supplyco/app/models"
	"github.com/shashiranjanraj/supplyco/app/repositories"
	"github.com/shashiranjanraj/supplyco/pkg/apperr"
	"github.com/shashiranjanraj/supplyco/pkg/collection"
	"github.com/shashiranjanraj/supplyco/pkg/event"
	"github.com/shashiranjanraj/supplyco/pkg/metrics"
	"github.com/shashiranjanraj/supplyco/pkg/orm"
)

// OrderService owns checkout and the order status machine.
type OrderService struct {
	orders   *repositories.OrderRepository
	carts    *repositories.CartRepository
	products *repositories.ProductRepository
}

func NewOrderService() *OrderService {
	return &OrderService{
		orders:   repositories.NewOrderRepository(),
		carts:    repositories.NewCartRepository(),
		products: repositories.NewProductRepository(),
	}
}

// Checkout converts the customer's entire cart into orders, one per distinct
// shop, inside a single transaction. Either every line becomes an order line
// and the cart empties, or nothing changes.
//
// Unit prices are copied from the catalogue at this moment; later product
// edits never alter a placed order.
//
// advisoryTotal, when non-nil, is the client's idea of the grand total. The
// server recomputes the real value and rejects a mismatch; the client figure
// is never trusted.
func (s *OrderService) Checkout(customerID uint, advisoryTotal *float64) ([]models.Order, error) {
	cart, err := s.carts.Find(customerID)
	if err != nil && !orm.IsNotFound(err) {
		return nil, apperr.Internal(err)
	}
	if orm.IsNotFound(err) || len(cart.Items) == 0 {
		metrics.CheckoutFailures.WithLabelValues("empty_cart").Inc()
		return nil, apperr.Validation("cart is empty")
	}

	// Every referenced product must still exist and be on sale. A single
	// missing product fails the whole checkout; there are no partial orders.
	var grandTotal float64
	for _, item := range cart.Items {
		if item.Product.ID == 0 || !item.Product.Active {
			metrics.CheckoutFailures.WithLabelValues("missing_product").Inc()
			return nil, apperr.NotFound("product %d is no longer available", item.ProductID)
		}
		grandTotal += item.Product.Price * float64(item.Quantity)
	}

	if advisoryTotal != nil && math.Abs(*advisoryTotal-grandTotal) > 0.005 {
		metrics.CheckoutFailures.WithLabelValues("total_mismatch").Inc()
		return nil, apperr.Validation("order total does not match the cart")
	}

	byShop := collection.GroupBy(cart.Items, func(i models.CartItem) uint {
		return i.Product.ShopID
	})

	// Deterministic order creation sequence.
	shopIDs := make([]uint, 0, len(byShop))
	for id := range byShop {
		shopIDs = append(shopIDs, id)
	}
	sort.Slice(shopIDs, func(i, j int) bool { return shopIDs[i] < shopIDs[j] })

	var placed []models.Order

	err = orm.Transaction(func(tx *orm.Query) error {
		// Consume the cart lines first. A delete that affects zero rows
		// means another request emptied the line between our read and this
		// write, so the whole checkout rolls back.
		for _, item := range cart.Items {
			n, err := s.carts.DeleteItemTx(tx, cart.ID, item.ProductID)
			if err != nil {
				return err
			}
			if n == 0 {
				metrics.CheckoutFailures.WithLabelValues("conflict").Inc()
				return apperr.Conflict("cart changed during checkout, please retry")
			}
		}

		for _, shopID := range shopIDs {
			items := byShop[shopID]

			lines := collection.Map(items, func(i models.CartItem) models.OrderLine {
				return models.OrderLine{
					ProductID: i.ProductID,
					Name:      i.Product.Name,
					Price:     i.Product.Price,
					Quantity:  i.Quantity,
				}
			})
			total := collection.SumBy(lines, func(l models.OrderLine) float64 {
				return l.LineTotal()
			})

			order := models.Order{
				OrderID:    models.NewOrderID(),
				CustomerID: customerID,
				ShopID:     shopID,
				Total:      total,
				Status:     models.OrderPending,
				Lines:      lines,
			}
			if err := s.orders.CreateTx(tx, &order); err != nil {
				return err
			}
			placed = append(placed, order)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.From(err)
	}

	for _, order := range placed {
		metrics.OrdersPlaced.WithLabelValues(fmt.Sprint(order.ShopID)).Inc()
		event.Fire(event.OrderPlaced, order)
	}
	return placed, nil
}

// UpdateStatus moves one of the shop's orders through the status machine.
// Orders only move forward: pending to processing or cancelled, processing to
// completed or cancelled. Terminal states never change.
func (s *OrderService) UpdateStatus(shopID, orderID uint, status string) (models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return models.Order{}, apperr.Validation("unknown status %q", status)
	}

	order, err := s.orders.FindByID(orderID)
	if orm.IsNotFound(err) {
		return models.Order{}, apperr.NotFound("order %d not found", orderID)
	}
	if err != nil {
		return models.Order{}, apperr.Internal(err)
	}
	if order.ShopID != shopID {
		return models.Order{}, apperr.Forbidden("order %d does not belong to this shop", orderID)
	}

	if !models.CanTransition(order.Status, status) {
		return models.Order{}, apperr.Conflict("cannot move order from %s to %s", order.Status, status)
	}

	if err := s.orders.UpdateStatus(&order, status); err != nil {
		return models.Order{}, apperr.Internal(err)
	}

	metrics.OrderStatusChanges.WithLabelValues(status).Inc()
	event.Fire(event.OrderStatusChanged, order)
	return order, nil
}

// CancelByCustomer lets the owning customer cancel an order that is still
// pending. Once a shop starts processing, only the shop can cancel.
func (s *OrderService) CancelByCustomer(customerID, orderID uint) (models.Order, error) {
	order, err := s.orders.FindByID(orderID)
	if orm.IsNotFound(err) {
		return models.Order{}, apperr.NotFound("order %d not found", orderID)
	}
	if err != nil {
		return models.Order{}, apperr.Internal(err)
	}
	if order.CustomerID != customerID {
		return models.Order{}, apperr.Forbidden("order %d does not belong to this customer", orderID)
	}
	if order.Status != models.OrderPending {
		return models.Order{}, apperr.Conflict("only pending orders can be cancelled")
	}

	if err := s.orders.UpdateStatus(&order, models.OrderCancelled); err != nil {
		return models.Order{}, apperr.Internal(err)
	}

	metrics.OrderStatusChanges.WithLabelValues(models.OrderCancelled).Inc()
	event.Fire(event.OrderStatusChanged, order)
	return order, nil
}

// ListForShop returns one page of the shop's orders, optionally filtered by
// status.
func (s *OrderService) ListForShop(shopID uint, status string, page, perPage int) ([]models.Order, orm.Pagination, error) {
	if status != "" && !models.ValidOrderStatus(status) {
		return nil, orm.Pagination{}, apperr.Validation("unknown status %q", status)
	}
	orders, p, err := s.orders.ByShop(shopID, status, page, perPage)
	if err != nil {
		return nil, orm.Pagination{}, apperr.Internal(err)
	}
	return orders, p, nil
}

// ListForCustomer returns one page of the customer's own orders.
func (s *OrderService) ListForCustomer(customerID uint, page, perPage int) ([]models.Order, orm.Pagination, error) {
	orders, p, err := s.orders.ByCustomer(customerID, page, perPage)
	if err != nil {
		return nil, orm.Pagination{}, apperr.Internal(err)
	}
	return orders, p, nil
}

// GetForCustomer loads one order owned by the customer.
func (s *OrderService) GetForCustomer(customerID, orderID uint) (models.Order, error) {
	order, err := s.orders.FindByID(orderID)
	if orm.IsNotFound(err) {
		return models.Order{}, apperr.NotFound("order %d not found", orderID)
	}
	if err != nil {
		return models.Order{}, apperr.Internal(err)
	}
	if order.CustomerID != customerID {
		return models.Order{}, apperr.Forbidden("order %d does not belong to this customer", orderID)
	}
	return order, nil
}
