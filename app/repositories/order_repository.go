package repositories

import (
	"time"

	"github.com/shashiranjanraj/supplyco/app/models"
	"github.com/shashiranjanraj/supplyco/pkg/orm"
)

// OrderRepository handles database operations for Order and OrderLine.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// CreateTx persists an order with its lines inside a transaction.
func (r *OrderRepository) CreateTx(tx *orm.Query, order *models.Order) error {
	return tx.Create(order)
}

// FindByID loads an order with its lines by primary key.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).
		Where("id = ?", id).
		Preload("Lines").
		First(&order)
	return order, err
}

// FindByOrderID loads an order by its public reference ("ORD-...").
func (r *OrderRepository) FindByOrderID(ref string) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).
		Where("order_id = ?", ref).
		Preload("Lines").
		First(&order)
	return order, err
}

// ByShop returns one page of a shop's orders, optionally filtered by status,
// newest first.
func (r *OrderRepository) ByShop(shopID uint, status string, page, perPage int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	query := orm.DB().Model(&models.Order{}).Where("shop_id = ?", shopID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	p, err := query.Order("id desc").Preload("Lines").Paginate(page, perPage, &orders)
	return orders, p, err
}

// ByCustomer returns one page of a customer's orders, newest first.
func (r *OrderRepository) ByCustomer(customerID uint, page, perPage int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	p, err := orm.DB().Model(&models.Order{}).
		Where("customer_id = ?", customerID).
		Order("id desc").
		Preload("Lines").
		Paginate(page, perPage, &orders)
	return orders, p, err
}

// UpdateStatus writes a new status to the order row.
func (r *OrderRepository) UpdateStatus(order *models.Order, status string) error {
	order.Status = status
	return orm.DB().Model(order).Updates(map[string]interface{}{"status": status})
}

// SumTotals adds up Total across all of a shop's orders, every status
// included. Cancelled orders still count toward lifetime sales volume.
func (r *OrderRepository) SumTotals(shopID uint) (float64, error) {
	var row struct{ Sum float64 }
	err := orm.DB().Gorm().
		Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0) as sum").
		Where("shop_id = ?", shopID).
		Scan(&row).Error
	return row.Sum, err
}

// CreatedSince returns a shop's orders created strictly after t, oldest
// first. Feeds the SSE order stream.
func (r *OrderRepository) CreatedSince(shopID uint, t time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().Model(&models.Order{}).
		Where("shop_id = ? AND created_at > ?", shopID, t).
		Order("created_at ASC").
		Preload("Lines").
		Get(&orders)
	return orders, err
}

// CountByStatus counts a shop's orders in one status.
func (r *OrderRepository) CountByStatus(shopID uint, status string) (int64, error) {
	return orm.DB().Model(&models.Order{}).
		Where("shop_id = ? AND status = ?", shopID, status).
		Count()
}
