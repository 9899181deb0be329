package repositories

import (
	"github.com/shashiranjanraj/supplyco/app/models"
	"github.com/shashiranjanraj/supplyco/pkg/orm"
)

// CartRepository handles database operations for Cart and CartItem.
type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

// Find loads the customer's cart with items and their products. Reports
// gorm's not-found when the customer has never added an item.
func (r *CartRepository) Find(customerID uint) (models.Cart, error) {
	var cart models.Cart
	err := orm.DB().Model(&models.Cart{}).
		Where("customer_id = ?", customerID).
		Preload("Items").
		Preload("Items.Product").
		First(&cart)
	return cart, err
}

// FindOrCreate is Find plus creating the cart row on first use. Only item
// writes go through here; reads must not materialize a cart.
func (r *CartRepository) FindOrCreate(customerID uint) (models.Cart, error) {
	cart, err := r.Find(customerID)
	if err == nil {
		return cart, nil
	}
	if !orm.IsNotFound(err) {
		return cart, err
	}

	cart = models.Cart{CustomerID: customerID}
	if err := orm.DB().Create(&cart); err != nil {
		return cart, err
	}
	return cart, nil
}

// SaveItem inserts or updates a cart line.
func (r *CartRepository) SaveItem(item *models.CartItem) error {
	return orm.DB().Save(item)
}

// DeleteItem removes the line holding productID from the cart. Reports
// whether a row was actually removed, so callers can stay idempotent.
func (r *CartRepository) DeleteItem(cartID, productID uint) (bool, error) {
	n, err := orm.DB().
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{})
	return n > 0, err
}

// ClearItems removes every line from the cart.
func (r *CartRepository) ClearItems(cartID uint) error {
	_, err := orm.DB().
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{})
	return err
}

// DeleteItemTx is DeleteItem inside a transaction. The affected-row count is
// the consistency guard at checkout: zero rows means a concurrent request
// already consumed the line.
func (r *CartRepository) DeleteItemTx(tx *orm.Query, cartID, productID uint) (int64, error) {
	return tx.Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{})
}
