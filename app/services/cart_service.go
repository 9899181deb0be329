package services

import (
	"github.com/shashiranjanraj/supplyco/app/models"
	"github.com/shashiranjanraj/supplyco/app/repositories"
	"github.com/shashiranjanraj/supplyco/pkg/apperr"
	"github.com/shashiranjanraj/supplyco/pkg/orm"
)

// CartService owns cart mutation. Quantities are clamped, a product appears
// at most once per cart, and removal is idempotent.
type CartService struct {
	carts    *repositories.CartRepository
	products *repositories.ProductRepository
}

func NewCartService() *CartService {
	return &CartService{
		carts:    repositories.NewCartRepository(),
		products: repositories.NewProductRepository(),
	}
}

// Get returns the customer's cart. Before the first item add there is no
// cart row yet; reads answer with an empty cart instead of creating one.
func (s *CartService) Get(customerID uint) (models.Cart, error) {
	cart, err := s.carts.Find(customerID)
	if orm.IsNotFound(err) {
		return models.Cart{CustomerID: customerID, Items: []models.CartItem{}}, nil
	}
	if err != nil {
		return models.Cart{}, apperr.Internal(err)
	}
	return cart, nil
}

// UpsertItemInput is the payload for adding or updating a cart line.
type UpsertItemInput struct {
	ProductID uint `json:"productId" validate:"required,gt=0"`
	Quantity  int  `json:"quantity" validate:"required"`
}

// UpsertItem adds the product to the cart or, when a line already exists,
// replaces its quantity. Quantities above 100 are clamped down, not rejected,
// so a request for 500 stores 100. Non-positive quantities are rejected.
func (s *CartService) UpsertItem(customerID uint, in UpsertItemInput) (models.Cart, error) {
	if in.Quantity <= 0 {
		return models.Cart{}, apperr.Validation("quantity must be a positive integer")
	}

	product, err := s.products.FindByID(in.ProductID)
	if orm.IsNotFound(err) {
		return models.Cart{}, apperr.NotFound("product %d not found", in.ProductID)
	}
	if err != nil {
		return models.Cart{}, apperr.Internal(err)
	}
	if !product.Active {
		return models.Cart{}, apperr.NotFound("product %d not found", in.ProductID)
	}

	cart, err := s.carts.FindOrCreate(customerID)
	if err != nil {
		return models.Cart{}, apperr.Internal(err)
	}

	qty := models.ClampQuantity(in.Quantity)

	if item, ok := cart.ItemFor(product.ID); ok {
		item.Quantity = qty
		if err := s.carts.SaveItem(item); err != nil {
			return models.Cart{}, apperr.Internal(err)
		}
	} else {
		line := models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: qty}
		if err := s.carts.SaveItem(&line); err != nil {
			return models.Cart{}, apperr.Internal(err)
		}
	}

	cart, err = s.carts.FindOrCreate(customerID)
	if err != nil {
		return models.Cart{}, apperr.Internal(err)
	}
	return cart, nil
}

// RemoveItem deletes the product's line from the cart. Removing a product
// that is not in the cart, or from a customer with no cart yet, succeeds, so
// retries are harmless.
func (s *CartService) RemoveItem(customerID, productID uint) (models.Cart, error) {
	cart, err := s.carts.Find(customerID)
	if orm.IsNotFound(err) {
		return models.Cart{CustomerID: customerID, Items: []models.CartItem{}}, nil
	}
	if err != nil {
		return models.Cart{}, apperr.Internal(err)
	}

	if _, err := s.carts.DeleteItem(cart.ID, productID); err != nil {
		return models.Cart{}, apperr.Internal(err)
	}

	cart, err = s.carts.Find(customerID)
	if err != nil {
		return models.Cart{}, apperr.Internal(err)
	}
	return cart, nil
}

// Clear empties the cart. The cart row itself stays in place.
func (s *CartService) Clear(customerID uint) (models.Cart, error) {
	cart, err := s.carts.Find(customerID)
	if orm.IsNotFound(err) {
		return models.Cart{CustomerID: customerID, Items: []models.CartItem{}}, nil
	}
	if err != nil {
		return models.Cart{}, apperr.Internal(err)
	}

	if err := s.carts.ClearItems(cart.ID); err != nil {
		return models.Cart{}, apperr.Internal(err)
	}

	cart.Items = []models.CartItem{}
	return cart, nil
}
