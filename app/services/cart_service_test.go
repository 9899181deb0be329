package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/supplyco/app/models"
	"github.com/shashiranjanraj/supplyco/app/services"
	"github.com/shashiranjanraj/supplyco/pkg/apperr"
)

func TestUpsertItemAddsLine(t *testing.T) {
	db := setup(t)
	customer := seedCustomer(t, db)
	shop := seedShop(t, db)
	product := seedProduct(t, db, shop.ID, "Rice 5kg", 240)

	svc := services.NewCartService()
	cart, err := svc.UpsertItem(customer.ID, services.UpsertItemInput{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, product.ID, cart.Items[0].ProductID)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestUpsertItemReplacesExistingLine(t *testing.T) {
	db := setup(t)
	customer := seedCustomer(t, db)
	shop := seedShop(t, db)
	product := seedProduct(t, db, shop.ID, "Rice 5kg", 240)

	svc := services.NewCartService()
	_, err := svc.UpsertItem(customer.ID, services.UpsertItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	cart, err := svc.UpsertItem(customer.ID, services.UpsertItemInput{ProductID: product.ID, Quantity: 7})
	require.NoError(t, err)

	// Still one line, quantity replaced rather than summed. Concurrent
	// upserts of the same line are last-write-wins on purpose; checkout is
	// the only cart operation with stronger isolation.
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestUpsertItemClampsQuantity(t *testing.T) {
	db := setup(t)
	customer := seedCustomer(t, db)
	shop := seedShop(t, db)
	product := seedProduct(t, db, shop.ID, "Rice 5kg", 240)

	svc := services.NewCartService()

	cart, err := svc.UpsertItem(customer.ID, services.UpsertItemInput{ProductID: product.ID, Quantity: 500})
	require.NoError(t, err)
	assert.Equal(t, 100, cart.Items[0].Quantity, "oversized quantity clamps to the maximum")

	_, err = svc.UpsertItem(customer.ID, services.UpsertItemInput{ProductID: product.ID, Quantity: -4})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation), "non-positive quantity is rejected")

	_, err = svc.UpsertItem(customer.ID, services.UpsertItemInput{ProductID: product.ID, Quantity: 0})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestUpsertItemInactiveProduct(t *testing.T) {
	db := setup(t)
	customer := seedCustomer(t, db)
	shop := seedShop(t, db)
	product := seedProduct(t, db, shop.ID, "Rice 5kg", 240)

	require.NoError(t, db.Model(&product).Update("active", false).Error)

	svc := services.NewCartService()
	_, err := svc.UpsertItem(customer.ID, services.UpsertItemInput{ProductID: product.ID, Quantity: 1})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound), "retired products are not addable")
}

func TestClearEmptiesCart(t *testing.T) {
	db := setup(t)
	customer := seedCustomer(t, db)
	shop := seedShop(t, db)
	rice := seedProduct(t, db, shop.ID, "Rice 5kg", 240)
	oil := seedProduct(t, db, shop.ID, "Sunflower Oil 1L", 130)

	svc := services.NewCartService()
	_, err := svc.UpsertItem(customer.ID, services.UpsertItemInput{ProductID: rice.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = svc.UpsertItem(customer.ID, services.UpsertItemInput{ProductID: oil.ID, Quantity: 1})
	require.NoError(t, err)

	cart, err := svc.Clear(customer.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	again, err := svc.Get(customer.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID, "clearing keeps the cart row")
	assert.Empty(t, again.Items)
}

func TestUpsertItemUnknownProduct(t *testing.T) {
	db := setup(t)
	customer := seedCustomer(t, db)

	svc := services.NewCartService()
	_, err := svc.UpsertItem(customer.ID, services.UpsertItemInput{ProductID: 9999, Quantity: 1})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	db := setup(t)
	customer := seedCustomer(t, db)
	shop := seedShop(t, db)
	product := seedProduct(t, db, shop.ID, "Rice 5kg", 240)

	svc := services.NewCartService()
	_, err := svc.UpsertItem(customer.ID, services.UpsertItemInput{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	cart, err := svc.RemoveItem(customer.ID, product.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Removing again, or removing something never added, still succeeds.
	cart, err = svc.RemoveItem(customer.ID, product.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.RemoveItem(customer.ID, 424242)
	assert.NoError(t, err)
}

func TestRemoveThenReAdd(t *testing.T) {
	db := setup(t)
	customer := seedCustomer(t, db)
	shop := seedShop(t, db)
	product := seedProduct(t, db, shop.ID, "Rice 5kg", 240)

	svc := services.NewCartService()
	_, err := svc.UpsertItem(customer.ID, services.UpsertItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = svc.RemoveItem(customer.ID, product.ID)
	require.NoError(t, err)

	cart, err := svc.UpsertItem(customer.ID, services.UpsertItemInput{ProductID: product.ID, Quantity: 5})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartIsCreatedOnFirstAddNotOnRead(t *testing.T) {
	db := setup(t)
	customer := seedCustomer(t, db)
	shop := seedShop(t, db)
	product := seedProduct(t, db, shop.ID, "Rice 5kg", 240)

	svc := services.NewCartService()

	// Reads and removals answer with an empty cart but persist nothing.
	cart, err := svc.Get(customer.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, cart.CustomerID)
	assert.Empty(t, cart.Items)

	_, err = svc.RemoveItem(customer.ID, product.ID)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&count).Error)
	assert.Zero(t, count, "no cart row before the first item add")

	// The first add materializes the row.
	_, err = svc.UpsertItem(customer.ID, services.UpsertItemInput{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Cart{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
