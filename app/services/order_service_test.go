package services_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/supplyco/app/models"
	"github.com/shashiranjanraj/supplyco/app/repositories"
	"github.com/shashiranjanraj/supplyco/app/services"
	"github.com/shashiranjanraj/supplyco/pkg/apperr"
	"github.com/shashiranjanraj/supplyco/pkg/orm"
)

func fillCart(t *testing.T, customerID uint, lines map[uint]int) {
	t.Helper()
	carts := services.NewCartService()
	for productID, qty := range lines {
		_, err := carts.UpsertItem(customerID, services.UpsertItemInput{ProductID: productID, Quantity: qty})
		require.NoError(t, err)
	}
}

func TestCheckoutCreatesOrderWithFrozenPrices(t *testing.T) {
	db := setup(t)
	customer := seedCustomer(t, db)
	shop := seedShop(t, db)
	rice := seedProduct(t, db, shop.ID, "Rice 5kg", 240)
	oil := seedProduct(t, db, shop.ID, "Oil 1L", 130)

	fillCart(t, customer.ID, map[uint]int{rice.ID: 2, oil.ID: 1})

	svc := services.NewOrderService()
	orders, err := svc.Checkout(customer.ID, nil)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	order := orders[0]
	assert.Equal(t, shop.ID, order.ShopID)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.InDelta(t, 2*240+130, order.Total, 0.001)
	require.Len(t, order.Lines, 2)

	// Raising the catalogue price afterwards must not change the order.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", rice.ID).Update("price", 999).Error)
	reloaded, err := svc.GetForCustomer(customer.ID, order.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2*240+130, reloaded.Total, 0.001)
	for _, line := range reloaded.Lines {
		if line.ProductID == rice.ID {
			assert.InDelta(t, 240, line.Price, 0.001, "line price is a checkout-time snapshot")
		}
	}

	// The cart is empty after checkout.
	cart, err := services.NewCartService().Get(customer.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCheckoutSplitsPerShop(t *testing.T) {
	db := setup(t)
	customer := seedCustomer(t, db)
	shopA := seedShop(t, db)
	shopB := seedShop(t, db)
	fromA := seedProduct(t, db, shopA.ID, "Rice 5kg", 240)
	fromB := seedProduct(t, db, shopB.ID, "Sugar 1kg", 48)

	fillCart(t, customer.ID, map[uint]int{fromA.ID: 1, fromB.ID: 3})

	orders, err := services.NewOrderService().Checkout(customer.ID, nil)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	byShop := map[uint]models.Order{}
	for _, o := range orders {
		byShop[o.ShopID] = o
	}
	require.Contains(t, byShop, shopA.ID)
	require.Contains(t, byShop, shopB.ID)
	assert.InDelta(t, 240, byShop[shopA.ID].Total, 0.001)
	assert.InDelta(t, 3*48, byShop[shopB.ID].Total, 0.001)
	assert.NotEqual(t, byShop[shopA.ID].OrderID, byShop[shopB.ID].OrderID)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := setup(t)
	customer := seedCustomer(t, db)

	_, err := services.NewOrderService().Checkout(customer.ID, nil)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestCheckoutMissingProductFailsWhole(t *testing.T) {
	db := setup(t)
	customer := seedCustomer(t, db)
	shop := seedShop(t, db)
	rice := seedProduct(t, db, shop.ID, "Rice 5kg", 240)
	doomed := seedProduct(t, db, shop.ID, "Limited Item", 80)

	fillCart(t, customer.ID, map[uint]int{rice.ID: 1, doomed.ID: 1})

	// The product disappears between carting and checkout.
	require.NoError(t, db.Unscoped().Delete(&models.Product{}, doomed.ID).Error)

	_, err := services.NewOrderService().Checkout(customer.ID, nil)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	// Nothing was ordered and the surviving line is untouched.
	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
	cart, err := services.NewCartService().Get(customer.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

func TestCheckoutInactiveProductFailsWhole(t *testing.T) {
	db := setup(t)
	customer := seedCustomer(t, db)
	shop := seedShop(t, db)
	rice := seedProduct(t, db, shop.ID, "Rice 5kg", 240)
	retired := seedProduct(t, db, shop.ID, "Seasonal Item", 60)

	fillCart(t, customer.ID, map[uint]int{rice.ID: 1, retired.ID: 1})

	// The shop retires the product after it was carted.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", retired.ID).Update("active", false).Error)

	_, err := services.NewOrderService().Checkout(customer.ID, nil)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

// Two checkouts race over one cart state. Whichever interleaving wins, the
// cart may fund at most one set of orders: the loser either trips the
// rows-affected guard inside its transaction (conflict) or reads the cart
// after the winner already emptied it (empty cart). Note the contrast with
// plain cart writes, where concurrent upserts by the same customer are
// deliberately last-write-wins.
func TestConcurrentCheckoutsProduceOneOrder(t *testing.T) {
	db := setup(t)
	customer := seedCustomer(t, db)
	shop := seedShop(t, db)
	product := seedProduct(t, db, shop.ID, "Rice 5kg", 240)

	fillCart(t, customer.ID, map[uint]int{product.ID: 2})

	svc := services.NewOrderService()

	start := make(chan struct{})
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.Checkout(customer.ID, nil)
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	var won, lost int
	for err := range errs {
		if err == nil {
			won++
			continue
		}
		lost++
		conflictOrEmpty := apperr.IsKind(err, apperr.KindConflict) ||
			apperr.IsKind(err, apperr.KindValidation)
		assert.True(t, conflictOrEmpty, "loser failed with %v", err)
	}
	assert.Equal(t, 1, won, "exactly one checkout wins the cart")
	assert.Equal(t, 1, lost)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "one cart state never funds two orders")
}

// The guard itself: consuming a cart line that a committed checkout already
// consumed affects zero rows, which is the signal the service turns into a
// conflict and a rollback.
func TestCheckoutLineGuardSeesLostRace(t *testing.T) {
	db := setup(t)
	customer := seedCustomer(t, db)
	shop := seedShop(t, db)
	product := seedProduct(t, db, shop.ID, "Rice 5kg", 240)

	fillCart(t, customer.ID, map[uint]int{product.ID: 2})

	carts := repositories.NewCartRepository()
	cart, err := carts.Find(customer.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	err = orm.Transaction(func(tx *orm.Query) error {
		n, err := carts.DeleteItemTx(tx, cart.ID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n, "first consumer takes the line")

		n, err = carts.DeleteItemTx(tx, cart.ID, product.ID)
		require.NoError(t, err)
		assert.Zero(t, n, "second consumer is told the line is gone")
		return nil
	})
	require.NoError(t, err)
}

func TestCheckoutAdvisoryTotal(t *testing.T) {
	db := setup(t)
	customer := seedCustomer(t, db)
	shop := seedShop(t, db)
	rice := seedProduct(t, db, shop.ID, "Rice 5kg", 240)

	fillCart(t, customer.ID, map[uint]int{rice.ID: 2})

	svc := services.NewOrderService()

	wrong := 479.0
	_, err := svc.Checkout(customer.ID, &wrong)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation), "a tampered client total is rejected")

	cart, err := services.NewCartService().Get(customer.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1, "a rejected checkout leaves the cart alone")

	right := 480.0
	orders, err := svc.Checkout(customer.ID, &right)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.InDelta(t, 480, orders[0].Total, 0.001)
}

func placeOrder(t *testing.T, customerID uint, productID uint) models.Order {
	t.Helper()
	fillCart(t, customerID, map[uint]int{productID: 1})
	orders, err := services.NewOrderService().Checkout(customerID, nil)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	return orders[0]
}

func TestStatusMachineForwardOnly(t *testing.T) {
	db := setup(t)
	customer := seedCustomer(t, db)
	shop := seedShop(t, db)
	product := seedProduct(t, db, shop.ID, "Rice 5kg", 240)
	order := placeOrder(t, customer.ID, product.ID)

	svc := services.NewOrderService()

	// pending cannot jump straight to completed.
	_, err := svc.UpdateStatus(shop.ID, order.ID, models.OrderCompleted)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	updated, err := svc.UpdateStatus(shop.ID, order.ID, models.OrderProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.OrderProcessing, updated.Status)

	updated, err = svc.UpdateStatus(shop.ID, order.ID, models.OrderCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCompleted, updated.Status)

	// Terminal states never move again.
	_, err = svc.UpdateStatus(shop.ID, order.ID, models.OrderCancelled)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestUpdateStatusRejectsUnknownAndForeign(t *testing.T) {
	db := setup(t)
	customer := seedCustomer(t, db)
	shop := seedShop(t, db)
	other := seedShop(t, db)
	product := seedProduct(t, db, shop.ID, "Rice 5kg", 240)
	order := placeOrder(t, customer.ID, product.ID)

	svc := services.NewOrderService()

	_, err := svc.UpdateStatus(shop.ID, order.ID, "shipped")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.UpdateStatus(other.ID, order.ID, models.OrderProcessing)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	_, err = svc.UpdateStatus(shop.ID, 9999, models.OrderProcessing)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestCancelByCustomer(t *testing.T) {
	db := setup(t)
	customer := seedCustomer(t, db)
	stranger := seedCustomer(t, db)
	shop := seedShop(t, db)
	product := seedProduct(t, db, shop.ID, "Rice 5kg", 240)
	order := placeOrder(t, customer.ID, product.ID)

	svc := services.NewOrderService()

	_, err := svc.CancelByCustomer(stranger.ID, order.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	cancelled, err := svc.CancelByCustomer(customer.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)

	// A processing order is out of the customer's hands.
	second := placeOrder(t, customer.ID, product.ID)
	_, err = svc.UpdateStatus(shop.ID, second.ID, models.OrderProcessing)
	require.NoError(t, err)
	_, err = svc.CancelByCustomer(customer.ID, second.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestListForShopFiltersAndPaginates(t *testing.T) {
	db := setup(t)
	customer := seedCustomer(t, db)
	shop := seedShop(t, db)
	product := seedProduct(t, db, shop.ID, "Rice 5kg", 240)

	svc := services.NewOrderService()
	first := placeOrder(t, customer.ID, product.ID)
	placeOrder(t, customer.ID, product.ID)
	placeOrder(t, customer.ID, product.ID)

	_, err := svc.UpdateStatus(shop.ID, first.ID, models.OrderProcessing)
	require.NoError(t, err)

	all, p, err := svc.ListForShop(shop.ID, "", 1, 2)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, int64(3), p.TotalItems)
	assert.Equal(t, 2, p.TotalPages)

	pending, _, err := svc.ListForShop(shop.ID, models.OrderPending, 1, 10)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	_, _, err = svc.ListForShop(shop.ID, "bogus", 1, 10)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestAnalyticsCountsEveryStatus(t *testing.T) {
	db := setup(t)
	customer := seedCustomer(t, db)
	shop := seedShop(t, db)
	product := seedProduct(t, db, shop.ID, "Rice 5kg", 240)

	orders := services.NewOrderService()

	completed := placeOrder(t, customer.ID, product.ID)
	_, err := orders.UpdateStatus(shop.ID, completed.ID, models.OrderProcessing)
	require.NoError(t, err)
	_, err = orders.UpdateStatus(shop.ID, completed.ID, models.OrderCompleted)
	require.NoError(t, err)

	cancelled := placeOrder(t, customer.ID, product.ID)
	_, err = orders.CancelByCustomer(customer.ID, cancelled.ID)
	require.NoError(t, err)

	placeOrder(t, customer.ID, product.ID) // stays pending

	summary, err := services.NewAnalyticsService().ForShop(shop.ID)
	require.NoError(t, err)

	// Lifetime volume includes cancelled and pending orders.
	assert.InDelta(t, 3*240, summary.TotalSales, 0.001)
	assert.Equal(t, int64(1), summary.CompletedOrderCount)
}

func TestAnalyticsEmptyShop(t *testing.T) {
	db := setup(t)
	shop := seedShop(t, db)

	summary, err := services.NewAnalyticsService().ForShop(shop.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalSales)
	assert.Zero(t, summary.CompletedOrderCount)
}
