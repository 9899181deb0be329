package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/supplyco/app/models"
	"github.com/shashiranjanraj/supplyco/app/routes"
	"github.com/shashiranjanraj/supplyco/pkg/notification"
	"github.com/shashiranjanraj/supplyco/pkg/testkit"
)

func setupAPI(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()
	db := testkit.SetupDB(t,
		&models.Customer{}, &models.Shop{}, &models.Product{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderLine{},
		&notification.Record{},
	)
	return routes.Build(nil).Handler(), db
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// registerCustomer signs up a customer through the API and returns its token.
func registerCustomer(t *testing.T, h http.Handler, seq int) string {
	t.Helper()
	rec := testkit.Request(t, h, http.MethodPost, "/api/auth/register/customer", map[string]any{
		"name":         "Test Customer",
		"email":        fmt.Sprintf("customer%d@test.local", seq),
		"password":     "secret-pass",
		"rationCardId": fmt.Sprintf("RC%010d", seq),
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var out struct {
		Token string `json:"token"`
	}
	testkit.DecodeData(t, rec, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func registerShop(t *testing.T, h http.Handler, seq int) string {
	t.Helper()
	rec := testkit.Request(t, h, http.MethodPost, "/api/auth/register/shop", map[string]any{
		"name":      "Test Shop",
		"email":     fmt.Sprintf("shop%d@test.local", seq),
		"password":  "secret-pass",
		"licenseId": fmt.Sprintf("LIC-%08d-X", seq),
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var out struct {
		Token string `json:"token"`
	}
	testkit.DecodeData(t, rec, &out)
	return out.Token
}

func createProduct(t *testing.T, h http.Handler, shopToken, name string, price float64) models.Product {
	t.Helper()
	rec := testkit.Request(t, h, http.MethodPost, "/api/shop/products", map[string]any{
		"name": name, "price": price, "stock": 50,
	}, bearer(shopToken))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var product models.Product
	testkit.DecodeData(t, rec, &product)
	return product
}

func TestAuthRequired(t *testing.T) {
	h, _ := setupAPI(t)

	rec := testkit.Request(t, h, http.MethodGet, "/api/cart", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = testkit.Request(t, h, http.MethodGet, "/api/cart", nil, bearer("garbage"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleSeparation(t *testing.T) {
	h, _ := setupAPI(t)
	customerToken := registerCustomer(t, h, 1)
	shopToken := registerShop(t, h, 1)

	// A shop cannot use the cart, a customer cannot manage products.
	rec := testkit.Request(t, h, http.MethodGet, "/api/cart", nil, bearer(shopToken))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = testkit.Request(t, h, http.MethodPost, "/api/shop/products",
		map[string]any{"name": "X", "price": 1}, bearer(customerToken))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCartFlow(t *testing.T) {
	h, _ := setupAPI(t)
	customerToken := registerCustomer(t, h, 2)
	shopToken := registerShop(t, h, 2)
	product := createProduct(t, h, shopToken, "Rice 5kg", 240)

	rec := testkit.Request(t, h, http.MethodPatch, "/api/cart",
		map[string]any{"productId": product.ID, "quantity": 250}, bearer(customerToken))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var cart models.Cart
	testkit.DecodeData(t, rec, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 100, cart.Items[0].Quantity, "quantity clamps at the API boundary too")

	rec = testkit.Request(t, h, http.MethodPatch, "/api/cart",
		map[string]any{"productId": product.ID, "quantity": -1}, bearer(customerToken))
	assert.Equal(t, http.StatusBadRequest, rec.Code, "non-positive quantity is a 400")

	rec = testkit.Request(t, h, http.MethodDelete,
		fmt.Sprintf("/api/cart/%d", product.ID), nil, bearer(customerToken))
	require.Equal(t, http.StatusOK, rec.Code)
	testkit.DecodeData(t, rec, &cart)
	assert.Empty(t, cart.Items)

	// DELETE /api/cart empties whatever is left in one call.
	rec = testkit.Request(t, h, http.MethodPatch, "/api/cart",
		map[string]any{"productId": product.ID, "quantity": 4}, bearer(customerToken))
	require.Equal(t, http.StatusOK, rec.Code)
	rec = testkit.Request(t, h, http.MethodDelete, "/api/cart", nil, bearer(customerToken))
	require.Equal(t, http.StatusOK, rec.Code)
	testkit.DecodeData(t, rec, &cart)
	assert.Empty(t, cart.Items)
}

func TestCheckoutAndShopOrderFlow(t *testing.T) {
	h, _ := setupAPI(t)
	customerToken := registerCustomer(t, h, 3)
	shopToken := registerShop(t, h, 3)
	product := createProduct(t, h, shopToken, "Rice 5kg", 240)

	// Empty-cart checkout is a 400.
	rec := testkit.Request(t, h, http.MethodPost, "/api/orders", nil, bearer(customerToken))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = testkit.Request(t, h, http.MethodPatch, "/api/cart",
		map[string]any{"productId": product.ID, "quantity": 2}, bearer(customerToken))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = testkit.Request(t, h, http.MethodPost, "/api/orders", nil, bearer(customerToken))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var placed struct {
		Orders []models.Order `json:"orders"`
	}
	testkit.DecodeData(t, rec, &placed)
	require.Len(t, placed.Orders, 1)
	order := placed.Orders[0]
	assert.InDelta(t, 480, order.Total, 0.001)

	// The shop sees the order and moves it forward.
	rec = testkit.Request(t, h, http.MethodGet,
		fmt.Sprintf("/api/shops/%d/orders?status=pending", order.ShopID), nil, bearer(shopToken))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var page struct {
		Data      []models.Order `json:"data"`
		Analytics struct {
			TotalSales float64 `json:"totalSales"`
		} `json:"analytics"`
		Pagination struct {
			CurrentPage  int   `json:"currentPage"`
			TotalPages   int   `json:"totalPages"`
			TotalItems   int64 `json:"totalItems"`
			ItemsPerPage int   `json:"itemsPerPage"`
		} `json:"pagination"`
	}
	testkit.DecodeData(t, rec, &page)
	require.Len(t, page.Data, 1)
	assert.Equal(t, int64(1), page.Pagination.TotalItems)
	assert.Equal(t, 1, page.Pagination.TotalPages)
	assert.InDelta(t, 480, page.Analytics.TotalSales, 0.001, "the order listing carries the sales summary")

	// Reading another shop's order book is forbidden.
	rec = testkit.Request(t, h, http.MethodGet,
		fmt.Sprintf("/api/shops/%d/orders", order.ShopID+1), nil, bearer(shopToken))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = testkit.Request(t, h, http.MethodPatch,
		fmt.Sprintf("/api/shop/orders/%d/status", order.ID),
		map[string]any{"status": "completed"}, bearer(shopToken))
	assert.Equal(t, http.StatusConflict, rec.Code, "pending cannot jump to completed")

	rec = testkit.Request(t, h, http.MethodPatch,
		fmt.Sprintf("/api/shop/orders/%d/status", order.ID),
		map[string]any{"status": "processing"}, bearer(shopToken))
	require.Equal(t, http.StatusOK, rec.Code)

	// Analytics reflect the order regardless of status.
	rec = testkit.Request(t, h, http.MethodGet, "/api/shop/analytics", nil, bearer(shopToken))
	require.Equal(t, http.StatusOK, rec.Code)
	var summary struct {
		TotalSales          float64 `json:"totalSales"`
		CompletedOrderCount int64   `json:"completedOrderCount"`
	}
	testkit.DecodeData(t, rec, &summary)
	assert.InDelta(t, 480, summary.TotalSales, 0.001)
	assert.Equal(t, int64(0), summary.CompletedOrderCount)
}

func TestPublicBrowse(t *testing.T) {
	h, _ := setupAPI(t)
	shopToken := registerShop(t, h, 4)
	createProduct(t, h, shopToken, "Basmati Rice", 300)
	createProduct(t, h, shopToken, "Sunflower Oil", 130)

	rec := testkit.Request(t, h, http.MethodGet, "/api/products?q=rice", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items []models.Product `json:"items"`
	}
	testkit.DecodeData(t, rec, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Basmati Rice", page.Items[0].Name)

	rec = testkit.Request(t, h, http.MethodGet, "/api/shops", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestValidationErrors(t *testing.T) {
	h, _ := setupAPI(t)

	rec := testkit.Request(t, h, http.MethodPost, "/api/auth/register/customer", map[string]any{
		"name": "A", "email": "", "password": "short",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env := testkit.DecodeEnvelope(t, rec)
	assert.NotEmpty(t, env.Errors, "field errors are reported")
}
