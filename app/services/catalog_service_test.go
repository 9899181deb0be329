package services_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/supplyco/app/services"
	"github.com/shashiranjanraj/supplyco/pkg/apperr"
)

func TestCatalogCreateUpdateDelete(t *testing.T) {
	db := setup(t)
	shop := seedShop(t, db)

	svc := services.NewCatalogService()

	product, err := svc.Create(shop.ID, services.ProductInput{
		Name: "Rice 5kg", Category: "grains", Price: 240, Stock: 100,
	})
	require.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.Equal(t, shop.ID, product.ShopID)

	product, err = svc.Update(shop.ID, product.ID, services.ProductInput{
		Name: "Rice 5kg Premium", Category: "grains", Price: 260, Stock: 80,
	})
	require.NoError(t, err)
	assert.Equal(t, "Rice 5kg Premium", product.Name)
	assert.InDelta(t, 260, product.Price, 0.001)

	require.NoError(t, svc.Delete(shop.ID, product.ID))

	_, err = svc.Get(product.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	// Deleting again reports not found.
	err = svc.Delete(shop.ID, product.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestCatalogOwnership(t *testing.T) {
	db := setup(t)
	owner := seedShop(t, db)
	intruder := seedShop(t, db)
	product := seedProduct(t, db, owner.ID, "Rice 5kg", 240)

	svc := services.NewCatalogService()

	_, err := svc.Update(intruder.ID, product.ID, services.ProductInput{Name: "Hijacked", Price: 1})
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	err = svc.Delete(intruder.ID, product.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound), "delete is scoped to the owning shop")

	// The product is untouched.
	got, err := svc.Get(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rice 5kg", got.Name)
}

func TestCatalogByShopAndSearch(t *testing.T) {
	db := setup(t)
	shopA := seedShop(t, db)
	shopB := seedShop(t, db)
	seedProduct(t, db, shopA.ID, "Basmati Rice", 300)
	seedProduct(t, db, shopA.ID, "Sunflower Oil", 130)
	seedProduct(t, db, shopB.ID, "Rice Flour", 60)

	svc := services.NewCatalogService()

	products, p, err := svc.ByShop(shopA.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, int64(2), p.TotalItems)

	_, _, err = svc.ByShop(9999, 1, 10)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	matches, _, err := svc.Search("rice", 1, 10)
	require.NoError(t, err)
	assert.Len(t, matches, 2, "search matches across shops, case-insensitive")
	for _, m := range matches {
		assert.True(t, strings.Contains(strings.ToLower(m.Name), "rice"))
	}
}

func TestCatalogAttachImageRejectsUnknownTypes(t *testing.T) {
	db := setup(t)
	shop := seedShop(t, db)
	product := seedProduct(t, db, shop.ID, "Rice 5kg", 240)

	svc := services.NewCatalogService()
	_, err := svc.AttachImage(shop.ID, product.ID, "malware.exe", strings.NewReader("payload"))
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}
