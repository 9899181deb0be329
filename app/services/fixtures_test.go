package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/supplyco/app/models"
	"github.com/shashiranjanraj/supplyco/pkg/notification"
	"github.com/shashiranjanraj/supplyco/pkg/testkit"
)

// setup opens an isolated database with the full marketplace schema.
func setup(t *testing.T) *gorm.DB {
	t.Helper()
	return testkit.SetupDB(t,
		&models.Customer{}, &models.Shop{}, &models.Product{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderLine{},
		&notification.Record{},
	)
}

var fixtureSeq int

func seedCustomer(t *testing.T, db *gorm.DB) models.Customer {
	t.Helper()
	fixtureSeq++
	c := models.Customer{
		Name:         fmt.Sprintf("Customer %d", fixtureSeq),
		Email:        fmt.Sprintf("customer%d@test.local", fixtureSeq),
		Password:     "not-a-real-hash",
		RationCardID: fmt.Sprintf("RC%010d", fixtureSeq),
	}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func seedShop(t *testing.T, db *gorm.DB) models.Shop {
	t.Helper()
	fixtureSeq++
	s := models.Shop{
		Name:      fmt.Sprintf("Shop %d", fixtureSeq),
		Email:     fmt.Sprintf("shop%d@test.local", fixtureSeq),
		Password:  "not-a-real-hash",
		LicenseID: fmt.Sprintf("LIC-%08d", fixtureSeq),
	}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func seedProduct(t *testing.T, db *gorm.DB, shopID uint, name string, price float64) models.Product {
	t.Helper()
	p := models.Product{ShopID: shopID, Name: name, Price: price, Stock: 50, Active: true}
	require.NoError(t, db.Create(&p).Error)
	return p
}
