package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/supplyco/app/services"
	"github.com/shashiranjanraj/supplyco/pkg/apperr"
	"github.com/shashiranjanraj/supplyco/pkg/auth"
	"github.com/shashiranjanraj/supplyco/pkg/rbac"
)

func TestRegisterCustomerAndLogin(t *testing.T) {
	setup(t)
	svc := services.NewAuthService()

	customer, token, err := svc.RegisterCustomer(services.RegisterCustomerInput{
		Name:         "Asha Nair",
		Email:        "asha@test.local",
		Password:     "secret-pass",
		RationCardID: "RC1234567890",
	})
	require.NoError(t, err)
	assert.NotZero(t, customer.ID)
	assert.NotEqual(t, "secret-pass", customer.Password, "password is stored hashed")

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, claims.IdentityID)
	assert.Equal(t, rbac.RoleCustomer, claims.Role)

	_, err = svc.Login(services.LoginInput{Email: "asha@test.local", Password: "secret-pass", Role: "customer"})
	require.NoError(t, err)
}

func TestRegisterCustomerRejectsBadRationCard(t *testing.T) {
	setup(t)
	svc := services.NewAuthService()

	for _, card := range []string{"short", "rc1234567890", "RC12345678901"} {
		_, _, err := svc.RegisterCustomer(services.RegisterCustomerInput{
			Name: "A B", Email: "x@test.local", Password: "secret-pass", RationCardID: card,
		})
		assert.True(t, apperr.IsKind(err, apperr.KindValidation), "card %q should be rejected", card)
	}
}

func TestRegisterCustomerDuplicates(t *testing.T) {
	setup(t)
	svc := services.NewAuthService()

	in := services.RegisterCustomerInput{
		Name: "Asha Nair", Email: "asha@test.local", Password: "secret-pass", RationCardID: "RC1234567890",
	}
	_, _, err := svc.RegisterCustomer(in)
	require.NoError(t, err)

	_, _, err = svc.RegisterCustomer(in)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict), "same ration card twice")

	in.RationCardID = "RC0000000001"
	_, _, err = svc.RegisterCustomer(in)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict), "same email twice")
}

func TestRegisterShop(t *testing.T) {
	setup(t)
	svc := services.NewAuthService()

	shop, token, err := svc.RegisterShop(services.RegisterShopInput{
		Name:      "Green Valley",
		Email:     "gv@test.local",
		Password:  "secret-pass",
		LicenseID: "LIC-GV-000001",
	})
	require.NoError(t, err)
	assert.NotZero(t, shop.ID)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, rbac.RoleShop, claims.Role)

	_, _, err = svc.RegisterShop(services.RegisterShopInput{
		Name: "Copycat", Email: "other@test.local", Password: "secret-pass", LicenseID: "LIC-GV-000001",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict), "duplicate license")

	_, _, err = svc.RegisterShop(services.RegisterShopInput{
		Name: "Tiny", Email: "tiny@test.local", Password: "secret-pass", LicenseID: "short",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation), "license too short")
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	setup(t)
	svc := services.NewAuthService()

	_, _, err := svc.RegisterCustomer(services.RegisterCustomerInput{
		Name: "Asha Nair", Email: "asha@test.local", Password: "secret-pass", RationCardID: "RC1234567890",
	})
	require.NoError(t, err)

	_, wrongPass := svc.Login(services.LoginInput{Email: "asha@test.local", Password: "nope", Role: "customer"})
	_, wrongMail := svc.Login(services.LoginInput{Email: "ghost@test.local", Password: "secret-pass", Role: "customer"})

	require.Error(t, wrongPass)
	require.Error(t, wrongMail)
	assert.Equal(t, wrongPass.Error(), wrongMail.Error())

	// A customer account cannot log in through the shop table.
	_, err = svc.Login(services.LoginInput{Email: "asha@test.local", Password: "secret-pass", Role: "shop_owner"})
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}
