package services

import (
	"regexp"

	"github.com/shashiranjanraj/supplyco/app/models"
	"github.com/shashiranjanraj/supplyco/app/repositories"
	"github.com/shashiranjanraj/supplyco/pkg/apperr"
	"github.com/shashiranjanraj/supplyco/pkg/auth"
	"github.com/shashiranjanraj/supplyco/pkg/orm"
	"github.com/shashiranjanraj/supplyco/pkg/rbac"
)

// rationCardPattern: exactly 12 upper-case letters or digits.
var rationCardPattern = regexp.MustCompile(`^[A-Z0-9]{12}$`)

const minLicenseLen = 12

// AuthService registers and authenticates customers and shops.
type AuthService struct {
	customers *repositories.CustomerRepository
	shops     *repositories.ShopRepository
}

func NewAuthService() *AuthService {
	return &AuthService{
		customers: repositories.NewCustomerRepository(),
		shops:     repositories.NewShopRepository(),
	}
}

// RegisterCustomerInput is the payload for customer sign-up.
type RegisterCustomerInput struct {
	Name         string `json:"name" validate:"required,min=2,max=255"`
	Email        string `json:"email" validate:"required,max=255"`
	Password     string `json:"password" validate:"required,min=8"`
	RationCardID string `json:"rationCardId" validate:"required,size=12"`
	Mobile       string `json:"mobile" validate:"nullable,max=20"`
}

// RegisterCustomer creates a customer account. The ration card must be 12
// upper-case alphanumerics and not already registered.
func (s *AuthService) RegisterCustomer(in RegisterCustomerInput) (models.Customer, string, error) {
	if !rationCardPattern.MatchString(in.RationCardID) {
		return models.Customer{}, "", apperr.Validation("rationCardId must be 12 upper-case letters or digits")
	}

	taken, err := s.customers.RationCardExists(in.RationCardID)
	if err != nil {
		return models.Customer{}, "", apperr.Internal(err)
	}
	if taken {
		return models.Customer{}, "", apperr.Conflict("ration card %s is already registered", in.RationCardID)
	}
	if _, err := s.customers.FindByEmail(in.Email); err == nil {
		return models.Customer{}, "", apperr.Conflict("email %s is already registered", in.Email)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.Customer{}, "", apperr.Internal(err)
	}

	customer := models.Customer{
		Name:         in.Name,
		Email:        in.Email,
		Password:     hash,
		RationCardID: in.RationCardID,
		Mobile:       in.Mobile,
	}
	if err := s.customers.Create(&customer); err != nil {
		return models.Customer{}, "", apperr.Internal(err)
	}

	token, err := auth.GenerateToken(customer.ID, rbac.RoleCustomer)
	if err != nil {
		return models.Customer{}, "", apperr.Internal(err)
	}
	return customer, token, nil
}

// RegisterShopInput is the payload for shop sign-up.
type RegisterShopInput struct {
	Name      string `json:"name" validate:"required,min=2,max=255"`
	Email     string `json:"email" validate:"required,max=255"`
	Password  string `json:"password" validate:"required,min=8"`
	LicenseID string `json:"licenseId" validate:"required,min=12,max=64"`
	Address   string `json:"address" validate:"nullable"`
	Mobile    string `json:"mobile" validate:"nullable,max=20"`
}

// RegisterShop creates a shop account with a unique supplier license.
func (s *AuthService) RegisterShop(in RegisterShopInput) (models.Shop, string, error) {
	if len(in.LicenseID) < minLicenseLen {
		return models.Shop{}, "", apperr.Validation("licenseId must be at least %d characters", minLicenseLen)
	}

	taken, err := s.shops.LicenseExists(in.LicenseID)
	if err != nil {
		return models.Shop{}, "", apperr.Internal(err)
	}
	if taken {
		return models.Shop{}, "", apperr.Conflict("license %s is already registered", in.LicenseID)
	}
	if _, err := s.shops.FindByEmail(in.Email); err == nil {
		return models.Shop{}, "", apperr.Conflict("email %s is already registered", in.Email)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.Shop{}, "", apperr.Internal(err)
	}

	shop := models.Shop{
		Name:      in.Name,
		Email:     in.Email,
		Password:  hash,
		LicenseID: in.LicenseID,
		Address:   in.Address,
		Mobile:    in.Mobile,
	}
	if err := s.shops.Create(&shop); err != nil {
		return models.Shop{}, "", apperr.Internal(err)
	}

	token, err := auth.GenerateToken(shop.ID, rbac.RoleShop)
	if err != nil {
		return models.Shop{}, "", apperr.Internal(err)
	}
	return shop, token, nil
}

// LoginInput is the payload for both customer and shop login.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,in=customer,shop_owner"`
}

// Login authenticates against the table matching Role and returns a signed
// token. Wrong email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(in LoginInput) (string, error) {
	switch in.Role {
	case rbac.RoleCustomer:
		customer, err := s.customers.FindByEmail(in.Email)
		if err != nil || !auth.CheckPassword(customer.Password, in.Password) {
			return "", apperr.Unauthorized("invalid credentials")
		}
		token, err := auth.GenerateToken(customer.ID, rbac.RoleCustomer)
		if err != nil {
			return "", apperr.Internal(err)
		}
		return token, nil

	case rbac.RoleShop:
		shop, err := s.shops.FindByEmail(in.Email)
		if err != nil || !auth.CheckPassword(shop.Password, in.Password) {
			return "", apperr.Unauthorized("invalid credentials")
		}
		token, err := auth.GenerateToken(shop.ID, rbac.RoleShop)
		if err != nil {
			return "", apperr.Internal(err)
		}
		return token, nil

	default:
		return "", apperr.Validation("role must be customer or shop")
	}
}

// Profile resolves the authenticated identity back to its account record.
func (s *AuthService) Profile(id uint, role string) (interface{}, error) {
	switch role {
	case rbac.RoleCustomer:
		customer, err := s.customers.FindByID(id)
		if orm.IsNotFound(err) {
			return nil, apperr.NotFound("account not found")
		}
		if err != nil {
			return nil, apperr.Internal(err)
		}
		return customer, nil

	case rbac.RoleShop:
		shop, err := s.shops.FindByID(id)
		if orm.IsNotFound(err) {
			return nil, apperr.NotFound("account not found")
		}
		if err != nil {
			return nil, apperr.Internal(err)
		}
		return shop, nil
	}
	return nil, apperr.Forbidden("unknown role")
}
