package repositories

import (
	"github.com/shashiranjanraj/supplyco/app/models"
	"github.com/shashiranjanraj/supplyco/pkg/orm"
)

// CustomerRepository handles database operations for Customer.
type CustomerRepository struct{}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{}
}

// FindByEmail looks up a customer by their email address.
func (r *CustomerRepository) FindByEmail(email string) (models.Customer, error) {
	var customer models.Customer
	err := orm.DB().Model(&models.Customer{}).Where("email = ?", email).First(&customer)
	return customer, err
}

// FindByID looks up a customer by primary key.
func (r *CustomerRepository) FindByID(id uint) (models.Customer, error) {
	var customer models.Customer
	err := orm.DB().Model(&models.Customer{}).Where("id = ?", id).First(&customer)
	return customer, err
}

// RationCardExists reports whether a customer is already registered with the
// given ration card.
func (r *CustomerRepository) RationCardExists(rationCardID string) (bool, error) {
	n, err := orm.DB().Model(&models.Customer{}).
		Where("ration_card_id = ?", rationCardID).Count()
	return n > 0, err
}

// Create persists a new customer record.
func (r *CustomerRepository) Create(customer *models.Customer) error {
	return orm.DB().Create(customer)
}
