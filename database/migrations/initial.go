package migrations

import (
	"github.com/shashiranjanraj/supplyco/app/models"
	"github.com/shashiranjanraj/supplyco/pkg/migration"
	"github.com/shashiranjanraj/supplyco/pkg/notification"
	"github.com/shashiranjanraj/supplyco/pkg/queue"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260801000000_create_customers_table", &CreateCustomersTable{})
	migration.Register("20260801000001_create_shops_table", &CreateShopsTable{})
	migration.Register("20260801000002_create_products_table", &CreateProductsTable{})
	migration.Register("20260801000003_create_carts_table", &CreateCartsTable{})
	migration.Register("20260801000004_create_orders_table", &CreateOrdersTable{})
	migration.Register("20260801000005_create_notifications_table", &CreateNotificationsTable{})
	migration.Register("20260801000006_create_failed_jobs_table", &CreateFailedJobsTable{})
}

// -------- 0000: customers --------

type CreateCustomersTable struct{}

func (m *CreateCustomersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Customer{})
}

func (m *CreateCustomersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("customers")
}

// -------- 0001: shops --------

type CreateShopsTable struct{}

func (m *CreateShopsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Shop{})
}

func (m *CreateShopsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("shops")
}

// -------- 0002: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

// -------- 0003: carts and cart_items --------

type CreateCartsTable struct{}

func (m *CreateCartsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Cart{}, &models.CartItem{})
}

func (m *CreateCartsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("cart_items", "carts")
}

// -------- 0004: orders and order_lines --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderLine{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_lines", "orders")
}

// -------- 0005: notifications --------

type CreateNotificationsTable struct{}

func (m *CreateNotificationsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&notification.Record{})
}

func (m *CreateNotificationsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("notifications")
}

// -------- 0006: failed jobs --------

type CreateFailedJobsTable struct{}

func (m *CreateFailedJobsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&queue.FailedJobRecord{})
}

func (m *CreateFailedJobsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("supplyco_failed_jobs")
}
