package models

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Order statuses. An order starts pending and moves forward only; completed
// and cancelled are terminal.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

// orderTransitions maps each status to the statuses it may move to.
var orderTransitions = map[string][]string{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderCompleted, OrderCancelled},
	OrderCompleted:  {},
	OrderCancelled:  {},
}

// ValidOrderStatus reports whether s is a known status value.
func ValidOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is a placed order against a single shop. Each line snapshots the
// product price at checkout time, so later catalogue edits never change an
// order's total.
type Order struct {
	gorm.Model
	OrderID    string      `gorm:"uniqueIndex;size:32;not null" json:"orderId"`
	CustomerID uint        `gorm:"not null;index" json:"customerId"`
	ShopID     uint        `gorm:"not null;index" json:"shopId"`
	Total      float64     `gorm:"not null" json:"total"`
	Status     string      `gorm:"size:20;not null;default:pending;index" json:"status"`
	Lines      []OrderLine `gorm:"foreignKey:OrderRef" json:"items"`
}

// OrderLine is one purchased product inside an order.
type OrderLine struct {
	gorm.Model
	OrderRef  uint    `gorm:"not null;index" json:"-"`
	ProductID uint    `gorm:"not null;index" json:"productId"`
	Name      string  `gorm:"size:255;not null" json:"name"`   // snapshot at checkout
	Price     float64 `gorm:"not null" json:"price"`           // frozen unit price
	Quantity  int     `gorm:"not null" json:"quantity"`
}

// LineTotal is the frozen price times quantity.
func (l OrderLine) LineTotal() float64 {
	return l.Price * float64(l.Quantity)
}

// NewOrderID builds a human-readable order reference from the current time
// plus a random suffix, e.g. "ORD-18F2C41A9B0-7C2F". The suffix keeps
// references unique when one checkout creates several orders in the same
// millisecond.
func NewOrderID() string {
	var suffix [2]byte
	rand.Read(suffix[:]) //nolint:errcheck
	return strings.ToUpper(fmt.Sprintf("ORD-%x-%x", time.Now().UnixMilli(), suffix))
}
