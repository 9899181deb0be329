package models_test

import (
	"strings"
	"testing"

	"github.com/shashiranjanraj/supplyco/app/models"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{models.OrderPending, models.OrderProcessing},
		{models.OrderPending, models.OrderCancelled},
		{models.OrderProcessing, models.OrderCompleted},
		{models.OrderProcessing, models.OrderCancelled},
	}
	for _, tc := range allowed {
		if !models.CanTransition(tc.from, tc.to) {
			t.Errorf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	forbidden := []struct{ from, to string }{
		{models.OrderPending, models.OrderCompleted},
		{models.OrderCompleted, models.OrderPending},
		{models.OrderCompleted, models.OrderCancelled},
		{models.OrderCancelled, models.OrderPending},
		{models.OrderCancelled, models.OrderProcessing},
		{models.OrderProcessing, models.OrderPending},
	}
	for _, tc := range forbidden {
		if models.CanTransition(tc.from, tc.to) {
			t.Errorf("%s -> %s should be forbidden", tc.from, tc.to)
		}
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "completed", "cancelled"} {
		if !models.ValidOrderStatus(s) {
			t.Errorf("%q should be a known status", s)
		}
	}
	for _, s := range []string{"", "shipped", "PENDING", "done"} {
		if models.ValidOrderStatus(s) {
			t.Errorf("%q should be unknown", s)
		}
	}
}

func TestNewOrderIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := models.NewOrderID()
		if !strings.HasPrefix(id, "ORD-") {
			t.Fatalf("unexpected format %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate reference %q", id)
		}
		seen[id] = true
	}
}

func TestClampQuantity(t *testing.T) {
	cases := map[int]int{
		-10: 1,
		0:   1,
		1:   1,
		50:  50,
		100: 100,
		101: 100,
		500: 100,
	}
	for in, want := range cases {
		if got := models.ClampQuantity(in); got != want {
			t.Errorf("ClampQuantity(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestLineTotal(t *testing.T) {
	line := models.OrderLine{Price: 12.5, Quantity: 4}
	if got := line.LineTotal(); got != 50 {
		t.Errorf("LineTotal = %v, want 50", got)
	}
}
