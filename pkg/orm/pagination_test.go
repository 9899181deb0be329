package orm_test

import (
	"testing"

	"github.com/shashiranjanraj/supplyco/pkg/orm"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name       string
		page       int
		perPage    int
		totalItems int64
		wantPage   int
		wantPer    int
		wantPages  int
	}{
		{"exact multiple", 1, 10, 30, 1, 10, 3},
		{"partial trailing page counts", 1, 10, 31, 1, 10, 4},
		{"single item", 1, 10, 1, 1, 10, 1},
		{"empty set has zero pages", 1, 10, 0, 1, 10, 0},
		{"zero page clamps to one", 0, 10, 5, 1, 10, 1},
		{"negative page clamps to one", -3, 10, 5, 1, 10, 1},
		{"zero perPage falls back to default", 2, 0, 25, 2, orm.DefaultPerPage, 3},
		{"oversized perPage clamps to max", 1, 1000, 250, 1, orm.MaxPerPage, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := orm.NewPagination(tc.page, tc.perPage, tc.totalItems)
			if p.CurrentPage != tc.wantPage {
				t.Errorf("CurrentPage = %d, want %d", p.CurrentPage, tc.wantPage)
			}
			if p.ItemsPerPage != tc.wantPer {
				t.Errorf("ItemsPerPage = %d, want %d", p.ItemsPerPage, tc.wantPer)
			}
			if p.TotalPages != tc.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tc.wantPages)
			}
			if p.TotalItems != tc.totalItems {
				t.Errorf("TotalItems = %d, want %d", p.TotalItems, tc.totalItems)
			}
		})
	}
}

func TestPaginationOffset(t *testing.T) {
	if got := orm.NewPagination(1, 10, 100).Offset(); got != 0 {
		t.Errorf("page 1 offset = %d, want 0", got)
	}
	if got := orm.NewPagination(4, 15, 100).Offset(); got != 45 {
		t.Errorf("page 4 offset = %d, want 45", got)
	}
}
