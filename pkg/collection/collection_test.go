package collection_test

import (
	"reflect"
	"testing"

	"github.com/shashiranjanraj/supplyco/pkg/collection"
)

type line struct {
	Shop  uint
	Total float64
}

func TestGroupBy(t *testing.T) {
	lines := []line{{Shop: 1, Total: 10}, {Shop: 2, Total: 20}, {Shop: 1, Total: 5}}

	grouped := collection.GroupBy(lines, func(l line) uint { return l.Shop })
	if len(grouped) != 2 {
		t.Fatalf("groups = %d, want 2", len(grouped))
	}
	if len(grouped[1]) != 2 || len(grouped[2]) != 1 {
		t.Errorf("unexpected group sizes: %v", grouped)
	}
}

func TestMapAndSumBy(t *testing.T) {
	lines := []line{{Total: 10}, {Total: 20}, {Total: 5}}

	totals := collection.Map(lines, func(l line) float64 { return l.Total })
	if !reflect.DeepEqual(totals, []float64{10, 20, 5}) {
		t.Errorf("Map = %v", totals)
	}

	if sum := collection.SumBy(lines, func(l line) float64 { return l.Total }); sum != 35 {
		t.Errorf("SumBy = %v, want 35", sum)
	}
}

func TestFilterFirstContains(t *testing.T) {
	nums := []int{1, 2, 3, 4, 5}

	even := collection.Filter(nums, func(n int) bool { return n%2 == 0 })
	if !reflect.DeepEqual(even, []int{2, 4}) {
		t.Errorf("Filter = %v", even)
	}

	first, ok := collection.First(nums, func(n int) bool { return n > 3 })
	if !ok || first != 4 {
		t.Errorf("First = %v, %v", first, ok)
	}

	_, ok = collection.First(nums, func(n int) bool { return n > 99 })
	if ok {
		t.Error("First should miss")
	}

	if !collection.Contains(nums, func(n int) bool { return n == 5 }) {
		t.Error("Contains should hit")
	}
}

func TestEmptySlices(t *testing.T) {
	var empty []line
	if got := collection.SumBy(empty, func(l line) float64 { return l.Total }); got != 0 {
		t.Errorf("SumBy on empty = %v", got)
	}
	if got := collection.GroupBy(empty, func(l line) uint { return l.Shop }); len(got) != 0 {
		t.Errorf("GroupBy on empty = %v", got)
	}
}
