// Package collection provides generic, functional-style helpers for slices.
//
// Usage:
//
//	ids := collection.Map(items, func(i models.CartItem) uint { return i.ProductID })
//	byShop := collection.GroupBy(items, func(i models.CartItem) uint { return i.Product.ShopID })
//	total := collection.SumBy(lines, func(l models.OrderLine) float64 { return l.Price * float64(l.Quantity) })
package collection

// Map transforms each element of s using fn.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// Filter returns elements of s for which fn returns true.
func Filter[T any](s []T, fn func(T) bool) []T {
	var out []T
	for _, v := range s {
		if fn(v) {
			out = append(out, v)
		}
	}
	return out
}

// First returns the first element matching fn, or (zero, false).
func First[T any](s []T, fn func(T) bool) (T, bool) {
	for _, v := range s {
		if fn(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Contains reports whether any element of s satisfies fn.
func Contains[T any](s []T, fn func(T) bool) bool {
	_, ok := First(s, fn)
	return ok
}

// GroupBy buckets elements by the key fn returns. Insertion order within a
// bucket follows slice order.
func GroupBy[T any, K comparable](s []T, fn func(T) K) map[K][]T {
	out := make(map[K][]T)
	for _, v := range s {
		k := fn(v)
		out[k] = append(out[k], v)
	}
	return out
}

// Pluck extracts a field from every element.
func Pluck[T any, R any](s []T, fn func(T) R) []R {
	return Map(s, fn)
}

// SumBy adds up the numeric value fn extracts from each element.
func SumBy[T any, N int | int64 | float64](s []T, fn func(T) N) N {
	var total N
	for _, v := range s {
		total += fn(v)
	}
	return total
}
