// Package seeders provides a registry of database seed functions.
//
// Define a seeder in any file in this package:
//
//	func init() {
//	    seeders.Register("shops", SeedShops)
//	}
//
// Then run every seeder with `supplyco seed`, or a subset with
// `supplyco seed shops products`.
package seeders

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// SeederFunc is the signature for a seed function.
type SeederFunc func(db *gorm.DB) error

var (
	mu    sync.Mutex
	order []string
	byName = map[string]SeederFunc{}
)

// Register adds a seeder to the global registry.
// Call this from init() in your seeder files.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := byName[name]; !dup {
		order = append(order, name)
	}
	byName[name] = fn
}

// Run executes the named seeders, or every registered seeder when names is
// empty, in registration order. It stops on the first error.
func Run(db *gorm.DB, names ...string) error {
	mu.Lock()
	selected := append([]string(nil), order...)
	fns := make(map[string]SeederFunc, len(byName))
	for k, v := range byName {
		fns[k] = v
	}
	mu.Unlock()

	if len(names) > 0 {
		selected = names
	}
	if len(selected) == 0 {
		fmt.Println("  (no seeders registered)")
		return nil
	}

	for _, name := range selected {
		fn, ok := fns[name]
		if !ok {
			return fmt.Errorf("unknown seeder %q", name)
		}
		fmt.Printf("  • Running seeder: %s … ", name)
		if err := fn(db); err != nil {
			fmt.Println("FAILED")
			return fmt.Errorf("seeder %q: %w", name, err)
		}
		fmt.Println("done")
	}
	return nil
}
