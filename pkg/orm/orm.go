// Package orm wraps GORM with a small fluent query API, read-through
// caching, pagination, and transactions.
package orm

import (
	"errors"
	"time"

	"github.com/shashiranjanraj/supplyco/pkg/cache"
	"github.com/shashiranjanraj/supplyco/pkg/database"
	"gorm.io/gorm"
)

// Query is an immutable chainable query builder. Each chained call returns a
// new Query, so partial queries can be reused safely.
type Query struct {
	db *gorm.DB
}

// DB starts a query against the global connection.
func DB() *Query {
	return &Query{db: database.DB}
}

// With wraps an existing *gorm.DB (e.g. a transaction handle).
func With(db *gorm.DB) *Query {
	return &Query{db: db}
}

// Gorm exposes the underlying *gorm.DB for operations the wrapper does not
// cover.
func (q *Query) Gorm() *gorm.DB { return q.db }

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Order(value string) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Limit(n int) *Query {
	return &Query{db: q.db.Limit(n)}
}

func (q *Query) Offset(n int) *Query {
	return &Query{db: q.db.Offset(n)}
}

func (q *Query) Preload(assoc string, args ...interface{}) *Query {
	return &Query{db: q.db.Preload(assoc, args...)}
}

// Get loads all matching rows into dest.
func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

// First loads the first matching row. Returns gorm.ErrRecordNotFound when
// no row matches.
func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

// Count returns the number of matching rows.
func (q *Query) Count() (int64, error) {
	var n int64
	err := q.db.Count(&n).Error
	return n, err
}

// Create inserts v.
func (q *Query) Create(v interface{}) error {
	return q.db.Create(v).Error
}

// Save upserts v by primary key.
func (q *Query) Save(v interface{}) error {
	return q.db.Save(v).Error
}

// Updates applies a partial update to matching rows.
func (q *Query) Updates(values interface{}) error {
	return q.db.Updates(values).Error
}

// Delete removes matching rows and reports how many were affected. The count
// lets callers detect writes that raced with a concurrent delete.
func (q *Query) Delete(v interface{}) (int64, error) {
	res := q.db.Delete(v)
	return res.RowsAffected, res.Error
}

// Cache is a read-through: on a hit dest is filled from Redis, on a miss the
// query runs and the result is stored under key for ttl.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	err := q.db.Find(dest).Error
	if err != nil {
		return err
	}

	cache.Set(key, dest, ttl)
	return nil
}

// Transaction runs fn inside a database transaction. Any error returned by
// fn rolls the whole transaction back.
func Transaction(fn func(tx *Query) error) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&Query{db: tx})
	})
}

// IsNotFound reports whether err is the record-not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
