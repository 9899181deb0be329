// Package testkit holds shared helpers for package tests: an isolated
// in-memory database and compact HTTP request plumbing.
package testkit

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/supplyco/pkg/database"
)

// SetupDB opens a fresh in-memory SQLite database, installs it as the global
// connection, and migrates the given models. Each test gets full isolation.
func SetupDB(t *testing.T, models ...any) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "open in-memory database")

	// A second pooled connection would open its own empty memory database,
	// so pin the pool to one. Concurrent callers serialize on it.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models...), "migrate test schema")

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	return db
}

// Request performs an HTTP request against handler and returns the recorder.
// body is marshalled to JSON when non-nil.
func Request(t *testing.T, handler http.Handler, method, target string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body), "encode request body")
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// Envelope mirrors the JSON response shape for decoding in tests.
type Envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

// DecodeEnvelope unmarshals a recorded response body.
func DecodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env),
		"response is not a valid envelope: %s", rec.Body.String())
	return env
}

// DecodeData unmarshals the envelope's data field into dest.
func DecodeData(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()

	env := DecodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, dest), "decode envelope data")
}
