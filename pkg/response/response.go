// Package response writes the uniform JSON envelope directly to an
// http.ResponseWriter. Middleware uses it; handlers normally go through
// pkg/ctx instead.
package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform JSON response shape.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// Error writes an error envelope.
func Error(w http.ResponseWriter, code int, message string) {
	JSON(w, code, Envelope{Status: code, Message: message})
}

// Unauthorized writes a 401 envelope.
func Unauthorized(w http.ResponseWriter, message ...string) {
	msg := "Unauthorized"
	if len(message) > 0 {
		msg = message[0]
	}
	Error(w, http.StatusUnauthorized, msg)
}

// Forbidden writes a 403 envelope.
func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Forbidden")
}

// InternalError writes a 500 envelope with a generic message.
func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Internal Server Error")
}
