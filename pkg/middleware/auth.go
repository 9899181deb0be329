package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/supplyco/pkg/auth"
	"github.com/shashiranjanraj/supplyco/pkg/response"
)

// Identity is the authenticated principal resolved from the bearer token.
// ID refers to a customer or shop row depending on Role.
type Identity struct {
	ID   uint
	Role string
}

type identityKey struct{}

// Auth validates the bearer token and stores the resolved Identity in the
// request context. Requests without a valid token get a 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			response.Unauthorized(w, "Missing token")
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		id := Identity{ID: claims.IdentityID, Role: claims.Role}
		ctx := context.WithValue(r.Context(), identityKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromCtx returns the Identity stored by Auth.
func IdentityFromCtx(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// UserIDFromCtx returns the authenticated identity's row ID.
func UserIDFromCtx(ctx context.Context) (uint, bool) {
	id, ok := IdentityFromCtx(ctx)
	return id.ID, ok
}

// RoleFromCtx returns the authenticated identity's role.
func RoleFromCtx(ctx context.Context) (string, bool) {
	id, ok := IdentityFromCtx(ctx)
	return id.Role, ok
}
