package auth

import (
	"context"
	"net/http"
)

const roleKey contextKey = "role"

// RoleAdmin is the only role the admin API accepts.
const RoleAdmin = "admin"

// RoleLookup resolves the role of an authenticated user.
type RoleLookup func(ctx context.Context, userID string) (string, error)

// WithRole stores the caller's role in the context.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey, role)
}

// RoleFromContext returns the caller's role, or "" when not set.
func RoleFromContext(ctx context.Context) string {
	v, _ := ctx.Value(roleKey).(string)
	return v
}

// IsAdminFromContext reports whether the caller holds the admin role.
func IsAdminFromContext(ctx context.Context) bool {
	return RoleFromContext(ctx) == RoleAdmin
}

// RoleMiddleware resolves the role for the userID in context and stores it.
// Requests without a userID, or whose lookup fails, carry no role.
func RoleMiddleware(lookup RoleLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if ok && userID != "" {
				if role, err := lookup(r.Context(), userID); err == nil {
					r = r.WithContext(WithRole(r.Context(), role))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects callers without the admin role with 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdminFromContext(r.Context()) {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}
