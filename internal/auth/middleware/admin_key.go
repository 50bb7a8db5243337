package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/mind-engage/mindengage-quiz/internal/rbac"
)

const AdminKeyHeader = "X-Admin-Key"

// AdminKey grants the admin role to requests carrying the shared key.
// An empty key closes the surface entirely.
func AdminKey(key string) func(http.Handler) http.Handler {
	want := []byte(key)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(want) == 0 {
				http.Error(w, "admin disabled", http.StatusForbidden)
				return
			}
			got := []byte(r.Header.Get(AdminKeyHeader))
			if subtle.ConstantTimeCompare(got, want) != 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := WithSubject(r.Context(), RoleAdmin)
			next.ServeHTTP(w, r.WithContext(rbac.WithRole(ctx, RoleAdmin)))
		})
	}
}
