package middleware

import (
	"net/http"
)

// OnlyRole пропускает только аккаунты с указанной ролью.
// Применяется после TokenAuth.
func OnlyRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromCtx(r.Context())
			if !ok || !user.HasRole(role) {
				http.Error(w, "Доступ запрещён", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
