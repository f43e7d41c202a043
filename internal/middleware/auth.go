package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"blogapi/internal/logger"
	"blogapi/internal/services"
)

// HeaderAuthToken — заголовок с опорным (bearer) токеном.
// Токен — стабильный api-ключ аккаунта, а не одноразовый JWT.
const HeaderAuthToken = "X-Auth-Token"

// TokenAuth проверяет X-Auth-Token и кладёт аккаунт в контекст запроса.
func TokenAuth(auth *services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			token := r.Header.Get(HeaderAuthToken)
			if token == "" {
				logger.WithCtx(r.Context()).Warn("TokenAuth: отсутствует токен")
				http.Error(w, "Отсутствует токен", http.StatusUnauthorized)
				return
			}

			user, err := auth.GetByAPIKey(r.Context(), token)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("TokenAuth: неверный токен", zap.Error(err))
				http.Error(w, "Неверный токен", http.StatusUnauthorized)
				return
			}

			ctx := WithUser(r.Context(), user)

			logger.WithCtx(ctx).Info("TokenAuth: токен валиден",
				zap.Int64("user_id", user.ID), zap.Strings("roles", user.Roles))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
