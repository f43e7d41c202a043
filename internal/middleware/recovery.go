package middleware

import (
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"blogapi/internal/logger"
)

func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				fields := []zap.Field{
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
				}
				if rid, ok := r.Context().Value(logger.RequestIDKey).(string); ok {
					fields = append(fields, zap.String("request_id", rid))
				}
				if user, ok := UserFromCtx(r.Context()); ok {
					fields = append(fields, zap.Int64("user_id", user.ID))
				}
				logger.Log.Error("panic recovered", fields...)

				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("internal server error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
