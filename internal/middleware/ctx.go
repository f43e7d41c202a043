package middleware

import (
	"context"

	"blogapi/internal/models"
)

type ctxKey string

const (
	// ContextUser — аутентифицированный аккаунт, положенный TokenAuth.
	ContextUser ctxKey = "user"
)

func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, ContextUser, u)
}

func UserFromCtx(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(ContextUser).(*models.User)
	return u, ok
}
