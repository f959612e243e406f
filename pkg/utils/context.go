package utils

import (
	"context"

	"backoffice/pkg/contextkeys"
	apperrors "backoffice/pkg/errors"
)

// GetTokenFromCtx - bearer-токен текущего запроса (кладёт AuthMiddleware).
func GetTokenFromCtx(ctx context.Context) (string, error) {
	token, ok := ctx.Value(contextkeys.TokenKey).(string)
	if !ok || token == "" {
		return "", apperrors.ErrTokenNotFoundInContext
	}
	return token, nil
}

// GetUserFromCtx - ключ пользователя для хранилищ состояния.
func GetUserFromCtx(ctx context.Context) (string, error) {
	user, ok := ctx.Value(contextkeys.UserKey).(string)
	if !ok || user == "" {
		return "", apperrors.ErrUnauthorized
	}
	return user, nil
}

func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, contextkeys.TokenKey, token)
}

func WithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, contextkeys.UserKey, user)
}

func GetRequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(contextkeys.RequestIDKey).(string)
	return id
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextkeys.RequestIDKey, id)
}
