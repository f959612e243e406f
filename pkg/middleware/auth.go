package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice/pkg/contextkeys"
	apperrors "backoffice/pkg/errors"
	"backoffice/pkg/service"
	"backoffice/pkg/utils"
)

// TokenCookie - cookie, в которой браузер хранит токен admin API.
const TokenCookie = "token"

type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		logger:     logger,
	}
}

// Auth достаёт bearer-токен, проверяет его и кладёт в контекст:
// токен уходит во внешний API, ключ пользователя - в хранилища состояния.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, err := extractToken(c)
		if err != nil {
			m.logger.Warn("AuthMiddleware: токен не передан", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			m.logger.Warn("AuthMiddleware: Ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, contextkeys.TokenKey, tokenString)
		ctx = context.WithValue(ctx, contextkeys.UserKey, claims.UserKey())
		c.SetRequest(c.Request().WithContext(ctx))

		m.logger.Debug("AuthMiddleware: Пользователь аутентифицирован", zap.String("user", claims.UserKey()))
		return next(c)
	}
}

func extractToken(c echo.Context) (string, error) {
	if authHeader := c.Request().Header.Get(echo.HeaderAuthorization); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", apperrors.ErrInvalidAuthHeader
		}
		return parts[1], nil
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	// браузерный WebSocket не умеет ставить заголовки
	if token := c.QueryParam("token"); token != "" {
		return token, nil
	}
	return "", apperrors.ErrEmptyAuthHeader
}
