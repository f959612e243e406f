package service

import (
	"errors"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apperrors "backoffice/pkg/errors"
)

// JwtCustomClaim - поля токена, который выдаёт внешний admin API.
type JwtCustomClaim struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// UserKey - ключ пользователя для хранения его состояния списков.
func (c *JwtCustomClaim) UserKey() string {
	if c.UserID != 0 {
		return strconv.FormatInt(c.UserID, 10)
	}
	if c.Subject != "" {
		return c.Subject
	}
	return c.Email
}

type JWTService interface {
	ValidateToken(tokenString string) (*JwtCustomClaim, error)
}

type jwtService struct {
	secretKey string
	logger    *zap.Logger
	now       func() time.Time
}

// NewJWTService: если secretKey пуст, подпись не проверяется (это делает
// внешний API), проверяются только срок действия и наличие пользователя.
func NewJWTService(secretKey string, logger *zap.Logger) JWTService {
	return &jwtService{secretKey: secretKey, logger: logger, now: time.Now}
}

func (s *jwtService) ValidateToken(tokenString string) (*JwtCustomClaim, error) {
	claims := &JwtCustomClaim{}

	if s.secretKey == "" {
		if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
			s.logger.Warn("Ошибка разбора токена", zap.Error(err))
			return nil, apperrors.ErrInvalidToken
		}
	} else {
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			switch token.Method.(type) {
			case *jwt.SigningMethodHMAC:
				return []byte(s.secretKey), nil
			default:
				return nil, apperrors.ErrInvalidSigningMethod
			}
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return nil, apperrors.ErrTokenExpired
			}
			s.logger.Warn("Ошибка парсинга или проверки подписи токена", zap.Error(err))
			return nil, apperrors.ErrInvalidToken
		}
		if !token.Valid {
			return nil, apperrors.ErrInvalidToken
		}
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(s.now()) {
		return nil, apperrors.ErrTokenExpired
	}
	if claims.UserKey() == "" {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
