package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "backoffice/pkg/errors"
	"backoffice/pkg/types"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// upstreamError - ошибка внешнего API: её статус и сообщение отдаются клиенту как есть.
type upstreamError interface {
	error
	HTTPStatus() int
	PublicMessage() string
}

var statusByError = map[error]int{
	apperrors.ErrEmptyAuthHeader:        http.StatusUnauthorized,
	apperrors.ErrInvalidAuthHeader:      http.StatusUnauthorized,
	apperrors.ErrInvalidToken:           http.StatusUnauthorized,
	apperrors.ErrTokenExpired:           http.StatusUnauthorized,
	apperrors.ErrUnauthorized:           http.StatusUnauthorized,
	apperrors.ErrTokenNotFoundInContext: http.StatusUnauthorized,
	apperrors.ErrNotFound:               http.StatusNotFound,
	apperrors.ErrUnknownScope:           http.StatusNotFound,
	apperrors.ErrBadRequest:             http.StatusBadRequest,
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{Status: true, Body: body, Message: message})
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}

		response := map[string]interface{}{
			"status":  false,
			"message": httpErr.Message,
		}
		if httpErr.Details != nil {
			response["body"] = httpErr.Details
		}
		return c.JSON(httpErr.Code, response)
	}

	var upstream upstreamError
	if errors.As(err, &upstream) {
		logger.Warn("Внешний API вернул ошибку", zap.Int("status", upstream.HTTPStatus()), zap.Error(err))
		return c.JSON(upstream.HTTPStatus(), map[string]interface{}{"status": false, "message": upstream.PublicMessage()})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("Поле '%s' не прошло проверку '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"status": false, "message": "Ошибка валидации: " + strings.Join(msgs, "; ")})
	}

	var inputErr *apperrors.InvalidInputError
	if errors.As(err, &inputErr) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"status": false, "message": inputErr.Message})
	}

	for known, code := range statusByError {
		if errors.Is(err, known) {
			return c.JSON(code, map[string]interface{}{"status": false, "message": known.Error()})
		}
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"status":  false,
		"message": "Внутренняя ошибка сервера",
	})
}

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator(v *validator.Validate) *CustomValidator {
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// ParseFilterFromQuery разбирает search, sort[поле], filter[поле], limit, page, offset.
func ParseFilterFromQuery(values url.Values) types.Filter {
	filterReq := types.Filter{
		Sort:   make(map[string]string),
		Filter: make(map[string]interface{}),
		Limit:  DefaultLimit,
		Page:   1,
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			if l > MaxLimit {
				filterReq.Limit = MaxLimit
			} else {
				filterReq.Limit = l
			}
		}
	}

	if pageStr := values.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filterReq.Page = p
		}
	}

	if offsetStr := values.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filterReq.Offset = o
		}
	} else {
		filterReq.Offset = (filterReq.Page - 1) * filterReq.Limit
	}

	filterReq.WithPagination = values.Get("withPagination") != "false"

	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}
		if key == "search" {
			filterReq.Search = vals[0]
			continue
		}
		if field, ok := bracketField(key, "sort"); ok {
			direction := strings.ToLower(vals[0])
			if direction == "asc" || direction == "desc" {
				filterReq.Sort[field] = direction
			}
			continue
		}
		if field, ok := bracketField(key, "filter"); ok {
			filterReq.Filter[field] = strings.Join(vals, ",")
		}
	}

	return filterReq
}

// bracketField: "filter[status_id]" -> "status_id".
func bracketField(key, prefix string) (string, bool) {
	if strings.HasPrefix(key, prefix+"[") && strings.HasSuffix(key, "]") {
		return key[len(prefix)+1 : len(key)-1], true
	}
	return "", false
}

// BracketParams собирает все параметры вида prefix[поле]=значение.
func BracketParams(values url.Values, prefix string) map[string]string {
	out := make(map[string]string)
	for key, vals := range values {
		if field, ok := bracketField(key, prefix); ok && len(vals) > 0 {
			out[field] = strings.Join(vals, ",")
		}
	}
	return out
}

func ParseInt64Slice(s []string) ([]int64, error) {
	if len(s) == 0 {
		return nil, nil
	}
	result := make([]int64, 0, len(s))
	for _, v := range s {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		result = append(result, id)
	}
	return result, nil
}
