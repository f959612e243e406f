package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"backoffice/pkg/utils"
)

// Client - фасад над admin REST API: {base}[/v2]/admin/{resource}[/{id}][/{action}].
// Токен берётся из контекста запроса, сам клиент ничего не хранит.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.Named("adminapi"),
	}
}

// NewWithHTTPClient - для тестов и нестандартного транспорта.
func NewWithHTTPClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	return &Client{httpClient: httpClient, baseURL: strings.TrimRight(baseURL, "/"), logger: logger.Named("adminapi")}
}

// Path собирает путь ресурса. v2 добавляет префикс версии.
func Path(v2 bool, resource string, parts ...string) string {
	var b strings.Builder
	if v2 {
		b.WriteString("/v2")
	}
	b.WriteString("/admin/")
	b.WriteString(strings.Trim(resource, "/"))
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString("/")
		b.WriteString(url.PathEscape(p))
	}
	return b.String()
}

// APIError - ответ API с кодом не 2xx.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("admin API %s вернул статус %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

func (e *APIError) HTTPStatus() int { return e.StatusCode }

func (e *APIError) PublicMessage() string { return e.Message }

// do выполняет запрос и возвращает "сырое" тело ответа.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (json.RawMessage, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания %s-запроса: %w", method, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения %s-запроса для '%s': %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа '%s': %w", path, err)
	}

	c.logger.Debug("Запрос к admin API",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw, resp.Status),
			Body:       string(raw),
			Endpoint:   method + " " + path,
		}
	}
	return raw, nil
}

// errorMessage достаёт текст ошибки из тела: {"message": ...} или {"error": ...}.
func errorMessage(raw []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return fallback
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, payload any) (json.RawMessage, error) {
	var body io.Reader
	contentType := ""
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("ошибка сериализации тела запроса: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, query, body, contentType)
}

// decode разбирает ответ. Пустое тело (204) - не ошибка.
func decode[T any](raw json.RawMessage, path string) (*T, error) {
	var out T
	if len(bytes.TrimSpace(raw)) == 0 {
		return &out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("ошибка парсинга JSON для эндпоинта %s: %w", path, err)
	}
	return &out, nil
}

func Get[T any](ctx context.Context, c *Client, path string) (*T, error) {
	raw, err := c.doJSON(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[T](raw, path)
}

func Create[T any](ctx context.Context, c *Client, path string, payload any) (*T, error) {
	raw, err := c.doJSON(ctx, http.MethodPost, path, nil, payload)
	if err != nil {
		return nil, err
	}
	return decode[T](raw, path)
}

func Update[T any](ctx context.Context, c *Client, path string, payload any) (*T, error) {
	raw, err := c.doJSON(ctx, http.MethodPut, path, nil, payload)
	if err != nil {
		return nil, err
	}
	return decode[T](raw, path)
}

func Delete(ctx context.Context, c *Client, path string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// Action - POST на {resource}/{id}/{action}, например approve/reject/publish.
func Action[T any](ctx context.Context, c *Client, path string, payload any) (*T, error) {
	return Create[T](ctx, c, path, payload)
}
