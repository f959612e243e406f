package adminapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"backoffice/internal/listkit"
)

// PageConvention - как внутренняя страница (с нуля) передаётся в API.
// У разных эндпоинтов по-разному, так и оставляем.
type PageConvention int

const (
	// PageOneBased: page=max(1, page+1)
	PageOneBased PageConvention = iota
	// PageRaw: page уходит как есть, с нуля
	PageRaw
)

func (p PageConvention) Param(page int) int {
	if p == PageOneBased {
		return max(1, page+1)
	}
	return page
}

// ParamStyle - имена параметров пагинации и сортировки.
type ParamStyle struct {
	Page    string
	PerPage string
	SortBy  string
	SortDir string
}

var (
	SnakeParams = ParamStyle{Page: "page", PerPage: "per_page", SortBy: "sort_by", SortDir: "order"}
	CamelParams = ParamStyle{Page: "page", PerPage: "perPage", SortBy: "sortBy", SortDir: "sortDir"}
)

// ListEndpoint описывает один списочный эндпоинт со всеми его особенностями.
type ListEndpoint struct {
	Resource   string
	V2         bool
	Pages      PageConvention
	Params     ParamStyle
	ItemsField string
	TotalField string
	// FilterParams переименовывает поля фильтра в параметры запроса.
	FilterParams map[string]string
}

func (e ListEndpoint) Path() string { return Path(e.V2, e.Resource) }

// Query переводит состояние списка в параметры запроса.
func (e ListEndpoint) Query(state listkit.SearchState) url.Values {
	q := url.Values{}
	q.Set(e.Params.Page, strconv.Itoa(e.Pages.Param(state.Page)))
	q.Set(e.Params.PerPage, strconv.Itoa(state.PerPage))
	if state.SortBy != "" {
		q.Set(e.Params.SortBy, state.SortBy)
	}
	if state.SortDir != "" {
		q.Set(e.Params.SortDir, string(state.SortDir))
	}

	for key, value := range state.Filters {
		if !listkit.Truthy(value) {
			continue
		}
		name := key
		if renamed, ok := e.FilterParams[key]; ok {
			name = renamed
		}
		q.Set(name, formatParam(value))
	}
	return q
}

// formatParam: списки через запятую, остальное как есть.
func formatParam(v any) string {
	switch val := v.(type) {
	case []string:
		return strings.Join(val, ",")
	case []int64:
		parts := make([]string, len(val))
		for i, n := range val {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return strings.Join(parts, ",")
	case bool:
		return strconv.FormatBool(val)
	default:
		return listkit.FormatValue(v)
	}
}

// List запрашивает одну страницу и достаёт строки и total из полей эндпоинта.
func List[T any](ctx context.Context, c *Client, e ListEndpoint, state listkit.SearchState) (listkit.Page[T], error) {
	path := e.Path()
	raw, err := c.do(ctx, http.MethodGet, path, e.Query(state), nil, "")
	if err != nil {
		return listkit.Page[T]{}, err
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return listkit.Page[T]{}, fmt.Errorf("ошибка парсинга JSON для эндпоинта %s: %w", path, err)
	}

	var page listkit.Page[T]
	if itemsRaw, ok := envelope[e.ItemsField]; ok && string(itemsRaw) != "null" {
		if err := json.Unmarshal(itemsRaw, &page.Items); err != nil {
			return listkit.Page[T]{}, fmt.Errorf("ошибка парсинга поля %q для эндпоинта %s: %w", e.ItemsField, path, err)
		}
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	if totalRaw, ok := envelope[e.TotalField]; ok {
		if err := json.Unmarshal(totalRaw, &page.Total); err != nil {
			return listkit.Page[T]{}, fmt.Errorf("ошибка парсинга поля %q для эндпоинта %s: %w", e.TotalField, path, err)
		}
	}
	return page, nil
}

// ListAll забирает справочник целиком (эндпоинт отдаёт массив без обёртки).
func ListAll[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	raw, err := c.do(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("ошибка парсинга JSON для эндпоинта %s: %w", path, err)
	}
	return out, nil
}
