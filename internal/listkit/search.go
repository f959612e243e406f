package listkit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"
)

type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// DefaultStateTTL - сколько живёт сохранённое состояние списка.
const DefaultStateTTL = 7 * 24 * time.Hour

// ErrStateNotFound возвращается хранилищем, если по ключу ничего нет.
var ErrStateNotFound = errors.New("состояние списка не найдено")

// Filters - плоская карта "поле фильтра -> значение".
// Отсутствующий фильтр = отсутствующий ключ, nil не хранится.
type Filters map[string]any

// SearchState - всё, что нужно странице списка, чтобы запросить данные.
type SearchState struct {
	Filters Filters `json:"filters"`
	Page    int     `json:"page"`
	PerPage int     `json:"perPage"`
	SortBy  string  `json:"sortBy"`
	SortDir SortDir `json:"sortDir"`
}

// Clone возвращает копию состояния с собственной картой фильтров.
func (s SearchState) Clone() SearchState {
	out := s
	out.Filters = s.Filters.Clone()
	return out
}

func (f Filters) Clone() Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		switch val := v.(type) {
		case []string:
			out[k] = append([]string(nil), val...)
		case []int64:
			out[k] = append([]int64(nil), val...)
		default:
			out[k] = v
		}
	}
	return out
}

// StateStore - куда сохраняется сериализованное состояние (cookie, redis, postgres).
type StateStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte, ttl time.Duration) error
}

func EncodeState(state SearchState) ([]byte, error) {
	if state.Filters == nil {
		state.Filters = Filters{}
	}
	return json.Marshal(state)
}

// DecodeState разбирает JSON. Форма состояния не проверяется:
// всё, что распарсилось, уходит дальше как есть.
func DecodeState(blob []byte) (SearchState, error) {
	var state SearchState
	dec := json.NewDecoder(bytes.NewReader(blob))
	dec.UseNumber()
	if err := dec.Decode(&state); err != nil {
		return SearchState{}, fmt.Errorf("ошибка разбора состояния списка: %w", err)
	}
	if state.Filters == nil {
		state.Filters = Filters{}
	}
	for k, v := range state.Filters {
		nv := NormalizeValue(v)
		if nv == nil {
			delete(state.Filters, k)
			continue
		}
		state.Filters[k] = nv
	}
	return state, nil
}

// NormalizeValue приводит значение фильтра к одному из поддерживаемых типов:
// string, int64, float64, bool, []string, []int64.
// Целые float64 становятся int64: после JSON их всё равно не отличить.
func NormalizeValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return normalizeFloat(f)
		}
		return val.String()
	case int:
		return int64(val)
	case int32:
		return int64(val)
	case uint:
		return normalizeUint(uint64(val))
	case uint32:
		return int64(val)
	case uint64:
		return normalizeUint(val)
	case float32:
		return normalizeFloat(float64(val))
	case float64:
		return normalizeFloat(val)
	case []int:
		out := make([]int64, len(val))
		for i, n := range val {
			out[i] = int64(n)
		}
		return out
	case []any:
		return normalizeList(val)
	default:
		return v
	}
}

func normalizeFloat(f float64) any {
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return int64(f)
	}
	return f
}

// normalizeUint: то, что не влезает в int64, хранится строкой.
func normalizeUint(n uint64) any {
	if n > math.MaxInt64 {
		return strconv.FormatUint(n, 10)
	}
	return int64(n)
}

// normalizeList: список только из целых - []int64, иначе []string
// в исходном порядке.
func normalizeList(list []any) any {
	items := make([]any, len(list))
	allInts := true
	for i, item := range list {
		items[i] = NormalizeValue(item)
		if _, ok := items[i].(int64); !ok {
			allInts = false
		}
	}
	if allInts {
		ints := make([]int64, len(items))
		for i, item := range items {
			ints[i] = item.(int64)
		}
		return ints
	}
	strs := make([]string, len(items))
	for i, item := range items {
		switch n := item.(type) {
		case string:
			strs[i] = n
		case int64:
			strs[i] = strconv.FormatInt(n, 10)
		default:
			strs[i] = fmt.Sprint(n)
		}
	}
	return strs
}

// SearchStore связывает состояние одной страницы с хранилищем.
type SearchStore struct {
	store    StateStore
	key      string
	defaults SearchState
	ttl      time.Duration
	logger   *zap.Logger
}

func NewSearchStore(store StateStore, key string, defaults SearchState, ttl time.Duration, logger *zap.Logger) *SearchStore {
	if ttl <= 0 {
		ttl = DefaultStateTTL
	}
	return &SearchStore{store: store, key: key, defaults: defaults, ttl: ttl, logger: logger}
}

func (s *SearchStore) Key() string { return s.key }

func (s *SearchStore) Defaults() SearchState { return s.defaults.Clone() }

// Load никогда не возвращает ошибку: при любой проблеме - состояние по умолчанию.
func (s *SearchStore) Load(ctx context.Context) SearchState {
	blob, err := s.store.Load(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrStateNotFound) {
			s.logger.Warn("SearchStore: не удалось прочитать состояние", zap.String("key", s.key), zap.Error(err))
		}
		return s.Defaults()
	}

	state, err := DecodeState(blob)
	if err != nil {
		s.logger.Warn("SearchStore: повреждённое состояние, используем значения по умолчанию",
			zap.String("key", s.key), zap.Error(err))
		return s.Defaults()
	}
	return state
}

func (s *SearchStore) Save(ctx context.Context, state SearchState) error {
	blob, err := EncodeState(state)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, s.key, blob, s.ttl)
}

// Update: загрузить, применить действия, сохранить.
// Ошибка сохранения возвращается вместе с уже обновлённым состоянием.
func (s *SearchStore) Update(ctx context.Context, reducer Reducer, actions ...Action) (SearchState, error) {
	state := s.Load(ctx)
	for _, a := range actions {
		state = reducer.Reduce(state, a)
	}
	if err := s.Save(ctx, state); err != nil {
		return state, fmt.Errorf("не удалось сохранить состояние списка: %w", err)
	}
	return state, nil
}
