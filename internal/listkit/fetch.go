package listkit

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Page - одна страница результата от API.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// Paginated - то, что видит таблица: строки, общее число и флаг загрузки.
type Paginated[T any] struct {
	Items   []T  `json:"items"`
	Total   int  `json:"total"`
	Loading bool `json:"loading"`
}

type FetchFunc[T any] func(ctx context.Context, state SearchState) (Page[T], error)

// Result - итог одного вызова Fetch. Superseded означает, что пока шёл
// запрос, был выпущен более новый, и этот результат отброшен.
type Result[T any] struct {
	Page       Page[T]
	Err        error
	Superseded bool
}

func (r Result[T]) OK() bool { return r.Err == nil && !r.Superseded }

// Fetcher выполняет запросы страницы по одному на изменение состояния.
// Новый Fetch отменяет предыдущий незавершённый; записать результат
// может только последний выпущенный вызов.
// При ошибке прежние строки остаются на месте.
type Fetcher[T any] struct {
	fetch  FetchFunc[T]
	logger *zap.Logger

	mu      sync.Mutex
	current Paginated[T]
	seq     uint64
	cancel  context.CancelFunc
}

func NewFetcher[T any](fetch FetchFunc[T], logger *zap.Logger) *Fetcher[T] {
	return &Fetcher[T]{fetch: fetch, logger: logger}
}

func (f *Fetcher[T]) Fetch(ctx context.Context, state SearchState) Result[T] {
	return f.FetchThen(ctx, state, nil)
}

// FetchThen - Fetch, после которого commit вызывается только для последнего
// выпущенного запроса. Пока commit работает, новый Fetch ждёт, поэтому
// запоминание старой страницы не может лечь поверх более новой.
func (f *Fetcher[T]) FetchThen(ctx context.Context, state SearchState, commit func(Page[T])) Result[T] {
	f.mu.Lock()
	f.seq++
	token := f.seq
	if f.cancel != nil {
		f.cancel()
	}
	callCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.current.Loading = true
	f.mu.Unlock()

	page, err := f.fetch(callCtx, state)

	f.mu.Lock()
	defer f.mu.Unlock()
	if token != f.seq {
		cancel()
		return Result[T]{Superseded: true}
	}
	f.cancel = nil
	cancel()
	f.current.Loading = false

	if err != nil {
		f.logger.Error("Fetcher: ошибка загрузки страницы",
			zap.Int("page", state.Page),
			zap.Int("per_page", state.PerPage),
			zap.Error(err),
		)
		return Result[T]{Err: err}
	}

	f.current.Items = page.Items
	f.current.Total = page.Total
	if commit != nil {
		commit(page)
	}
	return Result[T]{Page: page}
}

func (f *Fetcher[T]) Snapshot() Paginated[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.current
	out.Items = append([]T(nil), f.current.Items...)
	return out
}

// Stop отменяет незавершённый запрос, если он есть.
func (f *Fetcher[T]) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.current.Loading = false
}
