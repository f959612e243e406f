package services

import (
	"context"
	"slices"
	"sort"
	"time"

	"go.uber.org/zap"

	"backoffice/internal/dto"
	"backoffice/internal/listkit"
	"backoffice/internal/repositories"
	"backoffice/pkg/api"
	apperrors "backoffice/pkg/errors"
)

// maxPerPage - верхняя граница размера страницы (как у per_page в query).
const maxPerPage = 500

// Identifiable - строка таблицы с id для выбора.
type Identifiable interface {
	GetID() int64
}

// ListPageDefinition - всё, чем страницы списков отличаются друг от друга.
type ListPageDefinition[T Identifiable] struct {
	Scope    string
	Defaults listkit.SearchState
	Reducer  listkit.Reducer
	Fields   []FilterField
	Sortable []string
	Fetch    listkit.FetchFunc[T]
}

func (d ListPageDefinition[T]) field(key string) (FilterField, bool) {
	for _, f := range d.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FilterField{}, false
}

// ListQuery - изменения состояния, пришедшие в GET /api/{scope}.
type ListQuery struct {
	Search       *string
	Filters      map[string]string
	Page         *int
	PerPage      *int
	SortBy       string
	SortDir      string
	ResetFilters bool
	RemoveChip   string
}

// ListPage - нетипизированная сторона страницы для живых сессий.
type ListPage interface {
	Scope() string
	Reducer() listkit.Reducer
	Validate(a listkit.Action) (listkit.Action, error)
	SearchStore(store listkit.StateStore, key string) *listkit.SearchStore
	Chips(ctx context.Context, filters listkit.Filters) []listkit.Chip
	FetchAny(ctx context.Context, state listkit.SearchState) (listkit.Page[any], error)
	// Commit запоминает загруженную страницу: новый набор строк сбрасывает выбор.
	Commit(ctx context.Context, user string, page listkit.Page[any]) []int64
	Select(ctx context.Context, user string, op listkit.SelectionOp, id int64) (*dto.SelectionResponseDTO, error)
}

type ListPageService[T Identifiable] struct {
	def        ListPageDefinition[T]
	lookups    LookupServiceInterface
	selections repositories.SelectionRepositoryInterface
	pages      repositories.PageCacheRepositoryInterface
	stateTTL   time.Duration
	logger     *zap.Logger
}

func NewListPageService[T Identifiable](
	def ListPageDefinition[T],
	lookups LookupServiceInterface,
	selections repositories.SelectionRepositoryInterface,
	pages repositories.PageCacheRepositoryInterface,
	stateTTL time.Duration,
	logger *zap.Logger,
) *ListPageService[T] {
	return &ListPageService[T]{
		def:        def,
		lookups:    lookups,
		selections: selections,
		pages:      pages,
		stateTTL:   stateTTL,
		logger:     logger.Named(def.Scope),
	}
}

func (s *ListPageService[T]) Scope() string { return s.def.Scope }

func (s *ListPageService[T]) Reducer() listkit.Reducer { return s.def.Reducer }

func (s *ListPageService[T]) Definition() ListPageDefinition[T] { return s.def }

func (s *ListPageService[T]) SearchStore(store listkit.StateStore, key string) *listkit.SearchStore {
	return listkit.NewSearchStore(store, key, s.def.Defaults, s.stateTTL, s.logger)
}

// Chips строит плашки; справочники грузятся только для активных полей.
func (s *ListPageService[T]) Chips(ctx context.Context, filters listkit.Filters) []listkit.Chip {
	table := make(listkit.ChipTable, 0, len(s.def.Fields))
	for _, f := range s.def.Fields {
		var names map[int64]string
		if f.Lookup != "" && s.lookups != nil && listkit.Truthy(filters[f.Key]) {
			names = s.lookups.Names(ctx, f.Lookup)
		}
		table = append(table, f.chipField(names))
	}
	return listkit.FiltersToChips(filters, table)
}

// Apply применяет параметры запроса к состоянию в фиксированном порядке:
// сброс, удаление плашки, поиск, фильтры, сортировка, размер и номер страницы.
func (s *ListPageService[T]) Apply(ctx context.Context, state listkit.SearchState, q ListQuery) (listkit.SearchState, error) {
	reduce := func(a listkit.Action) { state = s.def.Reducer.Reduce(state, a) }

	if q.ResetFilters {
		reduce(listkit.ClearFilters())
	}
	if q.RemoveChip != "" {
		reduce(listkit.ReplaceFilters(listkit.RemoveChip(s.Chips(ctx, state.Filters), q.RemoveChip)))
	}
	if q.Search != nil {
		if _, ok := s.def.field("search"); ok {
			reduce(listkit.SetFilter("search", *q.Search))
		}
	}

	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		f, ok := s.def.field(key)
		if !ok {
			s.logger.Debug("Неизвестное поле фильтра пропущено", zap.String("field", key))
			continue
		}
		value, err := f.Parse(q.Filters[key])
		if err != nil {
			return state, err
		}
		reduce(listkit.SetFilter(key, value))
	}

	if q.SortBy != "" || q.SortDir != "" {
		field := q.SortBy
		if field == "" {
			field = state.SortBy
		}
		if !slices.Contains(s.def.Sortable, field) {
			return state, apperrors.NewInvalidInputError("Сортировка по полю '%s' не поддерживается", field)
		}
		dir := listkit.SortDir(q.SortDir)
		if dir == "" {
			dir = state.SortDir
		}
		if dir == "" {
			dir = listkit.SortAsc
		}
		reduce(listkit.SetSort(field, dir))
	}

	if q.PerPage != nil {
		reduce(listkit.SetPerPage(*q.PerPage))
	}
	if q.Page != nil {
		reduce(listkit.SetPage(*q.Page))
	}
	return state, nil
}

func (s *ListPageService[T]) LoadState(ctx context.Context, store listkit.StateStore, key string) listkit.SearchState {
	return s.SearchStore(store, key).Load(ctx)
}

func (s *ListPageService[T]) State(ctx context.Context, store listkit.StateStore, key string) *dto.StateResponseDTO {
	state := s.LoadState(ctx, store, key)
	return &dto.StateResponseDTO{State: state, Chips: s.Chips(ctx, state.Filters)}
}

// Validate проверяет действие из живой сессии по тем же правилам, что и
// параметры GET-запроса, и возвращает его с типизированными значениями.
func (s *ListPageService[T]) Validate(a listkit.Action) (listkit.Action, error) {
	switch a.Type {
	case listkit.ActionSetFilter:
		f, ok := s.def.field(a.Key)
		if !ok {
			return a, unknownFilter(a.Key)
		}
		value, err := f.Accept(a.Value)
		if err != nil {
			return a, err
		}
		a.Value = value
	case listkit.ActionRemoveFilter:
		if _, ok := s.def.field(a.Key); !ok {
			return a, unknownFilter(a.Key)
		}
	case listkit.ActionReplaceFilters:
		filters := make(listkit.Filters, len(a.Filters))
		for key, v := range a.Filters {
			f, ok := s.def.field(key)
			if !ok {
				return a, unknownFilter(key)
			}
			value, err := f.Accept(v)
			if err != nil {
				return a, err
			}
			filters[key] = value
		}
		a.Filters = filters
	case listkit.ActionClearFilters:
	case listkit.ActionSetPage:
		if a.Page < 0 {
			return a, apperrors.NewInvalidInputError("Номер страницы не может быть отрицательным")
		}
	case listkit.ActionSetPerPage:
		if a.PerPage < 1 || a.PerPage > maxPerPage {
			return a, apperrors.NewInvalidInputError("Размер страницы должен быть от 1 до %d", maxPerPage)
		}
	case listkit.ActionSetSort:
		if !slices.Contains(s.def.Sortable, a.SortBy) {
			return a, apperrors.NewInvalidInputError("Сортировка по полю '%s' не поддерживается", a.SortBy)
		}
		switch a.SortDir {
		case "":
			a.SortDir = listkit.SortAsc
		case listkit.SortAsc, listkit.SortDesc:
		default:
			return a, apperrors.NewInvalidInputError("Некорректное направление сортировки '%s'", a.SortDir)
		}
	default:
		return a, apperrors.NewInvalidInputError("Неизвестное действие '%s'", a.Type)
	}
	return a, nil
}

func unknownFilter(key string) error {
	return apperrors.NewInvalidInputError("Фильтр '%s' не поддерживается", key)
}

// Query: загрузить состояние, применить параметры, сохранить и запросить страницу.
// Если API не ответил, отдаётся последняя удачная страница с stale=true.
func (s *ListPageService[T]) Query(ctx context.Context, store listkit.StateStore, key, user string, q ListQuery) (*dto.ListPageDTO[T], error) {
	ss := s.SearchStore(store, key)
	state, err := s.Apply(ctx, ss.Load(ctx), q)
	if err != nil {
		return nil, err
	}
	if err := ss.Save(ctx, state); err != nil {
		s.logger.Warn("Не удалось сохранить состояние списка", zap.String("key", key), zap.Error(err))
	}

	result := &dto.ListPageDTO[T]{State: state, Chips: s.Chips(ctx, state.Filters)}

	page, err := s.def.Fetch(ctx, state)
	if err != nil {
		var cached listkit.Page[T]
		if cacheErr := s.pages.Load(ctx, s.def.Scope, user, &cached); cacheErr != nil {
			return nil, err
		}
		s.logger.Warn("API не ответил, отдаём последнюю страницу", zap.String("user", user), zap.Error(err))
		result.Items = cached.Items
		result.Total = cached.Total
		result.Stale = true
		result.Selected = s.selected(ctx, user)
	} else {
		result.Items = page.Items
		result.Total = page.Total
		result.Selected = s.commit(ctx, user, page)
	}

	if result.Items == nil {
		result.Items = []T{}
	}
	result.TotalPages = api.TotalPages(uint64(max(result.Total, 0)), state.PerPage)
	return result, nil
}

func (s *ListPageService[T]) commit(ctx context.Context, user string, page listkit.Page[T]) []int64 {
	ids := make([]int64, len(page.Items))
	for i, item := range page.Items {
		ids[i] = item.GetID()
	}

	sel, err := s.selections.Load(ctx, s.def.Scope, user)
	if err != nil {
		s.logger.Warn("Не удалось прочитать выбор строк", zap.Error(err))
		sel = listkit.NewSelection[int64]()
	}
	sel.SetItems(ids)
	if err := s.selections.Save(ctx, s.def.Scope, user, sel); err != nil {
		s.logger.Warn("Не удалось сохранить выбор строк", zap.Error(err))
	}
	if err := s.pages.Save(ctx, s.def.Scope, user, page); err != nil {
		s.logger.Warn("Не удалось закешировать страницу", zap.Error(err))
	}
	return sel.Selected()
}

func (s *ListPageService[T]) selected(ctx context.Context, user string) []int64 {
	sel, err := s.selections.Load(ctx, s.def.Scope, user)
	if err != nil {
		return []int64{}
	}
	return sel.Selected()
}

// Selection - текущий выбор пользователя на этой странице.
func (s *ListPageService[T]) Selection(ctx context.Context, user string) (*listkit.Selection[int64], error) {
	return s.selections.Load(ctx, s.def.Scope, user)
}

func (s *ListPageService[T]) Select(ctx context.Context, user string, op listkit.SelectionOp, id int64) (*dto.SelectionResponseDTO, error) {
	sel, err := s.selections.Load(ctx, s.def.Scope, user)
	if err != nil {
		return nil, err
	}
	if !sel.Apply(op, id) {
		return nil, apperrors.NewInvalidInputError("Неизвестная операция выбора '%s'", op)
	}
	if err := s.selections.Save(ctx, s.def.Scope, user, sel); err != nil {
		return nil, err
	}

	selected := sel.Selected()
	return &dto.SelectionResponseDTO{
		Selected:   selected,
		Generation: sel.Generation(),
		AllChecked: len(sel.Items()) > 0 && len(selected) == len(sel.Items()),
	}, nil
}

func (s *ListPageService[T]) FetchAny(ctx context.Context, state listkit.SearchState) (listkit.Page[any], error) {
	page, err := s.def.Fetch(ctx, state)
	if err != nil {
		return listkit.Page[any]{}, err
	}
	items := make([]any, len(page.Items))
	for i, item := range page.Items {
		items[i] = item
	}
	return listkit.Page[any]{Items: items, Total: page.Total}, nil
}

func (s *ListPageService[T]) Commit(ctx context.Context, user string, page listkit.Page[any]) []int64 {
	typed := listkit.Page[T]{Items: make([]T, 0, len(page.Items)), Total: page.Total}
	for _, item := range page.Items {
		if v, ok := item.(T); ok {
			typed.Items = append(typed.Items, v)
		}
	}
	return s.commit(ctx, user, typed)
}
