package dto

import "backoffice/internal/listkit"

// ListQueryDTO - параметры GET /api/{scope}. Фильтры filter[поле] разбираются отдельно.
type ListQueryDTO struct {
	Search       *string `query:"search"`
	Page         *int    `query:"page" validate:"omitempty,gte=0"`
	PerPage      *int    `query:"per_page" validate:"omitempty,min=1,max=500"`
	SortBy       string  `query:"sort_by" validate:"omitempty,max=64"`
	SortDir      string  `query:"sort_dir" validate:"omitempty,oneof=asc desc"`
	ResetFilters bool    `query:"reset_filters"`
	RemoveChip   string  `query:"remove_chip"`
}

// ListPageDTO - ответ страницы списка: состояние, плашки и строки.
type ListPageDTO[T any] struct {
	State      listkit.SearchState `json:"state"`
	Chips      []listkit.Chip      `json:"chips"`
	Items      []T                 `json:"items"`
	Total      int                 `json:"total"`
	TotalPages int                 `json:"totalPages"`
	Loading    bool                `json:"loading"`
	Stale      bool                `json:"stale"`
	Selected   []int64             `json:"selected"`
}

type SelectionDTO struct {
	Op string `json:"op" validate:"required,oneof=select_one deselect_one select_all deselect_all"`
	ID int64  `json:"id"`
}

// SelectionResponseDTO - выбор после операции.
type SelectionResponseDTO struct {
	Selected   []int64 `json:"selected"`
	Generation uint64  `json:"generation"`
	AllChecked bool    `json:"allChecked"`
}

type StateResponseDTO struct {
	State listkit.SearchState `json:"state"`
	Chips []listkit.Chip      `json:"chips"`
}
