package listkit

type ActionType string

const (
	ActionSetFilter      ActionType = "set_filter"
	ActionRemoveFilter   ActionType = "remove_filter"
	ActionReplaceFilters ActionType = "replace_filters"
	ActionClearFilters   ActionType = "clear_filters"
	ActionSetPage        ActionType = "set_page"
	ActionSetPerPage     ActionType = "set_per_page"
	ActionSetSort        ActionType = "set_sort"
)

// Action - одно изменение состояния списка. Приходит и из HTTP, и из WebSocket.
type Action struct {
	Type    ActionType `json:"type"`
	Key     string     `json:"key,omitempty"`
	Value   any        `json:"value,omitempty"`
	Filters Filters    `json:"filters,omitempty"`
	Page    int        `json:"page,omitempty"`
	PerPage int        `json:"perPage,omitempty"`
	SortBy  string     `json:"sortBy,omitempty"`
	SortDir SortDir    `json:"sortDir,omitempty"`
}

func SetFilter(key string, value any) Action {
	return Action{Type: ActionSetFilter, Key: key, Value: value}
}

func RemoveFilter(key string) Action { return Action{Type: ActionRemoveFilter, Key: key} }

func ReplaceFilters(f Filters) Action { return Action{Type: ActionReplaceFilters, Filters: f} }

func ClearFilters() Action { return Action{Type: ActionClearFilters} }

func SetPage(page int) Action { return Action{Type: ActionSetPage, Page: page} }

func SetPerPage(perPage int) Action { return Action{Type: ActionSetPerPage, PerPage: perPage} }

func SetSort(field string, dir SortDir) Action {
	return Action{Type: ActionSetSort, SortBy: field, SortDir: dir}
}

// Reducer - чистая функция над SearchState.
// ResetPageOnFilter: сбрасывать ли страницу в 0 при изменении фильтров.
// Каждая страница решает это сама.
type Reducer struct {
	ResetPageOnFilter bool
}

func (r Reducer) Reduce(state SearchState, a Action) SearchState {
	next := state.Clone()

	switch a.Type {
	case ActionSetFilter:
		v := NormalizeValue(a.Value)
		if !Truthy(v) {
			delete(next.Filters, a.Key)
		} else {
			next.Filters[a.Key] = v
		}
		r.filtersChanged(&next)
	case ActionRemoveFilter:
		delete(next.Filters, a.Key)
		r.filtersChanged(&next)
	case ActionReplaceFilters:
		next.Filters = Filters{}
		for k, v := range a.Filters {
			if nv := NormalizeValue(v); Truthy(nv) {
				next.Filters[k] = nv
			}
		}
		r.filtersChanged(&next)
	case ActionClearFilters:
		next.Filters = Filters{}
		r.filtersChanged(&next)
	case ActionSetPage:
		next.Page = a.Page
	case ActionSetPerPage:
		next.PerPage = a.PerPage
		next.Page = 0
	case ActionSetSort:
		next.SortBy = a.SortBy
		next.SortDir = a.SortDir
	}
	return next
}

func (r Reducer) filtersChanged(s *SearchState) {
	if r.ResetPageOnFilter {
		s.Page = 0
	}
}

// Truthy повторяет правило "фильтр активен": пустые строки, нули,
// false и пустые списки фильтром не считаются.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case int64:
		return val != 0
	case float64:
		return val != 0
	case bool:
		return val
	case []string:
		return len(val) > 0
	case []int64:
		return len(val) > 0
	default:
		return true
	}
}
