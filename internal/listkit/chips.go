package listkit

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Chip - удаляемая "плашка" активного фильтра.
type Chip struct {
	Key          string `json:"key"`
	Label        string `json:"label"`
	Value        any    `json:"value"`
	DisplayValue string `json:"displayValue"`
}

// ChipField описывает, как показывать одно поле фильтра.
// Display может быть nil - тогда значение форматируется как есть.
type ChipField struct {
	Key     string
	Label   string
	Display func(value any) string
}

// ChipTable - упорядоченный набор полей; порядок таблицы = порядок плашек.
type ChipTable []ChipField

func (t ChipTable) field(key string) (ChipField, bool) {
	for _, f := range t {
		if f.Key == key {
			return f, true
		}
	}
	return ChipField{}, false
}

// FiltersToChips строит плашки для всех активных фильтров.
// Сначала поля из таблицы в её порядке, затем неизвестные поля по алфавиту.
func FiltersToChips(filters Filters, table ChipTable) []Chip {
	chips := make([]Chip, 0, len(filters))
	seen := make(map[string]struct{}, len(table))

	for _, f := range table {
		seen[f.Key] = struct{}{}
		v, ok := filters[f.Key]
		if !ok || !Truthy(v) {
			continue
		}
		chips = append(chips, makeChip(f, v))
	}

	var rest []string
	for k, v := range filters {
		if _, ok := seen[k]; ok || !Truthy(v) {
			continue
		}
		rest = append(rest, k)
	}
	sort.Strings(rest)
	for _, k := range rest {
		chips = append(chips, makeChip(ChipField{Key: k, Label: k}, filters[k]))
	}
	return chips
}

func makeChip(f ChipField, v any) Chip {
	display := FormatValue(v)
	if f.Display != nil {
		display = f.Display(v)
	}
	label := f.Label
	if label == "" {
		label = f.Key
	}
	return Chip{Key: f.Key, Label: label, Value: v, DisplayValue: display}
}

// ChipsToFilters сворачивает плашки обратно в фильтры по chip.Key.
func ChipsToFilters(chips []Chip) Filters {
	out := make(Filters, len(chips))
	for _, c := range chips {
		out[c.Key] = c.Value
	}
	return out
}

// RemoveChip убирает плашку и возвращает оставшиеся фильтры.
func RemoveChip(chips []Chip, key string) Filters {
	kept := make([]Chip, 0, len(chips))
	for _, c := range chips {
		if c.Key != key {
			kept = append(kept, c)
		}
	}
	return ChipsToFilters(kept)
}

// FormatValue - отображение значения без справочников.
func FormatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "Да"
		}
		return "Нет"
	case []string:
		return strings.Join(val, ", ")
	case []int64:
		parts := make([]string, len(val))
		for i, n := range val {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

// LookupDisplay возвращает Display, который переводит id в имя по справочнику.
// Неизвестные id показываются как есть.
func LookupDisplay(names map[int64]string) func(any) string {
	name := func(id int64) string {
		if n, ok := names[id]; ok {
			return n
		}
		return strconv.FormatInt(id, 10)
	}
	return func(v any) string {
		switch val := v.(type) {
		case int64:
			return name(val)
		case []int64:
			parts := make([]string, len(val))
			for i, id := range val {
				parts[i] = name(id)
			}
			return strings.Join(parts, ", ")
		case string:
			if id, err := strconv.ParseInt(val, 10, 64); err == nil {
				return name(id)
			}
			return val
		default:
			return FormatValue(v)
		}
	}
}
