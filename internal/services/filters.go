package services

import (
	"strconv"
	"strings"
	"time"

	"backoffice/internal/listkit"
	apperrors "backoffice/pkg/errors"
	"backoffice/pkg/utils"
)

type FilterKind int

const (
	FilterString FilterKind = iota
	FilterStringList
	FilterInt
	FilterIntList
	FilterBool
	FilterDate
)

const dateLayout = "2006-01-02"

var boolValues = map[string]string{"true": "Да", "false": "Нет"}

// FilterField - одно поле фильтра страницы.
type FilterField struct {
	Key    string
	Label  string
	Kind   FilterKind
	Lookup LookupKind
	// Values - подписи для перечислений (например, статусы tax-free).
	Values map[string]string
}

// Parse переводит строку из query в типизированное значение фильтра.
// Пустая строка - "фильтр снят".
func (f FilterField) Parse(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	switch f.Kind {
	case FilterStringList:
		var out []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	case FilterInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, f.invalid(raw)
		}
		return n, nil
	case FilterIntList:
		ids, err := utils.ParseInt64Slice(strings.Split(raw, ","))
		if err != nil {
			return nil, f.invalid(raw)
		}
		return ids, nil
	case FilterBool:
		// строкой: "false" - тоже активный фильтр
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, f.invalid(raw)
		}
		return strconv.FormatBool(b), nil
	case FilterDate:
		if _, err := time.Parse(dateLayout, raw); err != nil {
			return nil, f.invalid(raw)
		}
		return raw, nil
	default:
		return raw, nil
	}
}

// Accept проверяет значение, пришедшее уже типизированным (WebSocket).
// Строки разбираются так же, как в query; пустые значения снимают фильтр.
func (f FilterField) Accept(v any) (any, error) {
	v = listkit.NormalizeValue(v)
	if raw, ok := v.(string); ok {
		return f.Parse(raw)
	}
	if f.Kind == FilterBool {
		if b, ok := v.(bool); ok {
			return strconv.FormatBool(b), nil
		}
	}
	if !listkit.Truthy(v) {
		return v, nil
	}

	switch val := v.(type) {
	case int64:
		switch f.Kind {
		case FilterInt:
			return val, nil
		case FilterIntList:
			return []int64{val}, nil
		}
	case []int64:
		switch f.Kind {
		case FilterIntList:
			return val, nil
		case FilterStringList:
			out := make([]string, len(val))
			for i, n := range val {
				out[i] = strconv.FormatInt(n, 10)
			}
			return out, nil
		}
	case []string:
		switch f.Kind {
		case FilterStringList:
			return val, nil
		case FilterIntList:
			ids, err := utils.ParseInt64Slice(val)
			if err != nil {
				return nil, f.invalid(listkit.FormatValue(val))
			}
			return ids, nil
		}
	}
	return nil, f.invalid(listkit.FormatValue(v))
}

func (f FilterField) invalid(raw string) error {
	return apperrors.NewInvalidInputError("Некорректное значение фильтра '%s': %s", f.Key, raw)
}

// chipField строит описание плашки, подставляя названия из справочника.
func (f FilterField) chipField(names map[int64]string) listkit.ChipField {
	cf := listkit.ChipField{Key: f.Key, Label: f.Label}
	if f.Kind == FilterBool && len(f.Values) == 0 {
		f.Values = boolValues
	}
	switch {
	case f.Lookup != "" && names != nil:
		cf.Display = listkit.LookupDisplay(names)
	case len(f.Values) > 0:
		values := f.Values
		cf.Display = func(v any) string {
			if list, ok := v.([]string); ok {
				out := make([]string, len(list))
				for i, s := range list {
					out[i] = displayEnum(values, s)
				}
				return strings.Join(out, ", ")
			}
			return displayEnum(values, listkit.FormatValue(v))
		}
	}
	return cf
}

func displayEnum(values map[string]string, key string) string {
	if label, ok := values[key]; ok {
		return label
	}
	return key
}
