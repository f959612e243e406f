package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/listkit"
)

func TestFilterField_Parse(t *testing.T) {
	tests := []struct {
		name    string
		field   FilterField
		raw     string
		want    any
		wantErr bool
	}{
		{"строка", FilterField{Key: "email", Kind: FilterString}, " a@b.c ", "a@b.c", false},
		{"пусто снимает фильтр", FilterField{Key: "email", Kind: FilterString}, "", "", false},
		{"список строк", FilterField{Key: "status", Kind: FilterStringList}, "pending, approved,", []string{"pending", "approved"}, false},
		{"число", FilterField{Key: "storeId", Kind: FilterInt}, "7", int64(7), false},
		{"не число", FilterField{Key: "storeId", Kind: FilterInt}, "seven", nil, true},
		{"список чисел", FilterField{Key: "statusId", Kind: FilterIntList}, "1,4", []int64{1, 4}, false},
		{"false остаётся фильтром", FilterField{Key: "is_active", Kind: FilterBool}, "false", "false", false},
		{"bool", FilterField{Key: "is_active", Kind: FilterBool}, "1", "true", false},
		{"дата", FilterField{Key: "dateFrom", Kind: FilterDate}, "2024-02-29", "2024-02-29", false},
		{"плохая дата", FilterField{Key: "dateFrom", Kind: FilterDate}, "2024-02-30", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.field.Parse(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterField_EnumChips(t *testing.T) {
	page := TaxFreePage(nil)
	var status FilterField
	for _, f := range page.Fields {
		if f.Key == "status" {
			status = f
		}
	}
	chips := listkit.FiltersToChips(listkit.Filters{"status": []string{"pending", "rejected"}}, listkit.ChipTable{status.chipField(nil)})
	require.Len(t, chips, 1)
	assert.Equal(t, "На рассмотрении, Отклонена", chips[0].DisplayValue)

	active := FilterField{Key: "is_active", Label: "Активна", Kind: FilterBool}
	chips = listkit.FiltersToChips(listkit.Filters{"is_active": "false"}, listkit.ChipTable{active.chipField(nil)})
	assert.Equal(t, "Нет", chips[0].DisplayValue)
}

func TestPages_ResetPolicy(t *testing.T) {
	assert.True(t, OrdersPage(nil).Reducer.ResetPageOnFilter)
	assert.True(t, JobOffersPage(nil).Reducer.ResetPageOnFilter)
	assert.True(t, TaxFreePage(nil).Reducer.ResetPageOnFilter)
	assert.False(t, CountriesPage(nil).Reducer.ResetPageOnFilter)
	assert.False(t, HelpCenterPage(nil).Reducer.ResetPageOnFilter)

	orders := OrdersPage(nil).Defaults
	assert.Equal(t, listkit.SearchState{Filters: listkit.Filters{}, Page: 0, PerPage: 25, SortBy: "created_at", SortDir: listkit.SortDesc}, orders)
}

func TestFilterField_Accept(t *testing.T) {
	tests := []struct {
		name    string
		field   FilterField
		value   any
		want    any
		wantErr bool
	}{
		{"строка разбирается как query", FilterField{Key: "statusId", Kind: FilterIntList}, "1,4", []int64{1, 4}, false},
		{"список чисел", FilterField{Key: "statusId", Kind: FilterIntList}, []any{1, 4}, []int64{1, 4}, false},
		{"одно число в список", FilterField{Key: "statusId", Kind: FilterIntList}, 3, []int64{3}, false},
		{"строки-числа в список", FilterField{Key: "statusId", Kind: FilterIntList}, []any{"1", "4"}, []int64{1, 4}, false},
		{"нечисловой список", FilterField{Key: "statusId", Kind: FilterIntList}, []any{"a", 1}, nil, true},
		{"целое из float", FilterField{Key: "storeId", Kind: FilterInt}, 7.0, int64(7), false},
		{"дробное для числа", FilterField{Key: "storeId", Kind: FilterInt}, 7.5, nil, true},
		{"bool false активен", FilterField{Key: "is_active", Kind: FilterBool}, false, "false", false},
		{"bool из числа", FilterField{Key: "is_active", Kind: FilterBool}, 1, nil, true},
		{"пустой список снимает фильтр", FilterField{Key: "status", Kind: FilterStringList}, []any{}, []int64{}, false},
		{"дата не строкой", FilterField{Key: "dateFrom", Kind: FilterDate}, 20240229, nil, true},
		{"объект", FilterField{Key: "email", Kind: FilterString}, map[string]any{"$ne": 1}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.field.Accept(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
