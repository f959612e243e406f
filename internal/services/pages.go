package services

import (
	"context"

	"backoffice/internal/adminapi"
	"backoffice/internal/entities"
	"backoffice/internal/listkit"
)

const (
	ScopeOrders     = "orders"
	ScopeCountries  = "countries"
	ScopeJobOffers  = "job-offers"
	ScopeHelpCenter = "help-center"
	ScopeTaxFree    = "tax-free"
)

func fetchFrom[T any](client *adminapi.Client, endpoint adminapi.ListEndpoint) listkit.FetchFunc[T] {
	return func(ctx context.Context, state listkit.SearchState) (listkit.Page[T], error) {
		return adminapi.List[T](ctx, client, endpoint, state)
	}
}

func defaults(perPage int, sortBy string, dir listkit.SortDir) listkit.SearchState {
	return listkit.SearchState{Filters: listkit.Filters{}, Page: 0, PerPage: perPage, SortBy: sortBy, SortDir: dir}
}

// Страница сбрасывается на первую при смене фильтров у заказов, вакансий и tax-free.
// У стран и справочного центра номер страницы сохраняется.

func OrdersPage(client *adminapi.Client) ListPageDefinition[entities.Order] {
	return ListPageDefinition[entities.Order]{
		Scope:    ScopeOrders,
		Defaults: defaults(25, "created_at", listkit.SortDesc),
		Reducer:  listkit.Reducer{ResetPageOnFilter: true},
		Fields: []FilterField{
			{Key: "search", Label: "Поиск", Kind: FilterString},
			{Key: "statusId", Label: "Статус", Kind: FilterIntList, Lookup: LookupOrderStatuses},
			{Key: "storeId", Label: "Магазин", Kind: FilterInt, Lookup: LookupStores},
			{Key: "email", Label: "Email", Kind: FilterString},
			{Key: "dateFrom", Label: "Дата с", Kind: FilterDate},
			{Key: "dateTo", Label: "Дата по", Kind: FilterDate},
			{Key: "groupId", Label: "Группа", Kind: FilterInt},
		},
		Sortable: []string{"created_at", "number", "total", "statusId"},
		Fetch:    fetchFrom[entities.Order](client, adminapi.OrdersEndpoint),
	}
}

func CountriesPage(client *adminapi.Client) ListPageDefinition[entities.Country] {
	return ListPageDefinition[entities.Country]{
		Scope:    ScopeCountries,
		Defaults: defaults(25, "name", listkit.SortAsc),
		Reducer:  listkit.Reducer{ResetPageOnFilter: false},
		Fields: []FilterField{
			{Key: "search", Label: "Поиск", Kind: FilterString},
			{Key: "currency", Label: "Валюта", Kind: FilterString},
			{Key: "is_active", Label: "Активна", Kind: FilterBool},
		},
		Sortable: []string{"name", "code", "created_at"},
		Fetch:    fetchFrom[entities.Country](client, adminapi.CountriesEndpoint),
	}
}

func JobOffersPage(client *adminapi.Client) ListPageDefinition[entities.JobOffer] {
	return ListPageDefinition[entities.JobOffer]{
		Scope:    ScopeJobOffers,
		Defaults: defaults(20, "created_at", listkit.SortDesc),
		Reducer:  listkit.Reducer{ResetPageOnFilter: true},
		Fields: []FilterField{
			{Key: "search", Label: "Поиск", Kind: FilterString},
			{Key: "department", Label: "Отдел", Kind: FilterString},
			{Key: "location", Label: "Город", Kind: FilterString},
			{Key: "employmentType", Label: "Занятость", Kind: FilterStringList, Values: map[string]string{
				"full_time":  "Полная",
				"part_time":  "Частичная",
				"contract":   "Контракт",
				"internship": "Стажировка",
			}},
			{Key: "isPublished", Label: "Статус", Kind: FilterBool, Values: map[string]string{
				"true":  "Опубликована",
				"false": "Черновик",
			}},
		},
		Sortable: []string{"created_at", "title", "published_at"},
		Fetch:    fetchFrom[entities.JobOffer](client, adminapi.JobOffersEndpoint),
	}
}

func HelpCenterPage(client *adminapi.Client) ListPageDefinition[entities.HelpArticle] {
	return ListPageDefinition[entities.HelpArticle]{
		Scope:    ScopeHelpCenter,
		Defaults: defaults(20, "createdAt", listkit.SortDesc),
		Reducer:  listkit.Reducer{ResetPageOnFilter: false},
		Fields: []FilterField{
			{Key: "search", Label: "Поиск", Kind: FilterString},
			{Key: "categoryId", Label: "Категория", Kind: FilterInt, Lookup: LookupHelpCategories},
			{Key: "language", Label: "Язык", Kind: FilterString},
			{Key: "isPublished", Label: "Опубликована", Kind: FilterBool},
		},
		Sortable: []string{"createdAt", "title"},
		Fetch:    fetchFrom[entities.HelpArticle](client, adminapi.HelpArticlesEndpoint),
	}
}

func TaxFreePage(client *adminapi.Client) ListPageDefinition[entities.TaxFreeRequest] {
	return ListPageDefinition[entities.TaxFreeRequest]{
		Scope:    ScopeTaxFree,
		Defaults: defaults(25, "created_at", listkit.SortDesc),
		Reducer:  listkit.Reducer{ResetPageOnFilter: true},
		Fields: []FilterField{
			{Key: "search", Label: "Поиск", Kind: FilterString},
			{Key: "status", Label: "Статус", Kind: FilterStringList, Values: map[string]string{
				string(entities.TaxFreePending):  "На рассмотрении",
				string(entities.TaxFreeApproved): "Одобрена",
				string(entities.TaxFreeRejected): "Отклонена",
			}},
			{Key: "countryId", Label: "Страна", Kind: FilterInt},
			{Key: "dateFrom", Label: "Дата с", Kind: FilterDate},
			{Key: "dateTo", Label: "Дата по", Kind: FilterDate},
		},
		Sortable: []string{"created_at", "amount"},
		Fetch:    fetchFrom[entities.TaxFreeRequest](client, adminapi.TaxFreeEndpoint),
	}
}
