package adminapi

import (
	"context"
	"strconv"

	"backoffice/internal/entities"
)

// Эндпоинты списков. Соглашения разные у разных ресурсов - это свойство API,
// здесь оно только описано.
var (
	OrdersEndpoint = ListEndpoint{
		Resource:     "orders",
		V2:           true,
		Pages:        PageOneBased,
		Params:       CamelParams,
		ItemsField:   "data",
		TotalField:   "total",
		FilterParams: map[string]string{"dateFrom": "createdFrom", "dateTo": "createdTo"},
	}

	CountriesEndpoint = ListEndpoint{
		Resource:   "countries",
		Pages:      PageRaw,
		Params:     SnakeParams,
		ItemsField: "items",
		TotalField: "total",
	}

	JobOffersEndpoint = ListEndpoint{
		Resource:     "job-offers",
		Pages:        PageOneBased,
		Params:       SnakeParams,
		ItemsField:   "data",
		TotalField:   "total",
		FilterParams: map[string]string{"employmentType": "employment_type", "isPublished": "is_published"},
	}

	HelpArticlesEndpoint = ListEndpoint{
		Resource:   "help-center/articles",
		Pages:      PageRaw,
		Params:     CamelParams,
		ItemsField: "items",
		TotalField: "total",
	}

	TaxFreeEndpoint = ListEndpoint{
		Resource:     "tax-free",
		Pages:        PageOneBased,
		Params:       SnakeParams,
		ItemsField:   "data",
		TotalField:   "count",
		FilterParams: map[string]string{"countryId": "country_id", "dateFrom": "date_from", "dateTo": "date_to"},
	}
)

func ID(id int64) string { return strconv.FormatInt(id, 10) }

func (c *Client) Stores(ctx context.Context) ([]entities.Store, error) {
	return ListAll[entities.Store](ctx, c, Path(false, "stores"))
}

func (c *Client) OrderStatuses(ctx context.Context) ([]entities.OrderStatus, error) {
	return ListAll[entities.OrderStatus](ctx, c, Path(false, "order-statuses"))
}

func (c *Client) HelpCategories(ctx context.Context) ([]entities.HelpCategory, error) {
	return ListAll[entities.HelpCategory](ctx, c, Path(false, "help-center/categories"))
}
