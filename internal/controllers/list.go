package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice/internal/dto"
	"backoffice/internal/listkit"
	"backoffice/internal/repositories"
	"backoffice/internal/services"
	apperrors "backoffice/pkg/errors"
	"backoffice/pkg/utils"
)

// ListController - общие ручки страницы списка: строки, состояние, выбор.
type ListController[T services.Identifiable] struct {
	page   *services.ListPageService[T]
	stores *repositories.StateStoreFactory
	logger *zap.Logger
}

func NewListController[T services.Identifiable](page *services.ListPageService[T], stores *repositories.StateStoreFactory, logger *zap.Logger) *ListController[T] {
	return &ListController[T]{page: page, stores: stores, logger: logger}
}

func (c *ListController[T]) List(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	user, err := utils.GetUserFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	query, err := bindListQuery(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	store, key := c.stores.For(ctx, c.page.Scope(), user)
	res, err := c.page.Query(reqCtx, store, key, user, query)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Successfully", http.StatusOK)
}

func (c *ListController[T]) State(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	user, err := utils.GetUserFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	store, key := c.stores.For(ctx, c.page.Scope(), user)
	return utils.SuccessResponse(ctx, c.page.State(reqCtx, store, key), "Successfully", http.StatusOK)
}

func (c *ListController[T]) Select(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	user, err := utils.GetUserFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var req dto.SelectionDTO
	if err := ctx.Bind(&req); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequest("Неверное тело запроса", err), c.logger)
	}
	if err := ctx.Validate(&req); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.page.Select(reqCtx, user, listkit.SelectionOp(req.Op), req.ID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Successfully", http.StatusOK)
}

// bindListQuery разбирает query. Указатели нужны, чтобы отличить
// "параметр не передан" от нулевого значения.
func bindListQuery(ctx echo.Context) (services.ListQuery, error) {
	values := ctx.QueryParams()

	var (
		q       dto.ListQueryDTO
		page    int
		perPage int
	)
	err := echo.QueryParamsBinder(ctx).
		String("sort_by", &q.SortBy).
		String("sort_dir", &q.SortDir).
		Bool("reset_filters", &q.ResetFilters).
		String("remove_chip", &q.RemoveChip).
		Int("page", &page).
		Int("per_page", &perPage).
		BindError()
	if err != nil {
		return services.ListQuery{}, apperrors.NewBadRequest("Неверные параметры запроса", err)
	}
	if values.Has("search") {
		search := values.Get("search")
		q.Search = &search
	}
	if values.Has("page") {
		q.Page = &page
	}
	if values.Has("per_page") {
		q.PerPage = &perPage
	}

	if err := ctx.Validate(&q); err != nil {
		return services.ListQuery{}, err
	}

	return services.ListQuery{
		Search:       q.Search,
		Filters:      utils.BracketParams(values, "filter"),
		Page:         q.Page,
		PerPage:      q.PerPage,
		SortBy:       q.SortBy,
		SortDir:      q.SortDir,
		ResetFilters: q.ResetFilters,
		RemoveChip:   q.RemoveChip,
	}, nil
}
