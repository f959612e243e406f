package controllers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "backoffice/pkg/errors"
)

func parseID(ctx echo.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequest("Неверный формат ID", err)
	}
	return id, nil
}
