package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice/internal/controllers"
	"backoffice/internal/services"
)

func runHelpCenterRouter(articles *echo.Group, helpCenterService services.HelpCenterServiceInterface, logger *zap.Logger) {
	helpCtrl := controllers.NewHelpCenterController(helpCenterService, logger)

	articles.GET("/categories", helpCtrl.Categories)
	articles.POST("", helpCtrl.CreateArticle)
	articles.GET("/:id", helpCtrl.FindArticle)
	articles.PUT("/:id", helpCtrl.UpdateArticle)
	articles.DELETE("/:id", helpCtrl.DeleteArticle)
	articles.POST("/:id/image", helpCtrl.UploadImage)
}
