package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice/internal/controllers"
	"backoffice/internal/services"
)

func runJobOfferRouter(offers *echo.Group, jobOfferService services.JobOfferServiceInterface, logger *zap.Logger) {
	offerCtrl := controllers.NewJobOfferController(jobOfferService, logger)

	offers.POST("", offerCtrl.CreateJobOffer)
	offers.GET("/:id", offerCtrl.FindJobOffer)
	offers.PUT("/:id", offerCtrl.UpdateJobOffer)
	offers.DELETE("/:id", offerCtrl.DeleteJobOffer)
	offers.POST("/:id/publish", offerCtrl.Publish)
	offers.POST("/:id/unpublish", offerCtrl.Unpublish)
}
