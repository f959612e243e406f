package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice/internal/controllers"
	"backoffice/internal/services"
)

func runCountryRouter(countries *echo.Group, countryService services.CountryServiceInterface, logger *zap.Logger) {
	countryCtrl := controllers.NewCountryController(countryService, logger)

	countries.POST("", countryCtrl.CreateCountry)
	countries.GET("/:id", countryCtrl.FindCountry)
	countries.PUT("/:id", countryCtrl.UpdateCountry)
	countries.DELETE("/:id", countryCtrl.DeleteCountry)
}
