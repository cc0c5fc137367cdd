package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"storefront-service/pkg/logger"
)

// ListCities returns the carrier's deliverable city directory, used by
// the order form's city picker
func ListCities(c echo.Context) error {
	log := logger.FromContext(c)

	if carrier == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "carrier is not configured"})
	}

	cities, err := carrier.Cities()
	if err != nil {
		log.Error("Failed to fetch carrier cities", zap.Error(err))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "failed to fetch cities"})
	}

	return c.JSON(http.StatusOK, cities)
}
