package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chiraitori/farm-management-api/internal/core/ports"
)

type WeatherHandler struct {
	weather ports.WeatherService
}

func NewWeatherHandler(weather ports.WeatherService) *WeatherHandler {
	return &WeatherHandler{weather: weather}
}

// Current handles GET /weather.
//
// @Summary      Current conditions at the farm site
// @Tags         weather
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.WeatherSnapshot
// @Failure      502  {object}  errorResponse
// @Router       /weather [get]
func (h *WeatherHandler) Current(c echo.Context) error {
	snap, err := h.weather.Current(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}
