package domain

import "errors"

var ErrWeatherUnavailable = errors.New("weather data unavailable")

// WeatherSnapshot is the advisory weather view shown on dashboards.
type WeatherSnapshot struct {
	Condition    string `json:"weather"`
	TemperatureC int    `json:"temperature"`
}
