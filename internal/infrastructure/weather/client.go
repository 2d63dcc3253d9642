// Package weather fetches current conditions from OpenWeatherMap.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/chiraitori/farm-management-api/internal/core/domain"
)

const baseURL = "https://api.openweathermap.org/data/2.5/weather"

// Config captures the upstream API settings and the farm's coordinates.
type Config struct {
	APIKey    string
	Latitude  float64
	Longitude float64
}

// Client is a thin OpenWeatherMap client for a single fixed location.
type Client struct {
	cfg  Config
	base string
	http *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		base: baseURL,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

type currentResponse struct {
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

// Current fetches the current conditions in metric units.
func (c *Client) Current(ctx context.Context) (*domain.WeatherSnapshot, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(c.cfg.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(c.cfg.Longitude, 'f', -1, 64))
	q.Set("appid", c.cfg.APIKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather fetch: upstream status %d", resp.StatusCode)
	}

	var body currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("weather decode: %w", err)
	}
	if len(body.Weather) == 0 {
		return nil, fmt.Errorf("weather decode: empty conditions")
	}

	return &domain.WeatherSnapshot{
		Condition:    strings.ToLower(body.Weather[0].Main),
		TemperatureC: int(math.Round(body.Main.Temp)),
	}, nil
}
