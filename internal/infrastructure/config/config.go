package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	TokenTTL  int    `env:"TOKEN_TTL_HOURS, default=24"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo   MongoConfig
	Redis   RedisConfig
	SMTP    SMTPConfig
	Weather WeatherConfig
}

type MongoConfig struct {
	// URI is required so a misconfigured deployment fails at startup, not on
	// the first request.
	URI      string `env:"MONGODB_URI, required"`
	Database string `env:"MONGODB_DB,  default=farm_management"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT, default=587"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
	From     string `env:"SMTP_FROM, default=no-reply@chiraitori.io.vn"`
}

type WeatherConfig struct {
	APIKey       string  `env:"OPENWEATHERMAP_API_KEY"`
	Latitude     float64 `env:"FARM_LATITUDE,  default=11.3439417"`
	Longitude    float64 `env:"FARM_LONGITUDE, default=106.6478494"`
	CacheMinutes int     `env:"WEATHER_CACHE_MINUTES, default=30"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
