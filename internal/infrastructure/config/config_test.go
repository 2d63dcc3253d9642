package config

import (
	"context"
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("port: %q", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("env: %q", cfg.Env)
	}
	if cfg.TokenTTL != 24 {
		t.Errorf("token ttl: %d", cfg.TokenTTL)
	}
	if cfg.Mongo.Database != "farm_management" {
		t.Errorf("mongo database: %q", cfg.Mongo.Database)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("redis addr: %q", cfg.Redis.Addr)
	}
	if cfg.SMTP.Port != 587 {
		t.Errorf("smtp port: %d", cfg.SMTP.Port)
	}
	if cfg.Weather.CacheMinutes != 30 {
		t.Errorf("weather cache minutes: %d", cfg.Weather.CacheMinutes)
	}
}

func TestLoad_RequiresMongoURI(t *testing.T) {
	// t.Setenv registers the restore; the variable must be absent, not empty,
	// for the required check to trip.
	t.Setenv("MONGODB_URI", "placeholder")
	os.Unsetenv("MONGODB_URI")

	if _, err := Load(context.Background()); err == nil {
		t.Fatal("expected an error without MONGODB_URI")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("TOKEN_TTL_HOURS", "72")
	t.Setenv("FARM_LATITUDE", "10.5")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" || cfg.Env != "production" || cfg.TokenTTL != 72 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Weather.Latitude != 10.5 {
		t.Errorf("latitude: %v", cfg.Weather.Latitude)
	}
}
