package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chiraitori/farm-management-api/internal/api/handler"
	"github.com/chiraitori/farm-management-api/internal/api/middleware"
	"github.com/chiraitori/farm-management-api/internal/core/domain"
	"github.com/chiraitori/farm-management-api/internal/core/service"
	"github.com/chiraitori/farm-management-api/internal/infrastructure/config"
	mongodb "github.com/chiraitori/farm-management-api/internal/infrastructure/db/mongo"
	redisdb "github.com/chiraitori/farm-management-api/internal/infrastructure/db/redis"
	"github.com/chiraitori/farm-management-api/internal/infrastructure/mail"
	"github.com/chiraitori/farm-management-api/internal/infrastructure/weather"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("farm"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	farmRepo := mongodb.NewFarmRepository(db)
	inventoryRepo := mongodb.NewInventoryRepository(db)
	pinStore := redisdb.NewPinStore(rdb)

	// --- Services ---
	mailer := mail.NewMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	weatherClient := weather.NewClient(weather.Config{
		APIKey:    cfg.Weather.APIKey,
		Latitude:  cfg.Weather.Latitude,
		Longitude: cfg.Weather.Longitude,
	})
	weatherCache := service.NewWeatherCache(time.Duration(cfg.Weather.CacheMinutes) * time.Minute)

	tokenTTL := time.Duration(cfg.TokenTTL) * time.Hour
	authService := service.NewAuthService(userRepo, pinStore, mailer, cfg.JWTSecret, tokenTTL, log)
	accountService := service.NewAccountService(userRepo, log)
	userService := service.NewUserService(userRepo, log)
	farmService := service.NewFarmService(farmRepo, userRepo, inventoryRepo, log)
	inventoryService := service.NewInventoryService(inventoryRepo, log)
	weatherService := service.NewWeatherService(weatherClient, weatherCache, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	accountHandler := handler.NewAccountHandler(accountService)
	userHandler := handler.NewUserHandler(userService)
	farmHandler := handler.NewFarmHandler(farmService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService, farmService)
	weatherHandler := handler.NewWeatherHandler(weatherService)

	auth := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	adminOrDirector := middleware.RBAC(domain.RoleAdmin, domain.RoleDirector)

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/forgot-password", authHandler.ForgotPassword)
	e.POST("/create-admin", accountHandler.CreateAdmin)

	// --- Provisioning (admin) ---
	e.POST("/create/director", accountHandler.CreateDirector, auth, adminOnly)
	e.POST("/create/manager", accountHandler.CreateManager, auth, adminOnly)

	// --- Farms ---
	e.GET("/farm", farmHandler.Get, auth)
	e.POST("/farm", farmHandler.Create, auth, adminOrDirector)
	e.PUT("/farm", farmHandler.Update, auth, adminOrDirector)
	e.DELETE("/farm", farmHandler.Delete, auth, adminOrDirector)
	e.GET("/farms", farmHandler.ListMine, auth)
	e.GET("/farms/user", farmHandler.MyFarm, auth)
	e.PUT("/farms/:id/stuff", farmHandler.UpdateStuff, auth)

	// --- Inventory ---
	e.GET("/inventory", inventoryHandler.Catalog, auth)
	e.POST("/inventory/upload", inventoryHandler.Upload, auth)
	e.PUT("/inventory/update", inventoryHandler.Update, auth)
	e.GET("/inventory/calendar", inventoryHandler.Calendar, auth)
	e.GET("/inventory/export", inventoryHandler.Export, auth)

	// --- Users ---
	e.GET("/users", userHandler.List, auth, adminOrDirector)
	e.POST("/users", userHandler.Create, auth, adminOrDirector)
	e.PUT("/users/:id", userHandler.Update, auth, adminOrDirector)
	e.DELETE("/users/:id", userHandler.Delete, auth, adminOnly)

	// --- Weather ---
	e.GET("/weather", weatherHandler.Current, auth)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
