package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"menuReco/app/echo-server/router"
	"menuReco/business/dish"
	"menuReco/business/menu"
	"menuReco/business/profile"
	"menuReco/business/recommender"
	userService "menuReco/business/user"
	"menuReco/internal/middleware"
	psqlRepo "menuReco/internal/repository/postgres"
	redisRepo "menuReco/internal/repository/redis"
	"menuReco/internal/rest"
	"menuReco/pkg/config"
	"menuReco/pkg/database"
	redisdb "menuReco/pkg/database/redis"
	"menuReco/pkg/logger"
	"menuReco/pkg/metrics"
	jsonres "menuReco/pkg/response"
	"menuReco/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting menu recommender", "version", cfg.App.Version)

	metrics.Init()
	utils.SetJWTConfig(cfg.JWT.SecretKey, cfg.JWT.TTL)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}
	defer func() {
		if err := redisdb.Close(redisClient); err != nil {
			logger.Error("Failed to close redis", "error", err)
		}
	}()
	logger.Info("Redis connected successfully")

	rec, err := recommender.New(recommender.Config{
		PresentIfContains:         cfg.Recommender.PresentIfContains,
		PresentIfMissing:          cfg.Recommender.PresentIfMissing,
		UnavailablePenalty:        cfg.Recommender.UnavailablePenalty,
		DislikedIngredientPenalty: cfg.Recommender.DislikedIngredientPenalty,
		SimilarityWeight:          cfg.Recommender.SimilarityWeight,
		LikedDishBoost:            cfg.Recommender.LikedDishBoost,
	})
	if err != nil {
		logger.Fatal("Invalid recommender config", "error", err)
	}

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	dishRepo := psqlRepo.NewDishRepository(db)
	profileRepo := psqlRepo.NewUserProfileRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(redisClient)
	availRepo := redisRepo.NewAvailabilityRepository(redisClient)

	// Init service
	userSvc := userService.NewUserService(userRepo, tokenRepo, validate)
	dishSvc := dish.NewDishService(dishRepo)
	profileSvc := profile.NewProfileService(profileRepo, dishRepo)
	menuSvc := menu.NewMenuService(dishRepo, profileRepo, availRepo, rec, cfg.Recommender.DefaultTopN)

	// Init handler
	userHandler := rest.NewUserHandler(userSvc)
	dishHandler := rest.NewDishHandler(dishSvc)
	profileHandler := rest.NewProfileHandler(profileSvc)
	menuHandler := rest.NewMenuHandler(menuSvc)
	availHandler := rest.NewAvailabilityHandler(availRepo)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceID())
	e.Use(middleware.RequestLogger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, middleware.HeaderRequestID},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, jsonres.Success("ok", map[string]string{"version": cfg.App.Version}))
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddlewareWithRedis(userSvc)
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired)
	router.SetupMenuRoutes(api, menuHandler, authRequired)
	router.SetupProfileRoutes(api, profileHandler, authRequired)
	router.SetupDishRoutes(api, dishHandler, authRequired, adminOnly)
	router.SetupAvailabilityRoutes(api, availHandler, authRequired, adminOnly)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
