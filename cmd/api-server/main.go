package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"coindex/database"
	"coindex/internal/api/handler"
	"coindex/internal/api/middleware"
	"coindex/internal/api/repository"
	"coindex/internal/api/service"
	"coindex/internal/cache"
	"coindex/internal/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}
	itemCache := cache.NewItemCache(redisClient, cfg.CacheTTL, logger)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	exchangeRepo := repository.NewExchangeRepo(db)
	bookRepo := repository.NewBookRepo(db)
	itemRepo := repository.NewItemRepo(db)
	reviewRepo := repository.NewReviewRepository(db)
	tagRepo := repository.NewTagRepo(db)
	referenceRepo := repository.NewReferenceRepo(db)
	newsRepo := repository.NewNewsRepo(db)
	guideRepo := repository.NewGuideRepo(db)
	pageRepo := repository.NewStaticPageRepo(db)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := service.NewUserService(userRepo)
	exchangeService := service.NewExchangeService(exchangeRepo, referenceRepo, tagRepo, itemCache)
	bookService := service.NewBookService(bookRepo, tagRepo, itemCache)
	itemService := service.NewItemService(itemRepo)
	reviewService := service.NewReviewService(reviewRepo, itemRepo, logger)
	tagService := service.NewTagService(tagRepo)
	referenceService := service.NewReferenceService(referenceRepo)
	newsService := service.NewNewsService(newsRepo)
	guideService := service.NewGuideService(guideRepo)
	pageService := service.NewStaticPageService(pageRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	exchangeHandler := handler.NewExchangeHandler(exchangeService, newsService, guideService)
	bookHandler := handler.NewBookHandler(bookService)
	itemHandler := handler.NewItemHandler(itemService)
	reviewHandler := handler.NewReviewHandler(reviewService, authService)
	tagHandler := handler.NewTagHandler(tagService)
	referenceHandler := handler.NewReferenceHandler(referenceService)
	newsHandler := handler.NewNewsHandler(newsService)
	guideHandler := handler.NewGuideHandler(guideService)
	pageHandler := handler.NewStaticPageHandler(pageService)

	go cleanupExpiredTokens(refreshTokenRepo, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	authHandler.RegisterRoutes(v1.Group("/auth"))
	exchangeHandler.RegisterRoutes(v1.Group("/exchanges"))
	bookHandler.RegisterRoutes(v1.Group("/books"))
	itemHandler.RegisterRoutes(v1.Group("/items"))
	reviewHandler.RegisterRoutes(v1.Group("/reviews"))
	tagHandler.RegisterRoutes(v1.Group("/tags"))
	newsHandler.RegisterRoutes(v1.Group("/news"))
	guideHandler.RegisterRoutes(v1.Group("/guides"))
	pageHandler.RegisterRoutes(v1.Group("/pages"))
	referenceHandler.RegisterRoutes(v1.Group("/common"))

	admin := v1.Group("/admin", middleware.AuthMiddleware(authService), middleware.RequireAdmin())
	userHandler.RegisterAdminRoutes(admin)
	exchangeHandler.RegisterAdminRoutes(admin)
	bookHandler.RegisterAdminRoutes(admin)
	reviewHandler.RegisterAdminRoutes(admin)
	tagHandler.RegisterAdminRoutes(admin)
	newsHandler.RegisterAdminRoutes(admin)
	guideHandler.RegisterAdminRoutes(admin)
	pageHandler.RegisterAdminRoutes(admin)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("api server listening", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// cleanupExpiredTokens deletes refresh tokens past their expiry once an
// hour. Revoked-but-unexpired rows stay until they lapse so rotation checks
// keep seeing them.
func cleanupExpiredTokens(repo repository.RefreshTokenRepository, logger *slog.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		deleted, err := repo.DeleteExpired(ctx)
		cancel()
		if err != nil {
			logger.Warn("refresh token cleanup failed", "error", err)
			continue
		}
		if deleted > 0 {
			logger.Info("deleted expired refresh tokens", "count", deleted)
		}
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}
