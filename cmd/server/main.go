package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/advert-board/internal/config"
	"github.com/iliyamo/advert-board/internal/database"
	"github.com/iliyamo/advert-board/internal/handler"
	"github.com/iliyamo/advert-board/internal/middleware"
	"github.com/iliyamo/advert-board/internal/queue"
	"github.com/iliyamo/advert-board/internal/repository"
	"github.com/iliyamo/advert-board/internal/rights"
	"github.com/iliyamo/advert-board/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("bootstrap schema: %v", err)
	}

	// Rights are loaded once and read-only afterwards.
	table := rights.NewTable(rights.DefaultSchema())

	userRepo := repository.NewUserRepo(db)
	advertRepo := repository.NewAdvertRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	userHandler := handler.NewUserHandler(cfg, userRepo, table)
	advertHandler := handler.NewAdvertHandler(cfg, advertRepo, table)
	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)

	// Redis is optional: nil disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, cache and rate limiting disabled")
	}
	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)
	limiter := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)

	// The audit consumer keeps its own reconnect loop.
	go func() {
		if err := queue.StartAuditConsumer(); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(limiter)
	e.Use(middleware.Identify(tokenRepo, cfg.TokenTTL))

	router.Register(e, userHandler, advertHandler, authHandler, cache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
