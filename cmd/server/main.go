package main // Entry point package

import (
	"context" // bounds the schema bootstrap
	"log"     // Logging library
	"time"    // timeout durations

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/tickethub/tickethub/internal/config"     // Internal config loader
	"github.com/tickethub/tickethub/internal/database"   // MySQL connection and schema bootstrap
	"github.com/tickethub/tickethub/internal/handler"    // HTTP handlers
	"github.com/tickethub/tickethub/internal/middleware" // rate limiting and response cache
	"github.com/tickethub/tickethub/internal/queue"      // background ticket event consumer
	"github.com/tickethub/tickethub/internal/repository" // DB repositories
	"github.com/tickethub/tickethub/internal/router"     // route registration
	"github.com/tickethub/tickethub/internal/service"    // entity services
)

func main() {
	cfg := config.Load() // Load environment config

	// Open MySQL and make sure the three record tables exist.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.InitSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema init failed: %v", err)
	}
	cancel()

	// Redis backs the rate limiter and the public response cache.
	// A nil client simply disables both.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and caching disabled")
	}

	// Repositories and services.
	projectRepo := repository.NewProjectRepo(db)
	ticketRepo := repository.NewTicketRepo(db)
	userRepo := repository.NewUserRepo(db)

	projectSvc := service.NewProjectService(projectRepo, ticketRepo, userRepo)
	ticketSvc := service.NewTicketService(ticketRepo, projectRepo, userRepo, service.PublishTicketCreated)
	userSvc := service.NewUserService(userRepo, ticketRepo, projectRepo, cfg.BcryptCost)

	// Drain ticket.created events in the background. The consumer
	// reconnects on broker failures and never stops the server.
	go func() {
		if err := queue.StartTicketConsumer(); err != nil {
			log.Printf("ticket consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	router.RegisterRoutes(e, cfg.JWTSecret,
		handler.NewAuthHandler(cfg, userSvc),
		handler.NewProjectHandler(projectSvc),
		handler.NewTicketHandler(ticketSvc),
		handler.NewUserHandler(userSvc),
		cache)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
