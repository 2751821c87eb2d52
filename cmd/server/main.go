package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/RichardSen18/boardgame-store/internal/config"
	"github.com/RichardSen18/boardgame-store/internal/database"
	"github.com/RichardSen18/boardgame-store/internal/handler"
	"github.com/RichardSen18/boardgame-store/internal/middleware"
	"github.com/RichardSen18/boardgame-store/internal/queue"
	"github.com/RichardSen18/boardgame-store/internal/repository"
	"github.com/RichardSen18/boardgame-store/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	games := repository.NewGameRepo(db)
	users := repository.NewUserRepo(db)
	sales := repository.NewSaleRepo(db)
	sessions := repository.NewSessionRepo(db)
	participants := repository.NewParticipantRepo(db)

	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	rateCfg := config.LoadRateLimitConfig()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(rateCfg, rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users), cfg.JWTSecret)
	router.RegisterCatalog(e, handler.NewCatalogHandler(games), cfg.JWTSecret, cacheCfg, rdb)
	router.RegisterSales(e, handler.NewSaleHandler(sales, games, users), cfg.JWTSecret)
	router.RegisterSessions(e, handler.NewSessionHandler(sessions, participants, games, users), cfg.JWTSecret)
	router.RegisterUsers(e, handler.NewUserHandler(users), cfg.JWTSecret)

	// Background consumer drains the broker queues into the activity log.
	go queue.StartActivityConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
