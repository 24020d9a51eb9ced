package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/shashatv/vod-backend/internal/auth"
	"github.com/shashatv/vod-backend/internal/config"
	"github.com/shashatv/vod-backend/internal/database"
	"github.com/shashatv/vod-backend/internal/handler"
	"github.com/shashatv/vod-backend/internal/mailer"
	"github.com/shashatv/vod-backend/internal/queue"
	"github.com/shashatv/vod-backend/internal/repository"
	"github.com/shashatv/vod-backend/internal/router"
	"github.com/shashatv/vod-backend/internal/storage"
	"github.com/shashatv/vod-backend/internal/verify"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable: rate limiting and response cache disabled")
	}

	// Blob store is optional so local setups can run without object storage;
	// upload endpoints answer 503 until it is configured.
	var store storage.Uploader
	if cfg.S3Bucket != "" {
		s3Ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		s3Store, err := storage.NewS3Store(s3Ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3Endpoint, cfg.S3PublicURL)
		cancel()
		if err != nil {
			log.Fatalf("storage: %v", err)
		}
		store = s3Store
	} else {
		log.Printf("storage not configured: upload endpoints disabled")
	}

	users := repository.NewUserRepo(db)
	admins := repository.NewAdminRepo(db)
	categories := repository.NewCategoryRepo(db)
	series := repository.NewSeriesRepo(db)
	videos := repository.NewVideoRepo(db)
	complaints := repository.NewComplaintRepo(db)
	stats := repository.NewStatsRepo(db)

	registry := auth.NewSessionRegistry()
	pending := verify.NewPendingStore(15 * time.Minute)
	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)

	h := router.Handlers{
		Auth:       handler.NewAuthHandler(cfg, users, pending, mail, registry),
		Admin:      handler.NewAdminHandler(cfg, admins),
		Categories: handler.NewCategoryHandler(categories, store),
		Videos:     handler.NewVideoHandler(cfg, videos, store),
		Series:     handler.NewSeriesHandler(series, videos, categories, store),
		Search:     handler.NewSearchHandler(categories, videos),
		Complaints: handler.NewComplaintHandler(complaints),
		Stats:      handler.NewStatsHandler(stats),
	}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.RegisterRoutes(e)
	router.RegisterPublic(e, h, rdb)
	router.RegisterAuth(e, h, cfg, registry)
	router.RegisterAdmin(e, h, cfg, registry)

	// The consumer runs its own reconnect loop for the life of the process.
	go func() {
		if err := queue.StartVideoConsumer(); err != nil {
			log.Printf("video-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
