package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/api"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/factory"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/service"
	mongodb "github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/infrastructure/db/mongo"
	redisdb "github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/infrastructure/db/redis"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/infrastructure/queue"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/pkg/config"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/workers"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/pkg/logger"
)

// @title BookSphere API
// @version 1.0
// @description Library management service: catalog, loans, fines, reservations and notifications.
// @BasePath /
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to mongodb failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	redisClient, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to redis failed")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	userRepo := mongodb.NewUserRepository(db)
	bookRepo := mongodb.NewBookRepository(db)
	transactionRepo := mongodb.NewTransactionRepository(db)
	fineRepo := mongodb.NewFineRepository(db)
	reservationRepo := mongodb.NewReservationRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)

	indexed := []struct {
		name string
		repo interface {
			EnsureIndexes(ctx context.Context) error
		}
	}{
		{"users", userRepo},
		{"books", bookRepo},
		{"transactions", transactionRepo},
		{"fines", fineRepo},
		{"reservations", reservationRepo},
		{"notifications", notificationRepo},
	}
	for _, c := range indexed {
		if err := c.repo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", c.name).Msg("creating indexes failed")
		}
	}

	clock := factory.SystemClock()
	entityFactory := factory.New(clock)

	notificationSvc := service.NewNotificationService(notificationRepo, log)

	dispatcher := queue.NewDispatcher(cfg.Library.Workers, notificationSvc, log)
	dispatcher.Start(ctx)

	authSvc := service.NewAuthService(userRepo, entityFactory, cfg.JWTSecret, cfg.JWTTTL, log)
	userSvc := service.NewUserService(userRepo, clock, log)
	catalogSvc := service.NewCatalogService(bookRepo, clock, log)
	reservationSvc := service.NewReservationService(
		reservationRepo, bookRepo, userRepo,
		entityFactory, dispatcher,
		cfg.Library.ReservationExpiryDays, log,
	)
	circulationSvc := service.NewCirculationService(
		transactionRepo, bookRepo, userRepo, fineRepo,
		entityFactory, dispatcher, reservationSvc,
		cfg.Library.BorrowDays, cfg.Library.FinePerDay, log,
	)
	fineSvc := service.NewFineService(fineRepo, userRepo, bookRepo, entityFactory, dispatcher, log)

	scanner := workers.NewOverdueScanner(
		transactionRepo, fineRepo, userRepo,
		entityFactory, dispatcher, redisdb.NewNoticeDedup(redisClient), clock,
		cfg.Library.FinePerDay, cfg.Library.DueSoonDays, cfg.Library.ScanInterval, log,
	)
	go scanner.Run(ctx)

	e := api.NewRouter(api.Deps{
		Mongo:         db,
		Redis:         redisClient,
		JWTSecret:     cfg.JWTSecret,
		Logger:        log,
		Auth:          authSvc,
		Users:         userSvc,
		Catalog:       catalogSvc,
		Circulation:   circulationSvc,
		Fines:         fineSvc,
		Reservations:  reservationSvc,
		Notifications: notificationSvc,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
}
