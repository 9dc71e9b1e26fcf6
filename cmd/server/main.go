package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/resolvenow/complaint-system/docs"
	"github.com/resolvenow/complaint-system/internal/api"
	"github.com/resolvenow/complaint-system/internal/core/ports"
	"github.com/resolvenow/complaint-system/internal/core/service"
	"github.com/resolvenow/complaint-system/internal/infrastructure/config"
	"github.com/resolvenow/complaint-system/internal/infrastructure/db/memory"
	mongostore "github.com/resolvenow/complaint-system/internal/infrastructure/db/mongo"
	redisstore "github.com/resolvenow/complaint-system/internal/infrastructure/db/redis"
	"github.com/resolvenow/complaint-system/internal/infrastructure/queue"
	"github.com/resolvenow/complaint-system/pkg/logger"
)

// @title        ResolveNow Complaint API
// @version      1.0
// @description  Complaint registration, triage, and resolution service.
// @BasePath     /
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	ctx := context.Background()
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	var (
		complaints ports.ComplaintRepository
		messages   ports.MessageRepository
		users      ports.AuthRepository
		events     ports.EventRepository
		mongoDB    *mongo.Database
	)

	switch cfg.StorageBackend {
	case "mongo":
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect failed")
			}
		}()

		complaintRepo := mongostore.NewComplaintRepository(db)
		if err := complaintRepo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("mongo index creation failed")
		}
		complaints = complaintRepo
		messages = mongostore.NewMessageRepository(db)
		users = mongostore.NewAuthRepository(db)
		events = mongostore.NewEventRepository(db)
		mongoDB = db

	case "memory":
		complaintRepo := memory.NewComplaintRepository()
		messageRepo := memory.NewMessageRepository()
		userRepo := memory.NewAuthRepository()
		if cfg.Seed {
			if err := memory.Seed(complaintRepo, messageRepo, userRepo); err != nil {
				log.Fatal().Err(err).Msg("seeding demo data failed")
			}
			log.Info().Msg("demo data seeded")
		}
		complaints = complaintRepo
		messages = messageRepo
		users = userRepo
		events = memory.NewEventRepository()

	default:
		log.Fatal().Str("backend", cfg.StorageBackend).Msg("unknown storage backend")
	}

	var (
		sessions    ports.SessionStore
		redisClient *redis.Client
	)
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Warn().Err(err).Msg("redis close failed")
			}
		}()
		sessions = redisstore.NewSessionStore(rdb)
		redisClient = rdb
	} else {
		sessions = memory.NewSessionStore()
	}

	// Audit events are written off the request path by a sharded worker pool.
	dispatchCtx, stopDispatch := context.WithCancel(ctx)
	defer stopDispatch()
	dispatcher := queue.NewDispatcher(0, service.NewEventService(events, log), log)
	dispatcher.Start(dispatchCtx)

	complaintService := service.NewComplaintService(
		complaints, messages, users, dispatcher, log, cfg.SimulatedLatency(),
	)
	authService := service.NewAuthService(
		users, sessions, cfg.JWTSecret, 24*time.Hour, cfg.SimulatedLatency(), log,
	)

	e := api.NewRouter(api.RouterConfig{
		AuthService:      authService,
		ComplaintService: complaintService,
		Events:           events,
		JWTSecret:        cfg.JWTSecret,
		Mongo:            mongoDB,
		Redis:            redisClient,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(":" + cfg.Port)
	}()
	log.Info().Str("port", cfg.Port).Str("backend", cfg.StorageBackend).Msg("server starting")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
