package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/practicewell/records-system/internal/api"
	"github.com/practicewell/records-system/internal/core/service"
	"github.com/practicewell/records-system/internal/infrastructure/config"
	mongodb "github.com/practicewell/records-system/internal/infrastructure/db/mongo"
	redisdb "github.com/practicewell/records-system/internal/infrastructure/db/redis"
	"github.com/practicewell/records-system/internal/infrastructure/queue"
	"github.com/practicewell/records-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title PracticeWell Records API
// @version 1.0
// @description Multi-tenant record keeping for therapy practices.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet, so report on stderr and bail.
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	therapistRepo := mongodb.NewTherapistRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	if err := therapistRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("therapist index creation failed")
	}
	if err := clientRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("client index creation failed")
	}

	auditRepo := mongodb.NewAuditRepository(db)
	auditService := service.NewAuditService(auditRepo, redisdb.NewAuditDedup(rdb), log)

	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(db, rdb, cfg, dispatcher, auditRepo, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
