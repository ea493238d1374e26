package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/thebiblebus/biblebus-backend/internal/config"
	"github.com/thebiblebus/biblebus-backend/internal/database"
	"github.com/thebiblebus/biblebus-backend/internal/events"
	"github.com/thebiblebus/biblebus-backend/internal/handler"
	"github.com/thebiblebus/biblebus-backend/internal/logger"
	"github.com/thebiblebus/biblebus-backend/internal/mailer"
	"github.com/thebiblebus/biblebus-backend/internal/repository"
	"github.com/thebiblebus/biblebus-backend/internal/router"
	"github.com/thebiblebus/biblebus-backend/internal/service"
	"github.com/thebiblebus/biblebus-backend/internal/validator"
	"github.com/thebiblebus/biblebus-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Bible Bus Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	epoch, err := service.ParseDate(cfg.GroupEpoch)
	if err != nil {
		log.Fatal().Err(err).Str("epoch", cfg.GroupEpoch).Msg("Invalid GROUP_EPOCH")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	groupRepo := repository.NewGroupRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	donationRepo := repository.NewDonationRepository(pool)
	tripRepo := repository.NewTripRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(userRepo, authService)
	publisher := events.NewRedisPublisher(rdb, log)
	groupService := service.NewGroupService(groupRepo, publisher, log, epoch)
	messageService := service.NewMessageService(messageRepo, rdb, log)
	donationService := service.NewDonationService(donationRepo)
	tripService := service.NewTripService(tripRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authService, userService, groupService, log),
		Group:      handler.NewGroupHandler(groupService),
		AdminGroup: handler.NewAdminGroupHandler(groupService, log),
		Message:    handler.NewMessageHandler(messageService, groupService),
		Donation:   handler.NewDonationHandler(donationService),
		Trip:       handler.NewTripHandler(tripService),
		WS:         handler.NewWSHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	lifecycleWorker := worker.NewLifecycleWorker(groupService, cfg.LifecycleInterval, log)
	notifyWorker := worker.NewNotifyWorker(messageRepo, userRepo, rdb, mailer.NewLogMailer(log), log)

	go lifecycleWorker.Start(workerCtx)
	go notifyWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
