package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledgerly/backend/pkg/config"
	"github.com/ledgerly/backend/pkg/controllers"
	"github.com/ledgerly/backend/pkg/jobs"
	"github.com/ledgerly/backend/pkg/ledger"
	"github.com/ledgerly/backend/pkg/models"
	"github.com/ledgerly/backend/pkg/notify"
	"github.com/ledgerly/backend/pkg/receipt"
	"github.com/ledgerly/backend/pkg/router"
	"github.com/ledgerly/backend/pkg/scheduler"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// Recurring transactions processed per user and minute
	ownerJobsPerMinute = 10

	shutdownTimeout = 30 * time.Second
)

func main() {
	// Variables from .env never override the environment
	if err := config.LoadDotenv(); err != nil {
		log.Fatal().Msg(err.Error())
	}

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Create data directory
	err = os.MkdirAll(filepath.Dir(cfg.DBPath), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	db, err := models.Connect(cfg.DBPath)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Migrate all models so that the schema is correct
	err = models.Migrate(db)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	queue := jobs.NewQueue(jobs.Config{
		Workers:     cfg.WorkerCount,
		Size:        cfg.QueueSize,
		MaxAttempts: cfg.JobMaxAttempts,
		BaseDelay:   cfg.RetryBaseDelay,
		Retention:   cfg.JobRetention,
	})
	queue.OnFinish = scheduler.ObserveJob

	sweeps := scheduler.Sweeps{
		DB:             db,
		Poster:         ledger.Poster{DB: db},
		Monitor:        ledger.Monitor{DB: db},
		Notifier:       notify.LogNotifier{From: cfg.AlertFrom},
		Publisher:      queue,
		Throttle:       jobs.NewThrottle(ownerJobsPerMinute, time.Minute),
		NotifyAttempts: cfg.JobMaxAttempts,
		RetryBaseDelay: cfg.RetryBaseDelay,
	}

	// Jobs get their own context so that running ones can finish
	// during shutdown
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	if err := queue.Start(jobCtx, sweeps.ProcessJob); err != nil {
		log.Fatal().Msg(err.Error())
	}

	sched, err := scheduler.New(sweeps, scheduler.Config{
		RecurrenceSchedule: cfg.RecurrenceSweepSchedule,
		BudgetSchedule:     cfg.BudgetSweepSchedule,
		RunOnStartup:       cfg.SweepOnStartup,
	})
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	sched.Start()

	// Receipt scanning is optional
	var scanner receipt.Scanner
	if cfg.GeminiAPIKey != "" {
		gemini, err := receipt.NewGeminiScanner(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
		scanner = gemini
	} else {
		log.Warn().Msg("GEMINI_API_KEY is not set, receipt scanning is disabled")
	}

	r, teardown, err := router.Config(cfg)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer teardown()

	router.AttachRoutes(controllers.New(db, sched, queue, scanner), r.Group("/"))

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("address", cfg.ListenAddr).Msg("backend startup complete")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msg(err.Error())
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown")
	}

	sched.Shutdown(shutdownTimeout)

	if err := queue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("job queue shutdown")
	}

	sqlDB, err := db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}

	log.Info().Msg("backend stopped")
}
