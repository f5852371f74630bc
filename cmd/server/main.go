package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/barmentor/barmentor/internal/api"
	"github.com/barmentor/barmentor/internal/config"
	"github.com/barmentor/barmentor/internal/db"
	"github.com/barmentor/barmentor/internal/jobs"
	"github.com/barmentor/barmentor/internal/logger"
	"github.com/barmentor/barmentor/internal/repository/sqlite"
	"github.com/barmentor/barmentor/internal/scheduler"
	"github.com/barmentor/barmentor/internal/seed"
	"github.com/barmentor/barmentor/internal/services"
	"github.com/barmentor/barmentor/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	logger.SetDefault(log)

	log.Info("barmentor server starting")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("bandit_epsilon=%g", cfg.DefaultEpsilon)
	log.Debug("winback_interval_hours=%d", cfg.WinbackIntervalHours)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer database.Close()

	contentRepo := sqlite.NewContentRepository(database.DB)
	progressRepo := sqlite.NewProgressRepository(database.DB)
	banditRepo := sqlite.NewBanditRepository(database.DB)
	learnerRepo := sqlite.NewLearnerRepository(database.DB)

	if err := seed.Load(context.Background(), contentRepo, cfg.SeedPath); err != nil {
		log.Error("failed to seed catalog: %v", err)
		os.Exit(1)
	}

	sched := scheduler.New(contentRepo, progressRepo, banditRepo,
		scheduler.WithEpsilon(cfg.DefaultEpsilon))

	srv := &api.Server{
		LearnerService:  services.NewLearnerService(learnerRepo),
		ContentService:  services.NewContentService(contentRepo),
		PracticeService: services.NewPracticeService(sched, contentRepo, progressRepo, learnerRepo),
		StatsService:    services.NewStatsService(sched, progressRepo, learnerRepo),
	}

	ctx, cancel := context.WithCancel(context.Background())

	pool := worker.NewPool(cfg.JobWorkerCount, cfg.JobQueueSize)
	pool.Start(ctx)

	schedule := jobs.NewSchedule(pool)
	winback := &jobs.WinbackJob{Progress: progressRepo, BatchSize: cfg.WinbackBatchSize}
	if err := schedule.Every(time.Duration(cfg.WinbackIntervalHours)*time.Hour, winback); err != nil {
		log.Error("failed to schedule winback job: %v", err)
		os.Exit(1)
	}
	schedule.Start()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, shutting down", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	schedule.Stop()
	cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}
	pool.Stop()

	log.Info("barmentor server stopped")
}
