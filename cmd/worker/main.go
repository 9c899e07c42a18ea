package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/studio-kirana/kirana-erp/internal/activity"
	"github.com/studio-kirana/kirana-erp/internal/adsreport"
	"github.com/studio-kirana/kirana-erp/internal/app"
	"github.com/studio-kirana/kirana-erp/internal/auth"
	"github.com/studio-kirana/kirana-erp/internal/finance"
	"github.com/studio-kirana/kirana-erp/internal/platform/cache"
	"github.com/studio-kirana/kirana-erp/internal/platform/db"
	"github.com/studio-kirana/kirana-erp/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	reports := cache.NewReportCache(redisClient, cfg.ReportCacheTTL)
	taxPolicy := cfg.TaxPolicy()

	financeService := finance.NewService(finance.NewRepository(pool), reports, taxPolicy, nil, logger)
	adsService := adsreport.NewService(adsreport.NewRepository(pool), reports, taxPolicy, nil, logger)
	activityRepo := activity.NewRepository(pool)

	tasks := &jobs.Tasks{
		Finance:   financeService,
		Ads:       adsService,
		Activity:  activityRepo,
		Logins:    auth.NewRepository(pool),
		Retention: cfg.ActivityRetention,
		Logger:    logger,
	}

	warmupTask, err := jobs.NewReportWarmupTask(jobs.ReportWarmupPayload{})
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Tasks:     tasks,
		Cron: []jobs.CronRegistration{
			{Spec: "15 1 * * *", Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "45 1 * * *", Task: jobs.NewMaintenanceTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("build worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("starting worker", slog.String("redis", cfg.RedisAddr))
	if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker shut down")
}
