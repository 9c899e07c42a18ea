package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/studio-kirana/kirana-erp/internal/activity"
	"github.com/studio-kirana/kirana-erp/internal/adsreport"
	"github.com/studio-kirana/kirana-erp/internal/app"
	"github.com/studio-kirana/kirana-erp/internal/auth"
	"github.com/studio-kirana/kirana-erp/internal/billing"
	"github.com/studio-kirana/kirana-erp/internal/crm/clients"
	"github.com/studio-kirana/kirana-erp/internal/crm/leads"
	"github.com/studio-kirana/kirana-erp/internal/finance"
	"github.com/studio-kirana/kirana-erp/internal/masterdata/companies"
	"github.com/studio-kirana/kirana-erp/internal/masterdata/packages"
	"github.com/studio-kirana/kirana-erp/internal/platform/cache"
	"github.com/studio-kirana/kirana-erp/internal/platform/db"
	"github.com/studio-kirana/kirana-erp/internal/projects"
	"github.com/studio-kirana/kirana-erp/internal/rbac"
	"github.com/studio-kirana/kirana-erp/internal/shared"
	"github.com/studio-kirana/kirana-erp/internal/users"
	"github.com/studio-kirana/kirana-erp/internal/workorders"
	"github.com/studio-kirana/kirana-erp/jobs"
	"github.com/studio-kirana/kirana-erp/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

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

	tokens := shared.NewTokenManager(redisClient, cfg.SessionTTL)
	reports := cache.NewReportCache(redisClient, cfg.ReportCacheTTL)
	activityLog := shared.NewActivityLogger(dbpool)
	taxPolicy := cfg.TaxPolicy()

	rbacRepo := rbac.NewRepository(dbpool)
	rbacService := rbac.NewService(rbacRepo)
	gate := rbac.Middleware{Service: rbacService, Logger: logger}

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, tokens, rbacService)

	pdfClient := report.NewClient(cfg.GotenbergURL)
	if err := pdfClient.Ping(ctx); err != nil {
		logger.Warn("gotenberg ping", slog.Any("error", err))
	}

	financeRepo := finance.NewRepository(dbpool)
	financeService := finance.NewService(financeRepo, reports, taxPolicy, activityLog, logger)
	financeHandler := finance.NewHandler(logger, financeService, finance.NewExporter(pdfClient), gate)

	adsRepo := adsreport.NewRepository(dbpool)
	adsService := adsreport.NewService(adsRepo, reports, taxPolicy, activityLog, logger)
	adsHandler := adsreport.NewHandler(logger, adsService, adsreport.NewExporter(), gate)

	clientRepo := clients.NewRepository(dbpool)
	clientService := clients.NewService(clientRepo, activityLog, logger)
	clientHandler := clients.NewHandler(logger, clientService, gate)

	leadRepo := leads.NewRepository(dbpool)
	leadService := leads.NewService(leadRepo, clientService, activityLog, logger)
	leadHandler := leads.NewHandler(logger, leadService, gate)

	projectRepo := projects.NewRepository(dbpool)
	projectService := projects.NewService(projectRepo, activityLog, logger)
	projectHandler := projects.NewHandler(logger, projectService, gate)

	companyRepo := companies.NewRepository(dbpool)
	companyService := companies.NewService(companyRepo)
	companyHandler := companies.NewHandler(logger, companyService, gate)

	packageRepo := packages.NewRepository(dbpool)
	packageService := packages.NewService(packageRepo)
	packageHandler := packages.NewHandler(logger, packageService, gate)

	invoiceRepo := billing.NewRepository(dbpool)
	invoiceService := billing.NewService(invoiceRepo, companyService, activityLog, logger)
	invoiceHandler := billing.NewHandler(logger, invoiceService, billing.NewExporter(pdfClient), gate)

	spkRepo := workorders.NewRepository(dbpool)
	spkService := workorders.NewService(spkRepo, companyService, activityLog, logger)
	spkHandler := workorders.NewHandler(logger, spkService, workorders.NewExporter(pdfClient), gate)

	userRepo := users.NewRepository(dbpool)
	userService := users.NewService(userRepo, rbacRepo, activityLog, logger)
	userHandler := users.NewHandler(logger, userService, gate)

	activityRepo := activity.NewRepository(dbpool)
	activityHandler := activity.NewHandler(logger, activityRepo, gate)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		Tokens:          tokens,
		AuthHandler:     authHandler,
		FinanceHandler:  financeHandler,
		AdsHandler:      adsHandler,
		ClientHandler:   clientHandler,
		LeadHandler:     leadHandler,
		ProjectHandler:  projectHandler,
		InvoiceHandler:  invoiceHandler,
		SPKHandler:      spkHandler,
		PackageHandler:  packageHandler,
		CompanyHandler:  companyHandler,
		UsersHandler:    userHandler,
		ActivityHandler: activityHandler,
		JobHandler:      jobHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
