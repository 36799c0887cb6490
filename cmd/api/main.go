package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/harborline/fishmarket-service/internal/api/http"
	"github.com/harborline/fishmarket-service/internal/api/http/handlers"
	"github.com/harborline/fishmarket-service/internal/auth"
	"github.com/harborline/fishmarket-service/internal/config"
	"github.com/harborline/fishmarket-service/internal/events"
	"github.com/harborline/fishmarket-service/internal/observability"
	"github.com/harborline/fishmarket-service/internal/persistence"
	"github.com/harborline/fishmarket-service/internal/repository"
	"github.com/harborline/fishmarket-service/internal/service"
	"github.com/harborline/fishmarket-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	workerRepo := repository.NewWorkerRepository(pool)
	permissionRepo := repository.NewPermissionRepository(pool)
	contactRepo := repository.NewContactRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	expenseRepo := repository.NewExpenseRepository(pool)
	saleRepo := repository.NewSaleRepository(pool)
	revocationRepo := repository.NewTokenRevocationRepository(redis.Client)

	dispatcher := events.NewInMemoryDispatcher(logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AccountRepo:    accountRepo,
		WorkerRepo:     workerRepo,
		RevocationRepo: revocationRepo,
	})
	staffingService := service.NewStaffingService(cfg.Auth.BcryptCost, service.StaffingDependencies{
		WorkerRepo:     workerRepo,
		PermissionRepo: permissionRepo,
		Dispatcher:     dispatcher,
	})
	tradingService := service.NewTradingService(service.TradingDependencies{
		ProductRepo: productRepo,
		SaleRepo:    saleRepo,
		ContactRepo: contactRepo,
		Dispatcher:  dispatcher,
	})
	directoryService := service.NewDirectoryService(contactRepo)
	ledgerService := service.NewLedgerService(expenseRepo)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), accountRepo, workerRepo, permissionRepo)

	app := fiber.New()
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Workers:        handlers.NewWorkersHandler(staffingService),
		Contacts:       handlers.NewContactsHandler(directoryService),
		Products:       handlers.NewProductsHandler(tradingService),
		Expenses:       handlers.NewExpensesHandler(ledgerService),
		Sales:          handlers.NewSalesHandler(tradingService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
