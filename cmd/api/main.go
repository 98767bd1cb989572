package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/shift-planner/internal/api/http"
	"github.com/spec-kit/shift-planner/internal/api/http/handlers"
	"github.com/spec-kit/shift-planner/internal/auth"
	"github.com/spec-kit/shift-planner/internal/config"
	"github.com/spec-kit/shift-planner/internal/events"
	"github.com/spec-kit/shift-planner/internal/observability"
	"github.com/spec-kit/shift-planner/internal/persistence"
	"github.com/spec-kit/shift-planner/internal/repository"
	"github.com/spec-kit/shift-planner/internal/service"
	"github.com/spec-kit/shift-planner/internal/worker"
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

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	staffRepo := repository.NewStaffRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	shiftRepo := repository.NewShiftRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)
	managerRepo := repository.NewManagerRepository(pool)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		ManagerRepo: managerRepo,
		Logger:      logger,
	})
	if err := authService.EnsureBootstrapManager(ctx); err != nil {
		logger.Fatal("failed to bootstrap manager account", zap.Error(err))
	}

	rosterService := service.NewRosterService(service.RosterDependencies{
		StaffRepo:      staffRepo,
		DepartmentRepo: departmentRepo,
		AssignmentRepo: assignmentRepo,
		Dispatcher:     dispatcher,
	})
	catalogService := service.NewCatalogService(service.CatalogDependencies{
		DepartmentRepo: departmentRepo,
		ShiftRepo:      shiftRepo,
	})
	plannerService := service.NewPlannerService(service.PlannerDependencies{
		StaffRepo:      staffRepo,
		DepartmentRepo: departmentRepo,
		ShiftRepo:      shiftRepo,
		AssignmentRepo: assignmentRepo,
		Redis:          redis,
		Dispatcher:     dispatcher,
		Metrics:        metrics,
		Logger:         logger,
		LockTTL:        cfg.Scheduler.GenerateLockTTL(),
	})
	exportService := service.NewExportService(plannerService)
	notificationService := service.NewNotificationService(dispatcher, redis, logger)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), managerRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Staff:          handlers.NewStaffHandler(rosterService),
		Catalog:        handlers.NewCatalogHandler(catalogService),
		Schedule:       handlers.NewScheduleHandler(plannerService, exportService),
		Stats:          handlers.NewStatsHandler(metrics, notificationService),
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
