package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/justjoin/justjoin-backend/internal/api/http"
	"github.com/justjoin/justjoin-backend/internal/api/http/handlers"
	"github.com/justjoin/justjoin-backend/internal/auth"
	"github.com/justjoin/justjoin-backend/internal/config"
	"github.com/justjoin/justjoin-backend/internal/events"
	"github.com/justjoin/justjoin-backend/internal/mail"
	"github.com/justjoin/justjoin-backend/internal/observability"
	"github.com/justjoin/justjoin-backend/internal/persistence"
	"github.com/justjoin/justjoin-backend/internal/repository"
	"github.com/justjoin/justjoin-backend/internal/service"
	"github.com/justjoin/justjoin-backend/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// The alert buffer hooks into the logger so that repeated errors
	// reach the admin by email. The mailer it uses gets a plain stderr
	// logger to avoid feeding alert failures back into the buffer.
	bootstrapLogger, err := observability.NewLogger(cfg.Logger, cfg.App.Development())
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	alertMailer := mail.NewMailer(cfg.SMTP, bootstrapLogger)
	alerts := observability.NewAlertBuffer(cfg.Logger, cfg.Admin.SuperEmail, alertMailer)

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Development(), zap.Hooks(alerts.Hook))
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

	cache := persistence.NewCache(cfg.Redis, logger)
	defer cache.Close()

	mailer := mail.NewMailer(cfg.SMTP, logger)
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	userRepo := repository.NewUserRepository(pg)
	jobSeekerRepo := repository.NewJobSeekerRepository(pg)
	companyRepo := repository.NewCompanyRepository(pg)
	notificationRepo := repository.NewNotificationRepository(pg)
	spotHistoryRepo := repository.NewSpotHistoryRepository(pg)
	workflowRepo := repository.NewWorkflowRepository(pg)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:    userRepo,
		CompanyRepo: companyRepo,
		Mailer:      mailer,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	adminService := service.NewAdminService(*cfg, userRepo, mailer, logger)
	profileService := service.NewProfileService(userRepo, jobSeekerRepo, companyRepo, cache, dispatcher, logger)
	notificationService := service.NewNotificationService(service.NotificationDependencies{
		NotificationRepo: notificationRepo,
		SpotHistoryRepo:  spotHistoryRepo,
		WorkflowRepo:     workflowRepo,
		UserRepo:         userRepo,
		Cache:            cache,
		Dispatcher:       dispatcher,
		Logger:           logger,
	})
	worker.StartWorkflowWorker(notificationService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager())

	app := fiber.New(fiber.Config{DisableStartupMessage: !cfg.App.Development()})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, cache),
		Auth:           handlers.NewAuthHandler(authService),
		Profiles:       handlers.NewProfileHandler(profileService),
		Notifications:  handlers.NewNotificationHandler(notificationService),
		Admin:          handlers.NewAdminHandler(authService, adminService, metrics),
		Interview:      handlers.NewInterviewHandler(jobSeekerRepo),
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
