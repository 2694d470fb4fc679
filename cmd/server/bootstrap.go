package main

import (
	"github.com/huangang/collabhub/internal/config"
	"github.com/huangang/collabhub/internal/handlers"
	"github.com/huangang/collabhub/internal/middleware"
	"github.com/huangang/collabhub/internal/models"
	"github.com/huangang/collabhub/internal/services"
	"github.com/huangang/collabhub/internal/store"
	"github.com/huangang/collabhub/internal/utils"
	"github.com/huangang/collabhub/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	taskQueue           services.TaskQueue
	worker              *services.Worker
	notificationService *services.NotificationService
	assistantLimiter    *middleware.RateLimiter

	healthHandler       *handlers.HealthHandler
	metricsHandler      *handlers.MetricsHandler
	profileHandler      *handlers.ProfileHandler
	projectHandler      *handlers.ProjectHandler
	memberHandler       *handlers.ProjectMemberHandler
	assistantHandler    *handlers.AssistantHandler
	notificationHandler *handlers.NotificationHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database, cfg.Log.Level); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Apply schema migrations
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()
	projectStore := store.New(db)

	// Notifications are delivered through the task queue (Redis if enabled, otherwise in-process)
	notificationService := services.NewNotificationService(db, cfg.Notification.RetentionDays)
	taskQueue := services.InitTaskQueue(cfg)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(notificationService.Process)
	}

	// Start async worker if Redis is enabled
	var worker *services.Worker
	if taskQueue.IsAsync() {
		worker = services.NewWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(notificationService.Process)
			if err := worker.Start(); err != nil {
				logger.Errorf("[Worker] Failed to start: %v", err)
			}
		}
	}

	if cfg.Notification.CleanupCron != "" {
		if err := notificationService.StartScheduler(cfg.Notification.CleanupCron); err != nil {
			logger.Warn().Err(err).Msg("Failed to start notification cleanup scheduler")
		}
	}

	guard := services.NewCapacityGuard(projectStore, cfg.Membership.AcceptMaxAttempts)
	assistant := services.NewAssistantService(services.NewTextGenerator(&cfg.LLM))
	// The assistant may call out to an LLM
	assistantLimiter := middleware.NewRateLimiter(cfg.RateLimit.AssistantRPS, cfg.RateLimit.AssistantBurst)

	return &appServices{
		taskQueue:           taskQueue,
		worker:              worker,
		notificationService: notificationService,
		assistantLimiter:    assistantLimiter,

		healthHandler:  handlers.NewHealthHandler(db, taskQueue),
		metricsHandler: handlers.NewMetricsHandler(db, taskQueue),
		profileHandler: handlers.NewProfileHandler(services.NewProfileService(projectStore)),
		projectHandler: handlers.NewProjectHandler(
			services.NewCatalogService(projectStore),
			services.NewProjectService(projectStore),
			services.NewMatchService(projectStore),
		),
		memberHandler:       handlers.NewProjectMemberHandler(services.NewMembershipService(projectStore, guard, taskQueue)),
		assistantHandler:    handlers.NewAssistantHandler(assistant),
		notificationHandler: handlers.NewNotificationHandler(notificationService),
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.notificationService.StopScheduler()
	logger.Info().Msg("All schedulers stopped")

	if s.assistantLimiter != nil {
		s.assistantLimiter.Stop()
	}

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
}
