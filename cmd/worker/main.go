package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/pan-logistics-api/internal/app/api"
	platformobservability "github.com/Apurer/pan-logistics-api/internal/platform/observability"
	notificationactivities "github.com/Apurer/pan-logistics-api/internal/platform/temporal/activities/notifications"
	notificationworkflows "github.com/Apurer/pan-logistics-api/internal/platform/temporal/workflows/notifications"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to load .env: %v", err)
	}
	ctx := context.Background()
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, "pan-logistics-worker",
		platformobservability.WithLogLevel(cfg.LogLevel),
		platformobservability.WithEnvironment(cfg.Environment),
		platformobservability.WithStdoutTraces(cfg.TracesStdout),
	)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	notificationService, err := api.NewNotificationService(cfg, logger)
	if err != nil {
		logger.Error("failed to build notification service", slog.String("error", err.Error()))
		os.Exit(1)
	}
	activities := notificationactivities.NewActivities(notificationService)

	temporalClient, err := api.DialTemporal(cfg, instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, notificationworkflows.NotificationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(notificationworkflows.NotificationWorkflow, workflow.RegisterOptions{Name: notificationworkflows.NotificationWorkflowName})
	w.RegisterActivityWithOptions(activities.SendNotification, activity.RegisterOptions{Name: notificationactivities.SendNotificationActivityName})

	logger.Info("worker listening", slog.String("taskQueue", notificationworkflows.NotificationTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
