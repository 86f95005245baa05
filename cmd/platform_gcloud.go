//go:build gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/config"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/infra/dispatcher"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/observability"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/observability/logging"
)

func initDispatcher(ctx context.Context, cfg *config.Config) (domain.ReminderDispatcher, func() error, error) {
	cloudTasks, err := dispatcher.NewCloudTasksDispatcher(ctx, dispatcher.CloudTasksConfig{
		ProjectID:  cfg.Dispatcher.GCloudProjectID,
		LocationID: cfg.Dispatcher.GCloudLocationID,
		QueueID:    cfg.Dispatcher.GCloudQueueID,
		TargetURL:  cfg.Dispatcher.GCloudTargetURL,
		MaxRetries: cfg.Dispatcher.MaxRetries,
	})
	if err != nil {
		return nil, nil, err
	}

	slog.Info("reminder dispatcher initialized",
		slog.String("type", "cloud_tasks"),
		slog.String("project", cfg.Dispatcher.GCloudProjectID),
		slog.String("location", cfg.Dispatcher.GCloudLocationID),
		slog.String("queue", cfg.Dispatcher.GCloudQueueID),
	)

	cleanup := func() error {
		if err := cloudTasks.Close(); err != nil {
			slog.Warn("failed to close cloud tasks dispatcher", slog.String("error", err.Error()))

			return err
		}

		return nil
	}

	return cloudTasks, cleanup, nil
}

func initObservability(ctx context.Context) (*observability.Resources, error) {
	serviceName := os.Getenv("K_SERVICE")
	if serviceName == "" {
		serviceName = "alarm-scheduling"
	}

	env := logging.EnvProd
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = os.Getenv("GCLOUD_PROJECT_ID")
	}

	obs, err := observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: os.Getenv("K_REVISION"),
		},
		Environment:   env,
		GCPProjectID:  projectID,
		SamplingRate:  1.0,
		DefaultModule: logging.Module("alarm-scheduling"),
	})
	if err != nil {
		return nil, err
	}

	return obs, nil
}
