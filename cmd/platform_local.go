//go:build !gcloud

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

func initDispatcher(_ context.Context, cfg *config.Config) (domain.ReminderDispatcher, func() error, error) {
	if cfg.Dispatcher.PrimindTasksURL == "" {
		slog.Warn("PRIMIND_TASKS_URL not set, reminder dispatch disabled")

		return dispatcher.NewNoopDispatcher(), nil, nil
	}

	d := dispatcher.NewPrimindTasksDispatcher(
		cfg.Dispatcher.PrimindTasksURL,
		cfg.Dispatcher.QueueName,
		cfg.Dispatcher.MaxRetries,
	)

	slog.Info("reminder dispatcher initialized",
		slog.String("type", "primind_tasks"),
		slog.String("url", cfg.Dispatcher.PrimindTasksURL),
		slog.String("queue", cfg.Dispatcher.QueueName),
	)

	return d, nil, nil
}

func initObservability(ctx context.Context) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "alarm-scheduling"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	obs, err := observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: "",
		},
		Environment:   env,
		GCPProjectID:  "",
		SamplingRate:  1.0,
		DefaultModule: logging.Module("alarm-scheduling"),
	})
	if err != nil {
		return nil, err
	}

	return obs, nil
}
