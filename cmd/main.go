package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/config"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/handler"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/health"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/infra/holidaysrc"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/infra/lunar"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/infra/repository"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/infra/routing"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/infra/schedulerecorder"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/observability/logging"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/observability/metrics"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/observability/middleware"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/refresher"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/service/holiday"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/service/icsfeed"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/service/planner"
	"github.com/KasumiMercury/primind-alarm-scheduling/internal/service/recurrence"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	if err := cfg.Dispatcher.Validate(); err != nil {
		slog.Error("dispatcher configuration error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	scheduleMetrics, err := metrics.NewScheduleMetrics()
	if err != nil {
		slog.Error("failed to initialize schedule metrics", slog.String("error", err.Error()))
		return 1
	}

	// Schedule result recorder (InfluxDB for local, BigQuery for gcloud)
	resultRecorderCfg := schedulerecorder.LoadConfig()
	resultRecorder, err := schedulerecorder.NewRecorder(ctx, resultRecorderCfg)
	if err != nil {
		slog.Error("failed to initialize schedule result recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := resultRecorder.Close(); err != nil {
			slog.Warn("failed to close schedule result recorder", slog.String("error", err.Error()))
		}
	}()

	reminderDispatcher, cleanup, err := initDispatcher(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize reminder dispatcher", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("dispatcher cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	db, err := gorm.Open(sqlite.Open(cfg.Database.SQLitePath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		slog.Error("failed to open alarm database",
			slog.String("path", cfg.Database.SQLitePath),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Warn("failed to close alarm database", slog.String("error", err.Error()))
			}
		}
	}()

	alarmRepo, err := repository.NewAlarmRepository(db)
	if err != nil {
		slog.Error("failed to initialize alarm repository", slog.String("error", err.Error()))
		return 1
	}

	holidayCache := repository.NewHolidayCache(redisClient)
	reminderState := repository.NewReminderStateRepository(redisClient)
	snapshotRepo := repository.NewSnapshotRepository(redisClient)

	holidaySource := holidaysrc.NewSource(
		holidaysrc.NewTimorSource(cfg.Holiday.TimorAPIURL),
		holidaysrc.NewNagerSource(cfg.Holiday.NagerAPIURL),
	)
	holidayDirectory := holiday.NewDirectory(holidaySource, holidayCache, cfg.Holiday.CountryCode)

	routeEstimator := routing.NewClient(cfg.RouteEstimatorURL)
	engine := recurrence.NewEngine(lunar.NewResolver())

	plannerService := planner.NewService(
		engine,
		reminderDispatcher,
		reminderState,
		routeEstimator,
		resultRecorder,
		cfg.Schedule.OccurrenceCount,
	)

	feedBuilder := icsfeed.NewBuilder(engine, cfg.Schedule.OccurrenceCount)

	nightly := refresher.New(alarmRepo, plannerService, holidayDirectory, engine, snapshotRepo, cfg.Schedule.RefreshCron)
	if err := nightly.Start(); err != nil {
		slog.Error("failed to start nightly refresh", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		nightly.Stop(stopCtx)
	}()

	// Warm the holiday directory in the background; startup must not block
	// on external holiday APIs.
	go func() {
		warmCtx, warmCancel := context.WithTimeout(ctx, 2*time.Minute)
		defer warmCancel()
		year := time.Now().Year()
		if err := holidayDirectory.EnsureLoaded(warmCtx, year, year+1); err != nil {
			slog.WarnContext(warmCtx, "holiday directory warm-up failed",
				slog.String("country_code", holidayDirectory.CountryCode()),
				slog.String("error", err.Error()),
			)
		}
	}()

	alarmHandler := handler.NewAlarmHandler(alarmRepo, plannerService, holidayDirectory, engine, nightly, scheduleMetrics)
	holidayHandler := handler.NewHolidayHandler(holidayDirectory, alarmRepo, plannerService, scheduleMetrics)
	snapshotHandler := handler.NewSnapshotHandler(snapshotRepo)
	calendarHandler := handler.NewCalendarHandler(alarmRepo, holidayDirectory, feedBuilder)

	// Setup router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:      logging.Module("alarm-scheduling"),
		TracerName:  "github.com/KasumiMercury/primind-alarm-scheduling/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	// Health check endpoints
	healthChecker := health.NewChecker(redisClient, db, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	// API routes
	v1 := r.Group("/api/v1")
	{
		v1.POST("/alarms", alarmHandler.HandleCreateAlarm)
		v1.GET("/alarms", alarmHandler.HandleListAlarms)
		v1.GET("/alarms/for-date", alarmHandler.HandleAlarmsForDate)
		v1.GET("/alarms/:id", alarmHandler.HandleGetAlarm)
		v1.PUT("/alarms/:id", alarmHandler.HandleUpdateAlarm)
		v1.DELETE("/alarms/:id", alarmHandler.HandleDeleteAlarm)
		v1.POST("/alarms/:id/toggle", alarmHandler.HandleToggleAlarm)
		v1.GET("/alarms/:id/fire-dates", alarmHandler.HandleFireDates)

		v1.GET("/holidays/check", holidayHandler.HandleHolidayCheck)
		v1.GET("/holidays/:year", holidayHandler.HandleHolidaysForYear)
		v1.PUT("/settings/holiday-country", holidayHandler.HandleUpdateCountry)

		v1.GET("/snapshot", snapshotHandler.HandleGetSnapshot)
		v1.GET("/calendar.ics", calendarHandler.HandleCalendarFeed)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("holiday_country", cfg.Holiday.CountryCode),
			slog.Int("occurrence_count", cfg.Schedule.OccurrenceCount),
			slog.String("refresh_cron", cfg.Schedule.RefreshCron),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
