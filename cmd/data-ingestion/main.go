// Package main provides the entry point for the data ingestion daemon.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtside-edge/internal/config"
	"github.com/yourusername/courtside-edge/internal/database"
	"github.com/yourusername/courtside-edge/internal/datasource"
	"github.com/yourusername/courtside-edge/internal/health"
	"github.com/yourusername/courtside-edge/internal/logger"
	"github.com/yourusername/courtside-edge/internal/metrics"
	"github.com/yourusername/courtside-edge/internal/scheduler"
	"github.com/yourusername/courtside-edge/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"version":     Version,
	}).Info("Courtside Edge ingestion daemon starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database is optional for ingestion; its ping feeds the readiness
	// probe when configured
	var db *database.DB
	if cfg.Features.PersistenceEnabled {
		db, err = database.Initialize(ctx, cfg)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to initialize database")
		}
		defer db.Close()
		appLog.Info("Database connection established")
	}

	// Data sources
	httpLogger := log.New(os.Stdout, "datasource: ", log.LstdFlags)
	httpClient := datasource.NewRateLimitedHTTPClient(datasource.DefaultHTTPClientConfig(), httpLogger)
	defer httpClient.Close()

	sources, err := datasource.NewFactory(cfg, httpLogger).NewSources(httpClient)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to build data sources")
	}

	ingestionSvc := service.NewIngestionService(sources.Seasons, sources.Odds, cfg.Stats.Seasons, appLog)

	// Scheduler
	sched := scheduler.NewScheduler(ingestionSvc, appLog)
	if sources.Seasons != nil {
		if err := sched.ScheduleStatsRefresh(cfg.DataIngestion.Schedule.StatsRefreshCron); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule stats refresh")
		}
	}
	if sources.Odds != nil {
		if err := sched.ScheduleOddsPolling(cfg.DataIngestion.Schedule.OddsPollingIntervalSeconds); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule odds polling")
		}
	}
	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}

	// Metrics endpoint
	metrics.InitRegistry()
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
		metricsServer = &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
		go func() {
			appLog.WithField("port", cfg.Metrics.Port).Info("Metrics server starting")
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				appLog.WithError(err).Error("Metrics server error")
			}
		}()
	}

	// Health endpoints
	healthCfg := health.Config{
		ServiceName: "data-ingestion",
		Version:     Version,
		Commit:      GitCommit,
		Logger:      appLog,
	}
	// A typed nil would defeat the pinger's interface nil check
	if db != nil {
		healthCfg.DB = db
	}
	healthServer := health.NewServer(healthCfg)
	healthServer.AddCheck("scheduler", func(ctx context.Context) error {
		if !sched.IsRunning() {
			return fmt.Errorf("scheduler not running")
		}
		return nil
	})
	if sources.Odds != nil {
		staleness := 3 * time.Duration(cfg.DataIngestion.Schedule.OddsPollingIntervalSeconds) * time.Second
		healthServer.AddCheck("odds_feed", func(ctx context.Context) error {
			_, at := ingestionSvc.LatestLines()
			if at.IsZero() {
				return fmt.Errorf("no odds poll yet")
			}
			if age := time.Since(at); age > staleness {
				return fmt.Errorf("odds stale by %v", age)
			}
			return nil
		})
	}
	if err := healthServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}

	// Prime the snapshots and odds cache so the first scheduled runs are
	// not the first data the daemon serves
	if sources.Seasons != nil {
		if m, err := ingestionSvc.RefreshSeasonStats(ctx); err != nil {
			appLog.WithError(err).Warn("Initial stats refresh failed")
		} else {
			appLog.WithField("metrics", m.String()).Info("Initial stats refresh complete")
		}
	}
	if sources.Odds != nil {
		if _, err := ingestionSvc.PollOdds(ctx); err != nil {
			appLog.WithError(err).Warn("Initial odds poll failed")
		}
	}
	healthServer.SetReady(true)

	appLog.WithFields(logrus.Fields{
		"next_run":     sched.GetNextRun(),
		"stats_source": sources.Seasons != nil,
		"odds_source":  sources.Odds != nil,
		"persistence":  db != nil,
	}).Info("Ingestion daemon running")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	healthServer.SetReady(false)
	cancel()

	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Error stopping scheduler")
	}
	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			appLog.WithError(err).Error("Error stopping metrics server")
		}
		shutdownCancel()
	}
	if err := healthServer.Shutdown(); err != nil {
		appLog.WithError(err).Error("Error stopping health server")
	}

	appLog.Info("Ingestion daemon shut down")
}
