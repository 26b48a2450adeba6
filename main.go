package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"media-catalog/internal/filesystem"
	"media-catalog/internal/handlers"
	"media-catalog/internal/logging"
	"media-catalog/internal/media"
	"media-catalog/internal/memory"
	"media-catalog/internal/metastore"
	"media-catalog/internal/metrics"
	"media-catalog/internal/middleware"
	"media-catalog/internal/startup"
)

func main() {
	startTime := time.Now()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	memory.Configure(uint64(config.MemoryLimit), config.MemoryRatio)

	volumes := map[string]string{"media": config.MediaDir}
	if config.MetadataDB != "" {
		volumes["metadata"] = filepath.Dir(config.MetadataDB)
	}
	filesystem.SetDefaultVolumeResolver(filesystem.NewVolumeResolver(volumes))
	filesystem.SetObserver(metrics.NewFilesystemObserver())

	metrics.InitializeMetrics()
	metrics.SetAppInfo(startup.Version, startup.Commit, startup.GoVersion)

	opts := []media.Option{media.WithLocation(config.Location)}

	// Open the metadata store when configured
	var store *metastore.Store
	var tags handlers.TagSource
	if config.MetadataDB != "" {
		dbStart := time.Now()
		store, err = metastore.Open(context.Background(), config.MetadataDB)
		if err != nil {
			startup.LogFatal("Failed to open metadata store: %v", err)
		}
		startup.LogMetadataStoreInit(config.MetadataDB, time.Since(dbStart))
		opts = append(opts, media.WithMetadataStore(store))
		tags = store
	}

	manager, err := media.New(config.MediaDir, config.IDFormat, opts...)
	if err != nil {
		startup.LogFatal("Failed to initialize catalog: %v", err)
	}

	counts, err := manager.CountByType(context.Background())
	if err != nil {
		logging.Warn("Initial media count failed: %v", err)
	}
	startup.LogCatalogInit(manager.Root(), config.IDFormat, counts)

	collector := metrics.NewCollector(manager, config.StatsInterval)
	collector.Start()

	h := handlers.New(manager, tags, int64(config.MaxUploadBytes))
	router := h.Router()

	// Log routes dynamically
	startup.LogHTTPRoutes(router, config.LogHealthChecks)

	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = config.LogHealthChecks

	router.Use(middleware.Metrics(middleware.DefaultMetricsConfig()))
	handler := middleware.RequestID(middleware.Logger(loggingConfig)(router))

	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      0, // content responses may be long-lived
		IdleTimeout:       60 * time.Second,
	}

	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:              ":" + config.MetricsPort,
			Handler:           metricsMux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	shutdownDone := make(chan struct{})
	go func() {
		handleShutdown(srv, metricsSrv, collector, store)
		close(shutdownDone)
	}()

	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		startup.LogFatal("Server error: %v", err)
	}
	<-shutdownDone
}

func handleShutdown(srv, metricsSrv *http.Server, collector *metrics.Collector, store *metastore.Store) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		}
	}

	startup.LogShutdownStep("Stopping metrics collector")
	collector.Stop()
	startup.LogShutdownStepComplete("Metrics collector stopped")

	if store != nil {
		startup.LogShutdownStep("Closing metadata store")
		if err := store.Close(); err != nil {
			logging.Warn("Metadata store close error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metadata store closed")
		}
	}

	startup.LogShutdownComplete()
}
