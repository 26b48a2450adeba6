// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// # Configuration
//
// [LoadConfig] reads an optional .env file from the working directory and
// then the environment:
//
//   - MEDIA_DIR: Directory whose files are catalogued (default: /media)
//   - ID_FORMAT: Identifier format, relative or absolute (default: relative)
//   - PORT: HTTP server port (default: 8080)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable or disable metrics server (default: true)
//   - METADATA_DB: SQLite file for titles and tags; empty disables them
//   - GROUP_TIMEZONE: IANA zone used to group items by day (default: Local)
//   - MAX_UPLOAD_BYTES: Upload size limit, e.g. 512MiB (default: 512MiB)
//   - STATS_INTERVAL: How often library gauges are refreshed (default: 5m)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: false)
//   - MEMORY_LIMIT: Container memory limit, e.g. 1GiB; sets GOMEMLIMIT
//   - MEMORY_RATIO: Share of MEMORY_LIMIT given to the Go heap (default: 0.85)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//
// The media directory must already exist. The metadata database directory
// is created if needed and must be writable.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo].
//
// # Lifecycle Logging
//
//	config, err := startup.LoadConfig()
//	if err != nil {
//	    startup.LogFatal("Configuration error: %v", err)
//	}
//	startup.LogMetadataStoreInit(config.MetadataDB, time.Since(t0))
//	startup.LogCatalogInit(manager.Root(), config.IDFormat, counts)
//	startup.LogServerStarted(startup.ServerConfig{...})
//	startup.LogShutdownInitiated("SIGTERM")
//	startup.LogShutdownComplete()
package startup
