// Package metrics provides Prometheus instrumentation for the media catalog.
//
// All metrics are registered with promauto and prefixed with "media_catalog_".
//
// # Metric Categories
//
// ## HTTP Metrics
//   - HTTPRequestsTotal: requests by method, normalized path and status
//   - HTTPRequestDuration: request duration by method and path
//   - HTTPRequestsInFlight: requests currently being served
//
// ## Catalog Metrics
//   - CatalogOperationsTotal / CatalogOperationDuration: list, get, update,
//     delete, create and stats calls on the index manager
//   - CatalogEntriesScanned: directory entries examined by listings
//   - CatalogEntriesSkipped: entries dropped, by reason (unmatched,
//     materialize, tags)
//   - CatalogItemsReturned / CatalogGroupsReturned: listing result sizes
//
// ## Metadata Store Metrics
//   - MetastoreQueriesTotal / MetastoreQueryDuration
//
// ## Library Metrics
//   - MediaFilesTotal: listable files by type, refreshed by Collector
//
// ## Filesystem Metrics
//   - FilesystemOperationDuration / FilesystemOperationErrors
//   - FilesystemRetryAttempts / Success / Failures / Duration
//   - FilesystemStaleErrors
//
// These are fed through the filesystem.Observer returned by
// NewFilesystemObserver; filesystem cannot import this package directly.
//
// # Usage
//
//	filesystem.SetObserver(metrics.NewFilesystemObserver())
//	metrics.InitializeMetrics()
//	metrics.SetAppInfo(startup.Version, startup.Commit, runtime.Version())
//
//	done := metrics.ObserveCatalogOperation("list")
//	groups, err := mgr.ListMediaItems(ctx, q)
//	done(err)
package metrics
