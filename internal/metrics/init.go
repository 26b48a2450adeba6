package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	// --- Catalog operations ---
	for _, op := range []string{"list", "get", "update", "delete", "create", "stats"} {
		CatalogOperationsTotal.WithLabelValues(op, "success")
		CatalogOperationsTotal.WithLabelValues(op, "error")
		CatalogOperationDuration.WithLabelValues(op)
	}

	for _, reason := range []string{"unmatched", "stat", "not_regular", "materialize", "tags"} {
		CatalogEntriesSkipped.WithLabelValues(reason)
	}

	// --- Metadata store queries ---
	for _, op := range []string{"initialize_schema", "load", "save", "delete", "tags"} {
		MetastoreQueriesTotal.WithLabelValues(op, "success")
		MetastoreQueriesTotal.WithLabelValues(op, "error")
		MetastoreQueryDuration.WithLabelValues(op)
	}

	// --- Library contents ---
	for _, t := range []string{"image", "mp4", "flv", "ogv"} {
		MediaFilesTotal.WithLabelValues(t)
	}

	// --- Filesystem operation metrics (per volume × operation) ---
	volumes := []string{"media", "metadata", "unknown"}
	fsOps := []string{"stat", "open", "readdir"}

	for _, vol := range volumes {
		for _, op := range fsOps {
			FilesystemOperationDuration.WithLabelValues(vol, op)
			FilesystemOperationErrors.WithLabelValues(vol, op)
			FilesystemRetryAttempts.WithLabelValues(op, vol)
			FilesystemRetrySuccess.WithLabelValues(op, vol)
			FilesystemRetryFailures.WithLabelValues(op, vol)
			FilesystemStaleErrors.WithLabelValues(op, vol)
			FilesystemRetryDuration.WithLabelValues(op, vol)
		}
	}
}
