package metrics

import (
	"time"

	"media-catalog/internal/filesystem"

	"github.com/prometheus/client_golang/prometheus"
)

// filesystemObserver implements filesystem.Observer using the Prometheus
// metrics declared in this package.
type filesystemObserver struct{}

// NewFilesystemObserver creates an observer that records filesystem metrics
// into the Prometheus counters and histograms declared in metrics.go.
func NewFilesystemObserver() filesystem.Observer {
	return &filesystemObserver{}
}

func (o *filesystemObserver) ObserveOperation(volume, operation string, durationSeconds float64, err error) {
	FilesystemOperationDuration.WithLabelValues(volume, operation).Observe(durationSeconds)
	if err != nil {
		FilesystemOperationErrors.WithLabelValues(volume, operation).Inc()
	}
}

func (o *filesystemObserver) ObserveRetryAttempt(retryOp, volume string) {
	FilesystemRetryAttempts.WithLabelValues(retryOp, volume).Inc()
}

func (o *filesystemObserver) ObserveRetrySuccess(retryOp, volume string) {
	FilesystemRetrySuccess.WithLabelValues(retryOp, volume).Inc()
}

func (o *filesystemObserver) ObserveRetryFailure(retryOp, volume string) {
	FilesystemRetryFailures.WithLabelValues(retryOp, volume).Inc()
}

func (o *filesystemObserver) ObserveRetryDuration(retryOp, volume string, durationSeconds float64) {
	FilesystemRetryDuration.WithLabelValues(retryOp, volume).Observe(durationSeconds)
}

func (o *filesystemObserver) ObserveStaleError(retryOp, volume string) {
	FilesystemStaleErrors.WithLabelValues(retryOp, volume).Inc()
}

// ObserveCatalogOperation returns a completion func that records the status
// and duration of a catalog operation.
//
//	done := metrics.ObserveCatalogOperation("get")
//	...
//	done(err)
func ObserveCatalogOperation(operation string) func(error) {
	return observeOperation(CatalogOperationsTotal, CatalogOperationDuration, operation)
}

// ObserveMetastoreQuery is ObserveCatalogOperation for metadata store queries.
func ObserveMetastoreQuery(operation string) func(error) {
	return observeOperation(MetastoreQueriesTotal, MetastoreQueryDuration, operation)
}

func observeOperation(total *prometheus.CounterVec, duration *prometheus.HistogramVec, operation string) func(error) {
	start := time.Now()
	return func(err error) {
		status := "success"
		if err != nil {
			status = "error"
		}
		total.WithLabelValues(operation, status).Inc()
		duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}
