/*
Package filesystem provides resilient filesystem operations with automatic retry logic
for NFS stale file handle errors.

Media directories are frequently NFS or SMB mounts. A listing stats every
entry, so a single ESTALE during a scan would otherwise drop an item that is
really there. The helpers here retry only ESTALE (errno 116); every other
error is returned immediately.

# Usage

	entries, err := filesystem.ReadDirWithRetry(root, filesystem.DefaultRetryConfig())
	info, err := filesystem.StatWithRetry(path, filesystem.DefaultRetryConfig())
	f, err := filesystem.OpenWithRetry(path, filesystem.DefaultRetryConfig())

# Retry Behavior

Exponential backoff with a cap. Defaults:
  - MaxRetries: 3
  - InitialBackoff: 50ms
  - MaxBackoff: 500ms

# Metrics

Operations are reported to the package-level Observer (see SetObserver). The
metrics package provides the Prometheus implementation; with no observer set
nothing is recorded. Paths are labelled with a volume name through
VolumeResolver so per-mount latency can be told apart.
*/
package filesystem
