// Package memory applies a soft Go heap limit derived from the container
// memory limit.
//
// Uploads are streamed to disk and listings are built per request, so heap
// use tracks request concurrency. Under a container limit the runtime
// otherwise only learns about memory pressure from the OOM killer. Configure
// sets debug.SetMemoryLimit to a fraction of the container limit so the
// garbage collector works harder before that point.
//
// An explicit GOMEMLIMIT always wins and is only reported.
package memory
