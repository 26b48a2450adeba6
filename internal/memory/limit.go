package memory

import (
	"math"
	"os"
	"runtime/debug"

	"github.com/dustin/go-humanize"

	"media-catalog/internal/logging"
)

// DefaultRatio is the share of the container limit given to the Go heap.
const DefaultRatio = 0.85

// Source names where the heap limit came from.
type Source string

const (
	SourceNone      Source = "none"
	SourceGoMemEnv  Source = "GOMEMLIMIT"
	SourceContainer Source = "MEMORY_LIMIT"
)

// Result describes the limit that is in effect after Configure.
type Result struct {
	Source         Source
	ContainerLimit uint64
	HeapLimit      int64
	Ratio          float64
}

// Configured reports whether a heap limit is in effect.
func (r Result) Configured() bool {
	return r.Source != SourceNone
}

// setMemoryLimit is swapped in tests.
var setMemoryLimit = debug.SetMemoryLimit

// Configure sets the heap limit to ratio * containerLimit. A zero
// containerLimit leaves the runtime default alone. Ratios outside (0, 1]
// fall back to DefaultRatio.
func Configure(containerLimit uint64, ratio float64) Result {
	if v := os.Getenv("GOMEMLIMIT"); v != "" {
		result := Result{Source: SourceNone}
		if limit := setMemoryLimit(-1); limit > 0 && limit < math.MaxInt64 {
			result.Source = SourceGoMemEnv
			result.HeapLimit = limit
		}
		logging.Info("GOMEMLIMIT set via environment: %s", v)
		return result
	}

	if containerLimit == 0 {
		logging.Debug("MEMORY_LIMIT not set, heap limit left at runtime default")
		return Result{Source: SourceNone}
	}

	if ratio <= 0 || ratio > 1 {
		logging.Warn("Memory ratio %.2f out of range (0.0-1.0], using %.2f", ratio, DefaultRatio)
		ratio = DefaultRatio
	}

	heap := int64(float64(containerLimit) * ratio)
	setMemoryLimit(heap)

	logging.Info("Configured GOMEMLIMIT: %s (%.0f%% of %s container limit)",
		humanize.IBytes(uint64(heap)), ratio*100, humanize.IBytes(containerLimit))

	return Result{
		Source:         SourceContainer,
		ContainerLimit: containerLimit,
		HeapLimit:      heap,
		Ratio:          ratio,
	}
}
