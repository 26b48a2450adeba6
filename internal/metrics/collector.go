package metrics

import (
	"context"
	"time"

	"media-catalog/internal/logging"
)

// StatsProvider reports how many listable files of each type exist.
type StatsProvider interface {
	CountByType(ctx context.Context) (map[string]int, error)
}

// Collector periodically refreshes the library gauges.
type Collector struct {
	statsProvider StatsProvider
	interval      time.Duration
	stopChan      chan struct{}
	done          chan struct{}
}

// NewCollector creates a new metrics collector
func NewCollector(provider StatsProvider, interval time.Duration) *Collector {
	return &Collector{
		statsProvider: provider,
		interval:      interval,
		stopChan:      make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// Start begins the metrics collection loop
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the collection loop and waits for it to exit.
func (c *Collector) Stop() {
	close(c.stopChan)
	<-c.done
}

func (c *Collector) collectLoop() {
	defer close(c.done)

	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	if c.statsProvider == nil {
		return
	}

	counts, err := c.statsProvider.CountByType(context.Background())
	if err != nil {
		logging.Warn("Metrics collection failed: %v", err)
		return
	}

	total := 0
	for t, n := range counts {
		MediaFilesTotal.WithLabelValues(t).Set(float64(n))
		total += n
	}

	logging.Debug("Metrics collected: %d media files across %d types", total, len(counts))
}
