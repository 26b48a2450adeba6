package metrics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// =============================================================================
// Mock StatsProvider
// =============================================================================

type mockStatsProvider struct {
	mu     sync.Mutex
	counts map[string]int
	err    error
	calls  int
}

func (m *mockStatsProvider) CountByType(context.Context) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.counts, m.err
}

func (m *mockStatsProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// =============================================================================
// Collector Tests
// =============================================================================

func TestCollector_CollectsImmediatelyOnStart(t *testing.T) {
	provider := &mockStatsProvider{counts: map[string]int{"image": 7, "mp4": 2}}

	c := NewCollector(provider, time.Hour)
	c.Start()
	c.Stop()

	if provider.callCount() < 1 {
		t.Fatal("collector did not collect on start")
	}
	if got := testutil.ToFloat64(MediaFilesTotal.WithLabelValues("image")); got != 7 {
		t.Errorf("image gauge = %v, want 7", got)
	}
	if got := testutil.ToFloat64(MediaFilesTotal.WithLabelValues("mp4")); got != 2 {
		t.Errorf("mp4 gauge = %v, want 2", got)
	}
}

func TestCollector_CollectsOnInterval(t *testing.T) {
	provider := &mockStatsProvider{counts: map[string]int{"flv": 1}}

	c := NewCollector(provider, 10*time.Millisecond)
	c.Start()

	deadline := time.Now().Add(2 * time.Second)
	for provider.callCount() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	c.Stop()

	if provider.callCount() < 3 {
		t.Errorf("collect calls = %d, want at least 3", provider.callCount())
	}
}

func TestCollector_ErrorKeepsPreviousValues(t *testing.T) {
	MediaFilesTotal.WithLabelValues("ogv").Set(4)
	provider := &mockStatsProvider{err: errors.New("directory vanished")}

	c := NewCollector(provider, time.Hour)
	c.collect()

	if got := testutil.ToFloat64(MediaFilesTotal.WithLabelValues("ogv")); got != 4 {
		t.Errorf("ogv gauge = %v, want 4 (unchanged on error)", got)
	}
}

func TestCollector_NilProvider(t *testing.T) {
	c := NewCollector(nil, time.Hour)
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("collect panicked with nil provider: %v", r)
		}
	}()
	c.collect()
}
