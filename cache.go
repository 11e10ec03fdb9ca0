package main

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// fetchFunc retrieves the configured-device list from the dashboard
type fetchFunc func(ctx context.Context) ([]ConfiguredDevice, error)

// dashboardCache holds the most recent configured-device snapshot and
// refreshes it from the dashboard on a fixed interval. The snapshot is
// replaced wholesale on every successful refresh and never mutated in
// place, so readers always see either the previous or the new map in full.
// One instance corresponds to one dashboard endpoint.
type dashboardCache struct {
	mu          sync.RWMutex                // Guards snapshot and lastRefresh
	refreshMu   sync.Mutex                  // Serializes all refresh bodies (timer-driven and gate-driven)
	snapshot    map[string]ConfiguredDevice // Devices indexed by name, nil until the first successful refresh
	lastRefresh time.Time                   // Completion time of the last successful refresh
	lastErr     error                       // Error from the most recent refresh, nil after a success

	fetch    fetchFunc      // External fetch function, suspends on network I/O
	interval time.Duration  // Background poll interval
	gate     firstFetchGate // Coalesces concurrent first fetches

	stopCh    chan struct{}
	startOnce sync.Once // Ensure StartPolling only launches one loop
	stopOnce  sync.Once // Ensure StopPolling only closes stopCh once
}

// newDashboardCache creates a cache backed by the given fetch function.
// The cache starts empty; call StartPolling to begin background refreshes.
func newDashboardCache(fetch fetchFunc, interval time.Duration) *dashboardCache {
	return &dashboardCache{
		fetch:    fetch,
		interval: interval,
	}
}

// refreshNow fetches the device list and replaces the snapshot wholesale.
// On fetch failure the previous snapshot is retained (stale but available)
// and the error is returned to the caller. refreshMu totally orders all
// refreshes so two concurrent triggers can never interleave their writes;
// only mutual exclusion is guaranteed, not FIFO ordering.
func (c *dashboardCache) refreshNow(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	devices, err := c.fetch(ctx)
	if err != nil {
		// Keep serving the stale snapshot, remember the failure for status
		c.mu.Lock()
		c.lastErr = err
		c.mu.Unlock()
		return err
	}

	// Index the device list by name; last one wins on duplicate names
	next := make(map[string]ConfiguredDevice, len(devices))
	for _, dev := range devices {
		next[dev.Name] = dev
	}

	// Publish the new snapshot atomically
	c.mu.Lock()
	c.snapshot = next
	c.lastRefresh = time.Now()
	c.lastErr = nil
	c.mu.Unlock()
	return nil
}

// ensureData guarantees a first fetch has been attempted when this call
// finishes. If a snapshot already exists it returns immediately without
// fetching. Otherwise concurrent callers are coalesced: exactly one
// performs the fetch and the rest block until it completes. A failed
// fetch is logged, not returned; the data simply stays absent and a later
// ensureData call becomes the new sole fetcher.
func (c *dashboardCache) ensureData(ctx context.Context) {
	if c.hasData() {
		return
	}
	c.gate.do(func() {
		if err := c.refreshNow(ctx); err != nil {
			logger.Warn("Initial dashboard fetch failed", zap.Error(err))
		}
	})
}

// currentSnapshot returns a copy of the current snapshot, or nil if no
// successful refresh has ever completed. Never blocks on a refresh and
// never triggers a fetch. The copy keeps callers from mutating the
// published map.
func (c *dashboardCache) currentSnapshot() map[string]ConfiguredDevice {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil {
		return nil
	}
	result := make(map[string]ConfiguredDevice, len(c.snapshot))
	for name, dev := range c.snapshot {
		result[name] = dev
	}
	return result
}

// getDevice returns the record for name from the current snapshot.
// The second return is false when no snapshot exists or the name is
// unknown; callers should treat that as "temporarily unknown", not an error.
func (c *dashboardCache) getDevice(name string) (ConfiguredDevice, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	dev, ok := c.snapshot[name]
	return dev, ok
}

// hasData reports whether at least one refresh has succeeded
func (c *dashboardCache) hasData() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot != nil
}

// deviceCount returns the number of devices in the current snapshot
func (c *dashboardCache) deviceCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.snapshot)
}

// lastRefreshTime returns when the snapshot was last replaced, zero if never
func (c *dashboardCache) lastRefreshTime() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastRefresh
}

// lastError returns the error from the most recent refresh, nil when the
// last refresh succeeded or none has run yet
func (c *dashboardCache) lastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// StartPolling launches the background refresh loop.
// Uses sync.Once so repeated calls cannot start multiple loops.
func (c *dashboardCache) StartPolling() {
	c.startOnce.Do(func() {
		c.stopCh = make(chan struct{})

		go func() {
			ticker := time.NewTicker(c.interval)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					// Each cycle gets its own timeout so a hung dashboard
					// cannot stall the loop
					ctx, cancel := context.WithTimeout(context.Background(), RefreshTaskTimeout)
					if err := c.refreshNow(ctx); err != nil {
						logger.Warn("Periodic dashboard refresh failed", zap.Error(err))
					}
					cancel()
				case <-c.stopCh:
					return
				}
			}
		}()
	})
}

// StopPolling stops the background refresh loop.
// Uses sync.Once to prevent double-closing the channel.
func (c *dashboardCache) StopPolling() {
	c.stopOnce.Do(func() {
		if c.stopCh != nil {
			close(c.stopCh)
		}
	})
}
