package main

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// --- First-Fetch Gate Tests ---

func TestGateRunsFunctionWhenIdle(t *testing.T) {
	var gate firstFetchGate
	ran := false
	gate.do(func() { ran = true })
	assert.True(t, ran)
	assert.False(t, gate.active())
}

func TestGateCoalescesConcurrentCallers(t *testing.T) {
	var gate firstFetchGate
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	// First caller holds the gate until released
	go gate.do(func() {
		calls.Add(1)
		close(started)
		<-release
	})
	<-started
	assert.True(t, gate.active())

	// Late joiners must wait for the in-flight call, not start their own
	const joiners = 10
	var wg sync.WaitGroup
	var returned atomic.Int32
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gate.do(func() { calls.Add(1) })
			returned.Add(1)
		}()
	}

	// No joiner may return while the first call is still running
	time.Sleep(50 * time.Millisecond)
	assert.EqualValues(t, 0, returned.Load())

	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())
	assert.False(t, gate.active())
}

func TestGateIdleAfterCompletionAllowsNewCall(t *testing.T) {
	var gate firstFetchGate
	var calls atomic.Int32

	gate.do(func() { calls.Add(1) })
	gate.do(func() { calls.Add(1) })

	// Sequential calls are separate bursts, each runs its own fn
	assert.EqualValues(t, 2, calls.Load())
}

// --- ensureData Tests ---

func TestEnsureDataCoalescesFirstFetch(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(context.Context) ([]ConfiguredDevice, error) {
		calls.Add(1)
		<-release
		return []ConfiguredDevice{{Name: "dev1", CurrentVersion: "1.0"}}, nil
	}
	cache := newDashboardCache(fetch, time.Minute)

	const callers = 10
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.ensureData(context.Background())
		}()
	}

	// Let every caller reach the gate, then let the single fetch finish
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())

	// All callers observe the result of that one fetch
	dev, ok := cache.getDevice("dev1")
	assert.True(t, ok)
	assert.Equal(t, "1.0", dev.CurrentVersion)
}

func TestEnsureDataNoFetchWhenPopulated(t *testing.T) {
	var calls atomic.Int32
	fetch := func(context.Context) ([]ConfiguredDevice, error) {
		calls.Add(1)
		return []ConfiguredDevice{{Name: "dev1", CurrentVersion: "1.0"}}, nil
	}
	cache := newDashboardCache(fetch, time.Minute)
	assert.NoError(t, cache.refreshNow(context.Background()))
	assert.EqualValues(t, 1, calls.Load())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.ensureData(context.Background())
		}()
	}
	wg.Wait()

	// Snapshot already exists: zero additional fetches
	assert.EqualValues(t, 1, calls.Load())
}

func TestEnsureDataRetriesAfterFailedFetch(t *testing.T) {
	var calls atomic.Int32
	var fail atomic.Bool
	fail.Store(true)
	fetch := func(context.Context) ([]ConfiguredDevice, error) {
		calls.Add(1)
		if fail.Load() {
			return nil, errors.New("dashboard unreachable")
		}
		return []ConfiguredDevice{{Name: "dev1", CurrentVersion: "1.0"}}, nil
	}
	cache := newDashboardCache(fetch, time.Minute)

	// First attempt fails; ensureData returns without error and data stays absent
	cache.ensureData(context.Background())
	assert.EqualValues(t, 1, calls.Load())
	assert.False(t, cache.hasData())

	// The gate is not wedged: the next caller becomes the new sole fetcher
	fail.Store(false)
	cache.ensureData(context.Background())
	assert.EqualValues(t, 2, calls.Load())
	assert.True(t, cache.hasData())
}

func TestEnsureDataScenario(t *testing.T) {
	// Cache with the production interval and a stub fetch returning one
	// device; two concurrent ensureData calls produce one fetch and both
	// callers see the device afterwards
	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(context.Context) ([]ConfiguredDevice, error) {
		calls.Add(1)
		<-release
		return []ConfiguredDevice{{Name: "dev1", CurrentVersion: "2025.2.1"}}, nil
	}
	cache := newDashboardCache(fetch, DefaultPollInterval)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.ensureData(context.Background())
			dev, ok := cache.getDevice("dev1")
			assert.True(t, ok)
			assert.Equal(t, "2025.2.1", dev.CurrentVersion)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())
}
