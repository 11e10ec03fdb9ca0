package main

import "sync"

// firstFetchGate coalesces concurrent fetch triggers into a single call.
// The gate is either idle (inflight is nil) or fetching (inflight is a
// channel that is closed when the fetch finishes). Callers arriving while
// a fetch runs wait on that channel instead of issuing their own fetch.
type firstFetchGate struct {
	mu       sync.Mutex    // Guards inflight
	inflight chan struct{} // Non-nil while a coalesced call is running
}

// do runs fn if no call is in flight, otherwise blocks until the in-flight
// call completes. Exactly one fn runs per contention burst and every caller
// returns only after that run has finished, whether it succeeded or failed.
// After completion the gate returns to idle, so a later call starts a
// fresh fn rather than observing a finished one.
func (g *firstFetchGate) do(fn func()) {
	g.mu.Lock()
	if g.inflight != nil {
		// Piggyback on the running call
		done := g.inflight
		g.mu.Unlock()
		<-done
		return
	}
	// Become the sole fetcher
	done := make(chan struct{})
	g.inflight = done
	g.mu.Unlock()

	fn()

	// Return to idle before releasing waiters so a failed fetch can be
	// retried by the next caller instead of wedging the gate
	g.mu.Lock()
	g.inflight = nil
	g.mu.Unlock()
	close(done)
}

// active reports whether a coalesced call is currently running
func (g *firstFetchGate) active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inflight != nil
}
