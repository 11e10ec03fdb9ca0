package main

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// GetClientIP extracts the client IP address from the request.
// It checks X-Real-IP header first (for proxied requests), then falls back to RemoteAddr.
func GetClientIP(r *http.Request) string {
	clientIP := r.RemoteAddr
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		if parsedIP := net.ParseIP(realIP); parsedIP != nil {
			clientIP = realIP
		}
	}
	return clientIP
}

// safeClose safely closes an io.Closer resource and logs any errors
func safeClose(closer io.Closer) {
	if closer != nil {
		if err := closer.Close(); err != nil {
			logger.Warn("Failed to close resource", zap.Error(err))
		}
	}
}

// formatDuration formats a duration into a human-readable string
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%d minutes", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%.1f hours", d.Hours())
	}
	return fmt.Sprintf("%.1f days", d.Hours()/24)
}

// --- HTTP Handler Helpers ---

// ExtractDeviceName pulls the device name out of the URL and validates it.
// Returns the name and true on success, or sends an error response and
// returns false.
func ExtractDeviceName(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := chi.URLParam(r, "name")
	if err := validateDeviceName(name); err != nil {
		sendError(w, http.StatusBadRequest, StatusBadRequest, ErrInvalidDeviceName)
		return "", false
	}
	return name, true
}

// RequireSnapshotAndRespond ensures device data exists before a lookup.
// It runs the first-fetch gate, then checks whether a snapshot is present.
// Returns true if data is available; otherwise sends a 503 (the data is
// temporarily unknown, not an error) and returns false.
func RequireSnapshotAndRespond(w http.ResponseWriter, r *http.Request) bool {
	dashboardCacheInstance.ensureData(r.Context())
	if !dashboardCacheInstance.hasData() {
		sendError(w, http.StatusServiceUnavailable, StatusUnavailable, ErrNoSnapshot)
		return false
	}
	return true
}

// LookupDeviceAndRespond resolves a device name against the current
// snapshot. Returns the record and true, or sends a 404 and returns false
// when the dashboard does not know the name.
func LookupDeviceAndRespond(w http.ResponseWriter, name string) (ConfiguredDevice, bool) {
	dev, ok := dashboardCacheInstance.getDevice(name)
	if !ok {
		sendError(w, http.StatusNotFound, StatusNotFound, ErrDeviceNotKnown)
		return ConfiguredDevice{}, false
	}
	return dev, true
}
