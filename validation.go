package main

import (
	"errors"
	"strings"
)

// validateDeviceName validates a device name supplied by an API consumer.
// Dashboard device names are short printable identifiers; rejecting
// control characters and oversized values keeps them safe to echo back
// in responses and log lines.
func validateDeviceName(name string) error {
	if name == "" {
		return errors.New("device name is required")
	}
	if len(name) > MaxDeviceNameLength {
		return errors.New("device name too long")
	}
	if strings.TrimSpace(name) != name {
		return errors.New("device name must not have leading or trailing spaces")
	}
	for _, r := range name {
		// Allow only printable ASCII characters (space to tilde).
		// This excludes control characters (0x00-0x1F) and DEL (0x7F)
		if r < 0x20 || r > 0x7E {
			return errors.New("device name contains invalid characters")
		}
	}
	return nil
}

// sanitizeErrorMessage removes potentially sensitive information from error messages
func sanitizeErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	errMsg := err.Error()

	// Hide upstream details - the dashboard URL or status line may leak
	// internal topology to API clients
	if strings.Contains(errMsg, "dashboard returned non-OK status") {
		return ErrDashboardBackend
	}
	if strings.Contains(errMsg, "failed to decode device list") {
		return ErrDashboardBackend
	}

	// Return generic message for unknown errors to prevent info leakage
	return "An error occurred processing your request"
}
