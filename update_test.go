package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- Update Status Tests ---

func TestUpdateStatusFor(t *testing.T) {
	dev := ConfiguredDevice{Name: "dev1", CurrentVersion: "2025.2.1"}

	tests := []struct {
		name      string
		installed string
		available bool
	}{
		{"older installed version", "2024.12.0", true},
		{"up to date", "2025.2.1", false},
		{"installed version unknown", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := updateStatusFor(dev, tt.installed)
			assert.Equal(t, "dev1", status.DeviceName)
			assert.Equal(t, tt.installed, status.InstalledVersion)
			assert.Equal(t, "2025.2.1", status.LatestVersion)
			assert.Equal(t, tt.available, status.UpdateAvailable)
			assert.Equal(t, ReleaseNotesURL, status.ReleaseURL)
		})
	}
}

func TestUpdateStatusForUnknownLatestVersion(t *testing.T) {
	// A device the dashboard has never built has no current_version; no
	// update can be offered
	dev := ConfiguredDevice{Name: "dev1"}
	status := updateStatusFor(dev, "2024.12.0")
	assert.False(t, status.UpdateAvailable)
	assert.Empty(t, status.LatestVersion)
}
