package main

// --- Data Models / Struct Definitions ---

// ConfiguredDevice is one device entry from the dashboard's device list.
// Only Name and CurrentVersion are interpreted by the relay; the remaining
// fields are dashboard-reported data passed through to API consumers.
type ConfiguredDevice struct {
	Name            string `json:"name"`                       // Device name, unique key within a dashboard
	CurrentVersion  string `json:"current_version"`            // Latest firmware version known to the dashboard
	Configuration   string `json:"configuration,omitempty"`    // YAML configuration file backing the device
	DeployedVersion string `json:"deployed_version,omitempty"` // Firmware version last deployed by the dashboard
	Address         string `json:"address,omitempty"`          // Network address the dashboard reaches the device at
	Path            string `json:"path,omitempty"`             // Configuration path on the dashboard host
}

// deviceListResponse is the wire shape of the dashboard's device-list endpoint
type deviceListResponse struct {
	Configured []ConfiguredDevice `json:"configured"` // Devices with a configuration on the dashboard
}

// --- API Response Models ---

// Response represents standardized API response format for all endpoints
type Response struct {
	Code   int         `json:"code"`            // HTTP status code
	Status string      `json:"status"`          // Status message (e.g., "OK", "Error")
	Data   interface{} `json:"data,omitempty"`  // Response payload data when successful
	Error  string      `json:"error,omitempty"` // Error description when operation fails
}

// UpdateStatusResponse answers "is a firmware update available" for one device
type UpdateStatusResponse struct {
	DeviceName       string `json:"device_name" example:"living-room-sensor"`
	InstalledVersion string `json:"installed_version,omitempty" example:"2024.12.0"`
	LatestVersion    string `json:"latest_version" example:"2025.2.1"`
	UpdateAvailable  bool   `json:"update_available" example:"true"`
	ReleaseURL       string `json:"release_url" example:"https://esphome.io/changelog/"`
}

// StatusResponse reports the relay's snapshot state
type StatusResponse struct {
	HasData      bool   `json:"has_data" example:"true"`
	DeviceCount  int    `json:"device_count" example:"12"`
	LastRefresh  string `json:"last_refresh,omitempty" example:"2025-01-16T10:30:00Z"`
	RefreshAge   string `json:"refresh_age,omitempty" example:"42 seconds"`
	LastError    string `json:"last_error,omitempty" example:"Dashboard service error"`
	PollInterval string `json:"poll_interval" example:"5m0s"`
}

// --- Swagger Documentation Response Types ---
// These types are used by swaggo/swag for API documentation generation.
// They appear in Swagger annotations (@Success, @Failure) in handler files.

// Compile-time check to ensure Swagger types are valid (prevents "unused" warnings)
var (
	_ = HealthResponse{}
	_ = MessageResponse{}
)

// HealthResponse represents health check response
// @Description Health check response data
type HealthResponse struct {
	Status string `json:"status" example:"healthy"`
}

// MessageResponse represents a simple message response
// @Description Simple message response
type MessageResponse struct {
	Message string `json:"message" example:"Operation completed successfully"`
}
