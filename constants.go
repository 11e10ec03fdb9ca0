package main

import "time"

// Environment variable names
const (
	EnvServerAddr          = "SERVER_ADDR"
	EnvDashboardBaseURL    = "DASHBOARD_BASE_URL"
	EnvDashboardAuth       = "DASHBOARD_AUTH"
	EnvDashboardAuthKey    = "DASHBOARD_AUTH_KEY"
	EnvMiddlewareAuth      = "MIDDLEWARE_AUTH"
	EnvAuthKey             = "AUTH_KEY"
	EnvPollIntervalMinutes = "POLL_INTERVAL_MINUTES"
	EnvRateLimitRequests   = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow     = "RATE_LIMIT_WINDOW_SECONDS"
	EnvCORSAllowedOrigins  = "CORS_ALLOWED_ORIGINS"
	EnvCORSMaxAge          = "CORS_MAX_AGE_SECONDS"
)

// HTTP and timeout configurations
const (
	DefaultServerAddr   = ":8080"
	DefaultDashboardURL = "http://localhost:6052"
	// DefaultAuthKey is intentionally empty - MUST be set via AUTH_KEY environment variable
	DefaultAuthKey = ""
	// DefaultDashboardAuthKey is intentionally empty - set via DASHBOARD_AUTH_KEY when the dashboard requires auth
	DefaultDashboardAuthKey = ""
	DefaultHTTPTimeout      = 15 * time.Second
	DefaultShutdownTimeout  = 30 * time.Second
	DefaultRequestTimeout   = 60 * time.Second
	DefaultMaxIdleConns     = 100
	DefaultIdleConnsPerHost = 20
	DefaultIdleConnTimeout  = 30 * time.Second
	DefaultWorkerCount      = 4
	DefaultQueueSize        = 32
)

// Polling configurations
const (
	// DefaultPollInterval is how often the configured-device snapshot is
	// refreshed from the dashboard in the background
	DefaultPollInterval = 5 * time.Minute
	// RefreshTaskTimeout is the maximum time allowed for a single refresh
	RefreshTaskTimeout = 30 * time.Second
)

// Rate limit configurations
const (
	DefaultRateLimitRequests = 100
	DefaultRateLimitWindow   = 60
	MaxRateLimiterEntries    = 10000
)

// CORS configurations
const (
	DefaultCORSAllowedOrigins = "*"
	DefaultCORSMaxAge         = 300
)

// HTTP headers and query parameters
const (
	HeaderXAPIKey  = "X-API-Key"
	QueryInstalled = "installed"
)

// Device name constraints
const (
	MaxDeviceNameLength = 128
)

// ReleaseNotesURL is returned with every update-status response so
// consumers can link to the firmware changelog
const ReleaseNotesURL = "https://esphome.io/changelog/"

// Refresh trigger reasons used in logs and audit entries
const (
	RefreshReasonAPI = "api"
)

// HTTP response messages
const (
	StatusOK            = "OK"
	StatusAccepted      = "Accepted"
	StatusNotFound      = "Not Found"
	StatusBadRequest    = "Bad Request"
	StatusUnauthorized  = "Unauthorized"
	StatusUnavailable   = "Service Unavailable"
	StatusInternalError = "Internal Server Error"
)

// Error messages
const (
	ErrMissingAPIKey     = "Missing API key"
	ErrInvalidAPIKey     = "Invalid API key"
	ErrInvalidDeviceName = "Invalid device name"
	ErrDeviceNotKnown    = "Device not known to the dashboard"
	ErrNoSnapshot        = "No device data available yet. Try again shortly."
	ErrDashboardBackend  = "Dashboard service error"
	ErrRateLimitExceeded = "Rate limit exceeded. Please try again later."
)

// Success messages
const (
	MsgRefreshSubmitted = "Refresh task submitted. Device data will update shortly."
)

// Audit event types
const (
	AuditEventAuthSuccess = "auth_success"
	AuditEventAuthFailure = "auth_failure"
	AuditEventRefresh     = "manual_refresh"
)
