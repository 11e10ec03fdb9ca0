package main

import (
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Package-level configuration and shared state, loaded in runServer
var (
	logger *zap.Logger

	serverAddr       string
	dashboardBaseURL string
	dashboardAuth    bool
	dashboardAuthKey string
	middlewareAuth   bool
	authKey          string
	pollInterval     time.Duration = DefaultPollInterval

	// Shared HTTP client for all dashboard calls
	httpClient = &http.Client{
		Timeout: DefaultHTTPTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        DefaultMaxIdleConns,
			MaxIdleConnsPerHost: DefaultIdleConnsPerHost,
			IdleConnTimeout:     DefaultIdleConnTimeout,
		},
	}

	// One cache instance per dashboard endpoint, created in runServer
	dashboardCacheInstance *dashboardCache

	// Worker pool for asynchronous snapshot refreshes
	refreshWorkerPool = &workerPool{
		workers: DefaultWorkerCount,
		queue:   make(chan task, DefaultQueueSize),
	}
)

// @title						ESPHome Dashboard Relay API
// @version					1.0
// @description				Polls an ESPHome device-management dashboard for its configured devices and serves per-device firmware update status.
// @BasePath					/api/v1/dashboard
// @securityDefinitions.apikey	ApiKeyAuth
// @in							header
// @name						X-API-Key
func main() {
	if err := initLoggerWrapper(); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := runServer(DefaultServerAddr); err != nil {
		logger.Fatal("Server terminated", zap.Error(err))
	}
}
