package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/osmaa/esphome-dashboard-relay/docs"
)

func runServer(addr string) error {
	// load config
	serverAddr = getEnv(EnvServerAddr, addr)
	dashboardBaseURL = getEnv(EnvDashboardBaseURL, DefaultDashboardURL)

	// Load dashboard authentication config (for outgoing dashboard calls).
	// A plain local dashboard has no authentication, so this defaults to off.
	dashboardAuth = getEnvBool(EnvDashboardAuth, false)
	dashboardAuthKey = getEnv(EnvDashboardAuthKey, DefaultDashboardAuthKey)

	// Return error if dashboard auth is enabled but the key is not set
	if dashboardAuth && dashboardAuthKey == "" {
		return fmt.Errorf("DASHBOARD_AUTH is enabled but DASHBOARD_AUTH_KEY is not set. " +
			"Set DASHBOARD_AUTH_KEY environment variable or disable DASHBOARD_AUTH")
	}
	logger.Info("Dashboard authentication", zap.Bool("enabled", dashboardAuth))

	// Load middleware authentication config (for incoming API requests)
	middlewareAuth = getEnvBool(EnvMiddlewareAuth, false)
	authKey = getEnv(EnvAuthKey, DefaultAuthKey)

	// Refuse to start in an insecure state: auth enabled without a key
	if middlewareAuth && authKey == "" {
		return fmt.Errorf("MIDDLEWARE_AUTH is enabled but AUTH_KEY is not set. " +
			"Set AUTH_KEY environment variable or disable MIDDLEWARE_AUTH")
	}
	logger.Info("Middleware authentication", zap.Bool("enabled", middlewareAuth))

	// Load poll interval (minutes, default 5)
	pollInterval = DefaultPollInterval
	if minutes := getEnvInt(EnvPollIntervalMinutes, 0); minutes > 0 {
		pollInterval = time.Duration(minutes) * time.Minute
	}
	logger.Info("Snapshot poll interval", zap.Duration("interval", pollInterval))

	// Load CORS config - default to "*" (allow all origins)
	originsStr := getEnv(EnvCORSAllowedOrigins, DefaultCORSAllowedOrigins)
	corsOrigins := strings.Split(originsStr, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	logger.Info("CORS enabled", zap.Strings("allowed_origins", corsOrigins))

	// Load rate limit configuration
	rateLimitRequests := getEnvInt(EnvRateLimitRequests, DefaultRateLimitRequests)
	rateLimitWindow := time.Duration(getEnvInt(EnvRateLimitWindow, DefaultRateLimitWindow)) * time.Second
	logger.Info("Rate limiting configured",
		zap.Int("requests", rateLimitRequests),
		zap.Duration("window", rateLimitWindow))

	// Load CORS max-age configuration
	corsMaxAge := getEnvInt(EnvCORSMaxAge, DefaultCORSMaxAge)

	logger.Info("Starting relay", zap.String("dashboard_url", dashboardBaseURL))

	// One cache per dashboard endpoint; it owns the snapshot and the
	// background poll loop
	dashboardCacheInstance = newDashboardCache(fetchConfiguredDevices, pollInterval)
	dashboardCacheInstance.StartPolling()
	defer dashboardCacheInstance.StopPolling()

	// start worker pool for async refresh requests
	refreshWorkerPool.Start()
	defer refreshWorkerPool.Stop()

	// router
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(DefaultRequestTimeout))
	// Apply rate limiting middleware
	rl := newRateLimiter(rateLimitRequests, rateLimitWindow)
	rl.StartCleanup() // Start background cleanup to prevent memory leaks
	defer rl.StopCleanup()
	r.Use(rateLimitMiddleware(rl))

	r.Use(securityHeadersMiddleware)
	// Apply CORS middleware
	r.Use(corsMiddleware(corsOrigins, corsMaxAge))

	// Health check endpoint - intentionally outside authentication so
	// load balancers and monitoring can probe without credentials
	r.Get("/health", healthCheckHandler)

	// Swagger documentation endpoint - also outside authentication
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1/dashboard", func(r chi.Router) {
		// Apply API key authentication middleware if enabled
		if middlewareAuth {
			r.Use(apiKeyAuthMiddleware)
		}
		r.Get("/devices", listDevicesHandler)
		r.Get("/devices/{name}", getDeviceHandler)
		r.Get("/devices/{name}/update", getUpdateStatusHandler)
		r.Post("/refresh", refreshHandler)
		r.Get("/status", statusHandler)
	})

	// server
	server := newHTTPServer(serverAddr, r)

	// start server
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server listening", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case <-quit:
		logger.Info("Shutdown signal received, starting graceful shutdown...")

		ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()

		if err := serverShutdown(ctx, server); err != nil {
			return err
		}

		logger.Info("Server exited properly")
		return nil
	}
}

// newHTTPServer builds the HTTP server with sane header timeouts
func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// serverShutdown drains in-flight requests within the given context
func serverShutdown(ctx context.Context, server *http.Server) error {
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
