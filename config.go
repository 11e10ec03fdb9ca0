package main

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
)

// getEnv retrieves environment variable value with fallback to default if not set
func getEnv(key, defaultValue string) string {
	// Check if environment variable exists
	if value, exists := os.LookupEnv(key); exists {
		return value // Return environment variable value
	}
	return defaultValue // Return default value if environment variable not set
}

// getEnvInt retrieves a positive integer environment variable, falling back
// to the default when unset, non-numeric or not positive
func getEnvInt(key string, defaultValue int) int {
	if str := getEnv(key, ""); str != "" {
		if v, err := strconv.Atoi(str); err == nil && v > 0 {
			return v
		}
	}
	return defaultValue
}

// getEnvBool treats the literal string "true" as true, anything else as false
func getEnvBool(key string, defaultValue bool) bool {
	if str := getEnv(key, ""); str != "" {
		return str == "true"
	}
	return defaultValue
}

// initLoggerWrapper handles logger initialization and returns error
func initLoggerWrapper() error {
	var err error
	logger, err = initLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	_ = logger.Sugar()
	return nil
}

// Function to initialize logger (package-level variable for testing)
var initLogger = func() (*zap.Logger, error) {
	return zap.NewProduction() // Use production configuration for logger
}
