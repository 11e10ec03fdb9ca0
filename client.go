package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// fetchConfiguredDevices retrieves the configured-device list from the
// dashboard's device-list endpoint. Any transport failure, non-2xx status
// or malformed body surfaces as an error; the caller decides what to do
// with the previous snapshot.
func fetchConfiguredDevices(ctx context.Context) ([]ConfiguredDevice, error) {
	urlQ := fmt.Sprintf("%s/devices", dashboardBaseURL)
	// Create HTTP GET request with context so the transport can cancel it
	req, err := http.NewRequestWithContext(ctx, "GET", urlQ, nil)
	if err != nil {
		return nil, err
	}
	// Add authentication header only if dashboard auth is enabled
	if dashboardAuth && dashboardAuthKey != "" {
		req.Header.Set(HeaderXAPIKey, dashboardAuthKey)
	}
	// Execute HTTP request
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	// Ensure response body is closed
	defer safeClose(resp.Body)

	// Check for HTTP errors
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dashboard returned non-OK status: %s", resp.Status)
	}

	// Read response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// Parse the device-list envelope
	var result deviceListResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode device list: %w", err)
	}

	return result.Configured, nil
}
