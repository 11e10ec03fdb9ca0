package main

import (
	"net/http"
	"time"
)

// healthCheckHandler handles health check requests to verify service status
func healthCheckHandler(w http.ResponseWriter, _ *http.Request) {
	// Return simple health status response indicating service is operational
	sendResponse(w, http.StatusOK, StatusOK, map[string]string{"status": "healthy"})
}

// refreshHandler queues an asynchronous snapshot refresh
//
//	@Summary		Request a snapshot refresh
//	@Description	Submits an asynchronous refresh of the configured-device snapshot. Returns immediately; query the device endpoints again after a few moments.
//	@Tags			Dashboard
//	@Produce		json
//	@Success		202	{object}	Response{data=MessageResponse}
//	@Failure		401	{object}	Response
//	@Failure		429	{object}	Response
//	@Security		ApiKeyAuth
//	@Router			/refresh [post]
func refreshHandler(w http.ResponseWriter, r *http.Request) {
	clientIP := GetClientIP(r)

	// Hand the refresh to the worker pool so the handler never blocks on
	// the dashboard round trip
	refreshWorkerPool.Submit(RefreshReasonAPI)
	AuditLog(AuditEventRefresh, clientIP, "", "Manual snapshot refresh requested")

	sendResponse(w, http.StatusAccepted, StatusAccepted, map[string]string{"message": MsgRefreshSubmitted})
}

// statusHandler reports the relay's snapshot state
//
//	@Summary		Snapshot status
//	@Description	Reports whether device data is available, how many devices are known and when the snapshot was last refreshed
//	@Tags			Dashboard
//	@Produce		json
//	@Success		200	{object}	Response{data=StatusResponse}
//	@Failure		401	{object}	Response
//	@Failure		429	{object}	Response
//	@Security		ApiKeyAuth
//	@Router			/status [get]
func statusHandler(w http.ResponseWriter, _ *http.Request) {
	status := StatusResponse{
		HasData:      dashboardCacheInstance.hasData(),
		DeviceCount:  dashboardCacheInstance.deviceCount(),
		PollInterval: pollInterval.String(),
	}
	// Only report refresh times once a refresh has succeeded
	if last := dashboardCacheInstance.lastRefreshTime(); !last.IsZero() {
		status.LastRefresh = last.UTC().Format(time.RFC3339)
		status.RefreshAge = formatDuration(time.Since(last))
	}
	// Sanitized so dashboard internals never leak to API clients
	if err := dashboardCacheInstance.lastError(); err != nil {
		status.LastError = sanitizeErrorMessage(err)
	}
	sendResponse(w, http.StatusOK, StatusOK, status)
}
