package main

import (
	"net/http"
)

// listDevicesHandler returns the full configured-device snapshot
//
//	@Summary		List configured devices
//	@Description	Returns every device the dashboard knows about, keyed by device name. Triggers a coalesced first fetch when no data has been loaded yet.
//	@Tags			Device
//	@Produce		json
//	@Success		200	{object}	Response{data=map[string]ConfiguredDevice}
//	@Failure		401	{object}	Response
//	@Failure		429	{object}	Response
//	@Failure		503	{object}	Response
//	@Security		ApiKeyAuth
//	@Router			/devices [get]
func listDevicesHandler(w http.ResponseWriter, r *http.Request) {
	// Make sure a first fetch has been attempted before reading
	if !RequireSnapshotAndRespond(w, r) {
		return
	}
	sendResponse(w, http.StatusOK, StatusOK, dashboardCacheInstance.currentSnapshot())
}

// getDeviceHandler returns one configured device by name
//
//	@Summary		Get a configured device
//	@Description	Returns the dashboard record for a single device, including the latest firmware version the dashboard knows
//	@Tags			Device
//	@Produce		json
//	@Param			name	path		string	true	"Device name"	example(living-room-sensor)
//	@Success		200		{object}	Response{data=ConfiguredDevice}
//	@Failure		400		{object}	Response
//	@Failure		401		{object}	Response
//	@Failure		404		{object}	Response
//	@Failure		429		{object}	Response
//	@Failure		503		{object}	Response
//	@Security		ApiKeyAuth
//	@Router			/devices/{name} [get]
func getDeviceHandler(w http.ResponseWriter, r *http.Request) {
	name, ok := ExtractDeviceName(w, r)
	if !ok {
		return
	}
	if !RequireSnapshotAndRespond(w, r) {
		return
	}
	dev, ok := LookupDeviceAndRespond(w, name)
	if !ok {
		return
	}
	sendResponse(w, http.StatusOK, StatusOK, dev)
}
