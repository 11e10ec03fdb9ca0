package main

import (
	"net/http"
)

// getUpdateStatusHandler answers whether a firmware update is available for a device
//
//	@Summary		Get firmware update status
//	@Description	Compares the installed firmware version supplied by the caller against the latest version the dashboard knows for the device
//	@Tags			Update
//	@Produce		json
//	@Param			name		path		string	true	"Device name"								example(living-room-sensor)
//	@Param			installed	query		string	false	"Firmware version currently on the device"	example(2024.12.0)
//	@Success		200			{object}	Response{data=UpdateStatusResponse}
//	@Failure		400			{object}	Response
//	@Failure		401			{object}	Response
//	@Failure		404			{object}	Response
//	@Failure		429			{object}	Response
//	@Failure		503			{object}	Response
//	@Security		ApiKeyAuth
//	@Router			/devices/{name}/update [get]
func getUpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	name, ok := ExtractDeviceName(w, r)
	if !ok {
		return
	}
	// The installed version is reported by the consumer; absent means the
	// device has not told anyone what it runs yet
	installed := r.URL.Query().Get(QueryInstalled)

	if !RequireSnapshotAndRespond(w, r) {
		return
	}
	dev, ok := LookupDeviceAndRespond(w, name)
	if !ok {
		return
	}
	sendResponse(w, http.StatusOK, StatusOK, updateStatusFor(dev, installed))
}
