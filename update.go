package main

// updateStatusFor answers the update-availability query for one device.
// The dashboard's current_version is the latest firmware it can build;
// the installed version comes from the consumer (it is not tracked here).
// An update is available when both versions are known and differ - the
// dashboard always builds from the newest release, so any mismatch means
// the device is behind.
func updateStatusFor(dev ConfiguredDevice, installed string) UpdateStatusResponse {
	latest := dev.CurrentVersion
	return UpdateStatusResponse{
		DeviceName:       dev.Name,
		InstalledVersion: installed,
		LatestVersion:    latest,
		UpdateAvailable:  installed != "" && latest != "" && installed != latest,
		ReleaseURL:       ReleaseNotesURL,
	}
}
