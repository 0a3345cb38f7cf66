// Copyright 2020 WolkAbout Technology s.r.o.

package model

// FirmwareUpdateState is the state of an ongoing firmware update.
type FirmwareUpdateState string

const (
	FirmwareUpdateStateInstallation FirmwareUpdateState = "INSTALLATION"
	FirmwareUpdateStateCompleted    FirmwareUpdateState = "COMPLETED"
	FirmwareUpdateStateError        FirmwareUpdateState = "ERROR"
	FirmwareUpdateStateAborted      FirmwareUpdateState = "ABORTED"
)

// FirmwareUpdateErrorCode describes why a firmware update failed.
type FirmwareUpdateErrorCode int

const (
	FirmwareErrorUnspecified FirmwareUpdateErrorCode = iota
	FirmwareErrorFileNotPresent
	FirmwareErrorFileSystemError
	FirmwareErrorInstallationFailed
	FirmwareErrorDeviceNotPresent
)

// FirmwareUpdateStatus reports the progress of a firmware update for one device.
// ErrorCode is only meaningful when State is FirmwareUpdateStateError.
type FirmwareUpdateStatus struct {
	State     FirmwareUpdateState
	ErrorCode *FirmwareUpdateErrorCode
}

// FirmwareUpdateError makes an error status with the given code.
func FirmwareUpdateError(code FirmwareUpdateErrorCode) FirmwareUpdateStatus {
	return FirmwareUpdateStatus{State: FirmwareUpdateStateError, ErrorCode: &code}
}
