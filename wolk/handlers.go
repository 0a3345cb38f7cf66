// Copyright 2020 WolkAbout Technology s.r.o.

package wolk

import (
	"github.com/wolkabout/wolk-gateway-module-go/model"
)

// DeviceStatusProvider reports the current status of the device with the
// given key. It is called from the connection's network loop and therefore
// must be thread safe and must not block.
type DeviceStatusProvider func(deviceKey string) model.DeviceStatus

// ActuationHandler applies an actuator command on a device.
// Must be thread safe and must not block; long running actuations should
// report ActuatorStateBusy from the status provider until finished.
type ActuationHandler func(deviceKey string, command model.ActuatorCommand)

// ActuatorStatusProvider reports the current state and value of an actuator.
// Must be thread safe and must not block.
type ActuatorStatusProvider func(deviceKey, reference string) (model.ActuatorStatus, error)

// ConfigurationHandler applies configuration option values on a device.
// Must be thread safe and must not block.
type ConfigurationHandler func(deviceKey string, configuration model.Configuration)

// ConfigurationProvider reports the current configuration option values of a
// device. Must be thread safe and must not block.
type ConfigurationProvider func(deviceKey string) (model.Configuration, error)

// RegistrationResponseListener is notified of the outcome of device
// registration requests.
type RegistrationResponseListener func(device model.Device, response model.DeviceRegistrationResponse)

// FirmwareHandler performs firmware updates on devices. InstallFirmware and
// AbortInstallation are invoked on their own goroutines and report progress
// through Module.PublishFirmwareUpdateStatus.
type FirmwareHandler interface {
	// InstallFirmware installs the firmware file on the device.
	// The module reports INSTALLATION before the call and COMPLETED or
	// ERROR afterwards, based on the returned error.
	InstallFirmware(deviceKey, firmwareFilePath string) error

	// AbortInstallation aborts an update in progress.
	AbortInstallation(deviceKey string) error

	// FirmwareVersion reports the current firmware version of the device.
	FirmwareVersion(deviceKey string) string
}
