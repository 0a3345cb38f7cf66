// Copyright 2020 WolkAbout Technology s.r.o.

package wolk

import (
	"github.com/wolkabout/wolk-gateway-module-go/model"
)

// onInboundMessage routes messages from the gateway. It runs on the
// connection's network loop; anything potentially long running is handed off
// to its own goroutine.
func (m *Module) onInboundMessage(msg model.Message) {
	logger.Debugf("Inbound message: %s", msg.Topic)

	switch {
	case m.registration.IsRegistrationResponseMessage(msg):
		m.handleRegistrationResponse(msg)

	case m.status.IsDeviceStatusRequestMessage(msg):
		m.handleDeviceStatusRequest(msg)

	case m.data.IsActuatorSetMessage(msg), m.data.IsActuatorGetMessage(msg):
		m.handleActuatorCommand(msg)

	case m.data.IsConfigurationSetMessage(msg), m.data.IsConfigurationGetMessage(msg):
		m.handleConfigurationCommand(msg)

	case m.firmware.IsFirmwareInstallMessage(msg):
		m.handleFirmwareInstall(msg)

	case m.firmware.IsFirmwareAbortMessage(msg):
		m.handleFirmwareAbort(msg)

	default:
		logger.Printf("Ignoring message on unknown topic: %s", msg.Topic)
	}
}

func (m *Module) handleRegistrationResponse(msg model.Message) {
	response, err := m.registration.ParseRegistrationResponse(msg)
	if err != nil {
		logger.Printf("Error parsing registration response: %s", err)
		return
	}

	m.mu.Lock()
	device, known := m.devices[response.Key]
	m.mu.Unlock()
	if !known {
		logger.Printf("Received registration response for unknown device %s: %s", response.Key, response.Result)
		return
	}

	if response.Successful() {
		logger.Printf("Device %s registered", response.Key)
	} else {
		logger.Printf("Registration of device %s failed: %s %s", response.Key, response.Result, response.Description)
	}

	if m.registrationListener != nil {
		m.registrationListener(device, response)
	}
}

func (m *Module) handleDeviceStatusRequest(msg model.Message) {
	deviceKey := m.status.DeviceKeyFromMessage(msg)

	response, err := m.status.MakeDeviceStatusResponseMessage(deviceKey, m.deviceStatusProvider(deviceKey))
	if err != nil {
		logger.Printf("Error making status response for device %s: %s", deviceKey, err)
		return
	}
	if err := m.conn.Publish(response); err != nil {
		logger.Printf("Error publishing status response for device %s: %s", deviceKey, err)
	}
}

func (m *Module) handleActuatorCommand(msg model.Message) {
	if m.actuationHandler == nil {
		logger.Printf("Ignoring actuator command, no actuation handler is set: %s", msg.Topic)
		return
	}
	deviceKey := m.data.DeviceKeyFromMessage(msg)

	command, err := m.data.ParseActuatorCommand(msg)
	if err != nil {
		logger.Printf("Error parsing actuator command: %s", err)
		return
	}

	if command.Type == model.CommandSet {
		m.actuationHandler(deviceKey, command)
	}
	if err := m.PublishActuatorStatus(deviceKey, command.Reference); err != nil {
		logger.Printf("Error publishing actuator status for device %s: %s", deviceKey, err)
	}
}

func (m *Module) handleConfigurationCommand(msg model.Message) {
	if m.configurationHandler == nil {
		logger.Printf("Ignoring configuration command, no configuration handler is set: %s", msg.Topic)
		return
	}
	deviceKey := m.data.DeviceKeyFromMessage(msg)

	command, err := m.data.ParseConfigurationCommand(msg)
	if err != nil {
		logger.Printf("Error parsing configuration command: %s", err)
		return
	}

	if command.Type == model.CommandSet {
		m.configurationHandler(deviceKey, command.Values)
	}
	if err := m.PublishConfiguration(deviceKey); err != nil {
		logger.Printf("Error publishing configuration for device %s: %s", deviceKey, err)
	}
}

func (m *Module) handleFirmwareInstall(msg model.Message) {
	deviceKey := m.firmware.DeviceKeyFromMessage(msg)

	if m.firmwareHandler == nil {
		logger.Printf("Ignoring firmware install for device %s, no firmware handler is set", deviceKey)
		m.reportFirmwareError(deviceKey, model.FirmwareErrorUnspecified)
		return
	}

	m.mu.Lock()
	device, known := m.devices[deviceKey]
	m.mu.Unlock()
	if !known || !device.SupportsFirmwareUpdate() {
		logger.Printf("Rejecting firmware install for device %s: not present or unsupported", deviceKey)
		m.reportFirmwareError(deviceKey, model.FirmwareErrorDeviceNotPresent)
		return
	}

	filePath, err := m.firmware.FirmwareFilePath(msg)
	if err != nil {
		logger.Printf("Error parsing firmware install message: %s", err)
		m.reportFirmwareError(deviceKey, model.FirmwareErrorFileNotPresent)
		return
	}

	if err := m.PublishFirmwareUpdateStatus(deviceKey, model.FirmwareUpdateStatus{State: model.FirmwareUpdateStateInstallation}); err != nil {
		logger.Printf("Error reporting firmware installation for device %s: %s", deviceKey, err)
	}

	// installation can take a long time, get off the network loop
	go func() {
		if err := m.firmwareHandler.InstallFirmware(deviceKey, filePath); err != nil {
			logger.Printf("Firmware installation on device %s failed: %s", deviceKey, err)
			m.reportFirmwareError(deviceKey, model.FirmwareErrorInstallationFailed)
			return
		}
		if err := m.PublishFirmwareUpdateStatus(deviceKey, model.FirmwareUpdateStatus{State: model.FirmwareUpdateStateCompleted}); err != nil {
			logger.Printf("Error reporting firmware completion for device %s: %s", deviceKey, err)
		}
	}()
}

func (m *Module) handleFirmwareAbort(msg model.Message) {
	deviceKey := m.firmware.DeviceKeyFromMessage(msg)

	if m.firmwareHandler == nil {
		logger.Printf("Ignoring firmware abort for device %s, no firmware handler is set", deviceKey)
		return
	}

	go func() {
		if err := m.firmwareHandler.AbortInstallation(deviceKey); err != nil {
			logger.Printf("Error aborting firmware installation on device %s: %s", deviceKey, err)
			return
		}
		if err := m.PublishFirmwareUpdateStatus(deviceKey, model.FirmwareUpdateStatus{State: model.FirmwareUpdateStateAborted}); err != nil {
			logger.Printf("Error reporting firmware abort for device %s: %s", deviceKey, err)
		}
	}()
}

func (m *Module) reportFirmwareError(deviceKey string, code model.FirmwareUpdateErrorCode) {
	if err := m.PublishFirmwareUpdateStatus(deviceKey, model.FirmwareUpdateError(code)); err != nil {
		logger.Printf("Error reporting firmware error for device %s: %s", deviceKey, err)
	}
}
