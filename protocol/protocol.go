// Copyright 2020 WolkAbout Technology s.r.o.

// Package protocol serializes outbound messages and parses inbound messages
// exchanged with the gateway. Topics are built as <dir>/<kind>/d/<deviceKey>,
// with an /r/<reference> suffix for reference-scoped channels. The payloads are
// the gateway's JSON protocol.
package protocol

import (
	"github.com/wolkabout/wolk-gateway-module-go/model"
)

// Shared topic path elements.
const (
	DevicePathPrefix    = "d/"
	ReferencePathPrefix = "r/"
	ChannelWildcard     = "#"
)

// DataProtocol handles messages related to device data:
// sensor readings, alarms, actuators and configuration options.
type DataProtocol interface {
	// InboundTopicsForDevice returns the topics the module must subscribe to
	// for the given device key.
	InboundTopicsForDevice(deviceKey string) []string

	IsActuatorGetMessage(msg model.Message) bool
	IsActuatorSetMessage(msg model.Message) bool
	IsConfigurationGetMessage(msg model.Message) bool
	IsConfigurationSetMessage(msg model.Message) bool

	ParseActuatorCommand(msg model.Message) (model.ActuatorCommand, error)
	ParseConfigurationCommand(msg model.Message) (model.ConfigurationCommand, error)

	MakeSensorReadingMessage(deviceKey string, reading model.SensorReading) (model.Message, error)
	MakeAlarmMessage(deviceKey string, alarm model.Alarm) (model.Message, error)
	MakeActuatorStatusMessage(deviceKey string, status model.ActuatorStatus) (model.Message, error)
	MakeConfigurationMessage(deviceKey string, configuration model.Configuration) (model.Message, error)

	// DeviceKeyFromMessage extracts the device key from an inbound topic.
	DeviceKeyFromMessage(msg model.Message) string
}

// RegistrationProtocol handles device registration requests and responses.
type RegistrationProtocol interface {
	// InboundTopics returns the module-wide registration response subscription.
	InboundTopics() []string
	InboundTopicsForDevice(deviceKey string) []string

	IsRegistrationResponseMessage(msg model.Message) bool
	MakeRegistrationMessage(request model.DeviceRegistrationRequest) (model.Message, error)
	ParseRegistrationResponse(msg model.Message) (model.DeviceRegistrationResponse, error)

	DeviceKeyFromMessage(msg model.Message) string
}

// StatusProtocol handles device status updates, responses and the module's
// last will message.
type StatusProtocol interface {
	InboundTopicsForDevice(deviceKey string) []string

	IsDeviceStatusRequestMessage(msg model.Message) bool
	MakeDeviceStatusResponseMessage(deviceKey string, status model.DeviceStatus) (model.Message, error)
	MakeDeviceStatusUpdateMessage(deviceKey string, status model.DeviceStatus) (model.Message, error)

	// MakeLastWillMessage lists the device keys the gateway must mark offline
	// if the module dies unexpectedly.
	MakeLastWillMessage(deviceKeys []string) (model.Message, error)

	DeviceKeyFromMessage(msg model.Message) string
}

// FirmwareUpdateProtocol handles messages related to device firmware updates.
type FirmwareUpdateProtocol interface {
	InboundTopicsForDevice(deviceKey string) []string

	IsFirmwareInstallMessage(msg model.Message) bool
	IsFirmwareAbortMessage(msg model.Message) bool

	// FirmwareFilePath extracts the firmware file path from an install message.
	FirmwareFilePath(msg model.Message) (string, error)

	MakeFirmwareUpdateStatusMessage(deviceKey string, status model.FirmwareUpdateStatus) (model.Message, error)
	MakeFirmwareVersionMessage(deviceKey, version string) (model.Message, error)

	DeviceKeyFromMessage(msg model.Message) string
}

// deviceKeyFromTopic returns the last path segment of a topic.
func deviceKeyFromTopic(topic string) string {
	for i := len(topic) - 1; i >= 0; i-- {
		if topic[i] == '/' {
			return topic[i+1:]
		}
	}
	return topic
}
