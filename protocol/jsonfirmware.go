// Copyright 2020 WolkAbout Technology s.r.o.

package protocol

import (
	"encoding/json"
	"strings"

	"github.com/wolkabout/wolk-gateway-module-go/model"
)

// Firmware update topic roots.
const (
	TopicFirmwareInstall = "p2d/firmware_update_install/"
	TopicFirmwareAbort   = "p2d/firmware_update_abort/"
	TopicFirmwareStatus  = "d2p/firmware_update_status/"
	TopicFirmwareVersion = "d2p/firmware_version_update/"
)

// JSONFirmwareUpdateProtocol serializes firmware update messages.
type JSONFirmwareUpdateProtocol struct{}

var _ FirmwareUpdateProtocol = (*JSONFirmwareUpdateProtocol)(nil)

// NewJSONFirmwareUpdateProtocol returns a firmware update protocol speaking
// the gateway's JSON protocol.
func NewJSONFirmwareUpdateProtocol() *JSONFirmwareUpdateProtocol {
	return &JSONFirmwareUpdateProtocol{}
}

func (p *JSONFirmwareUpdateProtocol) InboundTopicsForDevice(deviceKey string) []string {
	return []string{
		TopicFirmwareInstall + DevicePathPrefix + deviceKey,
		TopicFirmwareAbort + DevicePathPrefix + deviceKey,
	}
}

func (p *JSONFirmwareUpdateProtocol) IsFirmwareInstallMessage(msg model.Message) bool {
	return strings.HasPrefix(msg.Topic, TopicFirmwareInstall)
}

func (p *JSONFirmwareUpdateProtocol) IsFirmwareAbortMessage(msg model.Message) bool {
	return strings.HasPrefix(msg.Topic, TopicFirmwareAbort)
}

// FirmwareFilePath extracts the firmware file path from an install message.
func (p *JSONFirmwareUpdateProtocol) FirmwareFilePath(msg model.Message) (string, error) {
	var payload struct {
		FileName string `json:"fileName"`
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return "", logger.Errorf("Error parsing firmware install message %s: %s", msg.Topic, err)
	}
	return payload.FileName, nil
}

// MakeFirmwareUpdateStatusMessage reports firmware update progress for a device.
func (p *JSONFirmwareUpdateProtocol) MakeFirmwareUpdateStatusMessage(deviceKey string, status model.FirmwareUpdateStatus) (model.Message, error) {
	payload, err := json.Marshal(struct {
		Status model.FirmwareUpdateState      `json:"status"`
		Error  *model.FirmwareUpdateErrorCode `json:"error,omitempty"`
	}{
		Status: status.State,
		Error:  status.ErrorCode,
	})
	if err != nil {
		return model.Message{}, err
	}
	return model.Message{
		Topic:   TopicFirmwareStatus + DevicePathPrefix + deviceKey,
		Payload: payload,
	}, nil
}

// MakeFirmwareVersionMessage announces a device's current firmware version.
// The payload is the raw version string.
func (p *JSONFirmwareUpdateProtocol) MakeFirmwareVersionMessage(deviceKey, version string) (model.Message, error) {
	return model.Message{
		Topic:   TopicFirmwareVersion + DevicePathPrefix + deviceKey,
		Payload: []byte(version),
	}, nil
}

func (p *JSONFirmwareUpdateProtocol) DeviceKeyFromMessage(msg model.Message) string {
	return deviceKeyFromTopic(msg.Topic)
}

func (p *JSONFirmwareUpdateProtocol) String() string { return "JSONFirmwareUpdateProtocol" }
