// Copyright 2020 WolkAbout Technology s.r.o.

package protocol

import (
	"encoding/json"
	"strings"

	"github.com/wolkabout/wolk-gateway-module-go/model"
)

// Status topic roots.
const (
	TopicStatusUpdate   = "d2p/subdevice_status_update/"
	TopicStatusResponse = "d2p/subdevice_status_response/"
	TopicStatusRequest  = "p2d/subdevice_status_request/"
	TopicLastWill       = "lastwill"
)

// JSONStatusProtocol serializes device status messages and the module's last will.
type JSONStatusProtocol struct{}

var _ StatusProtocol = (*JSONStatusProtocol)(nil)

// NewJSONStatusProtocol returns a status protocol speaking the gateway's JSON protocol.
func NewJSONStatusProtocol() *JSONStatusProtocol {
	return &JSONStatusProtocol{}
}

func (p *JSONStatusProtocol) InboundTopicsForDevice(deviceKey string) []string {
	return []string{TopicStatusRequest + DevicePathPrefix + deviceKey}
}

func (p *JSONStatusProtocol) IsDeviceStatusRequestMessage(msg model.Message) bool {
	return strings.HasPrefix(msg.Topic, TopicStatusRequest)
}

type statusPayload struct {
	State model.DeviceStatus `json:"state"`
}

// MakeDeviceStatusResponseMessage answers a gateway status request.
func (p *JSONStatusProtocol) MakeDeviceStatusResponseMessage(deviceKey string, status model.DeviceStatus) (model.Message, error) {
	payload, err := json.Marshal(statusPayload{State: status})
	if err != nil {
		return model.Message{}, err
	}
	return model.Message{
		Topic:   TopicStatusResponse + DevicePathPrefix + deviceKey,
		Payload: payload,
	}, nil
}

// MakeDeviceStatusUpdateMessage announces a device status change.
func (p *JSONStatusProtocol) MakeDeviceStatusUpdateMessage(deviceKey string, status model.DeviceStatus) (model.Message, error) {
	payload, err := json.Marshal(statusPayload{State: status})
	if err != nil {
		return model.Message{}, err
	}
	return model.Message{
		Topic:   TopicStatusUpdate + DevicePathPrefix + deviceKey,
		Payload: payload,
	}, nil
}

// MakeLastWillMessage lists the device keys that go offline with this module.
func (p *JSONStatusProtocol) MakeLastWillMessage(deviceKeys []string) (model.Message, error) {
	if deviceKeys == nil {
		deviceKeys = []string{}
	}
	payload, err := json.Marshal(deviceKeys)
	if err != nil {
		return model.Message{}, err
	}
	return model.Message{Topic: TopicLastWill, Payload: payload}, nil
}

func (p *JSONStatusProtocol) DeviceKeyFromMessage(msg model.Message) string {
	return deviceKeyFromTopic(msg.Topic)
}

func (p *JSONStatusProtocol) String() string { return "JSONStatusProtocol" }
