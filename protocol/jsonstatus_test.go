// Copyright 2020 WolkAbout Technology s.r.o.

package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolkabout/wolk-gateway-module-go/model"
)

func TestMakeDeviceStatusUpdateMessage(t *testing.T) {
	p := NewJSONStatusProtocol()

	msg, err := p.MakeDeviceStatusUpdateMessage("DEV1", model.DeviceStatusConnected)
	require.NoError(t, err)
	assert.Equal(t, "d2p/subdevice_status_update/d/DEV1", msg.Topic)
	assert.JSONEq(t, `{"state":"CONNECTED"}`, string(msg.Payload))
}

func TestMakeDeviceStatusResponseMessage(t *testing.T) {
	p := NewJSONStatusProtocol()

	msg, err := p.MakeDeviceStatusResponseMessage("DEV1", model.DeviceStatusSleep)
	require.NoError(t, err)
	assert.Equal(t, "d2p/subdevice_status_response/d/DEV1", msg.Topic)
	assert.JSONEq(t, `{"state":"SLEEP"}`, string(msg.Payload))
}

func TestMakeLastWillMessage(t *testing.T) {
	p := NewJSONStatusProtocol()

	msg, err := p.MakeLastWillMessage([]string{"DEV1", "DEV2"})
	require.NoError(t, err)
	assert.Equal(t, "lastwill", msg.Topic)
	assert.JSONEq(t, `["DEV1","DEV2"]`, string(msg.Payload))
}

func TestMakeLastWillMessageNoDevices(t *testing.T) {
	p := NewJSONStatusProtocol()

	msg, err := p.MakeLastWillMessage(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(msg.Payload))
}

func TestStatusRequestRouting(t *testing.T) {
	p := NewJSONStatusProtocol()

	msg := model.Message{Topic: "p2d/subdevice_status_request/d/DEV1"}
	assert.True(t, p.IsDeviceStatusRequestMessage(msg))
	assert.Equal(t, "DEV1", p.DeviceKeyFromMessage(msg))
	assert.Equal(t, []string{"p2d/subdevice_status_request/d/DEV1"}, p.InboundTopicsForDevice("DEV1"))
}
