// Copyright 2020 WolkAbout Technology s.r.o.

package protocol

import (
	"encoding/json"
	"strings"

	"github.com/wolkabout/wolk-gateway-module-go/model"
)

// Data API topic roots.
const (
	TopicSensorReading       = "d2p/sensor_reading/"
	TopicAlarm               = "d2p/events/"
	TopicActuatorSet         = "p2d/actuator_set/"
	TopicActuatorGet         = "p2d/actuator_get/"
	TopicActuatorStatus      = "d2p/actuator_status/"
	TopicConfigurationSet    = "p2d/configuration_set/"
	TopicConfigurationGet    = "p2d/configuration_get/"
	TopicConfigurationStatus = "d2p/configuration_get/"
)

// JSONDataProtocol serializes device data as the gateway's JSON protocol.
type JSONDataProtocol struct{}

var _ DataProtocol = (*JSONDataProtocol)(nil)

// NewJSONDataProtocol returns a data protocol speaking the gateway's JSON protocol.
func NewJSONDataProtocol() *JSONDataProtocol {
	return &JSONDataProtocol{}
}

func (p *JSONDataProtocol) InboundTopicsForDevice(deviceKey string) []string {
	return []string{
		TopicActuatorSet + DevicePathPrefix + deviceKey + "/" + ReferencePathPrefix + ChannelWildcard,
		TopicActuatorGet + DevicePathPrefix + deviceKey + "/" + ReferencePathPrefix + ChannelWildcard,
		TopicConfigurationSet + DevicePathPrefix + deviceKey,
		TopicConfigurationGet + DevicePathPrefix + deviceKey,
	}
}

func (p *JSONDataProtocol) IsActuatorGetMessage(msg model.Message) bool {
	return strings.HasPrefix(msg.Topic, TopicActuatorGet)
}

func (p *JSONDataProtocol) IsActuatorSetMessage(msg model.Message) bool {
	return strings.HasPrefix(msg.Topic, TopicActuatorSet)
}

func (p *JSONDataProtocol) IsConfigurationGetMessage(msg model.Message) bool {
	return strings.HasPrefix(msg.Topic, TopicConfigurationGet)
}

func (p *JSONDataProtocol) IsConfigurationSetMessage(msg model.Message) bool {
	return strings.HasPrefix(msg.Topic, TopicConfigurationSet)
}

// ParseActuatorCommand makes an actuator command from an inbound message.
// The actuator reference is the last topic segment.
func (p *JSONDataProtocol) ParseActuatorCommand(msg model.Message) (model.ActuatorCommand, error) {
	reference := deviceKeyFromTopic(msg.Topic)

	switch {
	case p.IsActuatorSetMessage(msg):
		var payload struct {
			Value interface{} `json:"value"`
		}
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return model.ActuatorCommand{}, logger.Errorf("Error parsing actuator command %s: %s", msg.Topic, err)
		}
		return model.ActuatorCommand{Reference: reference, Type: model.CommandSet, Value: payload.Value}, nil

	case p.IsActuatorGetMessage(msg):
		return model.ActuatorCommand{Reference: reference, Type: model.CommandGet}, nil
	}

	return model.ActuatorCommand{}, logger.Errorf("Message %s is not an actuator command", msg.Topic)
}

// ParseConfigurationCommand makes a configuration command from an inbound message.
func (p *JSONDataProtocol) ParseConfigurationCommand(msg model.Message) (model.ConfigurationCommand, error) {
	switch {
	case p.IsConfigurationSetMessage(msg):
		var payload struct {
			Values map[string]interface{} `json:"values"`
		}
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return model.ConfigurationCommand{}, logger.Errorf("Error parsing configuration command %s: %s", msg.Topic, err)
		}
		values := make(model.Configuration, len(payload.Values))
		for reference, value := range payload.Values {
			values[reference] = parseConfigurationValue(value)
		}
		return model.ConfigurationCommand{Type: model.CommandSet, Values: values}, nil

	case p.IsConfigurationGetMessage(msg):
		return model.ConfigurationCommand{Type: model.CommandGet}, nil
	}

	return model.ConfigurationCommand{}, logger.Errorf("Message %s is not a configuration command", msg.Topic)
}

// MakeSensorReadingMessage makes a message from a sensor reading.
// Readings with a zero timestamp are treated as live by the platform.
func (p *JSONDataProtocol) MakeSensorReadingMessage(deviceKey string, reading model.SensorReading) (model.Message, error) {
	payload, err := json.Marshal(struct {
		Data string `json:"data"`
		UTC  int64  `json:"utc,omitempty"`
	}{
		Data: valueToString(reading.Value),
		UTC:  reading.Timestamp,
	})
	if err != nil {
		return model.Message{}, err
	}

	topic := TopicSensorReading + DevicePathPrefix + deviceKey + "/" + ReferencePathPrefix + reading.Reference
	return model.Message{Topic: topic, Payload: payload}, nil
}

// MakeAlarmMessage makes a message from an alarm event.
func (p *JSONDataProtocol) MakeAlarmMessage(deviceKey string, alarm model.Alarm) (model.Message, error) {
	payload, err := json.Marshal(struct {
		Data bool  `json:"data"`
		UTC  int64 `json:"utc,omitempty"`
	}{
		Data: alarm.Active,
		UTC:  alarm.Timestamp,
	})
	if err != nil {
		return model.Message{}, err
	}

	topic := TopicAlarm + DevicePathPrefix + deviceKey + "/" + ReferencePathPrefix + alarm.Reference
	return model.Message{Topic: topic, Payload: payload}, nil
}

// MakeActuatorStatusMessage makes a message from an actuator status.
func (p *JSONDataProtocol) MakeActuatorStatusMessage(deviceKey string, status model.ActuatorStatus) (model.Message, error) {
	payload, err := json.Marshal(struct {
		Status model.ActuatorState `json:"status"`
		Value  string              `json:"value"`
	}{
		Status: status.State,
		Value:  valueToString(status.Value),
	})
	if err != nil {
		return model.Message{}, err
	}

	topic := TopicActuatorStatus + DevicePathPrefix + deviceKey + "/" + ReferencePathPrefix + status.Reference
	return model.Message{Topic: topic, Payload: payload}, nil
}

// MakeConfigurationMessage makes a message with the current configuration
// option values of a device. All values are sent as strings.
func (p *JSONDataProtocol) MakeConfigurationMessage(deviceKey string, configuration model.Configuration) (model.Message, error) {
	values := make(map[string]string, len(configuration))
	for reference, value := range configuration {
		values[reference] = configurationValueToString(value)
	}

	payload, err := json.Marshal(struct {
		Values map[string]string `json:"values"`
	}{Values: values})
	if err != nil {
		return model.Message{}, err
	}

	return model.Message{
		Topic:   TopicConfigurationStatus + DevicePathPrefix + deviceKey,
		Payload: payload,
	}, nil
}

func (p *JSONDataProtocol) DeviceKeyFromMessage(msg model.Message) string {
	// reference-scoped topics carry .../d/<key>/r/<reference>
	if i := strings.Index(msg.Topic, "/"+DevicePathPrefix); i >= 0 {
		rest := msg.Topic[i+len(DevicePathPrefix)+1:]
		if j := strings.Index(rest, "/"); j >= 0 {
			return rest[:j]
		}
		return rest
	}
	return ""
}

func (p *JSONDataProtocol) String() string { return "JSONDataProtocol" }
