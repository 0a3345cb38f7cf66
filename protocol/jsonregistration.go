// Copyright 2020 WolkAbout Technology s.r.o.

package protocol

import (
	"encoding/json"
	"strings"

	"github.com/wolkabout/wolk-gateway-module-go/model"
)

// Registration topic roots. Requests are sent on the module-wide request
// topic, responses arrive per device key.
const (
	TopicRegistrationRequest  = "d2p/register_subdevice_request/"
	TopicRegistrationResponse = "p2d/register_subdevice_response/"
)

// JSONRegistrationProtocol serializes device registration requests and parses
// their responses.
type JSONRegistrationProtocol struct{}

var _ RegistrationProtocol = (*JSONRegistrationProtocol)(nil)

// NewJSONRegistrationProtocol returns a registration protocol speaking the
// gateway's JSON protocol.
func NewJSONRegistrationProtocol() *JSONRegistrationProtocol {
	return &JSONRegistrationProtocol{}
}

func (p *JSONRegistrationProtocol) InboundTopics() []string {
	return []string{TopicRegistrationResponse + DevicePathPrefix + ChannelWildcard}
}

func (p *JSONRegistrationProtocol) InboundTopicsForDevice(deviceKey string) []string {
	return []string{TopicRegistrationResponse + DevicePathPrefix + deviceKey}
}

func (p *JSONRegistrationProtocol) IsRegistrationResponseMessage(msg model.Message) bool {
	return strings.HasPrefix(msg.Topic, TopicRegistrationResponse)
}

// registrationRequest is the request DTO as the platform expects it.
type registrationRequest struct {
	Name                     string                   `json:"name"`
	DeviceKey                string                   `json:"deviceKey"`
	DefaultBinding           bool                     `json:"defaultBinding"`
	TypeParameters           map[string]interface{}   `json:"typeParameters"`
	ConnectivityParameters   map[string]interface{}   `json:"connectivityParameters"`
	Sensors                  []model.SensorTemplate   `json:"sensors"`
	Actuators                []model.ActuatorTemplate `json:"actuators"`
	Alarms                   []model.AlarmTemplate    `json:"alarms"`
	Configurations           []configurationDTO       `json:"configurations"`
	FirmwareUpdateParameters map[string]interface{}   `json:"firmwareUpdateParameters"`
}

// configurationDTO carries the data type by name, which the template itself
// does not marshal.
type configurationDTO struct {
	model.ConfigurationTemplate
	DataType string `json:"dataType"`
}

// MakeRegistrationMessage makes a message from a device registration request.
func (p *JSONRegistrationProtocol) MakeRegistrationMessage(request model.DeviceRegistrationRequest) (model.Message, error) {
	t := request.Template

	dto := registrationRequest{
		Name:                     request.Name,
		DeviceKey:                request.Key,
		DefaultBinding:           request.DefaultBinding,
		TypeParameters:           t.TypeParameters,
		ConnectivityParameters:   t.ConnectivityParameters,
		Sensors:                  t.Sensors,
		Actuators:                t.Actuators,
		Alarms:                   t.Alarms,
		FirmwareUpdateParameters: t.FirmwareUpdateParameters,
	}
	if dto.TypeParameters == nil {
		dto.TypeParameters = map[string]interface{}{}
	}
	if dto.ConnectivityParameters == nil {
		dto.ConnectivityParameters = map[string]interface{}{}
	}
	if dto.Sensors == nil {
		dto.Sensors = []model.SensorTemplate{}
	}
	if dto.Actuators == nil {
		dto.Actuators = []model.ActuatorTemplate{}
	}
	if dto.Alarms == nil {
		dto.Alarms = []model.AlarmTemplate{}
	}

	dto.Configurations = make([]configurationDTO, 0, len(t.Configurations))
	for _, c := range t.Configurations {
		dto.Configurations = append(dto.Configurations, configurationDTO{
			ConfigurationTemplate: c,
			DataType:              c.DataType.String(),
		})
	}

	if dto.FirmwareUpdateParameters == nil {
		dto.FirmwareUpdateParameters = map[string]interface{}{}
	}
	if _, set := dto.FirmwareUpdateParameters["supportsFirmwareUpdate"]; !set {
		dto.FirmwareUpdateParameters["supportsFirmwareUpdate"] = t.SupportsFirmwareUpdate()
	}

	payload, err := json.Marshal(dto)
	if err != nil {
		return model.Message{}, logger.Errorf("Error serializing registration request for %s: %s", request.Key, err)
	}

	logger.Debugf("Registration request for %s: %s", request.Key, payload)
	return model.Message{Topic: TopicRegistrationRequest, Payload: payload}, nil
}

// ParseRegistrationResponse makes a device registration response from an
// inbound message. Unknown results are reported as ERROR_UNKNOWN.
func (p *JSONRegistrationProtocol) ParseRegistrationResponse(msg model.Message) (model.DeviceRegistrationResponse, error) {
	var response struct {
		Result      string `json:"result"`
		Description string `json:"description"`
		Payload     struct {
			DeviceKey string `json:"deviceKey"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(msg.Payload, &response); err != nil {
		return model.DeviceRegistrationResponse{}, logger.Errorf("Error parsing registration response %s: %s", msg.Topic, err)
	}

	return model.DeviceRegistrationResponse{
		Key:         response.Payload.DeviceKey,
		Result:      model.ParseRegistrationResult(response.Result),
		Description: response.Description,
	}, nil
}

func (p *JSONRegistrationProtocol) DeviceKeyFromMessage(msg model.Message) string {
	return deviceKeyFromTopic(msg.Topic)
}

func (p *JSONRegistrationProtocol) String() string { return "JSONRegistrationProtocol" }
