// Copyright 2020 WolkAbout Technology s.r.o.

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSensorTemplateValidate(t *testing.T) {
	assert.NoError(t, NewGenericSensorTemplate("Temperature", "T", DataTypeNumeric).Validate())
	assert.Error(t, SensorTemplate{Reference: "T"}.Validate())
	assert.Error(t, SensorTemplate{Name: "Temperature", Reference: "T"}.Validate())
}

func TestConfigurationTemplateValidate(t *testing.T) {
	valid := ConfigurationTemplate{Name: "Interval", Reference: "I", DataType: DataTypeNumeric, Size: 1}
	assert.NoError(t, valid.Validate())

	oversized := valid
	oversized.Size = 4
	assert.Error(t, oversized.Validate())

	unlabeled := valid
	unlabeled.Size = 2
	assert.Error(t, unlabeled.Validate())

	labeled := unlabeled
	labeled.Labels = "low,high"
	assert.NoError(t, labeled.Validate())

	untyped := valid
	untyped.DataType = DataType(42)
	assert.Error(t, untyped.Validate())
}

func TestDeviceValidate(t *testing.T) {
	device := Device{
		Name: "Thermometer",
		Key:  "DEV1",
		Template: DeviceTemplate{
			Sensors: []SensorTemplate{NewGenericSensorTemplate("Temperature", "T", DataTypeNumeric)},
		},
	}
	assert.NoError(t, device.Validate())

	assert.Error(t, Device{Name: "Thermometer"}.Validate())

	broken := device
	broken.Template.Alarms = []AlarmTemplate{{Reference: "HH"}}
	assert.Error(t, broken.Validate())
}

func TestDeviceCapabilities(t *testing.T) {
	device := Device{
		Name: "Controller",
		Key:  "DEV2",
		Template: DeviceTemplate{
			Actuators: []ActuatorTemplate{
				NewGenericActuatorTemplate("Switch", "SW", DataTypeBoolean),
				NewGenericActuatorTemplate("Dimmer", "DIM", DataTypeNumeric),
			},
			FirmwareUpdateType: "DFU",
		},
	}

	assert.True(t, device.HasActuators())
	assert.False(t, device.HasConfigurations())
	assert.True(t, device.SupportsFirmwareUpdate())
	assert.Equal(t, []string{"SW", "DIM"}, device.ActuatorReferences())
}

func TestGenericReadingTypes(t *testing.T) {
	assert.Equal(t, ReadingType{Name: "GENERIC", Unit: "NUMERIC"}, GenericReadingType(DataTypeNumeric))
	assert.Equal(t, ReadingType{Name: "GENERIC_BOOLEAN", Unit: "BOOLEAN"}, GenericReadingType(DataTypeBoolean))
	assert.Equal(t, ReadingType{Name: "SWITCH(ACTUATOR)"}, GenericActuatorReadingType(DataTypeBoolean))
	assert.Equal(t, ReadingType{Name: "COUNT(ACTUATOR)", Unit: "count"}, GenericActuatorReadingType(DataTypeNumeric))
}
