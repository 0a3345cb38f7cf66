// Copyright 2020 WolkAbout Technology s.r.o.

package model

import (
	"errors"
	"fmt"
)

// SensorTemplate describes a sensor for the device registration request.
type SensorTemplate struct {
	Name        string      `json:"name"`
	Reference   string      `json:"reference"`
	Description string      `json:"description,omitempty"`
	Unit        ReadingType `json:"unit"`
	Minimum     *float64    `json:"minimum,omitempty"`
	Maximum     *float64    `json:"maximum,omitempty"`
}

// NewSensorTemplate makes a sensor template with a predefined or custom reading type.
func NewSensorTemplate(name, reference string, unit ReadingType) SensorTemplate {
	return SensorTemplate{Name: name, Reference: reference, Unit: unit}
}

// NewGenericSensorTemplate makes a sensor template with a generic reading type
// derived from the data type.
func NewGenericSensorTemplate(name, reference string, dataType DataType) SensorTemplate {
	return SensorTemplate{Name: name, Reference: reference, Unit: GenericReadingType(dataType)}
}

// Validate checks that the template can be registered on the platform.
func (t SensorTemplate) Validate() error {
	if t.Name == "" || t.Reference == "" {
		return errors.New("sensor template requires name and reference")
	}
	if t.Unit.Name == "" {
		return fmt.Errorf("sensor template %s: reading type name must be provided", t.Reference)
	}
	return nil
}

// ActuatorTemplate describes an actuator for the device registration request.
type ActuatorTemplate struct {
	Name        string      `json:"name"`
	Reference   string      `json:"reference"`
	Description string      `json:"description,omitempty"`
	Unit        ReadingType `json:"unit"`
	Minimum     *float64    `json:"minimum,omitempty"`
	Maximum     *float64    `json:"maximum,omitempty"`
}

// NewGenericActuatorTemplate makes an actuator template with a generic reading
// type derived from the data type.
func NewGenericActuatorTemplate(name, reference string, dataType DataType) ActuatorTemplate {
	return ActuatorTemplate{Name: name, Reference: reference, Unit: GenericActuatorReadingType(dataType)}
}

// Validate checks that the template can be registered on the platform.
func (t ActuatorTemplate) Validate() error {
	if t.Name == "" || t.Reference == "" {
		return errors.New("actuator template requires name and reference")
	}
	if t.Unit.Name == "" {
		return fmt.Errorf("actuator template %s: reading type name must be provided", t.Reference)
	}
	return nil
}

// AlarmTemplate describes an alarm for the device registration request.
type AlarmTemplate struct {
	Name        string `json:"name"`
	Reference   string `json:"reference"`
	Description string `json:"description,omitempty"`
}

// Validate checks that the template can be registered on the platform.
func (t AlarmTemplate) Validate() error {
	if t.Name == "" || t.Reference == "" {
		return errors.New("alarm template requires name and reference")
	}
	return nil
}

// ConfigurationTemplate describes a configuration option for the device
// registration request. Size may be 1, 2 or 3; sizes above 1 require
// comma-separated labels for the individual fields.
type ConfigurationTemplate struct {
	Name         string   `json:"name"`
	Reference    string   `json:"reference"`
	DataType     DataType `json:"-"`
	Description  string   `json:"description,omitempty"`
	Size         int      `json:"size"`
	Labels       string   `json:"labels,omitempty"`
	DefaultValue string   `json:"defaultValue,omitempty"`
	Minimum      *float64 `json:"minimum,omitempty"`
	Maximum      *float64 `json:"maximum,omitempty"`
}

// Validate checks that the template can be registered on the platform.
func (t ConfigurationTemplate) Validate() error {
	if t.Name == "" || t.Reference == "" {
		return errors.New("configuration template requires name and reference")
	}
	if !t.DataType.Valid() {
		return fmt.Errorf("configuration template %s: invalid data type", t.Reference)
	}
	if t.Size < 1 || t.Size > 3 {
		return fmt.Errorf("configuration template %s: size can only be 1, 2 or 3", t.Reference)
	}
	if t.Size > 1 && t.Labels == "" {
		return fmt.Errorf("configuration template %s: labels must be provided for size > 1", t.Reference)
	}
	return nil
}
