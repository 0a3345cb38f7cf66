// Copyright 2020 WolkAbout Technology s.r.o.

package model

import "errors"

// DeviceTemplate contains everything required to register a device on the platform.
type DeviceTemplate struct {
	Sensors        []SensorTemplate
	Actuators      []ActuatorTemplate
	Alarms         []AlarmTemplate
	Configurations []ConfigurationTemplate
	// FirmwareUpdateType names the firmware installation mechanism,
	// empty when the device can not be updated.
	FirmwareUpdateType       string
	TypeParameters           map[string]interface{}
	ConnectivityParameters   map[string]interface{}
	FirmwareUpdateParameters map[string]interface{}
}

// SupportsFirmwareUpdate reports whether devices made from this template can
// receive firmware updates.
func (t DeviceTemplate) SupportsFirmwareUpdate() bool {
	return t.FirmwareUpdateType != ""
}

// Validate checks all member templates.
func (t DeviceTemplate) Validate() error {
	for _, s := range t.Sensors {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	for _, a := range t.Actuators {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	for _, a := range t.Alarms {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	for _, c := range t.Configurations {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Device is a single device handled by the gateway module, identified on the
// platform by its key.
type Device struct {
	Name     string
	Key      string
	Template DeviceTemplate
}

// Validate checks that the device can be registered.
func (d Device) Validate() error {
	if d.Name == "" || d.Key == "" {
		return errors.New("device requires name and key")
	}
	return d.Template.Validate()
}

// ActuatorReferences returns the references of all actuators on the device.
func (d Device) ActuatorReferences() []string {
	refs := make([]string, 0, len(d.Template.Actuators))
	for _, a := range d.Template.Actuators {
		refs = append(refs, a.Reference)
	}
	return refs
}

// HasActuators reports whether the device has any actuators.
func (d Device) HasActuators() bool { return len(d.Template.Actuators) > 0 }

// HasConfigurations reports whether the device has any configuration options.
func (d Device) HasConfigurations() bool { return len(d.Template.Configurations) > 0 }

// SupportsFirmwareUpdate reports whether the device can receive firmware updates.
func (d Device) SupportsFirmwareUpdate() bool { return d.Template.SupportsFirmwareUpdate() }
