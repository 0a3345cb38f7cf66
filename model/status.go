// Copyright 2020 WolkAbout Technology s.r.o.

package model

// DeviceStatus is the connectivity state of a device, as defined on the platform.
type DeviceStatus string

const (
	// DeviceStatusConnected means the device is currently connected.
	DeviceStatusConnected DeviceStatus = "CONNECTED"
	// DeviceStatusOffline means the device is currently unreachable.
	DeviceStatusOffline DeviceStatus = "OFFLINE"
	// DeviceStatusSleep means the device is in sleep mode between data dispatches.
	DeviceStatusSleep DeviceStatus = "SLEEP"
	// DeviceStatusService means the device is in service mode.
	DeviceStatusService DeviceStatus = "SERVICE"
)

// Valid reports whether the status is one of the platform-defined values.
func (s DeviceStatus) Valid() bool {
	switch s {
	case DeviceStatusConnected, DeviceStatusOffline, DeviceStatusSleep, DeviceStatusService:
		return true
	}
	return false
}

// ActuatorState is the state of an actuator, as defined on the platform.
type ActuatorState string

const (
	ActuatorStateReady ActuatorState = "READY"
	ActuatorStateBusy  ActuatorState = "BUSY"
	ActuatorStateError ActuatorState = "ERROR"
)

// ActuatorStatus is the current state and value of an actuator on a device.
type ActuatorStatus struct {
	Reference string
	State     ActuatorState
	Value     interface{}
}
