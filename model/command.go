// Copyright 2020 WolkAbout Technology s.r.o.

package model

// CommandType distinguishes get from set commands sent by the platform.
type CommandType int

const (
	// CommandGet requests the current value.
	CommandGet CommandType = iota
	// CommandSet requests a value change.
	CommandSet
)

func (t CommandType) String() string {
	switch t {
	case CommandGet:
		return "GET"
	case CommandSet:
		return "SET"
	}
	return "UNKNOWN"
}

// ActuatorCommand is a command for a single actuator reference.
// Value is nil for get commands.
type ActuatorCommand struct {
	Reference string
	Type      CommandType
	Value     interface{}
}

// Configuration holds the configuration option values of a device, keyed by reference.
// Values are scalars (bool, int64, float64, string) or homogeneous slices of
// int64, float64 or string for multi-value options.
type Configuration map[string]interface{}

// ConfigurationCommand is a command for the configuration options of a device.
// Values is nil for get commands.
type ConfigurationCommand struct {
	Type   CommandType
	Values Configuration
}
