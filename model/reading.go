// Copyright 2020 WolkAbout Technology s.r.o.

package model

// SensorReading is a single measurement of a sensor on a device.
// Value is a scalar (bool, number or string) or a slice for multi-value sensors.
// Timestamp is Unix milliseconds; zero means the reading is treated as live
// and receives a timestamp upon reception.
type SensorReading struct {
	Reference string
	Value     interface{}
	Timestamp int64
}

// Alarm is the state of an alarm on a device at a point in time.
// Timestamp is Unix milliseconds, zero for live events.
type Alarm struct {
	Reference string
	Active    bool
	Timestamp int64
}
