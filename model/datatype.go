// Copyright 2020 WolkAbout Technology s.r.o.

package model

// DataType is used to create a generic reading type for a sensor or actuator.
type DataType int

const (
	DataTypeNumeric DataType = iota
	DataTypeBoolean
	DataTypeString
)

func (t DataType) String() string {
	switch t {
	case DataTypeNumeric:
		return "NUMERIC"
	case DataTypeBoolean:
		return "BOOLEAN"
	case DataTypeString:
		return "STRING"
	}
	return "UNKNOWN"
}

// Valid reports whether the data type is one of the defined values.
func (t DataType) Valid() bool {
	return t >= DataTypeNumeric && t <= DataTypeString
}
