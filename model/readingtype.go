// Copyright 2020 WolkAbout Technology s.r.o.

package model

// ReadingType couples a reading type name with its measurement unit symbol.
// Use one of the predefined name/unit constants for platform-defined reading
// types, or plain strings for custom ones.
type ReadingType struct {
	Name string `json:"readingTypeName"`
	Unit string `json:"symbol"`
}

// Predefined reading type names.
const (
	ReadingTypeNameGeneric        = "GENERIC"
	ReadingTypeNameGenericBoolean = "GENERIC_BOOLEAN"
	ReadingTypeNameGenericText    = "GENERIC_TEXT"
	ReadingTypeNameTemperature    = "TEMPERATURE"
	ReadingTypeNamePressure       = "PRESSURE"
	ReadingTypeNameHumidity       = "HUMIDITY"
	ReadingTypeNameBatteryVoltage = "BATTERY_VOLTAGE"
	ReadingTypeNameMovement       = "MOVEMENT"
	ReadingTypeNameLight          = "LIGHT"
	ReadingTypeNameAccelerometer  = "ACCELEROMETER"
	ReadingTypeNameGyroscope      = "GYROSCOPE"
	ReadingTypeNameLocation       = "LOCATION"
	ReadingTypeNameHeartRate      = "HEART_RATE"
	ReadingTypeNameCount          = "COUNT"
	ReadingTypeNameSwitch         = "SWITCH(ACTUATOR)"
)

// Predefined measurement unit symbols.
const (
	UnitNumeric             = "NUMERIC"
	UnitBoolean             = "BOOLEAN"
	UnitText                = "TEXT"
	UnitKelvin              = "K"
	UnitCelsius             = "℃"
	UnitFahrenheit          = "°F"
	UnitPascal              = "Pa"
	UnitMillibar            = "mb"
	UnitPercent             = "%"
	UnitVolt                = "V"
	UnitLux                 = "lx"
	UnitMetresPerSecondSq   = "m/s²"
	UnitG                   = "g"
	UnitDegreeAngle         = "°"
	UnitBeatsPerMinute      = "bpm"
	UnitCount               = "count"
	UnitSteps               = "#"
	UnitMillimetre          = "mm"
	UnitMetre               = "m"
	UnitSecond              = "s"
	UnitMillisecond         = "ms"
	UnitDecibel             = "dB"
	UnitWatt                = "W"
	UnitAmpere              = "A"
	UnitCoulomb             = "C"
	UnitHertz               = "Hz"
	UnitBit                 = "bit"
	UnitKilogram            = "kg"
	UnitMetresPerSecond     = "m/s"
	UnitLitresPerSecond     = "l/s"
	UnitMolePerCubicMetre   = "mol/m³"
	UnitCandelaPerSquareMtr = "cd/m²"
)

// GenericReadingType returns the generic sensor reading type for a data type.
func GenericReadingType(t DataType) ReadingType {
	switch t {
	case DataTypeBoolean:
		return ReadingType{Name: ReadingTypeNameGenericBoolean, Unit: UnitBoolean}
	case DataTypeString:
		return ReadingType{Name: ReadingTypeNameGenericText, Unit: UnitText}
	default:
		return ReadingType{Name: ReadingTypeNameGeneric, Unit: UnitNumeric}
	}
}

// GenericActuatorReadingType returns the generic actuator reading type for a data type.
func GenericActuatorReadingType(t DataType) ReadingType {
	switch t {
	case DataTypeBoolean:
		return ReadingType{Name: "SWITCH(ACTUATOR)", Unit: ""}
	case DataTypeString:
		return ReadingType{Name: "STRING(ACTUATOR)", Unit: ""}
	default:
		return ReadingType{Name: "COUNT(ACTUATOR)", Unit: UnitCount}
	}
}
