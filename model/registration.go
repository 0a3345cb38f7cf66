// Copyright 2020 WolkAbout Technology s.r.o.

package model

// RegistrationResult is the outcome of a device registration request,
// as reported by the platform.
type RegistrationResult string

const (
	RegistrationOK                          RegistrationResult = "OK"
	RegistrationErrorGatewayNotFound        RegistrationResult = "ERROR_GATEWAY_NOT_FOUND"
	RegistrationErrorNotAGateway            RegistrationResult = "ERROR_NOT_A_GATEWAY"
	RegistrationErrorKeyConflict            RegistrationResult = "ERROR_KEY_CONFLICT"
	RegistrationErrorMaximumDevicesExceeded RegistrationResult = "ERROR_MAXIMUM_NUMBER_OF_DEVICES_EXCEEDED"
	RegistrationErrorValidationError        RegistrationResult = "ERROR_VALIDATION_ERROR"
	RegistrationErrorInvalidDTO             RegistrationResult = "ERROR_INVALID_DTO"
	RegistrationErrorKeyMissing             RegistrationResult = "ERROR_KEY_MISSING"
	RegistrationErrorSubdeviceMgmtForbidden RegistrationResult = "ERROR_SUBDEVICE_MANAGEMENT_FORBIDDEN"
	RegistrationErrorUnknown                RegistrationResult = "ERROR_UNKNOWN"
)

// ParseRegistrationResult maps a platform result string onto the known results,
// falling back to RegistrationErrorUnknown.
func ParseRegistrationResult(result string) RegistrationResult {
	switch r := RegistrationResult(result); r {
	case RegistrationOK,
		RegistrationErrorGatewayNotFound,
		RegistrationErrorNotAGateway,
		RegistrationErrorKeyConflict,
		RegistrationErrorMaximumDevicesExceeded,
		RegistrationErrorValidationError,
		RegistrationErrorInvalidDTO,
		RegistrationErrorKeyMissing,
		RegistrationErrorSubdeviceMgmtForbidden:
		return r
	}
	return RegistrationErrorUnknown
}

// DeviceRegistrationRequest asks the platform to register a device under this
// module's gateway.
type DeviceRegistrationRequest struct {
	Name           string
	Key            string
	Template       DeviceTemplate
	DefaultBinding bool
}

// NewDeviceRegistrationRequest makes a registration request for a device with
// default binding enabled.
func NewDeviceRegistrationRequest(device Device) DeviceRegistrationRequest {
	return DeviceRegistrationRequest{
		Name:           device.Name,
		Key:            device.Key,
		Template:       device.Template,
		DefaultBinding: true,
	}
}

// DeviceRegistrationResponse is the platform's answer to a registration request.
type DeviceRegistrationResponse struct {
	Key         string
	Result      RegistrationResult
	Description string
}

// Successful reports whether the registration went through.
func (r DeviceRegistrationResponse) Successful() bool {
	return r.Result == RegistrationOK
}
