package backend

import "errors"

// Sentinel errors for the backend package.
var (
	// ErrDeviceNotAvailable is returned when no device is registered.
	ErrDeviceNotAvailable = errors.New("backend: no device available")

	// ErrNilTarget is returned when Draw is called with a nil target.
	ErrNilTarget = errors.New("backend: nil draw target")

	// ErrInvalidTarget is returned when the target type does not belong
	// to the device.
	ErrInvalidTarget = errors.New("backend: invalid target type for device")

	// ErrInvalidDrawCall is returned when a draw call is missing resources.
	ErrInvalidDrawCall = errors.New("backend: incomplete draw call")

	// ErrDeviceClosed is returned when using a device after Close.
	ErrDeviceClosed = errors.New("backend: device is closed")
)
