package capabilities

import "github.com/shimmeringbee/tnda/ha"

// EnumerateDeviceStart is emitted when the gateway begins enumerating a
// device's record to determine its capabilities.
type EnumerateDeviceStart struct {
	Device ha.Device
}

// EnumerateDeviceSuccess is emitted when enumeration completes and the
// device's capabilities reflect its record.
type EnumerateDeviceSuccess struct {
	Device ha.Device
}

// EnumerateDeviceFailure is emitted when enumeration could not complete.
type EnumerateDeviceFailure struct {
	Device ha.Device
	Error  error
}
