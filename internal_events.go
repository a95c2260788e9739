package tnda

// internalRecordUpdate is distributed after a device's record has been
// fetched and the device enumerated against it.
type internalRecordUpdate struct {
	device *device
	record map[string]any
}

// internalDeviceRemoval is distributed after a device has been removed from
// the gateway, receivers tidy any state they hold against its identifier.
type internalDeviceRemoval struct {
	device *device
}
