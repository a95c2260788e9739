package ha

// DeviceAdded is emitted when a new device becomes known to the gateway.
type DeviceAdded struct {
	Device Device
}

// DeviceRemoved is emitted when a device is removed from the gateway.
type DeviceRemoved struct {
	Device Device
}

// CapabilityAdded is emitted when a capability is attached to a device.
type CapabilityAdded struct {
	Device     Device
	Capability Capability
}

// CapabilityRemoved is emitted when a capability is detached from a device.
type CapabilityRemoved struct {
	Device     Device
	Capability Capability
}
