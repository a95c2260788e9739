package ha

// Identifier uniquely identifies a device within a gateway.
type Identifier interface {
	String() string
}

// Device is a single addressable object surfaced by a gateway, such as the
// appliance system itself, a dataset or a replication job.
type Device interface {
	// Gateway returns the gateway which owns this device.
	Gateway() Gateway

	// Identifier returns the unique identifier of this device.
	Identifier() Identifier

	// Capabilities returns the capability flags attached to this device.
	Capabilities() []Capability

	// Capability returns the device level implementation of a capability, or
	// nil if the device does not have it attached.
	Capability(capability Capability) BasicCapability

	// HasCapability returns true if the capability is attached to the device.
	HasCapability(capability Capability) bool
}
