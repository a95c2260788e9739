package ha

// Capability is a flag identifying one unit of functionality a device or
// gateway may offer. The known flags and their consumer interfaces are in the
// capabilities package.
type Capability uint8

// BasicCapability is the minimal interface all capability implementations
// provide, richer interfaces are defined per capability in the capabilities
// package.
type BasicCapability interface {
	// Capability returns the flag this implementation provides.
	Capability() Capability

	// Name returns the standard name of the capability.
	Name() string
}
