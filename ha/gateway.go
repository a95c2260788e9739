package ha

import (
	"context"
)

// Gateway is the interface which a home automation host uses to interact with
// an appliance adapter. A gateway owns a set of devices and emits events as
// devices and their capabilities appear, update and disappear.
type Gateway interface {
	// ReadEvent returns the next event from the gateway, blocking until one is
	// available or the context is cancelled. Events are expected to be consumed
	// promptly, the gateway may buffer a limited number before stalling.
	ReadEvent(ctx context.Context) (any, error)

	// Capability returns the gateway level implementation of a capability, or
	// nil if the gateway does not implement it. The returned value should be
	// cast to the interface from the capabilities package.
	Capability(capability Capability) any

	// Capabilities returns the capabilities the gateway supports at gateway
	// level.
	Capabilities() []Capability

	// Self returns the device which represents the appliance itself.
	Self() Device

	// Devices returns all devices currently known to the gateway.
	Devices() []Device

	// Start begins gateway operation, restoring state and starting background
	// routines.
	Start() error

	// Stop ceases gateway operation.
	Stop() error
}
