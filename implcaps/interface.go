package implcaps

import (
	"context"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/persistence"
	"github.com/shimmeringbee/tnda/attribute"
	"github.com/shimmeringbee/tnda/ha"
	"github.com/shimmeringbee/tnda/middleware"
)

const (
	// Enumeration data keys the gateway provides to every capability, rule
	// supplied settings appear alongside them.
	DataKeyRecord   = "Record"
	DataKeyCategory = "Category"

	// Rule supplied settings understood by the generic value sensor.
	DataKeyAttribute = "Attribute"
	DataKeyUnit      = "Unit"

	// Common persistence keys for capability state timestamps.
	LastUpdatedKey = "LastUpdated"
	LastChangedKey = "LastChanged"
)

type DetachType int

const (
	// DeviceRemoved is used when the object backing a device is no longer
	// present on the appliance, this has already occurred, and no remote tidy
	// up is possible.
	DeviceRemoved DetachType = iota
	// NoLongerEnumerated is used when enumeration of the record no longer
	// results in this capability existing, or it's being replaced by a
	// different implementation. Persistent configuration should be removed.
	NoLongerEnumerated
	// FailedAttach is used when an Attach failed.
	FailedAttach
)

type TNDACapability interface {
	// BasicCapability functions should also be present.
	ha.BasicCapability
	// Init is used upon creation of the capability to provide the device and
	// persistence.
	Init(ha.Device, persistence.Section)
	// Load is used upon load of the capability from persistence at start up.
	Load(context.Context) (bool, error)
	// Enumerate is used to enumerate or re-enumerate a device, with the
	// settings produced by the rules engine and the device's current record.
	// It should return true if everything is successful and the capability
	// should be attached, or false if it should not. A return value of true
	// and an error is possible, and the capability should attach.
	Enumerate(context.Context, map[string]any) (bool, error)
	// Detach is called when a capability is removed from a device. This will
	// be called after an Enumerate that returned false, even if it was a new
	// enumeration.
	Detach(context.Context, DetachType) error
	// ImplName returns the implementation name of the capability.
	ImplName() string
}

type TNDAInterface interface {
	// NewAttributeMonitor creates a new attribute monitor to be used to
	// project a field of a device's record.
	NewAttributeMonitor() attribute.Monitor
	// SendEvent allows a capability to publish event messages.
	SendEvent(any)
	// Requester returns the middleware requester capabilities use for remote
	// calls. Calls are dispatched onto the gateway's bounded worker pool and
	// awaited, blocking network activity never runs on the caller's routine.
	Requester() middleware.Requester
	// Logger returns the gateway's logger.
	Logger() logwrap.Logger
}
