package capabilities

import (
	"context"
	"github.com/shimmeringbee/tnda/ha"
)

// ValueSensor projects a single attribute of a device's record. The value is
// returned exactly as it appears in the record, no coercion is applied.
type ValueSensor interface {
	// Value returns the current value of the projected attribute. An error is
	// returned if the attribute is not present in the record, or if no record
	// has been seen yet.
	Value(ctx context.Context) (any, error)

	// Unit returns the unit the value is expressed in, or an empty string if
	// no unit is configured. A unit configured with the dynamic prefix is
	// resolved against the record at call time.
	Unit(ctx context.Context) (string, error)
}

// ValueSensorUpdate is emitted when the projected value of a sensor changes.
type ValueSensorUpdate struct {
	Device ha.Device
	Value  any
	Unit   string
}
