package capabilities

import "github.com/shimmeringbee/tnda/ha"

const (
	// ValueSensorFlag marks a device which projects one attribute of its
	// record as a readable value.
	ValueSensorFlag ha.Capability = iota
	// SystemControlFlag marks a device offering appliance restart and
	// shutdown.
	SystemControlFlag
	// SnapshotControlFlag marks a dataset device offering snapshot creation.
	SnapshotControlFlag
	// CloudSyncControlFlag marks a cloud sync job device offering start and
	// stop.
	CloudSyncControlFlag
	// RefreshFlag marks a gateway which can refresh its cached state on
	// demand.
	RefreshFlag
)

// StandardNames maps capability flags to their canonical names, used for
// persistence keys and event reporting.
var StandardNames = map[ha.Capability]string{
	ValueSensorFlag:      "ValueSensor",
	SystemControlFlag:    "SystemControl",
	SnapshotControlFlag:  "SnapshotControl",
	CloudSyncControlFlag: "CloudSyncControl",
	RefreshFlag:          "Refresh",
}
