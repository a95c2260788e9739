package factory

import (
	"github.com/shimmeringbee/tnda/ha"
	"github.com/shimmeringbee/tnda/ha/capabilities"
	"github.com/shimmeringbee/tnda/implcaps"
	"github.com/shimmeringbee/tnda/implcaps/cloudsync/job_control"
	"github.com/shimmeringbee/tnda/implcaps/dataset/snapshot_control"
	"github.com/shimmeringbee/tnda/implcaps/generic/value_sensor"
	"github.com/shimmeringbee/tnda/implcaps/system/power_control"
)

const GenericValueSensor = "GenericValueSensor"
const SystemPowerControl = "SystemPowerControl"
const DatasetSnapshotControl = "DatasetSnapshotControl"
const CloudSyncJobControl = "CloudSyncJobControl"

var Mapping = map[string]ha.Capability{
	GenericValueSensor:     capabilities.ValueSensorFlag,
	SystemPowerControl:     capabilities.SystemControlFlag,
	DatasetSnapshotControl: capabilities.SnapshotControlFlag,
	CloudSyncJobControl:    capabilities.CloudSyncControlFlag,
}

func Create(name string, iface implcaps.TNDAInterface) implcaps.TNDACapability {
	switch name {
	case GenericValueSensor:
		return value_sensor.NewValueSensor(iface)
	case SystemPowerControl:
		return power_control.NewSystemControl(iface)
	case DatasetSnapshotControl:
		return snapshot_control.NewSnapshotControl(iface)
	case CloudSyncJobControl:
		return job_control.NewJobControl(iface)
	default:
		return nil
	}
}
