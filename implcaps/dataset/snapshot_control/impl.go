package snapshot_control

import (
	"context"
	"fmt"
	"github.com/shimmeringbee/persistence"
	"github.com/shimmeringbee/tnda/ha"
	"github.com/shimmeringbee/tnda/ha/capabilities"
	"github.com/shimmeringbee/tnda/implcaps"
	"github.com/shimmeringbee/tnda/middleware"
	"time"
)

var _ capabilities.SnapshotControl = (*Implementation)(nil)
var _ implcaps.TNDACapability = (*Implementation)(nil)

const DatasetNameKey = "DatasetName"

// Snapshot names follow the scheme the TrueNAS UI uses for ad-hoc
// snapshots, a custom- prefix followed by a microsecond timestamp.
const (
	SnapshotNamePrefix = "custom-"
	SnapshotNameLayout = "2006-01-02_15:04:05.000000"
)

func NewSnapshotControl(zi implcaps.TNDAInterface) *Implementation {
	return &Implementation{zi: zi, now: time.Now}
}

type Implementation struct {
	s  persistence.Section
	d  ha.Device
	zi implcaps.TNDAInterface

	datasetName string
	now         func() time.Time
}

func (i *Implementation) Capability() ha.Capability {
	return capabilities.SnapshotControlFlag
}

func (i *Implementation) Name() string {
	return capabilities.StandardNames[capabilities.SnapshotControlFlag]
}

func (i *Implementation) Init(d ha.Device, s persistence.Section) {
	i.d = d
	i.s = s
}

func (i *Implementation) Load(_ context.Context) (bool, error) {
	v, ok := i.s.String(DatasetNameKey)
	if !ok {
		return false, fmt.Errorf("snapshot control missing config parameter: %s", DatasetNameKey)
	}

	i.datasetName = v

	return true, nil
}

func (i *Implementation) Enumerate(_ context.Context, m map[string]any) (bool, error) {
	record := implcaps.Get(m, implcaps.DataKeyRecord, map[string]any(nil))

	name, ok := record["name"].(string)
	if !ok || name == "" {
		return false, fmt.Errorf("snapshot control missing record field: name")
	}

	i.datasetName = name
	i.s.Set(DatasetNameKey, name)

	return true, nil
}

func (i *Implementation) Detach(_ context.Context, _ implcaps.DetachType) error {
	return nil
}

func (i *Implementation) ImplName() string {
	return "DatasetSnapshotControl"
}

func (i *Implementation) Snapshot(ctx context.Context) error {
	payload := map[string]any{
		"dataset": i.datasetName,
		"name":    SnapshotNamePrefix + i.now().Format(SnapshotNameLayout),
	}

	res, err := i.zi.Requester().Call(ctx, middleware.PoolSnapshotCreate, payload)
	if err != nil {
		return err
	}

	// Older middleware versions reject pool.snapshot.create with an in-band
	// error rather than a transport failure, retry those on the legacy call.
	if m, ok := res.(map[string]any); ok {
		if _, present := m["error"]; present {
			_, err = i.zi.Requester().Call(ctx, middleware.ZFSSnapshotCreate, payload)
			return err
		}
	}

	return nil
}
