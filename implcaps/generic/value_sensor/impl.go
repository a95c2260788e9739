package value_sensor

import (
	"context"
	"github.com/shimmeringbee/persistence"
	"github.com/shimmeringbee/persistence/converter"
	"github.com/shimmeringbee/tnda/attribute"
	"github.com/shimmeringbee/tnda/ha"
	"github.com/shimmeringbee/tnda/ha/capabilities"
	"github.com/shimmeringbee/tnda/implcaps"
	"reflect"
	"sync"
	"time"
)

var _ capabilities.ValueSensor = (*Implementation)(nil)
var _ capabilities.WithLastUpdateTime = (*Implementation)(nil)
var _ capabilities.WithLastChangeTime = (*Implementation)(nil)
var _ implcaps.TNDACapability = (*Implementation)(nil)

func NewValueSensor(zi implcaps.TNDAInterface) *Implementation {
	return &Implementation{zi: zi, m: &sync.RWMutex{}}
}

type Implementation struct {
	s  persistence.Section
	d  ha.Device
	am attribute.Monitor
	zi implcaps.TNDAInterface

	m         *sync.RWMutex
	lastValue any
}

func (i *Implementation) Capability() ha.Capability {
	return capabilities.ValueSensorFlag
}

func (i *Implementation) Name() string {
	return capabilities.StandardNames[capabilities.ValueSensorFlag]
}

func (i *Implementation) Init(d ha.Device, s persistence.Section) {
	i.d = d
	i.s = s

	i.am = i.zi.NewAttributeMonitor()
	i.am.Init(s.Section("AttributeMonitor", "Value"), d, i.update)
}

func (i *Implementation) Load(ctx context.Context) (bool, error) {
	if err := i.am.Load(ctx); err != nil {
		return false, err
	} else {
		return true, nil
	}
}

func (i *Implementation) Enumerate(ctx context.Context, m map[string]any) (bool, error) {
	attributeName := implcaps.Get(m, implcaps.DataKeyAttribute, "")
	unit := implcaps.Get(m, implcaps.DataKeyUnit, "")

	if err := i.am.Attach(ctx, attributeName, unit); err != nil {
		return false, err
	}

	return true, nil
}

func (i *Implementation) Detach(ctx context.Context, detachType implcaps.DetachType) error {
	if err := i.am.Detach(ctx, detachType == implcaps.NoLongerEnumerated); err != nil {
		return err
	}

	return nil
}

func (i *Implementation) ImplName() string {
	return "GenericValueSensor"
}

func (i *Implementation) update(_ context.Context, v any) {
	i.m.Lock()
	changed := !reflect.DeepEqual(i.lastValue, v)
	i.lastValue = v
	i.m.Unlock()

	if changed {
		converter.Store(i.s, implcaps.LastChangedKey, time.Now(), converter.TimeEncoder)

		unit, _ := i.am.Unit()
		i.zi.SendEvent(capabilities.ValueSensorUpdate{Device: i.d, Value: v, Unit: unit})
	}

	converter.Store(i.s, implcaps.LastUpdatedKey, time.Now(), converter.TimeEncoder)
}

func (i *Implementation) Value(_ context.Context) (any, error) {
	return i.am.Value()
}

func (i *Implementation) Unit(_ context.Context) (string, error) {
	unit, _ := i.am.Unit()
	return unit, nil
}

func (i *Implementation) LastUpdateTime(_ context.Context) (time.Time, error) {
	t, _ := converter.Retrieve(i.s, implcaps.LastUpdatedKey, converter.TimeDecoder)
	return t, nil
}

func (i *Implementation) LastChangeTime(_ context.Context) (time.Time, error) {
	t, _ := converter.Retrieve(i.s, implcaps.LastChangedKey, converter.TimeDecoder)
	return t, nil
}
