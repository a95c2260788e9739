package attribute

import (
	"context"
	"errors"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/persistence"
	"github.com/shimmeringbee/tnda/ha"
	"strings"
	"sync"
)

// DynamicUnitPrefix marks a configured unit which should be resolved against
// the record at read time, the remainder of the string naming the attribute
// holding the unit.
const DynamicUnitPrefix = "data__"

const AttributeNameKey = "AttributeName"
const UnitKey = "Unit"

// ErrNoRecord is returned by Value before any record has been received for
// the device.
var ErrNoRecord = errors.New("no record available")

// ErrAttributeNotPresent is returned by Value when the monitored attribute is
// missing from the latest record.
var ErrAttributeNotPresent = errors.New("attribute not present in record")

// MonitorCallback is invoked each time a record containing the monitored
// attribute arrives, with the attribute's value.
type MonitorCallback func(ctx context.Context, value any)

// Receiver accepts fresh records for a device.
type Receiver interface {
	HandleUpdate(ctx context.Context, record map[string]any)
}

// Feed routes records from the gateway's refresh cycle to subscribed
// receivers.
type Feed interface {
	Subscribe(d ha.Device, r Receiver)
	Unsubscribe(d ha.Device, r Receiver)
}

// Monitor projects one attribute of a device's record, tracking the latest
// record pushed by the gateway and persisting its own configuration so it can
// be restored at start up.
type Monitor interface {
	Receiver
	// Init is used upon creation of the monitor to provide persistence, the
	// monitored device and the callback for value updates.
	Init(s persistence.Section, d ha.Device, cb MonitorCallback)
	// Load restores the monitor configuration from persistence.
	Load(ctx context.Context) error
	// Attach configures the monitor against an attribute name and optional
	// unit string, persisting both.
	Attach(ctx context.Context, attribute string, unit string) error
	// Detach stops the monitor, removing persisted configuration if
	// unconfigure is set.
	Detach(ctx context.Context, unconfigure bool) error
	// Value returns the monitored attribute from the latest record.
	Value() (any, error)
	// Unit returns the resolved unit, false if no unit is configured.
	Unit() (string, bool)
}

func NewMonitor(f Feed, l logwrap.Logger) Monitor {
	return &recordMonitor{
		feed:   f,
		logger: &l,
		m:      &sync.RWMutex{},
	}
}

type recordMonitor struct {
	feed   Feed
	logger *logwrap.Logger

	config   persistence.Section
	device   ha.Device
	callback MonitorCallback

	m             *sync.RWMutex
	attributeName string
	unit          string
	latestRecord  map[string]any
}

func (z *recordMonitor) Init(s persistence.Section, d ha.Device, cb MonitorCallback) {
	z.config = s
	z.device = d
	z.callback = cb

	z.logger.AddOptionsToLogger(logwrap.Datum("Identifier", d.Identifier().String()))
}

func (z *recordMonitor) Load(pctx context.Context) error {
	ctx, end := z.logger.Segment(pctx, "Loading attribute monitor.")
	defer end()

	if v, ok := z.config.String(AttributeNameKey); ok {
		z.attributeName = v
	} else {
		z.logger.Error(ctx, "Required config parameter missing.", logwrap.Datum("name", AttributeNameKey))
		return fmt.Errorf("monitor missing config parameter: %s", AttributeNameKey)
	}

	if v, ok := z.config.String(UnitKey); ok {
		z.unit = v
	}

	return z.reattach(ctx)
}

func (z *recordMonitor) reattach(ctx context.Context) error {
	z.feed.Subscribe(z.device, z)

	z.logger.Info(ctx, "Attribute monitor configuration.", logwrap.Data(logwrap.List{"AttributeName": z.attributeName, "Unit": z.unit}))

	return nil
}

func (z *recordMonitor) Attach(ctx context.Context, attribute string, unit string) error {
	if len(attribute) == 0 {
		return fmt.Errorf("monitor attribute name must not be empty")
	}

	z.logger.Info(ctx, "Attaching attribute monitor...", logwrap.Datum("AttributeName", attribute), logwrap.Datum("Unit", unit))

	z.m.Lock()
	z.attributeName = attribute
	z.unit = unit
	z.m.Unlock()

	z.config.Set(AttributeNameKey, attribute)

	if len(unit) > 0 {
		z.config.Set(UnitKey, unit)
	} else {
		z.config.Delete(UnitKey)
	}

	return z.reattach(ctx)
}

func (z *recordMonitor) Detach(ctx context.Context, unconfigure bool) error {
	z.logger.Info(ctx, "Detaching attribute monitor...", logwrap.Datum("Unconfigure", unconfigure))

	z.feed.Unsubscribe(z.device, z)

	if unconfigure {
		z.config.Delete(AttributeNameKey)
		z.config.Delete(UnitKey)
	}

	return nil
}

func (z *recordMonitor) HandleUpdate(ctx context.Context, record map[string]any) {
	z.m.Lock()
	z.latestRecord = record
	attribute := z.attributeName
	z.m.Unlock()

	if v, ok := record[attribute]; ok && z.callback != nil {
		z.callback(ctx, v)
	}
}

func (z *recordMonitor) Value() (any, error) {
	z.m.RLock()
	defer z.m.RUnlock()

	if z.latestRecord == nil {
		return nil, ErrNoRecord
	}

	if v, ok := z.latestRecord[z.attributeName]; ok {
		return v, nil
	}

	return nil, ErrAttributeNotPresent
}

func (z *recordMonitor) Unit() (string, bool) {
	z.m.RLock()
	defer z.m.RUnlock()

	if len(z.unit) == 0 {
		return "", false
	}

	if name, found := strings.CutPrefix(z.unit, DynamicUnitPrefix); found {
		if v, ok := z.latestRecord[name]; ok {
			if s, isString := v.(string); isString {
				return s, true
			}

			return fmt.Sprintf("%v", v), true
		}
	}

	return z.unit, true
}
