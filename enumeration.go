package tnda

import (
	"context"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/tnda/ha"
	"github.com/shimmeringbee/tnda/ha/capabilities"
	"github.com/shimmeringbee/tnda/implcaps"
	"github.com/shimmeringbee/tnda/implcaps/factory"
	"github.com/shimmeringbee/tnda/rules"
	"reflect"
	"sort"
)

// enumerateDevice runs the rule engine against a device's record and settles
// the device's capabilities to match the output. Enumeration is skipped, with
// no events, when the output is identical to the previous enumeration.
func (z *TNDA) enumerateDevice(pctx context.Context, d *device, record map[string]any) error {
	output, err := z.ruleEngine.Execute(rules.Input{
		Category:   d.address.Category,
		Key:        d.address.Key,
		Attributes: record,
	})
	if err != nil {
		z.sendEvent(capabilities.EnumerateDeviceFailure{Device: d, Error: err})
		return fmt.Errorf("rule execution: %w", err)
	}

	d.m.RLock()
	unchanged := reflect.DeepEqual(output.Capabilities, d.lastEnumeration)
	d.m.RUnlock()

	if unchanged {
		return nil
	}

	z.sendEvent(capabilities.EnumerateDeviceStart{Device: d})

	ctx, end := z.logger.Segment(pctx, "Device enumeration.", logwrap.Datum("Identifier", d.address.String()))
	z.settleCapabilitiesOnDevice(ctx, d, record, output)
	end()

	d.m.Lock()
	d.lastEnumeration = output.Capabilities
	d.m.Unlock()

	z.sendEvent(capabilities.EnumerateDeviceSuccess{Device: d})

	return nil
}

func (z *TNDA) settleCapabilitiesOnDevice(ctx context.Context, d *device, record map[string]any, output rules.Output) {
	active := make(map[ha.Capability]bool)

	var implNames []string
	for implName := range output.Capabilities {
		implNames = append(implNames, implName)
	}

	sort.Strings(implNames)

	for _, implName := range implNames {
		flag, known := factory.Mapping[implName]
		if !known {
			z.logger.LogError(ctx, "Rules produced unknown capability implementation.", logwrap.Datum("implementation", implName))
			continue
		}

		data := make(map[string]any)
		for k, v := range output.Capabilities[implName] {
			data[k] = v
		}

		data[implcaps.DataKeyCategory] = d.address.Category
		data[implcaps.DataKeyRecord] = record

		existing, _ := d.Capability(flag).(implcaps.TNDACapability)

		if existing != nil && existing.ImplName() != implName {
			z.logger.LogInfo(ctx, "Replacing capability implementation.", logwrap.Datum("implementation", existing.ImplName()), logwrap.Datum("replacement", implName))

			if err := existing.Detach(ctx, implcaps.NoLongerEnumerated); err != nil {
				z.logger.LogWarn(ctx, "Error thrown while detaching capability.", logwrap.Datum("implementation", existing.ImplName()), logwrap.Err(err))
			}

			z.detachCapabilityFromDevice(d, existing)
			existing = nil
		}

		capImpl := existing

		if capImpl == nil {
			capImpl = factory.Create(implName, z.ti)

			if capImpl == nil {
				z.logger.LogError(ctx, "Could not find capability implementation.", logwrap.Datum("implementation", implName))
				continue
			}

			capImpl.Init(d, z.sectionForDevice(d.address).Section("capability", capabilities.StandardNames[flag], "data"))
		}

		attach, err := capImpl.Enumerate(ctx, data)
		if err != nil {
			z.logger.LogError(ctx, "Error thrown while enumerating capability.", logwrap.Datum("implementation", implName), logwrap.Err(err))
		}

		if attach {
			if existing == nil {
				z.attachCapabilityToDevice(d, capImpl)
			}

			active[flag] = true
		} else {
			if err := capImpl.Detach(ctx, implcaps.FailedAttach); err != nil {
				z.logger.LogWarn(ctx, "Error thrown while detaching capability.", logwrap.Datum("implementation", implName), logwrap.Err(err))
			}

			z.detachCapabilityFromDevice(d, capImpl)
		}
	}

	for _, impl := range d.capabilityImpls() {
		if !active[impl.Capability()] {
			z.logger.LogInfo(ctx, "Detaching capability no longer produced by rules.", logwrap.Datum("implementation", impl.ImplName()))

			if err := impl.Detach(ctx, implcaps.NoLongerEnumerated); err != nil {
				z.logger.LogWarn(ctx, "Error thrown while detaching capability.", logwrap.Datum("implementation", impl.ImplName()), logwrap.Err(err))
			}

			z.detachCapabilityFromDevice(d, impl)
		}
	}
}
