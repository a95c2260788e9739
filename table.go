package tnda

import (
	"context"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/tnda/ha"
	"github.com/shimmeringbee/tnda/ha/capabilities"
	"github.com/shimmeringbee/tnda/implcaps"
	"golang.org/x/sync/semaphore"
	"sync"
)

func (z *TNDA) createCategory(name string) (*category, bool) {
	z.categoryLock.Lock()
	defer z.categoryLock.Unlock()

	c, found := z.category[name]
	if !found {
		c = &category{
			name:       name,
			m:          &sync.RWMutex{},
			device:     make(map[string]*device),
			refreshSem: semaphore.NewWeighted(1),
		}

		z.category[name] = c

		z.sectionForCategory(c.name)
	}

	return c, !found
}

func (z *TNDA) getCategory(name string) *category {
	z.categoryLock.RLock()
	defer z.categoryLock.RUnlock()

	return z.category[name]
}

func (z *TNDA) getCategories() []*category {
	z.categoryLock.RLock()
	defer z.categoryLock.RUnlock()

	var categories []*category

	for _, c := range z.category {
		categories = append(categories, c)
	}

	return categories
}

func (z *TNDA) getDevice(identifier ObjectIdentifier) *device {
	c := z.getCategory(identifier.Category)

	if c == nil {
		return nil
	}

	c.m.RLock()
	defer c.m.RUnlock()

	return c.device[identifier.Key]
}

func (z *TNDA) getDevices() []*device {
	z.categoryLock.RLock()
	defer z.categoryLock.RUnlock()

	var devices []*device

	for _, c := range z.category {
		devices = append(devices, z.getDevicesOnCategory(c)...)
	}

	return devices
}

func (z *TNDA) getDevicesOnCategory(c *category) []*device {
	c.m.RLock()
	defer c.m.RUnlock()

	var devices []*device

	for _, d := range c.device {
		devices = append(devices, d)
	}

	return devices
}

func (z *TNDA) createSpecificDevice(c *category, key string) *device {
	c.m.Lock()
	defer c.m.Unlock()

	if d, found := c.device[key]; found {
		return d
	}

	d := &device{
		address: ObjectIdentifier{
			Category: c.name,
			Key:      key,
		},
		gw:           z,
		c:            c,
		m:            &sync.RWMutex{},
		capabilities: make(map[ha.Capability]implcaps.TNDACapability),
	}

	c.device[key] = d

	z.sectionForDevice(d.address)

	z.sendEvent(ha.DeviceAdded{Device: d})

	return d
}

func (z *TNDA) removeDevice(ctx context.Context, identifier ObjectIdentifier) bool {
	c := z.getCategory(identifier.Category)

	if c == nil {
		return false
	}

	c.m.Lock()
	d, found := c.device[identifier.Key]
	if found {
		delete(c.device, identifier.Key)
	}
	c.m.Unlock()

	if !found {
		return false
	}

	for _, impl := range d.capabilityImpls() {
		z.logger.LogInfo(ctx, "Detaching capability from removed device.", logwrap.Datum("Capability", capabilities.StandardNames[impl.Capability()]), logwrap.Datum("CapabilityImplementation", impl.ImplName()))
		if err := impl.Detach(ctx, implcaps.DeviceRemoved); err != nil {
			z.logger.LogWarn(ctx, "Error thrown while detaching capability.", logwrap.Datum("Capability", capabilities.StandardNames[impl.Capability()]), logwrap.Datum("CapabilityImplementation", impl.ImplName()), logwrap.Err(err))
		}

		z.detachCapabilityFromDevice(d, impl)
	}

	z.sendEvent(ha.DeviceRemoved{Device: d})

	z.sectionRemoveDevice(d.address)
	z.callbacks.Call(ctx, internalDeviceRemoval{device: d})

	return true
}

func (z *TNDA) attachCapabilityToDevice(d *device, c implcaps.TNDACapability) {
	cF := c.Capability()

	d.m.Lock()
	d.capabilities[cF] = c
	d.m.Unlock()

	z.sectionForDevice(d.address).Section("capability", capabilities.StandardNames[cF]).Set("implementation", c.ImplName())
	z.sendEvent(ha.CapabilityAdded{Device: d, Capability: cF})
}

func (z *TNDA) detachCapabilityFromDevice(d *device, c implcaps.TNDACapability) {
	cF := c.Capability()

	d.m.Lock()
	_, found := d.capabilities[cF]
	if found {
		delete(d.capabilities, cF)
	}
	d.m.Unlock()

	if found {
		z.sendEvent(ha.CapabilityRemoved{Device: d, Capability: cF})
		z.sectionForDevice(d.address).Section("capability").SectionDelete(capabilities.StandardNames[cF])
	}
}
