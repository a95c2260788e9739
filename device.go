package tnda

import (
	"fmt"
	"github.com/shimmeringbee/tnda/ha"
	"github.com/shimmeringbee/tnda/implcaps"
	"github.com/shimmeringbee/tnda/rules"
	"sort"
	"sync"
)

// Categories of middleware objects which are surfaced as devices.
const (
	CategorySystem    = "system"
	CategoryDataset   = "dataset"
	CategoryCloudSync = "cloudsync"
)

// SystemKey is the key of the single device in the system category.
const SystemKey = "system"

type ObjectIdentifier struct {
	Category string
	Key      string
}

func (o ObjectIdentifier) String() string {
	return fmt.Sprintf("%s(%s)", o.Category, o.Key)
}

type device struct {
	// Immutable data.
	address ObjectIdentifier
	gw      *TNDA
	c       *category
	m       *sync.RWMutex

	// Mutable data, obtain lock first.
	capabilities    map[ha.Capability]implcaps.TNDACapability
	lastEnumeration map[string]rules.ResolvedCapabilityValues
}

func (d *device) Gateway() ha.Gateway {
	return d.gw
}

func (d *device) Identifier() ha.Identifier {
	return d.address
}

func (d *device) Capabilities() []ha.Capability {
	d.m.RLock()
	defer d.m.RUnlock()

	var caps []ha.Capability

	for cF := range d.capabilities {
		caps = append(caps, cF)
	}

	sort.Slice(caps, func(i, j int) bool {
		return caps[i] < caps[j]
	})

	return caps
}

func (d *device) Capability(capability ha.Capability) ha.BasicCapability {
	d.m.RLock()
	defer d.m.RUnlock()

	if impl, found := d.capabilities[capability]; found {
		return impl
	}

	return nil
}

func (d *device) HasCapability(capability ha.Capability) bool {
	d.m.RLock()
	defer d.m.RUnlock()

	_, found := d.capabilities[capability]
	return found
}

func (d *device) capabilityImpls() []implcaps.TNDACapability {
	d.m.RLock()
	defer d.m.RUnlock()

	var impls []implcaps.TNDACapability

	for _, impl := range d.capabilities {
		impls = append(impls, impl)
	}

	return impls
}

var _ ha.Device = (*device)(nil)
