package tnda

import (
	"golang.org/x/sync/semaphore"
	"sync"
)

// category tracks all devices which have been enumerated from one kind of
// middleware object. The system category holds a single device, datasets and
// cloud sync jobs hold one device per object present on the appliance.
type category struct {
	// Immutable data.
	name string
	m    *sync.RWMutex

	// Mutable data, obtain lock first.
	device map[string]*device

	// Refresh overlap guard.
	refreshSem *semaphore.Weighted
}
