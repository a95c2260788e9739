package tnda

import (
	"context"
	"github.com/shimmeringbee/tnda/attribute"
	"github.com/shimmeringbee/tnda/ha"
	"sync"
)

// recordFeed routes records fetched during refresh to the attribute monitors
// subscribed against each device.
type recordFeed struct {
	m        *sync.RWMutex
	receiver map[ha.Identifier][]attribute.Receiver
}

func (f *recordFeed) Subscribe(d ha.Device, r attribute.Receiver) {
	f.m.Lock()
	defer f.m.Unlock()

	id := d.Identifier()

	for _, existing := range f.receiver[id] {
		if existing == r {
			return
		}
	}

	f.receiver[id] = append(f.receiver[id], r)
}

func (f *recordFeed) Unsubscribe(d ha.Device, r attribute.Receiver) {
	f.m.Lock()
	defer f.m.Unlock()

	id := d.Identifier()

	var remaining []attribute.Receiver

	for _, existing := range f.receiver[id] {
		if existing != r {
			remaining = append(remaining, existing)
		}
	}

	if len(remaining) > 0 {
		f.receiver[id] = remaining
	} else {
		delete(f.receiver, id)
	}
}

func (f *recordFeed) dispatch(ctx context.Context, id ha.Identifier, record map[string]any) {
	f.m.RLock()
	receivers := append([]attribute.Receiver(nil), f.receiver[id]...)
	f.m.RUnlock()

	for _, r := range receivers {
		r.HandleUpdate(ctx, record)
	}
}

func (f *recordFeed) removeAll(id ha.Identifier) {
	f.m.Lock()
	defer f.m.Unlock()

	delete(f.receiver, id)
}

var _ attribute.Feed = (*recordFeed)(nil)
