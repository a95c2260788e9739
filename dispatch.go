package tnda

import (
	"context"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/tnda/middleware"
)

const dispatcherBacklog = 50
const dispatcherWorkers = 4

// dispatcher funnels middleware calls issued by capabilities onto a bounded
// worker pool. Accepted work always runs to completion, a caller abandoning
// its wait does not cancel the call in flight.
type dispatcher struct {
	gw *TNDA

	work chan dispatchWork
	stop chan bool
}

type dispatchWork struct {
	method string
	params any
	result chan dispatchResult
}

type dispatchResult struct {
	value any
	err   error
}

func (d *dispatcher) Start() {
	d.stop = make(chan bool, dispatcherWorkers)
	d.work = make(chan dispatchWork, dispatcherBacklog)

	for i := 0; i < dispatcherWorkers; i++ {
		go d.worker()
	}
}

func (d *dispatcher) Stop() {
	for i := 0; i < dispatcherWorkers; i++ {
		d.stop <- true
	}
}

func (d *dispatcher) Call(ctx context.Context, method string, params any) (any, error) {
	w := dispatchWork{
		method: method,
		params: params,
		result: make(chan dispatchResult, 1),
	}

	select {
	case d.work <- w:
	default:
		d.gw.logger.LogError(ctx, "Failed to queue middleware call.", logwrap.Datum("Method", method))
		return nil, fmt.Errorf("unable to queue middleware call, likely channel full")
	}

	select {
	case r := <-w.result:
		return r.value, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (d *dispatcher) worker() {
	for {
		select {
		case w := <-d.work:
			ctx, cancel := context.WithTimeout(context.Background(), workerMaximumJobDuration)
			value, err := d.gw.requester.Call(ctx, w.method, w.params)
			cancel()

			w.result <- dispatchResult{value: value, err: err}
		case <-d.stop:
			return
		}
	}
}

var _ middleware.Requester = (*dispatcher)(nil)
