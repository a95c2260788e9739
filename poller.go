package tnda

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

const pollerBacklog = 200
const pollerWorkers = 4
const workerMaximumJobDuration = 15 * time.Second

type categoryTable interface {
	getCategory(name string) *category
}

type tndaPoller struct {
	categoryTable categoryTable

	pollerWork chan pollerWork
	pollerStop chan bool

	randLock *sync.Mutex
	rand     *rand.Rand
}

type pollerWork struct {
	name     string
	interval time.Duration
	fn       func(context.Context, *category) bool
}

func (p *tndaPoller) Start() {
	p.pollerStop = make(chan bool, pollerWorkers)
	p.pollerWork = make(chan pollerWork, pollerBacklog)

	for i := 0; i < pollerWorkers; i++ {
		go p.worker()
	}

	p.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
}

func (p *tndaPoller) Stop() {
	for i := 0; i < pollerWorkers; i++ {
		p.pollerStop <- true
	}
}

func (p *tndaPoller) Add(name string, interval time.Duration, fn func(context.Context, *category) bool) {
	p.randLock.Lock()
	initialWait := time.Duration(float64(interval) * p.rand.Float64())
	p.randLock.Unlock()

	time.AfterFunc(initialWait, func() {
		p.pollerWork <- pollerWork{
			name:     name,
			interval: interval,
			fn:       fn,
		}
	})
}

func (p *tndaPoller) worker() {
	for {
		select {
		case work := <-p.pollerWork:
			c := p.categoryTable.getCategory(work.name)

			if c != nil {
				ctx, cancel := context.WithTimeout(context.Background(), workerMaximumJobDuration)

				if work.fn(ctx, c) {
					time.AfterFunc(work.interval, func() {
						p.pollerWork <- work
					})
				}

				cancel()
			}
		case <-p.pollerStop:
			return
		}
	}
}
