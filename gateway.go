package tnda

import (
	"context"
	"fmt"
	"github.com/shimmeringbee/callbacks"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/discard"
	"github.com/shimmeringbee/persistence"
	"github.com/shimmeringbee/tnda/attribute"
	"github.com/shimmeringbee/tnda/ha"
	"github.com/shimmeringbee/tnda/ha/capabilities"
	"github.com/shimmeringbee/tnda/middleware"
	"github.com/shimmeringbee/tnda/rules"
	"sync"
	"time"
)

// DefaultRefreshInterval is the period between scheduled refreshes of each
// category. Initial refreshes are staggered so the categories do not all poll
// at once.
const DefaultRefreshInterval = 1 * time.Minute

// New constructs a gateway which surfaces the objects of a TrueNAS middleware
// as devices. If e is nil the embedded default rules are loaded on Start.
func New(ctx context.Context, s persistence.Section, r middleware.Requester, e *rules.Engine) ha.Gateway {
	lifecycleCtx, cancel := context.WithCancel(ctx)

	z := &TNDA{
		ctx:    lifecycleCtx,
		cancel: cancel,

		logger:  logwrap.New(discard.Discard()),
		section: s,

		requester:  r,
		ruleEngine: e,

		callbacks: callbacks.Create(),

		categoryLock: &sync.RWMutex{},
		category:     make(map[string]*category),

		events: make(chan any, 0xffff),
	}

	z.feed = &recordFeed{
		m:        &sync.RWMutex{},
		receiver: make(map[ha.Identifier][]attribute.Receiver),
	}

	z.dispatcher = &dispatcher{gw: z}
	z.poller = &tndaPoller{categoryTable: z, randLock: &sync.Mutex{}}
	z.ti = tndaInterface{gw: z}
	z.gwRefresh = &gatewayRefresh{gw: z}

	z.callbacks.Add(z.recordUpdateCallback)
	z.callbacks.Add(z.deviceRemovalCallback)

	return z
}

type TNDA struct {
	ctx    context.Context
	cancel context.CancelFunc

	logger  logwrap.Logger
	section persistence.Section

	requester  middleware.Requester
	ruleEngine *rules.Engine

	callbacks callbacks.AdderCaller

	categoryLock *sync.RWMutex
	category     map[string]*category

	events chan any

	feed       *recordFeed
	dispatcher *dispatcher
	poller     *tndaPoller
	ti         tndaInterface
	gwRefresh  *gatewayRefresh

	selfDevice *device
}

func (z *TNDA) Capability(capability ha.Capability) any {
	if capability == capabilities.RefreshFlag {
		return z.gwRefresh
	}

	return nil
}

func (z *TNDA) Capabilities() []ha.Capability {
	return []ha.Capability{capabilities.RefreshFlag}
}

func (z *TNDA) Self() ha.Device {
	if z.selfDevice == nil {
		return nil
	}

	return z.selfDevice
}

func (z *TNDA) Devices() []ha.Device {
	internal := z.getDevices()

	devices := make([]ha.Device, 0, len(internal))
	for _, d := range internal {
		devices = append(devices, d)
	}

	return devices
}

func (z *TNDA) Start() error {
	z.logger.LogInfo(z.ctx, "Starting TrueNAS device abstraction.")

	if z.ruleEngine == nil {
		e := rules.New()

		if err := e.LoadFS(rules.Embedded); err != nil {
			return fmt.Errorf("default ruleset load: %w", err)
		}

		if err := e.CompileRules(); err != nil {
			return fmt.Errorf("default ruleset compile: %w", err)
		}

		z.ruleEngine = e
	}

	z.providerLoad()

	systemCategory, _ := z.createCategory(CategorySystem)
	z.createCategory(CategoryDataset)
	z.createCategory(CategoryCloudSync)

	z.selfDevice = z.createSpecificDevice(systemCategory, SystemKey)

	z.dispatcher.Start()
	z.poller.Start()

	for _, c := range z.getCategories() {
		z.poller.Add(c.name, DefaultRefreshInterval, z.pollCategory)
	}

	go func() {
		if err := z.gwRefresh.Refresh(z.ctx); err != nil {
			z.logger.LogError(z.ctx, "Initial refresh failed.", logwrap.Err(err))
		}
	}()

	return nil
}

func (z *TNDA) Stop() error {
	z.logger.LogInfo(z.ctx, "Stopping TrueNAS device abstraction.")

	z.poller.Stop()
	z.dispatcher.Stop()
	z.cancel()

	return nil
}

func (z *TNDA) pollCategory(ctx context.Context, c *category) bool {
	if err := z.refreshCategory(ctx, c); err != nil {
		z.logger.LogError(ctx, "Scheduled refresh failed.", logwrap.Datum("Category", c.name), logwrap.Err(err))
	}

	return true
}

func (z *TNDA) recordUpdateCallback(ctx context.Context, e internalRecordUpdate) error {
	z.feed.dispatch(ctx, e.device.address, e.record)
	return nil
}

func (z *TNDA) deviceRemovalCallback(_ context.Context, e internalDeviceRemoval) error {
	z.feed.removeAll(e.device.address)
	return nil
}

var _ ha.Gateway = (*TNDA)(nil)
