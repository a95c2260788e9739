package power_control

import (
	"context"
	"github.com/shimmeringbee/persistence"
	"github.com/shimmeringbee/tnda/ha"
	"github.com/shimmeringbee/tnda/ha/capabilities"
	"github.com/shimmeringbee/tnda/implcaps"
	"github.com/shimmeringbee/tnda/middleware"
)

var _ capabilities.SystemControl = (*Implementation)(nil)
var _ implcaps.TNDACapability = (*Implementation)(nil)

// ActionReason is sent as the positional reason argument of reboot and
// shutdown requests, so the middleware audit log records who asked.
const ActionReason = "Home Assistant Integration"

func NewSystemControl(zi implcaps.TNDAInterface) *Implementation {
	return &Implementation{zi: zi}
}

type Implementation struct {
	s  persistence.Section
	d  ha.Device
	zi implcaps.TNDAInterface
}

func (i *Implementation) Capability() ha.Capability {
	return capabilities.SystemControlFlag
}

func (i *Implementation) Name() string {
	return capabilities.StandardNames[capabilities.SystemControlFlag]
}

func (i *Implementation) Init(d ha.Device, s persistence.Section) {
	i.d = d
	i.s = s
}

func (i *Implementation) Load(_ context.Context) (bool, error) {
	return true, nil
}

func (i *Implementation) Enumerate(_ context.Context, _ map[string]any) (bool, error) {
	return true, nil
}

func (i *Implementation) Detach(_ context.Context, _ implcaps.DetachType) error {
	return nil
}

func (i *Implementation) ImplName() string {
	return "SystemPowerControl"
}

func (i *Implementation) Restart(ctx context.Context) error {
	_, err := i.zi.Requester().Call(ctx, middleware.SystemReboot, []any{ActionReason})
	return err
}

func (i *Implementation) Shutdown(ctx context.Context) error {
	_, err := i.zi.Requester().Call(ctx, middleware.SystemShutdown, []any{ActionReason})
	return err
}
