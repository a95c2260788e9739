package attribute

import (
	"context"
	"github.com/shimmeringbee/persistence"
	"github.com/shimmeringbee/tnda/ha"
	"github.com/stretchr/testify/mock"
)

type MockMonitor struct {
	mock.Mock
}

func (m *MockMonitor) Init(s persistence.Section, d ha.Device, cb MonitorCallback) {
	m.Called(s, d, cb)
}

func (m *MockMonitor) Load(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockMonitor) Attach(ctx context.Context, attribute string, unit string) error {
	return m.Called(ctx, attribute, unit).Error(0)
}

func (m *MockMonitor) Detach(ctx context.Context, unconfigure bool) error {
	return m.Called(ctx, unconfigure).Error(0)
}

func (m *MockMonitor) HandleUpdate(ctx context.Context, record map[string]any) {
	m.Called(ctx, record)
}

func (m *MockMonitor) Value() (any, error) {
	args := m.Called()
	return args.Get(0), args.Error(1)
}

func (m *MockMonitor) Unit() (string, bool) {
	args := m.Called()
	return args.String(0), args.Bool(1)
}

var _ Monitor = (*MockMonitor)(nil)

type MockFeed struct {
	mock.Mock
}

func (m *MockFeed) Subscribe(d ha.Device, r Receiver) {
	m.Called(d, r)
}

func (m *MockFeed) Unsubscribe(d ha.Device, r Receiver) {
	m.Called(d, r)
}

var _ Feed = (*MockFeed)(nil)
