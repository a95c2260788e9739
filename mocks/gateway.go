package mocks

import (
	"context"
	"github.com/shimmeringbee/tnda/ha"
	"github.com/stretchr/testify/mock"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) ReadEvent(ctx context.Context) (any, error) {
	args := m.Called(ctx)
	return args.Get(0), args.Error(1)
}

func (m *MockGateway) Capability(c ha.Capability) any {
	return m.Called(c).Get(0)
}

func (m *MockGateway) Capabilities() []ha.Capability {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]ha.Capability)
}

func (m *MockGateway) Self() ha.Device {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(ha.Device)
}

func (m *MockGateway) Devices() []ha.Device {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]ha.Device)
}

func (m *MockGateway) Start() error {
	return m.Called().Error(0)
}

func (m *MockGateway) Stop() error {
	return m.Called().Error(0)
}

var _ ha.Gateway = (*MockGateway)(nil)
