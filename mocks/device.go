package mocks

import (
	"github.com/shimmeringbee/tnda/ha"
	"github.com/stretchr/testify/mock"
)

type MockDevice struct {
	mock.Mock
}

func (m *MockDevice) Gateway() ha.Gateway {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(ha.Gateway)
}

func (m *MockDevice) Identifier() ha.Identifier {
	return m.Called().Get(0).(ha.Identifier)
}

func (m *MockDevice) Capabilities() []ha.Capability {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]ha.Capability)
}

func (m *MockDevice) Capability(c ha.Capability) ha.BasicCapability {
	args := m.Called(c)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(ha.BasicCapability)
}

func (m *MockDevice) HasCapability(c ha.Capability) bool {
	return m.Called(c).Bool(0)
}

var _ ha.Device = (*MockDevice)(nil)

type MockIdentifier struct {
	mock.Mock
}

func (m *MockIdentifier) String() string {
	return m.Called().String(0)
}

var _ ha.Identifier = (*MockIdentifier)(nil)
