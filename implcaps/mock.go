package implcaps

import (
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/tnda/attribute"
	"github.com/shimmeringbee/tnda/middleware"
	"github.com/stretchr/testify/mock"
)

type MockTNDAInterface struct {
	mock.Mock
}

func (m *MockTNDAInterface) NewAttributeMonitor() attribute.Monitor {
	return m.Called().Get(0).(attribute.Monitor)
}

func (m *MockTNDAInterface) SendEvent(a any) {
	m.Called(a)
}

func (m *MockTNDAInterface) Requester() middleware.Requester {
	return m.Called().Get(0).(middleware.Requester)
}

func (m *MockTNDAInterface) Logger() logwrap.Logger {
	return m.Called().Get(0).(logwrap.Logger)
}

var _ TNDAInterface = (*MockTNDAInterface)(nil)
