package middleware

import (
	"context"
	"github.com/stretchr/testify/mock"
)

type MockRequester struct {
	mock.Mock
}

func (m *MockRequester) Call(ctx context.Context, method string, params any) (any, error) {
	args := m.Called(ctx, method, params)
	return args.Get(0), args.Error(1)
}

var _ Requester = (*MockRequester)(nil)
