package tnda

import (
	"context"
	"github.com/shimmeringbee/persistence/impl/memory"
	"github.com/shimmeringbee/tnda/ha/capabilities"
	"github.com/shimmeringbee/tnda/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"io"
	"testing"
)

func Test_gateway_fetchRecords(t *testing.T) {
	t.Run("system info becomes a single record under the fixed system key", func(t *testing.T) {
		mr := &middleware.MockRequester{}
		defer mr.AssertExpectations(t)

		mr.On("Call", mock.Anything, middleware.SystemInfo, nil).Return(map[string]any{"version": "TrueNAS-13.0-U5"}, nil)

		g := New(context.Background(), memory.New(), mr, nil).(*TNDA)

		records, err := g.fetchRecords(context.Background(), CategorySystem)
		assert.NoError(t, err)
		assert.Len(t, records, 1)
		assert.Equal(t, "TrueNAS-13.0-U5", records[SystemKey]["version"])
	})

	t.Run("datasets are keyed by their string id, entries without one are dropped", func(t *testing.T) {
		mr := &middleware.MockRequester{}
		defer mr.AssertExpectations(t)

		mr.On("Call", mock.Anything, middleware.PoolDatasetQuery, nil).Return([]any{
			map[string]any{"id": "tank/vms", "used": 100.0},
			map[string]any{"id": "tank/media", "used": 200.0},
			map[string]any{"used": 300.0},
		}, nil)

		g := New(context.Background(), memory.New(), mr, nil).(*TNDA)

		records, err := g.fetchRecords(context.Background(), CategoryDataset)
		assert.NoError(t, err)
		assert.Len(t, records, 2)
		assert.Contains(t, records, "tank/vms")
		assert.Contains(t, records, "tank/media")
	})

	t.Run("cloud sync jobs are keyed by their numeric id", func(t *testing.T) {
		mr := &middleware.MockRequester{}
		defer mr.AssertExpectations(t)

		mr.On("Call", mock.Anything, middleware.CloudSyncQuery, nil).Return([]any{
			map[string]any{"id": float64(7), "description": "offsite"},
		}, nil)

		g := New(context.Background(), memory.New(), mr, nil).(*TNDA)

		records, err := g.fetchRecords(context.Background(), CategoryCloudSync)
		assert.NoError(t, err)
		assert.Len(t, records, 1)
		assert.Contains(t, records, "7")
	})

	t.Run("malformed responses error", func(t *testing.T) {
		mr := &middleware.MockRequester{}
		defer mr.AssertExpectations(t)

		mr.On("Call", mock.Anything, middleware.SystemInfo, nil).Return([]any{}, nil)

		g := New(context.Background(), memory.New(), mr, nil).(*TNDA)

		_, err := g.fetchRecords(context.Background(), CategorySystem)
		assert.Error(t, err)
	})

	t.Run("transport errors are returned", func(t *testing.T) {
		mr := &middleware.MockRequester{}
		defer mr.AssertExpectations(t)

		mr.On("Call", mock.Anything, middleware.SystemInfo, nil).Return(nil, io.EOF)

		g := New(context.Background(), memory.New(), mr, nil).(*TNDA)

		_, err := g.fetchRecords(context.Background(), CategorySystem)
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("unknown categories error", func(t *testing.T) {
		g := New(context.Background(), memory.New(), nil, nil).(*TNDA)

		_, err := g.fetchRecords(context.Background(), "tapes")
		assert.Error(t, err)
	})
}

func Test_gateway_refreshCategory(t *testing.T) {
	t.Run("creates devices for new records, feeds existing monitors and removes vanished devices", func(t *testing.T) {
		mr := &middleware.MockRequester{}
		defer mr.AssertExpectations(t)

		mr.On("Call", mock.Anything, middleware.PoolDatasetQuery, nil).Return([]any{
			map[string]any{"id": "tank/vms", "name": "tank/vms", "used": 100.0, "used_unit": "GiB", "readonly": false},
			map[string]any{"id": "tank/media", "name": "tank/media", "used": 200.0, "used_unit": "GiB", "readonly": false},
		}, nil).Once()

		g := New(context.Background(), memory.New(), mr, testEngine(t)).(*TNDA)

		c, _ := g.createCategory(CategoryDataset)

		assert.NoError(t, g.refreshCategory(context.Background(), c))
		assert.Len(t, g.getDevicesOnCategory(c), 2)

		d := g.getDevice(ObjectIdentifier{Category: CategoryDataset, Key: "tank/vms"})
		assert.NotNil(t, d)
		assert.True(t, d.HasCapability(capabilities.ValueSensorFlag))
		assert.True(t, d.HasCapability(capabilities.SnapshotControlFlag))

		vs, ok := d.Capability(capabilities.ValueSensorFlag).(capabilities.ValueSensor)
		assert.True(t, ok)

		v, err := vs.Value(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 100.0, v)

		unit, err := vs.Unit(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, "GiB", unit)

		mr.On("Call", mock.Anything, middleware.PoolDatasetQuery, nil).Return([]any{
			map[string]any{"id": "tank/vms", "name": "tank/vms", "used": 150.0, "used_unit": "GiB", "readonly": false},
		}, nil).Once()

		assert.NoError(t, g.refreshCategory(context.Background(), c))

		assert.Len(t, g.getDevicesOnCategory(c), 1)
		assert.Nil(t, g.getDevice(ObjectIdentifier{Category: CategoryDataset, Key: "tank/media"}))

		v, err = vs.Value(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 150.0, v)
	})

	t.Run("fetch failures leave the device table untouched", func(t *testing.T) {
		mr := &middleware.MockRequester{}
		defer mr.AssertExpectations(t)

		mr.On("Call", mock.Anything, middleware.PoolDatasetQuery, nil).Return([]any{
			map[string]any{"id": "tank/vms", "name": "tank/vms", "used": 100.0, "readonly": false},
		}, nil).Once()

		g := New(context.Background(), memory.New(), mr, testEngine(t)).(*TNDA)

		c, _ := g.createCategory(CategoryDataset)
		assert.NoError(t, g.refreshCategory(context.Background(), c))
		assert.Len(t, g.getDevicesOnCategory(c), 1)

		mr.On("Call", mock.Anything, middleware.PoolDatasetQuery, nil).Return(nil, io.EOF)

		assert.ErrorIs(t, g.refreshCategory(context.Background(), c), io.EOF)
		assert.Len(t, g.getDevicesOnCategory(c), 1)
	})

	t.Run("a refresh is skipped while another is in progress for the category", func(t *testing.T) {
		mr := &middleware.MockRequester{}

		g := New(context.Background(), memory.New(), mr, nil).(*TNDA)

		c, _ := g.createCategory(CategoryDataset)
		assert.True(t, c.refreshSem.TryAcquire(1))
		defer c.refreshSem.Release(1)

		assert.NoError(t, g.refreshCategory(context.Background(), c))
		mr.AssertNotCalled(t, "Call", mock.Anything, mock.Anything, mock.Anything)
	})
}

func Test_gatewayRefresh(t *testing.T) {
	t.Run("refreshes every category in the table", func(t *testing.T) {
		mr := &middleware.MockRequester{}
		defer mr.AssertExpectations(t)

		mr.On("Call", mock.Anything, middleware.SystemInfo, nil).Return(map[string]any{"uptime_seconds": 1.0}, nil).Once()
		mr.On("Call", mock.Anything, middleware.CloudSyncQuery, nil).Return([]any{}, nil).Once()

		g := New(context.Background(), memory.New(), mr, testEngine(t)).(*TNDA)

		g.createCategory(CategorySystem)
		g.createCategory(CategoryCloudSync)

		refresh, ok := g.Capability(capabilities.RefreshFlag).(capabilities.Refresh)
		assert.True(t, ok)

		assert.NoError(t, refresh.Refresh(context.Background()))

		assert.NotNil(t, g.getDevice(ObjectIdentifier{Category: CategorySystem, Key: SystemKey}))
	})
}
