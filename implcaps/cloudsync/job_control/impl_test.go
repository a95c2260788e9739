package job_control

import (
	"context"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/discard"
	"github.com/shimmeringbee/persistence/impl/memory"
	"github.com/shimmeringbee/tnda/ha/capabilities"
	"github.com/shimmeringbee/tnda/implcaps"
	"github.com/shimmeringbee/tnda/middleware"
	"github.com/shimmeringbee/tnda/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"io"
	"testing"
)

func queryResponse(state string) []any {
	return []any{
		map[string]any{
			"id":          7,
			"description": "offsite",
			"job":         map[string]any{"state": state},
		},
	}
}

func TestImplementation_BaseFunctions(t *testing.T) {
	t.Run("basic capability functions", func(t *testing.T) {
		i := NewJobControl(nil)

		assert.Equal(t, capabilities.CloudSyncControlFlag, i.Capability())
		assert.Equal(t, "CloudSyncControl", i.Name())
		assert.Equal(t, "CloudSyncJobControl", i.ImplName())
	})
}

func TestImplementation_Enumerate(t *testing.T) {
	t.Run("persists the job id and description found on the discovery record", func(t *testing.T) {
		md := &mocks.MockDevice{}
		defer md.AssertExpectations(t)

		s := memory.New()

		i := NewJobControl(nil)
		i.Init(md, s)

		attached, err := i.Enumerate(context.TODO(), map[string]any{
			implcaps.DataKeyRecord: map[string]any{"id": float64(7), "description": "offsite"},
		})
		assert.True(t, attached)
		assert.NoError(t, err)

		id, ok := s.Int(JobIDKey)
		assert.True(t, ok)
		assert.Equal(t, 7, int(id))

		description, ok := s.String(DescriptionKey)
		assert.True(t, ok)
		assert.Equal(t, "offsite", description)
	})

	t.Run("rejects a record which has no job id", func(t *testing.T) {
		md := &mocks.MockDevice{}
		defer md.AssertExpectations(t)

		i := NewJobControl(nil)
		i.Init(md, memory.New())

		attached, err := i.Enumerate(context.TODO(), map[string]any{
			implcaps.DataKeyRecord: map[string]any{"description": "offsite"},
		})
		assert.False(t, attached)
		assert.Error(t, err)
	})
}

func TestImplementation_Load(t *testing.T) {
	t.Run("restores the persisted job id and description", func(t *testing.T) {
		md := &mocks.MockDevice{}
		defer md.AssertExpectations(t)

		s := memory.New()
		s.Set(JobIDKey, int64(7))
		s.Set(DescriptionKey, "offsite")

		i := NewJobControl(nil)
		i.Init(md, s)

		loaded, err := i.Load(context.TODO())
		assert.True(t, loaded)
		assert.NoError(t, err)
		assert.Equal(t, 7, i.jobID)
		assert.Equal(t, "offsite", i.description)
	})

	t.Run("errors if no job id has been persisted", func(t *testing.T) {
		md := &mocks.MockDevice{}
		defer md.AssertExpectations(t)

		i := NewJobControl(nil)
		i.Init(md, memory.New())

		loaded, err := i.Load(context.TODO())
		assert.False(t, loaded)
		assert.Error(t, err)
	})
}

func TestImplementation_Start(t *testing.T) {
	t.Run("queries the current job state and starts an idle job", func(t *testing.T) {
		mr := &middleware.MockRequester{}
		defer mr.AssertExpectations(t)

		mr.On("Call", mock.Anything, middleware.CloudSyncQuery, middleware.Filter("id", "=", 7)).Return(queryResponse("SUCCESS"), nil).Once()
		mr.On("Call", mock.Anything, middleware.CloudSyncSync, []any{7}).Return(map[string]any{"id": 90}, nil).Once()

		mzi := &implcaps.MockTNDAInterface{}
		defer mzi.AssertExpectations(t)

		mzi.On("Requester").Return(mr)

		i := NewJobControl(mzi)
		i.jobID = 7
		i.description = "offsite"

		assert.NoError(t, i.Start(context.TODO()))
	})

	t.Run("warns and leaves an in flight job untouched", func(t *testing.T) {
		for _, state := range []string{"WAITING", "RUNNING"} {
			mr := &middleware.MockRequester{}
			defer mr.AssertExpectations(t)

			mr.On("Call", mock.Anything, middleware.CloudSyncQuery, middleware.Filter("id", "=", 7)).Return(queryResponse(state), nil).Once()

			mzi := &implcaps.MockTNDAInterface{}
			defer mzi.AssertExpectations(t)

			mzi.On("Requester").Return(mr)
			mzi.On("Logger").Return(logwrap.New(discard.Discard()))

			i := NewJobControl(mzi)
			i.jobID = 7

			assert.NoError(t, i.Start(context.TODO()))
			mr.AssertNotCalled(t, "Call", mock.Anything, middleware.CloudSyncSync, mock.Anything)
		}
	})

	t.Run("logs an error and does nothing if the response carries no job state", func(t *testing.T) {
		mr := &middleware.MockRequester{}
		defer mr.AssertExpectations(t)

		mr.On("Call", mock.Anything, middleware.CloudSyncQuery, middleware.Filter("id", "=", 7)).Return([]any{map[string]any{"id": 7}}, nil).Once()

		mzi := &implcaps.MockTNDAInterface{}
		defer mzi.AssertExpectations(t)

		mzi.On("Requester").Return(mr)
		mzi.On("Logger").Return(logwrap.New(discard.Discard()))

		i := NewJobControl(mzi)
		i.jobID = 7

		assert.NoError(t, i.Start(context.TODO()))
		mr.AssertNotCalled(t, "Call", mock.Anything, middleware.CloudSyncSync, mock.Anything)
	})

	t.Run("returns a transport error from the state query", func(t *testing.T) {
		mr := &middleware.MockRequester{}
		defer mr.AssertExpectations(t)

		mr.On("Call", mock.Anything, middleware.CloudSyncQuery, middleware.Filter("id", "=", 7)).Return(nil, io.EOF).Once()

		mzi := &implcaps.MockTNDAInterface{}
		defer mzi.AssertExpectations(t)

		mzi.On("Requester").Return(mr)

		i := NewJobControl(mzi)
		i.jobID = 7

		assert.ErrorIs(t, i.Start(context.TODO()), io.EOF)
		mr.AssertNotCalled(t, "Call", mock.Anything, middleware.CloudSyncSync, mock.Anything)
	})

	t.Run("returns a transport error from the sync request", func(t *testing.T) {
		mr := &middleware.MockRequester{}
		defer mr.AssertExpectations(t)

		mr.On("Call", mock.Anything, middleware.CloudSyncQuery, middleware.Filter("id", "=", 7)).Return(queryResponse("SUCCESS"), nil).Once()
		mr.On("Call", mock.Anything, middleware.CloudSyncSync, []any{7}).Return(nil, io.EOF).Once()

		mzi := &implcaps.MockTNDAInterface{}
		defer mzi.AssertExpectations(t)

		mzi.On("Requester").Return(mr)

		i := NewJobControl(mzi)
		i.jobID = 7

		assert.ErrorIs(t, i.Start(context.TODO()), io.EOF)
	})
}

func TestImplementation_Stop(t *testing.T) {
	t.Run("queries the current job state and aborts an in flight job", func(t *testing.T) {
		for _, state := range []string{"WAITING", "RUNNING"} {
			mr := &middleware.MockRequester{}
			defer mr.AssertExpectations(t)

			mr.On("Call", mock.Anything, middleware.CloudSyncQuery, middleware.Filter("id", "=", 7)).Return(queryResponse(state), nil).Once()
			mr.On("Call", mock.Anything, middleware.CloudSyncAbort, []any{7}).Return(true, nil).Once()

			mzi := &implcaps.MockTNDAInterface{}
			defer mzi.AssertExpectations(t)

			mzi.On("Requester").Return(mr)

			i := NewJobControl(mzi)
			i.jobID = 7
			i.description = "offsite"

			assert.NoError(t, i.Stop(context.TODO()))
		}
	})

	t.Run("warns and leaves an idle job untouched", func(t *testing.T) {
		mr := &middleware.MockRequester{}
		defer mr.AssertExpectations(t)

		mr.On("Call", mock.Anything, middleware.CloudSyncQuery, middleware.Filter("id", "=", 7)).Return(queryResponse("SUCCESS"), nil).Once()

		mzi := &implcaps.MockTNDAInterface{}
		defer mzi.AssertExpectations(t)

		mzi.On("Requester").Return(mr)
		mzi.On("Logger").Return(logwrap.New(discard.Discard()))

		i := NewJobControl(mzi)
		i.jobID = 7

		assert.NoError(t, i.Stop(context.TODO()))
		mr.AssertNotCalled(t, "Call", mock.Anything, middleware.CloudSyncAbort, mock.Anything)
	})

	t.Run("logs an error and does nothing if the response carries no job state", func(t *testing.T) {
		mr := &middleware.MockRequester{}
		defer mr.AssertExpectations(t)

		mr.On("Call", mock.Anything, middleware.CloudSyncQuery, middleware.Filter("id", "=", 7)).Return([]any{}, nil).Once()

		mzi := &implcaps.MockTNDAInterface{}
		defer mzi.AssertExpectations(t)

		mzi.On("Requester").Return(mr)
		mzi.On("Logger").Return(logwrap.New(discard.Discard()))

		i := NewJobControl(mzi)
		i.jobID = 7

		assert.NoError(t, i.Stop(context.TODO()))
		mr.AssertNotCalled(t, "Call", mock.Anything, middleware.CloudSyncAbort, mock.Anything)
	})

	t.Run("returns a transport error from the abort request", func(t *testing.T) {
		mr := &middleware.MockRequester{}
		defer mr.AssertExpectations(t)

		mr.On("Call", mock.Anything, middleware.CloudSyncQuery, middleware.Filter("id", "=", 7)).Return(queryResponse("RUNNING"), nil).Once()
		mr.On("Call", mock.Anything, middleware.CloudSyncAbort, []any{7}).Return(nil, io.EOF).Once()

		mzi := &implcaps.MockTNDAInterface{}
		defer mzi.AssertExpectations(t)

		mzi.On("Requester").Return(mr)

		i := NewJobControl(mzi)
		i.jobID = 7

		assert.ErrorIs(t, i.Stop(context.TODO()), io.EOF)
	})
}
