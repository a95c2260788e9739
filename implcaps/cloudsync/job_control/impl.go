package job_control

import (
	"context"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/persistence"
	"github.com/shimmeringbee/tnda/ha"
	"github.com/shimmeringbee/tnda/ha/capabilities"
	"github.com/shimmeringbee/tnda/implcaps"
	"github.com/shimmeringbee/tnda/middleware"
)

var _ capabilities.CloudSyncControl = (*Implementation)(nil)
var _ implcaps.TNDACapability = (*Implementation)(nil)

const (
	JobIDKey       = "JobID"
	DescriptionKey = "Description"
)

// States in which the middleware considers a cloud sync job to be in
// flight, sync and abort requests are refused while in one of these.
var activeStates = map[string]bool{
	"WAITING": true,
	"RUNNING": true,
}

func NewJobControl(zi implcaps.TNDAInterface) *Implementation {
	return &Implementation{zi: zi}
}

type Implementation struct {
	s  persistence.Section
	d  ha.Device
	zi implcaps.TNDAInterface

	jobID       int
	description string
}

func (i *Implementation) Capability() ha.Capability {
	return capabilities.CloudSyncControlFlag
}

func (i *Implementation) Name() string {
	return capabilities.StandardNames[capabilities.CloudSyncControlFlag]
}

func (i *Implementation) Init(d ha.Device, s persistence.Section) {
	i.d = d
	i.s = s
}

func (i *Implementation) Load(_ context.Context) (bool, error) {
	v, ok := i.s.Int(JobIDKey)
	if !ok {
		return false, fmt.Errorf("job control missing config parameter: %s", JobIDKey)
	}

	i.jobID = int(v)
	i.description, _ = i.s.String(DescriptionKey)

	return true, nil
}

func (i *Implementation) Enumerate(_ context.Context, m map[string]any) (bool, error) {
	record := implcaps.Get(m, implcaps.DataKeyRecord, map[string]any(nil))

	id, ok := numericID(record["id"])
	if !ok {
		return false, fmt.Errorf("job control missing record field: id")
	}

	i.jobID = id
	i.description = implcaps.Get(record, "description", "")

	i.s.Set(JobIDKey, int64(i.jobID))
	i.s.Set(DescriptionKey, i.description)

	return true, nil
}

func (i *Implementation) Detach(_ context.Context, _ implcaps.DetachType) error {
	return nil
}

func (i *Implementation) ImplName() string {
	return "CloudSyncJobControl"
}

func (i *Implementation) Start(ctx context.Context) error {
	state, ok, err := i.jobState(ctx)
	if err != nil {
		return err
	}

	if !ok {
		logger := i.zi.Logger()
		logger.Error(ctx, "Cloud sync job state invalid.", logwrap.Datum("JobID", i.jobID), logwrap.Datum("Description", i.description))
		return nil
	}

	if activeStates[state] {
		logger := i.zi.Logger()
		logger.Warn(ctx, "Cloud sync job already running.", logwrap.Datum("JobID", i.jobID), logwrap.Datum("Description", i.description))
		return nil
	}

	_, err = i.zi.Requester().Call(ctx, middleware.CloudSyncSync, []any{i.jobID})
	return err
}

func (i *Implementation) Stop(ctx context.Context) error {
	state, ok, err := i.jobState(ctx)
	if err != nil {
		return err
	}

	if !ok {
		logger := i.zi.Logger()
		logger.Error(ctx, "Cloud sync job state invalid.", logwrap.Datum("JobID", i.jobID), logwrap.Datum("Description", i.description))
		return nil
	}

	if !activeStates[state] {
		logger := i.zi.Logger()
		logger.Warn(ctx, "Cloud sync job not running.", logwrap.Datum("JobID", i.jobID), logwrap.Datum("Description", i.description))
		return nil
	}

	_, err = i.zi.Requester().Call(ctx, middleware.CloudSyncAbort, []any{i.jobID})
	return err
}

// jobState fetches the current state of the job from the middleware, never
// trusting the cached record. ok is false if the response does not carry a
// job state, which happens while the middleware is reloading task metadata.
func (i *Implementation) jobState(ctx context.Context) (string, bool, error) {
	res, err := i.zi.Requester().Call(ctx, middleware.CloudSyncQuery, middleware.Filter("id", "=", i.jobID))
	if err != nil {
		return "", false, err
	}

	results, ok := res.([]any)
	if !ok || len(results) == 0 {
		return "", false, nil
	}

	first, ok := results[0].(map[string]any)
	if !ok {
		return "", false, nil
	}

	job, ok := first["job"].(map[string]any)
	if !ok {
		return "", false, nil
	}

	state, ok := job["state"].(string)
	return state, ok, nil
}

func numericID(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	default:
		return 0, false
	}
}
