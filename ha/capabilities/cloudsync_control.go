package capabilities

import "context"

// CloudSyncControl offers start and stop of a cloud sync job. Both operations
// re-query the live job state before mutating it, the cached record is never
// trusted for the guard. Redundant requests and unusable job records log and
// return nil rather than erroring.
type CloudSyncControl interface {
	// Start begins the job unless it is already waiting or running.
	Start(ctx context.Context) error

	// Stop aborts the job if it is currently waiting or running.
	Stop(ctx context.Context) error
}
