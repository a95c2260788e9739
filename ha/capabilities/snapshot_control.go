package capabilities

import "context"

// SnapshotControl offers snapshot creation on a dataset device.
type SnapshotControl interface {
	// Snapshot creates a new snapshot of the dataset, named from the current
	// time. If the primary snapshot API reports an in-band error the legacy
	// API is attempted once with the same payload.
	Snapshot(ctx context.Context) error
}
