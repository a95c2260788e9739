// Package middleware defines the seam between the gateway and a TrueNAS
// middleware client. The gateway issues calls by method name and positional or
// keyword parameters, transports implementing Requester live outside this
// module.
package middleware

import (
	"context"
)

// Method names of the middleware RPCs the gateway issues.
const (
	SystemInfo         = "system.info"
	SystemReboot       = "system.reboot"
	SystemShutdown     = "system.shutdown"
	PoolDatasetQuery   = "pool.dataset.query"
	PoolSnapshotCreate = "pool.snapshot.create"
	ZFSSnapshotCreate  = "zfs.snapshot.create"
	CloudSyncQuery     = "cloudsync.query"
	CloudSyncSync      = "cloudsync.sync"
	CloudSyncAbort     = "cloudsync.abort"
)

// Requester performs a single remote procedure call against the middleware.
// Implementations are expected to be safe for concurrent use. Params is either
// a positional []any or a map[string]any payload, depending on the method, or
// nil when the method takes none. The returned value is the decoded response,
// callers which do not document otherwise ignore it.
type Requester interface {
	Call(ctx context.Context, method string, params any) (any, error)
}

// Filter builds a single predicate query filter in the middleware's query
// list format, [[[field, op, value]]].
func Filter(field string, op string, value any) []any {
	return []any{[]any{[]any{field, op, value}}}
}
