package capabilities

import "context"

// Refresh is a gateway level capability which forces an immediate refresh of
// the gateway's cached appliance state, rather than waiting for the next
// scheduled poll.
type Refresh interface {
	// Refresh fetches fresh state for all categories, blocking until each
	// has completed or failed. The first error encountered is returned,
	// categories whose refresh is already in progress are skipped.
	Refresh(ctx context.Context) error
}
