package capabilities

import "context"

// SystemControl offers power actions against the appliance. Both calls are
// fire and forget, the response payload is not inspected and an error is only
// returned if the remote call itself fails.
type SystemControl interface {
	// Restart reboots the appliance.
	Restart(ctx context.Context) error

	// Shutdown powers the appliance off.
	Shutdown(ctx context.Context) error
}
