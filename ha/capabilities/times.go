package capabilities

import (
	"context"
	"time"
)

// WithLastUpdateTime is implemented by capabilities which track when their
// state was last refreshed from the appliance.
type WithLastUpdateTime interface {
	LastUpdateTime(ctx context.Context) (time.Time, error)
}

// WithLastChangeTime is implemented by capabilities which track when their
// state last changed value.
type WithLastChangeTime interface {
	LastChangeTime(ctx context.Context) (time.Time, error)
}
