package tnda

import (
	"context"
)

func (z *TNDA) sendEvent(e any) {
	z.events <- e
}

func (z *TNDA) ReadEvent(ctx context.Context) (any, error) {
	select {
	case e := <-z.events:
		return e, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
