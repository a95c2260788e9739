package tnda

import (
	"context"
	"github.com/shimmeringbee/persistence/impl/memory"
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func Test_gateway_ReadEvent(t *testing.T) {
	t.Run("returns an event which has been sent", func(t *testing.T) {
		g := New(context.Background(), memory.New(), nil, nil).(*TNDA)

		g.sendEvent("event")

		e, err := g.ReadEvent(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, "event", e)
	})

	t.Run("returns an error if the context expires before an event arrives", func(t *testing.T) {
		g := New(context.Background(), memory.New(), nil, nil).(*TNDA)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
		defer cancel()

		_, err := g.ReadEvent(ctx)
		assert.Error(t, err)
	})
}
