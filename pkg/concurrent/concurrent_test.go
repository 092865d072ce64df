package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEachVisitsEveryItem(t *testing.T) {
	for _, limit := range []int{0, 1, 4} {
		var sum atomic.Int64
		items := []int{1, 2, 3, 4, 5}

		err := ForEach(context.Background(), items, limit, func(_ context.Context, v int) error {
			sum.Add(int64(v))
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, int64(15), sum.Load(), "limit %d", limit)
	}
}

func TestForEachRespectsLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	items := make([]int, 32)

	err := ForEach(context.Background(), items, 3, func(_ context.Context, _ int) error {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		inFlight.Add(-1)
		return nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestForEachReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	err := ForEach(context.Background(), []int{1, 2, 3}, 2, func(_ context.Context, v int) error {
		if v == 2 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
}

func TestForEachStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := ForEach(ctx, []int{1}, 1, func(context.Context, int) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestSafeRecoversPanics(t *testing.T) {
	fn := Safe(func(context.Context, string) error { panic("bad structure") })

	err := fn(context.Background(), "x")
	var perr *PanicError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "bad structure", perr.Value)
}
