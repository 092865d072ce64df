package bus

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicPublishSubscribe(t *testing.T) {
	b := New()
	var got Event
	_, err := b.Subscribe("durability.pass", func(e Event) error {
		got = e
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, b.Publish(NewEvent("durability.pass", "tester", 123, nil)))
	require.NotNil(t, got)
	assert.Equal(t, 123, got.Data())
	assert.Equal(t, "tester", got.Source())
}

func TestSubscribeRejectsNilHandler(t *testing.T) {
	_, err := New().Subscribe("x", nil)
	require.Error(t, err)
}

func TestCancelStopsDelivery(t *testing.T) {
	b := New()
	count := 0
	sub, err := b.Subscribe("ev", func(e Event) error { count++; return nil })
	require.NoError(t, err)

	require.NoError(t, b.Publish(NewEvent("ev", "s", nil, nil)))
	require.NoError(t, b.Unsubscribe(sub))
	require.NoError(t, sub.Cancel())
	require.NoError(t, b.Publish(NewEvent("ev", "s", nil, nil)))

	assert.Equal(t, 1, count)
	assert.False(t, sub.IsActive())
}

func TestPublishJoinsHandlerErrors(t *testing.T) {
	b := New()
	errA := errors.New("a")
	errB := errors.New("b")
	_, _ = b.Subscribe("ev", func(Event) error { return errA })
	_, _ = b.Subscribe("ev", func(Event) error { return errB })

	err := b.Publish(NewEvent("ev", "s", nil, nil))
	require.ErrorIs(t, err, errA)
	require.ErrorIs(t, err, errB)
}

func TestHandlerMaySubscribeDuringDelivery(t *testing.T) {
	b := New()
	var late atomic.Int32
	_, err := b.Subscribe("ev", func(Event) error {
		_, err := b.Subscribe("ev", func(Event) error {
			late.Add(1)
			return nil
		})
		return err
	})
	require.NoError(t, err)

	require.NoError(t, b.Publish(NewEvent("ev", "s", nil, nil)))
	assert.Zero(t, late.Load())

	require.NoError(t, b.Publish(NewEvent("ev", "s", nil, nil)))
	assert.Equal(t, int32(1), late.Load())
}

func TestConcurrentPublishAndCancel(t *testing.T) {
	b := New()
	var delivered atomic.Int64
	subs := make([]Subscription, 0, 8)
	for i := 0; i < 8; i++ {
		sub, err := b.Subscribe("ev", func(Event) error {
			delivered.Add(1)
			return nil
		})
		require.NoError(t, err)
		subs = append(subs, sub)
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = b.Publish(NewEvent("ev", "s", j, nil))
			}
		}()
	}
	for _, sub := range subs {
		require.NoError(t, b.Unsubscribe(sub))
	}
	wg.Wait()

	before := delivered.Load()
	require.NoError(t, b.Publish(NewEvent("ev", "s", nil, nil)))
	assert.Equal(t, before, delivered.Load())
}
