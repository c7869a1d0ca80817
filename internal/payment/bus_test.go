package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusFansOutToAllSubscribers(t *testing.T) {
	bus := NewBus()

	ch1, cancel1 := bus.Subscribe()
	defer cancel1()
	ch2, cancel2 := bus.Subscribe()
	defer cancel2()

	bus.Publish(Sentinel)

	assert.Equal(t, Sentinel, <-ch1)
	assert.Equal(t, Sentinel, <-ch2)
}

func TestBusPublishWithoutSubscribersIsLost(t *testing.T) {
	bus := NewBus()
	bus.Publish(Sentinel)

	ch, cancel := bus.Subscribe()
	defer cancel()

	select {
	case v := <-ch:
		t.Fatalf("unexpected delivery %q for a pre-subscription publish", v)
	default:
	}
}

func TestBusDeliversDuplicates(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe()
	defer cancel()

	bus.Publish(Sentinel)
	bus.Publish(Sentinel)

	assert.Equal(t, Sentinel, <-ch)
	assert.Equal(t, Sentinel, <-ch)
}

func TestBusDropsOnFullSubscriber(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe()
	defer cancel()

	// Buffer is 4; further publishes must not block
	for i := 0; i < 10; i++ {
		bus.Publish(Sentinel)
	}
	assert.Len(t, ch, 4)
}

func TestBusCancelReleasesSubscriber(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe()

	cancel()
	// Cancel is idempotent
	cancel()

	_, open := <-ch
	require.False(t, open)

	// Publishing after cancel must not panic on the closed channel
	bus.Publish(Sentinel)
}
