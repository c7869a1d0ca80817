package wizard

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tixground/internal/payment"
	"tixground/pkg/logger"
)

type fakeTimer struct {
	mu      sync.Mutex
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

type scheduled struct {
	d     time.Duration
	f     func()
	timer *fakeTimer
}

// fakeClock collects scheduled callbacks and fires them on demand so tests
// advance virtual time instead of sleeping.
type fakeClock struct {
	mu      sync.Mutex
	pending []scheduled
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{}
	c.pending = append(c.pending, scheduled{d: d, f: f, timer: t})
	return t
}

// Fire runs every pending callback that has not been stopped.
func (c *fakeClock) Fire() {
	c.mu.Lock()
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()

	for _, s := range pending {
		s.timer.mu.Lock()
		stopped := s.timer.stopped
		s.timer.mu.Unlock()
		if !stopped {
			s.f()
		}
	}
}

func newTestHandshake(t *testing.T, clock Clock, onConfirm func()) *PaymentHandshake {
	t.Helper()
	return NewPaymentHandshake(clock, 1500*time.Millisecond, logger.GetDefault(), nil, onConfirm)
}

func TestHandshakeOpensThroughLoadingToReady(t *testing.T) {
	clock := &fakeClock{}
	h := newTestHandshake(t, clock, nil)

	require.Equal(t, OverlayClosed, h.State())
	require.NoError(t, h.Open())
	assert.Equal(t, OverlayLoading, h.State())

	clock.Fire()
	assert.Equal(t, OverlayReady, h.State())
}

func TestHandshakeRejectsDoubleOpen(t *testing.T) {
	clock := &fakeClock{}
	h := newTestHandshake(t, clock, nil)

	require.NoError(t, h.Open())
	assert.Error(t, h.Open())
}

func TestHandshakeSentinelConfirmsExactlyOnce(t *testing.T) {
	clock := &fakeClock{}
	confirmed := 0
	h := newTestHandshake(t, clock, func() { confirmed++ })

	require.NoError(t, h.Open())
	clock.Fire()
	require.Equal(t, OverlayReady, h.State())

	h.Receive(payment.Sentinel)
	assert.Equal(t, OverlayClosed, h.State())
	assert.Equal(t, 1, confirmed)

	// Duplicates after dispatch are no-ops
	h.Receive(payment.Sentinel)
	h.Receive(payment.Sentinel)
	assert.Equal(t, 1, confirmed)
}

func TestHandshakeIgnoresSentinelWhileClosed(t *testing.T) {
	clock := &fakeClock{}
	confirmed := 0
	h := newTestHandshake(t, clock, func() { confirmed++ })

	h.Receive(payment.Sentinel)
	assert.Equal(t, 0, confirmed)
	assert.Equal(t, OverlayClosed, h.State())
}

func TestHandshakeIgnoresSentinelWhileLoading(t *testing.T) {
	clock := &fakeClock{}
	confirmed := 0
	h := newTestHandshake(t, clock, func() { confirmed++ })

	require.NoError(t, h.Open())
	h.Receive(payment.Sentinel)
	assert.Equal(t, 0, confirmed)
	assert.Equal(t, OverlayLoading, h.State())
}

func TestHandshakeIgnoresNonSentinelValues(t *testing.T) {
	clock := &fakeClock{}
	confirmed := 0
	h := newTestHandshake(t, clock, func() { confirmed++ })

	require.NoError(t, h.Open())
	clock.Fire()

	h.Receive("PAYMENT_FAILED")
	h.Receive("")
	assert.Equal(t, 0, confirmed)
	assert.Equal(t, OverlayReady, h.State())
}

func TestHandshakeCancelDuringLoading(t *testing.T) {
	clock := &fakeClock{}
	confirmed := 0
	h := newTestHandshake(t, clock, func() { confirmed++ })

	require.NoError(t, h.Open())
	h.Cancel()
	assert.Equal(t, OverlayClosed, h.State())

	// A stale timer firing after cancel must not resurrect the overlay
	clock.Fire()
	assert.Equal(t, OverlayClosed, h.State())
	assert.Equal(t, 0, confirmed)
}

func TestHandshakeCancelDuringReady(t *testing.T) {
	clock := &fakeClock{}
	confirmed := 0
	h := newTestHandshake(t, clock, func() { confirmed++ })

	require.NoError(t, h.Open())
	clock.Fire()
	require.Equal(t, OverlayReady, h.State())

	h.Cancel()
	assert.Equal(t, OverlayClosed, h.State())

	h.Receive(payment.Sentinel)
	assert.Equal(t, 0, confirmed)
}

func TestHandshakeReopensAfterCancel(t *testing.T) {
	clock := &fakeClock{}
	confirmed := 0
	h := newTestHandshake(t, clock, func() { confirmed++ })

	require.NoError(t, h.Open())
	h.Cancel()

	require.NoError(t, h.Open())
	clock.Fire()
	require.Equal(t, OverlayReady, h.State())

	h.Receive(payment.Sentinel)
	assert.Equal(t, 1, confirmed)
}
