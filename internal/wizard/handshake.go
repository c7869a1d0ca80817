package wizard

import (
	"errors"
	"time"

	"tixground/internal/payment"
	"tixground/pkg/logger"
)

// OverlayState is a sub-state of the payment overlay, orthogonal to the
// wizard step. The overlay is only ever open while a booking attempt is in
// flight on the challenge step.
type OverlayState string

const (
	OverlayClosed  OverlayState = "closed"
	OverlayLoading OverlayState = "loading"
	OverlayReady   OverlayState = "ready"
)

// allowedOverlayTransitions defines the valid overlay state transitions.
// The key is the current state, the value the set of valid targets.
var allowedOverlayTransitions = map[OverlayState][]OverlayState{
	OverlayClosed:  {OverlayLoading},
	OverlayLoading: {OverlayReady, OverlayClosed},
	OverlayReady:   {OverlayClosed},
}

func canTransitionOverlay(from, to OverlayState) bool {
	for _, s := range allowedOverlayTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

var errOverlayOpen = errors.New("payment overlay already open")

// PaymentHandshake models the one-shot confirmation protocol with the
// embedded payment surface. Opening schedules a fixed-delay transition to
// ready; the sentinel is actionable at most once per attempt, and only
// while the overlay is ready. The confirm callback reads live orchestrator
// state at fire time, so nothing needs re-registration when selection or
// challenge values change.
type PaymentHandshake struct {
	state      OverlayState
	clock      Clock
	delay      time.Duration
	timer      Timer
	dispatched bool
	attempt    uint64

	onReady   func()
	onConfirm func()
	log       *logger.Logger
}

// NewPaymentHandshake builds a closed handshake. onReady and onConfirm may
// be nil; onConfirm is invoked exactly once per attempt when the sentinel
// arrives while the overlay is ready.
func NewPaymentHandshake(clock Clock, delay time.Duration, log *logger.Logger, onReady, onConfirm func()) *PaymentHandshake {
	return &PaymentHandshake{
		state:     OverlayClosed,
		clock:     clock,
		delay:     delay,
		log:       log,
		onReady:   onReady,
		onConfirm: onConfirm,
	}
}

func (h *PaymentHandshake) State() OverlayState {
	return h.state
}

// Open transitions the overlay closed -> loading and schedules the
// loading -> ready transition after the fixed delay. The delay timer is
// tied to the attempt it was scheduled for, so a stale timer firing after
// a cancel cannot resurrect the overlay.
func (h *PaymentHandshake) Open() error {
	if !canTransitionOverlay(h.state, OverlayLoading) {
		return errOverlayOpen
	}

	h.transition(OverlayLoading)
	h.dispatched = false
	h.attempt++
	attempt := h.attempt

	h.timer = h.clock.AfterFunc(h.delay, func() {
		h.ready(attempt)
	})
	return nil
}

func (h *PaymentHandshake) ready(attempt uint64) {
	if attempt != h.attempt || !canTransitionOverlay(h.state, OverlayReady) {
		return
	}
	h.transition(OverlayReady)
	if h.onReady != nil {
		h.onReady()
	}
}

// Cancel closes the overlay from loading or ready without side effects.
// Selection and challenge state are untouched so the user can retry.
func (h *PaymentHandshake) Cancel() {
	if !canTransitionOverlay(h.state, OverlayClosed) {
		return
	}
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	h.attempt++
	h.transition(OverlayClosed)
}

// Receive handles one broadcast value from the payment surface. The
// channel offers no delivery guarantees, so anything other than the
// sentinel, any arrival while the overlay is not ready, and any duplicate
// after finalize has been dispatched for this attempt is a no-op.
func (h *PaymentHandshake) Receive(value string) {
	if value != payment.Sentinel {
		return
	}
	if h.state != OverlayReady || h.dispatched {
		h.log.LogSentinelReceived(false)
		return
	}

	h.dispatched = true
	h.log.LogSentinelReceived(true)
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	h.transition(OverlayClosed)

	if h.onConfirm != nil {
		h.onConfirm()
	}
}

func (h *PaymentHandshake) transition(to OverlayState) {
	h.log.LogOverlayTransition(string(h.state), string(to))
	h.state = to
}
