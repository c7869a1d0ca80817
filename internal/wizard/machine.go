package wizard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/qmuntal/stateless"

	"tixground/pkg/logger"
)

// Step is the active wizard step. Exactly one is active at a time and
// transitions are strictly forward, except the reset to login on session
// loss or successful booking.
type Step string

const (
	StepLogin     Step = "login"
	StepDate      Step = "date"
	StepSeat      Step = "seat"
	StepChallenge Step = "challenge"
)

const (
	triggerSessionAccepted  = "sessionAccepted"
	triggerDateChosen       = "dateChosen"
	triggerSessionLost      = "sessionLost"
	triggerSeatConfirmed    = "seatConfirmed"
	triggerBookingConfirmed = "bookingConfirmed"
	triggerBookingRejected  = "bookingRejected"
)

// Config carries the wizard's collaborators. Clock and Notify may be nil;
// a real clock and a discarding notifier are substituted.
type Config struct {
	Client    *Client
	Clock     Clock
	LoadDelay time.Duration
	Logger    *logger.Logger

	// Notify receives every user-visible message (failure reasons,
	// booking confirmation).
	Notify func(message string)
}

// Wizard is the booking orchestrator: a state machine over the four steps,
// composed with the payment overlay as a transient attempt while the
// challenge step is active. Every trigger, including timer callbacks and
// sentinel delivery, is serialized through one mutex, so two transitions
// can never interleave.
type Wizard struct {
	mu sync.Mutex

	fsm       *stateless.StateMachine
	catalog   *SeatCatalog
	selection *SelectionState
	challenge *ChallengeState
	handshake *PaymentHandshake
	client    *Client
	log       *logger.Logger
	notify    func(string)
}

func New(cfg Config) *Wizard {
	log := cfg.Logger
	if log == nil {
		log = logger.GetDefault()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = NewRealClock()
	}
	notify := cfg.Notify
	if notify == nil {
		notify = func(string) {}
	}

	w := &Wizard{
		catalog:   NewSeatCatalog(),
		selection: NewSelectionState(),
		challenge: NewChallengeState(),
		client:    cfg.Client,
		log:       log,
		notify:    notify,
	}

	// Timer callbacks fire on their own goroutine; routing them through
	// the wizard mutex keeps every transition serialized.
	w.handshake = NewPaymentHandshake(
		&lockedClock{clock: clock, mu: &w.mu},
		cfg.LoadDelay,
		log,
		nil,
		w.finalize,
	)

	w.fsm = stateless.NewStateMachine(StepLogin)

	w.fsm.Configure(StepLogin).
		Permit(triggerSessionAccepted, StepDate).
		OnEntry(func(_ context.Context, _ ...any) error {
			w.reset()
			return nil
		})

	w.fsm.Configure(StepDate).
		Permit(triggerDateChosen, StepSeat).
		Permit(triggerSessionLost, StepLogin)

	w.fsm.Configure(StepSeat).
		Permit(triggerSeatConfirmed, StepChallenge, func(_ context.Context, _ ...any) bool {
			return w.selection.Valid()
		}).
		Permit(triggerSessionLost, StepLogin)

	w.fsm.Configure(StepChallenge).
		Permit(triggerBookingConfirmed, StepLogin).
		PermitReentry(triggerBookingRejected).
		Permit(triggerSessionLost, StepLogin).
		OnEntry(func(_ context.Context, _ ...any) error {
			// Both entry paths, from the seat step and re-entry after a
			// rejected finalize, need a fresh image and an empty response.
			w.challenge.Regenerate()
			w.challenge.ClearResponse()
			return nil
		})

	w.fsm.OnTransitioned(func(ctx context.Context, t stateless.Transition) {
		w.log.LogStepTransition(ctx, toStepString(t.Source), toStepString(t.Destination), toTriggerString(t.Trigger))
	})

	return w
}

// Step returns the active wizard step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fsm.MustState().(Step)
}

// Overlay returns the payment overlay sub-state.
func (w *Wizard) Overlay() OverlayState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.handshake.State()
}

// Dates returns the fetched date labels.
func (w *Wizard) Dates() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.catalog.Dates()
}

// Seats returns the fetched seat snapshot.
func (w *Wizard) Seats() []Seat {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.catalog.Seats()
}

// SelectedSeat returns the current selection, empty when none.
func (w *Wizard) SelectedSeat() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selection.SeatID()
}

// ChallengeRef returns the current challenge image reference.
func (w *Wizard) ChallengeRef() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.challenge.ImageRef()
}

// Login performs the session check. Failure reports without changing
// state; success advances to the date step and fetches the date list. A
// failed date fetch immediately demotes the session.
func (w *Wizard) Login(ctx context.Context, username, password string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsm.MustState().(Step) != StepLogin {
		return ErrValidationBlocked
	}

	if err := w.client.Login(ctx, username, password); err != nil {
		w.notify("Login failed")
		return err
	}

	if err := w.fsm.FireCtx(ctx, triggerSessionAccepted); err != nil {
		return err
	}

	dates, err := w.client.Dates(ctx)
	if err != nil {
		return w.sessionLost(ctx)
	}
	w.catalog.SetDates(dates)
	return nil
}

// ChooseDate picks one of the fetched date labels and fetches the seat
// snapshot for it.
func (w *Wizard) ChooseDate(ctx context.Context, label string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsm.MustState().(Step) != StepDate || !w.catalog.HasDate(label) {
		return ErrValidationBlocked
	}

	if err := w.fsm.FireCtx(ctx, triggerDateChosen); err != nil {
		return err
	}

	seats, err := w.client.Seats(ctx)
	if err != nil {
		return w.sessionLost(ctx)
	}
	w.catalog.SetSeats(seats)
	w.selection.Clear()
	return nil
}

// SelectSeat records a seat pick. Unknown and booked seats are rejected
// with no state change.
func (w *Wizard) SelectSeat(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsm.MustState().(Step) != StepSeat {
		return ErrValidationBlocked
	}

	seat, ok := w.catalog.Seat(id)
	if !ok {
		return ErrValidationBlocked
	}
	return w.selection.Select(seat)
}

// Next confirms the seat pick and advances to the challenge step.
func (w *Wizard) Next(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsm.MustState().(Step) != StepSeat || !w.selection.Valid() {
		return ErrValidationBlocked
	}
	return w.fsm.FireCtx(ctx, triggerSeatConfirmed)
}

// SetResponse records the typed challenge response.
func (w *Wizard) SetResponse(response string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsm.MustState().(Step) != StepChallenge {
		return ErrValidationBlocked
	}
	w.challenge.SetResponse(response)
	return nil
}

// Pay opens the payment overlay. The guard is local and load-bearing: no
// network call happens unless a seat is selected and the challenge
// response is non-empty.
func (w *Wizard) Pay() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsm.MustState().(Step) != StepChallenge || !w.selection.Valid() || w.challenge.Response() == "" {
		w.notify("Select a seat and type the challenge response first")
		return ErrValidationBlocked
	}
	return w.handshake.Open()
}

// CancelPayment closes the overlay without side effects; selection and
// challenge response survive for a retry.
func (w *Wizard) CancelPayment() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handshake.Cancel()
}

// HandleSentinel feeds one broadcast value from the payment surface into
// the handshake. Safe to call from any goroutine, any number of times.
func (w *Wizard) HandleSentinel(value string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handshake.Receive(value)
}

// finalize issues the single booking call for the confirmed attempt.
// Called with the wizard mutex held, via the handshake confirm path.
func (w *Wizard) finalize() {
	ctx := context.Background()

	err := w.client.Book(ctx, w.selection.SeatID(), w.challenge.Response())
	if err == nil {
		w.notify("Booking confirmed")
		w.log.LogBookingConfirmed(ctx, w.selection.SeatID(), "")
		if fireErr := w.fsm.FireCtx(ctx, triggerBookingConfirmed); fireErr != nil {
			w.log.WithError(fireErr).Error("failed to reset after confirmed booking")
		}
		return
	}

	var rejected *BookingRejectedError
	if errors.As(err, &rejected) {
		w.notify(rejected.Reason)
		w.log.LogBookingRejected(ctx, w.selection.SeatID(), rejected.Reason)
		if fireErr := w.fsm.FireCtx(ctx, triggerBookingRejected); fireErr != nil {
			w.log.WithError(fireErr).Error("failed to re-enter challenge after rejected booking")
		}
		return
	}

	// Transport failure: report and leave the challenge state untouched so
	// the user can retry the attempt.
	w.notify("Booking request failed, try again")
	w.log.WithError(err).Error("finalize call failed")
}

// sessionLost demotes the wizard to the login step and discards all
// downstream state. Assumes the mutex is held.
func (w *Wizard) sessionLost(ctx context.Context) error {
	w.notify("Session expired, log in again")
	if err := w.fsm.FireCtx(ctx, triggerSessionLost); err != nil {
		return err
	}
	return ErrSessionExpired
}

// reset clears everything the session accumulated. Runs on entry to the
// login step. Assumes the mutex is held.
func (w *Wizard) reset() {
	w.catalog.Reset()
	w.selection.Clear()
	w.challenge.Reset()
	w.handshake.Cancel()
}

// lockedClock wraps a Clock so scheduled callbacks run under the wizard
// mutex, keeping timer-driven transitions serialized with user triggers.
type lockedClock struct {
	clock Clock
	mu    *sync.Mutex
}

func (c *lockedClock) AfterFunc(d time.Duration, f func()) Timer {
	return c.clock.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		f()
	})
}

func toStepString(s stateless.State) string {
	if step, ok := s.(Step); ok {
		return string(step)
	}
	return ""
}

func toTriggerString(t stateless.Trigger) string {
	if trigger, ok := t.(string); ok {
		return trigger
	}
	return ""
}
