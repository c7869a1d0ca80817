package wizard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tixground/internal/payment"
	"tixground/pkg/logger"
)

// stubCollaborator fakes the collaborator HTTP surface for wizard tests.
type stubCollaborator struct {
	server *httptest.Server

	dates []string
	seats []Seat

	loginStatus int
	seatsStatus int

	// bookHandler decides the finalize outcome; swapped per test
	bookHandler func(w http.ResponseWriter, seatID, captcha string)

	bookCalls atomic.Int64
	lastSeat  atomic.Value
	lastCode  atomic.Value
}

func newStubCollaborator(t *testing.T) *stubCollaborator {
	t.Helper()

	s := &stubCollaborator{
		dates:       []string{"2024-05-01", "2024-05-02"},
		seats:       []Seat{{ID: "A1", Row: 1, Col: 1}, {ID: "A2", Row: 1, Col: 2, IsBooked: true}},
		loginStatus: http.StatusOK,
		seatsStatus: http.StatusOK,
		bookHandler: func(w http.ResponseWriter, seatID, captcha string) {
			w.WriteHeader(http.StatusOK)
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(s.loginStatus)
	})
	mux.HandleFunc("/api/dates", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(s.dates)
	})
	mux.HandleFunc("/api/seats", func(w http.ResponseWriter, r *http.Request) {
		if s.seatsStatus != http.StatusOK {
			w.WriteHeader(s.seatsStatus)
			return
		}
		json.NewEncoder(w).Encode(s.seats)
	})
	mux.HandleFunc("/api/book", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			SeatID  string `json:"seat_id"`
			Captcha string `json:"captcha"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		s.bookCalls.Add(1)
		s.lastSeat.Store(body.SeatID)
		s.lastCode.Store(body.Captcha)
		s.bookHandler(w, body.SeatID, body.Captcha)
	})

	s.server = httptest.NewServer(mux)
	t.Cleanup(s.server.Close)
	return s
}

// newTestWizard wires a wizard to the stub with a fake clock and a message
// collector.
func newTestWizard(t *testing.T, stub *stubCollaborator) (*Wizard, *fakeClock, *[]string) {
	t.Helper()

	client, err := NewClient(stub.server.URL)
	require.NoError(t, err)

	clock := &fakeClock{}
	var messages []string
	w := New(Config{
		Client:    client,
		Clock:     clock,
		LoadDelay: 1500 * time.Millisecond,
		Logger:    logger.GetDefault(),
		Notify: func(m string) {
			messages = append(messages, m)
		},
	})
	return w, clock, &messages
}

// advanceToChallenge walks the wizard through login, date, and seat
// selection of "A1".
func advanceToChallenge(t *testing.T, w *Wizard) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, w.Login(ctx, "admin", "1234"))
	require.NoError(t, w.ChooseDate(ctx, "2024-05-01"))
	require.NoError(t, w.SelectSeat("A1"))
	require.NoError(t, w.Next(ctx))
	require.Equal(t, StepChallenge, w.Step())
}

func TestWizardStartsAtLogin(t *testing.T) {
	stub := newStubCollaborator(t)
	w, _, _ := newTestWizard(t, stub)

	assert.Equal(t, StepLogin, w.Step())
	assert.Equal(t, OverlayClosed, w.Overlay())
}

func TestLoginFailureKeepsState(t *testing.T) {
	stub := newStubCollaborator(t)
	stub.loginStatus = http.StatusUnauthorized
	w, _, _ := newTestWizard(t, stub)

	err := w.Login(context.Background(), "admin", "wrong")
	require.ErrorIs(t, err, ErrAuthRejected)
	assert.Equal(t, StepLogin, w.Step())
}

func TestLoginFetchesDates(t *testing.T) {
	stub := newStubCollaborator(t)
	w, _, _ := newTestWizard(t, stub)

	require.NoError(t, w.Login(context.Background(), "admin", "1234"))
	assert.Equal(t, StepDate, w.Step())
	assert.Equal(t, []string{"2024-05-01", "2024-05-02"}, w.Dates())
}

func TestChooseUnknownDateBlocked(t *testing.T) {
	stub := newStubCollaborator(t)
	w, _, _ := newTestWizard(t, stub)

	require.NoError(t, w.Login(context.Background(), "admin", "1234"))
	err := w.ChooseDate(context.Background(), "1999-01-01")
	require.ErrorIs(t, err, ErrValidationBlocked)
	assert.Equal(t, StepDate, w.Step())
}

func TestBookedSeatNeverBecomesSelection(t *testing.T) {
	stub := newStubCollaborator(t)
	w, _, _ := newTestWizard(t, stub)
	ctx := context.Background()

	require.NoError(t, w.Login(ctx, "admin", "1234"))
	require.NoError(t, w.ChooseDate(ctx, "2024-05-01"))

	// A2 is booked: rejected with no selection, however often it is tried
	for i := 0; i < 3; i++ {
		require.ErrorIs(t, w.SelectSeat("A2"), ErrValidationBlocked)
		assert.Empty(t, w.SelectedSeat())
	}

	require.NoError(t, w.SelectSeat("A1"))
	assert.Equal(t, "A1", w.SelectedSeat())

	// Re-selecting the booked seat still cannot displace the pick
	require.ErrorIs(t, w.SelectSeat("A2"), ErrValidationBlocked)
	assert.Equal(t, "A1", w.SelectedSeat())
}

func TestNextWithoutSelectionBlocked(t *testing.T) {
	stub := newStubCollaborator(t)
	w, _, _ := newTestWizard(t, stub)
	ctx := context.Background()

	require.NoError(t, w.Login(ctx, "admin", "1234"))
	require.NoError(t, w.ChooseDate(ctx, "2024-05-01"))

	require.ErrorIs(t, w.Next(ctx), ErrValidationBlocked)
	assert.Equal(t, StepSeat, w.Step())
}

func TestSeatFetchFailureExpiresSession(t *testing.T) {
	stub := newStubCollaborator(t)
	stub.seatsStatus = http.StatusUnauthorized
	w, _, _ := newTestWizard(t, stub)
	ctx := context.Background()

	require.NoError(t, w.Login(ctx, "admin", "1234"))
	err := w.ChooseDate(ctx, "2024-05-01")
	require.ErrorIs(t, err, ErrSessionExpired)

	assert.Equal(t, StepLogin, w.Step())
	assert.Empty(t, w.SelectedSeat())
	assert.Empty(t, w.ChallengeRef())
	assert.Empty(t, w.Dates())
}

func TestChallengeEntryRegeneratesImage(t *testing.T) {
	stub := newStubCollaborator(t)
	w, _, _ := newTestWizard(t, stub)

	advanceToChallenge(t, w)
	assert.NotEmpty(t, w.ChallengeRef())
}

func TestPayBlockedOutsideChallenge(t *testing.T) {
	stub := newStubCollaborator(t)
	w, _, _ := newTestWizard(t, stub)
	ctx := context.Background()

	// login step
	require.ErrorIs(t, w.Pay(), ErrValidationBlocked)

	require.NoError(t, w.Login(ctx, "admin", "1234"))
	require.ErrorIs(t, w.Pay(), ErrValidationBlocked)

	require.NoError(t, w.ChooseDate(ctx, "2024-05-01"))
	require.ErrorIs(t, w.Pay(), ErrValidationBlocked)

	assert.Equal(t, int64(0), stub.bookCalls.Load())
	assert.Equal(t, OverlayClosed, w.Overlay())
}

func TestPayBlockedWithoutResponse(t *testing.T) {
	stub := newStubCollaborator(t)
	w, _, _ := newTestWizard(t, stub)

	advanceToChallenge(t, w)

	require.ErrorIs(t, w.Pay(), ErrValidationBlocked)
	assert.Equal(t, int64(0), stub.bookCalls.Load())
	assert.Equal(t, OverlayClosed, w.Overlay())
}

func TestFullBookingFlow(t *testing.T) {
	stub := newStubCollaborator(t)
	w, clock, messages := newTestWizard(t, stub)

	advanceToChallenge(t, w)
	require.NoError(t, w.SetResponse("123456"))

	require.NoError(t, w.Pay())
	assert.Equal(t, OverlayLoading, w.Overlay())

	clock.Fire()
	assert.Equal(t, OverlayReady, w.Overlay())

	w.HandleSentinel(payment.Sentinel)

	assert.Equal(t, int64(1), stub.bookCalls.Load())
	assert.Equal(t, "A1", stub.lastSeat.Load())
	assert.Equal(t, "123456", stub.lastCode.Load())

	// Full reset back to a fresh session
	assert.Equal(t, StepLogin, w.Step())
	assert.Equal(t, OverlayClosed, w.Overlay())
	assert.Empty(t, w.SelectedSeat())
	assert.Empty(t, w.ChallengeRef())
	assert.Contains(t, *messages, "Booking confirmed")
}

func TestDuplicateSentinelsFinalizeOnce(t *testing.T) {
	stub := newStubCollaborator(t)
	w, clock, _ := newTestWizard(t, stub)

	advanceToChallenge(t, w)
	require.NoError(t, w.SetResponse("123456"))
	require.NoError(t, w.Pay())
	clock.Fire()

	for i := 0; i < 5; i++ {
		w.HandleSentinel(payment.Sentinel)
	}
	assert.Equal(t, int64(1), stub.bookCalls.Load())
}

func TestSentinelBeforeReadyIsNoOp(t *testing.T) {
	stub := newStubCollaborator(t)
	w, clock, _ := newTestWizard(t, stub)

	advanceToChallenge(t, w)
	require.NoError(t, w.SetResponse("123456"))
	require.NoError(t, w.Pay())

	// Overlay still loading: no finalize
	w.HandleSentinel(payment.Sentinel)
	assert.Equal(t, int64(0), stub.bookCalls.Load())
	assert.Equal(t, OverlayLoading, w.Overlay())

	clock.Fire()
	w.HandleSentinel(payment.Sentinel)
	assert.Equal(t, int64(1), stub.bookCalls.Load())
}

func TestRejectedBookingRegeneratesChallenge(t *testing.T) {
	stub := newStubCollaborator(t)
	stub.bookHandler = func(w http.ResponseWriter, seatID, captcha string) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("Invalid captcha"))
	}
	w, clock, messages := newTestWizard(t, stub)

	advanceToChallenge(t, w)
	refBefore := w.ChallengeRef()

	require.NoError(t, w.SetResponse("000000"))
	require.NoError(t, w.Pay())
	clock.Fire()
	w.HandleSentinel(payment.Sentinel)

	assert.Equal(t, int64(1), stub.bookCalls.Load())
	assert.Equal(t, StepChallenge, w.Step())
	assert.Equal(t, OverlayClosed, w.Overlay())
	assert.NotEqual(t, refBefore, w.ChallengeRef())
	assert.Contains(t, *messages, "Invalid captcha")

	// Selection survives so the user retries from the challenge step
	assert.Equal(t, "A1", w.SelectedSeat())
}

func TestCancelledPaymentKeepsAttemptState(t *testing.T) {
	stub := newStubCollaborator(t)
	w, clock, _ := newTestWizard(t, stub)

	advanceToChallenge(t, w)
	refBefore := w.ChallengeRef()
	require.NoError(t, w.SetResponse("123456"))
	require.NoError(t, w.Pay())

	w.CancelPayment()
	assert.Equal(t, OverlayClosed, w.Overlay())
	assert.Equal(t, int64(0), stub.bookCalls.Load())
	assert.Equal(t, "A1", w.SelectedSeat())
	assert.Equal(t, refBefore, w.ChallengeRef())

	// Retry succeeds on the same attempt state
	require.NoError(t, w.Pay())
	clock.Fire()
	w.HandleSentinel(payment.Sentinel)
	assert.Equal(t, int64(1), stub.bookCalls.Load())
	assert.Equal(t, StepLogin, w.Step())
}
