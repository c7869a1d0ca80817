package wizard

// SelectionState holds at most one selected seat id. A booked seat can
// never become the selection; the only mutators are Select and Clear.
type SelectionState struct {
	seatID string
}

func NewSelectionState() *SelectionState {
	return &SelectionState{}
}

// Select records the seat as the current pick. Booked seats are rejected
// with no state change.
func (s *SelectionState) Select(seat Seat) error {
	if seat.IsBooked {
		return ErrValidationBlocked
	}
	s.seatID = seat.ID
	return nil
}

// SeatID returns the selected seat id, empty when nothing is selected.
func (s *SelectionState) SeatID() string {
	return s.seatID
}

// Valid reports whether a seat is currently selected.
func (s *SelectionState) Valid() bool {
	return s.seatID != ""
}

func (s *SelectionState) Clear() {
	s.seatID = ""
}
