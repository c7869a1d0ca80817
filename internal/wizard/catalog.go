package wizard

// Seat is the client-side view of one seat in a catalog snapshot. Only the
// collaborator service changes the booked flag; the client reloads instead
// of mutating it locally.
type Seat struct {
	ID       string `json:"id"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	IsBooked bool   `json:"is_booked"`
}

// SeatCatalog holds this session's already-fetched date and seat lists.
// No caching beyond that, no retry: a failed fetch is the orchestrator's
// problem.
type SeatCatalog struct {
	dates []string
	seats []Seat
}

func NewSeatCatalog() *SeatCatalog {
	return &SeatCatalog{}
}

func (c *SeatCatalog) SetDates(dates []string) {
	c.dates = dates
}

func (c *SeatCatalog) Dates() []string {
	return c.dates
}

// SetSeats replaces the seat snapshot.
func (c *SeatCatalog) SetSeats(seats []Seat) {
	c.seats = seats
}

func (c *SeatCatalog) Seats() []Seat {
	return c.seats
}

// Seat looks up a seat by id in the current snapshot.
func (c *SeatCatalog) Seat(id string) (Seat, bool) {
	for _, s := range c.seats {
		if s.ID == id {
			return s, true
		}
	}
	return Seat{}, false
}

// HasDate reports whether label is one of the fetched date labels.
func (c *SeatCatalog) HasDate(label string) bool {
	for _, d := range c.dates {
		if d == label {
			return true
		}
	}
	return false
}

// Reset discards both lists.
func (c *SeatCatalog) Reset() {
	c.dates = nil
	c.seats = nil
}
