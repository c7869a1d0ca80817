package seats

// Seat defines the structure for individual seats in a catalog snapshot.
// Everything except the booked flag is immutable once generated; only the
// booking service flips IsBooked.
type Seat struct {
	ID       string `json:"id"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	IsBooked bool   `json:"is_booked"`
}

// IsAvailable reports whether the seat can still be booked
func (s *Seat) IsAvailable() bool {
	return !s.IsBooked
}
