package bookings

// BookRequest represents the finalize call payload
type BookRequest struct {
	SeatID  string `json:"seat_id" validate:"required"`
	Captcha string `json:"captcha" validate:"required"`
}

// BookResponse represents a confirmed booking
type BookResponse struct {
	Reference string `json:"reference"`
	SeatID    string `json:"seat_id"`
}
