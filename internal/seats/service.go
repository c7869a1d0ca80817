package seats

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"tixground/internal/shared/config"
)

var (
	ErrSeatNotFound  = errors.New("seat not found")
	ErrAlreadyBooked = errors.New("seat already booked")
)

// Service owns the in-session seat inventory. The grid lives in process
// memory for the lifetime of the harness; restarting the server is the
// documented way to reset it.
type Service interface {
	List(ctx context.Context) []Seat
	Book(ctx context.Context, seatID string) error
}

type service struct {
	mu    sync.Mutex
	seats []Seat
	index map[string]int
}

// NewService generates a rows×cols grid with roughly bookedPercent of the
// seats pre-booked, mimicking a sale already in progress.
func NewService(cfg *config.Config) Service {
	grid := make([]Seat, 0, cfg.Seating.Rows*cfg.Seating.Cols)
	for r := 1; r <= cfg.Seating.Rows; r++ {
		for c := 1; c <= cfg.Seating.Cols; c++ {
			grid = append(grid, Seat{
				ID:       fmt.Sprintf("SEAT-%d-%d", r, c),
				Row:      r,
				Col:      c,
				IsBooked: rand.Intn(100) < cfg.Seating.BookedPercent,
			})
		}
	}
	return NewServiceFromSeats(grid)
}

// NewServiceFromSeats builds a service over a fixed seat list
func NewServiceFromSeats(grid []Seat) Service {
	index := make(map[string]int, len(grid))
	for i, s := range grid {
		index[s.ID] = i
	}
	return &service{seats: grid, index: index}
}

// List returns a snapshot of the current grid
func (s *service) List(ctx context.Context) []Seat {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]Seat, len(s.seats))
	copy(snapshot, s.seats)
	return snapshot
}

// Book flips a seat to booked atomically. The check and the flip share one
// critical section so two concurrent finalize calls cannot both win a seat.
func (s *service) Book(ctx context.Context, seatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[seatID]
	if !ok {
		return ErrSeatNotFound
	}
	if !s.seats[i].IsAvailable() {
		return ErrAlreadyBooked
	}

	s.seats[i].IsBooked = true
	return nil
}
