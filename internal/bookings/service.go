package bookings

import (
	"context"

	"github.com/google/uuid"

	"tixground/internal/captcha"
	"tixground/internal/seats"
)

// Service implements the finalize call: a complete request turns a held
// selection plus a correct transcription into a confirmed booking.
type Service interface {
	Confirm(ctx context.Context, captchaID string, req *BookRequest) (*BookResponse, error)
}

type service struct {
	seatService    seats.Service
	captchaService captcha.Service
}

func NewService(seatService seats.Service, captchaService captcha.Service) Service {
	return &service{
		seatService:    seatService,
		captchaService: captchaService,
	}
}

// Confirm verifies the captcha first, consuming it either way, then books
// the seat. The ordering matters: a wrong transcription must burn the
// challenge even when the seat would have been free.
func (s *service) Confirm(ctx context.Context, captchaID string, req *BookRequest) (*BookResponse, error) {
	if err := s.captchaService.Verify(ctx, captchaID, req.Captcha); err != nil {
		return nil, err
	}

	if err := s.seatService.Book(ctx, req.SeatID); err != nil {
		return nil, err
	}

	return &BookResponse{
		Reference: uuid.New().String(),
		SeatID:    req.SeatID,
	}, nil
}
