package shows

import (
	"context"

	"tixground/internal/shared/config"
)

// Service exposes the performance dates the wizard can pick from
type Service interface {
	ListDates(ctx context.Context) []string
}

type service struct {
	dates []string
}

func NewService(cfg *config.Config) Service {
	// Copied so later config reloads cannot reorder a handed-out slice
	dates := make([]string, len(cfg.Shows.Dates))
	copy(dates, cfg.Shows.Dates)

	return &service{dates: dates}
}

func (s *service) ListDates(ctx context.Context) []string {
	return s.dates
}
