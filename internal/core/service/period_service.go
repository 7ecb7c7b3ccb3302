package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/timecardhq/timecard-api/internal/core/domain"
	"github.com/timecardhq/timecard-api/internal/core/ports"
)

type periodService struct {
	periods ports.PeriodRepository
	log     zerolog.Logger
}

// NewPeriodService returns the read side of the period registry.
func NewPeriodService(periods ports.PeriodRepository, log zerolog.Logger) ports.PeriodService {
	return &periodService{periods: periods, log: log}
}

func (s *periodService) ListPeriods(ctx context.Context, year int) ([]*domain.TimePeriod, error) {
	periods, err := s.periods.List(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	return periods, nil
}

// Current returns the payroll period containing today.
func (s *periodService) Current(ctx context.Context, today time.Time) (*domain.TimePeriod, error) {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	period, err := s.periods.FindForDate(ctx, day)
	if err != nil {
		return nil, err
	}
	return period, nil
}
