package ports

import (
	"context"
	"time"

	"github.com/timecardhq/timecard-api/internal/core/domain"
)

// PeriodService exposes registry reads used by entry forms and dashboards.
type PeriodService interface {
	ListPeriods(ctx context.Context, year int) ([]*domain.TimePeriod, error)
	// Current returns the period containing today, or domain.ErrPeriodNotFound.
	Current(ctx context.Context, today time.Time) (*domain.TimePeriod, error)
}
