package ports

import (
	"context"
	"time"

	"github.com/timecardhq/timecard-api/internal/core/domain"
)

// PeriodRepository is the read-only source of truth for payroll periods.
// The engine never writes to this collection; non-overlap is owned by
// whatever process seeds the registry.
type PeriodRepository interface {
	FindByID(ctx context.Context, id string) (*domain.TimePeriod, error)
	// FindForDate returns the period whose [start_date, end_date] contains d,
	// or domain.ErrPeriodNotFound when no period covers it.
	FindForDate(ctx context.Context, d time.Time) (*domain.TimePeriod, error)
	// List returns periods ordered by start date, optionally scoped to a year
	// (year 0 = all).
	List(ctx context.Context, year int) ([]*domain.TimePeriod, error)
}
