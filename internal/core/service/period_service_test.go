package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/timecardhq/timecard-api/internal/core/domain"
)

func seedPeriods() *stubPeriodRepo {
	repo := newStubPeriodRepo()
	repo.periods["p1"] = &domain.TimePeriod{
		ID:        "p1",
		Label:     "2026-P05",
		StartDate: day("2026-03-01"),
		EndDate:   day("2026-03-15"),
		Year:      2026,
		Sequence:  5,
	}
	repo.periods["p2"] = &domain.TimePeriod{
		ID:        "p2",
		Label:     "2026-P06",
		StartDate: day("2026-03-16"),
		EndDate:   day("2026-03-31"),
		Year:      2026,
		Sequence:  6,
	}
	repo.periods["p3"] = &domain.TimePeriod{
		ID:        "p3",
		Label:     "2025-P26",
		StartDate: day("2025-12-16"),
		EndDate:   day("2025-12-31"),
		Year:      2025,
		Sequence:  26,
	}
	return repo
}

func TestListPeriods_YearScope(t *testing.T) {
	svc := NewPeriodService(seedPeriods(), zerolog.Nop())

	all, err := svc.ListPeriods(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListPeriods(0) unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("unscoped list returned %d periods, want 3", len(all))
	}

	scoped, err := svc.ListPeriods(context.Background(), 2026)
	if err != nil {
		t.Fatalf("ListPeriods(2026) unexpected error: %v", err)
	}
	if len(scoped) != 2 {
		t.Errorf("2026 list returned %d periods, want 2", len(scoped))
	}
	for _, p := range scoped {
		if p.Year != 2026 {
			t.Errorf("2026 list contains period from %d", p.Year)
		}
	}
}

func TestCurrent_TruncatesToDay(t *testing.T) {
	svc := NewPeriodService(seedPeriods(), zerolog.Nop())

	// Mid-afternoon on the last day of p1 still resolves to p1.
	now := time.Date(2026, 3, 15, 15, 42, 7, 0, time.UTC)
	period, err := svc.Current(context.Background(), now)
	if err != nil {
		t.Fatalf("Current() unexpected error: %v", err)
	}
	if period.ID != "p1" {
		t.Errorf("Current() = %s, want p1", period.ID)
	}
}

func TestCurrent_NoCoveringPeriod(t *testing.T) {
	svc := NewPeriodService(seedPeriods(), zerolog.Nop())

	_, err := svc.Current(context.Background(), day("2026-07-01"))
	if !errors.Is(err, domain.ErrPeriodNotFound) {
		t.Fatalf("Current() in a gap = %v, want ErrPeriodNotFound", err)
	}
}
