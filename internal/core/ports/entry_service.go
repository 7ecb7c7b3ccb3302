package ports

import (
	"context"
	"time"

	"github.com/timecardhq/timecard-api/internal/core/domain"
)

// EntryInput is the DTO passed from the transport layer to EntryService when
// creating a draft entry. WorkDate is the raw YYYY-MM-DD string; parsing is
// part of validation.
type EntryInput struct {
	WorkDate  string
	Hours     float64
	Note      string
	ProjectID string
	PeriodID  string
}

// BulkApproveResult reports the outcome of a partial-success bulk approval.
// Approved counts rows actually transitioned by the store, never the size of
// the caller's selection; Skipped lists every id that was not transitioned.
type BulkApproveResult struct {
	Approved int
	Skipped  []string
}

// SummaryResult aggregates one contributor's hours per status over a window.
type SummaryResult struct {
	From  time.Time
	To    time.Time
	Hours map[domain.EntryStatus]float64
	Total float64
}

// ListEntriesInput carries all parameters for the list endpoint.
type ListEntriesInput struct {
	Status    string
	PeriodID  string
	ProjectID string
	DateFrom  time.Time
	DateTo    time.Time
	Page      int
	Limit     int
}

// ListEntriesResult is returned by ListEntries.
type ListEntriesResult struct {
	Items      []*domain.TimeEntry
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// EntryService owns the time-entry lifecycle: draft creation, submission,
// manager resolution, and deletion. All mutation goes through conditional
// store writes; conflicts are surfaced to the caller, never retried here.
type EntryService interface {
	AddEntry(ctx context.Context, owner domain.Principal, input EntryInput) (*domain.TimeEntry, error)
	Submit(ctx context.Context, entryID string, owner domain.Principal) error
	SetStatus(ctx context.Context, entryID string, manager domain.Principal, status domain.EntryStatus, note string) error
	BulkApprove(ctx context.Context, entryIDs []string, manager domain.Principal) (*BulkApproveResult, error)
	DeleteEntry(ctx context.Context, entryID string, caller domain.Principal) error

	GetEntry(ctx context.Context, entryID string, caller domain.Principal) (*domain.TimeEntry, error)
	ListEntries(ctx context.Context, caller domain.Principal, input ListEntriesInput) (*ListEntriesResult, error)
	Summary(ctx context.Context, owner domain.Principal, from, to time.Time) (*SummaryResult, error)
}
