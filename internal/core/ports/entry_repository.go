package ports

import (
	"context"
	"time"

	"github.com/timecardhq/timecard-api/internal/core/domain"
)

// EntryPatch is the set of fields a conditional update may change. Everything
// else on a persisted entry (id, owner, work date, hours, created_at) is
// immutable once written.
type EntryPatch struct {
	Status      domain.EntryStatus
	ManagerNote string
}

// EntryFilter carries all query parameters for listing entries.
// OwnerID is enforced by the service layer for contractor principals.
type EntryFilter struct {
	OwnerID   string    // empty = no filter (manager); non-empty = scoped to owner
	Status    string    // optional: filter by lifecycle status
	PeriodID  string    // optional: filter by payroll period
	ProjectID string    // optional: filter by project
	DateFrom  time.Time // optional: work_date >= DateFrom
	DateTo    time.Time // optional: work_date <= DateTo
	Page      int       // 1-based
	Limit     int       // max rows per page (capped at 100 by service)
}

// EntryRepository is the engine's only path to durable entry state.
//
// Every write is a single conditional statement evaluated atomically by the
// store (compare-and-swap on status), never a read-then-write pair. A zero
// affected-row count means the precondition no longer held; classifying why
// is the caller's job.
type EntryRepository interface {
	Insert(ctx context.Context, e *domain.TimeEntry) error
	FindByID(ctx context.Context, id string) (*domain.TimeEntry, error)

	// ConditionalUpdate applies patch to the entry only if its status still
	// equals expected and, when ownerID is non-empty, the entry belongs to
	// that owner. Returns the affected row count (0 or 1).
	ConditionalUpdate(ctx context.Context, id string, ownerID string, expected domain.EntryStatus, patch EntryPatch) (int64, error)

	// ConditionalBulkUpdate applies patch to each listed entry still in the
	// expected status and returns the ids actually transitioned. Each row is
	// individually compare-and-swapped; rows that no longer qualify are left
	// untouched rather than failing the batch.
	ConditionalBulkUpdate(ctx context.Context, ids []string, expected domain.EntryStatus, patch EntryPatch) ([]string, error)

	// Delete removes the entry only if it is owned by ownerID and its status
	// is one of allowed. Returns the affected row count (0 or 1).
	Delete(ctx context.Context, id string, ownerID string, allowed []domain.EntryStatus) (int64, error)

	// List returns a page of entries matching filter and the total count.
	// Read-only and not transactionally guarded: used for display, never
	// for lifecycle decisions.
	List(ctx context.Context, filter EntryFilter) ([]*domain.TimeEntry, int64, error)

	// Summarize returns total hours per status for one owner's entries with
	// work dates in [from, to].
	Summarize(ctx context.Context, ownerID string, from, to time.Time) (map[domain.EntryStatus]float64, error)
}
