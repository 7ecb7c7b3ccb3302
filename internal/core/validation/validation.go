// Package validation holds the pure, side-effect-free rules guarding the
// time-entry lifecycle: input shape, quarter-hour quantization, period
// containment, and the status transition table.
package validation

import (
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/timecardhq/timecard-api/internal/core/domain"
	"github.com/timecardhq/timecard-api/internal/core/ports"
)

// DateLayout is the only accepted work date format.
const DateLayout = "2006-01-02"

// MaxNoteLen bounds both contributor notes and manager notes.
const MaxNoteLen = 500

// MaxHours is the most a single entry may record.
const MaxHours = 24

// EntryInput checks all shape rules for a new draft entry and returns the
// parsed work date (UTC midnight). It performs no I/O: period existence and
// containment are checked separately once the registry has been consulted.
func EntryInput(in ports.EntryInput) (time.Time, error) {
	workDate, err := time.ParseInLocation(DateLayout, in.WorkDate, time.UTC)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: "work_date", Message: "must be a valid date in YYYY-MM-DD format"}
	}

	if in.Hours < 0 || in.Hours > MaxHours {
		return time.Time{}, &domain.ValidationError{Field: "hours", Message: "must be between 0 and 24"}
	}
	if q := in.Hours * 4; q != math.Trunc(q) {
		return time.Time{}, &domain.ValidationError{Field: "hours", Message: "must be in quarter-hour increments (0.25)"}
	}

	if err := NoteLength("note", in.Note); err != nil {
		return time.Time{}, err
	}

	if in.ProjectID != "" && !primitive.IsValidObjectID(in.ProjectID) {
		return time.Time{}, &domain.ValidationError{Field: "project_id", Message: "malformed identifier"}
	}
	if in.PeriodID != "" && !primitive.IsValidObjectID(in.PeriodID) {
		return time.Time{}, &domain.ValidationError{Field: "time_period_id", Message: "malformed identifier"}
	}

	return workDate, nil
}

// NoteLength bounds a free-text note field.
func NoteLength(field, note string) error {
	if len(note) > MaxNoteLen {
		return &domain.ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d characters", MaxNoteLen)}
	}
	return nil
}

// PeriodContainment checks that the work date falls inside the referenced
// payroll period. The error carries the period label so the caller can
// present it to the end user.
func PeriodContainment(workDate time.Time, period *domain.TimePeriod) error {
	if !period.Contains(workDate) {
		return fmt.Errorf("%w: work date must be within the selected pay period (%s)",
			domain.ErrPeriodMismatch, period.Label)
	}
	return nil
}

// StatusTransition checks the state machine and the actor's role for a
// requested transition. Ownership is enforced at the store level, not here.
func StatusTransition(current, requested domain.EntryStatus, role string) error {
	if !domain.IsValidStatus(requested) {
		return &domain.ValidationError{Field: "status", Message: "unknown status"}
	}
	if !current.CanTransitionTo(requested) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrIllegalTransition, current, requested)
	}
	if requested.Resolved() && role != domain.RoleManager {
		return domain.ErrForbidden
	}
	return nil
}
