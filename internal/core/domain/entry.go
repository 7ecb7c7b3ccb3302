package domain

import (
	"errors"
	"fmt"
	"time"
)

// EntryStatus represents the lifecycle state of a time entry.
type EntryStatus string

const (
	StatusDraft     EntryStatus = "draft"
	StatusSubmitted EntryStatus = "submitted"
	StatusApproved  EntryStatus = "approved"
	StatusRejected  EntryStatus = "rejected"
)

// validTransitions defines the allowed state machine transitions.
// approved and rejected are terminal: a rejected entry is not resubmittable.
var validTransitions = map[EntryStatus][]EntryStatus{
	StatusDraft:     {StatusSubmitted},
	StatusSubmitted: {StatusApproved, StatusRejected},
}

var ErrIllegalTransition = errors.New("illegal status transition")
var ErrEntryNotFound = errors.New("time entry not found")
var ErrPeriodNotFound = errors.New("time period not found")
var ErrForbidden = errors.New("access forbidden")
var ErrConflict = errors.New("entry already resolved by another actor")

// ErrPeriodMismatch is wrapped with the period label when a work date falls
// outside the referenced payroll period.
var ErrPeriodMismatch = errors.New("work date outside pay period")

// ValidationError reports a malformed or out-of-range input field.
// It is always recoverable by the caller correcting the input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidStatus reports whether s is one of the four lifecycle states.
func IsValidStatus(s EntryStatus) bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether a transition from the current status to next
// is permitted by the state machine.
func (s EntryStatus) CanTransitionTo(next EntryStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Deletable reports whether the owner may still delete an entry in this state.
func (s EntryStatus) Deletable() bool {
	return s == StatusDraft || s == StatusSubmitted
}

// Resolved reports whether the status is one a manager decision produces.
func (s EntryStatus) Resolved() bool {
	return s == StatusApproved || s == StatusRejected
}

// TimeEntry is the core aggregate: one unit of worked time owned by a single
// contributor and routed through the manager approval workflow.
type TimeEntry struct {
	ID          string      `json:"id" bson:"_id,omitempty"`
	OwnerID     string      `json:"owner_id" bson:"owner_id"`
	WorkDate    time.Time   `json:"work_date" bson:"-"`
	Hours       float64     `json:"hours" bson:"hours"`
	Note        string      `json:"note,omitempty" bson:"note,omitempty"`
	ProjectID   string      `json:"project_id,omitempty" bson:"project_id,omitempty"`
	PeriodID    string      `json:"time_period_id,omitempty" bson:"time_period_id,omitempty"`
	Status      EntryStatus `json:"status" bson:"status"`
	ManagerNote string      `json:"manager_note,omitempty" bson:"manager_note,omitempty"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
}
