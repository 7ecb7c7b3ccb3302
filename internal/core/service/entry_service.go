package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/timecardhq/timecard-api/internal/api/metrics"
	"github.com/timecardhq/timecard-api/internal/core/domain"
	"github.com/timecardhq/timecard-api/internal/core/ports"
	"github.com/timecardhq/timecard-api/internal/core/validation"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 100
)

type entryService struct {
	entries   ports.EntryRepository
	periods   ports.PeriodRepository
	publisher ports.EventPublisher
	log       zerolog.Logger
}

// NewEntryService returns the lifecycle engine implementation. The publisher
// is the async hand-off to the change notifier; it must never block.
func NewEntryService(
	entries ports.EntryRepository,
	periods ports.PeriodRepository,
	publisher ports.EventPublisher,
	log zerolog.Logger,
) ports.EntryService {
	return &entryService{
		entries:   entries,
		periods:   periods,
		publisher: publisher,
		log:       log,
	}
}

// AddEntry validates the input, anchors it to the referenced payroll period,
// and persists a new draft owned by the caller.
func (s *entryService) AddEntry(ctx context.Context, owner domain.Principal, input ports.EntryInput) (*domain.TimeEntry, error) {
	workDate, err := validation.EntryInput(input)
	if err != nil {
		return nil, err
	}

	if input.PeriodID != "" {
		period, err := s.periods.FindByID(ctx, input.PeriodID)
		if err != nil {
			return nil, fmt.Errorf("add entry: %w", err)
		}
		if err := validation.PeriodContainment(workDate, period); err != nil {
			return nil, err
		}
	}

	entry := &domain.TimeEntry{
		ID:        primitive.NewObjectID().Hex(),
		OwnerID:   owner.ID,
		WorkDate:  workDate,
		Hours:     input.Hours,
		Note:      input.Note,
		ProjectID: input.ProjectID,
		PeriodID:  input.PeriodID,
		Status:    domain.StatusDraft,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.entries.Insert(ctx, entry); err != nil {
		s.log.Error().Err(err).Str("owner_id", owner.ID).Msg("failed to insert entry")
		return nil, fmt.Errorf("add entry: %w", err)
	}

	metrics.EntriesCreatedTotal.Inc()
	s.log.Info().Str("entry_id", entry.ID).Str("owner_id", owner.ID).Str("work_date", input.WorkDate).Msg("entry created")

	s.publish(domain.LifecycleEvent{
		Type:      domain.EventEntryCreated,
		EntryID:   entry.ID,
		OwnerID:   entry.OwnerID,
		NewStatus: entry.Status,
	})
	return entry, nil
}

// Submit advances an entry from draft to submitted. The write is a single
// conditional statement scoped to the owner; a zero affected-row count is
// classified by a follow-up read so the caller learns whether the entry
// vanished, belongs to someone else, or is simply not in draft.
func (s *entryService) Submit(ctx context.Context, entryID string, owner domain.Principal) error {
	affected, err := s.entries.ConditionalUpdate(ctx, entryID, owner.ID, domain.StatusDraft,
		ports.EntryPatch{Status: domain.StatusSubmitted})
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if affected == 0 {
		return s.classifySubmitFailure(ctx, entryID, owner)
	}

	metrics.TransitionsTotal.WithLabelValues(string(domain.StatusSubmitted)).Inc()
	s.log.Info().Str("entry_id", entryID).Str("owner_id", owner.ID).Msg("entry submitted")

	s.publish(domain.LifecycleEvent{
		Type:      domain.EventEntryUpdated,
		EntryID:   entryID,
		OwnerID:   owner.ID,
		NewStatus: domain.StatusSubmitted,
	})
	return nil
}

func (s *entryService) classifySubmitFailure(ctx context.Context, entryID string, owner domain.Principal) error {
	entry, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return domain.ErrEntryNotFound
		}
		return fmt.Errorf("submit: %w", err)
	}
	if entry.OwnerID != owner.ID {
		return domain.ErrForbidden
	}
	// Already submitted or resolved; submitted -> submitted is not a no-op.
	return fmt.Errorf("%w: %s -> %s", domain.ErrIllegalTransition, entry.Status, domain.StatusSubmitted)
}

// SetStatus resolves a submitted entry to approved or rejected. The guard
// `status = submitted` lives inside the store write itself, so two managers
// racing on the same entry produce exactly one winner; the loser observes
// Conflict and should re-sync rather than retry blindly.
func (s *entryService) SetStatus(ctx context.Context, entryID string, manager domain.Principal, status domain.EntryStatus, note string) error {
	if !manager.IsManager() {
		return domain.ErrForbidden
	}
	if !status.Resolved() {
		return &domain.ValidationError{Field: "status", Message: "must be approved or rejected"}
	}
	if err := validation.NoteLength("manager_note", note); err != nil {
		return err
	}

	affected, err := s.entries.ConditionalUpdate(ctx, entryID, "", domain.StatusSubmitted,
		ports.EntryPatch{Status: status, ManagerNote: note})
	if err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	if affected == 0 {
		metrics.TransitionConflictsTotal.Inc()
		return domain.ErrConflict
	}

	metrics.TransitionsTotal.WithLabelValues(string(status)).Inc()
	s.log.Info().
		Str("entry_id", entryID).
		Str("manager_id", manager.ID).
		Str("status", string(status)).
		Msg("entry resolved")

	s.publishUpdated(ctx, entryID, status)
	return nil
}

// BulkApprove applies the submitted->approved transition to every listed
// entry still eligible. Partial success is intentional: ids already resolved
// or deleted between the manager's selection and this call are reported as
// skipped instead of aborting the rest of the batch.
func (s *entryService) BulkApprove(ctx context.Context, entryIDs []string, manager domain.Principal) (*ports.BulkApproveResult, error) {
	if !manager.IsManager() {
		return nil, domain.ErrForbidden
	}
	if len(entryIDs) == 0 {
		return nil, &domain.ValidationError{Field: "entry_ids", Message: "must not be empty"}
	}

	approvedIDs, err := s.entries.ConditionalBulkUpdate(ctx, entryIDs, domain.StatusSubmitted,
		ports.EntryPatch{Status: domain.StatusApproved})
	if err != nil {
		return nil, fmt.Errorf("bulk approve: %w", err)
	}

	approved := make(map[string]struct{}, len(approvedIDs))
	for _, id := range approvedIDs {
		approved[id] = struct{}{}
	}
	var skipped []string
	for _, id := range entryIDs {
		if _, ok := approved[id]; !ok {
			skipped = append(skipped, id)
		}
	}

	metrics.TransitionsTotal.WithLabelValues(string(domain.StatusApproved)).Add(float64(len(approvedIDs)))
	metrics.BulkApproveSkippedTotal.Add(float64(len(skipped)))
	s.log.Info().
		Str("manager_id", manager.ID).
		Int("approved", len(approvedIDs)).
		Int("skipped", len(skipped)).
		Msg("bulk approve completed")

	for _, id := range approvedIDs {
		s.publishUpdated(ctx, id, domain.StatusApproved)
	}

	return &ports.BulkApproveResult{Approved: len(approvedIDs), Skipped: skipped}, nil
}

// DeleteEntry removes an entry still in draft or submitted. Deletion is an
// owner privilege: a manager role does not bypass the ownership guard.
func (s *entryService) DeleteEntry(ctx context.Context, entryID string, caller domain.Principal) error {
	affected, err := s.entries.Delete(ctx, entryID, caller.ID,
		[]domain.EntryStatus{domain.StatusDraft, domain.StatusSubmitted})
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if affected == 0 {
		entry, err := s.entries.FindByID(ctx, entryID)
		if err != nil {
			if errors.Is(err, domain.ErrEntryNotFound) {
				return domain.ErrEntryNotFound
			}
			return fmt.Errorf("delete entry: %w", err)
		}
		if entry.OwnerID != caller.ID {
			return domain.ErrForbidden
		}
		return fmt.Errorf("%w: cannot delete %s entry", domain.ErrIllegalTransition, entry.Status)
	}

	s.log.Info().Str("entry_id", entryID).Str("owner_id", caller.ID).Msg("entry deleted")

	s.publish(domain.LifecycleEvent{
		Type:    domain.EventEntryDeleted,
		EntryID: entryID,
		OwnerID: caller.ID,
	})
	return nil
}

// GetEntry retrieves one entry. Contractors only see their own.
func (s *entryService) GetEntry(ctx context.Context, entryID string, caller domain.Principal) (*domain.TimeEntry, error) {
	entry, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !caller.IsManager() && entry.OwnerID != caller.ID {
		return nil, domain.ErrForbidden
	}
	return entry, nil
}

// ListEntries returns a page of entries. Contractor principals are force
// scoped to their own rows regardless of the requested filter.
func (s *entryService) ListEntries(ctx context.Context, caller domain.Principal, input ports.ListEntriesInput) (*ports.ListEntriesResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := ports.EntryFilter{
		Status:    input.Status,
		PeriodID:  input.PeriodID,
		ProjectID: input.ProjectID,
		DateFrom:  input.DateFrom,
		DateTo:    input.DateTo,
		Page:      page,
		Limit:     limit,
	}
	if !caller.IsManager() {
		filter.OwnerID = caller.ID
	}

	items, total, err := s.entries.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return &ports.ListEntriesResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Summary aggregates the caller's own hours per status over [from, to].
func (s *entryService) Summary(ctx context.Context, owner domain.Principal, from, to time.Time) (*ports.SummaryResult, error) {
	if to.Before(from) {
		return nil, &domain.ValidationError{Field: "to", Message: "must not be before from"}
	}

	hours, err := s.entries.Summarize(ctx, owner.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}

	var total float64
	for _, h := range hours {
		total += h
	}
	return &ports.SummaryResult{From: from, To: to, Hours: hours, Total: total}, nil
}

// publishUpdated looks the entry back up for topic routing and enqueues an
// entryUpdated event. The read is display-grade; a failure here only costs
// the notification, never the committed write.
func (s *entryService) publishUpdated(ctx context.Context, entryID string, status domain.EntryStatus) {
	entry, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		s.log.Warn().Err(err).Str("entry_id", entryID).Msg("skipping notification, entry lookup failed")
		return
	}
	s.publish(domain.LifecycleEvent{
		Type:      domain.EventEntryUpdated,
		EntryID:   entryID,
		OwnerID:   entry.OwnerID,
		NewStatus: status,
	})
}

func (s *entryService) publish(event domain.LifecycleEvent) {
	event.At = time.Now().UTC()
	s.publisher.Enqueue(event)
}
