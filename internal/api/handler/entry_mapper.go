package handler

import (
	"github.com/timecardhq/timecard-api/internal/core/domain"
	"github.com/timecardhq/timecard-api/internal/core/ports"
	"github.com/timecardhq/timecard-api/internal/core/validation"
)

// --- Request → Service input ---

func toEntryInput(req createEntryRequest) ports.EntryInput {
	return ports.EntryInput{
		WorkDate:  req.WorkDate,
		Hours:     req.Hours,
		Note:      req.Note,
		ProjectID: req.ProjectID,
		PeriodID:  req.PeriodID,
	}
}

// --- Service result → HTTP response ---

func toEntryResponse(e *domain.TimeEntry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		OwnerID:     e.OwnerID,
		WorkDate:    e.WorkDate.Format(validation.DateLayout),
		Hours:       e.Hours,
		Note:        e.Note,
		ProjectID:   e.ProjectID,
		PeriodID:    e.PeriodID,
		Status:      string(e.Status),
		ManagerNote: e.ManagerNote,
		CreatedAt:   e.CreatedAt.UTC(),
	}
}

func toListResponse(r *ports.ListEntriesResult) listEntriesResponse {
	items := make([]entryResponse, len(r.Items))
	for i, e := range r.Items {
		items[i] = toEntryResponse(e)
	}
	return listEntriesResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}

func toSummaryResponse(r *ports.SummaryResult) summaryResponse {
	hours := make(map[string]float64, len(r.Hours))
	for status, h := range r.Hours {
		hours[string(status)] = h
	}
	return summaryResponse{
		From:  r.From.Format(validation.DateLayout),
		To:    r.To.Format(validation.DateLayout),
		Hours: hours,
		Total: r.Total,
	}
}

func toPeriodResponse(p *domain.TimePeriod) periodResponse {
	return periodResponse{
		ID:           p.ID,
		Label:        p.Label,
		StartDate:    p.StartDate.Format(validation.DateLayout),
		EndDate:      p.EndDate.Format(validation.DateLayout),
		DeadlineDate: p.DeadlineDate.Format(validation.DateLayout),
		PaydayDate:   p.PaydayDate.Format(validation.DateLayout),
		Year:         p.Year,
		Sequence:     p.Sequence,
	}
}
