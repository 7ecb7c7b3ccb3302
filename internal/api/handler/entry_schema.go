package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---
//
// Transport tags only assert presence and coarse shape; the authoritative
// rules (quarter-hour grid, period containment, transition table) live in the
// core validation layer.

type createEntryRequest struct {
	WorkDate  string  `json:"work_date"      validate:"required,datetime=2006-01-02"`
	Hours     float64 `json:"hours"          validate:"min=0,max=24"`
	Note      string  `json:"note"           validate:"max=500"`
	ProjectID string  `json:"project_id"`
	PeriodID  string  `json:"time_period_id"`
}

type setStatusRequest struct {
	Status      string `json:"status"       validate:"required,oneof=approved rejected"`
	ManagerNote string `json:"manager_note" validate:"max=500"`
}

type bulkApproveRequest struct {
	EntryIDs []string `json:"entry_ids" validate:"required,min=1"`
}

// --- Response types ---
//
// Owned by the transport layer so the JSON contract is not coupled to
// internal domain changes.

type entryResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	WorkDate    string    `json:"work_date"`
	Hours       float64   `json:"hours"`
	Note        string    `json:"note,omitempty"`
	ProjectID   string    `json:"project_id,omitempty"`
	PeriodID    string    `json:"time_period_id,omitempty"`
	Status      string    `json:"status"`
	ManagerNote string    `json:"manager_note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type bulkApproveResponse struct {
	Approved int      `json:"approved"`
	Skipped  []string `json:"skipped"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listEntriesResponse struct {
	Data       []entryResponse    `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type summaryResponse struct {
	From  string             `json:"from"`
	To    string             `json:"to"`
	Hours map[string]float64 `json:"hours"`
	Total float64            `json:"total"`
}

type periodResponse struct {
	ID           string `json:"id"`
	Label        string `json:"period_name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	DeadlineDate string `json:"deadline_date"`
	PaydayDate   string `json:"payday_date"`
	Year         int    `json:"year"`
	Sequence     int    `json:"period_number"`
}
