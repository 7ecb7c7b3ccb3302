package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/timecardhq/timecard-api/internal/core/domain"
	"github.com/timecardhq/timecard-api/internal/core/ports"
	"github.com/timecardhq/timecard-api/internal/core/validation"
)

// EntryHandler handles HTTP requests for time entry operations.
type EntryHandler struct {
	service ports.EntryService
}

func NewEntryHandler(service ports.EntryService) *EntryHandler {
	return &EntryHandler{service: service}
}

// Create handles POST /v1/entries, creating a draft entry owned by the caller.
//
// @Summary      Create a draft time entry
// @Tags         entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEntryRequest  true  "Entry fields"
// @Success      201   {object}  entryResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/entries [post]
func (h *EntryHandler) Create(c echo.Context) error {
	var req createEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	owner, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	entry, err := h.service.AddEntry(c.Request().Context(), owner, toEntryInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toEntryResponse(entry))
}

// List handles GET /v1/entries. Contractors see their own entries; managers
// see everyone's.
//
// @Summary      List time entries
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        status          query     string  false  "Filter by status"
// @Param        time_period_id  query     string  false  "Filter by payroll period"
// @Param        project_id      query     string  false  "Filter by project"
// @Param        from            query     string  false  "Work date lower bound (YYYY-MM-DD)"
// @Param        to              query     string  false  "Work date upper bound (YYYY-MM-DD)"
// @Param        page            query     int     false  "Page (1-based)"
// @Param        limit           query     int     false  "Page size (max 100)"
// @Success      200             {object}  listEntriesResponse
// @Failure      400             {object}  errorResponse
// @Router       /v1/entries [get]
func (h *EntryHandler) List(c echo.Context) error {
	caller, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	input := ports.ListEntriesInput{
		Status:    c.QueryParam("status"),
		PeriodID:  c.QueryParam("time_period_id"),
		ProjectID: c.QueryParam("project_id"),
	}
	input.Page, _ = strconv.Atoi(c.QueryParam("page"))
	input.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	if input.DateFrom, err = parseDateParam(c, "from"); err != nil {
		return err
	}
	if input.DateTo, err = parseDateParam(c, "to"); err != nil {
		return err
	}

	result, err := h.service.ListEntries(c.Request().Context(), caller, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result))
}

// Get handles GET /v1/entries/:id.
//
// @Summary      Get a single time entry
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Entry id"
// @Success      200  {object}  entryResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/entries/{id} [get]
func (h *EntryHandler) Get(c echo.Context) error {
	caller, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	entry, err := h.service.GetEntry(c.Request().Context(), c.Param("id"), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// Submit handles POST /v1/entries/:id/submit. The owner advances a draft to submitted.
//
// @Summary      Submit a draft entry for approval
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Entry id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/entries/{id}/submit [post]
func (h *EntryHandler) Submit(c echo.Context) error {
	owner, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Submit(c.Request().Context(), c.Param("id"), owner); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SetStatus handles PATCH /v1/entries/:id/status. A manager approves or rejects.
//
// @Summary      Approve or reject a submitted entry
// @Tags         entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Entry id"
// @Param        body  body      setStatusRequest  true  "Target status and optional note"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/entries/{id}/status [patch]
func (h *EntryHandler) SetStatus(c echo.Context) error {
	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	manager, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	err = h.service.SetStatus(c.Request().Context(), c.Param("id"), manager,
		domain.EntryStatus(req.Status), req.ManagerNote)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// BulkApprove handles POST /v1/entries/bulk-approve. Partial success: ids no
// longer in submitted come back in "skipped" instead of failing the batch.
//
// @Summary      Approve a batch of submitted entries
// @Tags         entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bulkApproveRequest  true  "Entry ids to approve"
// @Success      200   {object}  bulkApproveResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/entries/bulk-approve [post]
func (h *EntryHandler) BulkApprove(c echo.Context) error {
	var req bulkApproveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	manager, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	result, err := h.service.BulkApprove(c.Request().Context(), req.EntryIDs, manager)
	if err != nil {
		return err
	}

	resp := bulkApproveResponse{Approved: result.Approved, Skipped: result.Skipped}
	if resp.Skipped == nil {
		resp.Skipped = []string{}
	}
	return c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /v1/entries/:id. Owner-only while draft or submitted.
//
// @Summary      Delete an unresolved entry
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Entry id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/entries/{id} [delete]
func (h *EntryHandler) Delete(c echo.Context) error {
	caller, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteEntry(c.Request().Context(), c.Param("id"), caller); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Summary handles GET /v1/entries/summary: the caller's own hours per status
// over a date window (defaults to the last 7 days).
//
// @Summary      Summarise own hours per status
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        from  query     string  false  "Window start (YYYY-MM-DD)"
// @Param        to    query     string  false  "Window end (YYYY-MM-DD)"
// @Success      200   {object}  summaryResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/entries/summary [get]
func (h *EntryHandler) Summary(c echo.Context) error {
	caller, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	from, err := parseDateParam(c, "from")
	if err != nil {
		return err
	}
	to, err := parseDateParam(c, "to")
	if err != nil {
		return err
	}
	if to.IsZero() {
		now := time.Now().UTC()
		to = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -7)
	}

	result, err := h.service.Summary(c.Request().Context(), caller, from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSummaryResponse(result))
}

// parseDateParam parses an optional YYYY-MM-DD query parameter.
func parseDateParam(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, nil
	}
	d, err := time.ParseInLocation(validation.DateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, name+" must be a valid date in YYYY-MM-DD format")
	}
	return d, nil
}
