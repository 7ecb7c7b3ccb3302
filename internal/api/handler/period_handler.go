package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/timecardhq/timecard-api/internal/core/ports"
)

// PeriodHandler serves the read-only payroll period registry.
type PeriodHandler struct {
	service ports.PeriodService
}

func NewPeriodHandler(service ports.PeriodService) *PeriodHandler {
	return &PeriodHandler{service: service}
}

// List handles GET /v1/periods, optionally scoped to a year.
//
// @Summary      List payroll periods
// @Tags         periods
// @Produce      json
// @Security     BearerAuth
// @Param        year  query     int  false  "Scope to one year"
// @Success      200   {array}   periodResponse
// @Router       /v1/periods [get]
func (h *PeriodHandler) List(c echo.Context) error {
	year, _ := strconv.Atoi(c.QueryParam("year"))

	periods, err := h.service.ListPeriods(c.Request().Context(), year)
	if err != nil {
		return err
	}

	out := make([]periodResponse, len(periods))
	for i, p := range periods {
		out[i] = toPeriodResponse(p)
	}
	return c.JSON(http.StatusOK, out)
}

// Current handles GET /v1/periods/current, the period containing today.
//
// @Summary      Get the current payroll period
// @Tags         periods
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  periodResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/periods/current [get]
func (h *PeriodHandler) Current(c echo.Context) error {
	period, err := h.service.Current(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPeriodResponse(period))
}
