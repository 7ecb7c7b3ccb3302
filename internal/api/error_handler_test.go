package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/timecardhq/timecard-api/internal/core/domain"
)

func invoke(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewHTTPErrorHandler(zerolog.Nop())
	handler(err, c)
	return rec
}

func TestHTTPErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"ValidationError", &domain.ValidationError{Field: "hours", Message: "must be between 0 and 24"}, http.StatusBadRequest},
		{"PeriodMismatch", fmt.Errorf("%w: work date must be within the selected pay period (2026-P05)", domain.ErrPeriodMismatch), http.StatusUnprocessableEntity},
		{"IllegalTransition", fmt.Errorf("%w: submitted -> submitted", domain.ErrIllegalTransition), http.StatusUnprocessableEntity},
		{"Forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"EntryNotFound", domain.ErrEntryNotFound, http.StatusNotFound},
		{"PeriodNotFound", domain.ErrPeriodNotFound, http.StatusNotFound},
		{"Conflict", domain.ErrConflict, http.StatusConflict},
		{"EchoError", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims"), http.StatusUnauthorized},
		{"Unexpected", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := invoke(t, tc.err)
			if rec.Code != tc.code {
				t.Errorf("status = %d, want %d", rec.Code, tc.code)
			}
			if !strings.Contains(rec.Body.String(), `"error"`) {
				t.Errorf("body should carry the error envelope, got %s", rec.Body.String())
			}
		})
	}
}

// The wrapped mismatch message surfaces the period label so the client can
// show which period was violated.
func TestHTTPErrorHandler_PeriodMismatchKeepsLabel(t *testing.T) {
	err := fmt.Errorf("%w: work date must be within the selected pay period (2026-P05)", domain.ErrPeriodMismatch)
	rec := invoke(t, err)
	if !strings.Contains(rec.Body.String(), "2026-P05") {
		t.Errorf("mismatch response lost the period label: %s", rec.Body.String())
	}
}

// Internal failure details never reach the client.
func TestHTTPErrorHandler_HidesInternalDetails(t *testing.T) {
	rec := invoke(t, errors.New("mongo: connection reset"))
	if strings.Contains(rec.Body.String(), "mongo") {
		t.Errorf("internal details leaked: %s", rec.Body.String())
	}
}
