package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/timecardhq/timecard-api/internal/core/domain"
)

// ctxPrincipal extracts the claims injected by the Auth middleware into an
// explicit Principal, fast-failing before any service call:
//   - user_id and role must both be present (presence proves the middleware
//     ran and the token carried a usable identity).
//
// The engine never reads ambient identity; this is the single place where the
// transport identity becomes a value passed down the call chain.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	id, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if id == "" || role == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return domain.Principal{ID: id, Role: role}, nil
}
