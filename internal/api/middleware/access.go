package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agencydesk/crm-api/internal/api/metrics"
	"github.com/agencydesk/crm-api/internal/core/access"
	"github.com/agencydesk/crm-api/internal/core/domain"
)

// Require gates a route on the given requirement. The access policy's
// verdicts translate to HTTP as follows:
//
//	RENDER           → call the handler
//	SHOW_LOADING     → 503 + Retry-After; the session is not settled yet
//	REDIRECT_TO_AUTH → 401 with the sign-in location
//	REDIRECT_TO_HOME → 303 to the role family's landing path
//
// Authorization failures are routing decisions, never errors.
func Require(req domain.Requirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			state, _ := c.Get(CtxSessionState).(access.SessionState)
			dec := access.Evaluate(state, c.Request().URL.Path, req)
			metrics.AccessVerdictsTotal.WithLabelValues(dec.Verdict.String()).Inc()

			switch dec.Verdict {
			case access.Render:
				return next(c)
			case access.ShowLoading:
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "resolving"})
			case access.RedirectToAuth:
				c.Response().Header().Set("Location", dec.Target)
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error":    "authentication required",
					"redirect": dec.Target,
				})
			default: // access.RedirectToHome
				return c.Redirect(http.StatusSeeOther, dec.Target)
			}
		}
	}
}
