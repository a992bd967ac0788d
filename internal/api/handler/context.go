package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agencydesk/crm-api/internal/api/middleware"
	"github.com/agencydesk/crm-api/internal/core/domain"
	"github.com/agencydesk/crm-api/internal/core/ports"
)

// ctxActor extracts the identity set by the session middleware and performs
// a fast-fail check before any service call:
//   - the identity must be present (the access middleware ran and rendered).
//   - client-family roles require a client id; without it the token is
//     structurally valid but operationally unusable, so reject with 401.
func ctxActor(c echo.Context) (ports.Actor, error) {
	ident, _ := c.Get(middleware.CtxIdentity).(*domain.Identity)
	if ident == nil {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if ident.Role.ClientFamily() && ident.ClientID == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing client identity")
	}
	return ports.Actor{ID: ident.ID, Role: ident.Role, ClientID: ident.ClientID}, nil
}
