package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agencydesk/crm-api/internal/core/ports"
)

// LandingHandler serves the per-family landing views and the bare root.
// The root itself is the admin dashboard. Client-family callers never
// reach it; the access middleware redirects them to the portal first.
type LandingHandler struct {
	notifications ports.NotificationRepository
}

func NewLandingHandler(notifications ports.NotificationRepository) *LandingHandler {
	return &LandingHandler{notifications: notifications}
}

type landingResponse struct {
	View string `json:"view"`
	Name string `json:"name"`
}

// Root handles GET /.
func (h *LandingHandler) Root(c echo.Context) error {
	return h.Dashboard(c)
}

// Dashboard handles GET /dashboard, the admin-family landing view.
func (h *LandingHandler) Dashboard(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, landingResponse{View: "dashboard", Name: actor.ID})
}

// Portal handles GET /portal, the client-family landing view.
func (h *LandingHandler) Portal(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, landingResponse{View: "portal", Name: actor.ID})
}

// Notifications handles GET /v1/notifications: the caller's most recent
// notifications, newest first.
func (h *LandingHandler) Notifications(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	items, err := h.notifications.ListByRecipient(c.Request().Context(), actor.ID, 50)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}
