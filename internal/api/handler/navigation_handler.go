package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agencydesk/crm-api/internal/core/navigation"
)

// NavigationHandler serves the role-filtered navigation entries.
type NavigationHandler struct{}

func NewNavigationHandler() *NavigationHandler {
	return &NavigationHandler{}
}

type navigationEntry struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon"`
}

// List returns the navigation visible to the caller, in order.
//
// @Summary      Navigation entries for the current role
// @Tags         navigation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  navigationEntry
// @Router       /v1/navigation [get]
func (h *NavigationHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	visible := navigation.VisibleEntries(actor.Role)
	out := make([]navigationEntry, 0, len(visible))
	for _, e := range visible {
		out = append(out, navigationEntry{Label: e.Label, Path: e.Path, Icon: e.Icon})
	}
	return c.JSON(http.StatusOK, out)
}
