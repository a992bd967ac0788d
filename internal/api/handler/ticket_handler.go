package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agencydesk/crm-api/internal/core/domain"
	"github.com/agencydesk/crm-api/internal/core/ports"
)

// TicketHandler handles the support desk. Any authenticated role may use
// these routes; the service scopes reads to the actor's tenant.
type TicketHandler struct {
	service ports.TicketService
}

func NewTicketHandler(service ports.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

type raiseTicketRequest struct {
	ClientID string `json:"client_id"`
	Subject  string `json:"subject" validate:"required"`
	Body     string `json:"body" validate:"required"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

type ticketStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress resolved closed"`
}

type ticketResponse struct {
	*domain.Ticket
	StatusLabel string `json:"status_label"`
}

func presentTicket(t *domain.Ticket) ticketResponse {
	return ticketResponse{Ticket: t, StatusLabel: t.Status.Label()}
}

func (h *TicketHandler) Raise(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req raiseTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ticket, err := h.service.Raise(c.Request().Context(), actor, ports.CreateTicketInput{
		ClientID: req.ClientID,
		Subject:  req.Subject,
		Body:     req.Body,
		Priority: domain.TicketPriority(req.Priority),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, presentTicket(ticket))
}

func (h *TicketHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	ticket, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, presentTicket(ticket))
}

func (h *TicketHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	tickets, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	out := make([]ticketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, presentTicket(t))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TicketHandler) SetStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req ticketStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.SetStatus(c.Request().Context(), actor, c.Param("id"), domain.TicketStatus(req.Status)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
